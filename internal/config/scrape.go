package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvScrapeEndpoint = "SCOUT_SCRAPE_ENDPOINT"
	EnvScrapeSpec     = "SCOUT_SCRAPE_SPEC"
	EnvScrapeTimeout  = "SCOUT_SCRAPE_TIMEOUT"
)

// ScrapeConfig holds settings for the external scraper client and the
// cron sweep that drives it. An empty endpoint disables scheduled scraping;
// manual ingestion through the API remains available.
type ScrapeConfig struct {
	Endpoint string         `toml:"endpoint"`
	Spec     string         `toml:"spec"`
	Timeout  string         `toml:"timeout"`
	Searches []SearchConfig `toml:"searches"`
}

// SearchConfig identifies one scrape query dispatched each sweep.
type SearchConfig struct {
	Site     string `toml:"site"`
	Query    string `toml:"query"`
	Location string `toml:"location"`
}

// Enabled reports whether scheduled scraping is configured.
func (c *ScrapeConfig) Enabled() bool {
	return c.Endpoint != "" && len(c.Searches) > 0
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ScrapeConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ScrapeConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ScrapeConfig) Merge(overlay *ScrapeConfig) {
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Spec != "" {
		c.Spec = overlay.Spec
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if len(overlay.Searches) > 0 {
		c.Searches = overlay.Searches
	}
}

func (c *ScrapeConfig) loadDefaults() {
	if c.Spec == "" {
		c.Spec = "@every 6h"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *ScrapeConfig) loadEnv() {
	if v := os.Getenv(EnvScrapeEndpoint); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(EnvScrapeSpec); v != "" {
		c.Spec = v
	}
	if v := os.Getenv(EnvScrapeTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *ScrapeConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	for i, s := range c.Searches {
		if s.Site == "" {
			return fmt.Errorf("search %d: site required", i)
		}
		if s.Query == "" {
			return fmt.Errorf("search %d: query required", i)
		}
	}
	return nil
}
