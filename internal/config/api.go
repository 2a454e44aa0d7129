package config

import (
	"fmt"
	"os"

	"github.com/seekpath/scout/pkg/formatting"
	"github.com/seekpath/scout/pkg/middleware"
	"github.com/seekpath/scout/pkg/openapi"
	"github.com/seekpath/scout/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SCOUT_CORS_ENABLED",
	Origins:          "SCOUT_CORS_ORIGINS",
	AllowedMethods:   "SCOUT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SCOUT_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SCOUT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SCOUT_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SCOUT_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SCOUT_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "SCOUT_OPENAPI_TITLE",
	Description: "SCOUT_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxIngestSize string                `toml:"max_ingest_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxIngestSizeBytes returns the ingest body cap in bytes, falling back to 10MB.
func (c *APIConfig) MaxIngestSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxIngestSize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, pagination, and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxIngestSize != "" {
		c.MaxIngestSize = overlay.MaxIngestSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxIngestSize == "" {
		c.MaxIngestSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("SCOUT_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("SCOUT_API_MAX_INGEST_SIZE"); v != "" {
		c.MaxIngestSize = v
	}
}
