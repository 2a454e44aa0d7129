// Package scrape provides an HTTP client for an external scraper service
// that returns raw job record batches per search query.
package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/seekpath/scout/internal/jobs"
)

// Search identifies one scrape query: the source site plus the search
// terms forwarded to it.
type Search struct {
	Site     string
	Query    string
	Location string
}

// Client fetches scraped job batches from the configured scraper service.
// When the endpoint is empty, Fetch returns nil without error so the
// scheduler simply skips the sweep.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// New creates a Client for the given scraper endpoint with the given
// per-request timeout.
func New(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With("system", "scrape"),
	}
}

type scrapeResponse struct {
	Records []jobs.ScrapedRecord `json:"records"`
}

// Fetch retrieves one batch of scraped records for a search. Returns nil
// without error when no endpoint is configured.
func (c *Client) Fetch(ctx context.Context, search Search) ([]jobs.ScrapedRecord, error) {
	if c.endpoint == "" {
		c.logger.Warn("scrape endpoint not configured, skipping fetch", "site", search.Site)
		return nil, nil
	}

	params := url.Values{}
	params.Set("site", search.Site)
	params.Set("query", search.Query)
	if search.Location != "" {
		params.Set("location", search.Location)
	}

	reqURL := c.endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scraper returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed scrapeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	c.logger.Info("scrape batch fetched",
		"site", search.Site,
		"query", search.Query,
		"records", len(parsed.Records),
	)

	return parsed.Records, nil
}
