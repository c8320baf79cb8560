// Package census fetches county population tables from the Census Data API.
package census

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	// acsDataset is the ACS 5-year estimates dataset path.
	acsDataset = "acs/acs5"

	// popVariable is the ACS total-population variable.
	popVariable = "B01003_001E"

	bodyPreviewBytes = 200
)

// Config holds the parameters for a single Census API query.
type Config struct {
	BaseURL string
	Year    int
	Key     string
	Timeout time.Duration
}

// Client issues the county population query against the Census Data API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client for the given query parameters.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// URL returns the query URL: name and total population for every county
// in the configured year. An empty key goes on the wire as-is and
// surfaces as an API-level rejection in FetchCountyPopulations.
func (c *Client) URL() string {
	return fmt.Sprintf("%s/%d/%s?get=NAME,%s&for=county:*&key=%s",
		c.cfg.BaseURL, c.cfg.Year, acsDataset, popVariable, c.cfg.Key)
}

// FetchCountyPopulations issues the single GET request and parses the
// response into a population table. There is no retry: any failure is
// final and carries the response body for diagnosis.
func (c *Client) FetchCountyPopulations(ctx context.Context) (*PopulationTable, error) {
	log := zap.L().With(zap.String("component", "census.client"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "census: build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "census: fetch county populations")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "census: read response")
	}

	log.Info("census api response",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("preview", preview(body)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("census: api returned status %d: %s", resp.StatusCode, body)
	}

	table, err := ParseTable(body)
	if err != nil {
		log.Error("census api returned unparseable body", zap.ByteString("body", body))
		return nil, err
	}

	log.Info("county populations parsed", zap.Int("counties", table.Len()))
	return table, nil
}

// preview truncates a response body for log output.
func preview(body []byte) []byte {
	if len(body) <= bodyPreviewBytes {
		return body
	}
	return body[:bodyPreviewBytes]
}
