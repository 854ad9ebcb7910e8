// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openlibrary wraps the Open Library catalog: work search, author
// lookup, and cover image URLs. Every response is validated against a JSON
// schema before it is decoded, and optional fields the catalog omits stay
// nil in the returned records.
package openlibrary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/xeipuuv/gojsonschema"

	"github.com/pdiddy/bestreads/internal/metrics"
	"github.com/pdiddy/bestreads/pkg/types"
)

// DefaultBaseURL is the public Open Library host.
const DefaultBaseURL = "https://openlibrary.org"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client issues requests to one Open Library host. It is safe for
// concurrent use.
type Client struct {
	HTTP *http.Client

	// BaseURL is the catalog root without a trailing slash. Tests point it
	// at an httptest server.
	BaseURL string

	// UserAgent identifies this application to the catalog.
	UserAgent string

	// Sort is the default sort hint for SearchWorks.
	Sort string
}

// NewClient returns a Client for the host and sort hint in cfg.
func NewClient(httpClient *http.Client, cfg types.CatalogConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		HTTP:      httpClient,
		BaseURL:   base,
		UserAgent: cfg.UserAgentHeader(),
		Sort:      cfg.Sort,
	}
}

// getJSON performs a GET on reqURL, checks the status, validates the body
// against schema, and decodes it into v. endpoint labels errors and metrics.
func (c *Client) getJSON(ctx context.Context, endpoint, reqURL string, schema *gojsonschema.Schema, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("Open Library %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading Open Library %s response: %w", endpoint, err)
	}

	if err := validate(schema, endpoint, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &SchemaValidationError{Endpoint: endpoint, Problems: []string{err.Error()}}
	}
	return nil
}
