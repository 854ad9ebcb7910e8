// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the upstream catalog.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bestreads/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// Contact is an optional email address appended to the User-Agent so the
	// catalog operators can reach us.
	Contact string `json:"contact,omitempty" yaml:"contact,omitempty"`

	// RequestsPerSecond throttles upstream requests. 0 disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// UserAgentHeader returns the full User-Agent value, including the contact
// address when one is configured.
func (c HTTPConfig) UserAgentHeader() string {
	if c.Contact == "" {
		return c.UserAgent
	}
	return c.UserAgent + " " + c.Contact
}

// CatalogConfig holds settings for the catalog clients and the aggregation
// service.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the catalog root (default "https://openlibrary.org").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Sort is the sort hint sent with every search (default "rating desc").
	Sort string `json:"sort" yaml:"sort"`

	// DefaultLimit is the page size used when a request does not set one (default 5).
	DefaultLimit int `json:"default_limit" yaml:"default_limit"`

	// MaxLimit caps the page size of a single request (default 100).
	MaxLimit int `json:"max_limit" yaml:"max_limit"`

	// MaxConcurrency bounds the number of works, and of authors per work,
	// enriched at once (default 8).
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency"`

	// CoverSize selects the cover image size: S, M, or L (default M).
	CoverSize string `json:"cover_size" yaml:"cover_size"`
}

// Transport selects how the MCP server talks to its client.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// ServerConfig holds settings for the MCP server.
type ServerConfig struct {
	// Transport is stdio or http.
	Transport Transport `json:"transport" yaml:"transport"`

	// Addr is the listen address in http mode (default ":8000").
	Addr string `json:"addr" yaml:"addr"`

	// EndpointPath is the MCP endpoint in http mode (default "/mcp").
	EndpointPath string `json:"endpoint_path" yaml:"endpoint_path"`

	// WidgetDomain is advertised to the chat client as the widget's origin.
	WidgetDomain string `json:"widget_domain" yaml:"widget_domain"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a logrus level name (default "info").
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format"`
}

// Config groups every setting of the application.
type Config struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
