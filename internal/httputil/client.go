// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds the HTTP client used for upstream catalog calls.
package httputil

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/bestreads/pkg/types"
)

const defaultTimeout = 15 * time.Second

// NewClient returns an *http.Client configured from cfg: request timeout,
// User-Agent header on every request, and an optional request-rate limit
// shared by all requests made through the client.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &Transport{
			Base:      http.DefaultTransport,
			UserAgent: cfg.UserAgentHeader(),
			Limiter:   limiter,
		},
	}
}

// Transport is an http.RoundTripper that sets the User-Agent header and
// waits on Limiter before each request. A nil Limiter means no throttling.
// A request that already carries a User-Agent keeps it.
type Transport struct {
	Base      http.RoundTripper
	UserAgent string
	Limiter   *rate.Limiter
}

// RoundTrip implements http.RoundTripper. If the request context is
// cancelled while waiting on the limiter, the context error is returned.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.UserAgent)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
