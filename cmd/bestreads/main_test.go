// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bestreads/internal/mcpserver"
	"github.com/pdiddy/bestreads/internal/secrets"
	"github.com/pdiddy/bestreads/pkg/types"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)
	return v
}

// --- Config ---

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "bestreads/"+version, cfg.Catalog.UserAgent)
	assert.Equal(t, "https://openlibrary.org", cfg.Catalog.BaseURL)
	assert.Equal(t, "rating desc", cfg.Catalog.Sort)
	assert.Equal(t, 5, cfg.Catalog.DefaultLimit)
	assert.Equal(t, 100, cfg.Catalog.MaxLimit)
	assert.Equal(t, 8, cfg.Catalog.MaxConcurrency)
	assert.Equal(t, "M", cfg.Catalog.CoverSize)
	assert.Equal(t, types.TransportStdio, cfg.Server.Transport)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "/mcp", cfg.Server.EndpointPath)
	assert.Equal(t, "https://openlibrary.org", cfg.Server.WidgetDomain)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("BESTREADS_SERVER_TRANSPORT", "HTTP")
	t.Setenv("BESTREADS_HTTP_TIMEOUT", "3s")
	t.Setenv("BESTREADS_CATALOG_MAX_CONCURRENCY", "2")
	t.Setenv("BESTREADS_HTTP_CONTACT", "me@example.com")
	t.Setenv("BESTREADS_SERVER_ENDPOINT_PATH", "books")

	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, types.TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 2, cfg.Catalog.MaxConcurrency)
	assert.Equal(t, "me@example.com", cfg.Catalog.Contact)
	assert.Equal(t, "/books", cfg.Server.EndpointPath)
}

func TestLoadConfig_ContactFromSecret(t *testing.T) {
	old := loadedSecrets
	t.Cleanup(func() { loadedSecrets = old })
	loadedSecrets = map[string]string{secrets.ContactKey: "secret@example.com"}

	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, "secret@example.com", cfg.Catalog.Contact)
	assert.Equal(t, "bestreads/"+version+" secret@example.com", cfg.Catalog.UserAgentHeader())
}

func TestLoadConfig_Invalid(t *testing.T) {
	v := newTestViper()
	v.Set("server.transport", "carrier-pigeon")
	_, err := loadConfig(v)
	assert.Error(t, err)

	v = newTestViper()
	v.Set("http.requests_per_second", -1)
	_, err = loadConfig(v)
	assert.Error(t, err)
}

// --- Upstream stub ---

const stubSearchJSON = `{
  "start": 0,
  "num_found": 2,
  "docs": [
    {"key": "/works/OL27448W", "title": "The Lord of the Rings", "author_key": ["OL26320A"], "cover_i": 14625765},
    {"key": "/works/OL1W", "author_key": ["OL404A"]}
  ]
}`

// newStubCatalog serves a two-work search and one resolvable author.
// Unknown authors answer 404.
func newStubCatalog(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var authorCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, stubSearchJSON)
	})
	mux.HandleFunc("/authors/OL26320A.json", func(w http.ResponseWriter, r *http.Request) {
		authorCalls.Add(1)
		fmt.Fprint(w, `{"key": "/authors/OL26320A", "name": "J.R.R. Tolkien"}`)
	})
	mux.HandleFunc("/authors/OL404A.json", func(w http.ResponseWriter, r *http.Request) {
		authorCalls.Add(1)
		http.NotFound(w, r)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, &authorCalls
}

func stubConfig(t *testing.T, baseURL string) types.CatalogConfig {
	t.Helper()
	v := newTestViper()
	v.Set("catalog.base_url", baseURL)
	cfg, err := loadConfig(v)
	require.NoError(t, err)
	return cfg.Catalog
}

// --- search ---

func TestSearchAndPrint(t *testing.T) {
	ts, authorCalls := newStubCatalog(t)
	cfg := stubConfig(t, ts.URL)

	var buf bytes.Buffer
	err := searchAndPrint(context.Background(), newService(cfg), cfg, "lord of the rings", 0, 1, "json", &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"totalFound": 2`)
	assert.Contains(t, out, `"J.R.R. Tolkien"`)
	assert.Contains(t, out, `"coverUrl": "https://covers.openlibrary.org/b/id/14625765-M.jpg"`)
	assert.Contains(t, out, `"title": "Unknown Title"`)
	assert.Less(t, strings.Index(out, "OL27448W"), strings.Index(out, "OL1W"), "catalog order")
	assert.Equal(t, int32(2), authorCalls.Load())
}

func TestSearchAndPrint_EmptyQuery(t *testing.T) {
	ts, _ := newStubCatalog(t)
	cfg := stubConfig(t, ts.URL)

	err := searchAndPrint(context.Background(), newService(cfg), cfg, "   ", 0, 1, "table", io.Discard)
	assert.ErrorIs(t, err, types.ErrEmptyQuery)
}

// --- repl ---

type scriptedPrompter struct {
	lines   []string
	history []string
}

func (s *scriptedPrompter) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	l := s.lines[0]
	s.lines = s.lines[1:]
	return l, nil
}

func (s *scriptedPrompter) AppendHistory(item string) { s.history = append(s.history, item) }

func TestREPL(t *testing.T) {
	ts, _ := newStubCatalog(t)
	cfg := stubConfig(t, ts.URL)

	p := &scriptedPrompter{lines: []string{"", "  lord of the rings  ", "quit", "never reached"}}
	var buf bytes.Buffer
	require.NoError(t, repl(context.Background(), p, newService(cfg), cfg, 0, &buf))

	assert.Equal(t, []string{"lord of the rings"}, p.history)
	assert.Contains(t, buf.String(), "The Lord of the Rings")
	assert.Contains(t, buf.String(), "Showing 2 of 2 results")
	assert.Equal(t, []string{"never reached"}, p.lines)
}

func TestREPL_ReportsErrorsAndContinues(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)
	cfg := stubConfig(t, ts.URL)

	p := &scriptedPrompter{lines: []string{"dune", "emma"}}
	var buf bytes.Buffer
	require.NoError(t, repl(context.Background(), p, newService(cfg), cfg, 0, &buf))

	assert.Equal(t, 2, strings.Count(buf.String(), "Error: Open Library search API error"))
	assert.Equal(t, []string{"dune", "emma"}, p.history)
}

// --- HTTP transport ---

func TestHTTPHandler_Healthz(t *testing.T) {
	ts, _ := newStubCatalog(t)
	cfg := stubConfig(t, ts.URL)
	srv := mcpserver.New(newService(cfg), mcpserver.Options{Version: version, Catalog: cfg})
	h := newHTTPHandler(srv, types.ServerConfig{EndpointPath: "/mcp"})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"status":"ok","version":%q}`, version), rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "frame-ancestors *;", rr.Header().Get("Content-Security-Policy"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestHTTPHandler_Preflight(t *testing.T) {
	srv := mcpserver.New(newService(types.CatalogConfig{}), mcpserver.Options{})
	h := newHTTPHandler(srv, types.ServerConfig{EndpointPath: "/mcp"})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/mcp", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "frame-ancestors *;", rr.Header().Get("Content-Security-Policy"))
}

func TestHTTPHandler_Metrics(t *testing.T) {
	srv := mcpserver.New(newService(types.CatalogConfig{}), mcpserver.Options{})
	h := newHTTPHandler(srv, types.ServerConfig{EndpointPath: "/mcp"})

	// One request first so the HTTP counters have a sample.
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "bestreads_http_requests_total")
}

func TestHTTPHandler_MCPToolCall(t *testing.T) {
	ts, _ := newStubCatalog(t)
	cfg := stubConfig(t, ts.URL)
	srv := mcpserver.New(newService(cfg), mcpserver.Options{Version: version, Catalog: cfg})
	api := httptest.NewServer(newHTTPHandler(srv, types.ServerConfig{EndpointPath: "/mcp"}))
	t.Cleanup(api.Close)

	post := func(body string) string {
		req, err := http.NewRequest(http.MethodPost, api.URL+"/mcp", strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json, text/event-stream")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(b)
	}

	initResp := post(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`)
	assert.Contains(t, initResp, `"bestreads"`)

	callResp := post(`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"search_books","arguments":{"query":"lord of the rings"}}}`)
	assert.Contains(t, callResp, "Found 2 books. Showing top 2 results.")
	assert.Contains(t, callResp, "J.R.R. Tolkien")
	assert.Contains(t, callResp, "Unknown Author")
	assert.Contains(t, callResp, "ui://widget/search-books-template.html")
}
