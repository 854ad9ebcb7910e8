// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes book search as an MCP tool together with the
// HTML widget that renders its results.
package mcpserver

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/pdiddy/bestreads/internal/logger"
	"github.com/pdiddy/bestreads/internal/metrics"
	"github.com/pdiddy/bestreads/pkg/types"
)

//go:embed widget/search-books.html
var widgetHTML string

const (
	ServerName = "bestreads"

	ToolName       = "search_books"
	WidgetURI      = "ui://widget/search-books-template.html"
	WidgetMIMEType = "text/html+skybridge"

	// DefaultToolLimit is the number of results the tool returns when the
	// caller does not ask for a limit.
	DefaultToolLimit = 3

	widgetTitle       = "Search Books"
	widgetDescription = "Displays book search results"
	invokingMessage   = "Searching for books..."
	invokedMessage    = "Book search completed"
)

// Searcher runs an enriched book search. *books.Service implements it.
type Searcher interface {
	SearchBooks(ctx context.Context, q types.SearchQuery) (types.SearchResultSet, error)
}

// Options configures the server.
type Options struct {
	Version      string
	WidgetDomain string
	Catalog      types.CatalogConfig
}

// SearchPayload is the structured content of a search_books result.
type SearchPayload struct {
	Query      string                     `json:"query"`
	Results    []types.EnrichedBookResult `json:"results"`
	TotalFound int                        `json:"totalFound"`
}

// New builds an MCP server with the search_books tool and its widget
// resource registered.
func New(svc Searcher, opts Options) *server.MCPServer {
	if opts.Version == "" {
		opts.Version = "dev"
	}

	srv := server.NewMCPServer(ServerName, opts.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithToolHandlerMiddleware(instrument),
		server.WithRecovery(),
		server.WithLogging(),
		server.WithInstructions("Use search_books to look up books in Open Library by title, author or ISBN."),
	)

	h := &handler{svc: svc, catalog: opts.Catalog}
	srv.AddTool(searchBooksTool(opts.Catalog), h.searchBooks)
	srv.AddResource(widgetResource(opts.WidgetDomain), widgetHandler(opts.WidgetDomain))
	return srv
}

func searchBooksTool(cfg types.CatalogConfig) mcp.Tool {
	maxLimit := cfg.MaxLimit
	if maxLimit <= 0 {
		maxLimit = types.DefaultMaxLimit
	}

	tool := mcp.NewTool(ToolName,
		mcp.WithDescription("Search for books using Open Library API. Returns the top results with titles, authors, and cover images."),
		mcp.WithTitleAnnotation(widgetTitle),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search term to find books (e.g., title, author, ISBN)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return"),
			mcp.DefaultNumber(DefaultToolLimit),
			mcp.Min(1),
			mcp.Max(float64(maxLimit)),
		),
		mcp.WithNumber("page",
			mcp.Description("1-based result page"),
			mcp.DefaultNumber(types.DefaultPage),
			mcp.Min(1),
		),
	)
	tool.Meta = mcp.NewMetaFromMap(toolMeta())
	return tool
}

// toolMeta returns the widget hints attached to the tool and its results.
func toolMeta() map[string]any {
	return map[string]any{
		"openai/outputTemplate":          WidgetURI,
		"openai/toolInvocation/invoking": invokingMessage,
		"openai/toolInvocation/invoked":  invokedMessage,
		"openai/widgetAccessible":        false,
		"openai/resultCanProduceWidget":  true,
	}
}

type handler struct {
	svc     Searcher
	catalog types.CatalogConfig
}

func (h *handler) searchBooks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	limit := DefaultToolLimit
	if v, ok := args["limit"]; ok && v != nil {
		limit = cast.ToInt(v)
	}
	page := types.DefaultPage
	if v, ok := args["page"]; ok && v != nil {
		page = cast.ToInt(v)
	}

	q, err := types.NewSearchQueryWithConfig(cast.ToString(args["query"]), limit, page, h.catalog)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rs, err := h.svc.SearchBooks(ctx, q)
	if err != nil {
		logger.For(ctx).WithError(err).WithField("query", q.Query).Error("book search failed")
		return mcp.NewToolResultError(fmt.Sprintf("book search failed: %v", err)), nil
	}

	payload := SearchPayload{
		Query:      q.Query,
		Results:    present(rs.Results),
		TotalFound: rs.TotalFound,
	}
	text := fmt.Sprintf("Found %d books. Showing top %d results.", rs.TotalFound, len(payload.Results))

	res := mcp.NewToolResultStructured(payload, text)
	res.Meta = mcp.NewMetaFromMap(toolMeta())
	return res, nil
}

// present fills the display fallbacks the widget relies on.
func present(results []types.EnrichedBookResult) []types.EnrichedBookResult {
	out := make([]types.EnrichedBookResult, len(results))
	for i, r := range results {
		if r.Title == "" {
			r.Title = types.UnknownTitle
		}
		if len(r.AuthorNames) == 0 {
			r.AuthorNames = []string{types.UnknownAuthor}
		}
		out[i] = r
	}
	return out
}

// instrument tags every tool call with a request id and counts its outcome.
func instrument(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = logger.WithNewID(ctx)
		defer logger.Track(ctx, "tool "+req.Params.Name)()

		res, err := next(ctx, req)

		outcome := "ok"
		switch {
		case err != nil:
			outcome = "error"
		case res != nil && res.IsError:
			outcome = "tool_error"
		}
		metrics.ToolCallsTotal.WithLabelValues(req.Params.Name, outcome).Inc()
		return res, err
	}
}
