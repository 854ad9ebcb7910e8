// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const defaultWidgetDomain = "https://openlibrary.org"

func widgetMeta(domain string) map[string]any {
	if domain == "" {
		domain = defaultWidgetDomain
	}
	return map[string]any{
		"openai/widgetDescription":   widgetDescription,
		"openai/widgetPrefersBorder": true,
		"openai/widgetDomain":        domain,
	}
}

func widgetResource(domain string) mcp.Resource {
	res := mcp.NewResource(WidgetURI, "search-books-widget",
		mcp.WithResourceDescription(widgetDescription),
		mcp.WithMIMEType(WidgetMIMEType),
	)
	res.Meta = mcp.NewMetaFromMap(widgetMeta(domain))
	return res
}

func widgetHandler(domain string) server.ResourceHandlerFunc {
	return func(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				Meta:     widgetMeta(domain),
				URI:      req.Params.URI,
				MIMEType: WidgetMIMEType,
				Text:     widgetHTML,
			},
		}, nil
	}
}
