// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/bestreads/pkg/types"
)

const (
	endpointSearch = "search"

	defaultSearchLimit = 10
)

// DefaultSearchFields is the field projection sent when a request sets none.
var DefaultSearchFields = []string{"key", "title", "author_key", "isbn", "cover_i"}

// SearchWorksRequest holds the parameters of one catalog search.
type SearchWorksRequest struct {
	Query string

	// Limit is the page size (default 10).
	Limit int

	// Page is the 1-based page number (default 1).
	Page int

	// Fields is the field projection. Nil selects DefaultSearchFields.
	Fields []string

	// Sort overrides the client's default sort hint when non-empty.
	Sort string
}

// SearchWorks runs one catalog search and returns the narrowed page.
// A non-2xx response yields *UpstreamError and a malformed body yields
// *SchemaValidationError. There is no retry.
func (c *Client) SearchWorks(ctx context.Context, r SearchWorksRequest) (*types.CatalogPage, error) {
	if strings.TrimSpace(r.Query) == "" {
		return nil, fmt.Errorf("empty Open Library query")
	}

	limit := r.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	page := r.Page
	if page <= 0 {
		page = 1
	}
	fields := r.Fields
	if fields == nil {
		fields = DefaultSearchFields
	}
	sort := r.Sort
	if sort == "" {
		sort = c.Sort
	}

	params := url.Values{
		"q":     {r.Query},
		"limit": {strconv.Itoa(limit)},
		"page":  {strconv.Itoa(page)},
	}
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	if sort != "" {
		params.Set("sort", sort)
	}

	reqURL := c.BaseURL + "/search.json?" + params.Encode()

	var sr searchResponse
	if err := c.getJSON(ctx, endpointSearch, reqURL, searchSchema, &sr); err != nil {
		return nil, err
	}

	out := &types.CatalogPage{
		Start:    sr.Start,
		NumFound: sr.NumFound,
		Docs:     make([]types.WorkRecord, 0, len(sr.Docs)),
	}
	for _, d := range sr.Docs {
		out.Docs = append(out.Docs, types.WorkRecord{
			Key:        d.Key,
			Title:      d.Title,
			AuthorKeys: d.AuthorKey,
			CoverID:    d.CoverI,
			ISBN:       d.ISBN,
		})
	}
	return out, nil
}

// Open Library search JSON structures.
type searchResponse struct {
	Start    int         `json:"start"`
	NumFound int         `json:"num_found"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key       string   `json:"key"`
	Title     *string  `json:"title"`
	AuthorKey []string `json:"author_key"`
	CoverI    *int     `json:"cover_i"`
	ISBN      []string `json:"isbn"`
}
