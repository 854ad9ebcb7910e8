// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"strings"
)

// ErrEmptyQuery is returned when a search is requested without any text.
var ErrEmptyQuery = errors.New("query is empty: provide a title, author, or ISBN to search for")

const (
	// DefaultLimit is the page size used when none is requested.
	DefaultLimit = 5

	// DefaultPage is the page used when none is requested.
	DefaultPage = 1

	// DefaultMaxLimit caps the page size of a single catalog request.
	DefaultMaxLimit = 100
)

// SearchQuery holds the parameters of one book search. Build it with
// NewSearchQuery; the zero value is not a valid query.
type SearchQuery struct {
	Query string `json:"query" yaml:"query"`
	Limit int    `json:"limit" yaml:"limit"`
	Page  int    `json:"page" yaml:"page"`
}

// NewSearchQuery trims text and fills in defaults. A non-positive limit or
// page falls back to DefaultLimit or DefaultPage, and a limit above
// DefaultMaxLimit is clamped. It fails with ErrEmptyQuery when text is blank.
func NewSearchQuery(text string, limit, page int) (SearchQuery, error) {
	return newSearchQuery(text, limit, page, DefaultLimit, DefaultMaxLimit)
}

// NewSearchQueryWithConfig is NewSearchQuery using the defaults and cap
// from cfg instead of the package constants.
func NewSearchQueryWithConfig(text string, limit, page int, cfg CatalogConfig) (SearchQuery, error) {
	def := cfg.DefaultLimit
	if def <= 0 {
		def = DefaultLimit
	}
	maxLimit := cfg.MaxLimit
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return newSearchQuery(text, limit, page, def, maxLimit)
}

func newSearchQuery(text string, limit, page, defLimit, maxLimit int) (SearchQuery, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SearchQuery{}, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page <= 0 {
		page = DefaultPage
	}
	return SearchQuery{Query: text, Limit: limit, Page: page}, nil
}
