// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package books runs a catalog search and enriches every returned work
// with author names and a cover URL.
//
// Enrichment fans out concurrently, one task per work and one lookup per
// author key, and writes each outcome into the slot of its input position,
// so results keep catalog order no matter which lookup finishes first.
// A failed author lookup only drops that author's name; a failed catalog
// search fails the whole call.
package books

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/iter"

	"github.com/pdiddy/bestreads/internal/logger"
	"github.com/pdiddy/bestreads/internal/metrics"
	"github.com/pdiddy/bestreads/internal/openlibrary"
	"github.com/pdiddy/bestreads/pkg/types"
)

const defaultMaxConcurrency = 8

// Catalog searches the upstream catalog. *openlibrary.Client implements it.
type Catalog interface {
	SearchWorks(ctx context.Context, r openlibrary.SearchWorksRequest) (*types.CatalogPage, error)
}

// AuthorLookup fetches one author record. *openlibrary.Client implements it.
type AuthorLookup interface {
	GetAuthor(ctx context.Context, authorKey string) (*types.AuthorRecord, error)
}

// Service is the aggregation service. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	catalog        Catalog
	authors        AuthorLookup
	maxConcurrency int
	coverSize      openlibrary.CoverSize
}

// NewService wires a Service to its upstream clients. cfg supplies the
// concurrency bound and the cover size.
func NewService(catalog Catalog, authors AuthorLookup, cfg types.CatalogConfig) *Service {
	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	return &Service{
		catalog:        catalog,
		authors:        authors,
		maxConcurrency: maxConcurrency,
		coverSize:      openlibrary.ParseCoverSize(cfg.CoverSize),
	}
}

// SearchBooks runs the catalog search for q and returns one enriched
// result per catalog document, in catalog order. Catalog errors
// (*openlibrary.UpstreamError, *openlibrary.SchemaValidationError, transport
// errors) are returned as is and no author lookup is made.
func (s *Service) SearchBooks(ctx context.Context, q types.SearchQuery) (types.SearchResultSet, error) {
	if q.Query == "" {
		return types.SearchResultSet{}, types.ErrEmptyQuery
	}
	defer logger.Track(ctx, "search_books")()

	page, err := s.catalog.SearchWorks(ctx, openlibrary.SearchWorksRequest{
		Query: q.Query,
		Limit: q.Limit,
		Page:  q.Page,
	})
	if err != nil {
		return types.SearchResultSet{}, err
	}

	mapper := iter.Mapper[types.WorkRecord, types.EnrichedBookResult]{MaxGoroutines: s.maxConcurrency}
	results := mapper.Map(page.Docs, func(w *types.WorkRecord) types.EnrichedBookResult {
		return s.enrich(ctx, *w)
	})

	logger.For(ctx).WithFields(logrus.Fields{
		"query":       q.Query,
		"total_found": page.NumFound,
		"returned":    len(results),
	}).Debug("search completed")

	return types.SearchResultSet{
		Start:      page.Start,
		TotalFound: page.NumFound,
		Results:    results,
	}, nil
}

// enrich builds the result for one work.
func (s *Service) enrich(ctx context.Context, w types.WorkRecord) types.EnrichedBookResult {
	r := types.EnrichedBookResult{
		Key:         w.Key,
		Title:       types.UnknownTitle,
		AuthorNames: s.resolveAuthors(ctx, w.AuthorKeys),
		ISBN:        w.ISBN,
	}
	if w.Title != nil && *w.Title != "" {
		r.Title = *w.Title
	}

	ref := openlibrary.CoverRef{CoverID: w.CoverID, Size: s.coverSize}
	if len(w.ISBN) > 0 {
		ref.ISBN = w.ISBN[0]
	}
	if u, ok := openlibrary.CoverURL(ref); ok {
		r.CoverURL = u
	}
	return r
}

// authorName is the outcome of one author lookup.
type authorName struct {
	name string
	ok   bool
}

// resolveAuthors looks up every key concurrently and returns the names
// that resolved, in key order. It returns nil when none did.
func (s *Service) resolveAuthors(ctx context.Context, keys []string) []string {
	if len(keys) == 0 {
		return nil
	}

	mapper := iter.Mapper[string, authorName]{MaxGoroutines: s.maxConcurrency}
	lookups := mapper.Map(keys, func(key *string) authorName {
		return s.lookupAuthor(ctx, *key)
	})

	var names []string
	for _, l := range lookups {
		if l.ok {
			names = append(names, l.name)
		}
	}
	return names
}

// lookupAuthor never fails: errors are logged, counted, and turned into
// a miss.
func (s *Service) lookupAuthor(ctx context.Context, key string) authorName {
	a, err := s.authors.GetAuthor(ctx, key)
	if err != nil {
		metrics.AuthorLookupFailuresTotal.Inc()
		logger.For(ctx).WithError(err).WithField("author_key", key).Warn("author lookup failed")
		return authorName{}
	}
	if a == nil {
		return authorName{}
	}
	name, ok := a.DisplayName()
	return authorName{name: name, ok: ok}
}
