// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bestreads search
// pipeline: the narrowed upstream catalog records, the enriched results
// handed to the presentation layer, and the configuration structs.
package types

// UnknownTitle is the title reported for a work the catalog returned
// without one.
const UnknownTitle = "Unknown Title"

// UnknownAuthor is the label the presentation layer shows when no author
// name could be resolved for a work.
const UnknownAuthor = "Unknown Author"

// WorkRecord is one catalog entry as returned by the upstream search
// endpoint. Optional scalars are pointers so that a field the catalog did
// not send stays distinguishable from an empty or zero value.
type WorkRecord struct {
	// Key is the catalog work key (e.g. "/works/OL27448W").
	Key string `json:"key" yaml:"key"`

	// Title is the work title, nil when the catalog omitted it.
	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	// AuthorKeys lists author identifiers in catalog order. May be empty.
	AuthorKeys []string `json:"author_key,omitempty" yaml:"author_key,omitempty"`

	// CoverID is the numeric cover image id, nil when absent.
	CoverID *int `json:"cover_i,omitempty" yaml:"cover_i,omitempty"`

	// ISBN lists the ISBNs of the work's editions.
	ISBN []string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
}

// CatalogPage is the validated, narrowed payload of one catalog search.
type CatalogPage struct {
	// Start is the zero-based offset of the first document.
	Start int `json:"start" yaml:"start"`

	// NumFound is the total number of matching works across all pages.
	NumFound int `json:"num_found" yaml:"num_found"`

	// Docs holds the works of the requested page in catalog order.
	Docs []WorkRecord `json:"docs" yaml:"docs"`
}

// AuthorRecord is the payload of a single author lookup. Only Key is
// guaranteed; every naming field is optional.
type AuthorRecord struct {
	Key            string   `json:"key" yaml:"key"`
	Name           *string  `json:"name,omitempty" yaml:"name,omitempty"`
	PersonalName   *string  `json:"personal_name,omitempty" yaml:"personal_name,omitempty"`
	AlternateNames []string `json:"alternate_names,omitempty" yaml:"alternate_names,omitempty"`
	BirthDate      *string  `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	DeathDate      *string  `json:"death_date,omitempty" yaml:"death_date,omitempty"`
}

// DisplayName returns the name to show for the author: Name, then
// PersonalName. ok is false when neither is set to a non-empty value.
func (a AuthorRecord) DisplayName() (name string, ok bool) {
	if a.Name != nil && *a.Name != "" {
		return *a.Name, true
	}
	if a.PersonalName != nil && *a.PersonalName != "" {
		return *a.PersonalName, true
	}
	return "", false
}

// EnrichedBookResult is one work after author and cover enrichment.
// It is built once and never mutated afterwards.
type EnrichedBookResult struct {
	// Key is the catalog work key.
	Key string `json:"key" yaml:"key"`

	// Title is the work title, or UnknownTitle.
	Title string `json:"title" yaml:"title"`

	// AuthorNames holds the resolved author names in author-key order.
	// Nil when no lookup resolved a name.
	AuthorNames []string `json:"authorNames,omitempty" yaml:"author_names,omitempty"`

	// CoverURL is the cover image URL, empty when the work has no
	// usable identifier.
	CoverURL string `json:"coverUrl,omitempty" yaml:"cover_url,omitempty"`

	// ISBN lists the ISBNs reported by the catalog.
	ISBN []string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
}

// SearchResultSet is the output of one aggregated search. Results are in
// catalog order, one per catalog document.
type SearchResultSet struct {
	Start      int                  `json:"start" yaml:"start"`
	TotalFound int                  `json:"totalFound" yaml:"total_found"`
	Results    []EnrichedBookResult `json:"results" yaml:"results"`
}
