// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openlibrary

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/bestreads/pkg/types"
)

const endpointAuthors = "authors"

// GetAuthor fetches one author record. authorKey may be a bare id
// ("OL23919A") or a path-style key ("/authors/OL23919A").
func (c *Client) GetAuthor(ctx context.Context, authorKey string) (*types.AuthorRecord, error) {
	id := NormalizeAuthorKey(authorKey)
	if id == "" {
		return nil, fmt.Errorf("empty author key %q", authorKey)
	}

	reqURL := c.BaseURL + "/authors/" + url.PathEscape(id) + ".json"

	var ar authorResponse
	if err := c.getJSON(ctx, endpointAuthors, reqURL, authorSchema, &ar); err != nil {
		return nil, err
	}

	return &types.AuthorRecord{
		Key:            ar.Key,
		Name:           ar.Name,
		PersonalName:   ar.PersonalName,
		AlternateNames: ar.AlternateNames,
		BirthDate:      ar.BirthDate,
		DeathDate:      ar.DeathDate,
	}, nil
}

// NormalizeAuthorKey strips a leading "/authors/" or "authors/" prefix and
// surrounding slashes and whitespace.
func NormalizeAuthorKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "/")
	key = strings.TrimPrefix(key, "authors/")
	return strings.Trim(key, "/")
}

// Open Library author JSON structure.
type authorResponse struct {
	Key            string   `json:"key"`
	Name           *string  `json:"name"`
	PersonalName   *string  `json:"personal_name"`
	AlternateNames []string `json:"alternate_names"`
	BirthDate      *string  `json:"birth_date"`
	DeathDate      *string  `json:"death_date"`
}
