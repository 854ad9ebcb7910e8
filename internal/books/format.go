// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package books

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bestreads/pkg/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Output formats accepted by Format.
const (
	FormatNameTable = "table"
	FormatNameJSON  = "json"
	FormatNameYAML  = "yaml"
)

// Format writes rs to w in the named format.
func Format(rs types.SearchResultSet, format string, w io.Writer) error {
	switch strings.ToLower(format) {
	case "", FormatNameTable:
		FormatTable(rs, w)
		return nil
	case FormatNameJSON:
		return FormatJSON(rs, w)
	case FormatNameYAML:
		return FormatYAML(rs, w)
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// FormatTable writes a human-readable table of results to w.
func FormatTable(rs types.SearchResultSet, w io.Writer) {
	if len(rs.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-24s  %s\n", "Rank", "Title", "Authors", "Cover")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range rs.Results {
		fmt.Fprintf(w, "%-4d  %-50s  %-24s  %s\n",
			rs.Start+i+1, truncate(r.Title, 50), formatAuthors(r.AuthorNames), r.CoverURL)
	}

	fmt.Fprintf(w, "\nShowing %d of %d results\n", len(rs.Results), rs.TotalFound)
}

// FormatJSON writes the result set as indented JSON to w.
func FormatJSON(rs types.SearchResultSet, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rs)
}

// FormatYAML writes the result set as YAML to w.
func FormatYAML(rs types.SearchResultSet, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rs); err != nil {
		return err
	}
	return enc.Close()
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return types.UnknownAuthor
	case 1:
		return truncate(authors[0], 24)
	default:
		return truncate(authors[0], 17) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
