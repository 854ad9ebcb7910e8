// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bestreads/internal/books"
	"github.com/pdiddy/bestreads/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search Open Library for books",
	Long: `Search queries the Open Library catalog and prints every hit with its
resolved author names and cover URL, in catalog order. Authors that cannot
be resolved are left out; the search itself only fails when the catalog
does.`,
	Example: `  bestreads search lord of the rings
  bestreads search --limit 10 --format json dune`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (default catalog.default_limit)")
	searchCmd.Flags().Int("page", 1, "1-based result page")
	searchCmd.Flags().String("format", books.FormatNameTable, "output format: table, json, or yaml")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	page, _ := cmd.Flags().GetInt("page")
	format, _ := cmd.Flags().GetString("format")

	return searchAndPrint(cmd.Context(), newService(cfg.Catalog), cfg.Catalog,
		strings.Join(args, " "), limit, page, format, cmd.OutOrStdout())
}

// searchAndPrint runs one search and writes the results to w.
func searchAndPrint(ctx context.Context, svc *books.Service, cfg types.CatalogConfig, text string, limit, page int, format string, w io.Writer) error {
	q, err := types.NewSearchQueryWithConfig(text, limit, page, cfg)
	if err != nil {
		return err
	}
	rs, err := svc.SearchBooks(ctx, q)
	if err != nil {
		return err
	}
	return books.Format(rs, format, w)
}
