// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bestreads/internal/books"
	"github.com/pdiddy/bestreads/pkg/types"
)

const historyFile = ".bestreads_history"

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive book search",
	Long: `Repl reads one query per line and prints the results as a table.
Type "exit" or "quit", or press Ctrl-D, to leave.`,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().Int("limit", 0, "maximum number of results per query (default catalog.default_limit)")
	rootCmd.AddCommand(replCmd)
}

// prompter reads one line of input. *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "bestreads %s interactive search\n", version)
	return repl(cmd.Context(), line, newService(cfg.Catalog), cfg.Catalog, limit, out)
}

// repl runs searches until the input ends or the user quits. Failed
// searches are reported and the loop goes on.
func repl(ctx context.Context, p prompter, svc *books.Service, cfg types.CatalogConfig, limit int, out io.Writer) error {
	for {
		input, err := p.Prompt("bestreads> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		p.AppendHistory(input)

		if err := searchAndPrint(ctx, svc, cfg, input, limit, types.DefaultPage, books.FormatNameTable, out); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		fmt.Fprintln(out)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
