// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bestreads CLI.
// It serves the search_books MCP tool and offers the same search from the
// command line.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bestreads/internal/books"
	"github.com/pdiddy/bestreads/internal/httputil"
	"github.com/pdiddy/bestreads/internal/logger"
	"github.com/pdiddy/bestreads/internal/openlibrary"
	"github.com/pdiddy/bestreads/internal/secrets"
	"github.com/pdiddy/bestreads/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the bestreads CLI.
var rootCmd = &cobra.Command{
	Use:   "bestreads",
	Short: "Book search over Open Library, as an MCP tool and a CLI",
	Long: `bestreads searches the Open Library catalog, resolves author names and
cover images for every hit, and returns the results in catalog order.

"serve" exposes the search as the search_books MCP tool (stdio or HTTP);
"search" and "repl" run it from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Configure(viper.GetString("log.level"), viper.GetString("log.format"), os.Stderr); err != nil {
			return err
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logrus.WithField("keys", keys).Debug("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bestreads.yaml or ~/.config/bestreads/bestreads.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", "15s")
	v.SetDefault("http.user_agent", "bestreads/"+version)
	v.SetDefault("http.contact", "")
	v.SetDefault("http.requests_per_second", 0)

	v.SetDefault("catalog.base_url", openlibrary.DefaultBaseURL)
	v.SetDefault("catalog.sort", "rating desc")
	v.SetDefault("catalog.default_limit", types.DefaultLimit)
	v.SetDefault("catalog.max_limit", types.DefaultMaxLimit)
	v.SetDefault("catalog.max_concurrency", 8)
	v.SetDefault("catalog.cover_size", "M")

	v.SetDefault("server.transport", string(types.TransportStdio))
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.endpoint_path", "/mcp")
	v.SetDefault("server.widget_domain", "https://openlibrary.org")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// bindEnv maps BESTREADS_<SECTION>_<KEY> variables onto config keys.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("BESTREADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func initConfig() {
	if err := secrets.LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bestreads")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bestreads"))
		}
	}

	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig builds the application config from v. The contact address
// falls back to the openlibrary-contact secret.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		Catalog: types.CatalogConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:           v.GetDuration("http.timeout"),
				UserAgent:         v.GetString("http.user_agent"),
				Contact:           secrets.Lookup(loadedSecrets, secrets.ContactKey, v.GetString("http.contact")),
				RequestsPerSecond: v.GetFloat64("http.requests_per_second"),
			},
			BaseURL:        v.GetString("catalog.base_url"),
			Sort:           v.GetString("catalog.sort"),
			DefaultLimit:   v.GetInt("catalog.default_limit"),
			MaxLimit:       v.GetInt("catalog.max_limit"),
			MaxConcurrency: v.GetInt("catalog.max_concurrency"),
			CoverSize:      v.GetString("catalog.cover_size"),
		},
		Server: types.ServerConfig{
			Transport:    types.Transport(strings.ToLower(v.GetString("server.transport"))),
			Addr:         v.GetString("server.addr"),
			EndpointPath: v.GetString("server.endpoint_path"),
			WidgetDomain: v.GetString("server.widget_domain"),
		},
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	switch cfg.Server.Transport {
	case types.TransportStdio, types.TransportHTTP:
	default:
		return types.Config{}, fmt.Errorf("invalid server.transport %q: want stdio or http", cfg.Server.Transport)
	}
	if cfg.Catalog.RequestsPerSecond < 0 {
		return types.Config{}, fmt.Errorf("invalid http.requests_per_second %v: must not be negative", cfg.Catalog.RequestsPerSecond)
	}
	if !strings.HasPrefix(cfg.Server.EndpointPath, "/") {
		cfg.Server.EndpointPath = "/" + cfg.Server.EndpointPath
	}
	return cfg, nil
}

// newService wires the Open Library client into the aggregation service.
func newService(cfg types.CatalogConfig) *books.Service {
	ol := openlibrary.NewClient(httputil.NewClient(cfg.HTTPConfig), cfg)
	return books.NewService(ol, ol, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
