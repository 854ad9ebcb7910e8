// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bestreads/internal/mcpserver"
	"github.com/pdiddy/bestreads/internal/middleware"
	"github.com/pdiddy/bestreads/pkg/types"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search_books MCP tool",
	Long: `Serve exposes book search as the search_books MCP tool together with its
results widget. The stdio transport (default) talks to a client over
stdin/stdout. The http transport serves streamable HTTP on --addr, plus
/metrics and /healthz.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("transport", "", "stdio or http (default stdio)")
	serveCmd.Flags().String("addr", "", "listen address in http mode (default :8000)")
	_ = viper.BindPFlag("server.transport", serveCmd.Flags().Lookup("transport"))
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	srv := mcpserver.New(newService(cfg.Catalog), mcpserver.Options{
		Version:      version,
		WidgetDomain: cfg.Server.WidgetDomain,
		Catalog:      cfg.Catalog,
	})

	switch cfg.Server.Transport {
	case types.TransportHTTP:
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serveHTTP(ctx, srv, cfg.Server)
	default:
		logrus.WithField("version", version).Info("serving MCP over stdio")
		return server.ServeStdio(srv)
	}
}

// newHTTPHandler routes the MCP endpoint, metrics and health check behind
// the request logger, CSP and CORS middleware.
func newHTTPHandler(srv *server.MCPServer, cfg types.ServerConfig) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(cfg.EndpointPath, server.NewStreamableHTTPServer(srv,
		server.WithEndpointPath(cfg.EndpointPath),
		server.WithStateLess(true),
	))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, version)
	})

	return middleware.Chain(mux,
		middleware.RequestLogger(logrus.StandardLogger()),
		middleware.FrameAncestors,
		middleware.CORS,
	)
}

// serveHTTP runs the HTTP transport until ctx is cancelled, then shuts
// down gracefully.
func serveHTTP(ctx context.Context, srv *server.MCPServer, cfg types.ServerConfig) error {
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHTTPHandler(srv, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":     cfg.Addr,
			"endpoint": cfg.EndpointPath,
			"version":  version,
		}).Info("serving MCP over HTTP")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
