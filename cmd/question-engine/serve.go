// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/question-engine/internal/corpus"
	"github.com/pdiddy/question-engine/internal/server"
	"github.com/pdiddy/question-engine/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the query engine over HTTP",
	Long: `Serve exposes read-only question queries over HTTP:
GET /api/questions with facet query parameters, /api/sources, /api/topics,
and /healthz. The corpus is built on the first request and cached for the
process lifetime; SIGHUP forces a rebuild from the data directory, keeping
the previous corpus if the rebuild fails. Responses carry immutable cache
headers whenever the payload is non-empty.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Duration("shutdown-timeout", 0, "graceful shutdown timeout (default 30s)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	pcfg := pipelineConfig()
	cfg := pcfg.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if d, _ := cmd.Flags().GetDuration("shutdown-timeout"); d > 0 {
		cfg.ShutdownTimeout = d
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cache := corpus.NewCache(corpus.NewBuilder(types.CorpusConfig{DataDir: dataDir(cmd)}))
	srv := server.New(cache, pcfg.Query, logger)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("question engine serving", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	reloadCh := make(chan os.Signal, 1)
	signal.Notify(reloadCh, syscall.SIGHUP)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case err := <-errCh:
			return err
		case <-reloadCh:
			logger.Info("rebuilding corpus")
			if _, err := cache.Rebuild(cmd.Context(), io.Discard); err != nil {
				logger.Error("corpus rebuild failed, serving previous corpus", zap.Error(err))
			}
		case <-shutdownCh:
			logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(ctx)
		}
	}
}
