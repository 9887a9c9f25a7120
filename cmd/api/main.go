// Command api serves player co-appearance graphs over HTTP.
//
// Usage:
//
//	squadgraph-api
//	API_PORT=8080 MATCHES_FILE=data/matches.json squadgraph-api
//	DATA_SOURCE=postgres DATABASE_URL=postgres://... squadgraph-api

// @title Squadgraph API
// @version 1.0.0
// @description Player co-appearance graphs for a football match dataset: which selected players shared a match, and how often, in a given year.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name Squadgraph
// @license.name MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/squadgraph/internal/api"
	"github.com/albapepper/squadgraph/internal/cache"
	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/graph"
	"github.com/albapepper/squadgraph/internal/listener"
	"github.com/albapepper/squadgraph/internal/store"

	_ "github.com/albapepper/squadgraph/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load the dataset once; it is read-only from here on.
	logger.Info("Loading dataset...", "source", cfg.DataSource)
	ds, dir, pool, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	}
	if lo, hi, ok := ds.YearBounds(); ok {
		logger.Info("Dataset ready", "matches", ds.Len(), "players", dir.Len(), "clubs", len(ds.Clubs()), "min_year", lo, "max_year", hi)
	} else {
		logger.Warn("Dataset has no matches; graph endpoints will report NO_DATA")
	}

	appCache := cache.New(cfg.CacheEnabled)
	defer appCache.Close()
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "ttl", cfg.CacheTTL)

	live := graph.NewLive(graph.NewEngine(ds, dir))

	// Reload when `squadgraph load` publishes a new dataset.
	if pool != nil {
		go listener.Start(ctx, cfg.DatabaseURL, func(ctx context.Context, event listener.DatasetEvent) {
			ds, dir, stats, err := store.Load(ctx, pool.Pool, logger)
			if err != nil {
				logger.Error("Dataset reload failed", "error", err)
				return
			}
			live.Swap(graph.NewEngine(ds, dir))
			appCache.Clear()
			logger.Info("Dataset reloaded", "summary", stats.Summary())
		}, logger)
	}

	router := api.NewRouter(live, appCache, cfg, pool)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting Squadgraph API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
