package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/dataset"
	"github.com/albapepper/squadgraph/internal/db"
)

// Open loads the dataset from the configured source. With
// DATA_SOURCE=postgres the connected pool is returned as well and the
// caller must close it; for files the pool is nil.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dataset.Dataset, *dataset.PlayerDirectory, *db.Pool, error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		ds, dir, stats, err := Load(ctx, pool.Pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("load dataset: %w", err)
		}
		logger.Info("Dataset loaded", "source", cfg.DataSource, "summary", stats.Summary())
		return ds, dir, pool, nil
	default:
		ds, dir, stats, err := dataset.LoadFiles(cfg.MatchesFile, cfg.PlayersFile, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("Dataset loaded", "source", cfg.DataSource, "matches_file", cfg.MatchesFile, "summary", stats.Summary())
		return ds, dir, nil, nil
	}
}
