package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/dataset"
	"github.com/albapepper/squadgraph/internal/db"
	"github.com/albapepper/squadgraph/internal/listener"
	"github.com/albapepper/squadgraph/internal/store"
)

// runDB loads config, connects to Postgres and runs fn.
func runDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

func schemaCmd() *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the Postgres schema, or apply it with --apply",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !apply {
				fmt.Fprint(cmd.OutOrStdout(), db.Schema())
				return nil
			}
			return runDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := pool.EnsureSchema(ctx); err != nil {
					return err
				}
				logger.Info("Schema applied")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "Apply the schema to DATABASE_URL")
	return cmd
}

func loadCmd() *cobra.Command {
	var matchesPath, playersPath string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Replace the stored dataset with matches.json and players.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if matchesPath == "" {
					matchesPath = cfg.MatchesFile
				}
				if playersPath == "" {
					playersPath = cfg.PlayersFile
				}
				ds, dir, stats, err := dataset.LoadFiles(matchesPath, playersPath, logger)
				if err != nil {
					return err
				}
				logger.Info("Files read", "summary", stats.Summary())

				if err := pool.EnsureSchema(ctx); err != nil {
					return err
				}

				start := time.Now()
				result := store.Save(ctx, pool.Pool, ds, dir, logger)
				logger.Info("Load finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("load error", "error", e)
				}
				if len(result.Errors) > 0 {
					return fmt.Errorf("%d errors while loading", len(result.Errors))
				}
				return listener.Notify(ctx, pool.Pool, listener.DatasetEvent{
					Matches: result.MatchesUpserted,
					Players: result.PlayersUpserted,
				})
			})
		},
	}
	cmd.Flags().StringVar(&matchesPath, "matches", "", "matches.json path (default MATCHES_FILE)")
	cmd.Flags().StringVar(&playersPath, "players", "", "players.json path (default PLAYERS_FILE)")
	return cmd
}
