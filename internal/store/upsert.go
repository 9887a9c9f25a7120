package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/dataset"
)

// Sides in match_teams / match_players.
const (
	SideHome = "home"
	SideAway = "away"
)

// Save makes the stored dataset match ds and dir: every directory entry
// and match is upserted, then stored matches absent from ds are deleted.
// Each match is replaced atomically; a failure is recorded and the run
// continues. Pruning is skipped when the run was interrupted.
func Save(ctx context.Context, pool *pgxpool.Pool, ds *dataset.Dataset, dir *dataset.PlayerDirectory, logger *slog.Logger) Result {
	var result Result

	logger.Info("Phase 1/3: Saving players...", "count", dir.Len())
	dir.Each(func(id int, name string) {
		if ctx.Err() != nil {
			return
		}
		if err := UpsertPlayer(ctx, pool, id, name); err != nil {
			result.AddErrorf("upsert player %d: %v", id, err)
			return
		}
		result.PlayersUpserted++
	})
	logger.Info("Players done", "count", result.PlayersUpserted)

	logger.Info("Phase 2/3: Saving matches...", "count", ds.Len())
	for i, m := range ds.Matches() {
		if ctx.Err() != nil {
			result.AddErrorf("save interrupted: %v", ctx.Err())
			break
		}
		rows, err := UpsertMatch(ctx, pool, m)
		if err != nil {
			result.AddErrorf("upsert match %s: %v", m.ID, err)
			continue
		}
		result.MatchesUpserted++
		result.RosterRows += rows
		if (i+1)%500 == 0 {
			logger.Info("Match progress", "count", i+1)
		}
	}
	logger.Info("Matches done", "count", result.MatchesUpserted, "roster_rows", result.RosterRows)

	if ctx.Err() != nil {
		return result
	}
	logger.Info("Phase 3/3: Pruning matches no longer in the dataset...")
	keep := make([]string, 0, ds.Len())
	for _, m := range ds.Matches() {
		keep = append(keep, m.ID)
	}
	deleted, err := PruneMatches(ctx, pool, keep)
	if err != nil {
		result.AddErrorf("prune matches: %v", err)
		return result
	}
	result.MatchesDeleted = int(deleted)
	logger.Info("Prune done", "deleted", deleted)
	return result
}

// execer is the part of pgxpool.Pool that PruneMatches needs.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PruneMatches deletes stored matches whose id is not in keep and returns
// how many were removed. Rosters follow through ON DELETE CASCADE.
func PruneMatches(ctx context.Context, db execer, keep []string) (int64, error) {
	if keep == nil {
		keep = []string{}
	}
	tag, err := db.Exec(ctx, `DELETE FROM `+config.MatchesTable+` WHERE NOT (id = ANY($1))`, keep)
	if err != nil {
		return 0, fmt.Errorf("delete stale matches: %w", err)
	}
	return tag.RowsAffected(), nil
}

// UpsertPlayer writes a directory entry to the players table.
func UpsertPlayer(ctx context.Context, pool *pgxpool.Pool, id int, name string) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO `+config.PlayersTable+` (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = NOW()`,
		id, name,
	)
	return err
}

// UpsertMatch replaces a match and both rosters in one transaction and
// returns the number of roster rows written.
func UpsertMatch(ctx context.Context, pool *pgxpool.Pool, m dataset.Match) (int, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO `+config.MatchesTable+` (id, match_date, year)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			match_date = EXCLUDED.match_date,
			year = EXCLUDED.year,
			updated_at = NOW()`,
		m.ID, m.Date, m.Year,
	); err != nil {
		return 0, fmt.Errorf("upsert match row: %w", err)
	}

	// Cascades to match_players.
	if _, err := tx.Exec(ctx, `DELETE FROM `+config.MatchTeamsTable+` WHERE match_id = $1`, m.ID); err != nil {
		return 0, fmt.Errorf("clear rosters: %w", err)
	}

	batch := &pgx.Batch{}
	rows := 0
	for _, side := range []struct {
		name string
		team dataset.TeamEntry
	}{{SideHome, m.Home}, {SideAway, m.Away}} {
		batch.Queue(`
			INSERT INTO `+config.MatchTeamsTable+` (match_id, side, club_id, club_name)
			VALUES ($1, $2, $3, $4)`,
			m.ID, side.name, side.team.ClubID, side.team.ClubName)
		for pos, playerID := range side.team.Players {
			batch.Queue(`
				INSERT INTO `+config.MatchPlayersTable+` (match_id, side, position, player_id)
				VALUES ($1, $2, $3, $4)`,
				m.ID, side.name, pos, playerID)
			rows++
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert rosters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return rows, nil
}
