package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/squadgraph/internal/config"
	"github.com/albapepper/squadgraph/internal/dataset"
)

// One row per (match, side); rosters come back as arrays in position order.
const loadTeamsSQL = `
	SELECT m.id, m.match_date, t.side, t.club_id, t.club_name,
	       COALESCE(array_agg(p.player_id ORDER BY p.position)
	                FILTER (WHERE p.player_id IS NOT NULL), '{}')
	FROM ` + config.MatchesTable + ` m
	JOIN ` + config.MatchTeamsTable + ` t ON t.match_id = m.id
	LEFT JOIN ` + config.MatchPlayersTable + ` p ON p.match_id = t.match_id AND p.side = t.side
	GROUP BY m.id, m.match_date, t.side, t.club_id, t.club_name
	ORDER BY m.id`

const loadPlayersSQL = `SELECT id, name FROM ` + config.PlayersTable

// TeamRow is one scanned (match, side) row.
type TeamRow struct {
	MatchID  string
	Date     string
	Side     string
	ClubID   *int
	ClubName string
	Players  []int
}

// Load rebuilds the dataset and directory from Postgres.
func Load(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (*dataset.Dataset, *dataset.PlayerDirectory, dataset.LoadStats, error) {
	var stats dataset.LoadStats

	rows, err := pool.Query(ctx, loadTeamsSQL)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("query matches: %w", err)
	}
	var teamRows []TeamRow
	for rows.Next() {
		var r TeamRow
		if err := rows.Scan(&r.MatchID, &r.Date, &r.Side, &r.ClubID, &r.ClubName, &r.Players); err != nil {
			rows.Close()
			return nil, nil, stats, fmt.Errorf("scan match team: %w", err)
		}
		teamRows = append(teamRows, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, stats, fmt.Errorf("read matches: %w", err)
	}

	matches, skipped := AssembleMatches(teamRows, logger)
	stats.Matches = len(matches)
	stats.SkippedMatches = skipped

	prows, err := pool.Query(ctx, loadPlayersSQL)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("query players: %w", err)
	}
	defer prows.Close()
	names := make(map[int]string)
	for prows.Next() {
		var id int
		var name string
		if err := prows.Scan(&id, &name); err != nil {
			return nil, nil, stats, fmt.Errorf("scan player: %w", err)
		}
		names[id] = name
	}
	if err := prows.Err(); err != nil {
		return nil, nil, stats, fmt.Errorf("read players: %w", err)
	}
	stats.Players = len(names)

	return dataset.New(matches), dataset.NewPlayerDirectory(names), stats, nil
}

// AssembleMatches folds (match, side) rows into matches. A match needs both
// sides and a parseable year; anything else is skipped and counted.
func AssembleMatches(rows []TeamRow, logger *slog.Logger) ([]dataset.Match, int) {
	if logger == nil {
		logger = slog.Default()
	}

	type partial struct {
		m          dataset.Match
		home, away bool
	}
	byID := make(map[string]*partial)
	order := make([]string, 0)

	for _, r := range rows {
		p, ok := byID[r.MatchID]
		if !ok {
			p = &partial{m: dataset.Match{ID: r.MatchID, Date: r.Date}}
			byID[r.MatchID] = p
			order = append(order, r.MatchID)
		}
		team := dataset.TeamEntry{ClubID: r.ClubID, ClubName: r.ClubName, Players: r.Players}
		if team.Players == nil {
			team.Players = []int{}
		}
		switch r.Side {
		case SideHome:
			p.m.Home, p.home = team, true
		case SideAway:
			p.m.Away, p.away = team, true
		}
	}

	matches := make([]dataset.Match, 0, len(order))
	skipped := 0
	for _, id := range order {
		p := byID[id]
		if !p.home || !p.away {
			logger.Warn("Skipping match with a missing side", "match_id", id)
			skipped++
			continue
		}
		year, err := dataset.ParseYear(p.m.Date)
		if err != nil {
			logger.Warn("Skipping match", "match_id", id, "error", err)
			skipped++
			continue
		}
		p.m.Year = year
		matches = append(matches, p.m)
	}
	return matches, skipped
}
