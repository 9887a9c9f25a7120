package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
)

// --------------------------------------------------------------------------
// On-disk format (matches.json / players.json)
// --------------------------------------------------------------------------

// TeamRecord is the JSON shape of one side of a match.
type TeamRecord struct {
	ClubID   *int   `json:"club_id"`
	ClubName string `json:"club_name"`
	Players  []int  `json:"players"`
}

// MatchRecord is the JSON shape of one match, keyed by match id in the file.
type MatchRecord struct {
	Date     *string    `json:"date"`
	HomeTeam TeamRecord `json:"home_team"`
	AwayTeam TeamRecord `json:"away_team"`
}

// LoadStats reports what a load kept and what it dropped.
type LoadStats struct {
	Matches        int
	SkippedMatches int
	Players        int
	SkippedPlayers int
}

// Summary returns a human-readable summary of the load.
func (s LoadStats) Summary() string {
	return fmt.Sprintf("matches=%d skipped_matches=%d players=%d skipped_players=%d",
		s.Matches, s.SkippedMatches, s.Players, s.SkippedPlayers)
}

// --------------------------------------------------------------------------
// Loading
// --------------------------------------------------------------------------

// LoadFiles reads matches.json and players.json from disk.
func LoadFiles(matchesPath, playersPath string, logger *slog.Logger) (*Dataset, *PlayerDirectory, LoadStats, error) {
	var stats LoadStats

	mf, err := os.Open(matchesPath)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("open matches file: %w", err)
	}
	defer mf.Close()

	pf, err := os.Open(playersPath)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("open players file: %w", err)
	}
	defer pf.Close()

	ds, stats, err := DecodeMatches(mf, logger)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("decode %s: %w", matchesPath, err)
	}
	dir, skipped, err := DecodePlayers(pf)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("decode %s: %w", playersPath, err)
	}
	stats.Players = dir.Len()
	stats.SkippedPlayers = skipped
	return ds, dir, stats, nil
}

// DecodeMatches reads a matches.json document. Matches without a usable
// year are skipped and counted rather than failing the whole load.
func DecodeMatches(r io.Reader, logger *slog.Logger) (*Dataset, LoadStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var stats LoadStats

	var raw map[string]MatchRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, stats, fmt.Errorf("decode matches: %w", err)
	}

	matches := make([]Match, 0, len(raw))
	for id, rec := range raw {
		m, err := FromRecord(id, rec)
		if err != nil {
			logger.Warn("Skipping match", "match_id", id, "error", err)
			stats.SkippedMatches++
			continue
		}
		matches = append(matches, m)
	}
	stats.Matches = len(matches)
	return New(matches), stats, nil
}

// FromRecord converts a decoded record into a typed Match.
func FromRecord(id string, rec MatchRecord) (Match, error) {
	if rec.Date == nil {
		return Match{}, fmt.Errorf("match %s has no date", id)
	}
	year, err := ParseYear(*rec.Date)
	if err != nil {
		return Match{}, fmt.Errorf("match %s: %w", id, err)
	}
	return Match{
		ID:   id,
		Date: *rec.Date,
		Year: year,
		Home: teamFromRecord(rec.HomeTeam),
		Away: teamFromRecord(rec.AwayTeam),
	}, nil
}

func teamFromRecord(t TeamRecord) TeamEntry {
	players := make([]int, len(t.Players))
	copy(players, t.Players)
	return TeamEntry{ClubID: t.ClubID, ClubName: t.ClubName, Players: players}
}

// ToRecord is the inverse of FromRecord, used by the extractor.
func ToRecord(m Match) MatchRecord {
	date := m.Date
	return MatchRecord{
		Date:     &date,
		HomeTeam: TeamRecord{ClubID: m.Home.ClubID, ClubName: m.Home.ClubName, Players: m.Home.Players},
		AwayTeam: TeamRecord{ClubID: m.Away.ClubID, ClubName: m.Away.ClubName, Players: m.Away.Players},
	}
}

// DecodePlayers reads a players.json document ("id" -> "name"). Keys that
// are not integers are skipped; the count is returned.
func DecodePlayers(r io.Reader) (*PlayerDirectory, int, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("decode players: %w", err)
	}

	names := make(map[int]string, len(raw))
	skipped := 0
	for key, name := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			skipped++
			continue
		}
		names[id] = name
	}
	return &PlayerDirectory{names: names}, skipped, nil
}
