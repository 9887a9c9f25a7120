// Package extract builds the matches.json / players.json dataset from the
// Kaggle "player-scores" CSV dump (games.csv, appearances.csv,
// players.csv).
//
// Only games between two allow-listed clubs inside a date window are kept.
// Each side's roster is the distinct players who made an appearance for that
// club in that game, in appearance order.
package extract

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/squadgraph/internal/dataset"
)

const dateLayout = "2006-01-02"

// DefaultClubIDs are the Transfermarkt ids of the clubs the dataset covers.
var DefaultClubIDs = []int{
	131, // FC Barcelona
	418, // Real Madrid
	281, // Man City
	985, // Man United
	27,  // Bayern Munich
	31,  // Liverpool FC
	11,  // Arsenal FC
	631, // Chelsea FC
	506, // Juventus
	5,   // AC Milan
	46,  // Inter Milan
	583, // Paris Saint-Germain
	13,  // Atletico Madrid
	16,  // Borussia Dortmund
}

// Options controls which games are extracted.
type Options struct {
	ClubIDs []int
	Since   time.Time
	Until   time.Time
}

// DefaultOptions covers 2014-01-01 through 2024-12-31 for DefaultClubIDs.
func DefaultOptions() Options {
	return Options{
		ClubIDs: DefaultClubIDs,
		Since:   time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC),
		Until:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Sources are the three CSV inputs.
type Sources struct {
	Games       io.Reader
	Appearances io.Reader
	Players     io.Reader
}

// Result is the extracted dataset plus counters.
type Result struct {
	Matches      []dataset.Match
	Players      map[int]string
	GamesScanned int
	Appearances  int
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("games_scanned=%d matches=%d appearances=%d players=%d",
		r.GamesScanned, len(r.Matches), r.Appearances, len(r.Players))
}

type game struct {
	id       int
	date     time.Time
	home     int
	away     int
	homeName string
	awayName string
}

// Run reads the sources and returns the filtered matches and the names of
// every player who appears in them.
func Run(src Sources, opts Options, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make(map[int]bool, len(opts.ClubIDs))
	for _, id := range opts.ClubIDs {
		allowed[id] = true
	}

	result := &Result{Players: make(map[int]string)}

	// 1. Games between allow-listed clubs inside the window.
	games := make(map[int]*game)
	var order []int
	err := readCSV(src.Games, "games", []string{"game_id", "date", "home_club_id", "away_club_id"}, func(row record) error {
		result.GamesScanned++
		id, ok1 := row.intCol("game_id")
		home, ok2 := row.intCol("home_club_id")
		away, ok3 := row.intCol("away_club_id")
		if !ok1 || !ok2 || !ok3 || !allowed[home] || !allowed[away] {
			return nil
		}
		date, ok := row.dateCol("date")
		if !ok || date.Before(opts.Since) || date.After(opts.Until) {
			return nil
		}
		if _, dup := games[id]; !dup {
			order = append(order, id)
		}
		games[id] = &game{
			id: id, date: date, home: home, away: away,
			homeName: row.strCol("home_club_name"),
			awayName: row.strCol("away_club_name"),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Filtered games", "kept", len(games), "scanned", result.GamesScanned)

	// 2. Appearances in kept games, split by the club the player turned out for.
	type rosterKey struct{ game, club int }
	rosters := make(map[rosterKey][]int)
	seen := make(map[rosterKey]map[int]bool)
	relevant := make(map[int]bool)
	err = readCSV(src.Appearances, "appearances", []string{"game_id", "player_id", "player_club_id"}, func(row record) error {
		gameID, ok := row.intCol("game_id")
		if !ok || games[gameID] == nil {
			return nil
		}
		playerID, ok1 := row.intCol("player_id")
		clubID, ok2 := row.intCol("player_club_id")
		if !ok1 || !ok2 {
			return nil
		}
		result.Appearances++
		key := rosterKey{gameID, clubID}
		if seen[key] == nil {
			seen[key] = make(map[int]bool)
		}
		if !seen[key][playerID] {
			seen[key][playerID] = true
			rosters[key] = append(rosters[key], playerID)
		}
		relevant[playerID] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range order {
		g := games[id]
		home, away := g.home, g.away
		result.Matches = append(result.Matches, dataset.Match{
			ID:   strconv.Itoa(g.id),
			Date: g.date.Format(dateLayout),
			Year: g.date.Year(),
			Home: dataset.TeamEntry{ClubID: &home, ClubName: g.homeName, Players: nonNil(rosters[rosterKey{g.id, g.home}])},
			Away: dataset.TeamEntry{ClubID: &away, ClubName: g.awayName, Players: nonNil(rosters[rosterKey{g.id, g.away}])},
		})
	}

	// 3. Names for every player who appeared; first row per id wins.
	err = readCSV(src.Players, "players", []string{"player_id", "name"}, func(row record) error {
		id, ok := row.intCol("player_id")
		if !ok || !relevant[id] {
			return nil
		}
		if _, dup := result.Players[id]; !dup {
			result.Players[id] = row.strCol("name")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// WriteMatches encodes matches in the matches.json layout.
func WriteMatches(w io.Writer, matches []dataset.Match) error {
	out := make(map[string]dataset.MatchRecord, len(matches))
	for _, m := range matches {
		out[m.ID] = dataset.ToRecord(m)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// WritePlayers encodes names in the players.json layout.
func WritePlayers(w io.Writer, names map[int]string) error {
	out := make(map[string]string, len(names))
	for id, name := range names {
		out[strconv.Itoa(id)] = name
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// --------------------------------------------------------------------------
// CSV helpers
// --------------------------------------------------------------------------

type record struct {
	cols   map[string]int
	fields []string
}

func (r record) strCol(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// intCol parses an integer column. Float renderings such as "131.0" are
// accepted; empty cells are reported as missing.
func (r record) intCol(name string) (int, bool) {
	s := r.strCol(name)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func (r record) dateCol(name string) (time.Time, bool) {
	s := r.strCol(name)
	if len(s) < len(dateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	return t, err == nil
}

func readCSV(src io.Reader, label string, required []string, fn func(record) error) error {
	if src == nil {
		return fmt.Errorf("%s: no input", label)
	}
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%s: read header: %w", label, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%s: missing columns %s", label, strings.Join(missing, ", "))
	}

	for line := 2; ; line++ {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: line %d: %w", label, line, err)
		}
		if err := fn(record{cols: cols, fields: fields}); err != nil {
			return err
		}
	}
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
