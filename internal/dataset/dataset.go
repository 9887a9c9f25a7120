// Package dataset holds the normalized, read-only match data the graph
// engine runs over: matches with two team rosters, and the player-id to
// display-name directory.
//
// A Dataset is built once at load time and never mutated afterwards, so it
// is safe to share across goroutines (e.g. concurrent HTTP requests).
package dataset

import (
	"fmt"
	"sort"
	"strconv"
)

// --------------------------------------------------------------------------
// Match model
// --------------------------------------------------------------------------

// TeamEntry is one side of a match: the club and the players who appeared
// for it. Players keeps input order and duplicates.
type TeamEntry struct {
	ClubID   *int
	ClubName string
	Players  []int
}

// Match is a single historical match record.
type Match struct {
	ID   string
	Date string // raw date text, e.g. "2019-08-17"
	Year int
	Home TeamEntry
	Away TeamEntry
}

// Teams returns the home and away entries, home first.
func (m *Match) Teams() [2]*TeamEntry {
	return [2]*TeamEntry{&m.Home, &m.Away}
}

// ParseYear extracts the year from the leading four digits of a date string.
func ParseYear(date string) (int, error) {
	if len(date) < 4 {
		return 0, fmt.Errorf("date %q has no year prefix", date)
	}
	year := 0
	for i := 0; i < 4; i++ {
		c := date[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("date %q has no year prefix", date)
		}
		year = year*10 + int(c-'0')
	}
	return year, nil
}

// --------------------------------------------------------------------------
// Dataset
// --------------------------------------------------------------------------

// Dataset is the immutable collection of all loaded matches.
type Dataset struct {
	matches []Match
	byYear  map[int][]int // year -> indexes into matches
	clubs   []string
	minYear int
	maxYear int
}

// New builds a Dataset from matches. Year bounds and the club list are
// computed once here. The slice is copied; callers may reuse theirs.
func New(matches []Match) *Dataset {
	ds := &Dataset{
		matches: make([]Match, len(matches)),
		byYear:  make(map[int][]int),
	}
	copy(ds.matches, matches)

	// Stable order regardless of how the source map was iterated.
	sort.SliceStable(ds.matches, func(i, j int) bool {
		return ds.matches[i].ID < ds.matches[j].ID
	})

	clubSet := make(map[string]struct{})
	for i, m := range ds.matches {
		if i == 0 || m.Year < ds.minYear {
			ds.minYear = m.Year
		}
		if i == 0 || m.Year > ds.maxYear {
			ds.maxYear = m.Year
		}
		ds.byYear[m.Year] = append(ds.byYear[m.Year], i)
		clubSet[m.Home.ClubName] = struct{}{}
		clubSet[m.Away.ClubName] = struct{}{}
	}

	ds.clubs = make([]string, 0, len(clubSet))
	for name := range clubSet {
		ds.clubs = append(ds.clubs, name)
	}
	sort.Strings(ds.clubs)
	return ds
}

// Len returns the number of matches.
func (d *Dataset) Len() int {
	return len(d.matches)
}

// Matches returns every match. The slice must not be modified.
func (d *Dataset) Matches() []Match {
	return d.matches
}

// ForYear calls fn for every match played in year. Returning false stops
// the iteration.
func (d *Dataset) ForYear(year int, fn func(m *Match) bool) {
	for _, idx := range d.byYear[year] {
		if !fn(&d.matches[idx]) {
			return
		}
	}
}

// YearBounds returns the minimum and maximum match year. ok is false when
// the dataset holds no matches.
func (d *Dataset) YearBounds() (minYear, maxYear int, ok bool) {
	if len(d.matches) == 0 {
		return 0, 0, false
	}
	return d.minYear, d.maxYear, true
}

// InBounds reports whether year lies within the dataset's year bounds.
func (d *Dataset) InBounds(year int) bool {
	lo, hi, ok := d.YearBounds()
	return ok && year >= lo && year <= hi
}

// Clubs returns every club name that appears on either side of any match,
// sorted. The slice must not be modified.
func (d *Dataset) Clubs() []string {
	return d.clubs
}

// --------------------------------------------------------------------------
// Player directory
// --------------------------------------------------------------------------

// PlayerDirectory maps player ids to display names. Lookups may miss.
type PlayerDirectory struct {
	names map[int]string
}

// NewPlayerDirectory copies names into a new directory.
func NewPlayerDirectory(names map[int]string) *PlayerDirectory {
	d := &PlayerDirectory{names: make(map[int]string, len(names))}
	for id, name := range names {
		d.names[id] = name
	}
	return d
}

// Lookup returns the display name for id, if known.
func (d *PlayerDirectory) Lookup(id int) (string, bool) {
	if d == nil {
		return "", false
	}
	name, ok := d.names[id]
	return name, ok
}

// Name returns the graph label for id: the display name, or the
// stringified id when the directory has no entry.
func (d *PlayerDirectory) Name(id int) string {
	if name, ok := d.Lookup(id); ok {
		return name
	}
	return strconv.Itoa(id)
}

// ListLabel returns the label used in selectable player lists: the display
// name, or "ID: {id}" when the directory has no entry.
func (d *PlayerDirectory) ListLabel(id int) string {
	if name, ok := d.Lookup(id); ok {
		return name
	}
	return "ID: " + strconv.Itoa(id)
}

// Len returns the number of known players.
func (d *PlayerDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Each calls fn for every entry in id order.
func (d *PlayerDirectory) Each(fn func(id int, name string)) {
	if d == nil {
		return
	}
	ids := make([]int, 0, len(d.names))
	for id := range d.names {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fn(id, d.names[id])
	}
}
