package graph

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/albapepper/squadgraph/internal/dataset"
)

var (
	// ErrEmptyDataset is returned when a session is opened over no matches.
	ErrEmptyDataset = errors.New("dataset has no matches")
	// ErrYearOutOfRange is returned for a year outside the dataset bounds.
	ErrYearOutOfRange = errors.New("year out of range")
	// ErrUnknownClub is returned when toggling a club that is not listed.
	ErrUnknownClub = errors.New("unknown club")
	// ErrUnknownPlayer is returned when toggling a player that is not
	// eligible for the current year and clubs.
	ErrUnknownPlayer = errors.New("player not eligible")
)

// --------------------------------------------------------------------------
// Engine
// --------------------------------------------------------------------------

// Engine binds the immutable dataset and directory. It holds no filter
// state and is safe for concurrent use.
type Engine struct {
	ds  *dataset.Dataset
	dir *dataset.PlayerDirectory
}

// NewEngine returns an engine over ds and dir.
func NewEngine(ds *dataset.Dataset, dir *dataset.PlayerDirectory) *Engine {
	return &Engine{ds: ds, dir: dir}
}

// Dataset returns the underlying dataset.
func (e *Engine) Dataset() *dataset.Dataset { return e.ds }

// Directory returns the underlying player directory.
func (e *Engine) Directory() *dataset.PlayerDirectory { return e.dir }

// OnFilterChanged recomputes the graph for state. It is the single
// recompute entry point; callers translate UI gestures into a new
// FilterState and hand the result to the presentation layer.
func (e *Engine) OnFilterChanged(state FilterState) *Graph {
	return ComputeGraph(e.ds, e.dir, state)
}

// Eligible returns the selectable players for year and clubs in
// presentation order.
func (e *Engine) Eligible(year int, clubs Set[string]) []PlayerOption {
	return SortPlayers(EligiblePlayers(e.ds, year, clubs), e.dir)
}

// CheckYear returns ErrYearOutOfRange unless year lies within the dataset
// bounds.
func (e *Engine) CheckYear(year int) error {
	lo, hi, ok := e.ds.YearBounds()
	if !ok {
		return ErrEmptyDataset
	}
	if year < lo || year > hi {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, year, lo, hi)
	}
	return nil
}

// Defaults returns the initial state: the latest year, every club, and
// every player eligible for that combination.
func (e *Engine) Defaults() (FilterState, error) {
	_, hi, ok := e.ds.YearBounds()
	if !ok {
		return FilterState{}, ErrEmptyDataset
	}
	clubs := NewSet(e.ds.Clubs()...)
	return FilterState{
		Year:    hi,
		Clubs:   clubs,
		Players: EligiblePlayers(e.ds, hi, clubs),
	}, nil
}

// --------------------------------------------------------------------------
// Session
// --------------------------------------------------------------------------

// Session holds the interactive filter state the way the selection panel
// sees it: a year, a club checklist and a player checklist. Every change
// recomputes the graph. Changing the year or the clubs rebuilds the player
// checklist from the newly eligible players, all checked.
//
// A Session is owned by one caller and is not safe for concurrent use.
type Session struct {
	engine  *Engine
	year    int
	clubs   *Selection[string]
	players *Selection[int]
	options []PlayerOption
	graph   *Graph
	logger  *slog.Logger
}

// PlayerChoice is one row of the player checklist.
type PlayerChoice struct {
	PlayerOption
	Selected bool `json:"selected"`
}

// ClubChoice is one row of the club checklist.
type ClubChoice struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// NewSession opens a session at the latest year with every club and every
// eligible player selected.
func NewSession(engine *Engine, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	_, hi, ok := engine.ds.YearBounds()
	if !ok {
		return nil, ErrEmptyDataset
	}
	s := &Session{
		engine: engine,
		year:   hi,
		clubs:  NewSelection(engine.ds.Clubs(), true),
		logger: logger,
	}
	s.refreshPlayers()
	s.recompute()
	return s, nil
}

// Year returns the selected year.
func (s *Session) Year() int { return s.year }

// Graph returns the graph for the current state.
func (s *Session) Graph() *Graph { return s.graph }

// State returns a snapshot of the current filter state.
func (s *Session) State() FilterState {
	return FilterState{
		Year:    s.year,
		Clubs:   s.clubs.Selected(),
		Players: s.players.Selected(),
	}
}

// Clubs returns the club checklist in name order.
func (s *Session) Clubs() []ClubChoice {
	out := make([]ClubChoice, 0, s.clubs.Len())
	for _, name := range s.clubs.Items() {
		out = append(out, ClubChoice{Name: name, Selected: s.clubs.IsSelected(name)})
	}
	return out
}

// Players returns the player checklist in presentation order.
func (s *Session) Players() []PlayerChoice {
	out := make([]PlayerChoice, 0, len(s.options))
	for _, opt := range s.options {
		out = append(out, PlayerChoice{PlayerOption: opt, Selected: s.players.IsSelected(opt.ID)})
	}
	return out
}

// SetYear moves the year slider.
func (s *Session) SetYear(year int) (*Graph, error) {
	if err := s.engine.CheckYear(year); err != nil {
		return nil, err
	}
	s.year = year
	s.refreshPlayers()
	return s.recompute(), nil
}

// SetClub checks or unchecks a club.
func (s *Session) SetClub(name string, on bool) (*Graph, error) {
	if !s.clubs.Set(name, on) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClub, name)
	}
	s.refreshPlayers()
	return s.recompute(), nil
}

// ToggleAllClubs applies the select/deselect-all action to the clubs.
func (s *Session) ToggleAllClubs() *Graph {
	s.clubs.ToggleAll()
	s.refreshPlayers()
	return s.recompute()
}

// SetPlayer checks or unchecks a player.
func (s *Session) SetPlayer(id int, on bool) (*Graph, error) {
	if !s.players.Set(id, on) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
	}
	return s.recompute(), nil
}

// ToggleAllPlayers applies the select/deselect-all action to the players.
func (s *Session) ToggleAllPlayers() *Graph {
	s.players.ToggleAll()
	return s.recompute()
}

func (s *Session) refreshPlayers() {
	s.options = s.engine.Eligible(s.year, s.clubs.Selected())
	ids := make([]int, len(s.options))
	for i, opt := range s.options {
		ids[i] = opt.ID
	}
	s.players = NewSelection(ids, true)
}

func (s *Session) recompute() *Graph {
	start := time.Now()
	s.graph = s.engine.OnFilterChanged(s.State())
	s.logger.Debug("Graph recomputed",
		"year", s.year,
		"nodes", len(s.graph.Nodes),
		"edges", len(s.graph.Edges),
		"duration", time.Since(start))
	return s.graph
}
