package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/squadgraph/internal/dataset"
)

func TestSelection_ToggleAll(t *testing.T) {
	tests := []struct {
		name    string
		initial bool
		wantOn  bool
	}{
		{name: "all selected deselects", initial: true, wantOn: false},
		{name: "none selected selects", initial: false, wantOn: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection([]string{"a", "b", "c"}, tt.initial)
			assert.Equal(t, tt.wantOn, s.ToggleAll())
			for _, item := range s.Items() {
				assert.Equal(t, tt.wantOn, s.IsSelected(item))
			}
		})
	}
}

func TestSelection_ToggleAllMixedSelectsAll(t *testing.T) {
	s := NewSelection([]int{1, 2, 3}, true)
	s.Set(2, false)
	assert.True(t, s.ToggleAll())
	assert.True(t, s.AllSelected())
}

func TestSelection_ToggleAllTwiceRestores(t *testing.T) {
	for _, initial := range []bool{true, false} {
		s := NewSelection([]int{4, 5, 6}, initial)
		before := s.Selected()
		s.ToggleAll()
		s.ToggleAll()
		assert.Equal(t, before, s.Selected())
	}
}

func TestSelection_SetUnknown(t *testing.T) {
	s := NewSelection([]string{"a", "a", "b"}, false)
	assert.Equal(t, []string{"a", "b"}, s.Items())
	assert.False(t, s.Set("zz", true))
	assert.True(t, s.Set("b", true))
	assert.Equal(t, NewSet("b"), s.Selected())
}

func TestEngine_Defaults(t *testing.T) {
	e := NewEngine(threeMatches(), directory())
	state, err := e.Defaults()
	require.NoError(t, err)
	assert.Equal(t, 2021, state.Year)
	assert.Equal(t, NewSet("X", "Y"), state.Clubs)
	assert.Equal(t, NewSet(1, 2), state.Players)

	_, err = NewEngine(dataset.New(nil), nil).Defaults()
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestEngine_CheckYear(t *testing.T) {
	e := NewEngine(threeMatches(), nil)
	assert.NoError(t, e.CheckYear(2020))
	assert.NoError(t, e.CheckYear(2021))
	assert.ErrorIs(t, e.CheckYear(2019), ErrYearOutOfRange)
	assert.ErrorIs(t, e.CheckYear(2022), ErrYearOutOfRange)
}

func TestSession_Lifecycle(t *testing.T) {
	s, err := NewSession(NewEngine(threeMatches(), directory()), nil)
	require.NoError(t, err)

	// Opens on the latest year with everything selected.
	assert.Equal(t, 2021, s.Year())
	assert.Equal(t, 1, s.Graph().Weight(1, 2))

	g, err := s.SetYear(2020)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Weight(1, 3))
	assert.Len(t, s.Players(), 3)

	// Unchecking a player only drops that player.
	g, err = s.SetPlayer(3, false)
	require.NoError(t, err)
	assert.False(t, g.HasNode(3))
	assert.Equal(t, []Edge{{Source: 1, Target: 2, Weight: 1}}, g.Edges)

	// A club change rebuilds the player list with everyone checked.
	g, err = s.SetClub("Y", false)
	require.NoError(t, err)
	assert.True(t, g.HasNode(3))
	assert.Equal(t, 1, g.Weight(1, 3))
	assert.Equal(t, 0, g.Weight(2, 3))

	_, err = s.SetYear(2030)
	assert.ErrorIs(t, err, ErrYearOutOfRange)
	assert.Equal(t, 2020, s.Year(), "rejected year leaves state untouched")

	_, err = s.SetClub("nope", true)
	assert.ErrorIs(t, err, ErrUnknownClub)
	_, err = s.SetPlayer(99, true)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestSession_ToggleAll(t *testing.T) {
	s, err := NewSession(NewEngine(threeMatches(), directory()), nil)
	require.NoError(t, err)

	g := s.ToggleAllPlayers()
	assert.Empty(t, g.Nodes)
	g = s.ToggleAllPlayers()
	assert.Len(t, g.Nodes, 2)

	g = s.ToggleAllClubs()
	assert.Empty(t, s.Players())
	assert.Empty(t, g.Nodes)
	for _, c := range s.Clubs() {
		assert.False(t, c.Selected)
	}

	g = s.ToggleAllClubs()
	assert.Len(t, s.Players(), 2)
	assert.Equal(t, 1, g.Weight(1, 2))
}

func TestSession_PlayersOrdered(t *testing.T) {
	s, err := NewSession(NewEngine(threeMatches(), directory()), nil)
	require.NoError(t, err)
	_, err = s.SetYear(2020)
	require.NoError(t, err)

	labels := make([]string, 0, 3)
	for _, p := range s.Players() {
		labels = append(labels, p.Label)
		assert.True(t, p.Selected)
	}
	assert.Equal(t, []string{"Alba", "busquets", "ID: 3"}, labels)
}

func TestNewSession_EmptyDataset(t *testing.T) {
	_, err := NewSession(NewEngine(dataset.New(nil), nil), nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestLive_Swap(t *testing.T) {
	first := NewEngine(threeMatches(), directory())
	live := NewLive(first)
	assert.Same(t, first, live.Engine())

	gen := live.Current().Generation

	second := NewEngine(dataset.New(nil), nil)
	assert.Same(t, first, live.Swap(second))
	assert.Same(t, second, live.Engine())
	assert.Equal(t, gen+1, live.Current().Generation)
}
