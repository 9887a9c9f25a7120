package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/squadgraph/internal/dataset"
)

func team(club string, players ...int) dataset.TeamEntry {
	return dataset.TeamEntry{ClubName: club, Players: players}
}

func match(id string, year int, home, away dataset.TeamEntry) dataset.Match {
	return dataset.Match{ID: id, Year: year, Home: home, Away: away}
}

// threeMatches is the reference scenario: two matches in 2020 and one in
// 2021.
func threeMatches() *dataset.Dataset {
	return dataset.New([]dataset.Match{
		match("m1", 2020, team("X", 1, 2), team("Y", 3)),
		match("m2", 2020, team("X", 1, 3), team("Y")),
		match("m3", 2021, team("X", 1, 2), team("Y")),
	})
}

func directory() *dataset.PlayerDirectory {
	return dataset.NewPlayerDirectory(map[int]string{1: "Alba", 2: "busquets"})
}

func TestComputeGraph_Weights(t *testing.T) {
	g := ComputeGraph(threeMatches(), directory(), NewFilterState(2020, []string{"X", "Y"}, []int{1, 2, 3}))

	assert.Equal(t, []Node{{1, "Alba"}, {2, "busquets"}, {3, "3"}}, g.Nodes)
	assert.Equal(t, []Edge{
		{Source: 1, Target: 2, Weight: 1},
		{Source: 1, Target: 3, Weight: 2},
		{Source: 2, Target: 3, Weight: 1},
	}, g.Edges)
	assert.Equal(t, 2, g.MaxWeight())
}

func TestComputeGraph_ClubExclusion(t *testing.T) {
	g := ComputeGraph(threeMatches(), directory(), NewFilterState(2020, []string{"X"}, []int{1, 2, 3}))

	assert.True(t, g.HasNode(3), "nodes follow included players, not eligibility")
	assert.Equal(t, 1, g.Weight(1, 2))
	assert.Equal(t, 1, g.Weight(1, 3))
	assert.Equal(t, 0, g.Weight(2, 3))
	assert.Len(t, g.Edges, 2)
}

func TestComputeGraph_EmptyPlayers(t *testing.T) {
	for _, clubs := range [][]string{nil, {"X"}, {"X", "Y"}} {
		g := ComputeGraph(threeMatches(), directory(), NewFilterState(2020, clubs, nil))
		assert.Empty(t, g.Nodes)
		assert.Empty(t, g.Edges)
		assert.NotNil(t, g.Nodes, "empty graph still encodes as []")
	}
}

func TestComputeGraph_YearWithoutMatches(t *testing.T) {
	g := ComputeGraph(threeMatches(), directory(), NewFilterState(1999, []string{"X"}, []int{1, 2}))
	assert.Len(t, g.Nodes, 2)
	assert.Empty(t, g.Edges)
}

func TestComputeGraph_Symmetry(t *testing.T) {
	g := ComputeGraph(threeMatches(), directory(), NewFilterState(2020, []string{"X", "Y"}, []int{1, 2, 3}))
	for _, e := range g.Edges {
		assert.Less(t, e.Source, e.Target, "only the canonical ordering is stored")
		assert.Equal(t, g.Weight(e.Source, e.Target), g.Weight(e.Target, e.Source))
	}
}

func TestComputeGraph_DuplicateRosterEntries(t *testing.T) {
	ds := dataset.New([]dataset.Match{
		match("m1", 2020, team("X", 1, 1, 2), team("Y", 2)),
	})
	g := ComputeGraph(ds, nil, NewFilterState(2020, []string{"X", "Y"}, []int{1, 2}))

	// Combined roster [1,1,2,2]: each occurrence of 1 pairs with each
	// occurrence of 2, and no id pairs with itself.
	assert.Equal(t, 4, g.Weight(1, 2))
	for _, e := range g.Edges {
		assert.NotEqual(t, e.Source, e.Target)
	}
	assert.Len(t, g.Edges, 1)
}

func TestComputeGraph_OpponentsCounted(t *testing.T) {
	ds := dataset.New([]dataset.Match{
		match("m1", 2020, team("X", 1), team("Y", 2)),
	})
	g := ComputeGraph(ds, nil, NewFilterState(2020, []string{"X", "Y"}, []int{1, 2}))
	assert.Equal(t, 1, g.Weight(1, 2))
}

func TestComputeGraph_IgnoresUnselectedPlayers(t *testing.T) {
	g := ComputeGraph(threeMatches(), directory(), NewFilterState(2020, []string{"X", "Y"}, []int{1, 3}))
	assert.Equal(t, []Edge{{Source: 1, Target: 3, Weight: 2}}, g.Edges)
}

func TestComputeGraph_Deterministic(t *testing.T) {
	state := NewFilterState(2020, []string{"X", "Y"}, []int{1, 2, 3})
	first := ComputeGraph(threeMatches(), directory(), state)
	for i := 0; i < 20; i++ {
		again := ComputeGraph(threeMatches(), directory(), state)
		require.Equal(t, first.Nodes, again.Nodes)
		require.Equal(t, first.Edges, again.Edges)
	}
}

func TestCounts_Merge(t *testing.T) {
	a := Counts{}
	a.AddRoster([]int{1, 2, 3})
	b := Counts{}
	b.AddRoster([]int{3, 1})

	ab := Counts{}
	ab.Merge(a)
	ab.Merge(b)
	ba := Counts{}
	ba.Merge(b)
	ba.Merge(a)

	assert.Equal(t, ab, ba)
	assert.Equal(t, 2, ab[NewPair(3, 1)])
}

func TestNewPair(t *testing.T) {
	assert.Equal(t, Pair{A: 1, B: 9}, NewPair(9, 1))
	assert.Equal(t, NewPair(4, 7), NewPair(7, 4))
}

func TestFilterState_Key(t *testing.T) {
	a := NewFilterState(2020, []string{"Y", "X"}, []int{3, 1})
	b := NewFilterState(2020, []string{"X", "Y"}, []int{1, 3})
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), NewFilterState(2021, []string{"X", "Y"}, []int{1, 3}).Key())
}
