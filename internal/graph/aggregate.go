package graph

import (
	"cmp"
	"slices"

	"github.com/albapepper/squadgraph/internal/dataset"
)

// Node is a selected player.
type Node struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Edge joins two players who appeared in Weight qualifying matches
// together. Source is always the smaller id.
type Edge struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Weight int `json:"weight"`
}

// Graph is the co-appearance graph for one FilterState. Nodes are ordered
// by id and edges by (Source, Target).
type Graph struct {
	Year  int    `json:"year"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	weights map[Pair]int
	nodeSet Set[int]
}

// Weight returns the number of qualifying matches a and b shared, in either
// argument order. Zero means no edge.
func (g *Graph) Weight(a, b int) int {
	return g.weights[NewPair(a, b)]
}

// HasNode reports whether id is a node.
func (g *Graph) HasNode(id int) bool {
	return g.nodeSet.Has(id)
}

// MaxWeight returns the heaviest edge weight, or 0 with no edges.
func (g *Graph) MaxWeight() int {
	heaviest := 0
	for _, e := range g.Edges {
		heaviest = max(heaviest, e.Weight)
	}
	return heaviest
}

// ComputeGraph builds the co-appearance graph for state.
//
// Nodes are exactly state.Players. For every match of state.Year the
// home and away rosters are filtered to included clubs and included
// players, concatenated, and every pair of entries is counted, so
// teammates and opponents are treated alike.
func ComputeGraph(ds *dataset.Dataset, dir *dataset.PlayerDirectory, state FilterState) *Graph {
	g := &Graph{
		Year:    state.Year,
		Nodes:   []Node{},
		Edges:   []Edge{},
		weights: make(map[Pair]int),
		nodeSet: make(Set[int]),
	}
	if len(state.Players) == 0 {
		return g
	}

	for _, id := range Sorted(state.Players) {
		g.Nodes = append(g.Nodes, Node{ID: id, Label: dir.Name(id)})
		g.nodeSet.Add(id)
	}

	for pair, n := range CountPairs(ds, state) {
		if n < 1 || !g.nodeSet.Has(pair.A) || !g.nodeSet.Has(pair.B) {
			continue
		}
		g.weights[pair] = n
		g.Edges = append(g.Edges, Edge{Source: pair.A, Target: pair.B, Weight: n})
	}
	slices.SortFunc(g.Edges, func(a, b Edge) int {
		if c := cmp.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return cmp.Compare(a.Target, b.Target)
	})
	return g
}

// CountPairs scans the matches of state.Year and returns the pair counts
// over each match's combined (home then away) filtered roster.
func CountPairs(ds *dataset.Dataset, state FilterState) Counts {
	counts := make(Counts)
	if len(state.Players) == 0 || len(state.Clubs) == 0 {
		return counts
	}

	roster := make([]int, 0, 64)
	ds.ForYear(state.Year, func(m *dataset.Match) bool {
		roster = CombinedRoster(m, state, roster[:0])
		counts.AddRoster(roster)
		return true
	})
	return counts
}

// CombinedRoster appends to dst the ids of m that pass the filter: home
// side first, then away, input order and duplicates kept.
func CombinedRoster(m *dataset.Match, state FilterState, dst []int) []int {
	for _, team := range m.Teams() {
		if !state.Clubs.Has(team.ClubName) {
			continue
		}
		for _, id := range team.Players {
			if state.Players.Has(id) {
				dst = append(dst, id)
			}
		}
	}
	return dst
}
