package graph

import (
	"cmp"
	"slices"
	"strings"

	"github.com/albapepper/squadgraph/internal/dataset"
)

// PlayerOption is a selectable player with its list label.
type PlayerOption struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// EligiblePlayers returns every player who appeared for an included club in
// at least one match of year. Appearing for another club in some other
// match does not remove a player. An empty club set yields an empty result.
func EligiblePlayers(ds *dataset.Dataset, year int, clubs Set[string]) Set[int] {
	eligible := make(Set[int])
	if len(clubs) == 0 {
		return eligible
	}

	ds.ForYear(year, func(m *dataset.Match) bool {
		for _, team := range m.Teams() {
			if !clubs.Has(team.ClubName) {
				continue
			}
			for _, id := range team.Players {
				eligible.Add(id)
			}
		}
		return true
	})
	return eligible
}

// SortPlayers orders ids for presentation: by list label, case-insensitive.
// Players missing from the directory are labelled "ID: {id}" and sort by
// that text. Equal labels fall back to id order.
func SortPlayers(ids Set[int], dir *dataset.PlayerDirectory) []PlayerOption {
	options := make([]PlayerOption, 0, len(ids))
	for id := range ids {
		options = append(options, PlayerOption{ID: id, Label: dir.ListLabel(id)})
	}
	slices.SortFunc(options, func(a, b PlayerOption) int {
		if c := strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return options
}
