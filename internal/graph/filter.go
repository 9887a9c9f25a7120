// Package graph is the filtering and co-occurrence engine. Given a dataset
// and a FilterState it resolves which players are eligible for a
// year/club selection and counts how often each pair of selected players
// appeared in the same match.
//
// Everything here is a pure function of its inputs: a new Graph is built on
// every call and nothing carries over between filter changes.
package graph

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Set is an unordered collection of keys.
type Set[K comparable] map[K]struct{}

// NewSet returns a set holding items.
func NewSet[K comparable](items ...K) Set[K] {
	s := make(Set[K], len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set. A nil set holds nothing.
func (s Set[K]) Has(k K) bool {
	_, ok := s[k]
	return ok
}

// Add inserts k.
func (s Set[K]) Add(k K) {
	s[k] = struct{}{}
}

// Sorted returns the keys of s in ascending order.
func Sorted[K cmp.Ordered](s Set[K]) []K {
	out := make([]K, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// FilterState is the current selection: one year, the included clubs and
// the included players. Players is expected to be a subset of the players
// eligible for Year/Clubs; keeping it that way is the caller's job.
type FilterState struct {
	Year    int
	Clubs   Set[string]
	Players Set[int]
}

// NewFilterState builds a FilterState from plain slices.
func NewFilterState(year int, clubs []string, players []int) FilterState {
	return FilterState{
		Year:    year,
		Clubs:   NewSet(clubs...),
		Players: NewSet(players...),
	}
}

// Key returns a canonical string for the state, stable across set
// iteration order. Used as a cache key.
func (s FilterState) Key() string {
	var b strings.Builder
	b.WriteString("y=")
	b.WriteString(strconv.Itoa(s.Year))
	b.WriteString("|c=")
	for i, club := range Sorted(s.Clubs) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(club))
	}
	b.WriteString("|p=")
	for i, id := range Sorted(s.Players) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (s FilterState) String() string {
	return fmt.Sprintf("year=%d clubs=%d players=%d", s.Year, len(s.Clubs), len(s.Players))
}
