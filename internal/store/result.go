// Package store moves the match dataset in and out of Postgres: Save
// upserts matches, rosters and player names; Load rebuilds the in-memory
// Dataset and PlayerDirectory from the tables.
package store

import "fmt"

// Result tracks counts and errors from a save operation.
type Result struct {
	MatchesUpserted int
	MatchesDeleted  int
	RosterRows      int
	PlayersUpserted int
	Errors          []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the save operation.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"matches=%d matches_deleted=%d roster_rows=%d players=%d errors=%d",
		r.MatchesUpserted, r.MatchesDeleted, r.RosterRows, r.PlayersUpserted, len(r.Errors),
	)
}
