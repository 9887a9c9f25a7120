package graph

// Pair is an unordered pair of distinct player ids, stored with the smaller
// id first so {A,B} and {B,A} share one key.
type Pair struct {
	A int
	B int
}

// NewPair returns the canonical pair for a and b.
func NewPair(a, b int) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Counts maps canonical pairs to the number of matches they shared.
type Counts map[Pair]int

// AddRoster increments every unordered pair of entries in a single match's
// combined roster. Repeated ids pair independently with every other entry;
// two occurrences of the same id are never paired with each other.
func (c Counts) AddRoster(roster []int) {
	for i := 0; i < len(roster); i++ {
		for j := i + 1; j < len(roster); j++ {
			if roster[i] == roster[j] {
				continue
			}
			c[NewPair(roster[i], roster[j])]++
		}
	}
}

// Merge adds every count of other into c. Summation is order independent,
// so partial counters can be merged in any order.
func (c Counts) Merge(other Counts) {
	for pair, n := range other {
		c[pair] += n
	}
}
