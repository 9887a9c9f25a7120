package graph

// Selection is a checkbox-style list: an ordered set of items, each either
// selected or not. The same type backs the club list and the player list so
// both toggle identically.
type Selection[K comparable] struct {
	items    []K
	selected map[K]bool
}

// NewSelection returns a selection over items with every item set to
// selected. Duplicate items are collapsed, first position wins.
func NewSelection[K comparable](items []K, selected bool) *Selection[K] {
	s := &Selection[K]{
		items:    make([]K, 0, len(items)),
		selected: make(map[K]bool, len(items)),
	}
	for _, item := range items {
		if _, dup := s.selected[item]; dup {
			continue
		}
		s.items = append(s.items, item)
		s.selected[item] = selected
	}
	return s
}

// Items returns every item in list order.
func (s *Selection[K]) Items() []K {
	return s.items
}

// Len returns the number of items.
func (s *Selection[K]) Len() int {
	return len(s.items)
}

// Contains reports whether item is part of the list.
func (s *Selection[K]) Contains(item K) bool {
	_, ok := s.selected[item]
	return ok
}

// IsSelected reports whether item is checked.
func (s *Selection[K]) IsSelected(item K) bool {
	return s.selected[item]
}

// Set checks or unchecks item. It returns false if item is not in the list.
func (s *Selection[K]) Set(item K, on bool) bool {
	if !s.Contains(item) {
		return false
	}
	s.selected[item] = on
	return true
}

// AllSelected reports whether every item is checked. An empty list counts
// as all selected.
func (s *Selection[K]) AllSelected() bool {
	for _, item := range s.items {
		if !s.selected[item] {
			return false
		}
	}
	return true
}

// ToggleAll deselects everything when every item is selected, and selects
// everything otherwise. It returns the state applied to all items.
func (s *Selection[K]) ToggleAll() bool {
	on := !s.AllSelected()
	for _, item := range s.items {
		s.selected[item] = on
	}
	return on
}

// Selected returns the checked items as a set.
func (s *Selection[K]) Selected() Set[K] {
	out := make(Set[K], len(s.items))
	for _, item := range s.items {
		if s.selected[item] {
			out.Add(item)
		}
	}
	return out
}
