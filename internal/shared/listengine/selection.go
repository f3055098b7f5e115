package listengine

// SelectionSet holds the ids checked for bulk actions.
type SelectionSet struct {
	ids map[string]struct{}
}

// NewSelectionSet builds a set seeded with ids.
func NewSelectionSet(ids ...string) *SelectionSet {
	set := &SelectionSet{ids: make(map[string]struct{}, len(ids))}
	set.Add(ids...)
	return set
}

// Toggle flips membership of id and reports whether it is selected afterwards.
func (s *SelectionSet) Toggle(id string) bool {
	if id == "" {
		return false
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Add selects every non-empty id.
func (s *SelectionSet) Add(ids ...string) {
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
}

// Remove deselects ids.
func (s *SelectionSet) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Contains reports whether id is selected.
func (s *SelectionSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// ContainsAll reports whether every id is selected. An empty list is never fully selected.
func (s *SelectionSet) ContainsAll(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.Contains(id) {
			return false
		}
	}
	return true
}

// Retain drops every id for which keep returns false.
func (s *SelectionSet) Retain(keep func(id string) bool) {
	for id := range s.ids {
		if !keep(id) {
			delete(s.ids, id)
		}
	}
}

// Clear empties the set.
func (s *SelectionSet) Clear() {
	clear(s.ids)
}

// Len is the number of selected ids.
func (s *SelectionSet) Len() int {
	return len(s.ids)
}
