package selection

import "sync"

// Selection tracks the checked row identifiers of a grid. Membership is
// independent of what is currently filtered or paged in: a selected row
// stays selected while it is not on screen and nothing is removed
// unless the caller removes it.
type Selection[ID comparable] struct {
	mu     sync.RWMutex
	member map[ID]bool
	order  []ID // insertion order, for deterministic snapshots
}

// New creates an empty selection.
func New[ID comparable]() *Selection[ID] {
	return &Selection[ID]{
		member: make(map[ID]bool),
	}
}

// Toggle adds the id when checked is true and removes it otherwise.
// Both directions are idempotent.
func (s *Selection[ID]) Toggle(id ID, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if checked {
		if !s.member[id] {
			s.member[id] = true
			s.order = append(s.order, id)
		}
		return
	}

	if s.member[id] {
		delete(s.member, id)
		s.removeFromOrder(id)
	}
}

// ReplaceAll replaces the whole selection with exactly the given ids,
// deduplicated, keeping their order. This is the select-all-current-page
// semantics: any previously selected ids not in the list are dropped.
func (s *Selection[ID]) ReplaceAll(ids []ID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.member = make(map[ID]bool, len(ids))
	s.order = s.order[:0]
	for _, id := range ids {
		if !s.member[id] {
			s.member[id] = true
			s.order = append(s.order, id)
		}
	}
}

// Clear empties the selection.
func (s *Selection[ID]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.member = make(map[ID]bool)
	s.order = s.order[:0]
}

// Has reports whether the id is selected.
func (s *Selection[ID]) Has(id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.member[id]
}

// Len returns the number of selected ids.
func (s *Selection[ID]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.member)
}

// IDs returns a snapshot of the selected ids in insertion order.
func (s *Selection[ID]) IDs() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]ID, len(s.order))
	copy(ids, s.order)
	return ids
}

// Retain drops every id for which keep returns false and reports how
// many were removed. This is the explicit reconciliation step run
// after a dataset change; the selection never prunes itself.
func (s *Selection[ID]) Retain(keep func(ID) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	removed := 0
	for _, id := range s.order {
		if keep(id) {
			kept = append(kept, id)
		} else {
			delete(s.member, id)
			removed++
		}
	}
	s.order = kept
	return removed
}

// removeFromOrder deletes one id from the order slice.
// Must be called with the lock held.
func (s *Selection[ID]) removeFromOrder(id ID) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
