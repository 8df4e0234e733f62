package schema

import (
	"sort"
	"sync"
)

// Registry holds a grid's column descriptors in display order plus the
// set of currently visible column keys. Visibility affects rendering
// only; searching always scans every registered column.
type Registry[R any] struct {
	mu      sync.RWMutex
	columns []Column[R]
	visible map[string]bool
}

// NewRegistry builds a registry with every column visible.
func NewRegistry[R any](columns []Column[R]) (*Registry[R], error) {
	visible := make(map[string]bool, len(columns))
	for _, col := range columns {
		if col.Key == "" {
			return nil, &ColumnKeyError{Key: col.Key, Reason: "column key must not be empty"}
		}
		if visible[col.Key] {
			return nil, &ColumnKeyError{Key: col.Key, Reason: "duplicate column key"}
		}
		visible[col.Key] = true
	}

	cols := make([]Column[R], len(columns))
	copy(cols, columns)

	return &Registry[R]{
		columns: cols,
		visible: visible,
	}, nil
}

// ToggleVisible flips the visibility of a key.
// Keys are not validated against the registered columns: toggling an
// unknown key adds it to the visible set as latent no-op state and a
// second toggle removes it again. An empty visible set is permitted.
func (r *Registry[R]) ToggleVisible(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.visible[key] {
		delete(r.visible, key)
	} else {
		r.visible[key] = true
	}
}

// IsVisible reports whether the key is in the visible set.
func (r *Registry[R]) IsVisible(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.visible[key]
}

// Columns returns all registered columns in display order.
// The returned slice is a copy; search scope is derived from it
// regardless of visibility.
func (r *Registry[R]) Columns() []Column[R] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cols := make([]Column[R], len(r.columns))
	copy(cols, r.columns)
	return cols
}

// Column returns the descriptor registered under key.
func (r *Registry[R]) Column(key string) (Column[R], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, col := range r.columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[R]{}, false
}

// Visible returns the visible columns in display order.
func (r *Registry[R]) Visible() []Column[R] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cols []Column[R]
	for _, col := range r.columns {
		if r.visible[col.Key] {
			cols = append(cols, col)
		}
	}
	return cols
}

// VisibleKeys returns every key in the visible set: registered keys in
// display order first, latent unknown keys after them in sorted order
// so the result is deterministic for state snapshots.
func (r *Registry[R]) VisibleKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.visible))
	seen := make(map[string]bool, len(r.visible))
	for _, col := range r.columns {
		if r.visible[col.Key] {
			keys = append(keys, col.Key)
			seen[col.Key] = true
		}
	}

	var latent []string
	for key := range r.visible {
		if !seen[key] {
			latent = append(latent, key)
		}
	}
	sort.Strings(latent)

	return append(keys, latent...)
}

// RestoreVisible replaces the visible set with exactly the given keys.
// Used when rehydrating a serialized grid state.
func (r *Registry[R]) RestoreVisible(keys []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visible = make(map[string]bool, len(keys))
	for _, key := range keys {
		r.visible[key] = true
	}
}

// Len returns the number of registered columns.
func (r *Registry[R]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.columns)
}
