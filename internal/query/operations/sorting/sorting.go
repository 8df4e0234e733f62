package sorting

import (
	"sort"

	"github.com/leengari/mini-datagrid/internal/domain/schema"
	"github.com/leengari/mini-datagrid/internal/util/types"
)

// Order describes the active sort of a grid: which column key and which
// direction. The zero value means unsorted, in which case rows flow
// through in dataset order.
type Order struct {
	Key        string `json:"key"`
	Descending bool   `json:"descending,omitempty"`
}

// IsZero reports whether no sort is active.
func (o Order) IsZero() bool { return o.Key == "" }

// Apply returns the rows ordered by the given column. The sort is
// stable, so rows with equal cells keep their dataset order, and the
// input slice is never mutated: filtered views may alias the caller's
// dataset. Rows without a value for the column sort first.
func Apply[R any](rows []R, col schema.Column[R], descending bool) []R {
	if col.Value == nil || len(rows) < 2 {
		return rows
	}

	sorted := make([]R, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		vi, oki := col.CellValue(sorted[i])
		vj, okj := col.CellValue(sorted[j])
		if !oki {
			vi = nil
		}
		if !okj {
			vj = nil
		}
		cmp := types.Compare(vi, vj)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}
