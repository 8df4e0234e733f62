package engine

import (
	"github.com/leengari/mini-datagrid/internal/domain/schema"
	"github.com/leengari/mini-datagrid/internal/query/operations/paging"
	"github.com/leengari/mini-datagrid/internal/query/operations/sorting"
)

// View is the render-time contract: everything a table renderer needs
// for the current frame. Rows and columns are read-only snapshots;
// per-row checkbox state comes from Grid.Selected.
type View[R any] struct {
	Rows    []R                // rows of the current page, in display order
	Columns []schema.Column[R] // visible columns in registry order

	Page       int // current 1-based page, as set (may be past the end)
	TotalPages int // ceil(matched / page size); 0 when nothing matches
	PageSize   int

	TotalRows   int // size of the dataset snapshot
	MatchedRows int // rows left after filters and search

	Query string
	Sort  sorting.Order

	SelectionCount int
}

// View computes the current page from the dataset snapshot. Derived
// values are recomputed on every call rather than cached; the pipeline
// is filters, then search, then sort, then the page window.
func (g *Grid[R, ID]) View() View[R] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	d := g.deriveLocked()

	return View[R]{
		Rows:           d.pageRows,
		Columns:        g.registry.Visible(),
		Page:           g.page,
		TotalPages:     paging.TotalPages(len(d.matched), g.pageSize),
		PageSize:       g.pageSize,
		TotalRows:      d.total,
		MatchedRows:    len(d.matched),
		Query:          g.query,
		Sort:           g.sortOrder,
		SelectionCount: g.selection.Len(),
	}
}

// MatchedRows returns every row that survives the active filters and
// search, across all pages, in display order. This is what export-all
// style callers iterate.
func (g *Grid[R, ID]) MatchedRows() []R {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.deriveLocked().matched
}

// RowsByID resolves ids against the current dataset snapshot, keeping
// the given id order and skipping ids that no longer resolve. Export
// and delete callbacks use this to turn the dispatched ids back into
// rows.
func (g *Grid[R, ID]) RowsByID(ids []ID) []R {
	g.mu.RLock()
	defer g.mu.RUnlock()

	byID := make(map[ID]R, len(g.rows))
	for _, row := range g.rows {
		byID[g.identity(row)] = row
	}

	var rows []R
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// State is the serializable snapshot of a grid's view configuration.
// It covers the state the user can change; the dataset itself is not
// part of it.
type State[ID comparable] struct {
	Query    string            `json:"query"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Visible  []string          `json:"visible_columns"`
	Sort     sorting.Order     `json:"sort"`
	Filters  map[string]string `json:"filters,omitempty"`
	Selected []ID              `json:"selected,omitempty"`
}
