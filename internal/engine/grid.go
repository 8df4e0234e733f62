package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/leengari/mini-datagrid/internal/domain/action"
	"github.com/leengari/mini-datagrid/internal/domain/schema"
	"github.com/leengari/mini-datagrid/internal/query/operations/paging"
	"github.com/leengari/mini-datagrid/internal/query/operations/search"
	"github.com/leengari/mini-datagrid/internal/query/operations/selection"
	"github.com/leengari/mini-datagrid/internal/query/operations/sorting"
)

// Options configures a Grid over rows of type R identified by ID.
type Options[R any, ID comparable] struct {
	// Columns are the column descriptors in display order.
	Columns []schema.Column[R]

	// Identity extracts a row's stable identifier. Required.
	Identity func(R) ID

	// PageSize is the initial page size. Defaults to paging.DefaultPageSize.
	PageSize int

	// OnSearch fires after every query change. Optional.
	OnSearch func(query string)

	// OnExport receives the selected ids on BulkExport. The grid hands
	// the snapshot over and does not look at the outcome. Optional.
	OnExport func(ids []ID)

	// OnDelete receives the selected ids on BulkDelete. Removing the
	// rows from the dataset is the callback's job, not the grid's. Optional.
	OnDelete func(ids []ID)
}

// Grid is the main entry point for the tabular data engine. It owns the
// view state of one table: the dataset snapshot, search query, page,
// page size, column visibility, sort, per-column filters and row
// selection. All reads of the derived view go through View().
//
// Rows are read-only references owned by the caller; the grid never
// mutates a row and never performs I/O. Bulk actions are dispatched to
// the configured callbacks.
type Grid[R any, ID comparable] struct {
	mu sync.RWMutex

	registry  *schema.Registry[R]
	selection *selection.Selection[ID]
	identity  func(R) ID

	rows        []R
	query       string
	page        int
	pageSize    int
	sortOrder   sorting.Order
	filters     map[string]string
	filterOrder []string // deterministic AND order for filters

	onSearch func(string)
	onExport func([]ID)
	onDelete func([]ID)

	observers []Observer
}

// New creates a Grid instance. The column set and identity accessor are
// validated here so that every later operation can degrade gracefully
// instead of failing.
func New[R any, ID comparable](opts Options[R, ID]) (*Grid[R, ID], error) {
	if opts.Identity == nil {
		return nil, NewNilIdentity()
	}

	registry, err := schema.NewRegistry(opts.Columns)
	if err != nil {
		return nil, fmt.Errorf("building column registry: %w", err)
	}

	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = paging.DefaultPageSize
	}

	return &Grid[R, ID]{
		registry:  registry,
		selection: selection.New[ID](),
		identity:  opts.Identity,
		page:      1,
		pageSize:  pageSize,
		filters:   make(map[string]string),
		onSearch:  opts.OnSearch,
		onExport:  opts.OnExport,
		onDelete:  opts.OnDelete,
	}, nil
}

// Registry exposes the column registry for direct visibility queries.
func (g *Grid[R, ID]) Registry() *schema.Registry[R] {
	return g.registry
}

// ReplaceRows swaps in a new dataset snapshot. The selection is left
// untouched: ids pointing at rows that are gone stay selected until
// ReconcileSelection is called. The page is not moved either; a page
// past the new end simply renders empty.
func (g *Grid[R, ID]) ReplaceRows(rows []R) {
	g.mu.Lock()
	snapshot := make([]R, len(rows))
	copy(snapshot, rows)
	g.rows = snapshot
	g.mu.Unlock()

	g.notify(Event{Type: EventRowsReplaced, Data: len(rows)})
}

// SetQuery replaces the search query and resets the page to 1 in the
// same step, so no observer can see the new query with the old page.
func (g *Grid[R, ID]) SetQuery(query string) {
	g.mu.Lock()
	g.query = query
	g.page = 1
	cb := g.onSearch
	g.mu.Unlock()

	g.notify(Event{Type: EventQueryChanged, Data: query})
	if cb != nil {
		cb(query)
	}
}

// SetPage moves to the given 1-based page. The value is not validated:
// a page outside the current range renders as an empty page.
func (g *Grid[R, ID]) SetPage(page int) {
	g.mu.Lock()
	g.page = page
	g.mu.Unlock()

	g.notify(Event{Type: EventPageChanged, Data: page})
}

// SetPageSize changes the page size. The page is deliberately not
// reset; if the current page no longer exists at the new size it
// renders empty and the embedding layer decides where to go.
// Sizes below 1 are ignored.
func (g *Grid[R, ID]) SetPageSize(size int) {
	if size < 1 {
		return
	}

	g.mu.Lock()
	g.pageSize = size
	g.mu.Unlock()

	g.notify(Event{Type: EventPageSizeChanged, Data: size})
}

// ToggleColumn flips the visibility of a column key. Unknown keys are
// tolerated (see schema.Registry.ToggleVisible). The page is unchanged:
// hiding a column never moves the user.
func (g *Grid[R, ID]) ToggleColumn(key string) {
	g.registry.ToggleVisible(key)

	g.notify(Event{Type: EventColumnToggled, Data: map[string]interface{}{
		"column":  key,
		"visible": g.registry.IsVisible(key),
	}})
}

// SortBy orders the view by the given column. Only columns registered
// as Sortable take effect; anything else is a silent no-op, matching
// how visibility toggles treat unknown keys. Sorting does not reset
// the page.
func (g *Grid[R, ID]) SortBy(key string, descending bool) {
	col, ok := g.registry.Column(key)
	if !ok || !col.Sortable {
		return
	}

	g.mu.Lock()
	g.sortOrder = sorting.Order{Key: key, Descending: descending}
	g.mu.Unlock()

	g.notify(Event{Type: EventSortChanged, Data: map[string]interface{}{
		"column":     key,
		"descending": descending,
	}})
}

// ClearSort returns the view to dataset order.
func (g *Grid[R, ID]) ClearSort() {
	g.mu.Lock()
	g.sortOrder = sorting.Order{}
	g.mu.Unlock()

	g.notify(Event{Type: EventSortChanged, Data: nil})
}

// SetColumnFilter sets a case-insensitive equality filter on a column.
// Filters combine with AND across columns and with the search query.
// Only columns registered as Filterable take effect. An empty value
// clears the column's filter. Changing filters resets the page to 1
// for the same reason a query change does.
func (g *Grid[R, ID]) SetColumnFilter(key, value string) {
	col, ok := g.registry.Column(key)
	if !ok || !col.Filterable {
		return
	}

	g.mu.Lock()
	if value == "" {
		g.removeFilterLocked(key)
	} else {
		if _, exists := g.filters[key]; !exists {
			g.filterOrder = append(g.filterOrder, key)
		}
		g.filters[key] = value
	}
	g.page = 1
	g.mu.Unlock()

	g.notify(Event{Type: EventFilterChanged, Data: map[string]interface{}{
		"column": key,
		"value":  value,
	}})
}

// ClearColumnFilter removes the filter on one column.
func (g *Grid[R, ID]) ClearColumnFilter(key string) {
	g.SetColumnFilter(key, "")
}

// ClearColumnFilters removes all per-column filters and resets the
// page to 1.
func (g *Grid[R, ID]) ClearColumnFilters() {
	g.mu.Lock()
	g.filters = make(map[string]string)
	g.filterOrder = nil
	g.page = 1
	g.mu.Unlock()

	g.notify(Event{Type: EventFilterChanged, Data: nil})
}

// ToggleRow checks or unchecks a single row id.
func (g *Grid[R, ID]) ToggleRow(id ID, checked bool) {
	g.selection.Toggle(id, checked)

	g.notify(Event{Type: EventSelectionChanged, Data: g.selection.Len()})
}

// SelectPage implements the header checkbox. Checked replaces the
// whole selection with exactly the ids of the rows on the current
// page; ids selected on other pages are dropped, not merged.
// Unchecked clears the entire selection, not just the current page.
func (g *Grid[R, ID]) SelectPage(checked bool) {
	if !checked {
		g.selection.Clear()
		g.notify(Event{Type: EventSelectionChanged, Data: 0})
		return
	}

	g.mu.RLock()
	pageRows := g.deriveLocked().pageRows
	g.mu.RUnlock()

	ids := make([]ID, len(pageRows))
	for i, row := range pageRows {
		ids[i] = g.identity(row)
	}
	g.selection.ReplaceAll(ids)

	g.notify(Event{Type: EventSelectionChanged, Data: g.selection.Len()})
}

// ClearSelection unchecks everything.
func (g *Grid[R, ID]) ClearSelection() {
	g.selection.Clear()

	g.notify(Event{Type: EventSelectionChanged, Data: 0})
}

// Selected reports whether a row id is checked. Used when rendering
// the checkbox column.
func (g *Grid[R, ID]) Selected(id ID) bool {
	return g.selection.Has(id)
}

// SelectedIDs returns a snapshot of the checked ids in the order they
// were checked.
func (g *Grid[R, ID]) SelectedIDs() []ID {
	return g.selection.IDs()
}

// BulkExport hands the selected ids to the OnExport callback. The
// selection is kept: exporting is non-destructive and users commonly
// export the same set again in another format. A dispatch with nothing
// selected or no callback configured is a no-op.
func (g *Grid[R, ID]) BulkExport() {
	g.dispatch(action.KindExport, g.onExport, false)
}

// BulkDelete hands the selected ids to the OnDelete callback, then
// clears the selection: the checked rows are assumed gone, and stale
// ids must not leak into the next bulk action. The grid does not
// remove rows itself; the dataset changes when the caller feeds a new
// snapshot through ReplaceRows.
func (g *Grid[R, ID]) BulkDelete() {
	g.dispatch(action.KindDelete, g.onDelete, true)
}

// dispatch runs one bulk action over the current selection snapshot.
func (g *Grid[R, ID]) dispatch(kind action.Kind, callback func([]ID), clearAfter bool) {
	ids := g.selection.IDs()
	if len(ids) == 0 || callback == nil {
		return
	}

	act := action.New(kind)
	defer act.Close()
	for _, id := range ids {
		act.IDs = append(act.IDs, fmt.Sprintf("%v", id))
	}

	g.notify(Event{Type: EventDispatchStart, ActionID: act.ID, Data: map[string]interface{}{
		"kind":  string(kind),
		"count": len(ids),
		"ids":   act.IDs,
		"seq":   act.Seq,
	}})

	callback(ids)

	if clearAfter {
		g.selection.Clear()
	}

	g.notify(Event{Type: EventDispatchEnd, ActionID: act.ID, Data: map[string]interface{}{
		"kind":  string(kind),
		"count": len(ids),
		"ids":   act.IDs,
	}})
}

// ReconcileSelection drops selected ids that no longer resolve to a
// row in the current dataset and returns how many were removed. This
// is the explicit cleanup step the embedding layer runs after a
// dataset change; it never happens implicitly.
func (g *Grid[R, ID]) ReconcileSelection() int {
	g.mu.RLock()
	present := make(map[ID]bool, len(g.rows))
	for _, row := range g.rows {
		present[g.identity(row)] = true
	}
	g.mu.RUnlock()

	removed := g.selection.Retain(func(id ID) bool { return present[id] })
	if removed > 0 {
		g.notify(Event{Type: EventSelectionPruned, Data: removed})
	}
	return removed
}

// removeFilterLocked deletes one filter entry.
// Must be called with the write lock held.
func (g *Grid[R, ID]) removeFilterLocked(key string) {
	if _, exists := g.filters[key]; !exists {
		return
	}
	delete(g.filters, key)
	for i, existing := range g.filterOrder {
		if existing == key {
			g.filterOrder = append(g.filterOrder[:i], g.filterOrder[i+1:]...)
			return
		}
	}
}

// derived is the result of one pass over the dataset: filters, then
// search, then sort, then the page window.
type derived[R any] struct {
	matched  []R
	pageRows []R
	total    int
}

// deriveLocked recomputes the visible slice of the dataset.
// Must be called with at least the read lock held.
func (g *Grid[R, ID]) deriveLocked() derived[R] {
	columns := g.registry.Columns()

	rows := g.rows
	for _, key := range g.filterOrder {
		col, ok := g.registry.Column(key)
		if !ok {
			continue
		}
		rows = search.Where(rows, search.ColumnEquals(col, g.filters[key]))
	}

	rows = search.Filter(rows, columns, g.query)

	if !g.sortOrder.IsZero() {
		if col, ok := g.registry.Column(g.sortOrder.Key); ok {
			rows = sorting.Apply(rows, col, g.sortOrder.Descending)
		}
	}

	return derived[R]{
		matched:  rows,
		pageRows: paging.Slice(rows, g.page, g.pageSize),
		total:    len(g.rows),
	}
}

// State returns the serializable view state: everything needed to
// rebuild this grid's configuration on top of the same dataset.
func (g *Grid[R, ID]) State() State[ID] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	filters := make(map[string]string, len(g.filters))
	for key, value := range g.filters {
		filters[key] = value
	}

	return State[ID]{
		Query:    g.query,
		Page:     g.page,
		PageSize: g.pageSize,
		Visible:  g.registry.VisibleKeys(),
		Sort:     g.sortOrder,
		Filters:  filters,
		Selected: g.selection.IDs(),
	}
}

// RestoreState rehydrates a previously captured state record. The
// dataset itself is not part of the state; feed it separately through
// ReplaceRows.
func (g *Grid[R, ID]) RestoreState(s State[ID]) {
	g.mu.Lock()
	g.query = s.Query
	g.page = s.Page
	if s.PageSize >= 1 {
		g.pageSize = s.PageSize
	}
	g.sortOrder = s.Sort
	g.filters = make(map[string]string, len(s.Filters))
	g.filterOrder = nil
	for key, value := range s.Filters {
		g.filters[key] = value
		g.filterOrder = append(g.filterOrder, key)
	}
	sort.Strings(g.filterOrder)
	g.mu.Unlock()

	g.registry.RestoreVisible(s.Visible)
	g.selection.ReplaceAll(s.Selected)

	g.notify(Event{Type: EventStateRestored, Data: s.Query})
}

// AddObserver registers an observer to receive lifecycle events.
func (g *Grid[R, ID]) AddObserver(observer Observer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observers = append(g.observers, observer)
}

// RemoveObserver unregisters an observer.
func (g *Grid[R, ID]) RemoveObserver(observer Observer) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, o := range g.observers {
		if o == observer {
			g.observers = append(g.observers[:i], g.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers.
func (g *Grid[R, ID]) notify(event Event) {
	g.mu.RLock()
	observers := make([]Observer, len(g.observers))
	copy(observers, g.observers)
	g.mu.RUnlock()

	event.Timestamp = time.Now()
	for _, observer := range observers {
		observer.OnEvent(event)
	}
}
