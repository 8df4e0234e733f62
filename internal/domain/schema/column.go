package schema

// Column describes a single grid column for rows of type R: how to pull
// a cell value out of a row and which engine features the column takes
// part in. Descriptors are immutable once registered.
type Column[R any] struct {
	Key        string // unique identifier, also the key for visibility toggles
	Label      string // human-readable header text
	Sortable   bool   // column participates in sorting
	Filterable bool   // column participates in per-column equality filters

	// Value extracts the cell value from a row.
	// Returns false when the row has no value for this column.
	Value func(R) (interface{}, bool)

	// Render overrides the default string form of a cell for display.
	// Optional; search always uses the raw stringified value, never Render.
	Render func(value interface{}, row R) string
}

// CellValue evaluates the extractor, tolerating a nil Value func.
// Columns without an extractor behave like columns whose value is
// missing on every row.
func (c Column[R]) CellValue(row R) (interface{}, bool) {
	if c.Value == nil {
		return nil, false
	}
	return c.Value(row)
}
