// Package render draws grid views as text tables for the demo CLI and
// for debugging sessions.
package render

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/leengari/mini-datagrid/internal/domain/schema"
	"github.com/leengari/mini-datagrid/internal/engine"
	"github.com/leengari/mini-datagrid/internal/util/types"
)

// WriteView renders one page of a grid as a text table. The first
// column is the selection marker; the rest are the view's visible
// columns in registry order. selected reports the checkbox state per
// row and may be nil when the caller does not track selection.
func WriteView[R any](w io.Writer, view engine.View[R], selected func(R) bool) {
	table := tablewriter.NewWriter(w)

	header := make([]string, 0, len(view.Columns)+1)
	header = append(header, "") // selection marker column
	for _, col := range view.Columns {
		header = append(header, col.Label)
	}
	table.SetHeader(header)
	table.SetCaption(true, Caption(view))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range view.Rows {
		cells := make([]string, 0, len(view.Columns)+1)

		marker := ""
		if selected != nil && selected(row) {
			marker = "*"
		}
		cells = append(cells, marker)

		for _, col := range view.Columns {
			cells = append(cells, Cell(col, row))
		}
		table.Append(cells)
	}

	table.Render()
}

// Cell produces the display string for one cell: the column's Render
// override when present, the stringified raw value otherwise. Missing
// values render empty.
func Cell[R any](col schema.Column[R], row R) string {
	value, ok := col.CellValue(row)
	if !ok {
		return ""
	}
	if col.Render != nil {
		return col.Render(value, row)
	}
	return types.Stringify(value)
}

// Caption summarizes the frame below the table: page position, match
// counts, the active query and the selection size.
func Caption[R any](view engine.View[R]) string {
	caption := fmt.Sprintf("Page %d of %d | %s of %s rows match",
		view.Page, view.TotalPages,
		humanize.Comma(int64(view.MatchedRows)),
		humanize.Comma(int64(view.TotalRows)))

	if view.Query != "" {
		caption += fmt.Sprintf(" for %q", view.Query)
	}
	if view.SelectionCount > 0 {
		caption += fmt.Sprintf(" | %s selected", humanize.Comma(int64(view.SelectionCount)))
	}

	return caption
}
