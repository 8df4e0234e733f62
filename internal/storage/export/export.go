// Package export implements the bulk-export sinks a grid's OnExport
// callback typically feeds: CSV and JSON Lines encodings of a row set,
// projected through the grid's column descriptors.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Velocidex/ordereddict"

	"github.com/leengari/mini-datagrid/internal/domain/schema"
	"github.com/leengari/mini-datagrid/internal/util/types"
)

// Format selects an export encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// WriteCSV writes rows as CSV with the column labels as the header row.
// Cells are the stringified raw values; Render overrides are a display
// concern and do not apply to exports.
func WriteCSV[R any](w io.Writer, columns []schema.Column[R], rows []R) error {
	writer := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Label
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			value, ok := col.CellValue(row)
			if !ok {
				cells[i] = ""
				continue
			}
			cells[i] = types.Stringify(value)
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSONL writes rows as JSON Lines, one object per row. Fields
// appear in column order; columns with no value on a row are omitted
// from that row's object.
func WriteJSONL[R any](w io.Writer, columns []schema.Column[R], rows []R) error {
	encoder := json.NewEncoder(w)

	for _, row := range rows {
		obj := ordereddict.NewDict()
		for _, col := range columns {
			value, ok := col.CellValue(row)
			if !ok {
				continue
			}
			obj.Set(col.Key, value)
		}
		if err := encoder.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode JSONL row: %w", err)
		}
	}

	return nil
}

// WriteFile exports rows to path using temp + atomic rename, so a
// half-written export never replaces a previous one.
func WriteFile[R any](path string, format Format, columns []schema.Column[R], rows []R) error {
	var buf bytes.Buffer
	var err error

	switch format {
	case FormatCSV:
		err = WriteCSV(&buf, columns, rows)
	case FormatJSONL:
		err = WriteJSONL(&buf, columns, rows)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write temp export file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}

	slog.Info("Export written successfully",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("row_count", len(rows)),
	)

	return nil
}
