package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/mini-datagrid/internal/domain/record"
	"github.com/leengari/mini-datagrid/internal/domain/schema"
)

// GridFile is a loaded dataset ready to wire into a grid.
type GridFile struct {
	Name    string
	Path    string
	Columns []schema.Column[record.Record]
	Records []record.Record
}

// LoadGridFile reads a grid dataset from the given JSON file. Every
// record must carry a usable "id" value; selection and bulk dispatch
// key on it, so a dataset without ids is rejected here instead of
// misbehaving later.
func LoadGridFile(path string, logger *slog.Logger) (*GridFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid file: %w", err)
	}

	var meta GridMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse grid file: %w", err)
	}

	if len(meta.Columns) == 0 {
		return nil, fmt.Errorf("grid file %s declares no columns", path)
	}

	columns := make([]schema.Column[record.Record], 0, len(meta.Columns))
	for _, c := range meta.Columns {
		label := c.Label
		if label == "" {
			label = c.Key
		}
		columns = append(columns, schema.Column[record.Record]{
			Key:        c.Key,
			Label:      label,
			Sortable:   c.Sortable,
			Filterable: c.Filterable,
			Value:      record.Field(c.Key),
		})
	}

	for i, rec := range meta.Records {
		if _, ok := rec.ID(); !ok {
			return nil, fmt.Errorf("record %d in %s has no usable id", i, path)
		}
	}

	logger.Info("Grid file loaded successfully",
		slog.String("name", meta.Name),
		slog.String("path", path),
		slog.Int("column_count", len(columns)),
		slog.Int("record_count", len(meta.Records)),
	)

	return &GridFile{
		Name:    meta.Name,
		Path:    path,
		Columns: columns,
		Records: meta.Records,
	}, nil
}
