package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// SaveGridFile persists a dataset back to disk. Used after a bulk
// delete shrinks the record set.
func SaveGridFile(path string, file *GridFile) error {
	if file == nil || path == "" {
		return fmt.Errorf("cannot save grid file: nil or missing path")
	}

	// 1. Rebuild the on-disk meta from the in-memory columns
	meta := GridMeta{
		Name:    file.Name,
		Version: 1,
		Columns: make([]ColumnMeta, len(file.Columns)),
		Records: file.Records,
	}

	for i, col := range file.Columns {
		meta.Columns[i] = ColumnMeta{
			Key:        col.Key,
			Label:      col.Label,
			Sortable:   col.Sortable,
			Filterable: col.Filterable,
		}
	}

	// 2. Marshal the whole document
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal grid file %s: %w", file.Name, err)
	}

	// 3. Write using temp + atomic rename
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp grid file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}

	slog.Info("Grid file saved successfully",
		slog.String("name", file.Name),
		slog.String("path", path),
		slog.Int("record_count", len(file.Records)),
	)

	return nil
}
