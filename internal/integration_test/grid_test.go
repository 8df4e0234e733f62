package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leengari/mini-datagrid/internal/audit"
	"github.com/leengari/mini-datagrid/internal/domain/record"
	"github.com/leengari/mini-datagrid/internal/engine"
	"github.com/leengari/mini-datagrid/internal/storage"
	"github.com/leengari/mini-datagrid/internal/storage/export"
)

// testHarness wires the full stack the way cmd/gridview does: a dataset
// file on disk, an audit trail next to it, and a grid whose callbacks
// export to and delete from that directory.
type testHarness struct {
	t        *testing.T
	dir      string
	grid     *engine.Grid[record.Record, string]
	file     *storage.GridFile
	auditLog *audit.Log
}

func setupTestGrid(t *testing.T, count int) *testHarness {
	t.Helper()

	dir := t.TempDir()
	path := writeDataset(t, dir, count)

	file, err := storage.LoadGridFile(path, discardLogger())
	if err != nil {
		t.Fatalf("Loading dataset failed: %v", err)
	}

	auditLog, err := audit.Open(filepath.Join(dir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("Opening audit trail failed: %v", err)
	}
	t.Cleanup(func() { auditLog.Close() })

	h := &testHarness{t: t, dir: dir, file: file, auditLog: auditLog}

	grid, err := engine.New(engine.Options[record.Record, string]{
		Columns:  file.Columns,
		Identity: record.Identity,
		PageSize: 5,
		OnExport: h.exportSelection,
		OnDelete: h.deleteRows,
	})
	if err != nil {
		t.Fatalf("Building grid failed: %v", err)
	}
	h.grid = grid

	grid.AddObserver(audit.NewRecorder(auditLog, discardLogger()))
	grid.ReplaceRows(file.Records)

	return h
}

// exportSelection mirrors the gridview export callback: resolve the ids
// and write a CSV next to the dataset.
func (h *testHarness) exportSelection(ids []string) {
	rows := h.grid.RowsByID(ids)
	path := filepath.Join(h.dir, "export.csv")
	if err := export.WriteFile(path, export.FormatCSV, h.file.Columns, rows); err != nil {
		h.t.Errorf("Export failed: %v", err)
	}
}

// deleteRows mirrors the gridview delete callback: drop the rows,
// persist the dataset, then swap the survivors into the grid.
func (h *testHarness) deleteRows(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := make([]record.Record, 0, len(h.file.Records))
	for _, rec := range h.file.Records {
		if id, ok := rec.ID(); ok && drop[id] {
			continue
		}
		kept = append(kept, rec)
	}
	h.file.Records = kept

	if err := storage.SaveGridFile(h.file.Path, h.file); err != nil {
		h.t.Errorf("Persisting delete failed: %v", err)
	}
	h.grid.ReplaceRows(kept)
}

// writeDataset writes a dataset with count records to dir and returns
// its path. Records cycle through three vessels and two statuses so
// searches and filters have something to bite on.
func writeDataset(t *testing.T, dir string, count int) string {
	t.Helper()

	vessels := []string{"Aurora", "Borealis", "Cygnus"}
	statuses := []string{"Open", "Closed"}

	meta := storage.GridMeta{
		Name: "integration-checks",
		Columns: []storage.ColumnMeta{
			{Key: "id", Label: "ID", Sortable: true},
			{Key: "name", Label: "Check", Sortable: true},
			{Key: "vessel", Label: "Vessel", Filterable: true},
			{Key: "status", Label: "Status", Filterable: true},
			{Key: "hours", Label: "Hours", Sortable: true},
		},
	}
	for i := 1; i <= count; i++ {
		meta.Records = append(meta.Records, record.New().
			Set("id", fmt.Sprintf("chk-%03d", i)).
			Set("name", fmt.Sprintf("Check %03d", i)).
			Set("vessel", vessels[(i-1)%len(vessels)]).
			Set("status", statuses[(i-1)%len(statuses)]).
			Set("hours", i))
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		t.Fatalf("Marshaling dataset failed: %v", err)
	}

	path := filepath.Join(dir, "checks.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Writing dataset failed: %v", err)
	}
	return path
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDatasetLifecycle runs the full browse flow against a dataset on
// disk: search, paginate, filter, select, export, delete, and verify
// both the persisted dataset and the audit trail afterwards.
func TestDatasetLifecycle(t *testing.T) {
	h := setupTestGrid(t, 12)

	t.Run("Search", func(t *testing.T) {
		h.grid.SetQuery("aurora")

		view := h.grid.View()
		if view.MatchedRows != 4 {
			t.Errorf("Expected 4 matches for aurora, got %d", view.MatchedRows)
		}
		if view.Page != 1 {
			t.Errorf("Expected page reset to 1, got %d", view.Page)
		}

		h.grid.SetQuery("")
	})

	t.Run("Paginate", func(t *testing.T) {
		h.grid.SetPage(3)

		view := h.grid.View()
		if view.TotalPages != 3 {
			t.Fatalf("Expected 3 pages of 5, got %d", view.TotalPages)
		}
		if len(view.Rows) != 2 {
			t.Fatalf("Expected 2 rows on the last page, got %d", len(view.Rows))
		}
		if got := record.Identity(view.Rows[0]); got != "chk-011" {
			t.Errorf("Expected chk-011 first on page 3, got %s", got)
		}
	})

	t.Run("FilterAndSort", func(t *testing.T) {
		h.grid.SetColumnFilter("status", "open")
		h.grid.SortBy("hours", true)

		view := h.grid.View()
		if view.MatchedRows != 6 {
			t.Errorf("Expected 6 open checks, got %d", view.MatchedRows)
		}
		if view.Page != 1 {
			t.Errorf("Expected filter change to reset the page, got %d", view.Page)
		}
		if got := record.Identity(view.Rows[0]); got != "chk-011" {
			t.Errorf("Expected chk-011 first under hours desc, got %s", got)
		}

		h.grid.ClearColumnFilters()
		h.grid.ClearSort()
	})

	t.Run("SelectAndExport", func(t *testing.T) {
		h.grid.ToggleRow("chk-001", true)
		h.grid.ToggleRow("chk-003", true)
		h.grid.BulkExport()

		data, err := os.ReadFile(filepath.Join(h.dir, "export.csv"))
		if err != nil {
			t.Fatalf("Export file not written: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("Expected header + 2 rows in export, got %d lines", len(lines))
		}
		if lines[0] != "ID,Check,Vessel,Status,Hours" {
			t.Errorf("Unexpected export header: %s", lines[0])
		}
		if !strings.HasPrefix(lines[1], "chk-001,") || !strings.HasPrefix(lines[2], "chk-003,") {
			t.Errorf("Export rows out of order: %v", lines[1:])
		}

		if got := len(h.grid.SelectedIDs()); got != 2 {
			t.Errorf("Expected selection kept after export, got %d ids", got)
		}
	})

	t.Run("DeleteAndPersist", func(t *testing.T) {
		h.grid.BulkDelete()

		if got := len(h.grid.SelectedIDs()); got != 0 {
			t.Errorf("Expected selection cleared after delete, got %d ids", got)
		}
		if got := h.grid.View().TotalRows; got != 10 {
			t.Errorf("Expected 10 rows after delete, got %d", got)
		}

		// The dataset on disk shrank too
		reloaded, err := storage.LoadGridFile(h.file.Path, discardLogger())
		if err != nil {
			t.Fatalf("Reloading dataset failed: %v", err)
		}
		if len(reloaded.Records) != 10 {
			t.Fatalf("Expected 10 records on disk, got %d", len(reloaded.Records))
		}
		for _, rec := range reloaded.Records {
			if id, _ := rec.ID(); id == "chk-001" || id == "chk-003" {
				t.Errorf("Deleted record %s still on disk", id)
			}
		}
	})

	t.Run("AuditTrail", func(t *testing.T) {
		reader, err := audit.OpenReader(h.auditLog.Path())
		if err != nil {
			t.Fatalf("Opening audit reader failed: %v", err)
		}
		defer reader.Close()

		entries, err := reader.ScanAll()
		if err != nil {
			t.Fatalf("Scanning audit trail failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("Expected 2 audit entries, got %d", len(entries))
		}
		if entries[0].Kind != "EXPORT" || entries[1].Kind != "DELETE" {
			t.Errorf("Unexpected action kinds: %s, %s", entries[0].Kind, entries[1].Kind)
		}
		if entries[1].Count != 2 {
			t.Errorf("Expected delete entry to cover 2 rows, got %d", entries[1].Count)
		}
		if len(entries[1].IDs) != 2 || entries[1].IDs[0] != "chk-001" || entries[1].IDs[1] != "chk-003" {
			t.Errorf("Unexpected delete ids: %v", entries[1].IDs)
		}
	})
}

// TestStateSurvivesRestart snapshots the view state, rebuilds the whole
// stack from disk as a new session would, and restores the snapshot
// into the fresh grid.
func TestStateSurvivesRestart(t *testing.T) {
	h := setupTestGrid(t, 12)

	h.grid.SetQuery("check")
	h.grid.SetPage(2)
	h.grid.ToggleColumn("hours")
	h.grid.SortBy("name", true)
	h.grid.ToggleRow("chk-002", true)

	data, err := json.Marshal(h.grid.State())
	if err != nil {
		t.Fatalf("Marshaling state failed: %v", err)
	}

	// New session over the same dataset
	file, err := storage.LoadGridFile(h.file.Path, discardLogger())
	if err != nil {
		t.Fatalf("Reloading dataset failed: %v", err)
	}

	grid, err := engine.New(engine.Options[record.Record, string]{
		Columns:  file.Columns,
		Identity: record.Identity,
	})
	if err != nil {
		t.Fatalf("Building second grid failed: %v", err)
	}
	grid.ReplaceRows(file.Records)

	var state engine.State[string]
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("Unmarshaling state failed: %v", err)
	}
	grid.RestoreState(state)

	view := grid.View()
	if view.Query != "check" {
		t.Errorf("Expected query restored, got %q", view.Query)
	}
	if view.Page != 2 || view.PageSize != 5 {
		t.Errorf("Expected page 2 of size 5, got page %d of size %d", view.Page, view.PageSize)
	}
	if view.Sort.Key != "name" || !view.Sort.Descending {
		t.Errorf("Expected name desc sort, got %+v", view.Sort)
	}
	if len(view.Columns) != 4 {
		t.Errorf("Expected hours to stay hidden, got %d visible columns", len(view.Columns))
	}
	if !grid.Selected("chk-002") {
		t.Error("Expected chk-002 to stay selected")
	}
	if got := record.Identity(view.Rows[0]); got != "chk-007" {
		t.Errorf("Expected chk-007 first on page 2 under name desc, got %s", got)
	}
}
