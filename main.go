package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/mini-datagrid/datasets"
	"github.com/leengari/mini-datagrid/internal/audit"
	"github.com/leengari/mini-datagrid/internal/domain/record"
	"github.com/leengari/mini-datagrid/internal/engine"
	"github.com/leengari/mini-datagrid/internal/logging"
	"github.com/leengari/mini-datagrid/internal/render"
	"github.com/leengari/mini-datagrid/internal/storage"
	"github.com/leengari/mini-datagrid/internal/storage/export"
)

func main() {
	logger, closeFn := logging.SetupLogger()
	defer closeFn()

	slog.SetDefault(logger)
	logger.Info("Starting application...")

	// 1. Seed and load the bundled dataset
	dataPath, err := datasets.Ensure("data")
	if err != nil {
		logger.Error("failed to seed dataset", "error", err)
		closeFn()
		os.Exit(1)
	}

	file, err := storage.LoadGridFile(dataPath, logger)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		closeFn()
		os.Exit(1)
	}

	// 2. Open the audit trail for bulk actions
	auditLog, err := audit.Open(filepath.Join("data", "audit.jsonl"))
	if err != nil {
		logger.Error("failed to open audit trail", "error", err)
		closeFn()
		os.Exit(1)
	}
	defer auditLog.Close()

	// 3. Build the grid. Callbacks receive the selected ids; this demo
	// exports them to a CSV and deletes from the in-memory dataset only,
	// so the file on disk keeps all its records between runs.
	var grid *engine.Grid[record.Record, string]

	grid, err = engine.New(engine.Options[record.Record, string]{
		Columns:  file.Columns,
		Identity: record.Identity,
		PageSize: 5,
		OnExport: func(ids []string) {
			target := filepath.Join("data", "export-demo.csv")
			if err := export.WriteFile(target, export.FormatCSV, file.Columns, grid.RowsByID(ids)); err != nil {
				logger.Error("failed to export selection", "error", err)
				return
			}
			logger.Info("exported selected rows", "count", len(ids), "path", target)
		},
		OnDelete: func(ids []string) {
			drop := make(map[string]bool, len(ids))
			for _, id := range ids {
				drop[id] = true
			}
			kept := make([]record.Record, 0, len(file.Records))
			for _, rec := range file.Records {
				if id, ok := rec.ID(); ok && drop[id] {
					continue
				}
				kept = append(kept, rec)
			}
			file.Records = kept
			grid.ReplaceRows(kept)
			logger.Info("deleted selected rows", "count", len(ids), "remaining", len(kept))
		},
	})
	if err != nil {
		logger.Error("failed to build grid", "error", err)
		closeFn()
		os.Exit(1)
	}

	grid.AddObserver(engine.NewLoggingObserver())
	grid.AddObserver(audit.NewRecorder(auditLog, logger))
	grid.ReplaceRows(file.Records)

	// 4. Search across every column (hidden ones included)
	grid.SetQuery("aurora")
	view := grid.View()
	logger.Info("search applied",
		"query", view.Query,
		"matched", view.MatchedRows,
		"pages", view.TotalPages,
	)

	// 5. Clear the search, sort by hours descending, hide the notes column
	grid.SetQuery("")
	grid.SortBy("hours", true)
	grid.ToggleColumn("notes")
	render.WriteView(os.Stdout, grid.View(), nil)

	// 6. Select two rows by id, then swap in the whole visible page
	grid.ToggleRow("chk-001", true)
	grid.ToggleRow("chk-007", true)
	logger.Info("rows selected", "ids", grid.SelectedIDs())

	grid.SelectPage(true) // replaces the selection with the current page
	logger.Info("page selected", "ids", grid.SelectedIDs())

	// 7. Export the selection (exporting keeps the selection alive)
	grid.BulkExport()
	logger.Info("selection after export", "count", len(grid.SelectedIDs()))

	// 8. Snapshot the view state and restore it onto a fresh grid
	state := grid.State()

	restored, err := engine.New(engine.Options[record.Record, string]{
		Columns:  file.Columns,
		Identity: record.Identity,
	})
	if err != nil {
		logger.Error("failed to build second grid", "error", err)
		closeFn()
		os.Exit(1)
	}
	restored.ReplaceRows(file.Records)
	restored.RestoreState(state)

	restoredView := restored.View()
	logger.Info("state restored onto fresh grid",
		"page", restoredView.Page,
		"sort", restoredView.Sort.Key,
		"descending", restoredView.Sort.Descending,
		"selected", restoredView.SelectionCount,
	)

	// 9. Dataset refreshes never prune the selection on their own
	grid.ToggleRow("chk-012", true)
	grid.ReplaceRows(file.Records[:10]) // refresh that dropped the last two records
	logger.Info("selection after refresh", "count", len(grid.SelectedIDs()))

	removed := grid.ReconcileSelection()
	logger.Info("selection reconciled", "removed", removed, "remaining", len(grid.SelectedIDs()))

	grid.ReplaceRows(file.Records)

	// 10. Delete the selection; the callback swaps in the surviving rows
	grid.BulkDelete()

	view = grid.View()
	logger.Info("final view",
		"total_rows", view.TotalRows,
		"selected", view.SelectionCount,
	)
	render.WriteView(os.Stdout, grid.View(), nil)

	logger.Info("Application ready")
}
