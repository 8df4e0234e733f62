package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/mini-datagrid/datasets"
	"github.com/leengari/mini-datagrid/internal/audit"
	"github.com/leengari/mini-datagrid/internal/domain/record"
	"github.com/leengari/mini-datagrid/internal/logging"
	"github.com/leengari/mini-datagrid/internal/render"
	"github.com/leengari/mini-datagrid/internal/storage"
)

func main() {
	dataDir := flag.String("data", "data", "Directory holding the dataset and audit trail")
	pageSize := flag.Int("page-size", 10, "Initial page size")
	flag.Parse()

	logger, closeFn := logging.SetupLogger()
	defer closeFn()

	slog.SetDefault(logger)
	slog.Info("Starting grid browser...")

	// Seed the bundled dataset on first run
	dataPath, err := datasets.Ensure(*dataDir)
	if err != nil {
		slog.Error("failed to seed dataset", "error", err)
		os.Exit(1)
	}

	file, err := storage.LoadGridFile(dataPath, logger)
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	// Display-only touches: relative times and separators on numeric cells
	for i := range file.Columns {
		switch file.Columns[i].Key {
		case "updated":
			file.Columns[i].Render = render.HumanTime[record.Record]()
		case "hours":
			file.Columns[i].Render = render.HumanNumber[record.Record]()
		}
	}

	auditLog, err := audit.Open(filepath.Join(*dataDir, "audit.jsonl"))
	if err != nil {
		slog.Error("failed to open audit trail", "error", err)
		os.Exit(1)
	}
	defer auditLog.Close()

	browser, err := newBrowser(file, auditLog, *pageSize, logger)
	if err != nil {
		slog.Error("failed to build grid", "error", err)
		os.Exit(1)
	}

	slog.Info("Browser ready", "dataset", file.Name, "records", len(file.Records))
	browser.run(os.Stdin)
}
