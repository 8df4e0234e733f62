package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/leengari/mini-datagrid/internal/audit"
	"github.com/leengari/mini-datagrid/internal/domain/record"
	"github.com/leengari/mini-datagrid/internal/engine"
	"github.com/leengari/mini-datagrid/internal/render"
	"github.com/leengari/mini-datagrid/internal/storage"
	"github.com/leengari/mini-datagrid/internal/storage/export"
)

// browser drives an interactive session over a single grid. Commands mutate
// the grid state and re-render the current page; bulk actions go through the
// grid's dispatch path so the audit trail sees them.
type browser struct {
	grid     *engine.Grid[record.Record, string]
	file     *storage.GridFile
	auditLog *audit.Log
	logger   *slog.Logger
	out      io.Writer

	// exportPath holds the destination of the in-flight export command.
	// Set before BulkExport, consumed by the OnExport callback.
	exportPath string
}

func newBrowser(file *storage.GridFile, auditLog *audit.Log, pageSize int, logger *slog.Logger) (*browser, error) {
	b := &browser{
		file:     file,
		auditLog: auditLog,
		logger:   logger,
		out:      os.Stdout,
	}

	grid, err := engine.New(engine.Options[record.Record, string]{
		Columns:  file.Columns,
		Identity: record.Identity,
		PageSize: pageSize,
		OnSearch: func(query string) {
			logger.Debug("search applied", "query", query)
		},
		OnExport: b.exportRows,
		OnDelete: b.deleteRows,
	})
	if err != nil {
		return nil, err
	}
	b.grid = grid

	grid.AddObserver(audit.NewRecorder(auditLog, logger))
	grid.ReplaceRows(file.Records)

	return b, nil
}

// run reads commands until EOF or an exit command. Mutating commands
// re-render the page so the user always sees the effect of the last input.
func (b *browser) run(in io.Reader) {
	fmt.Fprintf(b.out, "Browsing %s. Type 'help' for commands.\n", b.file.Name)
	b.render()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == `\q` {
			fmt.Fprintln(b.out, "Bye!")
			return
		}

		if b.dispatch(line) {
			b.render()
		}
	}
}

// dispatch runs a single command line and reports whether the grid
// should be re-rendered afterwards.
func (b *browser) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		b.printHelp()
		return false

	case "search":
		b.grid.SetQuery(strings.Join(args, " "))
		return true

	case "page":
		n, err := strconv.Atoi(strings.Join(args, ""))
		if err != nil {
			fmt.Fprintln(b.out, "Usage: page <number>")
			return false
		}
		b.grid.SetPage(n)
		return true

	case "next":
		b.grid.SetPage(b.grid.View().Page + 1)
		return true

	case "prev":
		b.grid.SetPage(b.grid.View().Page - 1)
		return true

	case "size":
		n, err := strconv.Atoi(strings.Join(args, ""))
		if err != nil || n < 1 {
			fmt.Fprintln(b.out, "Usage: size <number>")
			return false
		}
		b.grid.SetPageSize(n)
		return true

	case "show", "hide":
		return b.setVisibility(args, cmd == "show")

	case "columns":
		b.printColumns()
		return false

	case "sort":
		return b.sort(args)

	case "filter":
		return b.filter(args)

	case "select", "unselect":
		if len(args) == 0 {
			fmt.Fprintf(b.out, "Usage: %s <id> [id...]\n", cmd)
			return false
		}
		for _, id := range args {
			b.grid.ToggleRow(id, cmd == "select")
		}
		return true

	case "all":
		b.grid.SelectPage(true)
		return true

	case "none":
		b.grid.SelectPage(false)
		return true

	case "selected":
		b.printSelected()
		return false

	case "export":
		return b.export(args)

	case "delete":
		return b.delete()

	case "history":
		n := 10
		if len(args) > 0 {
			if parsed, err := strconv.Atoi(args[0]); err == nil {
				n = parsed
			}
		}
		b.printHistory(n)
		return false

	default:
		fmt.Fprintf(b.out, "Unknown command %q. Type 'help' for commands.\n", cmd)
		return false
	}
}

func (b *browser) render() {
	render.WriteView(b.out, b.grid.View(), func(r record.Record) bool {
		return b.grid.Selected(record.Identity(r))
	})
}

func (b *browser) setVisibility(args []string, visible bool) bool {
	if len(args) != 1 {
		fmt.Fprintln(b.out, "Usage: show|hide <column>")
		return false
	}

	key := args[0]
	registry := b.grid.Registry()
	if _, ok := registry.Column(key); !ok {
		fmt.Fprintf(b.out, "Unknown column %q.\n", key)
		return false
	}
	if registry.IsVisible(key) == visible {
		return false
	}

	b.grid.ToggleColumn(key)
	return true
}

func (b *browser) printColumns() {
	registry := b.grid.Registry()
	for _, col := range registry.Columns() {
		marker := " "
		if registry.IsVisible(col.Key) {
			marker = "*"
		}

		var traits []string
		if col.Sortable {
			traits = append(traits, "sortable")
		}
		if col.Filterable {
			traits = append(traits, "filterable")
		}

		fmt.Fprintf(b.out, "  [%s] %-10s %-20s %s\n", marker, col.Key, col.Label, strings.Join(traits, ", "))
	}
	fmt.Fprintln(b.out, "Columns marked [*] are visible.")
}

func (b *browser) sort(args []string) bool {
	if len(args) == 0 {
		b.grid.ClearSort()
		return true
	}

	key := args[0]
	col, ok := b.grid.Registry().Column(key)
	if !ok || !col.Sortable {
		fmt.Fprintf(b.out, "Column %q is not sortable.\n", key)
		return false
	}

	b.grid.SortBy(key, len(args) > 1 && args[1] == "desc")
	return true
}

func (b *browser) filter(args []string) bool {
	if len(args) == 0 {
		b.grid.ClearColumnFilters()
		return true
	}

	key := args[0]
	col, ok := b.grid.Registry().Column(key)
	if !ok || !col.Filterable {
		fmt.Fprintf(b.out, "Column %q is not filterable.\n", key)
		return false
	}

	if len(args) == 1 {
		b.grid.ClearColumnFilter(key)
		return true
	}

	b.grid.SetColumnFilter(key, strings.Join(args[1:], " "))
	return true
}

func (b *browser) printSelected() {
	ids := b.grid.SelectedIDs()
	if len(ids) == 0 {
		fmt.Fprintln(b.out, "Nothing selected.")
		return
	}
	fmt.Fprintf(b.out, "%d selected: %s\n", len(ids), strings.Join(ids, ", "))
}

func (b *browser) export(args []string) bool {
	if len(b.grid.SelectedIDs()) == 0 {
		fmt.Fprintln(b.out, "Nothing selected.")
		return false
	}

	b.exportPath = ""
	if len(args) > 0 {
		b.exportPath = args[0]
	}
	b.grid.BulkExport()
	return false
}

// exportRows is the OnExport callback. The grid hands over the selected ids;
// the browser resolves them to rows and writes the file.
func (b *browser) exportRows(ids []string) {
	path := b.exportPath
	if path == "" {
		stamp := time.Now().Format("20060102-150405")
		path = filepath.Join(filepath.Dir(b.file.Path), fmt.Sprintf("export-%s.csv", stamp))
	}

	format := export.FormatCSV
	if strings.HasSuffix(path, ".jsonl") {
		format = export.FormatJSONL
	}

	rows := b.grid.RowsByID(ids)
	if err := export.WriteFile(path, format, b.file.Columns, rows); err != nil {
		b.logger.Error("export failed", "error", err)
		fmt.Fprintf(b.out, "Export failed: %v\n", err)
		return
	}

	fmt.Fprintf(b.out, "Exported %d rows to %s\n", len(rows), path)
}

func (b *browser) delete() bool {
	if len(b.grid.SelectedIDs()) == 0 {
		fmt.Fprintln(b.out, "Nothing selected.")
		return false
	}

	b.grid.BulkDelete()
	return true
}

// deleteRows is the OnDelete callback: drop the rows from the dataset,
// persist the new contents, then hand the survivors back to the grid.
func (b *browser) deleteRows(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := make([]record.Record, 0, len(b.file.Records))
	for _, rec := range b.file.Records {
		if id, ok := rec.ID(); ok && drop[id] {
			continue
		}
		kept = append(kept, rec)
	}
	b.file.Records = kept

	if err := storage.SaveGridFile(b.file.Path, b.file); err != nil {
		b.logger.Error("failed to persist delete", "error", err)
		fmt.Fprintf(b.out, "Warning: delete not persisted: %v\n", err)
	}

	b.grid.ReplaceRows(kept)
	fmt.Fprintf(b.out, "Deleted %d rows.\n", len(ids))
}

func (b *browser) printHistory(n int) {
	reader, err := audit.OpenReader(b.auditLog.Path())
	if err != nil {
		fmt.Fprintf(b.out, "Error reading audit trail: %v\n", err)
		return
	}
	defer reader.Close()

	entries, err := reader.Tail(n)
	if err != nil {
		fmt.Fprintf(b.out, "Error reading audit trail: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(b.out, "No bulk actions recorded yet.")
		return
	}

	for _, e := range entries {
		fmt.Fprintf(b.out, "#%d  %s  %-7s %d rows: %s\n",
			e.Seq, e.Timestamp.Format(time.RFC3339), e.Kind, e.Count, strings.Join(e.IDs, ", "))
	}
}

func (b *browser) printHelp() {
	fmt.Fprint(b.out, `Commands:
  search <text>          Filter rows by substring match across all columns
  search                 Clear the search query
  page <n>               Jump to page n
  next | prev            Move one page forward or back
  size <n>               Change the page size
  columns                List columns and their visibility
  show | hide <column>   Toggle a column's visibility
  sort <column> [desc]   Sort by a column (sort alone clears sorting)
  filter <col> <value>   Keep rows whose column equals value (ignoring case)
  filter <col>           Clear that column's filter (filter alone clears all)
  select <id> [id...]    Add rows to the selection
  unselect <id> [id...]  Remove rows from the selection
  all | none             Select exactly the current page, or clear everything
  selected               List selected row ids
  export [path]          Export selected rows (.jsonl for JSON lines, else CSV)
  delete                 Delete selected rows and persist the dataset
  history [n]            Show the last n bulk actions from the audit trail
  exit                   Leave the browser
`)
}
