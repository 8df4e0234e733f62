package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leengari/mini-datagrid/internal/domain/schema"
	"github.com/leengari/mini-datagrid/internal/engine"
	"github.com/leengari/mini-datagrid/internal/query/operations/testutil"
)

func newRenderGrid(t *testing.T) *engine.Grid[testutil.ComplianceRow, string] {
	t.Helper()
	grid, err := engine.New(engine.Options[testutil.ComplianceRow, string]{
		Columns:  testutil.ComplianceColumns(),
		Identity: testutil.RowID,
	})
	if err != nil {
		t.Fatalf("failed to build grid: %v", err)
	}
	grid.ReplaceRows(testutil.ComplianceRows())
	return grid
}

func TestWriteView(t *testing.T) {
	grid := newRenderGrid(t)
	grid.ToggleRow("chk-002", true)

	var buf bytes.Buffer
	WriteView(&buf, grid.View(), func(r testutil.ComplianceRow) bool {
		return grid.Selected(r.ID)
	})
	out := buf.String()

	for _, want := range []string{"Vessel", "Hull Girder Strength", "Aurora", "12.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Page 1 of 1 | 6 of 6 rows match | 1 selected") {
		t.Errorf("Caption missing or wrong:\n%s", out)
	}

	t.Run("selection marker on checked rows only", func(t *testing.T) {
		for _, line := range strings.Split(out, "\n") {
			switch {
			case strings.Contains(line, "Fatigue Screening"):
				if !strings.Contains(line, "*") {
					t.Errorf("Expected marker on selected row: %s", line)
				}
			case strings.Contains(line, "Hull Girder Strength"):
				if strings.Contains(line, "*") {
					t.Errorf("Unexpected marker on unselected row: %s", line)
				}
			}
		}
	})

	t.Run("hidden columns stay out of the frame", func(t *testing.T) {
		grid.ToggleColumn("owner")

		var hidden bytes.Buffer
		WriteView(&hidden, grid.View(), nil)

		if strings.Contains(hidden.String(), "alice") {
			t.Error("Hidden owner column still rendered")
		}
	})
}

func TestCell(t *testing.T) {
	row := testutil.ComplianceRows()[0]

	t.Run("render override wins", func(t *testing.T) {
		col := schema.Column[testutil.ComplianceRow]{
			Key: "hours", Label: "Hours",
			Value:  func(r testutil.ComplianceRow) (interface{}, bool) { return r.Hours, true },
			Render: func(value interface{}, _ testutil.ComplianceRow) string { return "overridden" },
		}
		if got := Cell(col, row); got != "overridden" {
			t.Errorf("Expected override, got %q", got)
		}
	})

	t.Run("missing value renders empty", func(t *testing.T) {
		cols := testutil.ComplianceColumns()
		notes := cols[len(cols)-1]
		if got := Cell(notes, row); got != "" {
			t.Errorf("Expected empty cell, got %q", got)
		}
	})

	t.Run("default stringifies raw value", func(t *testing.T) {
		if got := Cell(testutil.ComplianceColumns()[5], row); got != "12.5" {
			t.Errorf("Expected 12.5, got %q", got)
		}
	})
}

func TestCaption(t *testing.T) {
	grid := newRenderGrid(t)
	grid.SetQuery("aurora")

	caption := Caption(grid.View())
	if caption != `Page 1 of 1 | 2 of 6 rows match for "aurora"` {
		t.Errorf("Unexpected caption: %s", caption)
	}

	t.Run("empty result set", func(t *testing.T) {
		grid.SetQuery("no such thing")
		caption := Caption(grid.View())
		if !strings.Contains(caption, "Page 1 of 0 | 0 of 6 rows match") {
			t.Errorf("Unexpected caption: %s", caption)
		}
	})
}
