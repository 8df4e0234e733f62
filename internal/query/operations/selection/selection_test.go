package selection

import (
	"testing"

	"github.com/leengari/mini-datagrid/internal/query/operations/testutil"
)

func TestToggle(t *testing.T) {
	sel := New[string]()

	t.Run("check", func(t *testing.T) {
		sel.Toggle("chk-001", true)
		sel.Toggle("chk-002", true)

		if !sel.Has("chk-001") || !sel.Has("chk-002") {
			t.Error("Expected both ids to be selected")
		}
		if sel.Len() != 2 {
			t.Errorf("Expected 2 selected, got %d", sel.Len())
		}
	})

	t.Run("check is idempotent", func(t *testing.T) {
		sel.Toggle("chk-001", true)
		if sel.Len() != 2 {
			t.Errorf("Re-checking must not grow the set, got %d", sel.Len())
		}
	})

	t.Run("uncheck", func(t *testing.T) {
		sel.Toggle("chk-001", false)
		if sel.Has("chk-001") {
			t.Error("Expected chk-001 to be deselected")
		}
		if sel.Len() != 1 {
			t.Errorf("Expected 1 selected, got %d", sel.Len())
		}
	})

	t.Run("uncheck of absent id is a no-op", func(t *testing.T) {
		sel.Toggle("never-selected", false)
		if sel.Len() != 1 {
			t.Errorf("Expected 1 selected, got %d", sel.Len())
		}
	})
}

func TestIDsSnapshotOrder(t *testing.T) {
	sel := New[string]()
	sel.Toggle("c", true)
	sel.Toggle("a", true)
	sel.Toggle("b", true)

	testutil.AssertIDs(t, sel.IDs(), []string{"c", "a", "b"}, "insertion order")

	// Snapshot is a copy: mutating it must not affect the selection
	ids := sel.IDs()
	ids[0] = "mutated"
	testutil.AssertIDs(t, sel.IDs(), []string{"c", "a", "b"}, "after snapshot mutation")
}

func TestReplaceAll(t *testing.T) {
	sel := New[string]()
	sel.Toggle("old-1", true)
	sel.Toggle("old-2", true)

	// Select-all on a page REPLACES the selection, it does not merge:
	// rows checked on other pages are dropped.
	sel.ReplaceAll([]string{"chk-011", "chk-012", "chk-013"})

	if sel.Has("old-1") || sel.Has("old-2") {
		t.Error("Expected previous selection to be dropped")
	}
	testutil.AssertIDs(t, sel.IDs(), []string{"chk-011", "chk-012", "chk-013"}, "replacement")

	t.Run("duplicates collapse", func(t *testing.T) {
		sel.ReplaceAll([]string{"x", "x", "y"})
		testutil.AssertIDs(t, sel.IDs(), []string{"x", "y"}, "deduplicated")
	})

	t.Run("empty replacement clears", func(t *testing.T) {
		sel.ReplaceAll(nil)
		if sel.Len() != 0 {
			t.Errorf("Expected empty selection, got %d", sel.Len())
		}
	})
}

func TestClear(t *testing.T) {
	sel := New[string]()
	sel.Toggle("chk-001", true)
	sel.Toggle("chk-002", true)

	sel.Clear()

	if sel.Len() != 0 {
		t.Errorf("Expected 0 selected after clear, got %d", sel.Len())
	}
	if sel.Has("chk-001") {
		t.Error("Expected chk-001 to be gone")
	}
}

func TestRetain(t *testing.T) {
	sel := New[string]()
	for _, id := range []string{"chk-001", "chk-002", "chk-003", "chk-004"} {
		sel.Toggle(id, true)
	}

	present := map[string]bool{"chk-001": true, "chk-003": true}
	removed := sel.Retain(func(id string) bool { return present[id] })

	if removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}
	testutil.AssertIDs(t, sel.IDs(), []string{"chk-001", "chk-003"}, "survivors keep order")
}

func TestSelectionSurvivesUnrelatedChanges(t *testing.T) {
	// The selection has no idea about filters or pages; this pins the
	// contract that only Toggle/ReplaceAll/Clear/Retain mutate it.
	sel := New[string]()
	sel.Toggle("chk-042", true)

	if !sel.Has("chk-042") || sel.Len() != 1 {
		t.Error("Selection changed without a mutating call")
	}
}
