package testutil

import (
	"fmt"

	"github.com/leengari/mini-datagrid/internal/domain/schema"
)

// ComplianceRow is the fixture row used across operation tests: one
// engineering check on one vessel, the kind of record the grid was
// built to browse.
type ComplianceRow struct {
	ID     string
	Name   string
	Vessel string
	Status string
	Owner  string
	Hours  float64
	Notes  string
}

// RowID is the identifier accessor for ComplianceRow fixtures.
func RowID(r ComplianceRow) string { return r.ID }

// ComplianceColumns returns the standard fixture column set.
// The notes column deliberately reports no value for empty notes so
// tests cover the missing-value path.
func ComplianceColumns() []schema.Column[ComplianceRow] {
	return []schema.Column[ComplianceRow]{
		{Key: "id", Label: "ID", Sortable: true,
			Value: func(r ComplianceRow) (interface{}, bool) { return r.ID, true }},
		{Key: "name", Label: "Check", Sortable: true,
			Value: func(r ComplianceRow) (interface{}, bool) { return r.Name, true }},
		{Key: "vessel", Label: "Vessel", Filterable: true,
			Value: func(r ComplianceRow) (interface{}, bool) { return r.Vessel, true }},
		{Key: "status", Label: "Status", Filterable: true,
			Value: func(r ComplianceRow) (interface{}, bool) { return r.Status, true }},
		{Key: "owner", Label: "Owner",
			Value: func(r ComplianceRow) (interface{}, bool) { return r.Owner, true }},
		{Key: "hours", Label: "Hours", Sortable: true,
			Value: func(r ComplianceRow) (interface{}, bool) { return r.Hours, true }},
		{Key: "notes", Label: "Notes",
			Value: func(r ComplianceRow) (interface{}, bool) { return r.Notes, r.Notes != "" }},
	}
}

// ComplianceRows returns a small sample dataset for testing.
func ComplianceRows() []ComplianceRow {
	return []ComplianceRow{
		{ID: "chk-001", Name: "Hull Girder Strength", Vessel: "Aurora", Status: "Open", Owner: "alice", Hours: 12.5},
		{ID: "chk-002", Name: "Fatigue Screening", Vessel: "Aurora", Status: "Closed", Owner: "bob", Hours: 8, Notes: "revisit weld detail W4"},
		{ID: "chk-003", Name: "Buckling Check", Vessel: "Borealis", Status: "Open", Owner: "charlie", Hours: 20},
		{ID: "chk-004", Name: "Corrosion Margin Review", Vessel: "Borealis", Status: "In Review", Owner: "alice", Hours: 5.25},
		{ID: "chk-005", Name: "Mooring Load Case", Vessel: "Cygnus", Status: "Closed", Owner: "bob", Hours: 16},
		{ID: "chk-006", Name: "Lifting Lug Verification", Vessel: "Cygnus", Status: "Open", Owner: "dana", Hours: 3},
	}
}

// NumberedRows returns n rows with predictable sequential IDs
// (chk-001, chk-002, ...) for pagination and selection-scope tests.
func NumberedRows(n int) []ComplianceRow {
	vessels := []string{"Aurora", "Borealis", "Cygnus"}
	statuses := []string{"Open", "Closed", "In Review"}

	rows := make([]ComplianceRow, n)
	for i := 0; i < n; i++ {
		rows[i] = ComplianceRow{
			ID:     fmt.Sprintf("chk-%03d", i+1),
			Name:   fmt.Sprintf("Check %03d", i+1),
			Vessel: vessels[i%len(vessels)],
			Status: statuses[i%len(statuses)],
			Owner:  "alice",
			Hours:  float64(i + 1),
		}
	}
	return rows
}

// IDs extracts the identifiers of the given rows in order.
func IDs(rows []ComplianceRow) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}
