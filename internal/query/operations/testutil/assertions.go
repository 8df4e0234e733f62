package testutil

import "testing"

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertPageCount checks if the paginator produced the expected number of pages
func AssertPageCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d pages, got %d", context, expected, actual)
	}
}

// AssertRowIDs checks that the rows carry exactly the expected IDs in order
func AssertRowIDs(t *testing.T, rows []ComplianceRow, expected []string, context string) {
	t.Helper()
	if len(rows) != len(expected) {
		t.Errorf("%s: expected %d rows, got %d", context, len(expected), len(rows))
		return
	}
	for i, row := range rows {
		if row.ID != expected[i] {
			t.Errorf("%s: row %d: expected id %q, got %q", context, i, expected[i], row.ID)
		}
	}
}

// AssertIDs checks that two id slices are equal in order
func AssertIDs(t *testing.T, actual, expected []string, context string) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Errorf("%s: expected %d ids, got %d (%v)", context, len(expected), len(actual), actual)
		return
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Errorf("%s: id %d: expected %q, got %q", context, i, expected[i], actual[i])
		}
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}
