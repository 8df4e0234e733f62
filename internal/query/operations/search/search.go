package search

import (
	"strings"

	"github.com/leengari/mini-datagrid/internal/domain/schema"
	"github.com/leengari/mini-datagrid/internal/util/types"
)

// PredicateFunc is a function that tests whether a row matches certain criteria.
type PredicateFunc[R any] func(R) bool

// Filter returns the rows whose stringified cell values contain the
// query, ignoring case. Every registered column is scanned regardless
// of visibility, so hiding a column never changes the match set.
//
// A blank query returns the input slice itself: no copy, no filtering.
// Row order is preserved, so filtering is stable. The scan is
// O(rows x columns x len(query)); callers with datasets large enough
// for that to hurt should filter upstream instead.
func Filter[R any](rows []R, columns []schema.Column[R], query string) []R {
	query = strings.TrimSpace(query)
	if query == "" {
		return rows
	}

	var result []R
	for _, row := range rows {
		if Matches(row, columns, query) {
			result = append(result, row)
		}
	}
	return result
}

// Where returns the rows matching an arbitrary predicate, preserving
// input order. Used to AND per-column filters with the search scan.
func Where[R any](rows []R, pred PredicateFunc[R]) []R {
	if pred == nil {
		return rows
	}

	var result []R
	for _, row := range rows {
		if pred(row) {
			result = append(result, row)
		}
	}
	return result
}

// Matches reports whether any column value of the row contains the
// query, ignoring case. Missing and nil values never match.
func Matches[R any](row R, columns []schema.Column[R], query string) bool {
	for _, col := range columns {
		val, ok := col.CellValue(row)
		if !ok || val == nil {
			continue
		}
		if types.ContainsFold(types.Stringify(val), query) {
			return true
		}
	}
	return false
}

// ColumnEquals builds a predicate that tests one column's stringified
// value for case-insensitive equality. Rows without a value for the
// column never match.
func ColumnEquals[R any](col schema.Column[R], target string) PredicateFunc[R] {
	return func(row R) bool {
		val, ok := col.CellValue(row)
		if !ok || val == nil {
			return false
		}
		return types.EqualFold(val, target)
	}
}
