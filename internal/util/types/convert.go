package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Stringify converts a cell value to its display string.
// nil becomes the empty string so missing values never render as "<nil>"
// and never match a search.
func Stringify(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		// Whole floats print as integers (common when loaded from JSON)
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NormalizeToFloat converts the numeric types that show up in JSON-loaded
// rows to float64 for comparison.
// Returns the float64 value and true if successful, 0 and false otherwise.
func NormalizeToFloat(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Compare orders two cell values for sorting.
// Numbers compare numerically; everything else falls back to a
// case-insensitive comparison of the stringified values. nil sorts first.
func Compare(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if fa, ok := NormalizeToFloat(a); ok {
		if fb, ok := NormalizeToFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}

	sa := strings.ToLower(Stringify(a))
	sb := strings.ToLower(Stringify(b))
	return strings.Compare(sa, sb)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// EqualFold reports whether two cell values stringify to the same text,
// ignoring case. Used by per-column equality filters.
func EqualFold(val interface{}, target string) bool {
	return strings.EqualFold(Stringify(val), target)
}
