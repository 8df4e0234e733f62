package schema

import "fmt"

// ColumnKeyError reports an invalid column descriptor at registry
// construction time. Runtime registry operations never fail; bad keys
// there degrade to no-ops instead.
type ColumnKeyError struct {
	Key    string // offending key (may be empty)
	Reason string // human-readable explanation
}

func (e *ColumnKeyError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid column: %s", e.Reason)
	}
	return fmt.Sprintf("invalid column %q: %s", e.Key, e.Reason)
}
