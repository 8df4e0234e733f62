package audit

import "time"

// ===========================================================================
// AUDIT TRAIL FILE FORMAT
// ===========================================================================
//
// Audit File Structure:
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ Entry 1: one JSON object, terminated by '\n'                            │
// ├─────────────────────────────────────────────────────────────────────────┤
// │ Entry 2: one JSON object, terminated by '\n'                            │
// ├─────────────────────────────────────────────────────────────────────────┤
// │ ...                                                                     │
// └─────────────────────────────────────────────────────────────────────────┘
//
// The file is append-only JSON Lines: no file header, no binary framing.
// Every append is fsynced before it returns; there is no buffered mode.
// Sequence numbers are assigned by the writer and strictly increase within
// one file. The reader checks them to catch truncated or hand-edited files.
//
// ===========================================================================

// MaxEntrySize is the maximum allowed size for a single serialized entry
// including its newline (1MB). This bounds allocation when reading back
// files with corrupted or hand-edited lines.
const MaxEntrySize = 1 * 1024 * 1024

// Entry is one line of the audit trail: a single dispatched bulk action
// and the row ids it covered.
type Entry struct {
	Seq       uint64    `json:"seq"`       // Strictly increasing within one file
	ActionID  string    `json:"action_id"` // Correlates with lifecycle events and logs
	Kind      string    `json:"kind"`      // EXPORT or DELETE
	Timestamp time.Time `json:"timestamp"` // When the action completed
	Count     int       `json:"count"`     // Number of ids in the action
	IDs       []string  `json:"ids"`       // Row ids the action covered
}
