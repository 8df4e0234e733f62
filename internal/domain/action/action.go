package action

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter is an atomic counter for generating monotonic action
// sequence numbers. Used by the audit log which requires uint64 keys.
var seqCounter uint64

// Kind represents the type of bulk action being dispatched.
type Kind string

const (
	KindExport Kind = "EXPORT"
	KindDelete Kind = "DELETE"
)

// Action is the context for one bulk dispatch over the current
// selection. It exists for tracing: the engine threads it through
// events and the audit log but never inspects the outcome.
type Action struct {
	ID        string    // Unique action identifier (UUID)
	Seq       uint64    // Numeric sequence for audit log ordering
	Kind      Kind      // What was dispatched
	Active    bool      // Whether the dispatch is still in flight
	StartTime time.Time // When the dispatch began
	IDs       []string  // Stringified row identifiers handed to the callback
}

// New creates a new action context with a unique ID.
func New(kind Kind) *Action {
	return &Action{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		Kind:      kind,
		Active:    true,
		StartTime: time.Now(),
	}
}

// Close marks the action as no longer in flight.
func (a *Action) Close() {
	a.Active = false
}
