package audit

import (
	"log/slog"

	"github.com/leengari/mini-datagrid/internal/engine"
)

// Recorder bridges grid lifecycle events into the audit trail. Attach
// it with AddObserver: it appends one entry per completed bulk dispatch
// and ignores every other event type. Append failures are logged, not
// propagated; the dispatch itself has already happened.
type Recorder struct {
	log    *Log
	logger *slog.Logger
}

// NewRecorder creates a Recorder writing to the given audit log. A nil
// logger falls back to slog.Default.
func NewRecorder(log *Log, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{log: log, logger: logger}
}

// OnEvent implements engine.Observer.
func (r *Recorder) OnEvent(event engine.Event) {
	if event.Type != engine.EventDispatchEnd {
		return
	}

	data, ok := event.Data.(map[string]interface{})
	if !ok {
		return
	}
	kind, _ := data["kind"].(string)
	ids, _ := data["ids"].([]string)

	seq, err := r.log.Append(Entry{
		ActionID:  event.ActionID,
		Kind:      kind,
		Timestamp: event.Timestamp,
		Count:     len(ids),
		IDs:       ids,
	})
	if err != nil {
		r.logger.Error("audit append failed", "action_id", event.ActionID, "error", err)
		return
	}

	r.logger.Debug("Bulk action recorded", "seq", seq, "kind", kind, "count", len(ids))
}
