package engine

import "time"

// EventType represents the state changes a grid goes through
type EventType string

const (
	EventRowsReplaced     EventType = "rows_replaced"
	EventQueryChanged     EventType = "query_changed"
	EventPageChanged      EventType = "page_changed"
	EventPageSizeChanged  EventType = "page_size_changed"
	EventColumnToggled    EventType = "column_toggled"
	EventSortChanged      EventType = "sort_changed"
	EventFilterChanged    EventType = "filter_changed"
	EventSelectionChanged EventType = "selection_changed"
	EventSelectionPruned  EventType = "selection_pruned"
	EventDispatchStart    EventType = "dispatch_start"
	EventDispatchEnd      EventType = "dispatch_end"
	EventStateRestored    EventType = "state_restored"
)

// Event represents one state change in the grid lifecycle
type Event struct {
	Type      EventType   // Type of event
	ActionID  string      // Bulk action ID for tracing (empty outside dispatches)
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Event-specific data (e.g., query, page, id counts)
}

// Observer interface for event subscribers
// Observers receive events after every grid state change
type Observer interface {
	OnEvent(event Event)
}
