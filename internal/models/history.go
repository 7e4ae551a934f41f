package models

import "time"

// HistoryAction tags what kind of write produced a history entry.
type HistoryAction string

const (
	ActionCreated       HistoryAction = "created"
	ActionUpdated       HistoryAction = "updated"
	ActionStatusChanged HistoryAction = "status_changed"
	ActionAssigned      HistoryAction = "assigned"
)

// TaskHistoryEntry is one row of the append-only audit trail. Entries
// are never updated; they are deleted only when the parent task is.
// OldValue and NewValue carry opaque serialized payloads.
type TaskHistoryEntry struct {
	ID          string        `json:"id" db:"id"`
	TaskID      string        `json:"task_id" db:"task_id"`
	Action      HistoryAction `json:"action" db:"action"`
	PerformedBy *string       `json:"performed_by" db:"performed_by"`
	Timestamp   time.Time     `json:"timestamp" db:"timestamp"`
	OldValue    *string       `json:"old_value" db:"old_value"`
	NewValue    *string       `json:"new_value" db:"new_value"`
}
