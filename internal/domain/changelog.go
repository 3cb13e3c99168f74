package domain

import "time"

// ChangeLogEntry is an immutable audit record of one mutation to one
// training instance. Entries are only ever appended; there is no update
// or delete path anywhere in the system.
type ChangeLogEntry struct {
	ID          int64
	TrainingID  int64
	AdminUserID int64
	ChangeType  ChangeType
	OldValue    map[string]any // nil for "added"
	NewValue    map[string]any
	Timestamp   time.Time
}
