package sqlite

import "time"

// TaskRecord is the row shape of the tasks table.
type TaskRecord struct {
	ID          int64
	Title       string
	Description string
	IsCompleted bool
	Priority    int
	Category    string
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsArchived  bool
	HasReminder bool
	ReminderAt  *time.Time
}
