package domain

import (
	"strings"
	"time"
)

// Task is a single user-created to-do item.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID          int64
	Title       string
	Description string
	IsCompleted bool
	Priority    Priority
	Category    Category
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsArchived  bool
	HasReminder bool
	ReminderAt  *time.Time
}

// Draft holds the user-editable fields of a task before it is persisted.
type Draft struct {
	Title       string
	Description string
	Priority    Priority
	Category    Category
	DueAt       *time.Time
	HasReminder bool
	ReminderAt  *time.Time
}

// NewDraft returns a draft with the default priority and category.
func NewDraft(title string) Draft {
	return Draft{
		Title:    title,
		Priority: PriorityMedium,
		Category: CategoryPersonal,
	}
}

// Normalize trims the text fields and drops a reminder that cannot fire:
// one without a due date, or a reminder time left over after the reminder was switched off.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	if d.DueAt == nil {
		d.HasReminder = false
	}
	if !d.HasReminder {
		d.ReminderAt = nil
	}
	return d
}

// IsOverdue reports whether the task has a due time strictly before now and is not completed.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueAt != nil && t.DueAt.Before(now) && !t.IsCompleted
}

// IsDueToday reports whether the due time falls on the same local calendar day as now.
func (t Task) IsDueToday(now time.Time) bool {
	if t.DueAt == nil {
		return false
	}
	return SameDay(*t.DueAt, now)
}

// ReminderTime returns when the reminder for this task should fire, or nil when it has none.
// A reminder without an explicit time fires at the due time.
func (t Task) ReminderTime() *time.Time {
	if !t.HasReminder || t.DueAt == nil {
		return nil
	}
	if t.ReminderAt != nil {
		return t.ReminderAt
	}
	return t.DueAt
}

// ApplyDraft copies the editable fields of d onto the task.
func (t *Task) ApplyDraft(d Draft) {
	t.Title = d.Title
	t.Description = d.Description
	t.Priority = d.Priority
	t.Category = d.Category
	t.DueAt = d.DueAt
	t.HasReminder = d.HasReminder
	t.ReminderAt = d.ReminderAt
}

// Draft returns the editable fields of the task.
func (t Task) Draft() Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Category:    t.Category,
		DueAt:       t.DueAt,
		HasReminder: t.HasReminder,
		ReminderAt:  t.ReminderAt,
	}
}

func (t Task) String() string {
	return t.Title
}

// SameDay reports whether a and b share a calendar date in the local time zone.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(time.Local).Date()
	by, bm, bd := b.In(time.Local).Date()
	return ay == by && am == bm && ad == bd
}

// DayBounds returns the start of the local day containing t and the start of the next day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}
