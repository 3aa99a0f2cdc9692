package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows is the cursor part of *sql.Rows.
type Rows interface {
	Scanner
	Next() bool
	Err() error
}

const taskColumns = `id, title, description, is_completed, priority, category, due_at,
	created_at, updated_at, is_archived, has_reminder, reminder_at`

// ScanTask reads one row selected with taskColumns.
func ScanTask(scanner Scanner) (*TaskRecord, error) {
	var (
		task                 TaskRecord
		dueAt, reminderAt    sql.NullString
		createdAt, updatedAt string
	)
	err := scanner.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.IsCompleted,
		&task.Priority,
		&task.Category,
		&dueAt,
		&createdAt,
		&updatedAt,
		&task.IsArchived,
		&task.HasReminder,
		&reminderAt,
	)
	if err != nil {
		return nil, err
	}

	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if task.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}
	if task.DueAt, err = parseNullTime(dueAt); err != nil {
		return nil, fmt.Errorf("due_at: %w", err)
	}
	if task.ReminderAt, err = parseNullTime(reminderAt); err != nil {
		return nil, fmt.Errorf("reminder_at: %w", err)
	}

	return &task, nil
}

// ScanTasks drains rows. An empty result is a nil slice.
func ScanTasks(rows Rows) ([]*TaskRecord, error) {
	var out []*TaskRecord
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
