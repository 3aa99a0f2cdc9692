package domain

import (
	"time"

	"todo-engine/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database record.
func (m *TaskMapper) ToDatabase(task Task) sqlite.TaskRecord {
	return sqlite.TaskRecord{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		Priority:    int(task.Priority),
		Category:    string(task.Category),
		DueAt:       copyTime(task.DueAt),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		IsArchived:  task.IsArchived,
		HasReminder: task.HasReminder,
		ReminderAt:  copyTime(task.ReminderAt),
	}
}

// FromDatabase converts a database record to a domain Task.
// Unknown priorities and categories fall back to MEDIUM and OTHER.
func (m *TaskMapper) FromDatabase(record sqlite.TaskRecord) Task {
	priority := Priority(record.Priority)
	if !priority.IsValid() {
		priority = PriorityMedium
	}
	category := Category(record.Category)
	if !category.IsValid() {
		category = CategoryOther
	}

	return Task{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		IsCompleted: record.IsCompleted,
		Priority:    priority,
		Category:    category,
		DueAt:       copyTime(record.DueAt),
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
		IsArchived:  record.IsArchived,
		HasReminder: record.HasReminder,
		ReminderAt:  copyTime(record.ReminderAt),
	}
}

// FromDatabaseSlice converts database records to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(records []*sqlite.TaskRecord) []Task {
	tasks := make([]Task, len(records))
	for i, record := range records {
		tasks[i] = m.FromDatabase(*record)
	}
	return tasks
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
