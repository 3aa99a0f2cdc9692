package api

import (
	"context"

	"todo-engine/internal/domain"
	"todo-engine/internal/scheduler"
	"todo-engine/internal/services"
)

// ListOptions selects a task view. Category, Priority and RemindersOnly take
// precedence over Filter, in that order.
type ListOptions struct {
	Filter        domain.Filter
	Category      *domain.Category
	Priority      *domain.Priority
	RemindersOnly bool
	Limit         int
}

// WidgetSnapshot is everything the home-screen widget shows.
type WidgetSnapshot struct {
	Stats    services.WidgetStats `json:"stats"`
	Active   []domain.Task        `json:"active"`
	DueToday []domain.Task        `json:"due_today"`
}

// BusinessAPI is the use-case facade over the services and the job planner.
// Mutations keep the task's reminder job in step with the stored task.
type BusinessAPI interface {
	// ========== Task Management Workflows ==========

	// AddTask creates a task and arms its reminder.
	AddTask(ctx context.Context, draft domain.Draft) (*domain.Task, error)

	// EditTask replaces the editable fields and re-arms or cancels the reminder.
	EditTask(ctx context.Context, id int64, draft domain.Draft) (*domain.Task, error)

	// ToggleTask flips completion. Completing cancels the reminder, reopening re-arms it.
	ToggleTask(ctx context.Context, id int64) (*domain.Task, error)

	ArchiveTask(ctx context.Context, id int64) (*domain.Task, error)
	UnarchiveTask(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// ArchiveCompleted archives every completed task.
	ArchiveCompleted(ctx context.Context) (int64, error)

	// ClearArchived permanently deletes every archived task.
	ClearArchived(ctx context.Context) (int64, error)

	// ========== Query Operations ==========

	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, opts ListOptions) ([]domain.Task, error)
	SearchTasks(ctx context.Context, text string) ([]domain.Task, error)
	GetStatistics(ctx context.Context) (domain.Statistics, error)
	GetWidget(ctx context.Context, limit int) (*WidgetSnapshot, error)

	// WatchTasks returns a live feed for the filter and search text. Close it when done.
	WatchTasks(ctx context.Context, filter domain.Filter, search string) *services.TaskFeed

	// ========== Preferences ==========

	GetSettings(ctx context.Context) (domain.Settings, error)

	// UpdateSetting stores one preference and arms or disarms the affected jobs.
	UpdateSetting(ctx context.Context, key, value string) (domain.Settings, error)

	// CompleteFirstLaunch reports whether this is the first launch and records that it happened.
	CompleteFirstLaunch(ctx context.Context) (bool, error)

	// ========== Scheduling ==========

	// ArmFromSettings applies the stored preferences to the periodic jobs and
	// re-arms reminders for every task that still needs one.
	ArmFromSettings(ctx context.Context) error

	// SyncReminders schedules reminders found in the store and cancels stale ones.
	// It returns the number of armed reminders.
	SyncReminders(ctx context.Context) (int, error)

	// RunJob executes a job immediately by key.
	RunJob(ctx context.Context, key string) (scheduler.Result, error)

	// ScheduledJobs lists the keys of armed jobs.
	ScheduledJobs() []string
}
