package services

import (
	"context"
	"time"

	"todo-engine/internal/domain"
	"todo-engine/internal/live"
)

// TaskService handles the task lifecycle: create, edit, complete, archive and delete.
type TaskService interface {
	AddTask(ctx context.Context, draft domain.Draft) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	// UpdateTask replaces every editable field of an existing task.
	UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	EditTask(ctx context.Context, id int64, draft domain.Draft) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	ToggleCompletion(ctx context.Context, id int64) (*domain.Task, error)
	SetArchived(ctx context.Context, id int64, archived bool) (*domain.Task, error)

	ArchiveAllCompleted(ctx context.Context) (int64, error)
	DeleteAllArchived(ctx context.Context) (int64, error)
	// ArchiveStale archives completed tasks last updated more than retention ago.
	ArchiveStale(ctx context.Context, retention time.Duration) (int, error)
}

// QueryService maps views (filter, category, priority, search text) onto store queries.
type QueryService interface {
	ListTasks(ctx context.Context, filter domain.Filter) ([]domain.Task, error)
	SearchTasks(ctx context.Context, query string) ([]domain.Task, error)
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.Task, error)
	ListByPriority(ctx context.Context, priority domain.Priority) ([]domain.Task, error)
	ListWithReminders(ctx context.Context) ([]domain.Task, error)

	WatchTasks(ctx context.Context, filter domain.Filter) *live.Subscription[[]domain.Task]
	WatchSearch(ctx context.Context, query string) *live.Subscription[[]domain.Task]
}

// StatisticsService aggregates counts over non-archived tasks.
type StatisticsService interface {
	ComputeStatistics(ctx context.Context) (domain.Statistics, error)
	WatchStatistics(ctx context.Context) *live.Subscription[domain.Statistics]
}

// SettingsService reads and writes user preferences.
type SettingsService interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) error
	// Set parses and stores a single preference by key.
	Set(ctx context.Context, key, value string) (domain.Settings, error)
	DailySummaryTime(ctx context.Context) (hour, minute int, err error)
	MarkFirstLaunchDone(ctx context.Context) error
	RecordWidgetUpdate(ctx context.Context) error
}

// WidgetStats is the compact summary shown on the home-screen widget.
type WidgetStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	DueToday  int `json:"due_today"`
}

// WidgetService serves the widget. Store failures degrade to empty results.
type WidgetService interface {
	ActiveTasks(ctx context.Context, limit int) []domain.Task
	DueToday(ctx context.Context) []domain.Task
	Stats(ctx context.Context) WidgetStats
	Toggle(ctx context.Context, id int64) bool
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService       TaskService
	QueryService      QueryService
	StatisticsService StatisticsService
	SettingsService   SettingsService
	WidgetService     WidgetService
}
