package services

import (
	"context"

	"todo-engine/internal/domain"

	"go.uber.org/zap"
)

type widgetServiceImpl struct {
	tasks  TaskService
	query  QueryService
	stats  StatisticsService
	logger *zap.Logger
}

// NewWidgetService creates a WidgetService over the other services.
func NewWidgetService(tasks TaskService, query QueryService, stats StatisticsService, opts ...Option) WidgetService {
	o := newOptions(opts)
	return &widgetServiceImpl{
		tasks:  tasks,
		query:  query,
		stats:  stats,
		logger: o.logger.Named("widget"),
	}
}

// ActiveTasks returns at most limit active tasks, or all of them when limit <= 0.
func (w *widgetServiceImpl) ActiveTasks(ctx context.Context, limit int) []domain.Task {
	tasks, err := w.query.ListTasks(ctx, domain.FilterActive)
	if err != nil {
		w.logger.Warn("failed to load active tasks", zap.Error(err))
		return []domain.Task{}
	}
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks
}

func (w *widgetServiceImpl) DueToday(ctx context.Context) []domain.Task {
	tasks, err := w.query.ListTasks(ctx, domain.FilterDueToday)
	if err != nil {
		w.logger.Warn("failed to load tasks due today", zap.Error(err))
		return []domain.Task{}
	}
	return tasks
}

func (w *widgetServiceImpl) Stats(ctx context.Context) WidgetStats {
	stats, err := w.stats.ComputeStatistics(ctx)
	if err != nil {
		w.logger.Warn("failed to compute statistics", zap.Error(err))
		return WidgetStats{}
	}
	return WidgetStats{
		Total:     stats.TotalTasks,
		Completed: stats.CompletedTasks,
		DueToday:  len(w.DueToday(ctx)),
	}
}

// Toggle flips completion and reports whether it succeeded.
func (w *widgetServiceImpl) Toggle(ctx context.Context, id int64) bool {
	if _, err := w.tasks.ToggleCompletion(ctx, id); err != nil {
		w.logger.Warn("failed to toggle task", zap.Int64("task_id", id), zap.Error(err))
		return false
	}
	return true
}
