// Package jobs holds the work behind each scheduled purpose. Every run reads
// fresh state from the store and the preferences, so it can execute with no
// foreground session alive.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"todo-engine/internal/domain"
	"todo-engine/internal/logging"
	"todo-engine/internal/notify"
	"todo-engine/internal/services"
)

// DefaultRetention is how long a completed task stays visible before auto-archive.
const DefaultRetention = 7 * 24 * time.Hour

// Worker implements scheduler.Runner over the services.
type Worker struct {
	tasks     services.TaskService
	query     services.QueryService
	stats     services.StatisticsService
	settings  services.SettingsService
	presenter notify.Presenter
	retention time.Duration
	logger    *zap.Logger
}

// Option configures a Worker.
type Option func(*Worker)

// WithRetention overrides DefaultRetention.
func WithRetention(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.retention = d
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *Worker) { w.logger = logging.OrNop(logger) }
}

func NewWorker(container *services.ServiceContainer, presenter notify.Presenter, opts ...Option) *Worker {
	w := &Worker{
		tasks:     container.TaskService,
		query:     container.QueryService,
		stats:     container.StatisticsService,
		settings:  container.SettingsService,
		presenter: presenter,
		retention: DefaultRetention,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named("jobs")
	return w
}

// RemindTask shows the reminder for taskID if the task is open and still wants
// a reminder. A deleted task yields the store's NotFound error.
func (w *Worker) RemindTask(ctx context.Context, taskID int64) error {
	enabled, err := w.notificationsEnabled(ctx)
	if err != nil || !enabled {
		return err
	}

	task, err := w.tasks.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task.IsCompleted || !task.HasReminder {
		w.logger.Debug("reminder no longer applies", logging.TaskID(taskID))
		return nil
	}
	return w.presenter.ShowReminder(ctx, *task)
}

// SweepOverdue raises one combined notice for all overdue tasks.
func (w *Worker) SweepOverdue(ctx context.Context) error {
	enabled, err := w.notificationsEnabled(ctx)
	if err != nil || !enabled {
		return err
	}

	overdue, err := w.query.ListTasks(ctx, domain.FilterOverdue)
	if err != nil {
		return err
	}
	if len(overdue) == 0 {
		return nil
	}
	w.logger.Info("overdue tasks found", zap.Int("count", len(overdue)))
	return w.presenter.ShowOverdueSummary(ctx, overdue)
}

// SendDailySummary reports totals and the number of tasks due today.
func (w *Worker) SendDailySummary(ctx context.Context) error {
	enabled, err := w.notificationsEnabled(ctx)
	if err != nil || !enabled {
		return err
	}

	stats, err := w.stats.ComputeStatistics(ctx)
	if err != nil {
		return err
	}
	dueToday, err := w.query.ListTasks(ctx, domain.FilterDueToday)
	if err != nil {
		return err
	}
	return w.presenter.ShowDailySummary(ctx, stats.TotalTasks, stats.CompletedTasks, len(dueToday))
}

// ArchiveStale archives completed tasks untouched for longer than the retention window.
func (w *Worker) ArchiveStale(ctx context.Context) error {
	archived, err := w.tasks.ArchiveStale(ctx, w.retention)
	if err != nil {
		return err
	}
	w.logger.Info("stale tasks archived", zap.Int("count", archived))

	if archived > 0 {
		w.refreshWidget(ctx)
	}
	return nil
}

func (w *Worker) notificationsEnabled(ctx context.Context) (bool, error) {
	settings, err := w.settings.Get(ctx)
	if err != nil {
		return false, err
	}
	if !settings.NotificationsEnabled {
		w.logger.Debug("notifications disabled")
	}
	return settings.NotificationsEnabled, nil
}

func (w *Worker) refreshWidget(ctx context.Context) {
	settings, err := w.settings.Get(ctx)
	if err != nil || !settings.WidgetEnabled {
		return
	}
	if err := w.settings.RecordWidgetUpdate(ctx); err != nil {
		w.logger.Warn("failed to record widget update", zap.Error(err))
	}
}
