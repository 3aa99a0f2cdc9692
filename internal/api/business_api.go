package api

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
	"todo-engine/internal/logging"
	"todo-engine/internal/scheduler"
	"todo-engine/internal/services"
)

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	planner  *scheduler.Planner
	logger   *zap.Logger
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(container *services.ServiceContainer, planner *scheduler.Planner, logger *zap.Logger) BusinessAPI {
	return &businessAPIImpl{
		services: container,
		planner:  planner,
		logger:   logging.OrNop(logger).Named("api"),
	}
}

// ========== Task Management Workflows ==========

func (b *businessAPIImpl) AddTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	// 1. Create the task (validation happens in the service)
	task, err := b.services.TaskService.AddTask(ctx, draft)
	if err != nil {
		return nil, err
	}

	// 2. Arm its reminder
	if err := b.syncReminder(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (b *businessAPIImpl) EditTask(ctx context.Context, id int64, draft domain.Draft) (*domain.Task, error) {
	task, err := b.services.TaskService.EditTask(ctx, id, draft)
	if err != nil {
		return nil, err
	}
	if err := b.syncReminder(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (b *businessAPIImpl) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := b.services.TaskService.ToggleCompletion(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.syncReminder(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (b *businessAPIImpl) ArchiveTask(ctx context.Context, id int64) (*domain.Task, error) {
	return b.setArchived(ctx, id, true)
}

func (b *businessAPIImpl) UnarchiveTask(ctx context.Context, id int64) (*domain.Task, error) {
	return b.setArchived(ctx, id, false)
}

func (b *businessAPIImpl) setArchived(ctx context.Context, id int64, archived bool) (*domain.Task, error) {
	task, err := b.services.TaskService.SetArchived(ctx, id, archived)
	if err != nil {
		return nil, err
	}
	if err := b.syncReminder(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, id int64) error {
	// 1. Delete (a missing task is not an error)
	if err := b.services.TaskService.DeleteTask(ctx, id); err != nil {
		return err
	}

	// 2. Drop any pending reminder
	b.planner.CancelTaskReminder(id)
	return nil
}

func (b *businessAPIImpl) ArchiveCompleted(ctx context.Context) (int64, error) {
	return b.services.TaskService.ArchiveAllCompleted(ctx)
}

func (b *businessAPIImpl) ClearArchived(ctx context.Context) (int64, error) {
	return b.services.TaskService.DeleteAllArchived(ctx)
}

// syncReminder arms the reminder for task or cancels it when the task no longer needs one.
func (b *businessAPIImpl) syncReminder(ctx context.Context, task *domain.Task) error {
	settings, err := b.services.SettingsService.Get(ctx)
	if err != nil {
		return err
	}

	if settings.NotificationsEnabled && !task.IsArchived {
		armed, err := b.planner.ScheduleTaskReminder(*task)
		if err != nil {
			return err
		}
		if armed {
			b.logger.Debug("reminder armed", logging.TaskID(task.ID))
			return nil
		}
	}

	if b.planner.CancelTaskReminder(task.ID) {
		b.logger.Debug("reminder cancelled", logging.TaskID(task.ID))
	}
	return nil
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return b.services.TaskService.GetTask(ctx, id)
}

func (b *businessAPIImpl) ListTasks(ctx context.Context, opts ListOptions) ([]domain.Task, error) {
	if opts.Limit < 0 {
		return nil, errors.NewInvalidInputError("limit", opts.Limit, "cannot be negative")
	}

	var (
		tasks []domain.Task
		err   error
	)
	query := b.services.QueryService
	switch {
	case opts.Category != nil:
		tasks, err = query.ListByCategory(ctx, *opts.Category)
	case opts.Priority != nil:
		tasks, err = query.ListByPriority(ctx, *opts.Priority)
	case opts.RemindersOnly:
		tasks, err = query.ListWithReminders(ctx)
	default:
		tasks, err = query.ListTasks(ctx, opts.Filter)
	}
	if err != nil {
		return nil, err
	}

	if opts.Limit > 0 && len(tasks) > opts.Limit {
		tasks = tasks[:opts.Limit]
	}
	return tasks, nil
}

func (b *businessAPIImpl) SearchTasks(ctx context.Context, text string) ([]domain.Task, error) {
	return b.services.QueryService.SearchTasks(ctx, text)
}

func (b *businessAPIImpl) GetStatistics(ctx context.Context) (domain.Statistics, error) {
	return b.services.StatisticsService.ComputeStatistics(ctx)
}

func (b *businessAPIImpl) GetWidget(ctx context.Context, limit int) (*WidgetSnapshot, error) {
	widget := b.services.WidgetService
	snapshot := &WidgetSnapshot{
		Stats:    widget.Stats(ctx),
		Active:   widget.ActiveTasks(ctx, limit),
		DueToday: widget.DueToday(ctx),
	}

	if err := b.services.SettingsService.RecordWidgetUpdate(ctx); err != nil {
		b.logger.Warn("failed to record widget update", zap.Error(err))
	}
	return snapshot, nil
}

func (b *businessAPIImpl) WatchTasks(ctx context.Context, filter domain.Filter, search string) *services.TaskFeed {
	feed := services.NewTaskFeed(ctx, b.services.QueryService, filter)
	if strings.TrimSpace(search) != "" {
		feed.SetSearch(search)
	}
	return feed
}

// ========== Preferences ==========

func (b *businessAPIImpl) GetSettings(ctx context.Context) (domain.Settings, error) {
	return b.services.SettingsService.Get(ctx)
}

func (b *businessAPIImpl) UpdateSetting(ctx context.Context, key, value string) (domain.Settings, error) {
	key = strings.ToLower(strings.TrimSpace(key))

	// 1. Store the preference
	settings, err := b.services.SettingsService.Set(ctx, key, value)
	if err != nil {
		return domain.Settings{}, err
	}

	// 2. Bring the jobs in line with it
	if err := b.planner.Apply(settings); err != nil {
		return domain.Settings{}, err
	}
	if settings.NotificationsEnabled && key == services.KeyNotificationsEnabled {
		if _, err := b.SyncReminders(ctx); err != nil {
			return domain.Settings{}, err
		}
	}

	b.logger.Info("setting updated", zap.String("key", key), zap.String("value", value))
	return settings, nil
}

func (b *businessAPIImpl) CompleteFirstLaunch(ctx context.Context) (bool, error) {
	settings, err := b.services.SettingsService.Get(ctx)
	if err != nil {
		return false, err
	}
	if !settings.FirstLaunch {
		return false, nil
	}
	return true, b.services.SettingsService.MarkFirstLaunchDone(ctx)
}

// ========== Scheduling ==========

func (b *businessAPIImpl) ArmFromSettings(ctx context.Context) error {
	settings, err := b.services.SettingsService.Get(ctx)
	if err != nil {
		return err
	}
	if err := b.planner.Apply(settings); err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		return nil
	}
	_, err = b.SyncReminders(ctx)
	return err
}

func (b *businessAPIImpl) SyncReminders(ctx context.Context) (int, error) {
	// 1. Load every task that carries a reminder
	tasks, err := b.services.QueryService.ListWithReminders(ctx)
	if err != nil {
		return 0, err
	}

	// 2. Arm the ones still in the future
	wanted := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		armed, err := b.planner.ScheduleTaskReminder(task)
		if err != nil {
			return 0, err
		}
		if armed {
			wanted[scheduler.ReminderKey(task.ID)] = true
		}
	}

	// 3. Cancel reminders whose task changed or disappeared
	for _, key := range b.planner.Scheduled() {
		id, ok := scheduler.ParseReminderKey(key)
		if ok && !wanted[key] {
			b.planner.CancelTaskReminder(id)
		}
	}

	b.logger.Debug("reminders synced", zap.Int("armed", len(wanted)))
	return len(wanted), nil
}

func (b *businessAPIImpl) RunJob(ctx context.Context, key string) (scheduler.Result, error) {
	return b.planner.RunNow(ctx, key)
}

func (b *businessAPIImpl) ScheduledJobs() []string {
	return b.planner.Scheduled()
}
