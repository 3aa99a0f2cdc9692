package scheduler

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"todo-engine/internal/config"
	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
	"todo-engine/internal/logging"
)

const (
	KeyOverdueCheck = "overdue_check"
	KeyDailySummary = "daily_summary"
	KeyAutoArchive  = "auto_archive"

	reminderKeyPrefix = "reminder_"

	dailyPeriod = 24 * time.Hour
)

// ReminderKey is the job key of the reminder for task id.
func ReminderKey(id int64) string {
	return reminderKeyPrefix + strconv.FormatInt(id, 10)
}

// ParseReminderKey extracts the task id from a reminder job key.
func ParseReminderKey(key string) (int64, bool) {
	if !strings.HasPrefix(key, reminderKeyPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(key, reminderKeyPrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Runner performs the work behind each scheduled purpose.
type Runner interface {
	RemindTask(ctx context.Context, taskID int64) error
	SweepOverdue(ctx context.Context) error
	SendDailySummary(ctx context.Context) error
	ArchiveStale(ctx context.Context) error
}

// Planner turns tasks and settings into registry jobs.
type Planner struct {
	registry *Registry
	runner   Runner
	cfg      config.SchedulerConfig
	now      func() time.Time
	logger   *zap.Logger

	mu    sync.Mutex
	fired map[int64]time.Time // reminder time last delivered per task
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithClock replaces time.Now when computing delays.
func WithClock(now func() time.Time) PlannerOption {
	return func(p *Planner) { p.now = now }
}

func WithPlannerLogger(logger *zap.Logger) PlannerOption {
	return func(p *Planner) { p.logger = logging.OrNop(logger) }
}

func NewPlanner(registry *Registry, runner Runner, cfg config.SchedulerConfig, opts ...PlannerOption) *Planner {
	p := &Planner{
		registry: registry,
		runner:   runner,
		cfg:      cfg,
		now:      time.Now,
		logger:   zap.NewNop(),
		fired:    make(map[int64]time.Time),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("planner")
	return p
}

// ScheduleTaskReminder arms the one-shot reminder for task, replacing any earlier one.
// It reports false without error when the task has nothing to remind about
// or this reminder time was already delivered.
func (p *Planner) ScheduleTaskReminder(task domain.Task) (bool, error) {
	at := task.ReminderTime()
	if !task.HasReminder || at == nil || task.IsCompleted {
		return false, nil
	}

	now := p.now()
	if at.Before(now) {
		p.logger.Debug("reminder time already passed", logging.TaskID(task.ID), zap.Time("reminder_at", *at))
		return false, nil
	}
	if p.delivered(task.ID, *at) {
		return false, nil
	}

	delay := at.Sub(now).Truncate(time.Minute)
	id, target := task.ID, *at
	return p.registry.Schedule(Job{
		Key:     ReminderKey(id),
		Policy:  PolicyReplace,
		Trigger: Once(now.Add(delay)),
		Run: func(ctx context.Context) error {
			p.markDelivered(id, target)
			return p.remind(ctx, id)
		},
	})
}

func (p *Planner) delivered(id int64, at time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	last, ok := p.fired[id]
	return ok && last.Equal(at)
}

func (p *Planner) markDelivered(id int64, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fired[id] = at
}

func (p *Planner) forget(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.fired, id)
}

// remind runs the reminder for id. A task that no longer exists is not a
// failure; its delivery record is dropped.
func (p *Planner) remind(ctx context.Context, id int64) error {
	err := p.runner.RemindTask(ctx, id)
	if errors.IsNotFound(err) {
		p.logger.Debug("reminder for deleted task dropped", logging.TaskID(id))
		p.forget(id)
		return nil
	}
	return err
}

// CancelTaskReminder disarms the reminder and forgets its delivery record.
func (p *Planner) CancelTaskReminder(taskID int64) bool {
	p.forget(taskID)
	return p.registry.Cancel(ReminderKey(taskID))
}

func (p *Planner) deliveredCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.fired)
}

// ScheduleOverdueCheck arms the periodic overdue sweep unless it is already armed.
func (p *Planner) ScheduleOverdueCheck() (bool, error) {
	every := p.cfg.OverdueInterval
	return p.registry.Schedule(Job{
		Key:                   KeyOverdueCheck,
		Policy:                PolicyKeep,
		Trigger:               Periodic(p.now().Add(every), every),
		RequiresBatteryNotLow: true,
		Run:                   p.runner.SweepOverdue,
	})
}

// ScheduleDailySummary arms the summary at the next hour:minute and every day after.
func (p *Planner) ScheduleDailySummary(hour, minute int) (bool, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return false, errors.NewInvalidInputError("summary_time", strconv.Itoa(hour)+":"+strconv.Itoa(minute), "must be a valid time of day")
	}
	return p.registry.Schedule(Job{
		Key:     KeyDailySummary,
		Policy:  PolicyReplace,
		Trigger: Periodic(NextDailyRun(p.now(), hour, minute), dailyPeriod),
		Run:     p.runner.SendDailySummary,
	})
}

func (p *Planner) CancelDailySummary() bool {
	return p.registry.Cancel(KeyDailySummary)
}

func (p *Planner) ScheduleAutoArchive() (bool, error) {
	every := p.cfg.AutoArchiveInterval
	return p.registry.Schedule(Job{
		Key:                   KeyAutoArchive,
		Policy:                PolicyKeep,
		Trigger:               Periodic(p.now().Add(every), every),
		RequiresBatteryNotLow: true,
		Run:                   p.runner.ArchiveStale,
	})
}

func (p *Planner) CancelAutoArchive() bool {
	return p.registry.Cancel(KeyAutoArchive)
}

// CancelAll removes every job, reminders included.
func (p *Planner) CancelAll() {
	p.registry.CancelAll()
}

// Apply arms or disarms the periodic jobs to match settings.
func (p *Planner) Apply(settings domain.Settings) error {
	if !settings.NotificationsEnabled {
		p.CancelAll()
		return nil
	}

	if _, err := p.ScheduleOverdueCheck(); err != nil {
		return err
	}

	if settings.DailySummaryEnabled {
		if _, err := p.ScheduleDailySummary(settings.DailySummaryHour, settings.DailySummaryMinute); err != nil {
			return err
		}
	} else {
		p.CancelDailySummary()
	}

	if settings.AutoArchiveEnabled {
		if _, err := p.ScheduleAutoArchive(); err != nil {
			return err
		}
	} else {
		p.CancelAutoArchive()
	}
	return nil
}

// RunNow executes a periodic job immediately, outside its schedule.
func (p *Planner) RunNow(ctx context.Context, key string) (Result, error) {
	job := Job{Key: key}
	switch key {
	case KeyOverdueCheck:
		job.Run, job.RequiresBatteryNotLow = p.runner.SweepOverdue, true
	case KeyDailySummary:
		job.Run = p.runner.SendDailySummary
	case KeyAutoArchive:
		job.Run, job.RequiresBatteryNotLow = p.runner.ArchiveStale, true
	default:
		id, ok := ParseReminderKey(key)
		if !ok {
			return ResultFailure, errors.NewInvalidInputError("job", key, "unknown job")
		}
		job.Run = func(ctx context.Context) error { return p.remind(ctx, id) }
	}
	return p.registry.Execute(ctx, job), nil
}

// Scheduled lists the keys of armed jobs.
func (p *Planner) Scheduled() []string {
	return p.registry.Keys()
}

// NextDailyRun returns the next hour:minute on the local clock strictly after now.
func NextDailyRun(now time.Time, hour, minute int) time.Time {
	local := now.In(time.Local)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, time.Local)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
