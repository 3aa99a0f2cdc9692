package notify

import (
	"context"

	"go.uber.org/zap"

	"todo-engine/internal/domain"
	"todo-engine/internal/logging"
)

// LogPresenter records notifications as structured log entries, for headless runs.
type LogPresenter struct {
	logger *zap.Logger
}

func NewLogPresenter(logger *zap.Logger) *LogPresenter {
	return &LogPresenter{logger: logging.OrNop(logger).Named("notify")}
}

func (p *LogPresenter) ShowReminder(ctx context.Context, task domain.Task) error {
	msg := ReminderMessage(task, "")
	fields := []zap.Field{logging.TaskID(task.ID), zap.String("text", msg.Text)}
	if task.DueAt != nil {
		fields = append(fields, zap.Time("due_at", *task.DueAt))
	}
	p.logger.Info(msg.Title, fields...)
	return nil
}

func (p *LogPresenter) ShowOverdueSummary(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	msg := OverdueMessage(tasks)
	p.logger.Info(msg.Title,
		zap.String("text", msg.Text),
		zap.Int("count", len(tasks)),
		zap.Strings("titles", msg.Lines),
	)
	return nil
}

func (p *LogPresenter) ShowDailySummary(ctx context.Context, total, completed, dueToday int) error {
	msg := DailySummaryMessage(total, completed, dueToday)
	p.logger.Info(msg.Title,
		zap.String("text", msg.Text),
		zap.Int("total", total),
		zap.Int("completed", completed),
		zap.Int("due_today", dueToday),
	)
	return nil
}
