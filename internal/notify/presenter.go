package notify

import (
	"context"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
	"todo-engine/internal/logging"

	"go.uber.org/zap"
)

// Presenter renders job results to the user. Implementations are fire-and-forget;
// an error only reports that this particular notice was not shown.
type Presenter interface {
	ShowReminder(ctx context.Context, task domain.Task) error
	ShowOverdueSummary(ctx context.Context, tasks []domain.Task) error
	ShowDailySummary(ctx context.Context, total, completed, dueToday int) error
}

// bestEffort drops permission failures so a denied channel never fails the caller.
type bestEffort struct {
	next   Presenter
	logger *zap.Logger
}

// BestEffort wraps p so PermissionDenied errors are logged and swallowed.
func BestEffort(p Presenter, logger *zap.Logger) Presenter {
	return &bestEffort{next: p, logger: logging.OrNop(logger)}
}

func (b *bestEffort) ShowReminder(ctx context.Context, task domain.Task) error {
	return b.filter("reminder", b.next.ShowReminder(ctx, task))
}

func (b *bestEffort) ShowOverdueSummary(ctx context.Context, tasks []domain.Task) error {
	return b.filter("overdue", b.next.ShowOverdueSummary(ctx, tasks))
}

func (b *bestEffort) ShowDailySummary(ctx context.Context, total, completed, dueToday int) error {
	return b.filter("daily_summary", b.next.ShowDailySummary(ctx, total, completed, dueToday))
}

func (b *bestEffort) filter(kind string, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsPermissionDenied(err) {
		b.logger.Debug("notification suppressed", zap.String("kind", kind), zap.Error(err))
		return nil
	}
	return err
}
