package services

import (
	"context"
	"strings"
	"time"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
	"todo-engine/internal/live"
	"todo-engine/internal/repository/sqlite"
)

type queryServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.TaskMapper
	now    func() time.Time
}

// NewQueryService creates a new QueryService instance
func NewQueryService(repo sqlite.Repository, opts ...Option) QueryService {
	o := newOptions(opts)
	return &queryServiceImpl{
		repo:   repo,
		mapper: domain.NewTaskMapper(),
		now:    o.now,
	}
}

// ListTasks returns the tasks of a view in that view's order.
func (q *queryServiceImpl) ListTasks(ctx context.Context, filter domain.Filter) ([]domain.Task, error) {
	var (
		records []*sqlite.TaskRecord
		err     error
	)

	switch filter {
	case domain.FilterAll:
		records, err = q.repo.ListAll(ctx)
	case domain.FilterActive:
		records, err = q.repo.ListActive(ctx)
	case domain.FilterCompleted:
		records, err = q.repo.ListCompleted(ctx)
	case domain.FilterArchived:
		records, err = q.repo.ListArchived(ctx)
	case domain.FilterDueToday:
		start, end := domain.DayBounds(q.now())
		records, err = q.repo.ListDueBetween(ctx, start, end)
	case domain.FilterOverdue:
		records, err = q.repo.ListOverdue(ctx, q.now())
	default:
		return nil, errors.NewInvalidInputError("filter", filter, "unknown filter")
	}
	if err != nil {
		return nil, err
	}

	return q.mapper.FromDatabaseSlice(records), nil
}

// SearchTasks matches title or description. Callers fall back to ListTasks for blank queries.
func (q *queryServiceImpl) SearchTasks(ctx context.Context, query string) ([]domain.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewInvalidInputError("query", query, "search text cannot be blank")
	}

	records, err := q.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return q.mapper.FromDatabaseSlice(records), nil
}

func (q *queryServiceImpl) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Task, error) {
	records, err := q.repo.ListByCategory(ctx, string(category))
	if err != nil {
		return nil, err
	}
	return q.mapper.FromDatabaseSlice(records), nil
}

func (q *queryServiceImpl) ListByPriority(ctx context.Context, priority domain.Priority) ([]domain.Task, error) {
	records, err := q.repo.ListByPriority(ctx, int(priority))
	if err != nil {
		return nil, err
	}
	return q.mapper.FromDatabaseSlice(records), nil
}

func (q *queryServiceImpl) ListWithReminders(ctx context.Context) ([]domain.Task, error) {
	records, err := q.repo.ListWithReminders(ctx)
	if err != nil {
		return nil, err
	}
	return q.mapper.FromDatabaseSlice(records), nil
}

// WatchTasks keeps ListTasks(filter) current until ctx ends or the subscription is cancelled.
// Time-dependent views also refresh when a task falls due or the day ends.
func (q *queryServiceImpl) WatchTasks(ctx context.Context, filter domain.Filter) *live.Subscription[[]domain.Task] {
	return live.Watch(ctx, q.changes(filter), func(ctx context.Context) ([]domain.Task, error) {
		return q.ListTasks(ctx, filter)
	})
}

func (q *queryServiceImpl) changes(filter domain.Filter) live.Source {
	switch filter {
	case domain.FilterOverdue:
		return live.Timed(q.repo, q.now, q.nextDue)
	case domain.FilterDueToday:
		return live.Timed(q.repo, q.now, func(_ context.Context, now time.Time) (time.Time, bool) {
			_, midnight := domain.DayBounds(now)
			return midnight, true
		})
	}
	return q.repo
}

// nextDue is just past the earliest due time of an open task that is not
// overdue yet, when the overdue view gains that task.
func (q *queryServiceImpl) nextDue(ctx context.Context, now time.Time) (time.Time, bool) {
	records, err := q.repo.ListActive(ctx)
	if err != nil {
		return time.Time{}, false
	}
	var next *time.Time
	for _, r := range records {
		if r.DueAt == nil || r.DueAt.Before(now) {
			continue
		}
		if next == nil || r.DueAt.Before(*next) {
			next = r.DueAt
		}
	}
	if next == nil {
		return time.Time{}, false
	}
	return next.Add(time.Millisecond), true
}

func (q *queryServiceImpl) WatchSearch(ctx context.Context, query string) *live.Subscription[[]domain.Task] {
	return live.Watch(ctx, q.repo, func(ctx context.Context) ([]domain.Task, error) {
		return q.SearchTasks(ctx, query)
	})
}
