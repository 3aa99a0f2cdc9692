package services

import (
	"context"
	"time"

	"todo-engine/internal/domain"
	"todo-engine/internal/live"
	"todo-engine/internal/repository/sqlite"
)

type statisticsServiceImpl struct {
	repo sqlite.Repository
	now  func() time.Time
}

// NewStatisticsService creates a new StatisticsService instance
func NewStatisticsService(repo sqlite.Repository, opts ...Option) StatisticsService {
	o := newOptions(opts)
	return &statisticsServiceImpl{repo: repo, now: o.now}
}

// ComputeStatistics counts non-archived tasks. Archived tasks are never included.
func (s *statisticsServiceImpl) ComputeStatistics(ctx context.Context) (domain.Statistics, error) {
	var stats domain.Statistics
	var err error

	if stats.TotalTasks, err = s.repo.CountTotal(ctx); err != nil {
		return domain.Statistics{}, err
	}
	if stats.CompletedTasks, err = s.repo.CountCompleted(ctx); err != nil {
		return domain.Statistics{}, err
	}
	if stats.ActiveTasks, err = s.repo.CountActive(ctx); err != nil {
		return domain.Statistics{}, err
	}
	if stats.OverdueTasks, err = s.repo.CountOverdue(ctx, s.now()); err != nil {
		return domain.Statistics{}, err
	}

	return stats, nil
}

func (s *statisticsServiceImpl) WatchStatistics(ctx context.Context) *live.Subscription[domain.Statistics] {
	return live.Watch(ctx, s.repo, s.ComputeStatistics)
}
