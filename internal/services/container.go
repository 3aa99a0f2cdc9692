package services

import "todo-engine/internal/repository/sqlite"

// NewServiceContainer wires every service over one repository with shared options.
func NewServiceContainer(repo sqlite.Repository, opts ...Option) *ServiceContainer {
	tasks := NewTaskService(repo, opts...)
	query := NewQueryService(repo, opts...)
	stats := NewStatisticsService(repo, opts...)
	return &ServiceContainer{
		TaskService:       tasks,
		QueryService:      query,
		StatisticsService: stats,
		SettingsService:   NewSettingsService(repo, opts...),
		WidgetService:     NewWidgetService(tasks, query, stats, opts...),
	}
}
