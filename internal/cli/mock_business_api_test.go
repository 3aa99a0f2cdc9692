package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"todo-engine/internal/api"
	"todo-engine/internal/config"
	"todo-engine/internal/domain"
	"todo-engine/internal/scheduler"
	"todo-engine/internal/services"
)

// MockBusinessAPI is a mock implementation of api.BusinessAPI for testing
type MockBusinessAPI struct {
	mock.Mock
}

func (m *MockBusinessAPI) task(args mock.Arguments) (*domain.Task, error) {
	if t := args.Get(0); t != nil {
		return t.(*domain.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBusinessAPI) AddTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	return m.task(m.Called(ctx, draft))
}

func (m *MockBusinessAPI) EditTask(ctx context.Context, id int64, draft domain.Draft) (*domain.Task, error) {
	return m.task(m.Called(ctx, id, draft))
}

func (m *MockBusinessAPI) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *MockBusinessAPI) ArchiveTask(ctx context.Context, id int64) (*domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *MockBusinessAPI) UnarchiveTask(ctx context.Context, id int64) (*domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *MockBusinessAPI) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBusinessAPI) ArchiveCompleted(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBusinessAPI) ClearArchived(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBusinessAPI) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return m.task(m.Called(ctx, id))
}

func (m *MockBusinessAPI) ListTasks(ctx context.Context, opts api.ListOptions) ([]domain.Task, error) {
	args := m.Called(ctx, opts)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *MockBusinessAPI) SearchTasks(ctx context.Context, text string) ([]domain.Task, error) {
	args := m.Called(ctx, text)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *MockBusinessAPI) GetStatistics(ctx context.Context) (domain.Statistics, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Statistics), args.Error(1)
}

func (m *MockBusinessAPI) GetWidget(ctx context.Context, limit int) (*api.WidgetSnapshot, error) {
	args := m.Called(ctx, limit)
	snapshot, _ := args.Get(0).(*api.WidgetSnapshot)
	return snapshot, args.Error(1)
}

func (m *MockBusinessAPI) WatchTasks(ctx context.Context, filter domain.Filter, search string) *services.TaskFeed {
	return m.Called(ctx, filter, search).Get(0).(*services.TaskFeed)
}

func (m *MockBusinessAPI) GetSettings(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockBusinessAPI) UpdateSetting(ctx context.Context, key, value string) (domain.Settings, error) {
	args := m.Called(ctx, key, value)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockBusinessAPI) CompleteFirstLaunch(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockBusinessAPI) ArmFromSettings(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBusinessAPI) SyncReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBusinessAPI) RunJob(ctx context.Context, key string) (scheduler.Result, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(scheduler.Result), args.Error(1)
}

func (m *MockBusinessAPI) ScheduledJobs() []string {
	jobs, _ := m.Called().Get(0).([]string)
	return jobs
}

// mockScheduler records Start and Stop calls.
type mockScheduler struct {
	mock.Mock
}

func (m *mockScheduler) Start() {
	m.Called()
}

func (m *mockScheduler) Stop(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// fixedNow is the clock used by CLI tests.
var fixedNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local)

// setupTestApp builds an App around a mock API, writing to a buffer and reading
// confirmation answers from input.
func setupTestApp(t *testing.T, input string) (*App, *MockBusinessAPI, *bytes.Buffer) {
	t.Helper()

	originalTimeNow := timeNow
	timeNow = func() time.Time { return fixedNow }
	t.Cleanup(func() { timeNow = originalTimeNow })

	cfg := config.NewConfig()
	cfg.Display.NoColor = true

	mockAPI := &MockBusinessAPI{}
	out := &bytes.Buffer{}
	app := NewApp(mockAPI,
		WithConfig(cfg),
		WithOutput(out),
		WithInput(strings.NewReader(input)),
	)
	return app, mockAPI, out
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func newTask(id int64, title string) *domain.Task {
	return &domain.Task{
		ID:        id,
		Title:     title,
		Priority:  domain.PriorityMedium,
		Category:  domain.CategoryPersonal,
		CreatedAt: fixedNow.Add(-time.Hour),
		UpdatedAt: fixedNow.Add(-time.Hour),
	}
}
