package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"todo-engine/internal/api"
	"todo-engine/internal/config"
	"todo-engine/internal/domain"
	"todo-engine/internal/scheduler"
	"todo-engine/internal/services"
)

func TestSettingsCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("should show every preference", func(t *testing.T) {
		app, mockAPI, out := setupTestApp(t, "")
		mockAPI.On("GetSettings", ctx).Return(domain.DefaultSettings(), nil)

		require.NoError(t, app.registry.Execute(ctx, "settings", nil))
		assert.Contains(t, out.String(), "notifications_enabled   on")
		assert.Contains(t, out.String(), "daily_summary_time      9:00 AM")
	})

	t.Run("should set one key", func(t *testing.T) {
		app, mockAPI, out := setupTestApp(t, "")
		mockAPI.On("UpdateSetting", ctx, "notifications_enabled", "false").Return(domain.Settings{}, nil)

		require.NoError(t, app.registry.Execute(ctx, "settings", []string{"set", "Notifications_Enabled", "false"}))
		assert.Contains(t, out.String(), "notifications_enabled = false")
		mockAPI.AssertExpectations(t)
	})

	t.Run("should split the summary time into hour and minute", func(t *testing.T) {
		app, mockAPI, out := setupTestApp(t, "")
		settings := domain.DefaultSettings()
		settings.DailySummaryHour = 8
		settings.DailySummaryMinute = 30
		mockAPI.On("UpdateSetting", ctx, services.KeyDailySummaryHour, "8").Return(settings, nil)
		mockAPI.On("UpdateSetting", ctx, services.KeyDailySummaryMinute, "30").Return(settings, nil)

		require.NoError(t, app.registry.Execute(ctx, "settings", []string{"set", "daily_summary_time", "08:30"}))
		assert.Contains(t, out.String(), "Daily summary at 8:30 AM")
		mockAPI.AssertExpectations(t)
	})

	t.Run("should print usage for malformed input", func(t *testing.T) {
		app, _, _ := setupTestApp(t, "")
		err := app.registry.Execute(ctx, "settings", []string{"set", "dark_mode"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "settings set KEY VALUE")
	})
}

func TestStatsCommand(t *testing.T) {
	ctx := context.Background()
	stats := domain.Statistics{TotalTasks: 4, CompletedTasks: 1, ActiveTasks: 3, OverdueTasks: 2}

	t.Run("should render a summary box", func(t *testing.T) {
		app, mockAPI, out := setupTestApp(t, "")
		mockAPI.On("GetStatistics", ctx).Return(stats, nil)

		require.NoError(t, app.registry.Execute(ctx, "stats", nil))
		assert.Contains(t, out.String(), "Completed: 1 (25%)")
		assert.Contains(t, out.String(), "Overdue:   2")
	})

	t.Run("should print JSON", func(t *testing.T) {
		app, mockAPI, out := setupTestApp(t, "")
		mockAPI.On("GetStatistics", ctx).Return(stats, nil)

		require.NoError(t, app.registry.Execute(ctx, "stats", []string{"--json"}))

		var decoded domain.Statistics
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, stats, decoded)
	})
}

func TestWidgetCommand(t *testing.T) {
	ctx := context.Background()
	snapshot := &api.WidgetSnapshot{
		Stats:  services.WidgetStats{Total: 3, Completed: 1, DueToday: 1},
		Active: []domain.Task{*newTask(2, "Walk dog")},
	}

	t.Run("should use the default limit", func(t *testing.T) {
		app, mockAPI, out := setupTestApp(t, "")
		mockAPI.On("GetWidget", ctx, defaultWidgetLimit).Return(snapshot, nil)

		require.NoError(t, app.registry.Execute(ctx, "widget", nil))
		assert.Contains(t, out.String(), "1 of 3 done · 1 due today")
		assert.Contains(t, out.String(), "Walk dog")
	})

	t.Run("should print JSON with a custom limit", func(t *testing.T) {
		app, mockAPI, out := setupTestApp(t, "")
		mockAPI.On("GetWidget", ctx, 2).Return(snapshot, nil)

		require.NoError(t, app.registry.Execute(ctx, "widget", []string{"--json", "-n", "2"}))
		assert.Contains(t, out.String(), `"due_today": 1`)
	})
}

func TestSweepCommand(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name           string
		args           []string
		key            string
		result         scheduler.Result
		expectedOutput string
		wantErr        bool
	}{
		{name: "should run the overdue check", args: []string{"overdue"}, key: scheduler.KeyOverdueCheck, result: scheduler.ResultSuccess, expectedOutput: "overdue_check: success"},
		{name: "should run auto-archive", args: []string{"archive"}, key: scheduler.KeyAutoArchive, result: scheduler.ResultSkipped, expectedOutput: "auto_archive: skipped"},
		{name: "should run a single reminder", args: []string{"reminder", "7"}, key: "reminder_7", result: scheduler.ResultSuccess, expectedOutput: "reminder_7: success"},
		{name: "should fail when the job fails", args: []string{"summary"}, key: scheduler.KeyDailySummary, result: scheduler.ResultFailure, expectedOutput: "daily_summary: failure", wantErr: true},
		{name: "should reject an unknown job", args: []string{"vacuum"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mockAPI, out := setupTestApp(t, "")
			if tt.key != "" {
				mockAPI.On("RunJob", ctx, tt.key).Return(tt.result, nil)
			}

			err := app.registry.Execute(ctx, "sweep", tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out.String(), tt.expectedOutput)
			mockAPI.AssertExpectations(t)
		})
	}
}

func TestRunCommand(t *testing.T) {
	t.Run("should greet on first launch, arm jobs and stop when cancelled", func(t *testing.T) {
		app, mockAPI, out := setupTestApp(t, "")
		sched := &mockScheduler{}
		app.scheduler = sched

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		mockAPI.On("CompleteFirstLaunch", ctx).Return(true, nil)
		mockAPI.On("ArmFromSettings", ctx).Return(nil)
		mockAPI.On("ScheduledJobs").Return([]string{"overdue_check", "auto_archive"})
		sched.On("Start").Return()
		sched.On("Stop", mock.Anything).Return(nil)

		require.NoError(t, app.registry.Execute(ctx, "run", nil))

		assert.Contains(t, out.String(), "Welcome!")
		assert.Contains(t, out.String(), "Scheduler running with 2 job(s)")
		assert.Contains(t, out.String(), "Scheduler stopped.")
		mockAPI.AssertExpectations(t)
		sched.AssertExpectations(t)
	})

	t.Run("should need a scheduler", func(t *testing.T) {
		app, _, _ := setupTestApp(t, "")
		err := app.registry.Execute(context.Background(), "run", nil)
		assert.Error(t, err)
	})
}

// syncBuffer lets a test read output while a command is still writing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchCommand(t *testing.T) {
	repo, err := config.CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	container := services.NewServiceContainer(repo)
	_, err = container.TaskService.AddTask(context.Background(), domain.NewDraft("Feed the cat"))
	require.NoError(t, err)

	app, mockAPI, _ := setupTestApp(t, "")
	out := &syncBuffer{}
	app.out = out

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed := services.NewTaskFeed(ctx, container.QueryService, domain.FilterActive)
	mockAPI.On("WatchTasks", ctx, domain.FilterActive, "").Return(feed)

	done := make(chan error, 1)
	go func() {
		done <- app.registry.Execute(ctx, "watch", []string{"-f", "active"})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Feed the cat")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
	assert.Contains(t, out.String(), "== active ==")
}
