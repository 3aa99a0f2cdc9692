package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"todo-engine/internal/domain"
	"todo-engine/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local)

// testClock is a settable clock shared by the services under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testNow}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupRepo(t *testing.T) sqlite.Repository {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupTaskService(t *testing.T) (TaskService, sqlite.Repository, *testClock) {
	repo := setupRepo(t)
	clock := newTestClock()
	return NewTaskService(repo, WithClock(clock.Now)), repo, clock
}

func ptr(t time.Time) *time.Time {
	return &t
}

func draft(title string, mutate ...func(d *domain.Draft)) domain.Draft {
	d := domain.NewDraft(title)
	for _, m := range mutate {
		m(&d)
	}
	return d
}

func mustAdd(t *testing.T, svc TaskService, d domain.Draft) *domain.Task {
	t.Helper()
	task, err := svc.AddTask(context.Background(), d)
	require.NoError(t, err)
	return task
}

func taskTitles(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}
