package notify

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
)

type mockPresenter struct {
	mock.Mock
}

func (m *mockPresenter) ShowReminder(ctx context.Context, task domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockPresenter) ShowOverdueSummary(ctx context.Context, tasks []domain.Task) error {
	return m.Called(ctx, tasks).Error(0)
}

func (m *mockPresenter) ShowDailySummary(ctx context.Context, total, completed, dueToday int) error {
	return m.Called(ctx, total, completed, dueToday).Error(0)
}

func TestBestEffort(t *testing.T) {
	ctx := context.Background()
	task := domain.Task{ID: 3, Title: "Water plants"}

	t.Run("permission denied is swallowed", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		inner := new(mockPresenter)
		inner.On("ShowReminder", ctx, task).Return(errors.NewPermissionError("notify", "terminal"))

		err := BestEffort(inner, zap.New(core)).ShowReminder(ctx, task)

		assert.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("notification suppressed").Len())
		inner.AssertExpectations(t)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := stderrors.New("boom")
		inner := new(mockPresenter)
		inner.On("ShowDailySummary", ctx, 2, 1, 0).Return(boom)

		err := BestEffort(inner, nil).ShowDailySummary(ctx, 2, 1, 0)

		assert.ErrorIs(t, err, boom)
	})

	t.Run("success", func(t *testing.T) {
		inner := new(mockPresenter)
		inner.On("ShowOverdueSummary", ctx, []domain.Task{task}).Return(nil)

		assert.NoError(t, BestEffort(inner, nil).ShowOverdueSummary(ctx, []domain.Task{task}))
		inner.AssertExpectations(t)
	})
}

func TestLogPresenter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewLogPresenter(zap.New(core))
	ctx := context.Background()

	assert.NoError(t, p.ShowReminder(ctx, domain.Task{ID: 9, Title: "Stretch"}))
	assert.NoError(t, p.ShowOverdueSummary(ctx, nil))
	assert.NoError(t, p.ShowOverdueSummary(ctx, tasksTitled(2)))
	assert.NoError(t, p.ShowDailySummary(ctx, 3, 2, 1))

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, ReminderTitle, entries[0].Message)
		assert.Equal(t, int64(9), entries[0].ContextMap()["task_id"])
		assert.Equal(t, "You have 2 overdue tasks", entries[1].ContextMap()["text"])
		assert.Equal(t, "2 of 3 tasks completed • 1 due today", entries[2].ContextMap()["text"])
	}
}
