package services

import (
	"context"
	"fmt"
	"time"

	"todo-engine/internal/domain"
	"todo-engine/internal/errors"
	"todo-engine/internal/logging"
	"todo-engine/internal/repository/sqlite"
	"todo-engine/internal/validation"

	"go.uber.org/zap"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.TaskMapper
	taskValidator *validation.TaskValidator
	now           func() time.Time
	logger        *zap.Logger
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, opts ...Option) TaskService {
	o := newOptions(opts)
	return &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewTaskMapper(),
		taskValidator: o.validator,
		now:           o.now,
		logger:        o.logger,
	}
}

func (t *taskServiceImpl) validateID(id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task id", err)
	}
	return nil
}

// AddTask validates and persists a new task. Nothing is written when validation fails.
func (t *taskServiceImpl) AddTask(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	draft = draft.Normalize()
	if err := t.taskValidator.ValidateDraft(draft); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	now := t.now()
	task := domain.Task{CreatedAt: now, UpdatedAt: now}
	task.ApplyDraft(draft)

	record := t.mapper.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &record); err != nil {
		return nil, err
	}

	task.ID = record.ID
	t.logger.Debug("task created", logging.TaskID(task.ID))
	return &task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.validateID(id); err != nil {
		return nil, err
	}

	record, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task := t.mapper.FromDatabase(*record)
	return &task, nil
}

// UpdateTask refreshes updatedAt and replaces the stored row. created_at is never rewritten.
func (t *taskServiceImpl) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	task.ApplyDraft(task.Draft().Normalize())
	if err := t.taskValidator.ValidateTask(task); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	task.UpdatedAt = t.now()
	record := t.mapper.ToDatabase(task)
	if err := t.repo.UpdateTask(ctx, &record); err != nil {
		return nil, err
	}

	return t.GetTask(ctx, task.ID)
}

// EditTask applies draft to the stored task and saves it.
func (t *taskServiceImpl) EditTask(ctx context.Context, id int64, draft domain.Draft) (*domain.Task, error) {
	task, err := t.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.ApplyDraft(draft)
	return t.UpdateTask(ctx, *task)
}

// DeleteTask removes a task permanently. Deleting an absent task succeeds.
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := t.validateID(id); err != nil {
		return err
	}
	return t.repo.DeleteTask(ctx, id)
}

func (t *taskServiceImpl) ToggleCompletion(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := t.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	task.UpdatedAt = t.now()
	if err := t.repo.SetCompleted(ctx, id, task.IsCompleted, task.UpdatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

func (t *taskServiceImpl) SetArchived(ctx context.Context, id int64, archived bool) (*domain.Task, error) {
	task, err := t.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task.IsArchived = archived
	task.UpdatedAt = t.now()
	if err := t.repo.SetArchived(ctx, id, archived, task.UpdatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

func (t *taskServiceImpl) ArchiveAllCompleted(ctx context.Context) (int64, error) {
	return t.repo.ArchiveAllCompleted(ctx, t.now())
}

func (t *taskServiceImpl) DeleteAllArchived(ctx context.Context) (int64, error) {
	return t.repo.DeleteAllArchived(ctx)
}

func (t *taskServiceImpl) ArchiveStale(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, errors.NewInvalidInputError("retention", retention, "must be positive")
	}

	records, err := t.repo.ListCompleted(ctx)
	if err != nil {
		return 0, err
	}

	now := t.now()
	cutoff := now.Add(-retention)
	archived := 0
	for _, record := range records {
		if !record.UpdatedAt.Before(cutoff) {
			continue
		}
		if err := t.repo.SetArchived(ctx, record.ID, true, now); err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return archived, fmt.Errorf("archive task %d: %w", record.ID, err)
		}
		archived++
	}
	return archived, nil
}
