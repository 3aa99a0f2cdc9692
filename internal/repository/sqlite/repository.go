package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"todo-engine/internal/errors"
	"todo-engine/internal/live"
	"todo-engine/internal/repository/sqlite/migrations"
)

// Repository is the task store consumed by the services.
type Repository interface {
	// Writes
	CreateTask(ctx context.Context, task *TaskRecord) error
	UpdateTask(ctx context.Context, task *TaskRecord) error
	DeleteTask(ctx context.Context, id int64) error
	SetCompleted(ctx context.Context, id int64, completed bool, updatedAt time.Time) error
	SetArchived(ctx context.Context, id int64, archived bool, updatedAt time.Time) error
	ArchiveAllCompleted(ctx context.Context, updatedAt time.Time) (int64, error)
	DeleteAllArchived(ctx context.Context) (int64, error)

	// Reads
	GetTask(ctx context.Context, id int64) (*TaskRecord, error)
	ListAll(ctx context.Context) ([]*TaskRecord, error)
	ListActive(ctx context.Context) ([]*TaskRecord, error)
	ListCompleted(ctx context.Context) ([]*TaskRecord, error)
	ListArchived(ctx context.Context) ([]*TaskRecord, error)
	ListByCategory(ctx context.Context, category string) ([]*TaskRecord, error)
	ListByPriority(ctx context.Context, priority int) ([]*TaskRecord, error)
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*TaskRecord, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*TaskRecord, error)
	ListWithReminders(ctx context.Context) ([]*TaskRecord, error)
	Search(ctx context.Context, text string) ([]*TaskRecord, error)

	// Aggregates over non-archived tasks
	CountTotal(ctx context.Context) (int, error)
	CountCompleted(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountOverdue(ctx context.Context, now time.Time) (int, error)

	// Preferences
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
	ListSettings(ctx context.Context) (map[string]string, error)

	// Subscribe signals after every committed task mutation.
	Subscribe() (<-chan struct{}, func())

	Close() error
}

// SQLiteRepository implements Repository on a single sqlite connection.
type SQLiteRepository struct {
	db      *sql.DB
	changes *live.Broadcaster
	now     func() time.Time
}

// Option customises a repository created by New.
type Option func(*options)

type options struct {
	busyTimeout time.Duration
	now         func() time.Time
}

// WithBusyTimeout sets how long a writer waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) { o.busyTimeout = d }
}

// WithClock overrides the clock used for settings timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New opens (or creates) the database at dbPath and applies pending migrations.
func New(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	o := options{busyTimeout: 5 * time.Second, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStoreError("open database", err)
	}

	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", o.busyTimeout.Milliseconds())); err != nil {
		db.Close()
		return nil, errors.NewStoreError("configure database", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStoreError("run migrations", err)
	}

	return &SQLiteRepository{
		db:      db,
		changes: live.NewBroadcaster(),
		now:     o.now,
	}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Subscribe() (<-chan struct{}, func()) {
	return r.changes.Subscribe()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, task *TaskRecord) error {
	query := `
	INSERT INTO tasks (title, description, is_completed, priority, category, due_at,
		created_at, updated_at, is_archived, has_reminder, reminder_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := insertReturningID(ctx, r.db, query,
		task.Title,
		task.Description,
		boolToInt(task.IsCompleted),
		task.Priority,
		task.Category,
		FormatTimePtrForDB(task.DueAt),
		FormatTimeForDB(task.CreatedAt),
		FormatTimeForDB(task.UpdatedAt),
		boolToInt(task.IsArchived),
		boolToInt(task.HasReminder),
		FormatTimePtrForDB(task.ReminderAt),
	)
	if err != nil {
		return err
	}

	task.ID = id
	r.changes.Notify()
	return nil
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return queryOne(ctx, r.db, "task", id, ScanTask, query, id)
}

// UpdateTask replaces every column of the row with the given id. created_at is preserved.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *TaskRecord) error {
	query := `
	UPDATE tasks
	SET title = ?, description = ?, is_completed = ?, priority = ?, category = ?, due_at = ?,
		updated_at = ?, is_archived = ?, has_reminder = ?, reminder_at = ?
	WHERE id = ?`

	err := execOne(ctx, r.db, "task", task.ID, query,
		task.Title,
		task.Description,
		boolToInt(task.IsCompleted),
		task.Priority,
		task.Category,
		FormatTimePtrForDB(task.DueAt),
		FormatTimeForDB(task.UpdatedAt),
		boolToInt(task.IsArchived),
		boolToInt(task.HasReminder),
		FormatTimePtrForDB(task.ReminderAt),
		task.ID,
	)
	if err != nil {
		return err
	}
	r.changes.Notify()
	return nil
}

// DeleteTask removes the row if present. Deleting an absent id is a no-op.
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	n, err := execCount(ctx, r.db, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n > 0 {
		r.changes.Notify()
	}
	return nil
}

func (r *SQLiteRepository) SetCompleted(ctx context.Context, id int64, completed bool, updatedAt time.Time) error {
	query := `UPDATE tasks SET is_completed = ?, updated_at = ? WHERE id = ?`
	err := execOne(ctx, r.db, "task", id, query,
		boolToInt(completed), FormatTimeForDB(updatedAt), id)
	if err != nil {
		return err
	}
	r.changes.Notify()
	return nil
}

func (r *SQLiteRepository) SetArchived(ctx context.Context, id int64, archived bool, updatedAt time.Time) error {
	query := `UPDATE tasks SET is_archived = ?, updated_at = ? WHERE id = ?`
	err := execOne(ctx, r.db, "task", id, query,
		boolToInt(archived), FormatTimeForDB(updatedAt), id)
	if err != nil {
		return err
	}
	r.changes.Notify()
	return nil
}

// ArchiveAllCompleted archives every completed, not yet archived task with one shared timestamp.
func (r *SQLiteRepository) ArchiveAllCompleted(ctx context.Context, updatedAt time.Time) (int64, error) {
	n, err := execCount(ctx, r.db,
		`UPDATE tasks SET is_archived = 1, updated_at = ? WHERE is_completed = 1 AND is_archived = 0`,
		FormatTimeForDB(updatedAt))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.changes.Notify()
	}
	return n, nil
}

func (r *SQLiteRepository) DeleteAllArchived(ctx context.Context) (int64, error) {
	n, err := execCount(ctx, r.db, `DELETE FROM tasks WHERE is_archived = 1`)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.changes.Notify()
	}
	return n, nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 0
	ORDER BY created_at DESC, id DESC`
	return queryAll(ctx, r.db, ScanTasks, query)
}

func (r *SQLiteRepository) ListActive(ctx context.Context) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 0 AND is_completed = 0
	ORDER BY priority DESC, due_at IS NULL, due_at ASC, id ASC`
	return queryAll(ctx, r.db, ScanTasks, query)
}

func (r *SQLiteRepository) ListCompleted(ctx context.Context) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 0 AND is_completed = 1
	ORDER BY updated_at DESC, id DESC`
	return queryAll(ctx, r.db, ScanTasks, query)
}

func (r *SQLiteRepository) ListArchived(ctx context.Context) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 1
	ORDER BY updated_at DESC, id DESC`
	return queryAll(ctx, r.db, ScanTasks, query)
}

func (r *SQLiteRepository) ListByCategory(ctx context.Context, category string) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 0 AND category = ?
	ORDER BY priority DESC, due_at IS NULL, due_at ASC, id ASC`
	return queryAll(ctx, r.db, ScanTasks, query, category)
}

func (r *SQLiteRepository) ListByPriority(ctx context.Context, priority int) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 0 AND priority = ?
	ORDER BY due_at IS NULL, due_at ASC, id ASC`
	return queryAll(ctx, r.db, ScanTasks, query, priority)
}

// ListDueBetween returns non-archived tasks due in [from, to), highest priority first.
func (r *SQLiteRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 0 AND due_at IS NOT NULL AND due_at >= ? AND due_at < ?
	ORDER BY priority DESC, due_at ASC, id ASC`
	return queryAll(ctx, r.db, ScanTasks, query, FormatTimeForDB(from), FormatTimeForDB(to))
}

// ListOverdue returns open, non-archived tasks due strictly before now, oldest due first.
func (r *SQLiteRepository) ListOverdue(ctx context.Context, now time.Time) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 0 AND is_completed = 0 AND due_at IS NOT NULL AND due_at < ?
	ORDER BY due_at ASC, id ASC`
	return queryAll(ctx, r.db, ScanTasks, query, FormatTimeForDB(now))
}

func (r *SQLiteRepository) ListWithReminders(ctx context.Context) ([]*TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 0 AND has_reminder = 1 AND COALESCE(reminder_at, due_at) IS NOT NULL
	ORDER BY COALESCE(reminder_at, due_at) ASC, id ASC`
	return queryAll(ctx, r.db, ScanTasks, query)
}

// Search matches text case-insensitively against title or description of
// non-archived tasks. Title matches rank first. Both sides are folded with
// Go's Unicode lowercasing so non-ASCII capitals match.
func (r *SQLiteRepository) Search(ctx context.Context, text string) ([]*TaskRecord, error) {
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	query := `SELECT ` + taskColumns + ` FROM tasks
	WHERE is_archived = 0
		AND (` + foldFunc + `(title) LIKE ? ESCAPE '\' OR ` + foldFunc + `(description) LIKE ? ESCAPE '\')
	ORDER BY CASE WHEN ` + foldFunc + `(title) LIKE ? ESCAPE '\' THEN 0 ELSE 1 END,
		priority DESC, due_at IS NULL, due_at ASC, id ASC`
	return queryAll(ctx, r.db, ScanTasks, query, pattern, pattern, pattern)
}

func (r *SQLiteRepository) CountTotal(ctx context.Context) (int, error) {
	return queryInt(ctx, r.db, `SELECT COUNT(*) FROM tasks WHERE is_archived = 0`)
}

func (r *SQLiteRepository) CountCompleted(ctx context.Context) (int, error) {
	return queryInt(ctx, r.db, `SELECT COUNT(*) FROM tasks WHERE is_archived = 0 AND is_completed = 1`)
}

func (r *SQLiteRepository) CountActive(ctx context.Context) (int, error) {
	return queryInt(ctx, r.db, `SELECT COUNT(*) FROM tasks WHERE is_archived = 0 AND is_completed = 0`)
}

func (r *SQLiteRepository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	return queryInt(ctx, r.db, `SELECT COUNT(*) FROM tasks
	WHERE is_archived = 0 AND is_completed = 0 AND due_at IS NOT NULL AND due_at < ?`, FormatTimeForDB(now))
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
