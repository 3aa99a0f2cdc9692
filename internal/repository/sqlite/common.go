package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strconv"

	"todo-engine/internal/errors"
)

// querier is the subset of *sql.DB and *sql.Tx the helpers below need.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func storeErr(operation string, err error) error {
	return errors.NewStoreError(operation, err)
}

// notFoundOnNoRows maps sql.ErrNoRows to NotFound and returns other errors unchanged.
func notFoundOnNoRows(err error, entity string, id string) error {
	if !stderrors.Is(err, sql.ErrNoRows) {
		return err
	}
	return errors.NewNotFoundError(entity, id)
}

// requireAffected fails with NotFound when the statement matched no row.
func requireAffected(result sql.Result, entity string, id string) error {
	n, err := result.RowsAffected()
	switch {
	case err != nil:
		return storeErr("rows affected", err)
	case n == 0:
		return errors.NewNotFoundError(entity, id)
	}
	return nil
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func insertReturningID(ctx context.Context, q querier, query string, args ...interface{}) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, storeErr("insert", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, storeErr("last insert id", err)
	}
	return id, nil
}

// execOne runs a statement that targets a single row identified by id.
func execOne(ctx context.Context, q querier, entity string, id int64, query string, args ...interface{}) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return storeErr("update "+entity, err)
	}
	return requireAffected(result, entity, idString(id))
}

// execCount runs a set-based statement. Matching nothing is not an error.
func execCount(ctx context.Context, q querier, query string, args ...interface{}) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, storeErr("exec", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, storeErr("rows affected", err)
	}
	return n, nil
}

func queryOne[T any](ctx context.Context, q querier, entity string, id int64, scan func(Scanner) (*T, error), query string, args ...interface{}) (*T, error) {
	v, err := scan(q.QueryRowContext(ctx, query, args...))
	if err == nil {
		return v, nil
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(entity, idString(id))
	}
	return nil, storeErr("read "+entity, err)
}

func queryAll[T any](ctx context.Context, q querier, scan func(Rows) ([]*T, error), query string, args ...interface{}) ([]*T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("query", err)
	}
	defer rows.Close()

	out, err := scan(rows)
	if err != nil {
		return nil, storeErr("scan rows", err)
	}
	return out, nil
}

func queryInt(ctx context.Context, q querier, query string, args ...interface{}) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, storeErr("count", err)
	}
	return n, nil
}
