package store

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

// QueryInterceptor is the query surface shared by a plain connection and a
// transaction, with debug logging on every statement.
type QueryInterceptor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryInterceptor struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func newQueryInterceptor(db *sql.DB) *queryInterceptor {
	return &queryInterceptor{
		db:     db,
		logger: zap.S().Named("store"),
	}
}

func (q *queryInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	q.logger.Debugw("query_row", "query", query, "args", args)
	return q.db.QueryRowContext(ctx, query, args...)
}

func (q *queryInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	q.logger.Debugw("query", "query", query, "args", args)
	return q.db.QueryContext(ctx, query, args...)
}

func (q *queryInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	q.logger.Debugw("exec", "query", query, "args", args)
	return q.db.ExecContext(ctx, query, args...)
}

type txInterceptor struct {
	tx     *sql.Tx
	logger *zap.SugaredLogger
}

func newTxInterceptor(tx *sql.Tx) *txInterceptor {
	return &txInterceptor{
		tx:     tx,
		logger: zap.S().Named("store.tx"),
	}
}

func (t *txInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	t.logger.Debugw("query_row", "query", query, "args", args)
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *txInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	t.logger.Debugw("query", "query", query, "args", args)
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *txInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t.logger.Debugw("exec", "query", query, "args", args)
	return t.tx.ExecContext(ctx, query, args...)
}
