package runner

import (
	"context"
	"database/sql"

	sqlitegensql "github.com/syssam/sqlitegen/dialect/sql"
)

// Executor runs statements on one of the two backends.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	// Sync reports whether the executor is the prepared-statement backend.
	Sync() bool
}

// Context returns the executor of the context backend.
func Context(ex sqlitegensql.ExecQuerier) Executor {
	return contextExecutor{ex: ex}
}

// Sync returns the executor of the sync backend. The context passed to its
// methods is ignored.
func Sync(cache *sqlitegensql.StmtCache) Executor {
	return syncExecutor{cache: cache}
}

type contextExecutor struct {
	ex sqlitegensql.ExecQuerier
}

func (e contextExecutor) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return e.ex.ExecContext(ctx, query, args...)
}

func (e contextExecutor) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return e.ex.QueryContext(ctx, query, args...)
}

func (contextExecutor) Sync() bool { return false }

type syncExecutor struct {
	cache *sqlitegensql.StmtCache
}

func (e syncExecutor) Exec(_ context.Context, query string, args ...any) (sql.Result, error) {
	stmt, err := e.cache.Prepare(query)
	if err != nil {
		return nil, err
	}
	return stmt.Exec(args...)
}

func (e syncExecutor) Query(_ context.Context, query string, args ...any) (*sql.Rows, error) {
	stmt, err := e.cache.Prepare(query)
	if err != nil {
		return nil, err
	}
	return stmt.Query(args...)
}

func (syncExecutor) Sync() bool { return true }
