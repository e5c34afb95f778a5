package runner

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/syssam/sqlitegen"
	"github.com/syssam/sqlitegen/compiler/gen"
	sqlitegensql "github.com/syssam/sqlitegen/dialect/sql"
)

// Record holds the values of a row keyed by column name.
type Record map[string]any

// Runner executes Get, Insert, Update and List operations.
type Runner struct {
	fatal  bool
	logger *slog.Logger
	stats  *sqlitegensql.Stats
}

// Option configures a Runner.
type Option func(*Runner)

// WithFatalAssertions makes invariant violations panic instead of being
// returned as errors.
func WithFatalAssertions() Option {
	return func(r *Runner) {
		r.fatal = true
	}
}

// WithLogger sets the logger receiving one debug record per statement.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStats records every statement in s, keyed by operation.
func WithStats(s *sqlitegensql.Stats) Option {
	return func(r *Runner) {
		r.stats = s
	}
}

// New returns a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the row whose key column equals key. A lookup by an int64
// primary key less than 1 returns a not-found error without a query.
func (r *Runner) Get(ctx context.Context, e Executor, op *gen.GetOp, key any) (Record, error) {
	t := op.Type
	if op.ShortCircuit {
		if n, ok := asInt64(key); ok && n < 1 {
			return nil, sqlitegen.NewNotFoundErrorWithKey(t.Table, key)
		}
	}
	done := r.begin(ctx, e, sqlitegensql.OpGet, op.Stmt.SQL)
	rows, err := e.Query(ctx, op.Stmt.SQL, key)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("sqlitegen: get %s: %w", t.Table, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("sqlitegen: get %s: %w", t.Table, err)
		}
		return nil, sqlitegen.NewNotFoundErrorWithKey(t.Table, key)
	}
	rec, err := scan(rows, t)
	if err != nil {
		return nil, fmt.Errorf("sqlitegen: get %s: %w", t.Table, err)
	}
	return rec, nil
}

// Insert inserts rec and returns its row id. With an int64 primary key
// greater than 0 the key is inserted and returned as is; otherwise the
// key column is left out and the assigned rowid is returned.
func (r *Runner) Insert(ctx context.Context, e Executor, op *gen.InsertOp, rec Record) (int64, error) {
	t := op.Type
	stmt := op.Full
	if op.WithoutPK != nil {
		pk, _ := asInt64(rec[t.PK.Name])
		if pk > 0 {
			done := r.begin(ctx, e, sqlitegensql.OpInsert, stmt.SQL)
			_, err := e.Exec(ctx, stmt.SQL, bind(rec, stmt.Args)...)
			done(err)
			if err != nil {
				return 0, fmt.Errorf("sqlitegen: insert %s: %w", t.Table, err)
			}
			return pk, nil
		}
		stmt = *op.WithoutPK
	}
	done := r.begin(ctx, e, sqlitegensql.OpInsert, stmt.SQL)
	res, err := e.Exec(ctx, stmt.SQL, bind(rec, stmt.Args)...)
	done(err)
	if err != nil {
		return 0, fmt.Errorf("sqlitegen: insert %s: %w", t.Table, err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlitegen: insert %s: %w", t.Table, err)
	}
	return rowID, nil
}

// Update writes the non-key columns of rec to the row with its key and
// reports whether a row was updated.
func (r *Runner) Update(ctx context.Context, e Executor, op *gen.UpdateOp, rec Record) (bool, error) {
	t := op.Type
	key := rec[op.Key.Name]
	if unset(op.KeyKind(), key) {
		if err := r.violation(sqlitegen.NewInvalidKeyError(t.Table, key)); err != nil {
			return false, err
		}
	}
	done := r.begin(ctx, e, sqlitegensql.OpUpdate, op.Stmt.SQL)
	res, err := e.Exec(ctx, op.Stmt.SQL, bind(rec, op.Stmt.Args)...)
	done(err)
	if err != nil {
		return false, fmt.Errorf("sqlitegen: update %s: %w", t.Table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlitegen: update %s: %w", t.Table, err)
	}
	if affected > 1 {
		if err := r.violation(sqlitegen.NewConsistencyError(t.Table, "update", affected)); err != nil {
			return false, err
		}
	}
	return affected == 1, nil
}

// List returns all rows of the table of t.
func (r *Runner) List(ctx context.Context, e Executor, t *gen.Type) ([]Record, error) {
	query := t.SelectSQL()
	done := r.begin(ctx, e, sqlitegensql.OpList, query)
	rows, err := e.Query(ctx, query)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("sqlitegen: list %s: %w", t.Table, err)
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scan(rows, t)
		if err != nil {
			return nil, fmt.Errorf("sqlitegen: list %s: %w", t.Table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitegen: list %s: %w", t.Table, err)
	}
	return out, nil
}

func (r *Runner) violation(err error) error {
	if r.fatal {
		panic(err)
	}
	return err
}

// begin logs a statement and starts recording it in the stats.
func (r *Runner) begin(ctx context.Context, e Executor, op sqlitegensql.Op, query string) func(error) {
	r.logger.DebugContext(ctx, "exec", "op", string(op), "sync", e.Sync(), "query", query)
	return r.stats.Track(ctx, op, query)
}

// bind returns the values of fields in rec, in order. Missing columns
// are bound as NULL.
func bind(rec Record, fields []*gen.Field) []any {
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = rec[f.Name]
	}
	return args
}

// scan reads the current row, whose columns are the fields of t.
func scan(rows *sql.Rows, t *gen.Type) (Record, error) {
	values := make([]any, len(t.Fields))
	dest := make([]any, len(t.Fields))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	rec := make(Record, len(t.Fields))
	for i, f := range t.Fields {
		rec[f.Name] = values[i]
	}
	return rec, nil
}

// unset reports whether v is the unassigned value of a key of the given kind.
func unset(kind gen.KeyKind, v any) bool {
	if kind == gen.KeyNone {
		return false
	}
	if v == nil {
		return true
	}
	if valuer, ok := v.(driver.Valuer); ok && kind == gen.KeyNull {
		dv, err := valuer.Value()
		return err != nil || dv == nil
	}
	rv := reflect.ValueOf(v)
	switch kind {
	case gen.KeySigned:
		switch {
		case rv.CanInt():
			return rv.Int() <= 0
		case rv.CanFloat():
			return rv.Float() <= 0
		case rv.CanUint():
			return rv.Uint() == 0
		}
	case gen.KeyUnsigned:
		switch {
		case rv.CanUint():
			return rv.Uint() == 0
		case rv.CanInt():
			return rv.Int() <= 0
		}
	case gen.KeyString:
		if rv.Kind() == reflect.String {
			return rv.String() == ""
		}
	case gen.KeyPointer:
		if rv.Kind() == reflect.Pointer {
			return rv.IsNil()
		}
		return false
	}
	return false
}

func asInt64(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return 0, false
	case rv.CanInt():
		return rv.Int(), true
	case rv.CanUint():
		u := rv.Uint()
		return int64(u), u <= 1<<63-1
	default:
		return 0, false
	}
}
