// Package sql wraps database/sql for SQLite.
//
// Driver embeds a *sql.DB whose connections all run a list of pragmas when
// they are opened. Stats counts statements per kind (ddl, get, insert,
// update, list) and reports slow ones through log/slog. StmtCache is the
// prepared-statement cache used by the synchronous variants of the
// generated data-access operations.
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db", sql.Pragma{Name: "foreign_keys", Value: "ON"})
//	stats := sql.NewStats(sql.WithSlowQueryLogger(logger))
//	done := stats.Track(ctx, sql.OpDDL, stmt)
//	_, err = drv.ExecContext(ctx, stmt)
//	done(err)
package sql
