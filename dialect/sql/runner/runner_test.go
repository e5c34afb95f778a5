package runner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/sqlitegen"
	"github.com/syssam/sqlitegen/compiler/gen"
	"github.com/syssam/sqlitegen/compiler/load"
	sqlitegensql "github.com/syssam/sqlitegen/dialect/sql"
)

func petType(t *testing.T, opts ...gen.Option) *gen.Type {
	t.Helper()
	c, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	typ, err := gen.NewType(c, load.NewSchema("Pet",
		load.NewField("id", "int64").SQL("constraint", "PRIMARY KEY"),
		load.NewField("name", "string"),
		load.NewField("tag", "*string").SQL("constraint", "UNIQUE"),
	))
	require.NoError(t, err)
	return typ
}

func openMemory(t *testing.T, typ *gen.Type) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(typ.CreateTableSQL())
	require.NoError(t, err)
	for _, stmt := range typ.CreateTableLogStatements() {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func TestRunner_SQLite(t *testing.T) {
	typ := petType(t)
	ctx := context.Background()

	backends := map[string]func(t *testing.T, db *sql.DB) Executor{
		"context": func(_ *testing.T, db *sql.DB) Executor { return Context(db) },
		"sync": func(t *testing.T, db *sql.DB) Executor {
			cache := sqlitegensql.NewStmtCache(db)
			t.Cleanup(func() { cache.Close() })
			return Sync(cache)
		},
	}
	for name, newExecutor := range backends {
		t.Run(name, func(t *testing.T) {
			db := openMemory(t, typ)
			e := newExecutor(t, db)
			stats := sqlitegensql.NewStats()
			r := New(WithStats(stats))
			byID, byTag := typ.GetOps()[0], typ.GetOps()[1]

			id, err := r.Insert(ctx, e, typ.InsertOp(), Record{"name": "Rex", "tag": "r-1"})
			require.NoError(t, err)
			assert.Equal(t, int64(1), id)

			id, err = r.Insert(ctx, e, typ.InsertOp(), Record{"id": int64(42), "name": "Tom"})
			require.NoError(t, err)
			assert.Equal(t, int64(42), id)

			rec, err := r.Get(ctx, e, byID, int64(1))
			require.NoError(t, err)
			assert.Equal(t, Record{"id": int64(1), "name": "Rex", "tag": "r-1"}, rec)

			rec, err = r.Get(ctx, e, byTag, "r-1")
			require.NoError(t, err)
			assert.Equal(t, int64(1), rec["id"])

			_, err = r.Get(ctx, e, byID, int64(7))
			assert.True(t, sqlitegen.IsNotFound(err))

			ok, err := r.Update(ctx, e, typ.UpdateOp(), Record{"id": int64(42), "name": "Felix"})
			require.NoError(t, err)
			assert.True(t, ok)
			rec, err = r.Get(ctx, e, byID, int64(42))
			require.NoError(t, err)
			assert.Equal(t, "Felix", rec["name"])
			assert.Nil(t, rec["tag"])

			ok, err = r.Update(ctx, e, typ.UpdateOp(), Record{"id": int64(9), "name": "Nobody"})
			require.NoError(t, err)
			assert.False(t, ok)

			all, err := r.List(ctx, e, typ)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "Rex", all[0]["name"])
			assert.Equal(t, "Felix", all[1]["name"])

			var logged int
			require.NoError(t, db.QueryRow("SELECT count(*) FROM pet_log WHERE id=42").Scan(&logged))
			assert.Equal(t, 1, logged)

			_, err = r.Insert(ctx, e, typ.InsertOp(), Record{"name": "Dup", "tag": "r-1"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "sqlitegen: insert pet:")
			assert.True(t, sqlitegensql.IsUniqueConstraintError(err))

			snap := stats.Snapshot()
			assert.Equal(t, int64(3), snap[sqlitegensql.OpInsert].Count)
			assert.Equal(t, int64(1), snap[sqlitegensql.OpInsert].Errors)
			assert.Equal(t, int64(4), snap[sqlitegensql.OpGet].Count)
			assert.Equal(t, int64(2), snap[sqlitegensql.OpUpdate].Count)
			assert.Equal(t, int64(1), snap[sqlitegensql.OpList].Count)
			assert.Equal(t, int64(1), snap.Total().Errors)
		})
	}
}

func TestRunner_GetShortCircuit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	typ := petType(t)
	stats := sqlitegensql.NewStats()
	for _, key := range []any{int64(0), int64(-3), 0} {
		_, err := New(WithStats(stats)).Get(context.Background(), Context(db), typ.GetOps()[0], key)
		assert.True(t, sqlitegen.IsNotFound(err))
	}
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, stats.Snapshot())
}

func TestRunner_BindOrder(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	typ := petType(t)
	mock.ExpectExec("UPDATE pet SET name=?,tag=? WHERE id=?").
		WithArgs("Rex", "r-1", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO pet (name,tag) VALUES (?,?)").
		WithArgs("Tom", nil).
		WillReturnResult(sqlmock.NewResult(8, 1))

	r := New()
	ok, err := r.Update(context.Background(), Context(db), typ.UpdateOp(), Record{"id": int64(3), "name": "Rex", "tag": "r-1"})
	require.NoError(t, err)
	assert.True(t, ok)

	id, err := r.Insert(context.Background(), Context(db), typ.InsertOp(), Record{"name": "Tom"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_SyncPrepares(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	typ := petType(t)
	prep := mock.ExpectPrepare("SELECT id,name,tag FROM pet WHERE id=?")
	prep.ExpectQuery().WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "tag"}).AddRow(int64(5), "Rex", nil))
	prep.ExpectQuery().WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "tag"}))

	cache := sqlitegensql.NewStmtCache(db)
	r := New()
	rec, err := r.Get(context.Background(), Sync(cache), typ.GetOps()[0], int64(5))
	require.NoError(t, err)
	assert.Equal(t, "Rex", rec["name"])

	_, err = r.Get(context.Background(), Sync(cache), typ.GetOps()[0], int64(6))
	var nf *sqlitegen.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(6), nf.Key())
	assert.Equal(t, 1, cache.Len())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunner_UpdateInvariants(t *testing.T) {
	typ := petType(t)

	t.Run("invalid key", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for _, rec := range []Record{{"name": "Rex"}, {"id": int64(0)}, {"id": int64(-1)}} {
			ok, err := New().Update(context.Background(), Context(db), typ.UpdateOp(), rec)
			assert.False(t, ok)
			assert.ErrorIs(t, err, sqlitegen.ErrInvalidKey)
		}
		require.NoError(t, mock.ExpectationsWereMet())

		assert.Panics(t, func() {
			_, _ = New(WithFatalAssertions()).Update(context.Background(), Context(db), typ.UpdateOp(), Record{})
		})
	})

	t.Run("consistency", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("UPDATE pet").WillReturnResult(sqlmock.NewResult(0, 2))
		ok, err := New().Update(context.Background(), Context(db), typ.UpdateOp(), Record{"id": int64(1)})
		assert.False(t, ok)
		assert.True(t, sqlitegen.IsConsistency(err))

		mock.ExpectExec("UPDATE pet").WillReturnResult(sqlmock.NewResult(0, 3))
		assert.Panics(t, func() {
			_, _ = New(WithFatalAssertions()).Update(context.Background(), Context(db), typ.UpdateOp(), Record{"id": int64(1)})
		})
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		busy := errors.New("database is locked")
		mock.ExpectExec("UPDATE pet").WillReturnError(busy)
		_, err = New().Update(context.Background(), Context(db), typ.UpdateOp(), Record{"id": int64(1)})
		assert.ErrorIs(t, err, busy)
		assert.Equal(t, "sqlitegen: update pet: database is locked", err.Error())
	})
}

func TestUnset(t *testing.T) {
	t.Parallel()
	tag := "x"
	tests := []struct {
		kind gen.KeyKind
		v    any
		want bool
	}{
		{gen.KeySigned, int64(1), false},
		{gen.KeySigned, int32(0), true},
		{gen.KeySigned, -0.5, true},
		{gen.KeyUnsigned, uint(0), true},
		{gen.KeyUnsigned, uint16(2), false},
		{gen.KeyString, "", true},
		{gen.KeyString, "a", false},
		{gen.KeyPointer, (*string)(nil), true},
		{gen.KeyPointer, &tag, false},
		{gen.KeyNull, sql.NullInt64{}, true},
		{gen.KeyNull, sql.NullInt64{Int64: 1, Valid: true}, false},
		{gen.KeyNone, nil, false},
		{gen.KeySigned, nil, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unset(tt.kind, tt.v), "%v %#v", tt.kind, tt.v)
	}
}
