package gen

import (
	"fmt"
	"strings"
)

// Backend selects how a generated operation executes its statement.
type Backend int

const (
	// BackendContext runs statements on a dialect/sql.ExecQuerier and
	// takes a context.Context.
	BackendContext Backend = iota
	// BackendSync runs statements prepared through a dialect/sql.StmtCache
	// and takes no context.
	BackendSync
)

// String returns the backend name.
func (b Backend) String() string {
	if b == BackendSync {
		return "sync"
	}
	return "context"
}

// Suffix returns the suffix of generated names for the backend.
func (b Backend) Suffix() string {
	if b == BackendSync {
		return "Sync"
	}
	return ""
}

// Backends lists all backends.
var Backends = []Backend{BackendContext, BackendSync}

// Statement is a parameterized statement and the fields bound to its
// placeholders, in order.
type Statement struct {
	SQL  string
	Args []*Field
}

// NumArgs returns the number of placeholders.
func (s Statement) NumArgs() int { return len(s.Args) }

// GetOp is a point lookup by the primary key or a unique column.
type GetOp struct {
	Type *Type
	Key  *Field
	// ShortCircuit reports that keys < 1 are not found without running
	// the statement. Only set for int64 primary keys.
	ShortCircuit bool
	// Stmt selects all columns and binds the key only.
	Stmt Statement
}

// Name returns the generated function name for the backend.
func (op *GetOp) Name(b Backend) string {
	return "Get" + op.Type.Name + "By" + op.Key.StructField() + b.Suffix()
}

// InsertOp inserts a record.
type InsertOp struct {
	Type *Type
	// Full binds all columns.
	Full Statement
	// WithoutPK binds all columns except the primary key columns. It is
	// only set for int64 primary keys and used when the key is < 1, so
	// the engine assigns the rowid.
	WithoutPK *Statement
}

// Name returns the generated method name for the backend.
func (op *InsertOp) Name(b Backend) string {
	return "Insert" + b.Suffix()
}

// UpdateOp updates all non-key columns of the record matching its key.
type UpdateOp struct {
	Type *Type
	Key  *Field
	// Stmt binds the non-key columns followed by the key.
	Stmt Statement
}

// Name returns the generated method name for the backend.
func (op *UpdateOp) Name(b Backend) string {
	return "Update" + b.Suffix()
}

// KeyKind returns how the precondition on the key value is checked.
func (op *UpdateOp) KeyKind() KeyKind {
	return op.Key.KeyKind()
}

// GetOps returns the lookups of the type: the primary key first, then each
// unique column in declaration order. It is empty if the type has neither.
func (t *Type) GetOps() []*GetOp {
	var ops []*GetOp
	if t.HasPK() {
		ops = append(ops, t.getOp(t.PK, IsRowID(t.PK.Type)))
	}
	for _, f := range t.Unique {
		ops = append(ops, t.getOp(f, false))
	}
	return ops
}

func (t *Type) getOp(key *Field, short bool) *GetOp {
	return &GetOp{
		Type:         t,
		Key:          key,
		ShortCircuit: short,
		Stmt: Statement{
			SQL:  fmt.Sprintf("%s WHERE %s=?", t.SelectSQL(), key.Name),
			Args: []*Field{key},
		},
	}
}

// InsertOp returns the insert operation of the type.
func (t *Type) InsertOp() *InsertOp {
	op := &InsertOp{
		Type: t,
		Full: insertStmt(t.Table, t.Fields),
	}
	if t.HasRowIDKey() {
		stmt := insertStmt(t.Table, t.NonKeyFields())
		op.WithoutPK = &stmt
	}
	return op
}

// insertStmt returns the INSERT statement of the given columns. With no
// columns, the row is inserted with default values.
func insertStmt(table string, fields []*Field) Statement {
	if len(fields) == 0 {
		return Statement{SQL: "INSERT INTO " + table + " DEFAULT VALUES"}
	}
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	return Statement{
		SQL:  fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ","), placeholders(len(fields))),
		Args: fields,
	}
}

// UpdateOp returns the update operation of the type, or nil if the type
// has no primary key or nothing to assign.
func (t *Type) UpdateOp() *UpdateOp {
	if !t.HasPK() {
		return nil
	}
	set := t.NonKeyFields()
	if len(set) == 0 {
		return nil
	}
	assigns := make([]string, len(set))
	for i, f := range set {
		assigns[i] = f.Name + "=?"
	}
	args := make([]*Field, 0, len(set)+1)
	args = append(args, set...)
	args = append(args, t.PK)
	return &UpdateOp{
		Type: t,
		Key:  t.PK,
		Stmt: Statement{
			SQL:  fmt.Sprintf("UPDATE %s SET %s WHERE %s=?", t.Table, strings.Join(assigns, ","), t.PK.Name),
			Args: args,
		},
	}
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
