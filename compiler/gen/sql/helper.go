package sql

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlitegen/compiler/gen"
)

// Import paths of the runtime packages used by generated code.
const (
	runtimePkg   = "github.com/syssam/sqlitegen"
	dialectPkg   = "github.com/syssam/sqlitegen/dialect/sql"
	dialectAlias = "sqlitegensql"
)

// newFile returns a file of the output package with the dialect/sql
// import aliased, so it does not clash with database/sql.
func newFile(h gen.GeneratorHelper) *jen.File {
	f := h.NewFile(h.Pkg())
	f.ImportAlias(dialectPkg, dialectAlias)
	return f
}

// backendParams returns the leading parameters of an operation:
// (ctx context.Context, ex ExecQuerier) or (cache *StmtCache).
func backendParams(b gen.Backend) []jen.Code {
	if b == gen.BackendSync {
		return []jen.Code{jen.Id("cache").Op("*").Qual(dialectPkg, "StmtCache")}
	}
	return []jen.Code{
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("ex").Qual(dialectPkg, "ExecQuerier"),
	}
}

// call returns the expression running query with args on the backend.
// For the sync backend, the statement is first prepared through the cache
// and fail is returned if that does not succeed.
func call(g *jen.Group, b gen.Backend, exec bool, query jen.Code, args []jen.Code, fail jen.Code) *jen.Statement {
	if b == gen.BackendSync {
		g.List(jen.Id("stmt"), jen.Err()).Op(":=").Id("cache").Dot("Prepare").Call(query)
		g.If(jen.Err().Op("!=").Nil()).Block(fail)
		method := "Query"
		if exec {
			method = "Exec"
		}
		return jen.Id("stmt").Dot(method).Call(args...)
	}
	method := "QueryContext"
	if exec {
		method = "ExecContext"
	}
	return jen.Id("ex").Dot(method).Call(append([]jen.Code{jen.Id("ctx"), query}, args...)...)
}

// wrapErr returns fmt.Errorf("sqlitegen: {op} {table}: %w", err).
func wrapErr(op string, t *gen.Type) *jen.Statement {
	return jen.Qual("fmt", "Errorf").Call(jen.Lit(fmt.Sprintf("sqlitegen: %s %s: %%w", op, t.Table)), jen.Err())
}

// fieldArgs returns the receiver fields bound to a statement.
func fieldArgs(recv string, fields []*gen.Field) []jen.Code {
	args := make([]jen.Code, len(fields))
	for i, f := range fields {
		args[i] = jen.Id(recv).Dot(f.StructField())
	}
	return args
}

// Names of the generated identifiers of a type.
func tableConst(t *gen.Type) string { return t.Name + "Table" }
func scanFunc(t *gen.Type) string { return "scan" + t.Name }
func selectByConst(op *gen.GetOp) string { return op.Type.Name + "SelectBy" + op.Key.StructField() + "SQL" }
func insertConst(t *gen.Type) string { return t.Name + "InsertSQL" }
func insertRowIDConst(t *gen.Type) string { return t.Name + "InsertWithoutPKSQL" }
func updateConst(t *gen.Type) string { return t.Name + "UpdateSQL" }
func createTableConst(t *gen.Type) string { return t.Name + "CreateTableSQL" }
func createIndexConst(t *gen.Type) string { return t.Name + "CreateIndexSQL" }
func createLogConst(t *gen.Type) string { return t.Name + "CreateTableLogSQL" }
func selectConst(t *gen.Type) string { return t.Name + "SelectSQL" }
func selectAsConst(t *gen.Type) string { return t.Name + "SelectAsSQL" }
