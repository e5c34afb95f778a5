package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlitegen/compiler/gen"
)

// genGet generates a point lookup by the primary key or a unique column.
func genGet(h gen.GeneratorHelper, f *jen.File, op *gen.GetOp, b gen.Backend) {
	var (
		t    = op.Type
		name = op.Name(b)
		key  = op.Key.Param()
		fail = jen.Return(jen.Nil(), wrapErr("get", t))
	)
	params := append(backendParams(b), jen.Id(key).Add(h.GoType(op.Key)))
	f.Commentf("%s returns the %s with the given %s.", name, t.Name, op.Key.Name)
	if op.ShortCircuit {
		f.Comment("Keys less than 1 are never assigned and return a not-found error without a query.")
	}
	f.Func().Id(name).Params(params...).Params(jen.Op("*").Id(t.Name), jen.Error()).BlockFunc(func(group *jen.Group) {
		if op.ShortCircuit {
			group.If(jen.Id(key).Op("<").Lit(1)).Block(
				jen.Return(jen.Nil(), jen.Qual(runtimePkg, "NewNotFoundErrorWithKey").Call(jen.Id(tableConst(t)), jen.Id(key))),
			)
		}
		query := call(group, b, false, jen.Id(selectByConst(op)), []jen.Code{jen.Id(key)}, fail)
		group.List(jen.Id("rows"), jen.Err()).Op(":=").Add(query)
		group.If(jen.Err().Op("!=").Nil()).Block(fail)
		group.Return(jen.Id(scanFunc(t)).Call(jen.Id("rows"), jen.Id(key)))
	})
}

// genInsert generates the insert method. With an int64 primary key, a key
// less than 1 is left out of the statement and the assigned rowid is
// returned; otherwise the supplied key is returned. Types without such a
// key always bind all columns and return the rowid.
func genInsert(f *jen.File, op *gen.InsertOp, b gen.Backend) {
	var (
		t    = op.Type
		recv = t.Receiver()
		name = op.Name(b)
		fail = jen.Return(jen.Lit(0), wrapErr("insert", t))
	)
	f.Commentf("%s inserts the %s and returns its row id.", name, t.Name)
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id(name).Params(backendParams(b)...).Params(jen.Int64(), jen.Error()).BlockFunc(func(group *jen.Group) {
		stmt, query := op.Full, insertConst(t)
		if op.WithoutPK != nil {
			pk := jen.Id(recv).Dot(t.PK.StructField())
			group.If(pk.Clone().Op(">").Lit(0)).BlockFunc(func(group *jen.Group) {
				exec := call(group, b, true, jen.Id(query), fieldArgs(recv, stmt.Args), fail)
				group.If(jen.List(jen.Id("_"), jen.Err()).Op(":=").Add(exec), jen.Err().Op("!=").Nil()).Block(fail)
				group.Return(pk.Clone(), jen.Nil())
			})
			stmt, query = *op.WithoutPK, insertRowIDConst(t)
		}
		exec := call(group, b, true, jen.Id(query), fieldArgs(recv, stmt.Args), fail)
		group.List(jen.Id("res"), jen.Err()).Op(":=").Add(exec)
		group.If(jen.Err().Op("!=").Nil()).Block(fail)
		group.List(jen.Id("rowID"), jen.Err()).Op(":=").Id("res").Dot("LastInsertId").Call()
		group.If(jen.Err().Op("!=").Nil()).Block(fail)
		group.Return(jen.Id("rowID"), jen.Nil())
	})
}

// genUpdate generates the update method. It binds the non-key columns
// followed by the key and reports whether exactly one row was updated.
func genUpdate(f *jen.File, op *gen.UpdateOp, b gen.Backend) {
	var (
		t    = op.Type
		recv = t.Receiver()
		name = op.Name(b)
		key  = jen.Id(recv).Dot(op.Key.StructField())
		fail = jen.Return(jen.False(), wrapErr("update", t))
	)
	f.Commentf("%s updates the row with the %s of the %s.", name, op.Key.Name, t.Name)
	f.Comment("It reports whether a row was updated.")
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id(name).Params(backendParams(b)...).Params(jen.Bool(), jen.Error()).BlockFunc(func(group *jen.Group) {
		if cond := unsetKey(op.KeyKind(), key); cond != nil {
			invalid := jen.Qual(runtimePkg, "NewInvalidKeyError").Call(jen.Id(tableConst(t)), key.Clone())
			if t.FatalAssertions {
				group.If(cond).Block(jen.Panic(invalid))
			} else {
				group.If(cond).Block(jen.Return(jen.False(), invalid))
			}
		}
		exec := call(group, b, true, jen.Id(updateConst(t)), fieldArgs(recv, op.Stmt.Args), fail)
		group.List(jen.Id("res"), jen.Err()).Op(":=").Add(exec)
		group.If(jen.Err().Op("!=").Nil()).Block(fail)
		group.List(jen.Id("affected"), jen.Err()).Op(":=").Id("res").Dot("RowsAffected").Call()
		group.If(jen.Err().Op("!=").Nil()).Block(fail)
		inconsistent := jen.Qual(runtimePkg, "NewConsistencyError").Call(jen.Id(tableConst(t)), jen.Lit("update"), jen.Id("affected"))
		if t.FatalAssertions {
			group.If(jen.Id("affected").Op(">").Lit(1)).Block(jen.Panic(inconsistent))
		} else {
			group.If(jen.Id("affected").Op(">").Lit(1)).Block(jen.Return(jen.False(), inconsistent))
		}
		group.Return(jen.Id("affected").Op("==").Lit(1), jen.Nil())
	})
}

// unsetKey returns the condition that holds when key has no value, or nil
// if the kind cannot be checked.
func unsetKey(kind gen.KeyKind, key *jen.Statement) *jen.Statement {
	switch kind {
	case gen.KeySigned:
		return key.Clone().Op("<=").Lit(0)
	case gen.KeyUnsigned:
		return key.Clone().Op("==").Lit(0)
	case gen.KeyString:
		return key.Clone().Op("==").Lit("")
	case gen.KeyPointer:
		return key.Clone().Op("==").Nil()
	case gen.KeyNull:
		return jen.Op("!").Add(key.Clone()).Dot("Valid")
	default:
		return nil
	}
}
