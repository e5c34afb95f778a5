package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlitegen/compiler/gen"
)

// genType generates the record file ({table}.go).
func genType(h gen.GeneratorHelper, t *gen.Type) *jen.File {
	f := newFile(h)

	genStruct(h, f, t)
	genConsts(f, t)
	genScanValues(f, t)

	if ops := t.GetOps(); len(ops) > 0 {
		genScanOne(f, t)
		for _, op := range ops {
			for _, b := range gen.Backends {
				genGet(h, f, op, b)
			}
		}
	}
	for _, b := range gen.Backends {
		genInsert(f, t.InsertOp(), b)
	}
	if op := t.UpdateOp(); op != nil {
		for _, b := range gen.Backends {
			genUpdate(f, op, b)
		}
	}
	for _, b := range gen.Backends {
		genList(f, t, b)
	}
	return f
}

// genStruct generates the record struct.
func genStruct(h gen.GeneratorHelper, f *jen.File, t *gen.Type) {
	f.Commentf("%s is a row of the %s table.", t.Name, t.Table)
	f.Type().Id(t.Name).StructFunc(func(group *jen.Group) {
		for _, field := range t.Fields {
			group.Id(field.StructField()).Add(h.GoType(field)).Tag(map[string]string{"db": field.Name})
		}
	})
}

// genConsts generates the table name and the SQL constants of the type.
func genConsts(f *jen.File, t *gen.Type) {
	f.Const().DefsFunc(func(group *jen.Group) {
		group.Commentf("%s holds the table name of %s.", tableConst(t), t.Name)
		group.Id(tableConst(t)).Op("=").Lit(t.Table)
		group.Commentf("%s creates the %s table.", createTableConst(t), t.Table)
		group.Id(createTableConst(t)).Op("=").Lit(t.CreateTableSQL())
		group.Commentf("%s creates the indexes of the foreign key columns.", createIndexConst(t))
		group.Id(createIndexConst(t)).Op("=").Lit(t.CreateIndexSQL())
		group.Commentf("%s creates the %s table and the triggers that fill it.", createLogConst(t), t.LogTable())
		group.Id(createLogConst(t)).Op("=").Lit(t.CreateTableLogSQL())
		group.Commentf("%s selects all columns.", selectConst(t))
		group.Id(selectConst(t)).Op("=").Lit(t.SelectSQL())
		group.Commentf("%s selects all columns from their source expressions.", selectAsConst(t))
		group.Id(selectAsConst(t)).Op("=").Lit(t.SelectAsSQL())
	})

	f.Const().DefsFunc(func(group *jen.Group) {
		for _, op := range t.GetOps() {
			group.Id(selectByConst(op)).Op("=").Lit(op.Stmt.SQL)
		}
		op := t.InsertOp()
		group.Id(insertConst(t)).Op("=").Lit(op.Full.SQL)
		if op.WithoutPK != nil {
			group.Id(insertRowIDConst(t)).Op("=").Lit(op.WithoutPK.SQL)
		}
		if op := t.UpdateOp(); op != nil {
			group.Id(updateConst(t)).Op("=").Lit(op.Stmt.SQL)
		}
	})
}

// genScanValues generates the method returning the scan destinations of
// all columns, in select order.
func genScanValues(f *jen.File, t *gen.Type) {
	recv := t.Receiver()
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id("scanValues").Params().Index().Any().Block(
		jen.Return(jen.Index().Any().ValuesFunc(func(group *jen.Group) {
			for _, field := range t.Fields {
				group.Op("&").Id(recv).Dot(field.StructField())
			}
		})),
	)
}

// genScanOne generates the helper that scans the single row of a lookup.
func genScanOne(f *jen.File, t *gen.Type) {
	fail := jen.Return(jen.Nil(), wrapErr("get", t))
	f.Func().Id(scanFunc(t)).Params(
		jen.Id("rows").Op("*").Qual("database/sql", "Rows"),
		jen.Id("key").Any(),
	).Params(jen.Op("*").Id(t.Name), jen.Error()).Block(
		jen.Defer().Id("rows").Dot("Close").Call(),
		jen.If(jen.Op("!").Id("rows").Dot("Next").Call()).Block(
			jen.If(jen.Err().Op(":=").Id("rows").Dot("Err").Call(), jen.Err().Op("!=").Nil()).Block(fail),
			jen.Return(jen.Nil(), jen.Qual(runtimePkg, "NewNotFoundErrorWithKey").Call(jen.Id(tableConst(t)), jen.Id("key"))),
		),
		jen.Id("out").Op(":=").Op("&").Id(t.Name).Values(),
		jen.If(jen.Err().Op(":=").Id("rows").Dot("Scan").Call(jen.Id("out").Dot("scanValues").Call().Op("...")), jen.Err().Op("!=").Nil()).Block(fail),
		jen.Return(jen.Id("out"), jen.Nil()),
	)
}

// genList generates the function returning all rows of the table.
func genList(f *jen.File, t *gen.Type, b gen.Backend) {
	name := t.ListName() + b.Suffix()
	fail := jen.Return(jen.Nil(), wrapErr("list", t))
	f.Commentf("%s returns all rows of the %s table.", name, t.Table)
	f.Func().Id(name).Params(backendParams(b)...).Params(jen.Index().Op("*").Id(t.Name), jen.Error()).BlockFunc(func(group *jen.Group) {
		query := call(group, b, false, jen.Id(selectConst(t)), nil, fail)
		group.List(jen.Id("rows"), jen.Err()).Op(":=").Add(query)
		group.If(jen.Err().Op("!=").Nil()).Block(fail)
		group.Defer().Id("rows").Dot("Close").Call()
		group.Var().Id("out").Index().Op("*").Id(t.Name)
		group.For(jen.Id("rows").Dot("Next").Call()).Block(
			jen.Id("row").Op(":=").Op("&").Id(t.Name).Values(),
			jen.If(jen.Err().Op(":=").Id("rows").Dot("Scan").Call(jen.Id("row").Dot("scanValues").Call().Op("...")), jen.Err().Op("!=").Nil()).Block(fail),
			jen.Id("out").Op("=").Append(jen.Id("out"), jen.Id("row")),
		)
		group.If(jen.Err().Op(":=").Id("rows").Dot("Err").Call(), jen.Err().Op("!=").Nil()).Block(fail)
		group.Return(jen.Id("out"), jen.Nil())
	})
}
