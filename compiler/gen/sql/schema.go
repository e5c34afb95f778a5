package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlitegen/compiler/gen"
)

// genSchema generates schema.go: the DDL statements of all types, one
// statement per entry, and the functions that run them in order.
func genSchema(h gen.GeneratorHelper) *jen.File {
	f := newFile(h)
	g := h.Graph()

	f.Comment("tableStatements holds the CREATE TABLE and CREATE INDEX statements of all types.")
	f.Var().Id("tableStatements").Op("=").Index().String().ValuesFunc(func(group *jen.Group) {
		for _, t := range g.Nodes {
			group.Line().Id(createTableConst(t))
			for _, stmt := range t.CreateIndexStatements() {
				group.Line().Lit(stmt)
			}
		}
		group.Line()
	})

	f.Comment("logStatements holds the statements creating the log tables and triggers of all types.")
	f.Var().Id("logStatements").Op("=").Index().String().ValuesFunc(func(group *jen.Group) {
		for _, t := range g.Nodes {
			for _, stmt := range t.CreateTableLogStatements() {
				group.Line().Lit(stmt)
			}
		}
		group.Line()
	})

	f.Comment("CreateTables creates the tables and foreign key indexes of all types.")
	f.Func().Id("CreateTables").Params(backendParams(gen.BackendContext)...).Error().Block(
		jen.Return(jen.Id("execStatements").Call(jen.Id("ctx"), jen.Id("ex"), jen.Id("tableStatements"))),
	)

	f.Comment("CreateLogTables creates the log tables of all types and the triggers")
	f.Comment("that copy every updated or deleted row into them.")
	f.Func().Id("CreateLogTables").Params(backendParams(gen.BackendContext)...).Error().Block(
		jen.Return(jen.Id("execStatements").Call(jen.Id("ctx"), jen.Id("ex"), jen.Id("logStatements"))),
	)

	f.Func().Id("execStatements").Params(append(backendParams(gen.BackendContext), jen.Id("stmts").Index().String())...).Error().Block(
		jen.For(jen.List(jen.Id("_"), jen.Id("stmt")).Op(":=").Range().Id("stmts")).Block(
			jen.If(jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("ex").Dot("ExecContext").Call(jen.Id("ctx"), jen.Id("stmt")), jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("sqlitegen: %s: %w"), jen.Id("stmt"), jen.Err())),
			),
		),
		jen.Return(jen.Nil()),
	)
	return f
}
