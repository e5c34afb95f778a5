// Package sql provides the SQLite dialect of the Jennifer generator.
//
// Usage:
//
//	import (
//	    "github.com/syssam/sqlitegen/compiler/gen"
//	    "github.com/syssam/sqlitegen/compiler/gen/sql"
//	)
//
//	generator := gen.NewJenniferGenerator(graph, outDir)
//	dialect := sql.NewDialect(generator)
//	generator.WithDialect(dialect)
//	generator.Generate(ctx)
//
// Generated code structure:
//
//	{output}/
//	├── {table}.go   # Record struct, SQL constants, Get/Insert/Update/List
//	└── schema.go    # CreateTables and CreateLogTables (FeatureSchema)
package sql

import (
	"context"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlitegen/compiler/gen"
)

// Generate generates the code of the graph into the configured target.
//
// Example:
//
//	import "github.com/syssam/sqlitegen/compiler/gen/sql"
//	err := sql.Generate(ctx, graph)
func Generate(ctx context.Context, g *gen.Graph) error {
	if g.Config == nil || g.Config.Target == "" {
		return gen.NewConfigError("Target", nil, "missing target directory in config")
	}
	generator := gen.NewJenniferGenerator(g, g.Config.Target)
	generator.WithDialect(NewDialect(generator))
	return generator.Generate(ctx)
}

// Dialect implements gen.DialectGenerator for SQLite STRICT tables.
type Dialect struct {
	helper gen.GeneratorHelper
}

// NewDialect creates a new SQLite dialect generator.
// The helper parameter should be a *gen.JenniferGenerator.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{helper: helper}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "sqlite"
}

// GenType generates the record file ({table}.go).
// Includes: record struct, SQL constants, lookups, insert, update and list
// functions for both backends.
func (d *Dialect) GenType(t *gen.Type) *jen.File {
	return genType(d.helper, t)
}

// GenSchema generates schema.go.
// Includes: CreateTables and CreateLogTables.
func (d *Dialect) GenSchema() *jen.File {
	return genSchema(d.helper)
}

var _ gen.DialectGenerator = (*Dialect)(nil)
