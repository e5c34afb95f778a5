package gen

import "github.com/dave/jennifer/jen"

// MinimalDialect is the interface every dialect implements.
type MinimalDialect interface {
	// Name returns the dialect name (e.g., "sqlite").
	Name() string
	// GenType generates the file of a record type ({table}.go): the struct,
	// its SQL constants and its data-access operations.
	GenType(t *Type) *jen.File
}

// GraphGenerator generates graph-level code.
// Each method is called once per generation run.
type GraphGenerator interface {
	// GenSchema generates schema.go, holding helpers that run the DDL of
	// all types. Called only if FeatureSchema is enabled.
	GenSchema() *jen.File
}

// DialectGenerator is implemented by dialects that generate both
// per-type and graph-level code.
type DialectGenerator interface {
	MinimalDialect
	GraphGenerator
}

// GeneratorHelper provides helper methods for dialect implementations.
// JenniferGenerator implements this interface, allowing dialect packages
// to use helper methods without importing the full generator.
type GeneratorHelper interface {
	// NewFile creates a new Jennifer file with the standard header comment.
	NewFile(pkg string) *jen.File

	// GoType returns the Jennifer code for a field's Go type.
	GoType(f *Field) jen.Code

	// Graph returns the schema graph.
	Graph() *Graph

	// Pkg returns the output package name.
	Pkg() string

	// FeatureEnabled reports if the given feature name is enabled.
	FeatureEnabled(name string) bool
}
