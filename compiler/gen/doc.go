// Package gen builds the schema model of SQLite STRICT record types and
// derives their SQL artifacts and data-access operations.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Description (*.yaml)
//	        ↓
//	   load.Schema (fields and raw attributes)
//	        ↓
//	   Graph of Types (resolved storage, constraints and roles)
//	        ↓
//	   SQL artifacts and operation specs (pure functions of a Type)
//	        ↓
//	   MinimalDialect (Go source per type)
//	        ↓
//	   Generated code (target/{table}.go)
//
// # Key Types
//
//   - Graph: Holds all Type definitions of one description
//   - Type: A record type, its table, primary key, unique and foreign key columns
//   - Field: A column with its declared Go type, storage class, constraint and role
//   - GetOp, InsertOp, UpdateOp: Statements and bind order of the operations
//   - Config: Global configuration for code generation
//
// # Derived SQL
//
// For a type WineBottle with an int64 primary key id and a text column color:
//
//	t.CreateTableSQL()    // CREATE TABLE IF NOT EXISTS wine_bottle (id INTEGER NOT NULL PRIMARY KEY, color TEXT NOT NULL) STRICT;
//	t.SelectSQL()         // SELECT id,color FROM wine_bottle
//	t.UpdateOp().Stmt.SQL // UPDATE wine_bottle SET color=? WHERE id=?
//
// # Error Handling
//
// The package uses structured error types:
//
//   - AttrError: Unknown attribute key or non-string attribute value
//   - SchemaError: Schema definition errors (duplicate primary key, bad names)
//   - ConfigError: Configuration errors
//   - GenerationError: Code generation errors
//
// Example error handling:
//
//	g, err := gen.NewGraph(cfg, schemas...)
//	if err != nil {
//		for _, line := range gen.Diagnostics(err) {
//			fmt.Fprintln(os.Stderr, line)
//		}
//	}
package gen
