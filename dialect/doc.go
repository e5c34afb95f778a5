// Package dialect holds the names of the SQLite drivers sqlitegen works with.
//
// Generated data-access code talks to SQLite through database/sql directly.
// The runner and the CLI open databases through dialect/sql, which applies
// connection pragmas and records statement statistics:
//
//	import (
//	    "github.com/syssam/sqlitegen/dialect"
//	    "github.com/syssam/sqlitegen/dialect/sql"
//	    _ "modernc.org/sqlite"
//	)
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db", sql.Pragma{Name: "foreign_keys", Value: "ON"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
package dialect
