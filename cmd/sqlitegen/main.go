// Command sqlitegen compiles YAML record descriptions into SQLite STRICT
// schemas and Go data-access code.
package main

import (
	"os"

	"github.com/syssam/sqlitegen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
