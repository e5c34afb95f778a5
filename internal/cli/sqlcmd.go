package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlitegen/compiler/gen"
)

func newSQLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sql [type...]",
		Short: "Print the SQL artifacts of the schema types",
		Long: `Print the CREATE TABLE, CREATE INDEX, log table, SELECT and SELECT AS
statements of every type, or of the named types, in declaration order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := buildGraph(getConfig(cmd), getLogger(cmd))
			if err != nil {
				return problems(err)
			}
			types := g.Nodes
			if len(args) > 0 {
				types = types[:0:0]
				for _, name := range args {
					t, ok := g.Type(name)
					if !ok {
						return fmt.Errorf("unknown type %q", name)
					}
					types = append(types, t)
				}
			}
			return printSQL(cmd.OutOrStdout(), types)
		},
	}
}

func printSQL(w io.Writer, types []*gen.Type) error {
	for i, t := range types {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		a := t.Artifacts()
		sections := []struct{ name, sql string }{
			{"create table", a.CreateTable},
			{"create index", a.CreateIndex},
			{"create table log", a.CreateTableLog},
			{"select", a.Select},
			{"select as", a.SelectAs},
		}
		if _, err := fmt.Fprintf(w, "-- %s (%s)\n", t.Name, t.Table); err != nil {
			return err
		}
		for _, s := range sections {
			stmt := strings.TrimSpace(s.sql)
			if stmt == "" {
				continue
			}
			if _, err := fmt.Fprintf(w, "-- %s\n%s\n", s.name, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}
