package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/syssam/sqlitegen/compiler/gen"
	"github.com/syssam/sqlitegen/dialect"
	sqlitegensql "github.com/syssam/sqlitegen/dialect/sql"
)

func newApplyCommand() *cobra.Command {
	var withLog bool
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create the tables of the schema in a SQLite database",
		Long: `Run the CREATE TABLE and CREATE INDEX statements of every type on a
SQLite database file, creating it if needed. With --log, the log tables and
their triggers are created too. Statements are idempotent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := getConfig(cmd), getLogger(cmd)
			g, err := buildGraph(cfg, logger)
			if err != nil {
				return problems(err)
			}
			drv, err := sqlitegensql.Open(dialect.SQLite, cfg.Database, foreignKeys)
			if err != nil {
				return fmt.Errorf("open %s: %w", cfg.Database, err)
			}
			defer drv.Close()
			stats := sqlitegensql.NewStats(sqlitegensql.WithSlowQueryLogger(logger))
			if err := apply(cmd.Context(), drv, stats, g, withLog, logger); err != nil {
				return err
			}
			logger.Info("schema applied", "database", cfg.Database, "types", len(g.Nodes), "stats", stats.Snapshot())
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d types to %s\n", len(g.Nodes), cfg.Database)
			return nil
		},
	}
	cmd.Flags().String("database", "", "SQLite database file")
	cmd.Flags().BoolVar(&withLog, "log", false, "Also create the log tables and triggers")
	return cmd
}

// foreignKeys is set on every connection of apply.
var foreignKeys = sqlitegensql.Pragma{Name: "foreign_keys", Value: "ON"}

// apply runs the DDL statements of g in declaration order.
func apply(ctx context.Context, ex sqlitegensql.ExecQuerier, stats *sqlitegensql.Stats, g *gen.Graph, withLog bool, logger *slog.Logger) error {
	for _, t := range g.Nodes {
		stmts := append([]string{t.CreateTableSQL()}, t.CreateIndexStatements()...)
		if withLog {
			stmts = append(stmts, t.CreateTableLogStatements()...)
		}
		for _, stmt := range stmts {
			logger.Debug("exec", "type", t.Name, "query", stmt)
			done := stats.Track(ctx, sqlitegensql.OpDDL, stmt)
			_, err := ex.ExecContext(ctx, stmt)
			done(err)
			if err != nil {
				return fmt.Errorf("apply %s: %w", t.Name, err)
			}
		}
	}
	return nil
}
