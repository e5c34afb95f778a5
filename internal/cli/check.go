package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/sqlitegen/compiler/gen"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the schema and report diagnostics",
		Long: `Build every type of the schema and print one file:line:col: message
line per problem. The command fails if any type does not build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := buildGraph(getConfig(cmd), getLogger(cmd))
			if g == nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err != nil {
				lines := gen.Diagnostics(err)
				for _, l := range lines {
					fmt.Fprintln(out, l)
				}
				return fmt.Errorf("%d problems found", len(lines))
			}
			fmt.Fprintf(out, "ok: %d types\n", len(g.Nodes))
			return nil
		},
	}
}
