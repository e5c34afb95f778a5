package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/syssam/sqlitegen/compiler/gen"
	"github.com/syssam/sqlitegen/compiler/load"
)

// buildGraph loads the configured schema and builds its graph. The graph
// of the types that built is returned along with the build errors.
func buildGraph(cfg *Config, logger *slog.Logger) (*gen.Graph, error) {
	schemas, err := load.Path(cfg.Schema)
	if err != nil {
		return nil, err
	}
	c, err := gen.NewConfig(cfg.Options(logger)...)
	if err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	logger.Debug("schema loaded", "path", cfg.Schema, "types", len(schemas))
	return gen.NewGraph(c, schemas...)
}

// problems formats the diagnostics of a build error.
func problems(err error) error {
	lines := gen.Diagnostics(err)
	if len(lines) == 1 {
		return errors.New(lines[0])
	}
	return fmt.Errorf("%d problems:\n  %s", len(lines), strings.Join(lines, "\n  "))
}
