package gen

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
)

// schemaFile is the graph-level file generated with FeatureSchema.
const schemaFile = "schema.go"

// JenniferGenerator generates the Go code of a graph with Jennifer.
// Per-type files are rendered in parallel and each goes through a
// goimports pass before it is written.
type JenniferGenerator struct {
	graph   *Graph
	workers int
	outDir  string
	pkg     string
	logger  *slog.Logger

	// Dialect generator for database-specific code.
	dialect MinimalDialect
	// Optional graph-level generator detected at runtime.
	graphGen GraphGenerator

	writer  *fileWriter
	Metrics WriterMetrics
}

// NewJenniferGenerator creates a new Jennifer-based generator. Workers,
// package and logger default to the graph config. If outDir is empty,
// the config target is used.
// You must call WithDialect() to set a dialect before calling Generate().
//
// Example:
//
//	import "github.com/syssam/sqlitegen/compiler/gen/sql"
//
//	gen := gen.NewJenniferGenerator(graph, outDir)
//	dialect := sql.NewDialect(gen)
//	gen.WithDialect(dialect)
//	gen.Generate(ctx)
func NewJenniferGenerator(g *Graph, outDir string) *JenniferGenerator {
	if g.Config == nil {
		g.Config = DefaultConfig()
	}
	if outDir == "" {
		outDir = g.Config.Target
	}
	pkg := g.Config.Package
	if pkg == "" {
		pkg = filepath.Base(outDir)
	}
	workers := g.Config.Workers
	if workers < 1 {
		workers = 1
	}
	return &JenniferGenerator{
		graph:   g,
		workers: workers,
		outDir:  outDir,
		pkg:     pkg,
		logger:  g.Config.logger(),
		writer:  newFileWriter(outDir),
	}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithPackage sets the output package name.
func (g *JenniferGenerator) WithPackage(pkg string) *JenniferGenerator {
	if pkg != "" {
		g.pkg = pkg
	}
	return g
}

// WithDialect sets the dialect generator. Graph-level generation is
// detected via GraphGenerator.
func (g *JenniferGenerator) WithDialect(d MinimalDialect) *JenniferGenerator {
	if d != nil {
		g.dialect = d
		if gg, ok := d.(GraphGenerator); ok {
			g.graphGen = gg
		}
	}
	return g
}

// Generate generates all code with parallel execution.
// Returns an error if no dialect has been set via WithDialect().
//
// With FeatureSnapshot, a type whose rendered file has the digest
// recorded by the previous run is not written again, and the files of
// types that were removed from the graph are deleted.
func (g *JenniferGenerator) Generate(ctx context.Context) error {
	if g.dialect == nil {
		return NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	}
	if g.outDir == "" {
		return NewConfigError("Target", nil, "missing target directory")
	}
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return NewGenerationError("target", g.outDir, "", err)
	}
	start := time.Now()

	var (
		snap   *Snapshot
		snapMu sync.Mutex
	)
	if g.FeatureEnabled(FeatureSnapshot.Name) {
		s, err := ReadSnapshot(g.outDir)
		if err != nil {
			g.logger.Warn("ignoring unreadable snapshot", "dir", g.outDir, "error", err)
			s = NewSnapshot()
		}
		snap = s
	}

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)

	for _, t := range g.graph.Nodes {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := t.File()
			b, err := g.writer.render(g.dialect.GenType(t), name)
			if err != nil {
				return err
			}
			digest := Digest(b)
			if snap != nil {
				snapMu.Lock()
				unchanged := snap.Unchanged(g.outDir, t.Name, digest)
				snapMu.Unlock()
				if unchanged {
					g.writer.skip()
					g.logger.Debug("unchanged", "type", t.Name, "file", name)
					return nil
				}
			}
			if err := g.writer.write(name, b); err != nil {
				return err
			}
			if snap != nil {
				snapMu.Lock()
				snap.Record(t, digest)
				snapMu.Unlock()
			}
			g.logger.Debug("generated", "type", t.Name, "file", name, "bytes", len(b))
			return nil
		})
	}

	if g.graphGen != nil && g.FeatureEnabled(FeatureSchema.Name) {
		errg.Go(func() error {
			b, err := g.writer.render(g.graphGen.GenSchema(), schemaFile)
			if err != nil {
				return err
			}
			if err := g.writer.write(schemaFile, b); err != nil {
				return err
			}
			g.logger.Debug("generated", "file", schemaFile, "bytes", len(b))
			return nil
		})
	}

	if err := errg.Wait(); err != nil {
		return err
	}

	if snap != nil {
		for _, file := range snap.Stale(g.graph) {
			if err := g.writer.remove(file); err != nil {
				return err
			}
			g.logger.Debug("removed", "file", file)
		}
		snap.Prune(g.graph)
		if err := snap.Write(g.outDir); err != nil {
			return NewGenerationError("snapshot", SnapshotFile, "", err)
		}
	}
	if err := cleanupFeatures(&Config{Target: g.outDir, Features: g.graph.Config.Features}); err != nil {
		return NewGenerationError("cleanup", "", "", err)
	}

	g.Metrics = g.writer.snapshot()
	g.logger.Info("generation complete",
		"dialect", g.dialect.Name(),
		"target", g.outDir,
		"types", len(g.graph.Nodes),
		"written", g.Metrics.FilesGenerated,
		"skipped", g.Metrics.FilesSkipped,
		"bytes", g.Metrics.TotalBytes,
		"elapsed", time.Since(start),
	)
	return nil
}

// =============================================================================
// GeneratorHelper interface implementation
// =============================================================================

// NewFile creates a new Jennifer file with the standard header comment.
func (g *JenniferGenerator) NewFile(pkg string) *jen.File {
	return g.newFile(pkg)
}

// GoType returns the Jennifer code for a field's Go type.
func (g *JenniferGenerator) GoType(f *Field) jen.Code {
	return goType(f.Type)
}

// Graph returns the schema graph.
func (g *JenniferGenerator) Graph() *Graph {
	return g.graph
}

// Pkg returns the output package name.
func (g *JenniferGenerator) Pkg() string {
	return g.pkg
}

// FeatureEnabled reports if the given feature name is enabled.
func (g *JenniferGenerator) FeatureEnabled(name string) bool {
	enabled, _ := g.graph.Config.FeatureEnabled(name)
	return enabled
}

// Verify JenniferGenerator implements GeneratorHelper at compile time.
var _ GeneratorHelper = (*JenniferGenerator)(nil)

// newFile creates a new Jennifer file with the header comment.
func (g *JenniferGenerator) newFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	header := g.graph.Config.Header
	if header == "" {
		header = defaultHeader
	}
	f.HeaderComment(header)
	return f
}
