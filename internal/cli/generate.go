package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/sqlitegen/compiler/gen/sql"
	"github.com/syssam/sqlitegen/compiler/load"
)

// debounceDelay groups the events of one save into a single run.
const debounceDelay = 100 * time.Millisecond

func newGenerateCommand() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Go data-access code from the schema",
		Example: `  sqlitegen generate -s schema/ -o internal/models
  sqlitegen generate --features snapshot,schema --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := getConfig(cmd), getLogger(cmd)
			if err := generate(cmd.Context(), cfg, logger); err != nil {
				if !watch {
					return err
				}
				logger.Error("generate failed", "error", err)
			}
			if !watch {
				return nil
			}
			return watchSchema(cmd.Context(), cfg.Schema, logger, func() {
				if err := generate(cmd.Context(), cfg, logger); err != nil {
					logger.Error("generate failed", "error", err)
				}
			})
		},
	}
	cmd.Flags().StringP("target", "o", "", "Output directory of the generated package")
	cmd.Flags().String("package", "", "Output package name (default: base name of the target)")
	cmd.Flags().String("header", "", "Header comment of generated files")
	cmd.Flags().Int("workers", 0, "Parallel file generators (default: GOMAXPROCS)")
	cmd.Flags().StringSlice("features", nil, "Features to enable (snapshot, schema)")
	cmd.Flags().Bool("fatal-assertions", false, "Generated code panics on invariant violations")
	cmd.Flags().Bool("last-pk-wins", false, "Let the last PRIMARY KEY column of a type win")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Regenerate when the schema changes")
	return cmd
}

func generate(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	g, err := buildGraph(cfg, logger)
	if err != nil {
		return problems(err)
	}
	return sql.Generate(ctx, g)
}

// watchSchema calls fn after each change of the schema files at path until
// ctx is done.
func watchSchema(ctx context.Context, path string, logger *slog.Logger, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Info("watching for changes", "path", path)

	var (
		timer *time.Timer
		fire  = make(chan struct{}, 1)
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event, path) {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			fn()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// relevant reports whether event changes a schema file of path.
func relevant(event fsnotify.Event, path string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Clean(event.Name) == filepath.Clean(path) {
		return true
	}
	return load.IsSchemaFile(event.Name) && filepath.Dir(event.Name) == filepath.Clean(path)
}
