package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/syssam/sqlitegen/compiler/gen"
)

// Config file names searched in the working directory.
const (
	DefaultConfigFile = "sqlitegen.yaml"
	envPrefix         = "SQLITEGEN_"
)

// Config holds the settings of every command.
type Config struct {
	Schema          string   `koanf:"schema"`
	Target          string   `koanf:"target"`
	Package         string   `koanf:"package"`
	Header          string   `koanf:"header"`
	Workers         int      `koanf:"workers"`
	Features        []string `koanf:"features"`
	FatalAssertions bool     `koanf:"fatal_assertions"`
	LastPKWins      bool     `koanf:"last_pk_wins"`
	Database        string   `koanf:"database"`
	LogLevel        string   `koanf:"log_level"`
}

// LoadConfig loads the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"schema":    "schema",
		"target":    "models",
		"workers":   0,
		"database":  "sqlitegen.db",
		"log_level": "info",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// SQLITEGEN_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Options returns the generator options of the configuration.
func (c *Config) Options(logger *slog.Logger) []gen.Option {
	opts := []gen.Option{
		gen.WithTarget(c.Target),
		gen.WithLogger(logger),
		gen.WithFeatureNames(c.Features...),
	}
	if c.FatalAssertions {
		opts = append(opts, gen.WithFatalAssertions())
	}
	if c.LastPKWins {
		opts = append(opts, gen.WithLastPrimaryKeyWins())
	}
	if c.Package != "" {
		opts = append(opts, gen.WithPackage(c.Package))
	}
	if c.Header != "" {
		opts = append(opts, gen.WithHeader(c.Header))
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	return opts
}
