package gen

import (
	"io"
	"log/slog"
	"runtime"
)

// defaultHeader is the first line of every generated file.
const defaultHeader = "Code generated by sqlitegen. DO NOT EDIT."

// Config holds the global codegen configuration shared by all types.
type Config struct {
	// Target is the output directory of the generated code.
	Target string
	// Package is the Go package name of the generated code.
	// Defaults to the base name of Target.
	Package string
	// Header is the header comment of generated files.
	Header string
	// Workers bounds the number of files generated in parallel.
	Workers int
	// Logger receives generation progress. Nil discards it.
	Logger *slog.Logger
	// FatalAssertions makes generated operations panic on invariant
	// violations (unset key on update, more than one row affected)
	// instead of returning sqlitegen.ErrInvalidKey or a *ConsistencyError.
	FatalAssertions bool
	// LastPrimaryKeyWins keeps the last of several fields classified as
	// primary key instead of failing with ErrDuplicatePK.
	LastPrimaryKeyWins bool
	// Features holds a list of features to enable.
	Features []Feature
}

// OutputConfig groups the settings that affect where and how files are written.
type OutputConfig struct {
	Target  string
	Package string
	Header  string
}

// Output returns the output settings.
func (c *Config) Output() OutputConfig {
	return OutputConfig{
		Target:  c.Target,
		Package: c.Package,
		Header:  c.Header,
	}
}

// DefaultConfig returns a config with the default header and one worker per CPU.
func DefaultConfig() *Config {
	return &Config{
		Header:  defaultHeader,
		Workers: runtime.GOMAXPROCS(0),
	}
}

// FeatureEnabled reports if the given feature name is enabled.
// It returns an error for names that are not declared features.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range allFeatures {
		if name != f.Name {
			continue
		}
		if f.Default {
			return true, nil
		}
		return c.HasFeature(name), nil
	}
	return false, NewConfigError("Feature", name, "unexpected feature name")
}

// HasFeature reports if the feature is in the enabled list.
func (c *Config) HasFeature(name string) bool {
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}

// logger returns the configured logger or a discarding one.
func (c *Config) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}
