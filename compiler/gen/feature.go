package gen

import (
	"os"
	"path/filepath"
)

var (
	// FeatureSnapshot records a digest of every type's artifacts in the
	// target directory and skips writing types that did not change.
	FeatureSnapshot = Feature{
		Name:        "snapshot",
		Stage:       Beta,
		Default:     false,
		Description: "Incremental generation: stores artifact digests in " + SnapshotFile + " and skips unchanged types",
		cleanup: func(c *Config) error {
			return remove(c.Target, SnapshotFile)
		},
	}

	// FeatureSchema generates schema.go with CreateTables and
	// CreateLogTables helpers that run the DDL of every type.
	FeatureSchema = Feature{
		Name:        "schema",
		Stage:       Stable,
		Default:     false,
		Description: "Generates CreateTables and CreateLogTables helpers running the DDL of every type",
		cleanup: func(c *Config) error {
			return remove(c.Target, "schema.go")
		},
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureSnapshot,
		FeatureSchema,
	}
	// allFeatures includes all public and private features.
	allFeatures = AllFeatures
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are usable, but their output may change.
	Alpha

	// Beta features are documented and no breaking changes are expected.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature of the codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup used to cleanup all changes when a feature-flag is removed.
	// e.g. delete files from previous codegen runs.
	cleanup func(*Config) error
}

// FeatureByName returns the declared feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range allFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// cleanupFeatures removes the output of every disabled feature.
func cleanupFeatures(c *Config) error {
	for _, f := range allFeatures {
		if f.cleanup == nil {
			continue
		}
		if enabled, _ := c.FeatureEnabled(f.Name); enabled {
			continue
		}
		if err := f.cleanup(c); err != nil {
			return err
		}
	}
	return nil
}

// remove file (if exists) and its dir if it's empty.
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	infos, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		return os.Remove(dir)
	}
	return nil
}
