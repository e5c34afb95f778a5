package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotFile is the name of the snapshot file in the target directory.
const SnapshotFile = ".sqlitegen.snapshot"

// snapshotVersion is bumped when the layout of generated files changes,
// which invalidates all recorded digests.
const snapshotVersion = 1

// Snapshot records the generated file and its digest for every type of the
// last generation run.
type Snapshot struct {
	Version int                      `msgpack:"version"`
	Types   map[string]SnapshotEntry `msgpack:"types"`
}

// SnapshotEntry is the record of one type.
type SnapshotEntry struct {
	File      string    `msgpack:"file"`
	Digest    string    `msgpack:"digest"`
	Artifacts Artifacts `msgpack:"artifacts"`
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Version: snapshotVersion, Types: make(map[string]SnapshotEntry)}
}

// ReadSnapshot reads the snapshot of the given directory. A missing
// snapshot, or one written by another version, reads as empty.
func ReadSnapshot(dir string) (*Snapshot, error) {
	b, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	if errors.Is(err, fs.ErrNotExist) {
		return NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	s := NewSnapshot()
	if err := msgpack.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return NewSnapshot(), nil
	}
	if s.Types == nil {
		s.Types = make(map[string]SnapshotEntry)
	}
	return s, nil
}

// Write stores the snapshot in the given directory.
func (s *Snapshot) Write(dir string) error {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Unchanged reports whether the type was recorded with the same digest and
// its file still exists in dir.
func (s *Snapshot) Unchanged(dir, name, digest string) bool {
	e, ok := s.Types[name]
	if !ok || e.Digest != digest {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, e.File))
	return err == nil
}

// Record sets the entry of a type.
func (s *Snapshot) Record(t *Type, digest string) {
	s.Types[t.Name] = SnapshotEntry{
		File:      t.File(),
		Digest:    digest,
		Artifacts: t.Artifacts(),
	}
}

// Stale returns the files of recorded types that are no longer in the graph,
// sorted by name. Files still generated for another type are kept.
func (s *Snapshot) Stale(g *Graph) []string {
	current := make(map[string]bool, len(g.Nodes))
	for _, t := range g.Nodes {
		current[t.File()] = true
	}
	var files []string
	for name, e := range s.Types {
		if _, ok := g.Type(name); !ok && !current[e.File] {
			files = append(files, e.File)
		}
	}
	sort.Strings(files)
	return files
}

// Prune removes the entries of types that are not in the graph.
func (s *Snapshot) Prune(g *Graph) {
	for name := range s.Types {
		if _, ok := g.Type(name); !ok {
			delete(s.Types, name)
		}
	}
}

// Digest returns the hex encoded SHA-256 digest of b.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
