package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesGenerated int
	FilesSkipped   int
	TotalBytes     int64
	RenderTime     time.Duration
	FormatTime     time.Duration
	WriteTime      time.Duration
}

// fileWriter renders, formats and writes generated files to a directory.
type fileWriter struct {
	dir string

	mu      sync.Mutex
	metrics WriterMetrics
}

func newFileWriter(dir string) *fileWriter {
	return &fileWriter{dir: dir}
}

// render renders f and formats it with goimports (removes unused imports
// and adds missing ones). If formatting fails, the unformatted source is
// written next to the target with an ".error" suffix.
func (w *fileWriter) render(f *jen.File, name string) ([]byte, error) {
	start := time.Now()
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError("render", name, "", err)
	}
	rendered := time.Now()

	fullPath := filepath.Join(w.dir, name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Errors intentionally ignored as we're already in error state.
		debugPath := fullPath + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return nil, NewGenerationError("format", name, fmt.Sprintf("unformatted written to %s", debugPath), err)
	}

	w.mu.Lock()
	w.metrics.RenderTime += rendered.Sub(start)
	w.metrics.FormatTime += time.Since(rendered)
	w.mu.Unlock()
	return formatted, nil
}

// write stores the formatted source of a file.
func (w *fileWriter) write(name string, b []byte) error {
	start := time.Now()
	if err := os.WriteFile(filepath.Join(w.dir, name), b, 0o644); err != nil {
		return NewGenerationError("write", name, "", err)
	}
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(b))
	w.metrics.WriteTime += time.Since(start)
	w.mu.Unlock()
	return nil
}

// skip records a file that was left as is.
func (w *fileWriter) skip() {
	w.mu.Lock()
	w.metrics.FilesSkipped++
	w.mu.Unlock()
}

// remove deletes a generated file if it exists.
func (w *fileWriter) remove(name string) error {
	err := os.Remove(filepath.Join(w.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return NewGenerationError("cleanup", name, "", err)
	}
	return nil
}

func (w *fileWriter) snapshot() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}
