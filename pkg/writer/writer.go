// Package writer persists export run artifacts to the filesystem. Each
// artifact writes independently; one failed write never blocks siblings.
package writer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ecoviz/go-exportgen/pkg/orchestrator"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteError reports a single artifact that could not be persisted.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writer: write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Summary tallies one Flush. Skipped covers entries without a writable
// artifact: failures, cancellations, and in-memory fragments with no target.
type Summary struct {
	Written int
	Skipped int
	Failed  []*WriteError
}

// Option customises the writer.
type Option func(*Writer)

// WithBaseDir roots every relative artifact path under dir.
func WithBaseDir(dir string) Option {
	return func(w *Writer) {
		w.baseDir = dir
	}
}

// Writer persists artifacts. The zero value writes paths as-is.
type Writer struct {
	baseDir string
}

// New constructs a Writer applying any provided options.
func New(options ...Option) *Writer {
	w := &Writer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Flush writes every successful artifact of run, replacing whatever a prior
// run left at the same paths. Per-artifact failures are collected; Flush
// itself errors only on a nil run.
func (w *Writer) Flush(run *orchestrator.ExportRun) (Summary, error) {
	if run == nil {
		return Summary{}, errors.New("writer: run is nil")
	}

	var summary Summary
	for _, result := range run.Results {
		if result.Status != orchestrator.StatusSuccess || result.Artifact == nil || result.Artifact.TargetPath == "" {
			summary.Skipped++
			continue
		}

		path := result.Artifact.TargetPath
		if w.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(w.baseDir, path)
		}

		if err := writeArtifact(path, result.Artifact.Payload); err != nil {
			summary.Failed = append(summary.Failed, &WriteError{Path: path, Err: err})
			continue
		}
		summary.Written++
	}
	return summary, nil
}

func writeArtifact(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	return os.WriteFile(path, payload, filePerm)
}
