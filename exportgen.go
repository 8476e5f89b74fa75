// Package exportgen turns a declarative configuration plus a dataset mapping
// into rendered widgets and exported files. The root package re-exports the
// common types and offers single-call entry points; the pkg tree carries the
// full surface.
package exportgen

import (
	"context"

	"github.com/ecoviz/go-exportgen/pkg/dataset"
	"github.com/ecoviz/go-exportgen/pkg/exportcfg"
	"github.com/ecoviz/go-exportgen/pkg/orchestrator"
	"github.com/ecoviz/go-exportgen/pkg/validation"
	"github.com/ecoviz/go-exportgen/pkg/writer"
)

// Entry is one configured widget or exporter invocation.
type Entry = exportcfg.Entry

// Document is a parsed export configuration.
type Document = exportcfg.Document

// Mapping binds data source names to datasets.
type Mapping = dataset.Mapping

// ExportRun is the per-entry outcome of one orchestrator invocation.
type ExportRun = orchestrator.ExportRun

// Result is one entry's outcome within an ExportRun.
type Result = orchestrator.Result

// Summary tallies one writer flush.
type Summary = writer.Summary

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so quick-start callers need a single import.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewWriter exposes the output writer constructor.
func NewWriter(options ...writer.Option) *writer.Writer {
	return writer.New(options...)
}

// WithWorkers bounds orchestrator concurrency.
func WithWorkers(n int) orchestrator.Option {
	return orchestrator.WithWorkers(n)
}

// WithValidationMode sets the unknown-key policy for entry parameters.
func WithValidationMode(mode validation.Mode) orchestrator.Option {
	return orchestrator.WithValidationMode(mode)
}

// Export loads the configuration from src, runs every entry against mapping,
// and returns the run. It is the simplest entry point for callers that manage
// persistence themselves.
func Export(ctx context.Context, src exportcfg.Source, mapping dataset.Mapping, options ...orchestrator.Option) (*ExportRun, error) {
	doc, err := exportcfg.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(options...).Run(ctx, doc.Entries(), mapping)
}

// ExportAndFlush runs Export and persists the resulting artifacts under
// baseDir. The run reports per-entry outcomes; the summary reports writes.
func ExportAndFlush(ctx context.Context, src exportcfg.Source, mapping dataset.Mapping, baseDir string, options ...orchestrator.Option) (*ExportRun, Summary, error) {
	run, err := Export(ctx, src, mapping, options...)
	if err != nil {
		return nil, Summary{}, err
	}
	summary, err := writer.New(writer.WithBaseDir(baseDir)).Flush(run)
	if err != nil {
		return run, Summary{}, err
	}
	return run, summary, nil
}
