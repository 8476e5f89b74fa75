// Package orchestrator coordinates the full export pipeline: plugin
// resolution, configuration validation, data binding, and plugin execution,
// with per-entry failure isolation and a bounded worker pool.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ecoviz/go-exportgen/pkg/dataset"
	"github.com/ecoviz/go-exportgen/pkg/exportcfg"
	"github.com/ecoviz/go-exportgen/pkg/exporters"
	"github.com/ecoviz/go-exportgen/pkg/plugin"
	"github.com/ecoviz/go-exportgen/pkg/validation"
	"github.com/ecoviz/go-exportgen/pkg/widgets"
)

const maxDefaultWorkers = 4

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a plugin registry. Without it the orchestrator builds
// one carrying the built-in widgets and exporters.
func WithRegistry(registry *plugin.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithWorkers bounds how many entries run concurrently.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithValidationMode sets the unknown-key policy applied to every entry.
func WithValidationMode(mode validation.Mode) Option {
	return func(o *Orchestrator) {
		o.mode = mode
	}
}

// WithFragmentDir gives widget fragments a target path under dir so the
// output writer persists them. Without it fragments stay in-memory only.
func WithFragmentDir(dir string) Option {
	return func(o *Orchestrator) {
		o.fragmentDir = dir
	}
}

// WithExporterOptions forwards options to the built-in exporter registration
// the orchestrator performs when no registry is injected.
func WithExporterOptions(opts ...exporters.Option) Option {
	return func(o *Orchestrator) {
		o.exporterOpts = append(o.exporterOpts, opts...)
	}
}

// Orchestrator runs configured entries against a dataset mapping. A zero
// number of collaborators is filled in by New; the built-in plugins register
// on a fresh registry unless one is supplied.
type Orchestrator struct {
	registry      *plugin.Registry
	workers       int
	mode          validation.Mode
	fragmentDir   string
	exporterOpts  []exporters.Option
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		workers: defaultWorkers(),
		mode:    validation.Strict,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n > maxDefaultWorkers {
		n = maxDefaultWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (o *Orchestrator) applyDefaults() {
	if o.registry != nil {
		return
	}
	registry := plugin.NewRegistry()
	if err := widgets.RegisterBuiltins(registry); err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: register widgets: %w", err)
		return
	}
	if err := exporters.RegisterBuiltins(registry, o.exporterOpts...); err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: register exporters: %w", err)
		return
	}
	o.registry = registry
}

// Run executes every entry against mapping and returns the per-entry
// results in declared order. Entry failures land in their result slot;
// Run itself errors only when a collaborator is unusable.
func (o *Orchestrator) Run(ctx context.Context, entries []exportcfg.Entry, mapping dataset.Mapping) (*ExportRun, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: plugin registry is nil")
	}
	if mapping == nil {
		return nil, errors.New("orchestrator: dataset mapping is nil")
	}

	run := &ExportRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Results:   make([]Result, len(entries)),
	}

	g := new(errgroup.Group)
	g.SetLimit(o.workers)

	dispatched := 0
	for i, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		i, entry := i, entry
		g.Go(func() error {
			run.Results[i] = o.process(ctx, i, entry, mapping)
			return nil
		})
		dispatched++
	}
	_ = g.Wait()

	for i := dispatched; i < len(entries); i++ {
		run.Results[i] = Result{
			Index:  i,
			Entry:  entries[i],
			Status: StatusCancelled,
			Err:    ctx.Err(),
		}
	}

	run.FinishedAt = time.Now()
	return run, nil
}

func (o *Orchestrator) process(ctx context.Context, index int, entry exportcfg.Entry, mapping dataset.Mapping) Result {
	result := Result{Index: index, Entry: entry}

	if err := ctx.Err(); err != nil {
		result.Status = StatusCancelled
		result.Err = err
		return result
	}

	desc, err := o.registry.Resolve(entry.Kind, entry.Plugin)
	if err != nil {
		return failed(result, err)
	}

	cfg, err := validation.Validate(desc, entry.Params, o.mode)
	if err != nil {
		return failed(result, err)
	}

	binding := dataset.BindingFor(desc, entry.DataSource, cfg)
	input, err := dataset.Resolve(binding, mapping)
	if err != nil {
		return failed(result, err)
	}

	artifact, err := o.invoke(ctx, entry, input, cfg)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			result.Status = StatusCancelled
			result.Err = err
			return result
		}
		return failed(result, err)
	}

	if artifact != nil && artifact.TargetPath == "" && o.fragmentDir != "" {
		artifact.TargetPath = filepath.Join(o.fragmentDir, fragmentName(entry.Plugin, index))
	}

	result.Status = StatusSuccess
	result.Artifact = artifact
	return result
}

// invoke runs the plugin body behind a recover so a panicking plugin takes
// down its own entry and nothing else.
func (o *Orchestrator) invoke(ctx context.Context, entry exportcfg.Entry, input plugin.Input, cfg plugin.Config) (artifact *plugin.Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifact = nil
			err = &PluginExecutionError{
				Kind:   entry.Kind,
				Plugin: entry.Plugin,
				Err:    fmt.Errorf("panic: %v", r),
			}
		}
	}()

	switch entry.Kind {
	case plugin.KindExporter:
		exporter, lookupErr := o.registry.Exporter(entry.Plugin)
		if lookupErr != nil {
			return nil, lookupErr
		}
		artifact, err = exporter.Export(ctx, input, cfg)
	default:
		widget, lookupErr := o.registry.Widget(entry.Plugin)
		if lookupErr != nil {
			return nil, lookupErr
		}
		artifact, err = widget.Render(ctx, input, cfg)
	}

	if err != nil && ctx.Err() == nil {
		err = &PluginExecutionError{Kind: entry.Kind, Plugin: entry.Plugin, Err: err}
	}
	return artifact, err
}

func failed(result Result, err error) Result {
	result.Status = StatusFailed
	result.Err = err
	return result
}

func fragmentName(pluginName string, index int) string {
	return fmt.Sprintf("%s-%d.html", pluginName, index)
}
