// Package widgets provides the built-in widget plugins: chart, gauge, grid,
// table, and map renderers that turn bound dataset fields into embeddable
// HTML fragments.
package widgets

import (
	"fmt"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
	"github.com/ecoviz/go-exportgen/pkg/render/template/gotemplate"
)

// Option customises the built-in widget set before registration.
type Option func(*config)

type config struct {
	templates rendertemplate.TemplateRenderer
}

// WithTemplateRenderer injects a custom template renderer, replacing the
// embedded template bundle.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// RegisterBuiltins wires every built-in widget into the registry, sharing one
// template engine across the set.
func RegisterBuiltins(reg *plugin.Registry, options ...Option) error {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".html"),
		)
		if err != nil {
			return fmt.Errorf("widgets: configure template renderer: %w", err)
		}
		cfg.templates = engine
	}

	builtins := []plugin.Widget{
		NewBarPlot(cfg.templates),
		NewDonutChart(cfg.templates),
		NewRadialGauge(cfg.templates),
		NewInfoGrid(cfg.templates),
		NewTableView(cfg.templates),
		NewInteractiveMap(cfg.templates),
	}
	for _, w := range builtins {
		if err := reg.RegisterWidget(w); err != nil {
			return fmt.Errorf("widgets: register %s: %w", w.Descriptor().Name, err)
		}
	}
	return nil
}
