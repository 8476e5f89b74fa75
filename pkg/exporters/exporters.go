// Package exporters provides the built-in exporter plugins: json_file,
// csv_file, xlsx_workbook, and html_page.
package exporters

import (
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
	"github.com/ecoviz/go-exportgen/pkg/render/template/gotemplate"
)

// Option configures builtin exporter registration.
type Option func(*options)

type options struct {
	templates   rendertemplate.TemplateRenderer
	themeConfig *theme.RendererConfig
	selector    theme.ThemeSelector
	themeName   string
	themeVar    string
}

// WithTemplateRenderer overrides the page template engine used by html_page.
func WithTemplateRenderer(templates rendertemplate.TemplateRenderer) Option {
	return func(o *options) {
		o.templates = templates
	}
}

// WithThemeConfig hands html_page an already-resolved theme configuration.
func WithThemeConfig(cfg *theme.RendererConfig) Option {
	return func(o *options) {
		o.themeConfig = cfg
	}
}

// WithThemeSelector resolves name/variant through a go-theme selector during
// registration and passes the resulting configuration to html_page.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *options) {
		o.selector = selector
		o.themeName = name
		o.themeVar = variant
	}
}

// RegisterBuiltins registers every built-in exporter on reg.
func RegisterBuiltins(reg *plugin.Registry, opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".html"),
		)
		if err != nil {
			return fmt.Errorf("exporters: build template engine: %w", err)
		}
		o.templates = engine
	}

	themeConfig := o.themeConfig
	if themeConfig == nil && o.selector != nil {
		selection, err := o.selector.Select(o.themeName, o.themeVar)
		if err != nil {
			return fmt.Errorf("exporters: select theme %q: %w", o.themeName, err)
		}
		themeConfig = rendererConfigFromSelection(selection)
	}

	for _, exporter := range []plugin.Exporter{
		NewJSONFile(),
		NewCSVFile(),
		NewXLSXWorkbook(),
		NewHTMLPage(o.templates, themeConfig),
	} {
		if err := reg.RegisterExporter(exporter); err != nil {
			return err
		}
	}
	return nil
}
