package exporters

import (
	"context"
	"fmt"
	"path/filepath"

	theme "github.com/goliatone/go-theme"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
)

// HTMLPage renders the bound record as a standalone themed HTML document.
type HTMLPage struct {
	templates   rendertemplate.TemplateRenderer
	themeConfig *theme.RendererConfig
}

// NewHTMLPage constructs the html_page exporter. themeConfig may be nil for
// an unthemed page.
func NewHTMLPage(templates rendertemplate.TemplateRenderer, themeConfig *theme.RendererConfig) *HTMLPage {
	return &HTMLPage{templates: templates, themeConfig: themeConfig}
}

func (e *HTMLPage) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "html_page",
		Kind:  plugin.KindExporter,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{Name: "output_dir", Type: plugin.FieldTypeString, Required: true},
			{Name: "filename", Type: plugin.FieldTypeString, Default: "index.html"},
			{Name: "title", Type: plugin.FieldTypeString, Default: "Export"},
			{Name: "template", Type: plugin.FieldTypeString},
			{Name: "fields", Type: plugin.FieldTypeArray, Binds: plugin.BindFieldList},
		},
	}
}

func (e *HTMLPage) Export(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := outputDirOf("html_page", cfg)
	if err != nil {
		return nil, err
	}

	columns, _ := tableOf(input.Record, cfg.Strings("fields"))
	rows := make([]map[string]any, len(columns))
	for i, col := range columns {
		rows[i] = map[string]any{
			"field": col.name,
			"value": cellValue(input.Record[col.name]),
		}
	}

	view := map[string]any{
		"title":  cfg.String("title", "Export"),
		"rows":   rows,
		"source": input.Source,
	}
	applyThemeView(view, e.themeConfig)

	name := cfg.String("template", "templates/page")
	html, err := e.templates.RenderTemplate(name, view)
	if err != nil {
		return nil, fmt.Errorf("html_page: render template %q: %w", name, err)
	}

	return &plugin.Artifact{
		Type:       plugin.ArtifactFile,
		Payload:    []byte(html),
		TargetPath: filepath.Join(dir, cfg.String("filename", "index.html")),
	}, nil
}
