package widgets

import (
	"context"
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
)

// TableView renders column-parallel array fields as an HTML table.
type TableView struct {
	templates rendertemplate.TemplateRenderer
	sanitizer *bluemonday.Policy
}

// NewTableView constructs the table_view widget.
func NewTableView(templates rendertemplate.TemplateRenderer) *TableView {
	return &TableView{
		templates: templates,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (w *TableView) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "table_view",
		Kind:  plugin.KindWidget,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{
				Name:     "columns",
				Type:     plugin.FieldTypeArray,
				Required: true,
				Binds:    plugin.BindObjectList,
				BindKey:  "field",
				Elem: []plugin.FieldSpec{
					{Name: "field", Type: plugin.FieldTypeString, Required: true},
					{Name: "header", Type: plugin.FieldTypeString, Required: true},
				},
			},
			{Name: "title", Type: plugin.FieldTypeString},
			{Name: "page_size", Type: plugin.FieldTypeNumber, Default: 25},
		},
	}
}

func (w *TableView) Render(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	specs := cfg.Objects("columns")
	headers := make([]string, len(specs))
	columns := make([][]any, len(specs))
	rowCount := 0
	for i, spec := range specs {
		field, _ := spec["field"].(string)
		header, _ := spec["header"].(string)
		headers[i] = header

		items, err := arrayField(input, field)
		if err != nil {
			return nil, fmt.Errorf("table_view: %w", err)
		}
		columns[i] = items
		if len(items) > rowCount {
			rowCount = len(items)
		}
	}

	rows := make([][]string, rowCount)
	for r := 0; r < rowCount; r++ {
		row := make([]string, len(columns))
		for c, column := range columns {
			if r < len(column) {
				row[c] = w.sanitizer.Sanitize(formatValue(column[r]))
			}
		}
		rows[r] = row
	}

	view := map[string]any{
		"title":     cfg.String("title", ""),
		"headers":   headers,
		"rows":      rows,
		"page_size": cfg.Int("page_size", 25),
		"source":    input.Source,
	}

	html, err := w.templates.RenderTemplate("templates/table_view", view)
	if err != nil {
		return nil, fmt.Errorf("table_view: render template: %w", err)
	}
	return &plugin.Artifact{Type: plugin.ArtifactHTMLFragment, Payload: []byte(html)}, nil
}
