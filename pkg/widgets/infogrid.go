package widgets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
)

// InfoGrid renders labelled record values as a definition grid. Dataset
// values may carry markup (species names in italics, links to references);
// they pass through a UGC sanitizer before landing in the fragment.
type InfoGrid struct {
	templates rendertemplate.TemplateRenderer
	sanitizer *bluemonday.Policy
}

// NewInfoGrid constructs the info_grid widget.
func NewInfoGrid(templates rendertemplate.TemplateRenderer) *InfoGrid {
	return &InfoGrid{
		templates: templates,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (w *InfoGrid) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "info_grid",
		Kind:  plugin.KindWidget,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{
				Name:     "fields",
				Type:     plugin.FieldTypeArray,
				Required: true,
				Binds:    plugin.BindObjectList,
				BindKey:  "value",
				Elem: []plugin.FieldSpec{
					{Name: "label", Type: plugin.FieldTypeString, Required: true},
					{Name: "value", Type: plugin.FieldTypeString, Required: true},
					{Name: "format", Type: plugin.FieldTypeString, Enum: []string{"text", "number", "percent"}},
				},
			},
			{Name: "title", Type: plugin.FieldTypeString},
			{Name: "columns", Type: plugin.FieldTypeNumber, Default: 2},
		},
	}
}

func (w *InfoGrid) Render(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	specs := cfg.Objects("fields")
	cells := make([]map[string]any, 0, len(specs))
	for _, spec := range specs {
		field, _ := spec["value"].(string)
		label, _ := spec["label"].(string)
		format, _ := spec["format"].(string)

		rendered, err := w.formatCell(input.Record[field], format)
		if err != nil {
			return nil, fmt.Errorf("info_grid: field %q: %w", field, err)
		}
		cells = append(cells, map[string]any{"label": label, "value": rendered})
	}

	view := map[string]any{
		"title":   cfg.String("title", ""),
		"columns": cfg.Int("columns", 2),
		"cells":   cells,
		"source":  input.Source,
	}

	html, err := w.templates.RenderTemplate("templates/info_grid", view)
	if err != nil {
		return nil, fmt.Errorf("info_grid: render template: %w", err)
	}
	return &plugin.Artifact{Type: plugin.ArtifactHTMLFragment, Payload: []byte(html)}, nil
}

func (w *InfoGrid) formatCell(value any, format string) (string, error) {
	switch format {
	case "number":
		f, ok := numberOf(value)
		if !ok {
			return "", fmt.Errorf("format number needs a numeric value, got %T", value)
		}
		return formatValue(f), nil
	case "percent":
		f, ok := numberOf(value)
		if !ok {
			return "", fmt.Errorf("format percent needs a numeric value, got %T", value)
		}
		return strconv.FormatFloat(f*100, 'f', 1, 64) + " %", nil
	default:
		return w.sanitizer.Sanitize(formatValue(value)), nil
	}
}
