package widgets

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
)

const donutRadius = 60.0

// DonutChart renders proportional shares of a label/value field pair as an
// SVG donut.
type DonutChart struct {
	templates rendertemplate.TemplateRenderer
}

// NewDonutChart constructs the donut_chart widget.
func NewDonutChart(templates rendertemplate.TemplateRenderer) *DonutChart {
	return &DonutChart{templates: templates}
}

func (w *DonutChart) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "donut_chart",
		Kind:  plugin.KindWidget,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{Name: "label_field", Type: plugin.FieldTypeString, Required: true, Binds: plugin.BindField},
			{Name: "value_field", Type: plugin.FieldTypeString, Required: true, Binds: plugin.BindField},
			{Name: "title", Type: plugin.FieldTypeString},
			{Name: "hole", Type: plugin.FieldTypeNumber, Default: 0.55},
		},
	}
}


func (w *DonutChart) Render(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	labelField := cfg.String("label_field", "")
	valueField := cfg.String("value_field", "")

	labels, ok := labelsOf(input.Record[labelField])
	if !ok {
		return nil, fmt.Errorf("donut_chart: field %q is not an array", labelField)
	}
	values, ok := numbersOf(input.Record[valueField])
	if !ok {
		return nil, fmt.Errorf("donut_chart: field %q is not a numeric array", valueField)
	}
	if len(labels) != len(values) {
		return nil, fmt.Errorf("donut_chart: %q and %q lengths differ (%d vs %d)", labelField, valueField, len(labels), len(values))
	}

	total := 0.0
	for _, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("donut_chart: negative value %v in %q", v, valueField)
		}
		total += v
	}
	if total == 0 {
		return nil, fmt.Errorf("donut_chart: %q sums to zero", valueField)
	}

	circumference := 2 * math.Pi * donutRadius
	segments := make([]map[string]any, len(values))
	covered := 0.0
	for i, v := range values {
		share := v / total
		segments[i] = map[string]any{
			"label":   labels[i],
			"text":    formatValue(v),
			"percent": strconv.FormatFloat(share*100, 'f', 1, 64),
			"color":   paletteColor(i),
			"dash":    formatCoord(share*circumference) + " " + formatCoord(circumference),
			"offset":  formatCoord(-covered * circumference),
		}
		covered += share
	}

	hole := cfg.Number("hole", 0.55)
	if hole < 0 || hole >= 1 {
		return nil, fmt.Errorf("donut_chart: hole %v out of range [0, 1)", hole)
	}

	view := map[string]any{
		"title":    cfg.String("title", ""),
		"segments": segments,
		"radius":   int(donutRadius),
		"stroke":   formatCoord(donutRadius * (1 - hole)),
		"source":   input.Source,
	}

	html, err := w.templates.RenderTemplate("templates/donut_chart", view)
	if err != nil {
		return nil, fmt.Errorf("donut_chart: render template: %w", err)
	}
	return &plugin.Artifact{Type: plugin.ArtifactHTMLFragment, Payload: []byte(html)}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
