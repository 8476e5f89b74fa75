package widgets

import (
	"context"
	"fmt"
	"math"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
)

// RadialGauge renders one scalar value as a semicircular gauge.
type RadialGauge struct {
	templates rendertemplate.TemplateRenderer
}

// NewRadialGauge constructs the radial_gauge widget.
func NewRadialGauge(templates rendertemplate.TemplateRenderer) *RadialGauge {
	return &RadialGauge{templates: templates}
}

func (w *RadialGauge) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "radial_gauge",
		Kind:  plugin.KindWidget,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{Name: "value_field", Type: plugin.FieldTypeString, Required: true, Binds: plugin.BindField},
			{Name: "max_value", Type: plugin.FieldTypeNumber, Required: true},
			{Name: "min_value", Type: plugin.FieldTypeNumber, Default: 0},
			{Name: "units", Type: plugin.FieldTypeString},
			{Name: "title", Type: plugin.FieldTypeString},
		},
	}
}

func (w *RadialGauge) Render(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	field := cfg.String("value_field", "")
	value, ok := numberOf(input.Record[field])
	if !ok {
		return nil, fmt.Errorf("radial_gauge: field %q is not a number", field)
	}

	min := cfg.Number("min_value", 0)
	max := cfg.Number("max_value", 0)
	if max <= min {
		return nil, fmt.Errorf("radial_gauge: max_value %v must exceed min_value %v", max, min)
	}

	ratio := (value - min) / (max - min)
	ratio = math.Max(0, math.Min(1, ratio))

	// Needle sweeps the upper semicircle from 180° (min) to 0° (max).
	angle := math.Pi * (1 - ratio)
	needleX := 100 + 70*math.Cos(angle)
	needleY := 100 - 70*math.Sin(angle)

	semicircle := math.Pi * 80
	view := map[string]any{
		"title":    cfg.String("title", ""),
		"units":    cfg.String("units", ""),
		"value":    formatValue(value),
		"min":      formatValue(min),
		"max":      formatValue(max),
		"needle_x": formatCoord(needleX),
		"needle_y": formatCoord(needleY),
		"fill":     formatCoord(ratio*semicircle) + " " + formatCoord(semicircle),
		"source":   input.Source,
	}

	html, err := w.templates.RenderTemplate("templates/radial_gauge", view)
	if err != nil {
		return nil, fmt.Errorf("radial_gauge: render template: %w", err)
	}
	return &plugin.Artifact{Type: plugin.ArtifactHTMLFragment, Payload: []byte(html)}, nil
}
