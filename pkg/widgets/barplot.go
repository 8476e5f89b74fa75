package widgets

import (
	"context"
	"fmt"
	"sort"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
)

const (
	barPlotHeight   = 180.0
	barPlotBarWidth = 36
	barPlotGap      = 10
)

// BarPlot renders a vertical bar chart from paired x/y array fields.
type BarPlot struct {
	templates rendertemplate.TemplateRenderer
}

// NewBarPlot constructs the bar_plot widget.
func NewBarPlot(templates rendertemplate.TemplateRenderer) *BarPlot {
	return &BarPlot{templates: templates}
}

func (w *BarPlot) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "bar_plot",
		Kind:  plugin.KindWidget,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{Name: "x_field", Type: plugin.FieldTypeString, Required: true, Binds: plugin.BindField},
			{Name: "y_field", Type: plugin.FieldTypeString, Required: true, Binds: plugin.BindField},
			{Name: "title", Type: plugin.FieldTypeString},
			{Name: "color", Type: plugin.FieldTypeString, Default: "#2d8a4e"},
			{Name: "sort", Type: plugin.FieldTypeString, Default: "none", Enum: []string{"none", "asc", "desc"}},
		},
	}
}

type bar struct {
	Label string
	Value float64
	Text  string
	X     int
	// Y and Height are pre-formatted so SVG coordinates render identically
	// across runs.
	Y      string
	Height string
}

func (w *BarPlot) Render(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	xField := cfg.String("x_field", "")
	yField := cfg.String("y_field", "")

	labels, ok := labelsOf(input.Record[xField])
	if !ok {
		return nil, fmt.Errorf("bar_plot: field %q is not an array", xField)
	}
	values, ok := numbersOf(input.Record[yField])
	if !ok {
		return nil, fmt.Errorf("bar_plot: field %q is not a numeric array", yField)
	}
	if len(labels) != len(values) {
		return nil, fmt.Errorf("bar_plot: %q and %q lengths differ (%d vs %d)", xField, yField, len(labels), len(values))
	}

	bars := make([]bar, len(values))
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	for i, v := range values {
		bars[i] = bar{Label: labels[i], Value: v, Text: formatValue(v)}
	}

	switch cfg.String("sort", "none") {
	case "asc":
		sort.SliceStable(bars, func(i, j int) bool { return bars[i].Value < bars[j].Value })
	case "desc":
		sort.SliceStable(bars, func(i, j int) bool { return bars[i].Value > bars[j].Value })
	}

	items := make([]map[string]any, len(bars))
	for i := range bars {
		height := 0.0
		if max > 0 {
			height = bars[i].Value / max * barPlotHeight
		}
		bars[i].Height = formatCoord(height)
		bars[i].Y = formatCoord(barPlotHeight - height)
		bars[i].X = i * (barPlotBarWidth + barPlotGap)
		items[i] = map[string]any{
			"label":  bars[i].Label,
			"text":   bars[i].Text,
			"x":      bars[i].X,
			"y":      bars[i].Y,
			"height": bars[i].Height,
		}
	}

	view := map[string]any{
		"title":     cfg.String("title", ""),
		"color":     cfg.String("color", "#2d8a4e"),
		"bars":      items,
		"width":     len(bars) * (barPlotBarWidth + barPlotGap),
		"height":    int(barPlotHeight),
		"bar_width": barPlotBarWidth,
		"source":    input.Source,
	}

	html, err := w.templates.RenderTemplate("templates/bar_plot", view)
	if err != nil {
		return nil, fmt.Errorf("bar_plot: render template: %w", err)
	}
	return &plugin.Artifact{Type: plugin.ArtifactHTMLFragment, Payload: []byte(html)}, nil
}
