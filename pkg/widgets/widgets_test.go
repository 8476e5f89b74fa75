package widgets

import (
	"context"
	"strings"
	"testing"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
	"github.com/ecoviz/go-exportgen/pkg/render/template/gotemplate"
)

func newTestEngine(t *testing.T) rendertemplate.TemplateRenderer {
	t.Helper()
	engine, err := gotemplate.New(
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithExtension(".html"),
	)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return engine
}

func TestRegisterBuiltins(t *testing.T) {
	reg := plugin.NewRegistry()
	if err := RegisterBuiltins(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, name := range []string{"bar_plot", "donut_chart", "radial_gauge", "info_grid", "table_view", "interactive_map"} {
		if !reg.Has(plugin.KindWidget, name) {
			t.Fatalf("builtin %q not registered", name)
		}
	}

	desc, err := reg.Resolve(plugin.KindWidget, "interactive_map")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if desc.Shape != plugin.ShapeGeometry {
		t.Fatalf("interactive_map must declare geometry shape, got %s", desc.Shape)
	}
}

func TestBarPlot_BindsPairsInOrder(t *testing.T) {
	w := NewBarPlot(newTestEngine(t))
	input := plugin.Input{
		Source: "dbh_distribution",
		Shape:  plugin.ShapeFlat,
		Record: plugin.Record{
			"bins":   []any{0.0, 10.0, 20.0},
			"counts": []any{5.0, 3.0, 1.0},
		},
	}
	cfg := plugin.NewConfig(map[string]any{
		"x_field": "bins",
		"y_field": "counts",
		"title":   "DBH distribution",
		"color":   "#2d8a4e",
		"sort":    "none",
	}, nil)

	artifact, err := w.Render(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if artifact.Type != plugin.ArtifactHTMLFragment {
		t.Fatalf("artifact type: %s", artifact.Type)
	}

	html := string(artifact.Payload)
	if got := strings.Count(html, "<rect"); got != 3 {
		t.Fatalf("expected 3 bars, found %d:\n%s", got, html)
	}
	for _, pair := range []string{"0: 5", "10: 3", "20: 1"} {
		if !strings.Contains(html, pair) {
			t.Fatalf("missing bound pair %q:\n%s", pair, html)
		}
	}
	if strings.Index(html, "0: 5") > strings.Index(html, "20: 1") {
		t.Fatalf("pairs must render in dataset order")
	}

	again, err := w.Render(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("re-render: %v", err)
	}
	if string(again.Payload) != html {
		t.Fatalf("rendering must be deterministic")
	}
}

func TestBarPlot_LengthMismatch(t *testing.T) {
	w := NewBarPlot(newTestEngine(t))
	input := plugin.Input{
		Shape: plugin.ShapeFlat,
		Record: plugin.Record{
			"bins":   []any{0.0, 10.0},
			"counts": []any{5.0},
		},
	}
	cfg := plugin.NewConfig(map[string]any{"x_field": "bins", "y_field": "counts"}, nil)

	if _, err := w.Render(context.Background(), input, cfg); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestDonutChart_Shares(t *testing.T) {
	w := NewDonutChart(newTestEngine(t))
	input := plugin.Input{
		Source: "species_shares",
		Shape:  plugin.ShapeFlat,
		Record: plugin.Record{
			"species": []any{"Araucaria", "Agathis"},
			"share":   []any{3.0, 1.0},
		},
	}
	cfg := plugin.NewConfig(map[string]any{
		"label_field": "species",
		"value_field": "share",
		"hole":        0.55,
	}, nil)

	artifact, err := w.Render(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(artifact.Payload)
	if !strings.Contains(html, "75.0%") || !strings.Contains(html, "25.0%") {
		t.Fatalf("expected 75/25 split:\n%s", html)
	}
}

func TestRadialGauge_NeedlePosition(t *testing.T) {
	w := NewRadialGauge(newTestEngine(t))
	input := plugin.Input{
		Shape:  plugin.ShapeFlat,
		Record: plugin.Record{"mean": 50.0},
	}
	cfg := plugin.NewConfig(map[string]any{
		"value_field": "mean",
		"max_value":   100.0,
		"min_value":   0.0,
		"units":       "cm",
	}, nil)

	artifact, err := w.Render(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(artifact.Payload)
	// Midpoint puts the needle straight up.
	if !strings.Contains(html, `x2="100.00"`) || !strings.Contains(html, `y2="30.00"`) {
		t.Fatalf("needle not at midpoint:\n%s", html)
	}
	if !strings.Contains(html, "50 cm") {
		t.Fatalf("value and units missing:\n%s", html)
	}
}

func TestRadialGauge_BadBounds(t *testing.T) {
	w := NewRadialGauge(newTestEngine(t))
	input := plugin.Input{Shape: plugin.ShapeFlat, Record: plugin.Record{"mean": 10.0}}
	cfg := plugin.NewConfig(map[string]any{"value_field": "mean", "max_value": 0.0, "min_value": 0.0}, nil)

	if _, err := w.Render(context.Background(), input, cfg); err == nil {
		t.Fatalf("expected error when max does not exceed min")
	}
}

func TestInfoGrid_SanitizesMarkup(t *testing.T) {
	w := NewInfoGrid(newTestEngine(t))
	input := plugin.Input{
		Shape: plugin.ShapeFlat,
		Record: plugin.Record{
			"species":  "<em>Araucaria columnaris</em><script>alert(1)</script>",
			"coverage": 0.42,
		},
	}
	cfg := plugin.NewConfig(map[string]any{
		"fields": []any{
			map[string]any{"label": "Species", "value": "species"},
			map[string]any{"label": "Coverage", "value": "coverage", "format": "percent"},
		},
		"columns": 2.0,
	}, nil)

	artifact, err := w.Render(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(artifact.Payload)
	if !strings.Contains(html, "<em>Araucaria columnaris</em>") {
		t.Fatalf("benign markup must survive:\n%s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tags must be stripped:\n%s", html)
	}
	if !strings.Contains(html, "42.0 %") {
		t.Fatalf("percent formatting missing:\n%s", html)
	}
}

func TestTableView_PadsShortColumns(t *testing.T) {
	w := NewTableView(newTestEngine(t))
	input := plugin.Input{
		Shape: plugin.ShapeFlat,
		Record: plugin.Record{
			"species": []any{"Araucaria", "Agathis", "Nothofagus"},
			"count":   []any{12.0, 4.0},
		},
	}
	cfg := plugin.NewConfig(map[string]any{
		"columns": []any{
			map[string]any{"field": "species", "header": "Species"},
			map[string]any{"field": "count", "header": "Count"},
		},
		"page_size": 25.0,
	}, nil)

	artifact, err := w.Render(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(artifact.Payload)
	if got := strings.Count(html, "<tr>") - 1; got != 3 {
		t.Fatalf("expected 3 body rows, got %d:\n%s", got, html)
	}
	if !strings.Contains(html, "Nothofagus") {
		t.Fatalf("longest column must drive row count:\n%s", html)
	}
}

func TestInteractiveMap_EmbedsGeoJSON(t *testing.T) {
	w := NewInteractiveMap(newTestEngine(t))
	input := plugin.Input{
		Source: "plot_locations",
		Shape:  plugin.ShapeGeometry,
		Features: []plugin.Feature{
			{
				Geometry:   map[string]any{"type": "Point", "coordinates": []any{166.45, -22.27}},
				Properties: map[string]any{"name": "Plot A"},
			},
		},
	}
	cfg := plugin.NewConfig(map[string]any{
		"zoom":   9.0,
		"center": []any{166.5, -22.2},
	}, nil)

	artifact, err := w.Render(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(artifact.Payload)
	if !strings.Contains(html, `data-zoom="9"`) {
		t.Fatalf("zoom attribute missing:\n%s", html)
	}
	if !strings.Contains(html, `data-center="166.50,-22.20"`) {
		t.Fatalf("center attribute missing:\n%s", html)
	}
	if !strings.Contains(html, `"FeatureCollection"`) || !strings.Contains(html, `"Plot A"`) {
		t.Fatalf("geojson payload missing:\n%s", html)
	}
}

func TestInteractiveMap_GeometryFieldOverride(t *testing.T) {
	w := NewInteractiveMap(newTestEngine(t))
	input := plugin.Input{
		Source: "plot_locations",
		Shape:  plugin.ShapeGeometry,
		Features: []plugin.Feature{
			{
				Properties: map[string]any{
					"name":     "Plot A",
					"location": map[string]any{"type": "Point", "coordinates": []any{166.45, -22.27}},
				},
			},
		},
	}
	cfg := plugin.NewConfig(map[string]any{"geometry_field": "location"}, nil)

	artifact, err := w.Render(context.Background(), input, cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(artifact.Payload)
	if !strings.Contains(html, `166.45`) {
		t.Fatalf("geometry not taken from the location property:\n%s", html)
	}
	if strings.Contains(html, `"location"`) {
		t.Fatalf("geometry property must not leak into feature properties:\n%s", html)
	}

	// A missing override property is a per-feature configuration error.
	cfg = plugin.NewConfig(map[string]any{"geometry_field": "footprint"}, nil)
	if _, err := w.Render(context.Background(), input, cfg); err == nil {
		t.Fatal("expected an error for a feature without the footprint property")
	}
}
