package dataset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

func sampleMapping() Mapping {
	return Mapping{
		"dbh_distribution": Flat(plugin.Record{
			"bins":   []any{0.0, 10.0, 20.0},
			"counts": []any{5.0, 3.0, 1.0},
			"total":  9.0,
		}),
		"plot_locations": Geometry([]plugin.Feature{
			{
				Geometry:   map[string]any{"type": "Point", "coordinates": []any{166.45, -22.27}},
				Properties: map[string]any{"name": "Plot A", "species_count": 42.0, "elevation": 120.0},
			},
			{
				Geometry:   map[string]any{"type": "Point", "coordinates": []any{166.91, -22.09}},
				Properties: map[string]any{"name": "Plot B", "species_count": 17.0},
			},
		}),
	}
}

func TestBindingFor_CollectsDeclaredFields(t *testing.T) {
	desc := plugin.Descriptor{
		Name:  "bar_plot",
		Kind:  plugin.KindWidget,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{Name: "x_field", Type: plugin.FieldTypeString, Required: true, Binds: plugin.BindField},
			{Name: "y_field", Type: plugin.FieldTypeString, Required: true, Binds: plugin.BindField},
			{Name: "title", Type: plugin.FieldTypeString},
		},
	}
	cfg := plugin.NewConfig(map[string]any{
		"x_field": "bins",
		"y_field": "counts",
		"title":   "DBH distribution",
	}, nil)

	binding := BindingFor(desc, "dbh_distribution", cfg)
	want := Binding{Source: "dbh_distribution", Fields: []string{"bins", "counts"}, Shape: plugin.ShapeFlat}
	if diff := cmp.Diff(want, binding); diff != "" {
		t.Fatalf("binding mismatch (-want +got):\n%s", diff)
	}
}

func TestBindingFor_ObjectListAndFieldList(t *testing.T) {
	desc := plugin.Descriptor{
		Name:  "info_grid",
		Kind:  plugin.KindWidget,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{Name: "fields", Type: plugin.FieldTypeArray, Binds: plugin.BindObjectList, BindKey: "value"},
			{Name: "extras", Type: plugin.FieldTypeArray, Binds: plugin.BindFieldList},
		},
	}
	cfg := plugin.NewConfig(map[string]any{
		"fields": []any{
			map[string]any{"label": "Total", "value": "total"},
			map[string]any{"label": "Total again", "value": "total"},
		},
		"extras": []any{"counts"},
	}, nil)

	binding := BindingFor(desc, "dbh_distribution", cfg)
	if diff := cmp.Diff([]string{"counts", "total"}, binding.Fields); diff != "" {
		t.Fatalf("fields must dedupe and sort (-want +got):\n%s", diff)
	}
}

func TestResolve_FlatProjection(t *testing.T) {
	binding := Binding{Source: "dbh_distribution", Fields: []string{"bins", "counts"}, Shape: plugin.ShapeFlat}

	input, err := Resolve(binding, sampleMapping())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if input.Shape != plugin.ShapeFlat || input.Source != "dbh_distribution" {
		t.Fatalf("unexpected input identity: %+v", input)
	}

	want := plugin.Record{
		"bins":   []any{0.0, 10.0, 20.0},
		"counts": []any{5.0, 3.0, 1.0},
	}
	if diff := cmp.Diff(want, input.Record); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_WholeRecordWhenNoFieldsBound(t *testing.T) {
	binding := Binding{Source: "dbh_distribution", Shape: plugin.ShapeFlat}

	input, err := Resolve(binding, sampleMapping())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(input.Record) != 3 {
		t.Fatalf("expected full record, got %+v", input.Record)
	}
}

func TestResolve_MissingSource(t *testing.T) {
	_, err := Resolve(Binding{Source: "unknown", Shape: plugin.ShapeFlat}, sampleMapping())

	var missing *MissingDataSourceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDataSourceError, got %v", err)
	}
	if missing.Source != "unknown" {
		t.Fatalf("source: %q", missing.Source)
	}
}

func TestResolve_MissingField(t *testing.T) {
	binding := Binding{Source: "dbh_distribution", Fields: []string{"mean"}, Shape: plugin.ShapeFlat}

	_, err := Resolve(binding, sampleMapping())
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "mean" {
		t.Fatalf("field: %q", missing.Field)
	}
}

func TestResolve_ShapeMismatch(t *testing.T) {
	binding := Binding{Source: "plot_locations", Shape: plugin.ShapeFlat}

	_, err := Resolve(binding, sampleMapping())
	var shape *IncompatibleDataShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("expected IncompatibleDataShapeError, got %v", err)
	}
	if shape.Got != string(plugin.ShapeGeometry) || shape.Want != string(plugin.ShapeFlat) {
		t.Fatalf("unexpected shapes: %+v", shape)
	}
}

func TestResolve_GeometryProjection(t *testing.T) {
	binding := Binding{
		Source: "plot_locations",
		Fields: []string{"species_count"},
		Shape:  plugin.ShapeGeometry,
	}

	input, err := Resolve(binding, sampleMapping())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(input.Features) != 2 {
		t.Fatalf("feature count: %d", len(input.Features))
	}
	for _, feature := range input.Features {
		if feature.Geometry == nil {
			t.Fatalf("geometry must survive projection")
		}
		if _, ok := feature.Properties["name"]; ok {
			t.Fatalf("unbound property must be projected away: %+v", feature.Properties)
		}
	}

	// A property missing from every feature fails; sparse coverage passes.
	binding.Fields = []string{"elevation"}
	if _, err := Resolve(binding, sampleMapping()); err != nil {
		t.Fatalf("sparse property must resolve: %v", err)
	}
	binding.Fields = []string{"canopy_height"}
	var missing *MissingFieldError
	if _, err := Resolve(binding, sampleMapping()); !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError for absent property, got %v", err)
	}
}
