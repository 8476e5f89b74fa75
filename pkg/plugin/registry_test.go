package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubWidget struct {
	desc Descriptor
}

func (s stubWidget) Descriptor() Descriptor { return s.desc }

func (s stubWidget) Render(context.Context, Input, Config) (*Artifact, error) {
	return &Artifact{Type: ArtifactHTMLFragment}, nil
}

type stubExporter struct {
	desc Descriptor
}

func (s stubExporter) Descriptor() Descriptor { return s.desc }

func (s stubExporter) Export(context.Context, Input, Config) (*Artifact, error) {
	return &Artifact{Type: ArtifactJSON}, nil
}

func TestRegistry_DuplicateWidgetKeepsFirst(t *testing.T) {
	reg := NewRegistry()

	first := stubWidget{desc: Descriptor{Name: "bar_plot", Kind: KindWidget, Shape: ShapeFlat}}
	second := stubWidget{desc: Descriptor{
		Name:   "bar_plot",
		Kind:   KindWidget,
		Shape:  ShapeFlat,
		Schema: []FieldSpec{{Name: "title", Type: FieldTypeString}},
	}}

	if err := reg.RegisterWidget(first); err != nil {
		t.Fatalf("register first: %v", err)
	}

	err := reg.RegisterWidget(second)
	var dup *DuplicateRegistrationError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateRegistrationError, got %v", err)
	}
	if dup.Kind != KindWidget || dup.Name != "bar_plot" {
		t.Fatalf("unexpected error fields: %+v", dup)
	}

	desc, err := reg.Resolve(KindWidget, "bar_plot")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff(first.desc, desc); diff != "" {
		t.Fatalf("first registration not preserved (-want +got):\n%s", diff)
	}
}

func TestRegistry_SameNameAcrossKinds(t *testing.T) {
	reg := NewRegistry()

	if err := reg.RegisterWidget(stubWidget{desc: Descriptor{Name: "general", Kind: KindWidget}}); err != nil {
		t.Fatalf("register widget: %v", err)
	}
	if err := reg.RegisterExporter(stubExporter{desc: Descriptor{Name: "general", Kind: KindExporter}}); err != nil {
		t.Fatalf("exporter sharing a widget name must register: %v", err)
	}

	if !reg.Has(KindWidget, "general") || !reg.Has(KindExporter, "general") {
		t.Fatalf("expected both kinds registered under %q", "general")
	}
}

func TestRegistry_UnknownPlugin(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Widget("radial_gauge")
	var unknown *UnknownPluginError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownPluginError, got %v", err)
	}
	if unknown.Kind != KindWidget || unknown.Name != "radial_gauge" {
		t.Fatalf("unexpected error fields: %+v", unknown)
	}

	if _, err := reg.Resolve(KindExporter, "json_file"); err == nil {
		t.Fatalf("expected resolve to fail on empty registry")
	}
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"table_view", "bar_plot", "donut_chart"} {
		reg.MustRegisterWidget(stubWidget{desc: Descriptor{Name: name, Kind: KindWidget}})
	}

	want := []string{"bar_plot", "donut_chart", "table_view"}
	if diff := cmp.Diff(want, reg.List(KindWidget)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if got := reg.List(KindExporter); len(got) != 0 {
		t.Fatalf("expected no exporters, got %v", got)
	}
}

func TestDescriptor_SpecFor(t *testing.T) {
	desc := Descriptor{
		Name: "json_file",
		Kind: KindExporter,
		Schema: []FieldSpec{
			{Name: "output_dir", Type: FieldTypeString, Required: true},
			{Name: "indent", Type: FieldTypeBool, Default: true},
		},
	}

	spec, ok := desc.SpecFor("output_dir")
	if !ok || !spec.Required || spec.Type != FieldTypeString {
		t.Fatalf("SpecFor(output_dir): %+v ok=%v", spec, ok)
	}
	if _, ok := desc.SpecFor("filename"); ok {
		t.Fatalf("expected no spec for undeclared key")
	}
}

func TestConfig_TypedAccessors(t *testing.T) {
	cfg := NewConfig(map[string]any{
		"title":     "Stand structure",
		"max_value": 100.0,
		"stacked":   true,
		"fields":    []any{"dbh", "height"},
		"columns":   []any{map[string]any{"field": "species", "header": "Species"}},
	}, nil)

	if got := cfg.String("title", ""); got != "Stand structure" {
		t.Fatalf("String: %q", got)
	}
	if got := cfg.Number("max_value", 0); got != 100 {
		t.Fatalf("Number: %v", got)
	}
	if got := cfg.Int("max_value", 0); got != 100 {
		t.Fatalf("Int: %v", got)
	}
	if !cfg.Bool("stacked", false) {
		t.Fatalf("Bool: expected true")
	}
	if diff := cmp.Diff([]string{"dbh", "height"}, cfg.Strings("fields")); diff != "" {
		t.Fatalf("Strings mismatch (-want +got):\n%s", diff)
	}
	objs := cfg.Objects("columns")
	if len(objs) != 1 || objs[0]["field"] != "species" {
		t.Fatalf("Objects: %+v", objs)
	}
	if got := cfg.String("missing", "fallback"); got != "fallback" {
		t.Fatalf("fallback: %q", got)
	}
}
