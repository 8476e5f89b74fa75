package dataset

import (
	"sort"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// Binding is one entry's declared dependency on a named dataset: which
// source it reads, which fields it uses, and the shape the plugin expects.
type Binding struct {
	Source string
	Fields []string
	Shape  plugin.DataShape
}

// BindingFor derives the binding from a validated configuration, using the
// field-binding declarations the plugin registered with its schema. An empty
// field set means the plugin consumes the dataset whole.
func BindingFor(desc plugin.Descriptor, source string, cfg plugin.Config) Binding {
	seen := make(map[string]struct{})
	var fields []string

	add := func(name string) {
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}

	for _, spec := range desc.Schema {
		switch spec.Binds {
		case plugin.BindField:
			add(cfg.String(spec.Name, ""))
		case plugin.BindFieldList:
			for _, name := range cfg.Strings(spec.Name) {
				add(name)
			}
		case plugin.BindObjectList:
			for _, element := range cfg.Objects(spec.Name) {
				if name, ok := element[spec.BindKey].(string); ok {
					add(name)
				}
			}
		}
	}

	sort.Strings(fields)
	return Binding{Source: source, Fields: fields, Shape: desc.Shape}
}

// Resolve extracts the bound dataset from the mapping and projects the used
// fields into a plugin-ready payload. Values pass through as-is; only
// presence and shape are enforced here.
func Resolve(binding Binding, mapping Mapping) (plugin.Input, error) {
	ds, ok := mapping[binding.Source]
	if !ok {
		return plugin.Input{}, &MissingDataSourceError{Source: binding.Source}
	}
	if ds.Shape != binding.Shape {
		return plugin.Input{}, &IncompatibleDataShapeError{
			Source: binding.Source,
			Want:   string(binding.Shape),
			Got:    string(ds.Shape),
		}
	}

	switch binding.Shape {
	case plugin.ShapeGeometry:
		return resolveGeometry(binding, ds)
	default:
		return resolveFlat(binding, ds)
	}
}

func resolveFlat(binding Binding, ds Dataset) (plugin.Input, error) {
	input := plugin.Input{Source: binding.Source, Shape: plugin.ShapeFlat}

	if len(binding.Fields) == 0 {
		input.Record = copyRecord(ds.Record, nil)
		return input, nil
	}

	for _, field := range binding.Fields {
		if _, ok := ds.Record[field]; !ok {
			return plugin.Input{}, &MissingFieldError{Source: binding.Source, Field: field}
		}
	}
	input.Record = copyRecord(ds.Record, binding.Fields)
	return input, nil
}

func resolveGeometry(binding Binding, ds Dataset) (plugin.Input, error) {
	// A bound property must exist somewhere in the collection; sparse
	// features are expected in real survey data.
	for _, field := range binding.Fields {
		found := false
		for _, feature := range ds.Features {
			if _, ok := feature.Properties[field]; ok {
				found = true
				break
			}
		}
		if !found {
			return plugin.Input{}, &MissingFieldError{Source: binding.Source, Field: field}
		}
	}

	features := make([]plugin.Feature, len(ds.Features))
	for idx, feature := range ds.Features {
		projected := plugin.Feature{Geometry: feature.Geometry}
		if len(binding.Fields) == 0 {
			projected.Properties = copyRecord(feature.Properties, nil)
		} else {
			projected.Properties = copyRecord(feature.Properties, binding.Fields)
		}
		features[idx] = projected
	}

	return plugin.Input{Source: binding.Source, Shape: plugin.ShapeGeometry, Features: features}, nil
}

func copyRecord(src map[string]any, fields []string) map[string]any {
	if src == nil {
		return map[string]any{}
	}
	if fields == nil {
		out := make(map[string]any, len(src))
		for key, value := range src {
			out[key] = value
		}
		return out
	}
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		if value, ok := src[field]; ok {
			out[field] = value
		}
	}
	return out
}
