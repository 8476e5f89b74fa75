// Package dataset models the named datasets produced by the upstream
// transform stage and resolves widget/exporter data bindings against them.
package dataset

import "github.com/ecoviz/go-exportgen/pkg/plugin"

// Dataset is one named payload from the upstream mapping. Exactly one of
// Record or Features is populated, matching Shape.
type Dataset struct {
	Shape    plugin.DataShape
	Record   plugin.Record
	Features []plugin.Feature
}

// Flat wraps a flat record payload.
func Flat(record plugin.Record) Dataset {
	return Dataset{Shape: plugin.ShapeFlat, Record: record}
}

// Geometry wraps a feature collection payload.
func Geometry(features []plugin.Feature) Dataset {
	return Dataset{Shape: plugin.ShapeGeometry, Features: features}
}

// Mapping is the read-only dataset index supplied to an export run. It is
// safe for concurrent reads; no entry mutates it.
type Mapping map[string]Dataset
