package plugin

import "context"

// Record is a flat dataset projection: named scalar or array values.
type Record map[string]any

// Feature is one element of a geometry dataset projection, carrying a
// GeoJSON-like geometry plus the property fields the binding requested.
type Feature struct {
	Geometry   any
	Properties map[string]any
}

// Input is the plugin-ready payload produced by the data binding resolver.
// Exactly one of Record or Features is populated, matching Shape. Inputs are
// exclusively owned by the entry they were resolved for.
type Input struct {
	Source   string
	Shape    DataShape
	Record   Record
	Features []Feature
}

// ArtifactType classifies what a plugin invocation produced.
type ArtifactType string

const (
	ArtifactHTMLFragment ArtifactType = "html-fragment"
	ArtifactJSON         ArtifactType = "json"
	ArtifactCSV          ArtifactType = "csv"
	ArtifactFile         ArtifactType = "file"
)

// Artifact is the result of one plugin invocation. Ownership transfers to the
// output writer, which persists it and must not mutate it.
type Artifact struct {
	Type       ArtifactType
	Payload    []byte
	TargetPath string
}

// Widget renders an embeddable HTML fragment from already-bound data and an
// already-validated configuration.
type Widget interface {
	Descriptor() Descriptor
	Render(ctx context.Context, input Input, cfg Config) (*Artifact, error)
}

// Exporter writes bound data into a file artifact. The exporter computes
// payload and target path; persistence belongs to the output writer.
type Exporter interface {
	Descriptor() Descriptor
	Export(ctx context.Context, input Input, cfg Config) (*Artifact, error)
}
