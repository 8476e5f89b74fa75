package exporters

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// JSONFile serialises the bound record to a JSON document on disk.
type JSONFile struct{}

// NewJSONFile constructs the json_file exporter.
func NewJSONFile() *JSONFile {
	return &JSONFile{}
}

func (e *JSONFile) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "json_file",
		Kind:  plugin.KindExporter,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{Name: "output_dir", Type: plugin.FieldTypeString, Required: true},
			{Name: "filename", Type: plugin.FieldTypeString, Default: "data.json"},
			{Name: "indent", Type: plugin.FieldTypeBool, Default: true},
			{Name: "fields", Type: plugin.FieldTypeArray, Binds: plugin.BindFieldList},
		},
	}
}

func (e *JSONFile) Export(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := outputDirOf("json_file", cfg)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if cfg.Bool("indent", true) {
		payload, err = json.MarshalIndent(input.Record, "", "  ")
	} else {
		payload, err = json.Marshal(input.Record)
	}
	if err != nil {
		return nil, fmt.Errorf("json_file: encode record: %w", err)
	}
	payload = append(payload, '\n')

	return &plugin.Artifact{
		Type:       plugin.ArtifactJSON,
		Payload:    payload,
		TargetPath: filepath.Join(dir, cfg.String("filename", "data.json")),
	}, nil
}
