package exporters

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// CSVFile writes the bound record as a delimited table. Array fields become
// columns zipped row by row; scalars occupy a single row.
type CSVFile struct{}

// NewCSVFile constructs the csv_file exporter.
func NewCSVFile() *CSVFile {
	return &CSVFile{}
}

func (e *CSVFile) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "csv_file",
		Kind:  plugin.KindExporter,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{Name: "output_dir", Type: plugin.FieldTypeString, Required: true},
			{Name: "filename", Type: plugin.FieldTypeString, Default: "data.csv"},
			{Name: "fields", Type: plugin.FieldTypeArray, Binds: plugin.BindFieldList},
			{Name: "delimiter", Type: plugin.FieldTypeString, Default: ","},
		},
	}
}

func (e *CSVFile) Export(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := outputDirOf("csv_file", cfg)
	if err != nil {
		return nil, err
	}

	delimiter := cfg.String("delimiter", ",")
	if utf8.RuneCountInString(delimiter) != 1 {
		return nil, fmt.Errorf("csv_file: delimiter %q must be a single character", delimiter)
	}
	comma, _ := utf8.DecodeRuneInString(delimiter)

	columns, rowCount := tableOf(input.Record, cfg.Strings("fields"))

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.name
	}

	records := make([][]string, 0, rowCount+1)
	records = append(records, header)
	for r := 0; r < rowCount; r++ {
		row := make([]string, len(columns))
		for c, col := range columns {
			if r < len(col.items) {
				row[c] = cellValue(col.items[r])
			}
		}
		records = append(records, row)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv_file: write rows: %w", err)
	}

	return &plugin.Artifact{
		Type:       plugin.ArtifactCSV,
		Payload:    buf.Bytes(),
		TargetPath: filepath.Join(dir, cfg.String("filename", "data.csv")),
	}, nil
}
