package exporters

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// XLSXWorkbook writes the bound record into a single-sheet xlsx workbook.
type XLSXWorkbook struct{}

// NewXLSXWorkbook constructs the xlsx_workbook exporter.
func NewXLSXWorkbook() *XLSXWorkbook {
	return &XLSXWorkbook{}
}

func (e *XLSXWorkbook) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "xlsx_workbook",
		Kind:  plugin.KindExporter,
		Shape: plugin.ShapeFlat,
		Schema: []plugin.FieldSpec{
			{Name: "output_dir", Type: plugin.FieldTypeString, Required: true},
			{Name: "filename", Type: plugin.FieldTypeString, Default: "data.xlsx"},
			{Name: "sheet", Type: plugin.FieldTypeString, Default: "Data"},
			{Name: "fields", Type: plugin.FieldTypeArray, Binds: plugin.BindFieldList},
		},
	}
}

func (e *XLSXWorkbook) Export(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := outputDirOf("xlsx_workbook", cfg)
	if err != nil {
		return nil, err
	}

	sheet := cfg.String("sheet", "Data")
	file := excelize.NewFile()
	defer file.Close()
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx_workbook: name sheet %q: %w", sheet, err)
	}

	columns, _ := tableOf(input.Record, cfg.Strings("fields"))
	for c, col := range columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx_workbook: header cell: %w", err)
		}
		if err := file.SetCellValue(sheet, cell, col.name); err != nil {
			return nil, fmt.Errorf("xlsx_workbook: write header %q: %w", col.name, err)
		}
		for r, item := range col.items {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("xlsx_workbook: data cell: %w", err)
			}
			if err := file.SetCellValue(sheet, cell, xlsxValue(item)); err != nil {
				return nil, fmt.Errorf("xlsx_workbook: write cell %s: %w", cell, err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx_workbook: encode workbook: %w", err)
	}

	return &plugin.Artifact{
		Type:       plugin.ArtifactFile,
		Payload:    buf.Bytes(),
		TargetPath: filepath.Join(dir, cfg.String("filename", "data.xlsx")),
	}, nil
}

// xlsxValue keeps numbers and booleans typed so spreadsheet formulas can use
// them; everything else lands as a display string.
func xlsxValue(item any) any {
	switch item.(type) {
	case float64, bool, nil:
		return item
	case string:
		return item
	default:
		return cellValue(item)
	}
}
