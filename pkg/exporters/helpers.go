package exporters

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// column is one named series of the tabular view file exporters share.
// Scalar record values become single-item columns.
type column struct {
	name  string
	items []any
}

// tableOf arranges the bound record into columns. An explicit field list
// fixes column order; otherwise record keys are sorted so output is stable.
func tableOf(record plugin.Record, fields []string) ([]column, int) {
	if len(fields) == 0 {
		fields = make([]string, 0, len(record))
		for key := range record {
			fields = append(fields, key)
		}
		sort.Strings(fields)
	}

	columns := make([]column, len(fields))
	rows := 0
	for i, field := range fields {
		value := record[field]
		items, ok := value.([]any)
		if !ok {
			items = []any{value}
		}
		columns[i] = column{name: field, items: items}
		if len(items) > rows {
			rows = len(items)
		}
	}
	return columns, rows
}

// cellValue renders a dataset value into a cell string. Floats drop trailing
// zeros so repeated exports stay byte-identical.
func cellValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = cellValue(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func outputDirOf(name string, cfg plugin.Config) (string, error) {
	dir := strings.TrimSpace(cfg.String("output_dir", ""))
	if dir == "" {
		return "", fmt.Errorf("%s: output_dir is empty", name)
	}
	return dir, nil
}
