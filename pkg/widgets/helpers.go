package widgets

import (
	"fmt"
	"strconv"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// chartPalette cycles across donut segments and stacked series. Order is
// fixed so re-renders stay byte-identical.
var chartPalette = []string{
	"#2d8a4e", "#4f9dd0", "#e0a84a", "#b85c8a", "#7a6fc2", "#5bb8a6",
}

func paletteColor(idx int) string {
	return chartPalette[idx%len(chartPalette)]
}

// numberOf coerces a dataset value into a float64, accepting the numeric
// literal kinds the mapping loader produces.
func numberOf(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// numbersOf coerces a dataset array field into float64s.
func numbersOf(value any) ([]float64, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, ok := numberOf(item)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// labelsOf stringifies a dataset array field for axis labels.
func labelsOf(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = formatValue(item)
	}
	return out, true
}

// formatValue renders a dataset value for display. Floats drop trailing
// zeros so rendering stays deterministic across runs.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// arrayField pulls a named array field out of the bound record, reporting a
// plugin-level error when the field is not array-shaped.
func arrayField(input plugin.Input, field string) ([]any, error) {
	items, ok := input.Record[field].([]any)
	if !ok {
		return nil, fmt.Errorf("field %q is not an array", field)
	}
	return items, nil
}
