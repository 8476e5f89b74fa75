// Package schema walks plugin FieldSpec declarations over raw configuration
// mappings, producing normalised values and an exhaustive issue list.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// Mode controls how unknown configuration keys are treated.
type Mode int

const (
	// Strict rejects keys the plugin schema does not declare.
	Strict Mode = iota
	// Passthrough copies undeclared keys into the validated config's extra
	// set without inspecting them.
	Passthrough
)

// Issue is one field-level validation finding. A walk reports every issue it
// encounters; it never stops at the first bad field.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Result carries the outcome of one walk.
type Result struct {
	Values map[string]any
	Extra  map[string]any
	Issues []Issue
}

// Walk validates raw against specs. Defaults fill absent optional fields;
// numeric literals are normalised to float64 throughout. An empty raw mapping
// against an all-optional schema is valid and yields an all-defaults result.
func Walk(raw map[string]any, specs []plugin.FieldSpec, mode Mode) Result {
	res := Result{Values: make(map[string]any, len(specs))}

	declared := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		declared[spec.Name] = struct{}{}

		value, present := raw[spec.Name]
		if !present {
			if spec.Required {
				res.Issues = append(res.Issues, Issue{Field: spec.Name, Message: "required field missing"})
				continue
			}
			if spec.Default != nil {
				res.Values[spec.Name] = normalize(spec.Default)
			}
			continue
		}

		checked, issues := checkField(spec, normalize(value), mode)
		if len(issues) > 0 {
			res.Issues = append(res.Issues, issues...)
			continue
		}
		res.Values[spec.Name] = checked
	}

	unknown := make([]string, 0)
	for key := range raw {
		if _, ok := declared[key]; ok {
			continue
		}
		unknown = append(unknown, key)
	}
	sort.Strings(unknown)

	for _, key := range unknown {
		switch mode {
		case Passthrough:
			if res.Extra == nil {
				res.Extra = make(map[string]any)
			}
			res.Extra[key] = normalize(raw[key])
		default:
			res.Issues = append(res.Issues, Issue{Field: key, Message: "unknown field"})
		}
	}

	return res
}

func checkField(spec plugin.FieldSpec, value any, mode Mode) (any, []Issue) {
	switch spec.Type {
	case plugin.FieldTypeString:
		s, ok := value.(string)
		if !ok {
			return nil, []Issue{{Field: spec.Name, Message: fmt.Sprintf("expected string, got %s", typeName(value))}}
		}
		if len(spec.Enum) > 0 && !contains(spec.Enum, s) {
			return nil, []Issue{{
				Field:   spec.Name,
				Message: fmt.Sprintf("value %q not one of %s", s, strings.Join(spec.Enum, "|")),
			}}
		}
		return s, nil

	case plugin.FieldTypeNumber:
		f, ok := value.(float64)
		if !ok {
			return nil, []Issue{{Field: spec.Name, Message: fmt.Sprintf("expected number, got %s", typeName(value))}}
		}
		return f, nil

	case plugin.FieldTypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, []Issue{{Field: spec.Name, Message: fmt.Sprintf("expected bool, got %s", typeName(value))}}
		}
		return b, nil

	case plugin.FieldTypeArray:
		items, ok := value.([]any)
		if !ok {
			return nil, []Issue{{Field: spec.Name, Message: fmt.Sprintf("expected array, got %s", typeName(value))}}
		}
		return checkArray(spec, items, mode)

	case plugin.FieldTypeObject:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, []Issue{{Field: spec.Name, Message: fmt.Sprintf("expected object, got %s", typeName(value))}}
		}
		return m, nil

	default:
		return nil, []Issue{{Field: spec.Name, Message: fmt.Sprintf("unsupported field type %q", spec.Type)}}
	}
}

func checkArray(spec plugin.FieldSpec, items []any, mode Mode) (any, []Issue) {
	if len(spec.Elem) == 0 {
		if spec.Binds == plugin.BindFieldList {
			var issues []Issue
			for idx, item := range items {
				if _, ok := item.(string); !ok {
					issues = append(issues, Issue{
						Field:   elementPath(spec.Name, idx),
						Message: fmt.Sprintf("expected string, got %s", typeName(item)),
					})
				}
			}
			if len(issues) > 0 {
				return nil, issues
			}
		}
		return items, nil
	}

	var issues []Issue
	checked := make([]any, 0, len(items))
	for idx, item := range items {
		element, ok := item.(map[string]any)
		if !ok {
			issues = append(issues, Issue{
				Field:   elementPath(spec.Name, idx),
				Message: fmt.Sprintf("expected object, got %s", typeName(item)),
			})
			continue
		}
		sub := Walk(element, spec.Elem, mode)
		for _, issue := range sub.Issues {
			issues = append(issues, Issue{
				Field:   elementPath(spec.Name, idx) + "." + issue.Field,
				Message: issue.Message,
			})
		}
		if len(sub.Issues) == 0 {
			merged := sub.Values
			for key, value := range sub.Extra {
				merged[key] = value
			}
			checked = append(checked, merged)
		}
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return checked, nil
}

// normalize rewrites numeric literals to float64 and map/slice containers to
// the map[string]any / []any shapes the accessors expect.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalize(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	default:
		return value
	}
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func elementPath(name string, idx int) string {
	return fmt.Sprintf("%s[%d]", name, idx)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
