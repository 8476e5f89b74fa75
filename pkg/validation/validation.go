// Package validation turns raw widget/exporter parameter mappings into typed,
// immutable plugin configurations, reporting every malformed or missing field
// in a single pass so a configuration file can be fixed in one edit cycle.
package validation

import (
	"fmt"
	"strings"

	"github.com/ecoviz/go-exportgen/internal/schema"
	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// Mode re-exports the unknown-key policy.
type Mode = schema.Mode

const (
	// Strict rejects keys the plugin schema does not declare.
	Strict = schema.Strict
	// Passthrough keeps undeclared keys inertly on the validated config.
	Passthrough = schema.Passthrough
)

// FieldIssue re-exports one field-level finding.
type FieldIssue = schema.Issue

// ConfigurationError aggregates every issue found while validating one entry's
// parameters against its plugin schema.
type ConfigurationError struct {
	Plugin string
	Issues []FieldIssue
}

func (e *ConfigurationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("validation: config for %q: %s", e.Plugin, strings.Join(parts, "; "))
}

// Validate binds raw against the plugin's declared schema. On success the
// returned Config has every required field present and type-correct, with
// defaults filled in for absent optional fields.
func Validate(desc plugin.Descriptor, raw map[string]any, mode Mode) (plugin.Config, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	res := schema.Walk(raw, desc.Schema, mode)
	if len(res.Issues) > 0 {
		return plugin.Config{}, &ConfigurationError{Plugin: desc.Name, Issues: res.Issues}
	}
	return plugin.NewConfig(res.Values, res.Extra), nil
}
