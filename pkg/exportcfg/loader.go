package exportcfg

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// rawEntry accepts both the canonical keys and the deprecated spellings some
// older configurations still use. Normalisation resolves the aliases.
type rawEntry struct {
	Plugin     string         `yaml:"plugin"`
	Type       string         `yaml:"type"` // deprecated alias for plugin
	DataSource string         `yaml:"data_source"`
	OutputDir  string         `yaml:"output_dir"`
	Params     map[string]any `yaml:"params"`
	Options    map[string]any `yaml:"options"` // deprecated alias for params
}

type rawDocument struct {
	Widgets   []rawEntry `yaml:"widgets"`
	Exporters []rawEntry `yaml:"exporters"`
}

// Load reads and parses an export configuration. A document that cannot be
// read or parsed at all is a collaborator-level failure and aborts the run;
// per-entry problems are left for validation so they surface per slot.
func Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("exportcfg: source is required")
	}

	data, err := src.Read(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("exportcfg: read %s: %w", src.Location(), err)
	}
	return Parse(data)
}

// Parse decodes a YAML export configuration and normalises deprecated keys.
func Parse(data []byte) (Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("exportcfg: parse: %w", err)
	}

	doc := Document{}
	for idx, entry := range raw.Widgets {
		normalized, err := normalizeWidget(entry)
		if err != nil {
			return Document{}, fmt.Errorf("exportcfg: widgets[%d]: %w", idx, err)
		}
		doc.Widgets = append(doc.Widgets, normalized)
	}
	for idx, entry := range raw.Exporters {
		normalized, err := normalizeExporter(entry)
		if err != nil {
			return Document{}, fmt.Errorf("exportcfg: exporters[%d]: %w", idx, err)
		}
		doc.Exporters = append(doc.Exporters, normalized)
	}
	return doc, nil
}
