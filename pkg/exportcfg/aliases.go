package exportcfg

import (
	"errors"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// The canonical configuration schema is plugin + params, with info_grid
// taking a fields: list. Earlier configurations used three competing
// spellings; they are accepted as deprecated aliases and rewritten here so
// the rest of the pipeline only ever sees the canonical form.
var widgetNameAliases = map[string]string{
	"info_panel": "info_grid",
}

// paramKeyAliases maps deprecated parameter keys per canonical plugin name.
var paramKeyAliases = map[string]map[string]string{
	"info_grid": {"mapping": "fields"},
}

func normalizeWidget(raw rawEntry) (Entry, error) {
	entry, err := normalizeCommon(raw, plugin.KindWidget)
	if err != nil {
		return Entry{}, err
	}

	if canonical, ok := widgetNameAliases[entry.Plugin]; ok {
		entry.Plugin = canonical
	}
	if aliases, ok := paramKeyAliases[entry.Plugin]; ok {
		for deprecated, canonical := range aliases {
			value, present := entry.Params[deprecated]
			if !present {
				continue
			}
			if _, taken := entry.Params[canonical]; !taken {
				entry.Params[canonical] = value
			}
			delete(entry.Params, deprecated)
		}
	}
	return entry, nil
}

func normalizeExporter(raw rawEntry) (Entry, error) {
	entry, err := normalizeCommon(raw, plugin.KindExporter)
	if err != nil {
		return Entry{}, err
	}

	// The exporter form carries output_dir at the top level; fold it into
	// params where the plugin schema declares it.
	if raw.OutputDir != "" {
		if _, taken := entry.Params["output_dir"]; !taken {
			entry.Params["output_dir"] = raw.OutputDir
		}
	}
	return entry, nil
}

func normalizeCommon(raw rawEntry, kind plugin.Kind) (Entry, error) {
	name := raw.Plugin
	if name == "" {
		name = raw.Type
	}
	if name == "" {
		return Entry{}, errors.New("missing plugin name")
	}

	params := raw.Params
	if params == nil {
		params = raw.Options
	}
	if params == nil {
		params = map[string]any{}
	}

	return Entry{
		Kind:       kind,
		Plugin:     name,
		DataSource: raw.DataSource,
		Params:     params,
	}, nil
}
