// Package exportcfg loads the declarative export configuration: an ordered
// list of widget entries and an ordered list of exporter entries, each naming
// a plugin, a data source, and a raw parameter mapping.
package exportcfg

import "github.com/ecoviz/go-exportgen/pkg/plugin"

// Entry is one configured widget or exporter invocation. Entry order is
// meaningful: widgets render top-to-bottom on a page, and the orchestrator
// reports results in declared order.
type Entry struct {
	// Kind is inferred from which list the entry appeared under.
	Kind plugin.Kind

	// Plugin names the registered implementation.
	Plugin string

	// DataSource names the upstream dataset the entry binds to.
	DataSource string

	// Params is the raw, unvalidated parameter mapping. Exporter entries have
	// their top-level output_dir folded in during normalisation.
	Params map[string]any
}

// Document is a parsed export configuration.
type Document struct {
	Widgets   []Entry
	Exporters []Entry
}

// Entries returns the full ordered sequence the orchestrator processes:
// widgets in declared order, then exporters in declared order.
func (d Document) Entries() []Entry {
	out := make([]Entry, 0, len(d.Widgets)+len(d.Exporters))
	out = append(out, d.Widgets...)
	out = append(out, d.Exporters...)
	return out
}
