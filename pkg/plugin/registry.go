package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps (kind, name) to a plugin implementation. It is the single
// source of truth for what plugins exist and their declared schemas; nothing
// else in the pipeline constructs plugins directly. A populated registry is
// read-only and safe to share across concurrent export runs.
type Registry struct {
	mu        sync.RWMutex
	widgets   map[string]Widget
	exporters map[string]Exporter
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		widgets:   make(map[string]Widget),
		exporters: make(map[string]Exporter),
	}
}

// RegisterWidget adds a widget plugin under its descriptor name. Registering
// over an existing name fails with DuplicateRegistrationError.
func (r *Registry) RegisterWidget(w Widget) error {
	if w == nil {
		return fmt.Errorf("plugin: widget is required")
	}
	desc := w.Descriptor()
	if desc.Name == "" {
		return fmt.Errorf("plugin: widget name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.widgets[desc.Name]; exists {
		return &DuplicateRegistrationError{Kind: KindWidget, Name: desc.Name}
	}
	r.widgets[desc.Name] = w
	return nil
}

// RegisterExporter adds an exporter plugin under its descriptor name.
func (r *Registry) RegisterExporter(e Exporter) error {
	if e == nil {
		return fmt.Errorf("plugin: exporter is required")
	}
	desc := e.Descriptor()
	if desc.Name == "" {
		return fmt.Errorf("plugin: exporter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exporters[desc.Name]; exists {
		return &DuplicateRegistrationError{Kind: KindExporter, Name: desc.Name}
	}
	r.exporters[desc.Name] = e
	return nil
}

// MustRegisterWidget panics on registration failure. Useful for init-time
// wiring of the built-in set.
func (r *Registry) MustRegisterWidget(w Widget) {
	if err := r.RegisterWidget(w); err != nil {
		panic(err)
	}
}

// MustRegisterExporter panics on registration failure.
func (r *Registry) MustRegisterExporter(e Exporter) {
	if err := r.RegisterExporter(e); err != nil {
		panic(err)
	}
}

// Widget retrieves a widget plugin by name.
func (r *Registry) Widget(name string) (Widget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.widgets[name]
	if !ok {
		return nil, &UnknownPluginError{Kind: KindWidget, Name: name}
	}
	return w, nil
}

// Exporter retrieves an exporter plugin by name.
func (r *Registry) Exporter(name string) (Exporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.exporters[name]
	if !ok {
		return nil, &UnknownPluginError{Kind: KindExporter, Name: name}
	}
	return e, nil
}

// Resolve returns the descriptor registered under (kind, name).
func (r *Registry) Resolve(kind Kind, name string) (Descriptor, error) {
	switch kind {
	case KindWidget:
		w, err := r.Widget(name)
		if err != nil {
			return Descriptor{}, err
		}
		return w.Descriptor(), nil
	case KindExporter:
		e, err := r.Exporter(name)
		if err != nil {
			return Descriptor{}, err
		}
		return e.Descriptor(), nil
	default:
		return Descriptor{}, fmt.Errorf("plugin: unsupported kind %q", kind)
	}
}

// Has reports whether a plugin is registered under (kind, name).
func (r *Registry) Has(kind Kind, name string) bool {
	_, err := r.Resolve(kind, name)
	return err == nil
}

// List returns the sorted plugin names registered under kind.
func (r *Registry) List(kind Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	switch kind {
	case KindWidget:
		for name := range r.widgets {
			names = append(names, name)
		}
	case KindExporter:
		for name := range r.exporters {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
