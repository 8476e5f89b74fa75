package plugin

import "fmt"

// DuplicateRegistrationError reports a second registration under an already
// occupied (kind, name) pair. The first registration stays active.
type DuplicateRegistrationError struct {
	Kind Kind
	Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("plugin: %s %q already registered", e.Kind, e.Name)
}

// UnknownPluginError reports a lookup for a (kind, name) pair no plugin was
// registered under.
type UnknownPluginError struct {
	Kind Kind
	Name string
}

func (e *UnknownPluginError) Error() string {
	return fmt.Sprintf("plugin: unknown %s %q", e.Kind, e.Name)
}
