package orchestrator

import (
	"fmt"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// PluginExecutionError reports that a plugin body returned an error or
// panicked. Collaborator failures before execution (unknown plugin, invalid
// configuration, unresolvable binding) keep their own error types.
type PluginExecutionError struct {
	Kind   plugin.Kind
	Plugin string
	Err    error
}

func (e *PluginExecutionError) Error() string {
	return fmt.Sprintf("orchestrator: %s %q: %v", e.Kind, e.Plugin, e.Err)
}

func (e *PluginExecutionError) Unwrap() error {
	return e.Err
}
