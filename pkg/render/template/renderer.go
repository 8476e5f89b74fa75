// Package template defines the seam between widget/exporter plugins and the
// HTML template engine. Plugins depend on this contract only; the concrete
// engine lives in the gotemplate subpackage.
package template

import "io"

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract. Render dispatches between named templates and inline content,
// RenderTemplate resolves a name inside the configured template set, and
// RenderString parses the supplied content directly.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
