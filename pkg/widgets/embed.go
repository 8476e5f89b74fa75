package widgets

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded widget template bundle so callers can
// render the built-in widgets out of the box or overlay their own copies.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
