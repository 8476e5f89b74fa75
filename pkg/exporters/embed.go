package exporters

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplatesFS exposes the embedded page templates.
func TemplatesFS() fs.FS {
	return templatesFS
}
