package exportgen

import (
	"io/fs"

	"github.com/ecoviz/go-exportgen/pkg/exporters"
	"github.com/ecoviz/go-exportgen/pkg/widgets"
)

// WidgetTemplates exposes the built-in widget fragment templates so callers
// can reuse or extend them without importing the widgets package directly.
func WidgetTemplates() fs.FS {
	return widgets.TemplatesFS()
}

// PageTemplates exposes the html_page exporter templates.
func PageTemplates() fs.FS {
	return exporters.TemplatesFS()
}
