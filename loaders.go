package exportgen

import (
	"context"
	"io/fs"

	"github.com/ecoviz/go-exportgen/pkg/dataset"
	"github.com/ecoviz/go-exportgen/pkg/exportcfg"
)

// ConfigFromFile builds a configuration source backed by a file on disk.
func ConfigFromFile(path string) exportcfg.Source {
	return exportcfg.SourceFromFile(path)
}

// ConfigFromFS builds a configuration source backed by an fs.FS entry,
// typically an embedded bundle.
func ConfigFromFS(fsys fs.FS, name string) exportcfg.Source {
	return exportcfg.SourceFromFS(fsys, name)
}

// ConfigFromBytes builds a configuration source from in-memory content.
func ConfigFromBytes(data []byte) exportcfg.Source {
	return exportcfg.SourceFromBytes("(bytes)", data)
}

// LoadMapping reads a dataset mapping document from path.
func LoadMapping(ctx context.Context, path string) (dataset.Mapping, error) {
	return dataset.LoadMapping(ctx, path)
}
