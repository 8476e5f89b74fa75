package exportcfg

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// SourceKind identifies where a configuration document lives.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

// Source identifies and reads a configuration document.
type Source interface {
	Location() string
	Kind() SourceKind
	Read(ctx context.Context) ([]byte, error)
}

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

func (s fileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.path)
}

// SourceFromFile returns a Source pointing to an on-disk document.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	fsys fs.FS
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

func (s fsSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(s.fsys, s.name)
}

// SourceFromFS returns a Source identifying a document inside an fs.FS.
func SourceFromFS(fsys fs.FS, name string) Source {
	return fsSource{fsys: fsys, name: name}
}

type bytesSource struct {
	name string
	data []byte
}

func (s bytesSource) Location() string { return s.name }
func (s bytesSource) Kind() SourceKind { return SourceKindBytes }

func (s bytesSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.data, nil
}

// SourceFromBytes wraps an in-memory document, useful for tests and callers
// that already hold the payload.
func SourceFromBytes(name string, data []byte) Source {
	return bytesSource{name: name, data: data}
}
