// Package testsupport carries fixture builders and golden-file helpers shared
// by the package test suites.
package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ecoviz/go-exportgen/pkg/dataset"
	"github.com/ecoviz/go-exportgen/pkg/exportcfg"
	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// SampleMapping builds the dataset mapping the suites share: one binned
// distribution, one scalar summary, and one small feature collection.
func SampleMapping() dataset.Mapping {
	return dataset.Mapping{
		"dbh_distribution": dataset.Flat(plugin.Record{
			"bins":   []any{0.0, 10.0, 20.0, 30.0},
			"counts": []any{12.0, 7.0, 3.0, 1.0},
		}),
		"plot_summary": dataset.Flat(plugin.Record{
			"plot":          "NC-041",
			"species_count": 14.0,
			"max_height":    32.5,
		}),
		"plot_locations": dataset.Geometry([]plugin.Feature{
			{
				Geometry:   map[string]any{"type": "Point", "coordinates": []any{166.45, -22.27}},
				Properties: map[string]any{"name": "Plot A", "species": "Araucaria columnaris"},
			},
			{
				Geometry:   map[string]any{"type": "Point", "coordinates": []any{166.52, -22.31}},
				Properties: map[string]any{"name": "Plot B"},
			},
		}),
	}
}

// LoadMapping reads a dataset mapping fixture from disk.
func LoadMapping(t *testing.T, path string) dataset.Mapping {
	t.Helper()

	mapping, err := LoadMappingFromPath(context.Background(), path)
	if err != nil {
		t.Fatalf("load mapping: %v", err)
	}
	return mapping
}

// LoadMappingFromPath returns a mapping without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadMappingFromPath(ctx context.Context, path string) (dataset.Mapping, error) {
	if path == "" {
		return nil, errors.New("testsupport: mapping path is required")
	}
	mapping, err := dataset.LoadMapping(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load mapping: %w", err)
	}
	return mapping, nil
}

// LoadConfig parses an export configuration fixture from disk.
func LoadConfig(t *testing.T, path string) exportcfg.Document {
	t.Helper()

	doc, err := exportcfg.Load(context.Background(), exportcfg.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return doc
}

// ParseConfig parses inline YAML configuration content.
func ParseConfig(t *testing.T, content string) exportcfg.Document {
	t.Helper()

	doc, err := exportcfg.Parse([]byte(content))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return doc
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer, returning both the string result and the writer contents. Tests
// can assert the renderer returns and writes the same payload without
// duplicating buffer setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
