package exportgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecoviz/go-exportgen/pkg/exportcfg"
	"github.com/ecoviz/go-exportgen/pkg/orchestrator"
	"github.com/ecoviz/go-exportgen/pkg/testsupport"
)

func TestConfigFromBytes_ReadableSource(t *testing.T) {
	src := ConfigFromBytes([]byte(sampleConfig))

	if src.Kind() != exportcfg.SourceKindBytes {
		t.Fatalf("kind: %s", src.Kind())
	}
	if src.Location() == "" {
		t.Fatal("expected a location label for error messages")
	}
	payload, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(payload) != sampleConfig {
		t.Fatalf("payload mismatch:\n%s", payload)
	}
}

const sampleConfig = `
widgets:
  - plugin: bar_plot
    data_source: dbh_distribution
    params:
      x_field: bins
      y_field: counts
      title: DBH distribution
  - plugin: radial_gauge
    data_source: plot_summary
    params:
      value_field: max_height
      max_value: 60
      units: m
exporters:
  - plugin: json_file
    data_source: plot_summary
    output_dir: exports
  - plugin: csv_file
    data_source: dbh_distribution
    output_dir: exports
    params:
      fields: [bins, counts]
`

func TestExport_EndToEnd(t *testing.T) {
	run, err := Export(context.Background(), ConfigFromBytes([]byte(sampleConfig)), testsupport.SampleMapping())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if len(run.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(run.Results))
	}
	if got := run.Succeeded(); got != 4 {
		t.Fatalf("expected full success, got %d:\n%s", got, run.Summary())
	}
	// Widgets first, in declared order, then exporters.
	if run.Results[0].Entry.Plugin != "bar_plot" || run.Results[3].Entry.Plugin != "csv_file" {
		t.Fatalf("result order broken:\n%s", run.Summary())
	}
}

func TestExportAndFlush_WritesFiles(t *testing.T) {
	base := t.TempDir()

	run, summary, err := ExportAndFlush(context.Background(), ConfigFromBytes([]byte(sampleConfig)), testsupport.SampleMapping(), base)
	if err != nil {
		t.Fatalf("export and flush: %v", err)
	}
	if run.Failed() != 0 {
		t.Fatalf("unexpected failures:\n%s", run.Summary())
	}
	// The two exporters land on disk; widget fragments stay in memory.
	if summary.Written != 2 || summary.Skipped != 2 {
		t.Fatalf("summary: %+v", summary)
	}

	payload, err := os.ReadFile(filepath.Join(base, "exports", "data.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.HasPrefix(string(payload), "bins,counts\n") {
		t.Fatalf("csv header: %s", payload)
	}

	if _, err := os.Stat(filepath.Join(base, "exports", "data.json")); err != nil {
		t.Fatalf("json missing: %v", err)
	}
}

func TestExport_PartialFailure(t *testing.T) {
	broken := strings.Replace(sampleConfig, "y_field: counts", "y_field: missing_field", 1)

	run, err := Export(context.Background(), ConfigFromBytes([]byte(broken)), testsupport.SampleMapping(),
		WithWorkers(2))
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if run.Failed() != 1 || run.Succeeded() != 3 {
		t.Fatalf("expected one isolated failure:\n%s", run.Summary())
	}
	if run.Results[0].Status != orchestrator.StatusFailed {
		t.Fatalf("expected first entry failed, got %s", run.Results[0].Status)
	}
}
