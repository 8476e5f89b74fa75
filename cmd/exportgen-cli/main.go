package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	exportgen "github.com/ecoviz/go-exportgen"
	"github.com/ecoviz/go-exportgen/pkg/orchestrator"
	"github.com/ecoviz/go-exportgen/pkg/validation"
)

func main() {
	config := flag.String("config", "export.yaml", "export configuration path")
	data := flag.String("data", "data.json", "dataset mapping path")
	out := flag.String("out", ".", "base directory for written artifacts")
	fragments := flag.String("fragments", "", "directory for widget fragments (kept in memory if empty)")
	workers := flag.Int("workers", 0, "concurrent entries (0 = automatic)")
	passthrough := flag.Bool("passthrough", false, "keep unknown configuration keys instead of rejecting them")
	flag.Parse()

	ctx := context.Background()

	mapping, err := exportgen.LoadMapping(ctx, *data)
	if err != nil {
		log.Fatalf("Failed to load dataset mapping: %v", err)
	}

	options := []orchestrator.Option{}
	if *workers > 0 {
		options = append(options, exportgen.WithWorkers(*workers))
	}
	if *passthrough {
		options = append(options, exportgen.WithValidationMode(validation.Passthrough))
	}
	if *fragments != "" {
		options = append(options, orchestrator.WithFragmentDir(*fragments))
	}

	run, summary, err := exportgen.ExportAndFlush(ctx, exportgen.ConfigFromFile(*config), mapping, *out, options...)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fmt.Print(run.Summary())
	fmt.Printf("wrote %d artifact(s), skipped %d\n", summary.Written, summary.Skipped)
	for _, writeErr := range summary.Failed {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", writeErr)
	}

	if run.Failed() > 0 || len(summary.Failed) > 0 {
		os.Exit(1)
	}
}
