// Command exportgen-init scaffolds an export configuration interactively: it
// asks which widgets and exporters to configure, binds them to data sources,
// and writes a canonical export.yaml.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	"github.com/ecoviz/go-exportgen/pkg/exporters"
	"github.com/ecoviz/go-exportgen/pkg/plugin"
	"github.com/ecoviz/go-exportgen/pkg/widgets"
)

type entryDoc struct {
	Plugin     string         `yaml:"plugin"`
	DataSource string         `yaml:"data_source"`
	OutputDir  string         `yaml:"output_dir,omitempty"`
	Params     map[string]any `yaml:"params,omitempty"`
}

type configDoc struct {
	Widgets   []entryDoc `yaml:"widgets,omitempty"`
	Exporters []entryDoc `yaml:"exporters,omitempty"`
}

func main() {
	output := flag.String("output", "export.yaml", "where to write the configuration")
	force := flag.Bool("force", false, "overwrite an existing configuration")
	flag.Parse()

	if !*force {
		if _, err := os.Stat(*output); err == nil {
			log.Fatalf("%s already exists (use -force to overwrite)", *output)
		}
	}

	registry := plugin.NewRegistry()
	if err := widgets.RegisterBuiltins(registry); err != nil {
		log.Fatalf("register widgets: %v", err)
	}
	if err := exporters.RegisterBuiltins(registry); err != nil {
		log.Fatalf("register exporters: %v", err)
	}

	doc := configDoc{}

	widgetNames := askSelection("Which widgets should the page include?", registry.List(plugin.KindWidget))
	for _, name := range widgetNames {
		doc.Widgets = append(doc.Widgets, askEntry(registry, plugin.KindWidget, name))
	}

	exporterNames := askSelection("Which exporters should run?", registry.List(plugin.KindExporter))
	for _, name := range exporterNames {
		doc.Exporters = append(doc.Exporters, askEntry(registry, plugin.KindExporter, name))
	}

	payload, err := yaml.Marshal(doc)
	if err != nil {
		log.Fatalf("encode configuration: %v", err)
	}
	if err := os.WriteFile(*output, payload, 0o644); err != nil {
		log.Fatalf("write configuration: %v", err)
	}
	fmt.Printf("Configuration written to %s\n", *output)
}

func askSelection(message string, options []string) []string {
	var selected []string
	prompt := &survey.MultiSelect{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		log.Fatalf("prompt: %v", err)
	}
	return selected
}

func askEntry(registry *plugin.Registry, kind plugin.Kind, name string) entryDoc {
	desc, err := registry.Resolve(kind, name)
	if err != nil {
		log.Fatalf("resolve %s %q: %v", kind, name, err)
	}

	entry := entryDoc{Plugin: name, Params: map[string]any{}}

	source := ""
	if err := survey.AskOne(&survey.Input{
		Message: fmt.Sprintf("[%s] data source name:", name),
	}, &source, survey.WithValidator(survey.Required)); err != nil {
		log.Fatalf("prompt: %v", err)
	}
	entry.DataSource = source

	// Exporters take output_dir as a top-level key in the canonical form.
	if spec, ok := desc.SpecFor("output_dir"); ok && spec.Required {
		if value, okValue := askScalar(name, spec).(string); okValue {
			entry.OutputDir = value
		}
	}

	for _, spec := range desc.Schema {
		if !spec.Required || spec.Name == "output_dir" {
			continue
		}
		if spec.Type == plugin.FieldTypeArray || spec.Type == plugin.FieldTypeObject {
			// Structured parameters are easier to fill in the editor.
			continue
		}
		value := askScalar(name, spec)
		if value != nil {
			entry.Params[spec.Name] = value
		}
	}

	if len(entry.Params) == 0 {
		entry.Params = nil
	}
	return entry
}

func askScalar(pluginName string, spec plugin.FieldSpec) any {
	message := fmt.Sprintf("[%s] %s:", pluginName, spec.Name)

	if len(spec.Enum) > 0 {
		choice := ""
		if err := survey.AskOne(&survey.Select{Message: message, Options: spec.Enum}, &choice); err != nil {
			log.Fatalf("prompt: %v", err)
		}
		return choice
	}

	switch spec.Type {
	case plugin.FieldTypeNumber:
		raw := ""
		if err := survey.AskOne(&survey.Input{Message: message}, &raw, survey.WithValidator(survey.Required)); err != nil {
			log.Fatalf("prompt: %v", err)
		}
		var value float64
		if _, err := fmt.Sscanf(raw, "%g", &value); err != nil {
			log.Fatalf("%s must be a number, got %q", spec.Name, raw)
		}
		return value
	case plugin.FieldTypeBool:
		value := false
		if err := survey.AskOne(&survey.Confirm{Message: message}, &value); err != nil {
			log.Fatalf("prompt: %v", err)
		}
		return value
	default:
		value := ""
		if err := survey.AskOne(&survey.Input{Message: message}, &value, survey.WithValidator(survey.Required)); err != nil {
			log.Fatalf("prompt: %v", err)
		}
		return value
	}
}
