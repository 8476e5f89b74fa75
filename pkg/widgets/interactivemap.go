package widgets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
	rendertemplate "github.com/ecoviz/go-exportgen/pkg/render/template"
)

// InteractiveMap renders a geometry dataset as a map container with an
// embedded GeoJSON payload. The client-side map library picks the payload up
// from the fragment; the widget itself stays library-agnostic.
type InteractiveMap struct {
	templates rendertemplate.TemplateRenderer
}

// NewInteractiveMap constructs the interactive_map widget.
func NewInteractiveMap(templates rendertemplate.TemplateRenderer) *InteractiveMap {
	return &InteractiveMap{templates: templates}
}

func (w *InteractiveMap) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		Name:  "interactive_map",
		Kind:  plugin.KindWidget,
		Shape: plugin.ShapeGeometry,
		Schema: []plugin.FieldSpec{
			{Name: "geometry_field", Type: plugin.FieldTypeString, Default: "geometry"},
			{Name: "property_fields", Type: plugin.FieldTypeArray, Binds: plugin.BindFieldList},
			{Name: "title", Type: plugin.FieldTypeString},
			{Name: "zoom", Type: plugin.FieldTypeNumber, Default: 8},
			{Name: "center", Type: plugin.FieldTypeArray},
		},
	}
}

type geoFeature struct {
	Type       string         `json:"type"`
	Geometry   any            `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

func (w *InteractiveMap) Render(ctx context.Context, input plugin.Input, cfg plugin.Config) (*plugin.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Datasets that are not strict GeoJSON may carry their geometry under a
	// property instead of the standard geometry member.
	geometryField := cfg.String("geometry_field", "geometry")

	collection := geoCollection{Type: "FeatureCollection", Features: make([]geoFeature, len(input.Features))}
	for i, feature := range input.Features {
		geometry := feature.Geometry
		properties := feature.Properties
		if geometryField != "geometry" {
			alt, ok := feature.Properties[geometryField]
			if !ok {
				return nil, fmt.Errorf("interactive_map: feature %d has no %q property", i, geometryField)
			}
			geometry = alt
			properties = make(map[string]any, len(feature.Properties)-1)
			for key, value := range feature.Properties {
				if key != geometryField {
					properties[key] = value
				}
			}
		}
		collection.Features[i] = geoFeature{
			Type:       "Feature",
			Geometry:   geometry,
			Properties: properties,
		}
	}
	payload, err := json.Marshal(collection)
	if err != nil {
		return nil, fmt.Errorf("interactive_map: encode geojson: %w", err)
	}

	center := cfg.Numbers("center")
	if len(center) != 0 && len(center) != 2 {
		return nil, fmt.Errorf("interactive_map: center needs exactly two coordinates, got %d", len(center))
	}
	centerAttr := ""
	if len(center) == 2 {
		centerAttr = formatCoord(center[0]) + "," + formatCoord(center[1])
	}

	view := map[string]any{
		"title":   cfg.String("title", ""),
		"zoom":    cfg.Int("zoom", 8),
		"center":  centerAttr,
		"geojson": string(payload),
		"count":   len(collection.Features),
		"source":  input.Source,
	}

	html, err := w.templates.RenderTemplate("templates/interactive_map", view)
	if err != nil {
		return nil, fmt.Errorf("interactive_map: render template: %w", err)
	}
	return &plugin.Artifact{Type: plugin.ArtifactHTMLFragment, Payload: []byte(html)}, nil
}
