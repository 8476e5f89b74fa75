package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/ecoviz/go-exportgen/pkg/plugin"
)

// LoadMapping reads a JSON dataset mapping from disk. The document is an
// object keyed by dataset name; each value is either a flat record object or
// a GeoJSON FeatureCollection.
func LoadMapping(ctx context.Context, path string) (Mapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read mapping %s: %w", path, err)
	}
	mapping, err := ParseMapping(data)
	if err != nil {
		return nil, fmt.Errorf("dataset: mapping %s: %w", path, err)
	}
	return mapping, nil
}

// ParseMapping decodes a dataset mapping document, probing each dataset's
// shape. A value carrying type=FeatureCollection with a features array is
// geometry-shaped; any other object is a flat record.
func ParseMapping(data []byte) (Mapping, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("expected an object keyed by dataset name")
	}

	mapping := make(Mapping)
	var parseErr error
	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			parseErr = fmt.Errorf("dataset %q: expected object, got %s", key.String(), value.Type)
			return false
		}
		if isFeatureCollection(value) {
			mapping[key.String()] = Geometry(parseFeatures(value))
			return true
		}
		record, ok := value.Value().(map[string]any)
		if !ok {
			parseErr = fmt.Errorf("dataset %q: malformed record", key.String())
			return false
		}
		mapping[key.String()] = Flat(record)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return mapping, nil
}

func isFeatureCollection(value gjson.Result) bool {
	return value.Get("type").String() == "FeatureCollection" && value.Get("features").IsArray()
}

func parseFeatures(value gjson.Result) []plugin.Feature {
	raw := value.Get("features").Array()
	features := make([]plugin.Feature, 0, len(raw))
	for _, item := range raw {
		feature := plugin.Feature{Geometry: item.Get("geometry").Value()}
		if props, ok := item.Get("properties").Value().(map[string]any); ok {
			feature.Properties = props
		} else {
			feature.Properties = map[string]any{}
		}
		features = append(features, feature)
	}
	return features
}
