package plugin

// Config is a validated, immutable parameter mapping for one widget or
// exporter entry. It is produced by the validator; plugins read it through
// the typed accessors and must not mutate it.
type Config struct {
	values map[string]any
	extra  map[string]any
}

// NewConfig wraps validated values. Unknown keys accepted under passthrough
// validation arrive via extra.
func NewConfig(values, extra map[string]any) Config {
	return Config{values: values, extra: extra}
}

// Has reports whether the key carries a value (default or user supplied).
func (c Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Value returns the raw value for key.
func (c Config) Value(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// String returns the string value for key, or fallback when absent.
func (c Config) String(key, fallback string) string {
	if v, ok := c.values[key].(string); ok {
		return v
	}
	return fallback
}

// Number returns the numeric value for key, or fallback when absent. The
// validator normalises integer and floating literals to float64.
func (c Config) Number(key string, fallback float64) float64 {
	if v, ok := c.values[key].(float64); ok {
		return v
	}
	return fallback
}

// Int returns the numeric value for key truncated to int.
func (c Config) Int(key string, fallback int) int {
	if v, ok := c.values[key].(float64); ok {
		return int(v)
	}
	return fallback
}

// Bool returns the boolean value for key, or fallback when absent.
func (c Config) Bool(key string, fallback bool) bool {
	if v, ok := c.values[key].(bool); ok {
		return v
	}
	return fallback
}

// Strings returns the value for key as a string slice. Non-string elements
// are skipped; the validator guarantees homogeneity for declared field lists.
func (c Config) Strings(key string) []string {
	raw, ok := c.values[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Objects returns the value for key as a slice of element mappings, the
// shape array-of-object fields validate into.
func (c Config) Objects(key string) []map[string]any {
	raw, ok := c.values[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// Numbers returns the value for key as a float64 slice.
func (c Config) Numbers(key string) []float64 {
	raw, ok := c.values[key].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		if f, ok := item.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}

// Extra exposes keys preserved by passthrough validation. Plugins normally
// ignore these; they exist so permissive configurations round-trip.
func (c Config) Extra() map[string]any {
	return c.extra
}

// Keys returns the validated key set in unspecified order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for key := range c.values {
		keys = append(keys, key)
	}
	return keys
}
