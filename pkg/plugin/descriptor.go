package plugin

// Kind separates widget plugins, which produce embeddable HTML fragments,
// from exporter plugins, which produce standalone files.
type Kind string

const (
	KindWidget   Kind = "widget"
	KindExporter Kind = "exporter"
)

// FieldType enumerates the value kinds a configuration key may carry.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeBool   FieldType = "bool"
	FieldTypeArray  FieldType = "array"
	FieldTypeObject FieldType = "object"
)

// DataShape declares which dataset layout a plugin consumes: a flat record of
// named values, or a collection of geometry features.
type DataShape string

const (
	ShapeFlat     DataShape = "flat"
	ShapeGeometry DataShape = "geometry"
)

// FieldBinding tells the data binding resolver how a configuration key maps
// onto dataset fields. Most keys carry plain parameters (BindNone); keys such
// as x_field name a single dataset field, while list-valued keys can name
// several at once.
type FieldBinding string

const (
	// BindNone marks a plain parameter with no dataset dependency.
	BindNone FieldBinding = ""
	// BindField marks a string parameter whose value names one dataset field.
	BindField FieldBinding = "field"
	// BindFieldList marks an array of strings, each naming a dataset field.
	BindFieldList FieldBinding = "field-list"
	// BindObjectList marks an array of objects where the key identified by
	// FieldSpec.BindKey names a dataset field in each element.
	BindObjectList FieldBinding = "object-list"
)

// FieldSpec defines one accepted configuration key for a plugin. The
// validator walks these to turn a raw params mapping into a typed Config.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
	Default  any

	// Enum restricts string fields to a fixed set of values when non-empty.
	Enum []string

	// Elem describes the element shape of array fields holding objects, e.g.
	// info_grid's fields: [{label, value}].
	Elem []FieldSpec

	// Binds declares the key's dataset-field dependency for the resolver.
	Binds FieldBinding
	// BindKey names the element key carrying the dataset field when Binds is
	// BindObjectList.
	BindKey string
}

// Descriptor is the identity record a plugin registers under. It is immutable
// once registered and lives for the process lifetime.
type Descriptor struct {
	Name   string
	Kind   Kind
	Shape  DataShape
	Schema []FieldSpec
}

// SpecFor returns the FieldSpec for the named configuration key.
func (d Descriptor) SpecFor(name string) (FieldSpec, bool) {
	for _, spec := range d.Schema {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}
