package dataset

import "fmt"

// MissingDataSourceError reports a binding whose source name is absent from
// the dataset mapping.
type MissingDataSourceError struct {
	Source string
}

func (e *MissingDataSourceError) Error() string {
	return fmt.Sprintf("dataset: source %q not found in mapping", e.Source)
}

// MissingFieldError reports a bound field absent from the resolved dataset.
type MissingFieldError struct {
	Source string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("dataset: source %q has no field %q", e.Source, e.Field)
}

// IncompatibleDataShapeError reports a dataset whose shape does not match
// what the plugin schema declares it needs.
type IncompatibleDataShapeError struct {
	Source string
	Want   string
	Got    string
}

func (e *IncompatibleDataShapeError) Error() string {
	return fmt.Sprintf("dataset: source %q is %s-shaped, plugin needs %s", e.Source, e.Got, e.Want)
}
