// Package feature describes the columns of a design matrix. A feature is a
// label with enough metadata to regenerate its values from a dataset.
package feature

import (
	"errors"
	"fmt"
)

var ErrUnknownFeatureType = errors.New("unknown feature type")

type FeatureType int

const (
	FeatureTypeColumn FeatureType = iota
	FeatureTypeTransform
	FeatureTypeInteraction
	FeatureTypeCalendar
)

func (f FeatureType) String() string {
	switch f {
	case FeatureTypeColumn:
		return "column"
	case FeatureTypeTransform:
		return "transform"
	case FeatureTypeInteraction:
		return "interaction"
	case FeatureTypeCalendar:
		return "calendar"
	}
	return "unknown"
}

// MarshalJSON serializes the feature type as its string name.
func (f FeatureType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON parses the string name back into a feature type.
func (f *FeatureType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"column"`:
		*f = FeatureTypeColumn
	case `"transform"`:
		*f = FeatureTypeTransform
	case `"interaction"`:
		*f = FeatureTypeInteraction
	case `"calendar"`:
		*f = FeatureTypeCalendar
	default:
		return fmt.Errorf("%s, %w", string(data), ErrUnknownFeatureType)
	}
	return nil
}

type Feature interface {
	String() string
	Get(string) (string, bool)
	Type() FeatureType
	Decode() map[string]string
}

// Data represents a feature type with its associated observed values
type Data struct {
	F    Feature
	Data []float64
}
