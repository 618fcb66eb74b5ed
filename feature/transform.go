package feature

import (
	"encoding/json"
	"fmt"
	"strings"
)

type TransformOp string

const (
	TransformOpSquare TransformOp = "square"
	TransformOpLog    TransformOp = "log"
)

// Transform represents a unary engineered column derived from a raw dataset
// column, e.g. bedrooms squared or log of living area.
type Transform struct {
	Name string      `json:"name"`
	Op   TransformOp `json:"op"`
}

func NewTransform(name string, op TransformOp) *Transform {
	return &Transform{name, op}
}

// String returns the string representation of the transform feature
func (t Transform) String() string {
	return fmt.Sprintf("tx_%s_%s", t.Name, t.Op)
}

// Get returns the value of an arbitrary label along with whether the label
// exists
func (t Transform) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "name":
		return t.Name, true
	case "op":
		return string(t.Op), true
	}
	return "", false
}

// Type returns the type of this feature
func (t Transform) Type() FeatureType {
	return FeatureTypeTransform
}

// Decode converts the feature into a map of label values
func (t Transform) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = t.Name
	res["op"] = string(t.Op)
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a transform feature
func (t *Transform) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string      `json:"name"`
		Op   TransformOp `json:"op"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	t.Name = labelStr.Name
	t.Op = labelStr.Op
	return nil
}
