package feature

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Column represents a raw numeric dataset column used as-is in the design
// matrix.
type Column struct {
	Name string `json:"name"`
}

func NewColumn(name string) *Column {
	return &Column{name}
}

// String returns the string representation of the column feature
func (c Column) String() string {
	return fmt.Sprintf("col_%s", c.Name)
}

// Get returns the value of an arbitrary label along with whether the label
// exists
func (c Column) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "name":
		return c.Name, true
	}
	return "", false
}

// Type returns the type of this feature
func (c Column) Type() FeatureType {
	return FeatureTypeColumn
}

// Decode converts the feature into a map of label values
func (c Column) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = c.Name
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a column feature
func (c *Column) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	c.Name = labelStr.Name
	return nil
}
