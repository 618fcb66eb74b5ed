package feature

import (
	"encoding/json"
	"fmt"
	"strings"
)

type InteractionOp string

const (
	InteractionOpProduct InteractionOp = "product"
	InteractionOpSum     InteractionOp = "sum"
)

// Interaction represents a pairwise engineered column combining two raw
// dataset columns, e.g. bedrooms times bathrooms.
type Interaction struct {
	Left  string        `json:"left"`
	Right string        `json:"right"`
	Op    InteractionOp `json:"op"`
}

func NewInteraction(left, right string, op InteractionOp) *Interaction {
	return &Interaction{left, right, op}
}

// String returns the string representation of the interaction feature
func (i Interaction) String() string {
	return fmt.Sprintf("ix_%s_%s_%s", i.Left, i.Op, i.Right)
}

// Get returns the value of an arbitrary label along with whether the label
// exists
func (i Interaction) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "left":
		return i.Left, true
	case "right":
		return i.Right, true
	case "op":
		return string(i.Op), true
	}
	return "", false
}

// Type returns the type of this feature
func (i Interaction) Type() FeatureType {
	return FeatureTypeInteraction
}

// Decode converts the feature into a map of label values
func (i Interaction) Decode() map[string]string {
	res := make(map[string]string)
	res["left"] = i.Left
	res["right"] = i.Right
	res["op"] = string(i.Op)
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to an interaction feature
func (i *Interaction) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Left  string        `json:"left"`
		Right string        `json:"right"`
		Op    InteractionOp `json:"op"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	i.Left = labelStr.Left
	i.Right = labelStr.Right
	i.Op = labelStr.Op
	return nil
}
