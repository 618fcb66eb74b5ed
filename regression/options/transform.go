package options

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-regressor/feature"
)

var (
	ErrNoTransformColumn   = errors.New("no transform column")
	ErrUnknownTransformOp  = errors.New("unknown transform op")
	ErrNoInteractionColumn = errors.New("missing interaction column")
	ErrUnknownInteraction  = errors.New("unknown interaction op")
)

// Transform declares a unary engineered feature over a raw dataset column.
type Transform struct {
	Column string              `json:"column"`
	Op     feature.TransformOp `json:"op"`
}

func NewSquare(column string) Transform {
	return Transform{Column: column, Op: feature.TransformOpSquare}
}

func NewLog(column string) Transform {
	return Transform{Column: column, Op: feature.TransformOpLog}
}

func (t Transform) Valid() error {
	if t.Column == "" {
		return ErrNoTransformColumn
	}
	switch t.Op {
	case feature.TransformOpSquare, feature.TransformOpLog:
	default:
		return fmt.Errorf("%s, %w", t.Op, ErrUnknownTransformOp)
	}
	return nil
}

// Feature returns the feature descriptor for this transform.
func (t Transform) Feature() feature.Feature {
	return feature.NewTransform(t.Column, t.Op)
}
