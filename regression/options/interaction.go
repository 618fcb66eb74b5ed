package options

import (
	"fmt"

	"github.com/aouyang1/go-regressor/feature"
)

// Interaction declares a pairwise engineered feature over two raw dataset
// columns.
type Interaction struct {
	Left  string                `json:"left"`
	Right string                `json:"right"`
	Op    feature.InteractionOp `json:"op"`
}

func NewProduct(left, right string) Interaction {
	return Interaction{Left: left, Right: right, Op: feature.InteractionOpProduct}
}

func NewSum(left, right string) Interaction {
	return Interaction{Left: left, Right: right, Op: feature.InteractionOpSum}
}

func (i Interaction) Valid() error {
	if i.Left == "" || i.Right == "" {
		return ErrNoInteractionColumn
	}
	switch i.Op {
	case feature.InteractionOpProduct, feature.InteractionOpSum:
	default:
		return fmt.Errorf("%s, %w", i.Op, ErrUnknownInteraction)
	}
	return nil
}

// Feature returns the feature descriptor for this interaction.
func (i Interaction) Feature() feature.Feature {
	return feature.NewInteraction(i.Left, i.Right, i.Op)
}
