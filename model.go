package regressor

import "github.com/aouyang1/go-regressor/regression"

// Model represents a serializeable format of a fitted Regressor.
type Model struct {
	Options    *Options         `json:"options"`
	Regression regression.Model `json:"regression_model"`
}
