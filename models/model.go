// Package models is a collection of linear regression fitting implementations
// used by the regression engine.
package models

import (
	"gonum.org/v1/gonum/mat"
)

// Model is the common interface implemented by all solvers. The target y is
// expected to be an m x 1 matrix matching the row count of x.
type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}
