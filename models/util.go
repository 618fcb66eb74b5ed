package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// withIntercept prepends a constant 1.0 column to the design matrix.
func withIntercept(x mat.Matrix) mat.Matrix {
	m, _ := x.Dims()
	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(1, m, ones)

	var xWithOnes mat.Dense
	xWithOnes.Stack(onesMx, x.T())
	return xWithOnes.T()
}

func validateFit(x, y mat.Matrix) error {
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}

	m, _ := x.Dims()
	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}
	return nil
}

// linearPredict computes x*beta after optionally prepending the intercept
// column and coefficient. Column count mismatches fail and are never padded
// or truncated.
func linearPredict(x mat.Matrix, intercept float64, coef []float64, fitIntercept bool) ([]float64, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	if fitIntercept {
		coef = append([]float64{intercept}, coef...)
		x = withIntercept(x)
	}
	n := len(coef)

	_, xn := x.Dims()
	if xn != n {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", xn, n, ErrFeatureLenMismatch)
	}
	coefMx := mat.NewDense(1, n, coef)

	var res mat.Dense
	res.Mul(coefMx, x.T())
	return res.RawRowView(0), nil
}

// rsquared scores a fitted model against a target matrix returning the
// coefficient of determination.
func rsquared(m Model, x, y mat.Matrix) (float64, error) {
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	xm, _ := x.Dims()
	ym, _ := y.Dims()
	if xm != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", xm, ym, ErrTargetLenMismatch)
	}

	res, err := m.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)

	score := stat.RSquaredFrom(res, ySlice, nil)
	if math.IsNaN(score) {
		score = 1.0
	}
	return score, nil
}
