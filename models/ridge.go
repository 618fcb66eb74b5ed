package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultRidgeLambda is the default L2 multiplier for the ridge regression.
const DefaultRidgeLambda = 1.0

// RidgeOptions represents input options to run the Ridge Regression
type RidgeOptions struct {
	// Lambda represents the L2 multiplier, controlling the regularization. Must be non-negative.
	// 0.0 is equivalent to Ordinary Least Squares (OLS).
	Lambda float64

	// FitIntercept adds a constant 1.0 feature as the first column if set to true. The intercept
	// column is not penalized.
	FitIntercept bool
}

// Validate runs basic validation on Ridge options
func (r *RidgeOptions) Validate() (*RidgeOptions, error) {
	if r == nil {
		r = NewDefaultRidgeOptions()
	}
	if r.Lambda < 0 {
		return nil, ErrNegativeLambda
	}
	return r, nil
}

// NewDefaultRidgeOptions returns a default set of Ridge Regression options
func NewDefaultRidgeOptions() *RidgeOptions {
	return &RidgeOptions{
		Lambda:       DefaultRidgeLambda,
		FitIntercept: true,
	}
}

// RidgeRegression solves the L2 regularized normal equations,
// (X'X + lambda*I)beta = X'y, with a Cholesky factorization.
type RidgeRegression struct {
	opt *RidgeOptions

	coef      []float64
	intercept float64
}

// NewRidgeRegression initializes a Ridge model ready for fitting
func NewRidgeRegression(opt *RidgeOptions) (*RidgeRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &RidgeRegression{
		opt: opt,
	}, nil
}

// Fit the model according to the given training data. The target y must be
// an m x 1 matrix.
func (r *RidgeRegression) Fit(x, y mat.Matrix) error {
	if r.opt == nil {
		return ErrNoOptions
	}
	if err := validateFit(x, y); err != nil {
		return err
	}

	if r.opt.FitIntercept {
		x = withIntercept(x)
	}
	m, n := x.Dims()

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	penalized := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := xtx.At(i, j)
			if i == j {
				// leave the intercept unpenalized
				if !r.opt.FitIntercept || i > 0 {
					v += r.opt.Lambda
				}
			}
			penalized.SetSym(i, j, v)
		}
	}

	yVec := mat.NewVecDense(m, mat.Col(nil, 0, y))
	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)

	chol := new(mat.Cholesky)
	if ok := chol.Factorize(penalized); !ok {
		return fmt.Errorf("lambda %f too small for factorization, %w", r.opt.Lambda, ErrSingularNormalEq)
	}

	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return fmt.Errorf("unable to solve penalized normal equations, %w", err)
	}

	c := make([]float64, n)
	copy(c, beta.RawVector().Data)

	if r.opt.FitIntercept {
		r.intercept = c[0]
		r.coef = c[1:]
		return nil
	}
	r.coef = c
	return nil
}

// Predict using the Ridge model
func (r *RidgeRegression) Predict(x mat.Matrix) ([]float64, error) {
	if r.opt == nil {
		return nil, ErrNoOptions
	}
	return linearPredict(x, r.intercept, r.coef, r.opt.FitIntercept)
}

// Score computes the coefficient of determination of the prediction
func (r *RidgeRegression) Score(x, y mat.Matrix) (float64, error) {
	if r.opt == nil {
		return 0.0, ErrNoOptions
	}
	return rsquared(r, x, y)
}

// Intercept returns the computed intercept if FitIntercept is set to true. Defaults to 0.0 if not set.
func (r *RidgeRegression) Intercept() float64 {
	return r.intercept
}

// Coef returns a slice copy of the trained coefficients in the same order of the training feature Matrix by column.
func (r *RidgeRegression) Coef() []float64 {
	c := make([]float64, len(r.coef))
	copy(c, r.coef)
	return c
}
