package models

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultRankTolerance is the relative diagonal threshold under which the QR
// factorization is treated as rank deficient.
const DefaultRankTolerance = 1e-12

// OLSOptions represents input options to run the OLS Regression
type OLSOptions struct {
	// FitIntercept adds a constant 1.0 feature as the first column if set to true
	FitIntercept bool

	// RankTolerance sets the relative threshold for detecting a rank
	// deficient design matrix. Defaults to DefaultRankTolerance when zero.
	RankTolerance float64
}

// Validate runs basic validation on OLS options
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}
	if o.RankTolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if o.RankTolerance == 0 {
		o.RankTolerance = DefaultRankTolerance
	}
	return o, nil
}

// NewDefaultOLSOptions returns a default set of OLS Regression options
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept:  true,
		RankTolerance: DefaultRankTolerance,
	}
}

// OLSRegression computes ordinary least squares using QR factorization
// falling back to a minimum-norm SVD solution when the design matrix is
// rank deficient.
type OLSRegression struct {
	opt *OLSOptions

	coef      []float64
	intercept float64
	rank      int
}

// NewOLSRegression initializes an ordinary least squares model ready for fitting
func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// Fit solves for the coefficients minimizing the squared residual between
// x*beta and y. The target y must be an m x 1 matrix.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if err := validateFit(x, y); err != nil {
		return err
	}

	if o.opt.FitIntercept {
		x = withIntercept(x)
	}
	m, n := x.Dims()

	var c []float64
	if m < n {
		// underdetermined systems cannot be QR factorized and are rank
		// deficient by construction
		c = o.solveMinNorm(x, y, m, n)
	} else {
		qr := new(mat.QR)
		qr.Factorize(x)

		r := new(mat.Dense)
		qr.RTo(r)

		o.rank = n
		if diagRank(r, n, o.opt.RankTolerance) < n {
			c = o.solveMinNorm(x, y, m, n)
		} else {
			c = solveQR(qr, r, y, n)
		}
	}

	if o.opt.FitIntercept {
		o.intercept = c[0]
		o.coef = c[1:]
		return nil
	}
	o.coef = c
	return nil
}

// solveQR back substitutes through the triangular factor to recover the
// coefficients.
func solveQR(qr *mat.QR, r *mat.Dense, y mat.Matrix, n int) []float64 {
	q := new(mat.Dense)
	qr.QTo(q)

	yq := new(mat.Dense)
	yq.Mul(y.T(), q)

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}
	return c
}

// solveMinNorm computes the minimum-norm least squares solution for a rank
// deficient design matrix.
func (o *OLSRegression) solveMinNorm(x, y mat.Matrix, m, n int) []float64 {
	var svd mat.SVD
	svd.Factorize(x, mat.SVDThin)

	values := svd.Values(nil)
	rank := 0
	for _, v := range values {
		if v > o.opt.RankTolerance*values[0] {
			rank++
		}
	}
	o.rank = rank

	slog.Warn(
		"design matrix is rank deficient, using minimum-norm solution",
		slog.Int("rank", rank),
		slog.Int("columns", n),
	)

	b := mat.NewDense(m, 1, mat.Col(nil, 0, y))

	sol := new(mat.Dense)
	svd.SolveTo(sol, b, rank)
	return mat.Col(nil, 0, sol)
}

// diagRank counts the diagonal entries of the triangular factor above the
// relative tolerance.
func diagRank(r *mat.Dense, n int, tol float64) int {
	maxDiag := 0.0
	for i := 0; i < n; i++ {
		maxDiag = math.Max(maxDiag, math.Abs(r.At(i, i)))
	}

	rank := 0
	for i := 0; i < n; i++ {
		if math.Abs(r.At(i, i)) > tol*maxDiag {
			rank++
		}
	}
	return rank
}

// Predict using the OLS model
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	return linearPredict(x, o.intercept, o.coef, o.opt.FitIntercept)
}

// Score computes the coefficient of determination of the prediction
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if o.opt == nil {
		return 0.0, ErrNoOptions
	}
	return rsquared(o, x, y)
}

// Intercept returns the computed intercept if FitIntercept is set to true. Defaults to 0.0 if not set.
func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

// Coef returns a slice copy of the trained coefficients in the same order of the training feature Matrix by column.
func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// Rank returns the effective rank of the design matrix observed during the
// last fit.
func (o *OLSRegression) Rank() int {
	return o.rank
}
