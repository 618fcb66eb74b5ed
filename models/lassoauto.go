package models

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// LassoAutoOptions represents input options to run the Lasso Regression with
// automated selection of the regularization parameter lambda
type LassoAutoOptions struct {
	// Lambdas is the grid of L1 multipliers to fit over. All must be non-negative.
	Lambdas []float64

	// Iterations is the maximum number of times each fit loops through training all coefficients.
	Iterations int

	// Tolerance is the smallest coefficient change on each iteration to determine when to stop iterating.
	Tolerance float64

	// FitIntercept adds a constant 1.0 feature as the first column if set to true
	FitIntercept bool

	// Parallelization sets how many fits to run in parallel. More will increase memory and compute usage.
	Parallelization int
}

// Validate runs basic validation on Lasso Auto options
func (l *LassoAutoOptions) Validate() (*LassoAutoOptions, error) {
	if l == nil {
		l = NewDefaultLassoAutoOptions()
	}

	if len(l.Lambdas) == 0 {
		return nil, ErrNoLambdas
	}
	for _, lambda := range l.Lambdas {
		if lambda < 0.0 {
			return nil, ErrNegativeLambda
		}
	}

	if l.Iterations < 0 {
		return nil, ErrNegativeIterations
	}
	if l.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if l.Parallelization <= 0 || l.Parallelization > len(l.Lambdas) {
		l.Parallelization = len(l.Lambdas)
	}
	return l, nil
}

// NewDefaultLassoAutoOptions returns a default set of Lasso Auto Regression options
func NewDefaultLassoAutoOptions() *LassoAutoOptions {
	return &LassoAutoOptions{
		Lambdas:         []float64{DefaultLambda},
		Iterations:      DefaultIterations,
		Tolerance:       DefaultTolerance,
		FitIntercept:    true,
		Parallelization: 1,
	}
}

// LassoAutoRegression computes the lasso regression over a grid of lambdas
// keeping the fit with the best coefficient of determination.
type LassoAutoRegression struct {
	opt *LassoAutoOptions

	scoreMu    sync.Mutex
	bestScore  float64
	bestLambda float64
	bestModel  *LassoRegression
}

// NewLassoAutoRegression initializes a Lasso model ready for fitting using automated lambda selection
func NewLassoAutoRegression(opt *LassoAutoOptions) (*LassoAutoRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &LassoAutoRegression{
		opt:       opt,
		bestScore: math.Inf(-1),
	}, nil
}

// Fit runs one coordinate descent fit per lambda, bounded by the configured
// parallelization, and keeps the best scoring model.
func (l *LassoAutoRegression) Fit(x, y mat.Matrix) error {
	if l.opt == nil {
		return ErrNoOptions
	}
	if err := validateFit(x, y); err != nil {
		return err
	}

	sem := make(chan struct{}, l.opt.Parallelization)
	var wg sync.WaitGroup
	for _, lambda := range l.opt.Lambdas {
		sem <- struct{}{}
		wg.Add(1)

		go l.runLasso(lambda, x, y, &wg, sem)
	}
	wg.Wait()

	if l.bestModel == nil {
		return ErrNoBestModel
	}
	return nil
}

func (l *LassoAutoRegression) runLasso(lambda float64, x, y mat.Matrix, wg *sync.WaitGroup, sem chan struct{}) {
	defer func() {
		wg.Done()
		<-sem
	}()

	opt := &LassoOptions{
		Lambda:       lambda,
		Iterations:   l.opt.Iterations,
		Tolerance:    l.opt.Tolerance,
		FitIntercept: l.opt.FitIntercept,
	}
	reg, err := NewLassoRegression(opt)
	if err != nil {
		slog.Error("unable to initialize lasso regression", "error", err.Error())
		return
	}

	if err := reg.Fit(x, y); err != nil {
		slog.Error("unable to fit lasso regression", "error", err.Error())
		return
	}

	score, err := reg.Score(x, y)
	if err != nil {
		slog.Error("unable to compute fit score for lasso regression", "error", err.Error())
		return
	}

	l.scoreMu.Lock()
	defer l.scoreMu.Unlock()
	if score > l.bestScore {
		l.bestScore = score
		l.bestLambda = lambda
		l.bestModel = reg
	}
}

// Predict using the best scoring Lasso model
func (l *LassoAutoRegression) Predict(x mat.Matrix) ([]float64, error) {
	if l.bestModel == nil {
		return nil, ErrNoBestModel
	}
	return l.bestModel.Predict(x)
}

// Score computes the coefficient of determination of the prediction
func (l *LassoAutoRegression) Score(x, y mat.Matrix) (float64, error) {
	if l.bestModel == nil {
		return 0.0, ErrNoBestModel
	}
	return l.bestModel.Score(x, y)
}

// Intercept returns the intercept of the best scoring fit. Defaults to 0.0 if not fit.
func (l *LassoAutoRegression) Intercept() float64 {
	if l.bestModel == nil {
		return 0.0
	}
	return l.bestModel.Intercept()
}

// Coef returns a slice copy of the coefficients of the best scoring fit.
func (l *LassoAutoRegression) Coef() []float64 {
	if l.bestModel == nil {
		return nil
	}
	return l.bestModel.Coef()
}

// BestLambda returns the selected regularization parameter after fitting.
func (l *LassoAutoRegression) BestLambda() float64 {
	return l.bestLambda
}
