// Package regression fits a linear model over a feature set generated from
// a tabular dataset and serves predictions from the fitted coefficients.
package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-regressor/dataset"
	"github.com/aouyang1/go-regressor/feature"
	"github.com/aouyang1/go-regressor/models"
	"github.com/aouyang1/go-regressor/regression/options"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrUninitializedRegression  = errors.New("uninitialized regression")
	ErrUntrainedRegression      = errors.New("regression has not been trained yet")
	ErrInsufficientTrainingData = errors.New("insufficient training data after removing NaNs")
	ErrNoModelCoefficients      = errors.New("no model coefficients from fit")
	ErrSchemaMismatch           = errors.New("design matrix columns do not match fitted coefficients")
)

// Regression represents a single linear model over engineered features of a
// tabular dataset.
type Regression struct {
	opt    *options.Options
	scores *Scores // score calculations after training

	fLabels    *feature.Labels
	schemaHash uint64

	residual []float64

	coef      []float64
	intercept float64
	trained   bool
}

// New creates a new regression instance with the given options. Options are
// validated on fit.
func New(opt *options.Options) (*Regression, error) {
	if opt == nil {
		opt = options.NewDefaultOptions()
	}
	return &Regression{opt: opt}, nil
}

// NewFromModel creates a new regression instance given a serialized Model.
// The instance can be used for inference immediately without re-training.
func NewFromModel(model Model) (*Regression, error) {
	fLabels, err := model.Weights.FeatureLabels()
	if err != nil {
		return nil, err
	}

	schemaHash := model.SchemaHash
	if schemaHash == 0 {
		schemaHash = fLabels.Hash()
	}

	r := &Regression{
		opt:        model.Options,
		fLabels:    fLabels,
		schemaHash: schemaHash,
		intercept:  model.Weights.Intercept,
		coef:       model.Weights.Coefficients(),
		scores:     model.Scores,
		trained:    true,
	}
	return r, nil
}

func (r *Regression) newModel() (models.Model, error) {
	switch r.opt.Solver {
	case options.SolverRidge:
		return models.NewRidgeRegression(&models.RidgeOptions{
			Lambda:       r.opt.Regularization,
			FitIntercept: true,
		})
	case options.SolverLasso:
		return models.NewLassoRegression(&models.LassoOptions{
			Lambda:       r.opt.Regularization,
			Iterations:   models.DefaultIterations,
			Tolerance:    models.DefaultTolerance,
			FitIntercept: true,
		})
	case options.SolverLassoAuto:
		return models.NewLassoAutoRegression(&models.LassoAutoOptions{
			Lambdas:      r.opt.RegularizationGrid,
			Iterations:   models.DefaultIterations,
			Tolerance:    models.DefaultTolerance,
			FitIntercept: true,
		})
	default:
		return models.NewOLSRegression(nil)
	}
}

// Fit builds the target and design matrix from the input dataset and fits
// the configured solver. Observations with a NaN target are left out of the
// fit but still scored against.
func (r *Regression) Fit(ds *dataset.Dataset) error {
	if r == nil {
		return ErrUninitializedRegression
	}

	opt, err := r.opt.Validate()
	if err != nil {
		return err
	}
	r.opt = opt

	y, err := generateTarget(ds, opt)
	if err != nil {
		return err
	}
	x, err := generateFeatures(ds, opt)
	if err != nil {
		return err
	}

	r.fLabels = x.Labels()
	r.schemaHash = r.fLabels.Hash()

	full := x.Matrix(false)
	m, n := full.Dims()

	// leave out rows with a masked target
	trainRows := make([]int, 0, m)
	for i := 0; i < m; i++ {
		if math.IsNaN(y[i]) {
			continue
		}
		trainRows = append(trainRows, i)
	}
	if len(trainRows) <= 1 {
		return ErrInsufficientTrainingData
	}

	xTrain := mat.NewDense(len(trainRows), n, nil)
	yTrain := make([]float64, 0, len(trainRows))
	for i, row := range trainRows {
		xTrain.SetRow(i, full.RawRowView(row))
		yTrain = append(yTrain, y[row])
	}

	model, err := r.newModel()
	if err != nil {
		return err
	}
	if err := model.Fit(xTrain, mat.NewDense(len(yTrain), 1, yTrain)); err != nil {
		return err
	}

	r.intercept = model.Intercept()
	r.coef = model.Coef()
	r.trained = true

	// score against all rows including the masked ones
	predicted, err := r.Predict(ds)
	if err != nil {
		return fmt.Errorf("unable to get predicted values from training set, %w", err)
	}

	scores, err := NewScores(predicted, y)
	if err != nil {
		return err
	}
	r.scores = scores

	residual := make([]float64, len(y))
	for i := range y {
		residual[i] = y[i] - predicted[i]
	}
	r.residual = residual

	return nil
}

// Predict generates a prediction per dataset row given a pre-trained model.
// The dataset must produce the exact columns the model was fitted with.
func (r *Regression) Predict(ds *dataset.Dataset) ([]float64, error) {
	if r == nil {
		return nil, ErrUninitializedRegression
	}
	if !r.trained {
		return nil, ErrUntrainedRegression
	}

	x, err := generateFeatures(ds, r.opt)
	if err != nil {
		return nil, err
	}

	labels := x.Labels()
	if labels.Hash() != r.schemaHash {
		return nil, fmt.Errorf("got %d features expected %d, %w", labels.Len(), r.fLabels.Len(), ErrSchemaMismatch)
	}

	n := len(r.coef) + 1
	weights := make([]float64, 0, n)
	weights = append(weights, r.intercept)
	weights = append(weights, r.coef...)

	wMx := mat.NewDense(1, n, weights)
	featMx := x.Matrix(true).T()

	var resMx mat.Dense
	resMx.Mul(wMx, featMx)

	return mat.Row(nil, 0, &resMx), nil
}

// FeatureLabels returns the slice of feature labels in the order of the coefficients
func (r *Regression) FeatureLabels() []feature.Feature {
	if r == nil || r.fLabels == nil {
		return nil
	}
	return r.fLabels.Labels()
}

// SchemaHash fingerprints the design matrix columns of the fitted model.
func (r *Regression) SchemaHash() uint64 {
	if r == nil {
		return 0
	}
	return r.schemaHash
}

// Coefficients returns a model map of coefficients keyed by the string
// representation of each feature label
func (r *Regression) Coefficients() (map[string]float64, error) {
	if r == nil {
		return nil, ErrUninitializedRegression
	}

	labels := r.FeatureLabels()
	if len(labels) == 0 || len(r.coef) == 0 {
		return nil, ErrNoModelCoefficients
	}
	coef := make(map[string]float64)
	for i := 0; i < len(r.coef); i++ {
		coef[labels[i].String()] = r.coef[i]
	}
	return coef, nil
}

// Intercept returns the intercept of the regression model
func (r *Regression) Intercept() float64 {
	if r == nil {
		return 0
	}
	return r.intercept
}

// Model returns the serializeable format of the regression model composing
// of the options, schema fingerprint, weights, and fit scores
func (r *Regression) Model() (Model, error) {
	if r == nil {
		return Model{}, ErrUninitializedRegression
	}
	if !r.trained {
		return Model{}, ErrUntrainedRegression
	}

	fws := make([]FeatureWeight, 0, len(r.coef))
	labels := r.fLabels.Labels()
	for i, c := range r.coef {
		fws = append(fws, NewFeatureWeight(labels[i], c))
	}
	w := Weights{
		Intercept: r.intercept,
		Coef:      fws,
	}
	m := Model{
		Options:    r.opt,
		SchemaHash: r.schemaHash,
		Weights:    w,
		Scores:     r.scores,
	}
	return m, nil
}

// ModelEq returns a string representation of the model linear equation in the format of
// y ~ b + m1x1 + m2x2 + ...
func (r *Regression) ModelEq() (string, error) {
	if r == nil {
		return "", ErrUninitializedRegression
	}

	eq := "y ~ "

	coef, err := r.Coefficients()
	if err != nil {
		return "", err
	}

	eq += fmt.Sprintf("%.2f", r.Intercept())
	labels := r.fLabels.Labels()
	for i := 0; i < len(r.coef); i++ {
		w := coef[labels[i].String()]
		if w == 0 {
			continue
		}
		eq += fmt.Sprintf("+%.2f*%s", w, labels[i])
	}
	return eq, nil
}

// Scores returns the fit scores for evaluating how well the resulting model
// fit the training data
func (r *Regression) Scores() Scores {
	if r == nil || r.scores == nil {
		return Scores{}
	}
	return *r.scores
}

// Residuals returns a slice of values representing the difference between the
// training data and the fit data
func (r *Regression) Residuals() []float64 {
	if r == nil {
		return nil
	}
	res := make([]float64, len(r.residual))
	copy(res, r.residual)
	return res
}
