// Package regressor fits a house price linear regression over a tabular
// sale dataset and serves predictions, diagnostics, and fit charts.
package regressor

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/aouyang1/go-regressor/dataset"
	"github.com/aouyang1/go-regressor/regression"
	"github.com/aouyang1/go-regressor/regression/options"
	"github.com/aouyang1/go-regressor/stats"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/google/uuid"
)

var (
	ErrEmptyDataset     = errors.New("no dataset or uninitialized")
	ErrNoOptionsInModel = errors.New("no options set in model")
	ErrNoFitResults     = errors.New("no fit results, call Fit first")
	ErrNoPlotColumn     = errors.New("no feature column to plot against")
)

// Regressor fits a regression model over a sale dataset and can be used to
// generate price predictions
type Regressor struct {
	opt *Options

	reg *regression.Regression

	fitTrainingData *dataset.Dataset
	fitResults      *Results
	trainScores     *regression.Scores
	testScores      *regression.Scores
	residual        []float64
}

// New creates a new instance of a Regressor using the provided options. If no options are provided
// a default is used.
func New(opt *Options) (*Regressor, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.RegressionOptions == nil {
		opt.RegressionOptions = options.NewDefaultOptions()
	}

	reg, err := regression.New(opt.RegressionOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize regression, %w", err)
	}
	return &Regressor{
		opt: opt,
		reg: reg,
	}, nil
}

// NewFromModel creates a new instance of Regressor from a pre-existing model. This should be generated
// from a previous regressor call to Model().
func NewFromModel(model Model) (*Regressor, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}
	opt := model.Options
	opt.RegressionOptions = model.Regression.Options

	reg, err := regression.NewFromModel(model.Regression)
	if err != nil {
		return nil, fmt.Errorf("unable to load from regression model, %w", err)
	}
	return &Regressor{
		opt: opt,
		reg: reg,
	}, nil
}

// Fit fits the regression model against the input dataset optionally holding
// out a random test fraction and running outlier masking passes over the
// training target.
func (r *Regressor) Fit(ds *dataset.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return ErrEmptyDataset
	}
	r.fitTrainingData = ds

	trainDs := ds
	var testDs *dataset.Dataset
	if r.opt.TestFraction > 0 {
		train, test, err := ds.Split(r.opt.TestFraction, r.opt.Seed)
		if err != nil {
			return fmt.Errorf("unable to split dataset, %w", err)
		}
		trainDs, testDs = train, test
	}

	if err := r.fitWithOutliers(trainDs); err != nil {
		return err
	}

	trainScores := r.reg.Scores()
	r.trainScores = &trainScores
	r.residual = r.reg.Residuals()

	if testDs != nil {
		predicted, err := r.reg.Predict(testDs)
		if err != nil {
			return fmt.Errorf("unable to predict on test holdout, %w", err)
		}
		actual, err := r.targetOnModelScale(testDs)
		if err != nil {
			return err
		}
		scores, err := regression.NewScores(predicted, actual)
		if err != nil {
			return err
		}
		r.testScores = scores
	}

	fitResults, err := r.Predict(ds)
	if err != nil {
		return fmt.Errorf("unable to get predicted values from training set, %w", err)
	}
	r.fitResults = fitResults
	return nil
}

func (r *Regressor) fitWithOutliers(ds *dataset.Dataset) error {
	// iterate to remove outliers
	numPasses := 0
	if r.opt.OutlierOptions != nil {
		numPasses = r.opt.OutlierOptions.NumPasses
	}
	target := r.opt.RegressionOptions.TargetColumn

	cur := ds
	for i := 0; i <= numPasses; i++ {
		if err := r.reg.Fit(cur); err != nil {
			return fmt.Errorf("unable to fit regression, %w", err)
		}

		// break out if no outlier options provided
		if r.opt.OutlierOptions == nil {
			break
		}

		// previously masked rows carry a NaN residual and are left out of
		// the fence computation
		residual := r.reg.Residuals()
		vals := make([]float64, 0, len(residual))
		rows := make([]int, 0, len(residual))
		for j, v := range residual {
			if math.IsNaN(v) {
				continue
			}
			vals = append(vals, v)
			rows = append(rows, j)
		}

		outlierIdxs := stats.DetectOutliers(
			vals,
			r.opt.OutlierOptions.LowerPercentile,
			r.opt.OutlierOptions.UpperPercentile,
			r.opt.OutlierOptions.TukeyFactor,
		)

		// no more outliers detected with outlier options so break early
		if len(outlierIdxs) == 0 {
			break
		}

		y, err := cur.Column(target)
		if err != nil {
			return err
		}
		for _, idx := range outlierIdxs {
			y[rows[idx]] = math.NaN()
		}
		cur, err = cur.WithColumn(target, y)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Regressor) targetOnModelScale(ds *dataset.Dataset) ([]float64, error) {
	y, err := ds.Column(r.opt.RegressionOptions.TargetColumn)
	if err != nil {
		return nil, err
	}
	if !r.opt.RegressionOptions.LogTarget {
		return y, nil
	}
	for i, v := range y {
		if math.IsNaN(v) || v <= 0 {
			y[i] = math.NaN()
			continue
		}
		y[i] = math.Log(v)
	}
	return y, nil
}

// Predict generates a prediction per dataset row given a pre-trained model
func (r *Regressor) Predict(ds *dataset.Dataset) (*Results, error) {
	predicted, err := r.reg.Predict(ds)
	if err != nil {
		return nil, fmt.Errorf("unable to predict regression, %w", err)
	}

	level := make([]float64, len(predicted))
	copy(level, predicted)
	if r.opt.RegressionOptions.LogTarget {
		for i, v := range level {
			level[i] = math.Exp(v)
		}
	}

	return &Results{
		RunID:     uuid.NewString(),
		Predicted: predicted,
		Level:     level,
	}, nil
}

// Residuals returns the difference between the final fit against the training data
func (r *Regressor) Residuals() []float64 {
	return r.residual
}

// Intercept returns the intercept of the regression fit
func (r *Regressor) Intercept() float64 {
	return r.reg.Intercept()
}

// Coefficients returns all coefficient weights associated with the feature label string
func (r *Regressor) Coefficients() (map[string]float64, error) {
	return r.reg.Coefficients()
}

// ModelEq returns a string representation of the fit model represented as
// y ~ b + m1x1 + m2x2 ...
func (r *Regressor) ModelEq() (string, error) {
	return r.reg.ModelEq()
}

// Scores returns the fit scores over the training rows
func (r *Regressor) Scores() regression.Scores {
	if r.trainScores == nil {
		return regression.Scores{}
	}
	return *r.trainScores
}

// TestScores returns the scores over the holdout rows. Nil when fitting
// without a test fraction.
func (r *Regressor) TestScores() *regression.Scores {
	return r.testScores
}

// TrainingData returns the training data used to fit the current regressor model
func (r *Regressor) TrainingData() *dataset.Dataset {
	return r.fitTrainingData
}

// FitResults returns the results of the fit over the full training dataset
func (r *Regressor) FitResults() *Results {
	return r.fitResults
}

// CollinearityReport computes the variance inflation factor per engineered
// feature of the input dataset. Values well above 1 flag features whose
// coefficients should not be interpreted individually.
func (r *Regressor) CollinearityReport(ds *dataset.Dataset) (map[string]float64, error) {
	feat, err := regression.Features(ds, r.opt.RegressionOptions)
	if err != nil {
		return nil, err
	}
	cols := make(map[string][]float64, len(feat))
	for label, fd := range feat {
		cols[label] = fd.Data
	}
	return stats.VarianceInflationFactor(cols)
}

// Model generates a serializeable representation of the fit options and regression model. This
// can be used to initialize a new Regressor for immediate predictions skipping the training step.
func (r *Regressor) Model() (Model, error) {
	regModel, err := r.reg.Model()
	if err != nil {
		return Model{}, fmt.Errorf("unable to fetch regression model, %w", err)
	}
	return Model{
		Options:    r.opt,
		Regression: regModel,
	}, nil
}

// PlotOpts selects the raw dataset column plotted against the target. By
// default the first configured feature column is used.
type PlotOpts struct {
	FeatureColumn string
}

// PlotFit uses the Apache Echarts library to generate an html file showing the resulting fit
// against a feature column and the fit residual
func (r *Regressor) PlotFit(path string, opt *PlotOpts) error {
	td := r.TrainingData()
	if td == nil || r.fitResults == nil {
		return ErrNoFitResults
	}

	col := ""
	if opt != nil {
		col = opt.FeatureColumn
	}
	if col == "" {
		if len(r.opt.RegressionOptions.Columns) == 0 {
			return ErrNoPlotColumn
		}
		col = r.opt.RegressionOptions.Columns[0]
	}

	x, err := td.Column(col)
	if err != nil {
		return err
	}
	actual, err := td.Column(r.opt.RegressionOptions.TargetColumn)
	if err != nil {
		return err
	}
	fitted := r.fitResults.Level

	// order by the feature column so the fitted overlay reads left to right
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })

	xs := make([]float64, len(idx))
	ys := make([]float64, len(idx))
	fs := make([]float64, len(idx))
	for i, row := range idx {
		xs[i] = x[row]
		ys[i] = actual[row]
		fs[i] = fitted[row]
	}

	page := components.NewPage()
	page.AddCharts(
		ScatterFit("Regression Fit", col, xs, ys, fs),
		ScatterResiduals("Fit Residual", r.Residuals()),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := page.Render(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
