package regression

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/aouyang1/go-regressor/dataset"
	"github.com/aouyang1/go-regressor/regression/options"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func houseDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	sqft := []float64{1000, 1500, 2000, 2500, 3000}
	bedrooms := []float64{2, 3, 3, 4, 5}
	price := make([]float64, len(sqft))
	for i := range sqft {
		price[i] = 11.0 + 0.001*sqft[i] + 2.0*bedrooms[i]
	}

	ds, err := dataset.New(map[string][]float64{
		"sqft":     sqft,
		"bedrooms": bedrooms,
		"price":    price,
	})
	require.Nil(t, err)
	return ds
}

func TestRegressionFitPredict(t *testing.T) {
	ds := houseDataset(t)

	opt := &options.Options{
		TargetColumn: "price",
		Columns:      []string{"sqft", "bedrooms"},
	}
	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	assert.InDelta(t, 11.0, r.Intercept(), 1e-6)

	coef, err := r.Coefficients()
	require.Nil(t, err)
	assert.InDelta(t, 2.0, coef["col_bedrooms"], 1e-6)
	assert.InDelta(t, 0.001, coef["col_sqft"], 1e-9)

	scores := r.Scores()
	assert.InDelta(t, 0.0, scores.MSE, 1e-9)
	assert.InDelta(t, 1.0, scores.R2, 1e-9)

	newDs, err := dataset.New(map[string][]float64{
		"sqft":     {1200, 2800},
		"bedrooms": {2, 4},
	})
	require.Nil(t, err)

	predicted, err := r.Predict(newDs)
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{16.2, 21.8}, predicted, 1e-6)
}

func TestRegressionEngineeredFeatures(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	b := []float64{2, 1, 4, 3, 6, 5, 8, 9}
	y := make([]float64, len(a))
	for i := range a {
		y[i] = 1.0 + 0.5*a[i] + 2.0*b[i] + 3.0*a[i]*a[i] + 0.25*a[i]*b[i]
	}

	ds, err := dataset.New(map[string][]float64{"a": a, "b": b, "y": y})
	require.Nil(t, err)

	opt := &options.Options{
		TargetColumn: "y",
		Columns:      []string{"a", "b"},
		Transforms:   []options.Transform{options.NewSquare("a")},
		Interactions: []options.Interaction{options.NewProduct("a", "b")},
	}
	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	assert.InDelta(t, 1.0, r.Intercept(), 1e-6)

	coef, err := r.Coefficients()
	require.Nil(t, err)
	assert.InDelta(t, 0.5, coef["col_a"], 1e-6)
	assert.InDelta(t, 2.0, coef["col_b"], 1e-6)
	assert.InDelta(t, 3.0, coef["tx_a_square"], 1e-6)
	assert.InDelta(t, 0.25, coef["ix_a_product_b"], 1e-6)

	eq, err := r.ModelEq()
	require.Nil(t, err)
	assert.Contains(t, eq, "y ~ 1.00")
	assert.Contains(t, eq, "tx_a_square")
}

func TestRegressionLogTarget(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	y := make([]float64, len(a))
	for i := range a {
		y[i] = math.Exp(1.0 + 2.0*a[i])
	}

	ds, err := dataset.New(map[string][]float64{"a": a, "y": y})
	require.Nil(t, err)

	opt := &options.Options{
		TargetColumn: "y",
		LogTarget:    true,
		Columns:      []string{"a"},
	}
	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	assert.InDelta(t, 1.0, r.Intercept(), 1e-6)

	coef, err := r.Coefficients()
	require.Nil(t, err)
	assert.InDelta(t, 2.0, coef["col_a"], 1e-6)

	// predictions stay on the log scale
	predicted, err := r.Predict(ds)
	require.Nil(t, err)
	assert.InDelta(t, 3.0, predicted[0], 1e-6)
}

func TestRegressionCalendarFeature(t *testing.T) {
	dates := []time.Time{
		time.Date(2014, 10, 10, 0, 0, 0, 0, time.UTC), // friday
		time.Date(2014, 10, 11, 0, 0, 0, 0, time.UTC), // saturday
		time.Date(2014, 10, 12, 0, 0, 0, 0, time.UTC), // sunday
		time.Date(2014, 10, 15, 0, 0, 0, 0, time.UTC), // wednesday
	}
	a := []float64{1, 2, 3, 4}
	flag := []float64{0, 1, 1, 0}
	y := make([]float64, len(a))
	for i := range a {
		y[i] = 10.0 + a[i] + 5.0*flag[i]
	}

	ds, err := dataset.NewWithDates(map[string][]float64{"a": a, "y": y}, dates)
	require.Nil(t, err)

	opt := &options.Options{
		TargetColumn: "y",
		Columns:      []string{"a"},
		Calendar:     options.NewCalendar("offmarket", 0),
	}
	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	assert.InDelta(t, 10.0, r.Intercept(), 1e-6)

	coef, err := r.Coefficients()
	require.Nil(t, err)
	assert.InDelta(t, 1.0, coef["col_a"], 1e-6)
	assert.InDelta(t, 5.0, coef["cal_offmarket"], 1e-6)

	noDates, err := dataset.New(map[string][]float64{"a": a, "y": y})
	require.Nil(t, err)
	_, err = r.Predict(noDates)
	assert.ErrorIs(t, err, ErrNoDates)
}

func TestRegressionMaskedTarget(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 8, math.NaN(), 14, 17}

	ds, err := dataset.New(map[string][]float64{"a": a, "y": y})
	require.Nil(t, err)

	opt := &options.Options{
		TargetColumn: "y",
		Columns:      []string{"a"},
	}
	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	// masked row is left out of the fit but still predicted
	assert.InDelta(t, 2.0, r.Intercept(), 1e-6)
	coef, err := r.Coefficients()
	require.Nil(t, err)
	assert.InDelta(t, 3.0, coef["col_a"], 1e-6)

	residual := r.Residuals()
	require.Len(t, residual, len(y))
	assert.True(t, math.IsNaN(residual[2]))
	assert.InDelta(t, 0.0, residual[0], 1e-6)
}

func TestRegressionFitErrors(t *testing.T) {
	ds := houseDataset(t)

	testData := map[string]struct {
		opt *options.Options
		err error
	}{
		"no target": {
			opt: &options.Options{Columns: []string{"sqft"}},
			err: options.ErrNoTargetColumn,
		},
		"no features": {
			opt: &options.Options{TargetColumn: "price"},
			err: options.ErrNoFeatures,
		},
		"unknown solver": {
			opt: &options.Options{
				TargetColumn: "price",
				Columns:      []string{"sqft"},
				Solver:       options.Solver("gradient"),
			},
			err: options.ErrUnknownSolver,
		},
		"unknown column": {
			opt: &options.Options{
				TargetColumn: "price",
				Columns:      []string{"bathrooms"},
			},
			err: dataset.ErrUnknownColumn,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			r, err := New(td.opt)
			require.Nil(t, err)
			assert.ErrorIs(t, r.Fit(ds), td.err)
		})
	}
}

func TestRegressionUntrainedPredict(t *testing.T) {
	r, err := New(&options.Options{TargetColumn: "price", Columns: []string{"sqft"}})
	require.Nil(t, err)

	ds := houseDataset(t)
	_, err = r.Predict(ds)
	assert.ErrorIs(t, err, ErrUntrainedRegression)
}

func TestRegressionSolvers(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{2, 1, 4, 3, 6, 5}
	y := make([]float64, len(a))
	for i := range a {
		y[i] = 1.0 + 2.0*a[i] + 0.5*b[i]
	}
	ds, err := dataset.New(map[string][]float64{"a": a, "b": b, "y": y})
	require.Nil(t, err)

	testData := map[string]struct {
		solver options.Solver
		reg    float64
		grid   []float64
		tol    float64
	}{
		"ridge":      {solver: options.SolverRidge, reg: 1e-8, tol: 1e-3},
		"lasso":      {solver: options.SolverLasso, reg: 0.0, tol: 1e-2},
		"lasso auto": {solver: options.SolverLassoAuto, grid: []float64{100.0, 0.001}, tol: 1e-2},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			r, err := New(&options.Options{
				TargetColumn:       "y",
				Columns:            []string{"a", "b"},
				Solver:             td.solver,
				Regularization:     td.reg,
				RegularizationGrid: td.grid,
			})
			require.Nil(t, err)
			require.Nil(t, r.Fit(ds))

			predicted, err := r.Predict(ds)
			require.Nil(t, err)
			assert.InDeltaSlice(t, y, predicted, td.tol)
		})
	}
}

func TestModelRoundTrip(t *testing.T) {
	ds := houseDataset(t)

	r, err := New(&options.Options{
		TargetColumn: "price",
		Columns:      []string{"sqft", "bedrooms"},
	})
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	model, err := r.Model()
	require.Nil(t, err)
	assert.NotZero(t, model.SchemaHash)

	out, err := json.Marshal(model)
	require.Nil(t, err)

	var restored Model
	require.Nil(t, json.Unmarshal(out, &restored))
	assert.Equal(t, model.SchemaHash, restored.SchemaHash)

	r2, err := NewFromModel(restored)
	require.Nil(t, err)

	expected, err := r.Predict(ds)
	require.Nil(t, err)
	restoredPred, err := r2.Predict(ds)
	require.Nil(t, err)
	assert.InDeltaSlice(t, expected, restoredPred, 1e-9)

	var buf bytes.Buffer
	require.Nil(t, restored.TablePrint(&buf, "", "  "))
	assert.Contains(t, buf.String(), "Weights:")
}

func TestRegressionSchemaMismatch(t *testing.T) {
	ds := houseDataset(t)

	r, err := New(&options.Options{
		TargetColumn: "price",
		Columns:      []string{"sqft", "bedrooms"},
	})
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	model, err := r.Model()
	require.Nil(t, err)

	// widen the declared columns past what the model was fitted with
	model.Options.Columns = append(model.Options.Columns, "floors")

	restored, err := NewFromModel(model)
	require.Nil(t, err)

	wideDs, err := dataset.New(map[string][]float64{
		"sqft":     {1200, 2800},
		"bedrooms": {2, 4},
		"floors":   {1, 2},
	})
	require.Nil(t, err)

	_, err = restored.Predict(wideDs)
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
