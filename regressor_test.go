package regressor

import (
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/aouyang1/go-regressor/dataset"
	"github.com/aouyang1/go-regressor/regression/options"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHouseData(nObs int, noiseScale float64) (*dataset.Dataset, error) {
	rnd := rand.New(rand.NewPCG(42, 0))

	columns := map[string][]float64{
		"sqft":     dataset.GenerateUniformColumn(nObs, 800, 3500, rnd),
		"bedrooms": dataset.GenerateUniformColumn(nObs, 1, 6, rnd),
	}
	columns["price"] = dataset.GenerateLinearTarget(
		columns,
		map[string]float64{"sqft": 0.2, "bedrooms": 30.0},
		100.0,
		noiseScale,
		rnd,
	)
	return dataset.New(columns)
}

func setupOptions() *Options {
	return &Options{
		RegressionOptions: &options.Options{
			TargetColumn: "price",
			Columns:      []string{"sqft", "bedrooms"},
		},
	}
}

func TestRegressorFit(t *testing.T) {
	ds, err := setupHouseData(200, 1.0)
	require.Nil(t, err)

	r, err := New(setupOptions())
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	assert.InDelta(t, 100.0, r.Intercept(), 5.0)

	coef, err := r.Coefficients()
	require.Nil(t, err)
	assert.InDelta(t, 0.2, coef["col_sqft"], 0.01)
	assert.InDelta(t, 30.0, coef["col_bedrooms"], 1.0)

	scores := r.Scores()
	assert.Greater(t, scores.R2, 0.99)
	assert.Nil(t, r.TestScores())

	res := r.FitResults()
	require.NotNil(t, res)
	assert.NotEmpty(t, res.RunID)
	assert.Len(t, res.Predicted, ds.Len())
	assert.Equal(t, res.Predicted, res.Level)

	eq, err := r.ModelEq()
	require.Nil(t, err)
	assert.Contains(t, eq, "y ~ ")
}

func TestRegressorHoldout(t *testing.T) {
	ds, err := setupHouseData(200, 1.0)
	require.Nil(t, err)

	opt := setupOptions()
	opt.TestFraction = 0.2
	opt.Seed = 7

	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	testScores := r.TestScores()
	require.NotNil(t, testScores)
	assert.Greater(t, testScores.R2, 0.99)

	// the fit residuals only cover the training rows
	assert.Len(t, r.Residuals(), 160)
}

func TestRegressorOutlierMasking(t *testing.T) {
	ds, err := setupHouseData(200, 1.0)
	require.Nil(t, err)

	// corrupt a few sale prices well outside the noise band
	price, err := ds.Column("price")
	require.Nil(t, err)
	corrupted := []int{10, 50, 90}
	for _, idx := range corrupted {
		price[idx] += 5000.0
	}
	ds, err = ds.WithColumn("price", price)
	require.Nil(t, err)

	opt := setupOptions()
	opt.OutlierOptions = NewOutlierOptions()

	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	// corrupted rows should be masked out of the final fit
	residual := r.Residuals()
	for _, idx := range corrupted {
		assert.True(t, math.IsNaN(residual[idx]), "row %d should be masked", idx)
	}

	coef, err := r.Coefficients()
	require.Nil(t, err)
	assert.InDelta(t, 0.2, coef["col_sqft"], 0.01)
	assert.InDelta(t, 30.0, coef["col_bedrooms"], 1.0)
}

func TestRegressorLogTarget(t *testing.T) {
	nObs := 100
	rnd := rand.New(rand.NewPCG(11, 0))
	sqft := dataset.GenerateUniformColumn(nObs, 800, 3500, rnd)
	price := make([]float64, nObs)
	for i := range sqft {
		price[i] = math.Exp(5.0 + 0.0005*sqft[i])
	}
	ds, err := dataset.New(map[string][]float64{"sqft": sqft, "price": price})
	require.Nil(t, err)

	r, err := New(&Options{
		RegressionOptions: &options.Options{
			TargetColumn: "price",
			LogTarget:    true,
			Columns:      []string{"sqft"},
		},
	})
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	res, err := r.Predict(ds)
	require.Nil(t, err)

	// level predictions land back on the original price scale
	assert.InDeltaSlice(t, price, res.Level, 1e-4)
	assert.InDelta(t, math.Log(price[0]), res.Predicted[0], 1e-8)
}

func TestRegressorModelRoundTrip(t *testing.T) {
	ds, err := setupHouseData(100, 1.0)
	require.Nil(t, err)

	r, err := New(setupOptions())
	require.Nil(t, err)
	require.Nil(t, r.Fit(ds))

	model, err := r.Model()
	require.Nil(t, err)

	out, err := json.Marshal(model)
	require.Nil(t, err)

	var restored Model
	require.Nil(t, json.Unmarshal(out, &restored))

	r2, err := NewFromModel(restored)
	require.Nil(t, err)

	expected, err := r.Predict(ds)
	require.Nil(t, err)
	restoredRes, err := r2.Predict(ds)
	require.Nil(t, err)
	assert.InDeltaSlice(t, expected.Predicted, restoredRes.Predicted, 1e-9)

	_, err = NewFromModel(Model{})
	assert.ErrorIs(t, err, ErrNoOptionsInModel)
}

func TestRegressorCollinearityReport(t *testing.T) {
	nObs := 100
	rnd := rand.New(rand.NewPCG(3, 0))
	sqft := dataset.GenerateUniformColumn(nObs, 800, 3500, rnd)
	bedrooms := dataset.GenerateUniformColumn(nObs, 1, 6, rnd)

	// sqft_above is nearly a rescale of sqft
	sqftAbove := make([]float64, nObs)
	for i := range sqft {
		sqftAbove[i] = 0.8 * sqft[i]
	}

	columns := map[string][]float64{
		"sqft":       sqft,
		"bedrooms":   bedrooms,
		"sqft_above": sqftAbove,
	}
	columns["price"] = dataset.GenerateLinearTarget(
		columns,
		map[string]float64{"sqft": 0.2, "bedrooms": 30.0},
		100.0,
		1.0,
		rnd,
	)
	ds, err := dataset.New(columns)
	require.Nil(t, err)

	r, err := New(&Options{
		RegressionOptions: &options.Options{
			TargetColumn: "price",
			Columns:      []string{"sqft", "bedrooms", "sqft_above"},
		},
	})
	require.Nil(t, err)

	vif, err := r.CollinearityReport(ds)
	require.Nil(t, err)

	assert.Greater(t, vif["col_sqft"], 100.0)
	assert.Greater(t, vif["col_sqft_above"], 100.0)
	assert.Less(t, vif["col_bedrooms"], 10.0)
}

func TestRegressorFitErrors(t *testing.T) {
	r, err := New(setupOptions())
	require.Nil(t, err)
	assert.ErrorIs(t, r.Fit(nil), ErrEmptyDataset)

	ds, err := setupHouseData(10, 1.0)
	require.Nil(t, err)
	_, err = r.Predict(ds)
	assert.NotNil(t, err)
}

func TestRegressorPlotFit(t *testing.T) {
	ds, err := setupHouseData(50, 1.0)
	require.Nil(t, err)

	r, err := New(setupOptions())
	require.Nil(t, err)

	assert.ErrorIs(t, r.PlotFit("unused.html", nil), ErrNoFitResults)

	require.Nil(t, r.Fit(ds))

	path := filepath.Join(t.TempDir(), "fit.html")
	require.Nil(t, r.PlotFit(path, nil))

	info, err := os.Stat(path)
	require.Nil(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
