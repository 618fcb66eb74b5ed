// Package stats provides diagnostics over observation and feature slices
// used around the regression fit, e.g. outlier detection and collinearity
// checks.
package stats

import (
	"errors"
	"math"
	"sort"

	"github.com/aouyang1/go-regressor/models"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrMinimumFeatures    = errors.New("need at least 2 features to compute VIF")
	ErrFeatureLenMismatch = errors.New("some feature length is not consistent")
	ErrFeatureLen         = errors.New("must have at least 2 points per feature")
)

// DetectOutliers returns the indexes of values falling outside the Tukey
// fences constructed from the lower and upper percentiles widened by the
// tukey factor.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)
	lowerIdx := int(math.Floor(float64(len(yCopy)) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(yCopy)) * upperPerc))
	if upperIdx >= len(yCopy) {
		upperIdx = len(yCopy) - 1
	}

	lower := yCopy[lowerIdx]
	upper := yCopy[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] >= upper || y[i] <= lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}

// VarianceInflationFactor regresses each feature against all others and
// returns 1/(1-R2) per feature. Values well above 1 indicate collinear
// features that will destabilize individual coefficient estimates.
func VarianceInflationFactor(features map[string][]float64) (map[string]float64, error) {
	if len(features) < 2 {
		return nil, ErrMinimumFeatures
	}
	var m int
	for _, feature := range features {
		if len(feature) < 2 {
			return nil, ErrFeatureLen
		}
		if m == 0 {
			m = len(feature)
			continue
		}
		if m != len(feature) {
			return nil, ErrFeatureLenMismatch
		}
	}

	n := len(features)
	vif := make(map[string]float64)
	x := mat.NewDense(m, n-1, nil)

	for label, labelFeature := range features {
		c := 0
		for otherLabel, otherLabelFeature := range features {
			if otherLabel == label {
				continue
			}
			x.SetCol(c, otherLabelFeature)
			c++
		}

		model, err := models.NewOLSRegression(nil)
		if err != nil {
			return nil, err
		}
		y := mat.NewDense(m, 1, labelFeature)
		if err := model.Fit(x, y); err != nil {
			return nil, err
		}

		predicted, err := model.Predict(x)
		if err != nil {
			return nil, err
		}

		r2 := stat.RSquaredFrom(predicted, labelFeature, nil)
		if r2 >= 1.0 {
			vif[label] = math.Inf(1)
			continue
		}
		vif[label] = 1.0 / (1.0 - r2)
	}
	return vif, nil
}
