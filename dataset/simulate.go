package dataset

import (
	"math/rand/v2"
)

// GenerateUniformColumn produces n values uniformly drawn from [min, max).
func GenerateUniformColumn(n int, min, max float64, rnd *rand.Rand) []float64 {
	col := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		col = append(col, min+rnd.Float64()*(max-min))
	}
	return col
}

// GenerateLinearTarget produces a target column as a weighted sum of the
// input columns plus a bias and gaussian noise scaled by noiseScale.
func GenerateLinearTarget(columns map[string][]float64, weights map[string]float64, bias, noiseScale float64, rnd *rand.Rand) []float64 {
	var n int
	for _, col := range columns {
		n = len(col)
		break
	}

	y := make([]float64, n)
	for i := 0; i < n; i++ {
		val := bias
		for name, w := range weights {
			val += w * columns[name][i]
		}
		y[i] = val + rnd.NormFloat64()*noiseScale
	}
	return y
}
