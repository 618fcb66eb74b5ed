package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewDenseFromArray(t *testing.T) {
	testData := map[string]struct {
		x        [][]float64
		expected *mat.Dense
		err      error
	}{
		"two by three": {
			x: [][]float64{
				{1, 2, 3},
				{4, 5, 6},
			},
			expected: mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}),
		},
		"ragged rows": {
			x: [][]float64{
				{1, 2, 3},
				{4, 5},
			},
			err: ErrColMismatch,
		},
		"empty": {
			x:   nil,
			err: ErrUninitializedArray,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := NewDenseFromArray(td.x)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.True(t, mat.EqualApprox(td.expected, res, 1e-12))
		})
	}
}

func TestNewDenseFromCols(t *testing.T) {
	testData := map[string]struct {
		cols     map[string][]float64
		expected *mat.Dense
		names    []string
		err      error
	}{
		"sorted column order": {
			cols: map[string][]float64{
				"sqft":     {1, 2, 3},
				"bedrooms": {4, 5, 6},
			},
			expected: mat.NewDense(3, 2, []float64{4, 1, 5, 2, 6, 3}),
			names:    []string{"bedrooms", "sqft"},
		},
		"length mismatch": {
			cols: map[string][]float64{
				"sqft":     {1, 2, 3},
				"bedrooms": {4, 5},
			},
			err: ErrRowMismatch,
		},
		"no columns": {
			cols: nil,
			err:  ErrNoColumns,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, names, err := NewDenseFromCols(td.cols)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.names, names)
			assert.True(t, mat.EqualApprox(td.expected, res, 1e-12))
		})
	}
}

func TestWithIntercept(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	res := WithIntercept(x)
	expected := mat.NewDense(2, 3, []float64{1, 1, 2, 1, 3, 4})
	assert.True(t, mat.EqualApprox(expected, res, 1e-12))
}
