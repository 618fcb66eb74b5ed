// Package mat provides helpers for constructing gonum dense matrices from
// slices and named column data.
package mat

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch        = errors.New("column size mismatch")
	ErrRowMismatch        = errors.New("row size mismatch")
	ErrUninitializedArray = errors.New("uninitialized array")
	ErrNoColumns          = errors.New("no columns provided")
)

// NewDenseFromArray creates a dense matrix from a slice of row slices. All
// rows must have the same length.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if m == 0 || n <= 0 {
		return nil, ErrUninitializedArray
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// NewDenseFromCols creates a dense matrix from named columns ordering the
// columns by their sorted names. All columns must have the same length.
func NewDenseFromCols(cols map[string][]float64) (*mat.Dense, []string, error) {
	if len(cols) == 0 {
		return nil, nil, ErrNoColumns
	}

	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)

	m := -1
	for _, name := range names {
		if m >= 0 && len(cols[name]) != m {
			return nil, nil, fmt.Errorf("at column %s, %w", name, ErrRowMismatch)
		}
		if m < 0 {
			m = len(cols[name])
		}
	}
	if m == 0 {
		return nil, nil, ErrUninitializedArray
	}

	x := mat.NewDense(m, len(names), nil)
	for j, name := range names {
		x.SetCol(j, cols[name])
	}
	return x, names, nil
}

// WithIntercept returns a new matrix with a leading column of ones prepended
// to the input matrix.
func WithIntercept(x mat.Matrix) *mat.Dense {
	m, n := x.Dims()

	ones := make([]float64, m)
	floats.AddConst(1.0, ones)

	res := mat.NewDense(m, n+1, nil)
	res.SetCol(0, ones)
	for j := 0; j < n; j++ {
		res.SetCol(j+1, mat.Col(nil, j, x))
	}
	return res
}
