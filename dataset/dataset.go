// Package dataset loads tabular sale records into named float64 columns to
// be used as regression inputs. Values are cast on load and never silently
// coerced.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"
)

var (
	ErrNoRows            = errors.New("no data rows")
	ErrNoColumns         = errors.New("no columns")
	ErrColumnLenMismatch = errors.New("columns have different lengths")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrDateLenMismatch   = errors.New("dates have a different length than columns")
	ErrBadFraction       = errors.New("test fraction must be between 0 and 1 exclusive")
	ErrSplitTooSmall     = errors.New("not enough rows to split")
)

// Dataset represents a fixed number of observations across named numeric
// columns with an optional sale date per observation.
type Dataset struct {
	columns map[string][]float64
	dates   []time.Time
	n       int
}

// New creates a Dataset from named columns. All columns must have the same
// non-zero length.
func New(columns map[string][]float64) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	n := -1
	for name, col := range columns {
		if n >= 0 && len(col) != n {
			return nil, fmt.Errorf("column %s has %d rows instead of %d, %w", name, len(col), n, ErrColumnLenMismatch)
		}
		if n < 0 {
			n = len(col)
		}
	}
	if n == 0 {
		return nil, ErrNoRows
	}

	cols := make(map[string][]float64, len(columns))
	for name, col := range columns {
		c := make([]float64, len(col))
		copy(c, col)
		cols[name] = c
	}

	return &Dataset{
		columns: cols,
		n:       n,
	}, nil
}

// NewWithDates creates a Dataset that additionally carries a sale date per
// observation.
func NewWithDates(columns map[string][]float64, dates []time.Time) (*Dataset, error) {
	ds, err := New(columns)
	if err != nil {
		return nil, err
	}
	if len(dates) != ds.n {
		return nil, fmt.Errorf("got %d dates for %d rows, %w", len(dates), ds.n, ErrDateLenMismatch)
	}
	ds.dates = make([]time.Time, len(dates))
	copy(ds.dates, dates)
	return ds, nil
}

// Len returns the number of observations.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return d.n
}

// Names returns the sorted column names.
func (d *Dataset) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.columns))
	for name := range d.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	if d == nil {
		return false
	}
	_, exists := d.columns[name]
	return exists
}

// Column returns a copy of the named column values.
func (d *Dataset) Column(name string) ([]float64, error) {
	if d == nil {
		return nil, ErrNoColumns
	}
	col, exists := d.columns[name]
	if !exists {
		return nil, fmt.Errorf("%s, %w", name, ErrUnknownColumn)
	}
	c := make([]float64, len(col))
	copy(c, col)
	return c, nil
}

// Dates returns a copy of the per-observation sale dates. Nil when the
// dataset has no date column.
func (d *Dataset) Dates() []time.Time {
	if d == nil || d.dates == nil {
		return nil
	}
	dates := make([]time.Time, len(d.dates))
	copy(dates, d.dates)
	return dates
}

// WithColumn returns a copy of the dataset with the named column replaced.
// The column must already exist and the replacement must have the same
// length.
func (d *Dataset) WithColumn(name string, vals []float64) (*Dataset, error) {
	if d == nil {
		return nil, ErrNoColumns
	}
	if _, exists := d.columns[name]; !exists {
		return nil, fmt.Errorf("%s, %w", name, ErrUnknownColumn)
	}
	if len(vals) != d.n {
		return nil, fmt.Errorf("column %s has %d rows instead of %d, %w", name, len(vals), d.n, ErrColumnLenMismatch)
	}

	cols := make(map[string][]float64, len(d.columns))
	for colName, col := range d.columns {
		src := col
		if colName == name {
			src = vals
		}
		c := make([]float64, len(src))
		copy(c, src)
		cols[colName] = c
	}
	res := &Dataset{
		columns: cols,
		n:       d.n,
	}
	if d.dates != nil {
		res.dates = make([]time.Time, len(d.dates))
		copy(res.dates, d.dates)
	}
	return res, nil
}

// Select returns a new Dataset containing the given row indexes in order.
func (d *Dataset) Select(rows []int) (*Dataset, error) {
	if d == nil {
		return nil, ErrNoColumns
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	cols := make(map[string][]float64, len(d.columns))
	for name, col := range d.columns {
		c := make([]float64, 0, len(rows))
		for _, r := range rows {
			c = append(c, col[r])
		}
		cols[name] = c
	}
	res := &Dataset{
		columns: cols,
		n:       len(rows),
	}

	if d.dates != nil {
		dates := make([]time.Time, 0, len(rows))
		for _, r := range rows {
			dates = append(dates, d.dates[r])
		}
		res.dates = dates
	}
	return res, nil
}

// Split partitions the observations into a train and test set using a seeded
// permutation. Both sides are guaranteed to be non-empty.
func (d *Dataset) Split(testFraction float64, seed uint64) (*Dataset, *Dataset, error) {
	if d == nil {
		return nil, nil, ErrNoColumns
	}
	if testFraction <= 0.0 || testFraction >= 1.0 {
		return nil, nil, ErrBadFraction
	}

	nTest := int(math.Round(float64(d.n) * testFraction))
	if nTest == 0 || nTest == d.n {
		return nil, nil, fmt.Errorf("%d rows with test fraction %f, %w", d.n, testFraction, ErrSplitTooSmall)
	}

	rnd := rand.New(rand.NewPCG(seed, 0))
	perm := rnd.Perm(d.n)

	testRows := make([]int, nTest)
	copy(testRows, perm[:nTest])
	trainRows := make([]int, d.n-nTest)
	copy(trainRows, perm[nTest:])
	sort.Ints(testRows)
	sort.Ints(trainRows)

	train, err := d.Select(trainRows)
	if err != nil {
		return nil, nil, err
	}
	test, err := d.Select(testRows)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}
