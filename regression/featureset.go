package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-regressor/dataset"
	"github.com/aouyang1/go-regressor/feature"
	"github.com/aouyang1/go-regressor/regression/options"
	"github.com/aouyang1/go-regressor/regression/util"
)

var (
	ErrNoDates        = errors.New("dataset has no date column for calendar feature")
	ErrNonPositiveLog = errors.New("log requires strictly positive values")
)

// Features builds the engineered feature set the given options would fit
// against. Useful for inspecting the design matrix without running a fit.
func Features(ds *dataset.Dataset, opt *options.Options) (feature.Set, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return generateFeatures(ds, opt)
}

// generateFeatures builds the feature set for the design matrix from the
// dataset columns per the configured options.
func generateFeatures(ds *dataset.Dataset, opt *options.Options) (feature.Set, error) {
	feat := make(feature.Set)

	for _, col := range opt.Columns {
		vals, err := ds.Column(col)
		if err != nil {
			return nil, err
		}
		f := feature.NewColumn(col)
		feat[f.String()] = feature.Data{F: f, Data: vals}
	}

	for _, tx := range opt.Transforms {
		vals, err := ds.Column(tx.Column)
		if err != nil {
			return nil, err
		}
		vals, err = applyTransform(tx.Column, vals, tx.Op)
		if err != nil {
			return nil, err
		}
		f := tx.Feature()
		feat[f.String()] = feature.Data{F: f, Data: vals}
	}

	for _, ix := range opt.Interactions {
		left, err := ds.Column(ix.Left)
		if err != nil {
			return nil, err
		}
		right, err := ds.Column(ix.Right)
		if err != nil {
			return nil, err
		}

		vals := make([]float64, len(left))
		switch ix.Op {
		case feature.InteractionOpProduct:
			for i := range left {
				vals[i] = left[i] * right[i]
			}
		case feature.InteractionOpSum:
			for i := range left {
				vals[i] = left[i] + right[i]
			}
		}
		f := ix.Feature()
		feat[f.String()] = feature.Data{F: f, Data: vals}
	}

	if opt.Calendar != nil {
		dates := ds.Dates()
		if dates == nil {
			return nil, ErrNoDates
		}
		f := opt.Calendar.Feature()
		feat[f.String()] = feature.Data{F: f, Data: opt.Calendar.Mask(dates)}
	}

	return feat, nil
}

func applyTransform(col string, vals []float64, op feature.TransformOp) ([]float64, error) {
	switch op {
	case feature.TransformOpSquare:
		return util.SliceMap(vals, func(v float64) float64 { return v * v }), nil
	case feature.TransformOpLog:
		for i, v := range vals {
			if v <= 0 {
				return nil, fmt.Errorf("column %s row %d value %f, %w", col, i, v, ErrNonPositiveLog)
			}
			vals[i] = math.Log(v)
		}
		return vals, nil
	}
	return vals, nil
}

// generateTarget extracts the target column optionally applying the log
// transform.
func generateTarget(ds *dataset.Dataset, opt *options.Options) ([]float64, error) {
	y, err := ds.Column(opt.TargetColumn)
	if err != nil {
		return nil, err
	}
	if !opt.LogTarget {
		return y, nil
	}

	for i, v := range y {
		// masked observations pass through untouched
		if math.IsNaN(v) {
			continue
		}
		if v <= 0 {
			return nil, fmt.Errorf("column %s row %d value %f, %w", opt.TargetColumn, i, v, ErrNonPositiveLog)
		}
		y[i] = math.Log(v)
	}
	return y, nil
}
