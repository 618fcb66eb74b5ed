// Package options configures how a regression builds its design matrix and
// which solver fits it.
package options

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aouyang1/go-regressor/regression/util"
)

type Solver string

const (
	SolverOLS       Solver = "ols"
	SolverRidge     Solver = "ridge"
	SolverLasso     Solver = "lasso"
	SolverLassoAuto Solver = "lasso-auto"
)

// DefaultRegularizationGrid is the lambda grid the lasso-auto solver fits
// over when none is configured.
var DefaultRegularizationGrid = []float64{0.01, 0.1, 1.0, 10.0}

var (
	ErrNoTargetColumn         = errors.New("no target column")
	ErrNoFeatures             = errors.New("no feature columns or engineered features")
	ErrUnknownSolver          = errors.New("unknown solver")
	ErrNegativeRegularization = errors.New("negative regularization")
)

// Options configures a single regression fit.
type Options struct {
	// TargetColumn names the dataset column being predicted.
	TargetColumn string `json:"target_column"`

	// LogTarget fits against the natural log of the target column. Requires
	// strictly positive target values.
	LogTarget bool `json:"log_target"`

	// Columns lists raw dataset columns used directly as features.
	Columns []string `json:"columns"`

	// Transforms lists unary engineered features.
	Transforms []Transform `json:"transforms"`

	// Interactions lists pairwise engineered features.
	Interactions []Interaction `json:"interactions"`

	// Calendar optionally derives a sale-timing flag feature from the
	// dataset's date column.
	Calendar *Calendar `json:"calendar"`

	// Solver selects the fitting implementation. Defaults to OLS.
	Solver Solver `json:"solver"`

	// Regularization sets the penalty multiplier for the ridge and lasso
	// solvers. Ignored by OLS.
	Regularization float64 `json:"regularization"`

	// RegularizationGrid lists the penalty multipliers the lasso-auto
	// solver selects from. Defaults to DefaultRegularizationGrid.
	RegularizationGrid []float64 `json:"regularization_grid"`
}

// NewDefaultOptions returns an OLS configuration without any feature columns
// set.
func NewDefaultOptions() *Options {
	return &Options{
		Solver: SolverOLS,
	}
}

// Validate runs basic validation on the regression options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	if o.TargetColumn == "" {
		return nil, ErrNoTargetColumn
	}
	if len(o.Columns) == 0 && len(o.Transforms) == 0 && len(o.Interactions) == 0 && o.Calendar == nil {
		return nil, ErrNoFeatures
	}
	if o.Regularization < 0 {
		return nil, ErrNegativeRegularization
	}
	for _, lambda := range o.RegularizationGrid {
		if lambda < 0 {
			return nil, ErrNegativeRegularization
		}
	}

	if o.Solver == "" {
		o.Solver = SolverOLS
	}
	switch o.Solver {
	case SolverOLS, SolverRidge, SolverLasso:
	case SolverLassoAuto:
		if len(o.RegularizationGrid) == 0 {
			o.RegularizationGrid = DefaultRegularizationGrid
		}
	default:
		return nil, fmt.Errorf("%s, %w", o.Solver, ErrUnknownSolver)
	}

	for _, tx := range o.Transforms {
		if err := tx.Valid(); err != nil {
			return nil, err
		}
	}
	for _, ix := range o.Interactions {
		if err := ix.Valid(); err != nil {
			return nil, err
		}
	}
	if o.Calendar != nil {
		if err := o.Calendar.Valid(); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// TablePrint writes a human readable summary of the options.
func (o *Options) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if o == nil {
		return nil
	}

	target := o.TargetColumn
	if o.LogTarget {
		target = "log(" + target + ")"
	}
	if _, err := fmt.Fprintf(w, "%s%sTarget: %s\n", prefix, util.IndentExpand(indent, indentGrowth), target); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sSolver: %s    Regularization: %.3f\n",
		prefix, util.IndentExpand(indent, indentGrowth), o.Solver, o.Regularization); err != nil {
		return err
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(w, "%s%sFeatures:\n", prefix, util.IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	for _, col := range o.Columns {
		fmt.Fprintf(tbl, "%s%s%s\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), col)
	}
	for _, tx := range o.Transforms {
		fmt.Fprintf(tbl, "%s%s%s\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), tx.Feature())
	}
	for _, ix := range o.Interactions {
		fmt.Fprintf(tbl, "%s%s%s\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), ix.Feature())
	}
	if o.Calendar != nil {
		fmt.Fprintf(tbl, "%s%s%s\t\n", prefix, util.IndentExpand(indent, indentGrowth+1), o.Calendar.Feature())
	}
	return tbl.Flush()
}

// FeatureCount returns the number of design matrix columns the options will
// generate excluding the intercept.
func (o *Options) FeatureCount() int {
	if o == nil {
		return 0
	}
	n := len(o.Columns) + len(o.Transforms) + len(o.Interactions)
	if o.Calendar != nil {
		n++
	}
	return n
}
