package regressor

import (
	"github.com/aouyang1/go-regressor/regression/options"
)

// OutlierOptions configures the iterative outlier masking passes run over
// the training target before the final fit.
type OutlierOptions struct {
	NumPasses       int     `json:"num_passes"`
	UpperPercentile float64 `json:"upper_percentile"`
	LowerPercentile float64 `json:"lower_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		NumPasses:       3,
		UpperPercentile: 0.9,
		LowerPercentile: 0.1,
		TukeyFactor:     1.0,
	}
}

// Options configures a Regressor fit.
type Options struct {
	RegressionOptions *options.Options `json:"regression_options"`

	// OutlierOptions enables iterative training target outlier masking when
	// set.
	OutlierOptions *OutlierOptions `json:"outlier_options"`

	// TestFraction holds out a random fraction of the dataset from the fit
	// for evaluation. Zero disables the holdout.
	TestFraction float64 `json:"test_fraction"`

	// Seed fixes the holdout row permutation for reproducible splits.
	Seed uint64 `json:"seed"`
}

func NewDefaultOptions() *Options {
	return &Options{
		RegressionOptions: options.NewDefaultOptions(),
	}
}
