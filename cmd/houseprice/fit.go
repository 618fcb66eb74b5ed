package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	regressor "github.com/aouyang1/go-regressor"
	"github.com/aouyang1/go-regressor/regression/options"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit a regression model over a CSV of sale records",
	Long: `Fit a regression model over a CSV of sale records.

The fit is configured either from a JSON options file or from flags:

  houseprice fit --csv kc_house_data.csv --schema schema.json \
    --target price --columns sqft_living,bedrooms --square sqft_living \
    --test-fraction 0.2 --model-out model.json`,
	RunE: runFit,
}

// Flags
var (
	fitOptionsPath string
	fitModelOut    string

	fitTarget       string
	fitColumns      []string
	fitSquares      []string
	fitLogs         []string
	fitSolver       string
	fitLambda       float64
	fitLambdas      []float64
	fitLogTarget    bool
	fitTestFraction float64
	fitSeed         uint64
	fitOutliers     bool
)

func init() {
	rootCmd.AddCommand(fitCmd)

	fitCmd.Flags().StringVar(&fitOptionsPath, "options", "", "Path to a JSON file of fit options, overrides the per-option flags")
	fitCmd.Flags().StringVar(&fitModelOut, "model-out", "", "Write the fitted model as JSON to this path")

	fitCmd.Flags().StringVar(&fitTarget, "target", "price", "Target column to predict")
	fitCmd.Flags().StringSliceVar(&fitColumns, "columns", nil, "Raw feature columns")
	fitCmd.Flags().StringSliceVar(&fitSquares, "square", nil, "Columns to add squared")
	fitCmd.Flags().StringSliceVar(&fitLogs, "log", nil, "Columns to add log transformed")
	fitCmd.Flags().StringVar(&fitSolver, "solver", "ols", "Solver: ols, ridge, lasso or lasso-auto")
	fitCmd.Flags().Float64Var(&fitLambda, "lambda", 0.0, "Regularization multiplier for ridge and lasso")
	fitCmd.Flags().Float64SliceVar(&fitLambdas, "lambdas", nil, "Regularization grid lasso-auto selects from")
	fitCmd.Flags().BoolVar(&fitLogTarget, "log-target", false, "Fit against the natural log of the target")
	fitCmd.Flags().Float64Var(&fitTestFraction, "test-fraction", 0.0, "Random fraction of rows held out for evaluation")
	fitCmd.Flags().Uint64Var(&fitSeed, "seed", 0, "Seed for the holdout split")
	fitCmd.Flags().BoolVar(&fitOutliers, "outliers", false, "Enable iterative outlier masking passes")
}

func loadOptions() (*regressor.Options, error) {
	if fitOptionsPath != "" {
		bytes, err := os.ReadFile(fitOptionsPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read options file: %w", err)
		}
		var opt regressor.Options
		if err := json.Unmarshal(bytes, &opt); err != nil {
			return nil, fmt.Errorf("unable to parse options file: %w", err)
		}
		return &opt, nil
	}

	regOpt := &options.Options{
		TargetColumn:       fitTarget,
		LogTarget:          fitLogTarget,
		Columns:            fitColumns,
		Solver:             options.Solver(fitSolver),
		Regularization:     fitLambda,
		RegularizationGrid: fitLambdas,
	}
	for _, col := range fitSquares {
		regOpt.Transforms = append(regOpt.Transforms, options.NewSquare(col))
	}
	for _, col := range fitLogs {
		regOpt.Transforms = append(regOpt.Transforms, options.NewLog(col))
	}

	opt := &regressor.Options{
		RegressionOptions: regOpt,
		TestFraction:      fitTestFraction,
		Seed:              fitSeed,
	}
	if fitOutliers {
		opt.OutlierOptions = regressor.NewOutlierOptions()
	}
	return opt, nil
}

func runFit(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset()
	if err != nil {
		return err
	}
	opt, err := loadOptions()
	if err != nil {
		return err
	}

	r, err := regressor.New(opt)
	if err != nil {
		return err
	}
	if err := r.Fit(ds); err != nil {
		return err
	}

	model, err := r.Model()
	if err != nil {
		return err
	}
	if err := model.Regression.TablePrint(os.Stdout, "", "  "); err != nil {
		return err
	}
	if test := r.TestScores(); test != nil {
		fmt.Printf("Holdout:\n  MAPE: %.3f    MSE: %.3f    R2: %.3f\n", test.MAPE, test.MSE, test.R2)
	}

	if fitModelOut == "" {
		return nil
	}
	bytes, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fitModelOut, bytes, 0o644)
}
