package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/aouyang1/go-regressor/dataset"
)

var rootCmd = &cobra.Command{
	Use:   "houseprice",
	Short: "Fit and serve house price regressions over CSV sale records",
	Long: `houseprice fits a linear regression over tabular house sale records and
serves price predictions from a saved model.

Examples:
  houseprice fit --csv kc_house_data.csv --options options.json --model-out model.json
  houseprice predict --csv new_sales.csv --model model.json
  houseprice plot --csv kc_house_data.csv --options options.json --out fit.html`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Persistent flags
var (
	csvPath    string
	schemaPath string
	verbose    bool
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", "", "Path to the input CSV file, .gz accepted")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to a JSON file declaring the CSV columns to load")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func loadDataset() (*dataset.Dataset, error) {
	if csvPath == "" {
		return nil, fmt.Errorf("--csv is required")
	}
	if schemaPath == "" {
		return nil, fmt.Errorf("--schema is required")
	}

	bytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read schema file: %w", err)
	}
	var schema dataset.Schema
	if err := json.Unmarshal(bytes, &schema); err != nil {
		return nil, fmt.Errorf("unable to parse schema file: %w", err)
	}

	ds, err := dataset.Open(csvPath, &schema)
	if err != nil {
		return nil, fmt.Errorf("unable to load %s: %w", csvPath, err)
	}
	return ds, nil
}
