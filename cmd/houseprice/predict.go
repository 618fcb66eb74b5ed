package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	regressor "github.com/aouyang1/go-regressor"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Generate price predictions from a saved model",
	RunE:  runPredict,
}

// Flags
var (
	predictModelPath string
	predictOut       string
)

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVar(&predictModelPath, "model", "", "Path to a fitted model JSON file")
	predictCmd.Flags().StringVar(&predictOut, "out", "", "Write predictions as JSON to this path instead of stdout")
}

func runPredict(cmd *cobra.Command, args []string) error {
	if predictModelPath == "" {
		return fmt.Errorf("--model is required")
	}

	bytes, err := os.ReadFile(predictModelPath)
	if err != nil {
		return fmt.Errorf("unable to read model file: %w", err)
	}
	var model regressor.Model
	if err := json.Unmarshal(bytes, &model); err != nil {
		return fmt.Errorf("unable to parse model file: %w", err)
	}

	r, err := regressor.NewFromModel(model)
	if err != nil {
		return err
	}

	ds, err := loadDataset()
	if err != nil {
		return err
	}

	res, err := r.Predict(ds)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if predictOut == "" {
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(predictOut, out, 0o644)
}
