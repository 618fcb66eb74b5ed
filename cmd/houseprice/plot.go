package main

import (
	"fmt"

	"github.com/spf13/cobra"

	regressor "github.com/aouyang1/go-regressor"
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Fit a regression model and render the fit as an html chart page",
	RunE:  runPlot,
}

// Flags
var (
	plotOut     string
	plotFeature string
)

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVar(&fitOptionsPath, "options", "", "Path to a JSON file of fit options")
	plotCmd.Flags().StringVar(&plotOut, "out", "fit.html", "Path of the rendered html page")
	plotCmd.Flags().StringVar(&plotFeature, "feature", "", "Raw column to plot the fit against, defaults to the first feature column")
}

func runPlot(cmd *cobra.Command, args []string) error {
	if fitOptionsPath == "" {
		return fmt.Errorf("--options is required")
	}
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

	var plotOpt *regressor.PlotOpts
	if plotFeature != "" {
		plotOpt = &regressor.PlotOpts{FeatureColumn: plotFeature}
	}
	if err := r.PlotFit(plotOut, plotOpt); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", plotOut)
	return nil
}
