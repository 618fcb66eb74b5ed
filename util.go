package regressor

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ScatterFit generates an echart scatter chart of a single feature column
// against the actual target values with the fitted values overlaid. The
// inputs must all have the same length.
func ScatterFit(title, featureName string, x, actual, fitted []float64) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: featureName,
			},
		),
	)

	xAxis := make([]string, 0, len(x))
	actualData := make([]opts.ScatterData, 0, len(actual))
	fittedData := make([]opts.ScatterData, 0, len(fitted))
	for i := 0; i < len(x); i++ {
		xAxis = append(xAxis, fmt.Sprintf("%.0f", x[i]))
		actualData = append(actualData, opts.ScatterData{Value: actual[i]})
		fittedData = append(fittedData, opts.ScatterData{Value: fitted[i]})
	}

	scatter.SetXAxis(xAxis).
		AddSeries("Actual", actualData).
		AddSeries("Fitted", fittedData)
	return scatter
}

// ScatterResiduals generates an echart scatter chart of the fit residuals by
// observation index. NaN residuals from masked observations are skipped.
func ScatterResiduals(title string, residual []float64) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	xAxis := make([]int, 0, len(residual))
	data := make([]opts.ScatterData, 0, len(residual))
	for i := 0; i < len(residual); i++ {
		if math.IsNaN(residual[i]) {
			continue
		}
		xAxis = append(xAxis, i)
		data = append(data, opts.ScatterData{Value: residual[i]})
	}

	scatter.SetXAxis(xAxis).
		AddSeries("Residual", data)
	return scatter
}
