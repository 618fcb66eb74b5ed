package regressor

// Results carries the predictions for a single call to Predict along with a
// unique run id.
type Results struct {
	RunID string `json:"run_id"`

	// Predicted holds the raw model outputs. These are on the log scale when
	// the regression fits against a log target.
	Predicted []float64 `json:"predicted"`

	// Level holds the predictions on the original target scale.
	Level []float64 `json:"level"`
}
