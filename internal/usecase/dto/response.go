package dto

// PredictResponse carries a single congestion prediction.
type PredictResponse struct {
	Prediction float64 `json:"prediction"`
}
