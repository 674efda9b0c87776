package replicate

import (
	"context"
	"encoding/json"
)

// Prediction statuses reported by Replicate. Predictions move from starting
// through processing to one of the terminal statuses.
const (
	StatusStarting   = "starting"
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
	StatusCanceled   = "canceled"
)

// Client starts and polls predictions. Both operations perform exactly one
// HTTP request and relay the response body untouched.
type Client interface {
	Submit(ctx context.Context, prompt string) (json.RawMessage, error)
	FetchStatus(ctx context.Context, predictionID string) (json.RawMessage, error)
}
