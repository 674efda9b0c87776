package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fluxmcp/internal/config"
	"fluxmcp/internal/log"

	"github.com/samber/do"
)

type predictionInput struct {
	Prompt string `json:"prompt"`
}

type predictionRequest struct {
	Input predictionInput `json:"input"`
}

// APIError is a non-2xx response from Replicate, carrying the detail message
// from the response body when one was present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return "Replicate API error: " + e.Detail
}

// HTTPClient calls the Replicate predictions API. Its configuration is fixed
// at construction and never mutated.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	token   string
	model   string
}

func NewHTTPClient(i *do.Injector) (Client, error) {
	cfg, err := do.Invoke[config.Config](i)
	if err != nil {
		return nil, err
	}
	client, err := do.Invoke[*http.Client](i)
	if err != nil {
		return nil, err
	}
	return &HTTPClient{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.APIToken,
		model:   cfg.Model,
	}, nil
}

// Submit starts a prediction for prompt. The Prefer header asks Replicate to
// hold the response until the prediction completes when it can do so quickly.
func (c *HTTPClient) Submit(ctx context.Context, prompt string) (json.RawMessage, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("replicate").With("model", c.model)
	logger.Info("submitting prediction")

	body, err := json.Marshal(predictionRequest{Input: predictionInput{Prompt: prompt}})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s/predictions", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")

	return c.do(req)
}

// FetchStatus looks up a prediction by id.
func (c *HTTPClient) FetchStatus(ctx context.Context, predictionID string) (json.RawMessage, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("replicate").With("prediction_id", predictionID)
	logger.Info("fetching prediction")

	url := fmt.Sprintf("%s/predictions/%s", c.baseURL, predictionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(resp, data)}
	}
	return json.RawMessage(data), nil
}

// errorDetail pulls the detail field out of an error body, falling back to
// the raw body and finally the HTTP status text.
func errorDetail(resp *http.Response, data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	if detail := strings.TrimSpace(string(data)); detail != "" {
		return detail
	}
	return resp.Status
}
