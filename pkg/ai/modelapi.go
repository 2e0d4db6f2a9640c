package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/meetingmind-team/meetingmind/pkg/config"
)

// ModelAPIClient talks to the summarization model sidecar.
// The sidecar serves POST /summarize and GET /health.
type ModelAPIClient struct {
	baseURL      string
	client       *http.Client
	healthClient *http.Client
}

// NewModelAPIClient creates a model API client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewModelAPIClient(cfg *config.ModelAPIConfig) *ModelAPIClient {
	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("MODEL_API_URL")
		if base == "" {
			base = "http://localhost:5001"
		}
	}

	summarizeTimeout := 30 * time.Second
	healthTimeout := 5 * time.Second
	if cfg != nil {
		if cfg.SummarizeTimeout > 0 {
			summarizeTimeout = cfg.SummarizeTimeout
		}
		if cfg.HealthTimeout > 0 {
			healthTimeout = cfg.HealthTimeout
		}
	}

	return &ModelAPIClient{
		baseURL:      base,
		client:       &http.Client{Timeout: summarizeTimeout},
		healthClient: &http.Client{Timeout: healthTimeout},
	}
}

// SummarizeRequest is the request shape for POST /summarize
type SummarizeRequest struct {
	Text      string `json:"text"`
	Context   string `json:"context,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
}

// SummarizeResponse is the response shape for POST /summarize.
// Error is set (with a non-2xx status) when the sidecar rejects the request.
type SummarizeResponse struct {
	Summary            string `json:"summary"`
	InputLength        int    `json:"input_length,omitempty"`
	ModelUsed          string `json:"model_used"`
	PrimaryModelLoaded bool   `json:"primary_model_loaded,omitempty"`
	FallbackUsed       bool   `json:"fallback_used"`
	Error              string `json:"error,omitempty"`
}

// HealthResponse is the response shape for GET /health
type HealthResponse struct {
	Status              string `json:"status"`
	PrimaryModelLoaded  bool   `json:"primary_model_loaded"`
	FallbackModelLoaded bool   `json:"fallback_model_loaded"`
	CurrentModel        string `json:"current_model"`
}

// Summarize sends the transcript to the sidecar and returns its summary.
// A transport error, a non-2xx status, or an error field in the body are all
// returned as errors so the caller can advance its fallback chain.
func (m *ModelAPIClient) Summarize(ctx context.Context, text, meetingContext string, maxLength int) (*SummarizeResponse, error) {
	reqBody := SummarizeRequest{
		Text:      text,
		Context:   meetingContext,
		MaxLength: maxLength,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := m.baseURL + "/summarize"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var sr SummarizeResponse
	if decErr := json.NewDecoder(resp.Body).Decode(&sr); decErr != nil {
		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("model api returned status %d", resp.StatusCode)
		}
		return nil, decErr
	}

	if sr.Error != "" {
		return nil, fmt.Errorf("model api error: %s", sr.Error)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("model api returned status %d", resp.StatusCode)
	}
	if sr.Summary == "" {
		return nil, fmt.Errorf("empty summary from model api")
	}

	return &sr, nil
}

// CheckHealth queries the sidecar health endpoint with the short health
// timeout. Callers treat failures as advisory.
func (m *ModelAPIClient) CheckHealth(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", m.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := m.healthClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("model api health returned status %d", resp.StatusCode)
	}

	var hr HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return nil, err
	}
	return &hr, nil
}
