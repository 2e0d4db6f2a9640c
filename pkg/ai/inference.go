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

// InferenceClient talks to the local inference sidecar exposing transformer
// pipelines. Two pipelines are consumed: summarization and
// token-classification.
type InferenceClient struct {
	baseURL string
	client  *http.Client
}

// NewInferenceClient creates an inference client using values from the
// provided config. Pass a nil config to fall back to environment variables.
func NewInferenceClient(cfg *config.InferenceConfig) *InferenceClient {
	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("INFERENCE_API_URL")
		if base == "" {
			base = "http://localhost:5002"
		}
	}

	timeout := 60 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &InferenceClient{
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

// GenerationOptions carries abstractive generation parameters for the
// summarization pipeline
type GenerationOptions struct {
	MaxLength         int     `json:"max_length"`
	MinLength         int     `json:"min_length"`
	NumBeams          int     `json:"num_beams"`
	LengthPenalty     float64 `json:"length_penalty"`
	EarlyStopping     bool    `json:"early_stopping"`
	NoRepeatNgramSize int     `json:"no_repeat_ngram_size"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

// DefaultGenerationOptions mirrors the sidecar's fallback generation
// parameters for a given target summary length
func DefaultGenerationOptions(maxLength int) GenerationOptions {
	capped := maxLength
	if capped > 512 {
		capped = 512
	}
	minLength := maxLength / 4
	if minLength < 30 {
		minLength = 30
	}
	return GenerationOptions{
		MaxLength:         capped,
		MinLength:         minLength,
		NumBeams:          4,
		LengthPenalty:     1.2,
		EarlyStopping:     true,
		NoRepeatNgramSize: 3,
		RepetitionPenalty: 1.1,
	}
}

// TokenSpan is one classified token from the token-classification pipeline.
// Entity carries the raw model label including its B-/I- prefix.
type TokenSpan struct {
	Entity string  `json:"entity"`
	Word   string  `json:"word"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

type summarizationRequest struct {
	Text    string            `json:"text"`
	Options GenerationOptions `json:"options"`
}

type summarizationOutput struct {
	SummaryText string `json:"summary_text"`
}

type classificationRequest struct {
	Text string `json:"text"`
}

// Summarize runs the abstractive summarization pipeline over text.
// The pipeline returns a sequence whose first element carries summary_text.
func (ic *InferenceClient) Summarize(ctx context.Context, text string, opts GenerationOptions) (string, error) {
	var outputs []summarizationOutput
	if err := ic.post(ctx, "/pipeline/summarization", summarizationRequest{Text: text, Options: opts}, &outputs); err != nil {
		return "", err
	}
	if len(outputs) == 0 {
		return "", fmt.Errorf("empty output from summarization pipeline")
	}
	return outputs[0].SummaryText, nil
}

// Classify runs the token-classification pipeline over text
func (ic *InferenceClient) Classify(ctx context.Context, text string) ([]TokenSpan, error) {
	var spans []TokenSpan
	if err := ic.post(ctx, "/pipeline/token-classification", classificationRequest{Text: text}, &spans); err != nil {
		return nil, err
	}
	return spans, nil
}

func (ic *InferenceClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", ic.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ic.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("inference api returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
