package pipeline

import (
	"context"

	"github.com/meetingmind-team/meetingmind/pkg/ai"
)

// RemoteSummarizer is the remote summarization capability consumed by the
// orchestrator. Implemented by ai.ModelAPIClient.
type RemoteSummarizer interface {
	Summarize(ctx context.Context, text, meetingContext string, maxLength int) (*ai.SummarizeResponse, error)
	CheckHealth(ctx context.Context) (*ai.HealthResponse, error)
}

// AbstractiveSummarizer is the local abstractive summarization capability.
// Implemented by ai.InferenceClient.
type AbstractiveSummarizer interface {
	Summarize(ctx context.Context, text string, opts ai.GenerationOptions) (string, error)
}

// TokenClassifier is the local token-classification capability used for
// named entity recognition. Implemented by ai.InferenceClient.
type TokenClassifier interface {
	Classify(ctx context.Context, text string) ([]ai.TokenSpan, error)
}
