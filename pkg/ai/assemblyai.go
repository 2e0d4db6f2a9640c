package ai

import (
	"context"
	"fmt"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/meetingmind-team/meetingmind/pkg/config"
)

// AssemblyAIClient wraps the official SDK for the ASR boundary. The service
// only consumes finished transcripts; audio handling happens upstream.
type AssemblyAIClient struct {
	sdk *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		sdk: aai.NewClient(apiKey),
	}
}

// ASRTranscript is the transcript data consumed from the ASR boundary
type ASRTranscript struct {
	ID       string
	Text     string
	Duration int // seconds
	Language string
}

// FetchTranscript retrieves a completed transcript by its AssemblyAI id.
// Non-terminal statuses are returned as errors so callers can retry.
func (c *AssemblyAIClient) FetchTranscript(ctx context.Context, transcriptID string) (*ASRTranscript, error) {
	if transcriptID == "" {
		return nil, fmt.Errorf("transcript ID is required")
	}

	transcript, err := c.sdk.Transcripts.Get(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	switch transcript.Status {
	case aai.TranscriptStatusCompleted:
		// fall through
	case aai.TranscriptStatusError:
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai error: %s", msg)
	default:
		return nil, fmt.Errorf("transcript %s not ready: status %s", transcriptID, transcript.Status)
	}

	out := &ASRTranscript{ID: transcriptID}
	if transcript.Text != nil {
		out.Text = *transcript.Text
	}
	if transcript.AudioDuration != nil {
		out.Duration = int(*transcript.AudioDuration)
	}
	if transcript.LanguageCode != "" {
		out.Language = string(transcript.LanguageCode)
	}

	if out.Text == "" {
		return nil, fmt.Errorf("transcript %s has no text", transcriptID)
	}

	return out, nil
}
