package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/meetingmind-team/meetingmind/errors"
	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
	"github.com/meetingmind-team/meetingmind/pkg/ai"
)

type fakeRemote struct {
	resp  *ai.SummarizeResponse
	err   error
	calls int
}

func (f *fakeRemote) Summarize(ctx context.Context, text, meetingContext string, maxLength int) (*ai.SummarizeResponse, error) {
	f.calls++
	return f.resp, f.err
}

func (f *fakeRemote) CheckHealth(ctx context.Context) (*ai.HealthResponse, error) {
	return &ai.HealthResponse{Status: "healthy"}, nil
}

type fakeAbstractive struct {
	out   string
	err   error
	calls int
}

func (f *fakeAbstractive) Summarize(ctx context.Context, text string, opts ai.GenerationOptions) (string, error) {
	f.calls++
	return f.out, f.err
}

func testSegments() []entities.Segment {
	return []entities.Segment{
		{Speaker: "Alice", Content: "We will schedule the launch by Friday for the whole team"},
		{Speaker: "Bob", Content: "I will follow up with Carol on the budget numbers"},
	}
}

func TestStageTransitions(t *testing.T) {
	if FirstStage(true) != StageRemote {
		t.Fatal("preferRemote must start at the remote stage")
	}
	if FirstStage(false) != StageLocal {
		t.Fatal("without preferRemote the chain starts locally")
	}
	if NextStage(StageRemote) != StageLocal {
		t.Fatal("remote must degrade to local")
	}
	if NextStage(StageLocal) != StageExhausted {
		t.Fatal("local must degrade to exhausted")
	}
	if NextStage(StageExhausted) != StageExhausted {
		t.Fatal("exhausted is terminal")
	}
}

func TestSummarizeRemoteSuccess(t *testing.T) {
	remote := &fakeRemote{resp: &ai.SummarizeResponse{
		Summary:   "The team aligned on the launch.",
		ModelUsed: "meeting-summarizer (custom)",
	}}
	abstractive := &fakeAbstractive{out: "unused"}
	o := NewOrchestrator(remote, abstractive, nil, nil, nil)

	result, err := o.Summarize(context.Background(), "transcript", "", testSegments(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FallbackUsed {
		t.Fatal("remote success must not set fallbackUsed")
	}
	if result.ModelUsed != "remote:meeting-summarizer (custom)" {
		t.Fatalf("modelUsed = %q", result.ModelUsed)
	}
	if abstractive.calls != 0 {
		t.Fatal("local stage must not run after remote success")
	}
}

func TestSummarizeRemoteInternalFallbackFlag(t *testing.T) {
	remote := &fakeRemote{resp: &ai.SummarizeResponse{
		Summary:      "summary",
		ModelUsed:    "bart-large-cnn (fallback)",
		FallbackUsed: true,
	}}
	o := NewOrchestrator(remote, &fakeAbstractive{}, nil, nil, nil)

	result, err := o.Summarize(context.Background(), "transcript", "", testSegments(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.ModelUsed, "(remote fallback)") {
		t.Fatalf("modelUsed should record the remote's own fallback, got %q", result.ModelUsed)
	}
	if result.FallbackUsed {
		t.Fatal("the orchestrator itself did not fall back")
	}
}

func TestSummarizeFallsBackToLocal(t *testing.T) {
	remote := &fakeRemote{err: fmt.Errorf("connection refused")}
	abstractive := &fakeAbstractive{out: "An abstractive summary of the meeting."}
	o := NewOrchestrator(remote, abstractive, nil, nil, nil)

	result, err := o.Summarize(context.Background(), "transcript", "planning sync", testSegments(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.FallbackUsed {
		t.Fatal("expected fallbackUsed after remote failure")
	}
	if !strings.HasPrefix(result.ModelUsed, "local:") {
		t.Fatalf("modelUsed = %q, want local strategy", result.ModelUsed)
	}
	if remote.calls != 1 {
		t.Fatalf("remote stage must be attempted exactly once, got %d", remote.calls)
	}
}

func TestSummarizeLocalAppendsAbstractiveWhenThin(t *testing.T) {
	abstractive := &fakeAbstractive{out: "Abstractive tail."}
	o := NewOrchestrator(nil, abstractive, nil, nil, nil)

	// One thin segment keeps the structured block under the threshold.
	thin := []entities.Segment{{Speaker: "Alice", Content: "quick hello to the team"}}
	result, err := o.Summarize(context.Background(), "transcript", "", thin, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ModelUsed != "local:structured+abstractive" {
		t.Fatalf("modelUsed = %q", result.ModelUsed)
	}
	if !strings.Contains(result.Summary, "Abstractive tail.") {
		t.Fatalf("expected abstractive output appended, got %q", result.Summary)
	}
	if abstractive.calls != 1 {
		t.Fatalf("abstractive calls = %d, want 1", abstractive.calls)
	}
}

func TestSummarizeExhaustedChain(t *testing.T) {
	remote := &fakeRemote{err: fmt.Errorf("remote down")}
	abstractive := &fakeAbstractive{err: fmt.Errorf("model not loaded")}
	o := NewOrchestrator(remote, abstractive, nil, nil, nil)

	// A thin segment keeps the structured block under the threshold, so the
	// local stage depends on the failing abstractive capability.
	thin := []entities.Segment{{Speaker: "Alice", Content: "quick hello to the team"}}
	_, err := o.Summarize(context.Background(), "transcript", "", thin, true)
	if err == nil {
		t.Fatal("expected terminal error when every stage fails")
	}
	if remote.calls != 1 {
		t.Fatalf("remote calls = %d, want 1", remote.calls)
	}
	if abstractive.calls != 1 {
		t.Fatalf("abstractive calls = %d, want 1", abstractive.calls)
	}
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrorCode_SUMMARIZATION_FAILED {
		t.Fatalf("code = %s", appErr.Code)
	}
}

func TestSummarizeCancellationStopsChain(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	remote := &fakeRemote{err: fmt.Errorf("slow failure")}
	abstractive := &fakeAbstractive{out: "never"}
	o := NewOrchestrator(remote, abstractive, nil, nil, nil)

	cancel()
	_, err := o.Summarize(ctx, "transcript", "", testSegments(), true)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if remote.calls != 0 {
		t.Fatal("cancelled run must not consume stages")
	}
	if abstractive.calls != 0 {
		t.Fatal("cancelled run must not reach the local stage")
	}
}
