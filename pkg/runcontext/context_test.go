package runcontext

import (
	"context"
	"errors"
	"testing"
)

func TestBeginTagsRun(t *testing.T) {
	ctx, cancel := Begin(context.Background(), "api")
	defer cancel()

	if _, ok := RunID(ctx); !ok {
		t.Error("expected run id on context")
	}
	source, ok := Source(ctx)
	if !ok || source != "api" {
		t.Errorf("expected source api, got %q", source)
	}
	if _, ok := StartTime(ctx); !ok {
		t.Error("expected start time on context")
	}
	if _, deadlineSet := ctx.Deadline(); !deadlineSet {
		t.Error("run context should carry a deadline")
	}
}

func TestMetadataOnUntaggedContext(t *testing.T) {
	md := Metadata(context.Background())
	if md.Source != "" {
		t.Errorf("expected empty source, got %q", md.Source)
	}
	if Elapsed(context.Background()) != 0 {
		t.Error("elapsed on untagged context should be zero")
	}
}

func TestIsRetryableError(t *testing.T) {
	retryable := []error{
		errors.New("dial tcp: connection refused"),
		errors.New("rate limit exceeded"),
		errors.New("assemblyai returned status 503"),
		errors.New("transcript not ready"),
	}
	for _, err := range retryable {
		if !IsRetryableError(err) {
			t.Errorf("expected retryable: %v", err)
		}
	}

	permanent := []error{
		nil,
		errors.New("transcript not found"),
		errors.New("invalid api key"),
	}
	for _, err := range permanent {
		if IsRetryableError(err) {
			t.Errorf("expected permanent: %v", err)
		}
	}
}
