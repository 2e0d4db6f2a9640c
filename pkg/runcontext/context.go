package runcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type contextKey string

var (
	keyRunID     contextKey = "run_id"
	keySource    contextKey = "source"
	keyStartTime contextKey = "start_time"
)

// A pipeline run is bounded; nothing in transcript processing should hang
// longer than this.
const runTimeout = 5 * time.Minute

// RunMetadata holds metadata for one transcript-processing run
type RunMetadata struct {
	RunID     uuid.UUID
	Source    string
	StartTime time.Time
}

// Begin derives a bounded context for a single pipeline run and tags it with
// a run id and the transcript source ("api", "recording").
func Begin(parent context.Context, source string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, runTimeout)
	ctx = context.WithValue(ctx, keyRunID, uuid.New())
	ctx = context.WithValue(ctx, keySource, source)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx, cancel
}

// RunID extracts the run id from context
func RunID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyRunID).(uuid.UUID)
	return id, ok
}

// Source extracts the transcript source from context
func Source(ctx context.Context) (string, bool) {
	source, ok := ctx.Value(keySource).(string)
	return source, ok
}

// StartTime extracts the run start time from context
func StartTime(ctx context.Context) (time.Time, bool) {
	start, ok := ctx.Value(keyStartTime).(time.Time)
	return start, ok
}

// Elapsed returns how long the run has been going, zero if untagged
func Elapsed(ctx context.Context) time.Duration {
	start, ok := StartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// Metadata extracts all run metadata from context
func Metadata(ctx context.Context) *RunMetadata {
	id, _ := RunID(ctx)
	source, _ := Source(ctx)
	start, _ := StartTime(ctx)
	return &RunMetadata{
		RunID:     id,
		Source:    source,
		StartTime: start,
	}
}

// IsRetryableError reports whether an external call failure is worth another
// attempt: network trouble, rate limits, 5xx responses, or a transcript that
// the ASR provider has not finished yet.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// ASR transcripts report a non-terminal status until processing ends
	if strings.Contains(errStr, "not ready") {
		return true
	}

	return false
}
