package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/meetingmind-team/meetingmind/errors"
	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
	"github.com/meetingmind-team/meetingmind/pkg/ai"
	"github.com/meetingmind-team/meetingmind/pkg/config"
)

// Stage is one strategy in the summarization fallback chain
type Stage int

const (
	StageRemote Stage = iota
	StageLocal
	StageExhausted
)

func (s Stage) String() string {
	switch s {
	case StageRemote:
		return "remote"
	case StageLocal:
		return "local"
	default:
		return "exhausted"
	}
}

// FirstStage picks the opening stage of the chain
func FirstStage(preferRemote bool) Stage {
	if preferRemote {
		return StageRemote
	}
	return StageLocal
}

// NextStage is the pure transition function of the fallback chain:
// remote degrades to local, local degrades to exhausted, exhausted is
// terminal.
func NextStage(s Stage) Stage {
	switch s {
	case StageRemote:
		return StageLocal
	case StageLocal:
		return StageExhausted
	default:
		return StageExhausted
	}
}

const (
	defaultRemoteTimeout = 30 * time.Second
	defaultHealthTimeout = 5 * time.Second
	defaultMaxLength     = 128

	// The structured overview alone is considered too thin below this
	// length; the local stage then appends an abstractive pass.
	minStructuredSummaryChars = 200
)

// Orchestrator runs the summarization fallback chain: remote model first
// (when preferred), then the local structured-plus-abstractive strategy.
// Each stage is attempted exactly once.
type Orchestrator struct {
	remote      RemoteSummarizer
	abstractive AbstractiveSummarizer
	builder     *SummaryBuilder

	remoteTimeout time.Duration
	healthTimeout time.Duration
	maxLength     int

	logger *zap.Logger
}

// NewOrchestrator builds an orchestrator. cfg may be nil, defaults apply.
func NewOrchestrator(remote RemoteSummarizer, abstractive AbstractiveSummarizer, builder *SummaryBuilder, cfg *config.ModelAPIConfig, logger *zap.Logger) *Orchestrator {
	o := &Orchestrator{
		remote:        remote,
		abstractive:   abstractive,
		builder:       builder,
		remoteTimeout: defaultRemoteTimeout,
		healthTimeout: defaultHealthTimeout,
		maxLength:     defaultMaxLength,
		logger:        logger,
	}
	if builder == nil {
		o.builder = NewSummaryBuilder()
	}
	if cfg != nil {
		if cfg.SummarizeTimeout > 0 {
			o.remoteTimeout = cfg.SummarizeTimeout
		}
		if cfg.HealthTimeout > 0 {
			o.healthTimeout = cfg.HealthTimeout
		}
		if cfg.MaxLength > 0 {
			o.maxLength = cfg.MaxLength
		}
	}
	return o
}

// Summarize walks the fallback chain until a stage succeeds. Abandoned runs
// stop at the next stage boundary; an exhausted chain surfaces a terminal
// error.
func (o *Orchestrator) Summarize(ctx context.Context, text, meetingContext string, segments []entities.Segment, preferRemote bool) (*entities.SummaryResult, error) {
	var lastErr error
	for stage := FirstStage(preferRemote); stage != StageExhausted; stage = NextStage(stage) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			result *entities.SummaryResult
			err    error
		)
		switch stage {
		case StageRemote:
			result, err = o.tryRemote(ctx, text, meetingContext)
		case StageLocal:
			result, err = o.tryLocal(ctx, text, meetingContext, segments)
		}
		if err == nil {
			return result, nil
		}

		lastErr = err
		if o.logger != nil {
			o.logger.Warn("⚠️ Summarization stage failed",
				zap.String("stage", stage.String()),
				zap.Error(err))
		}
	}
	return nil, apperrors.ErrSummarizationFailed(lastErr)
}

func (o *Orchestrator) tryRemote(ctx context.Context, text, meetingContext string) (*entities.SummaryResult, error) {
	if o.remote == nil {
		return nil, fmt.Errorf("no remote summarizer configured")
	}

	// Advisory only: the health probe logs model state but never blocks or
	// fails the summarize call, and survives caller cancellation.
	go func() {
		hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.healthTimeout)
		defer cancel()
		health, err := o.remote.CheckHealth(hctx)
		if o.logger == nil {
			return
		}
		if err != nil {
			o.logger.Warn("⚠️ Model API health check failed", zap.Error(err))
			return
		}
		o.logger.Debug("Model API health",
			zap.String("status", health.Status),
			zap.String("current_model", health.CurrentModel),
			zap.Bool("primary_model_loaded", health.PrimaryModelLoaded))
	}()

	rctx, cancel := context.WithTimeout(ctx, o.remoteTimeout)
	defer cancel()

	resp, err := o.remote.Summarize(rctx, text, meetingContext, o.maxLength)
	if err != nil {
		return nil, fmt.Errorf("remote summarization failed: %w", err)
	}

	modelUsed := fmt.Sprintf("remote:%s", resp.ModelUsed)
	if resp.FallbackUsed {
		modelUsed += " (remote fallback)"
	}
	if o.logger != nil {
		o.logger.Info("✅ Remote summarization succeeded", zap.String("model", resp.ModelUsed))
	}
	return &entities.SummaryResult{
		Summary:      resp.Summary,
		ModelUsed:    modelUsed,
		FallbackUsed: false,
	}, nil
}

// tryLocal builds the structured overview block and, when it comes out thin,
// appends a local abstractive pass. An abstractive failure here is terminal
// for the stage; the chain has nothing left after it.
func (o *Orchestrator) tryLocal(ctx context.Context, text, meetingContext string, segments []entities.Segment) (*entities.SummaryResult, error) {
	block := o.builder.OverviewBlock(segments)
	modelUsed := "local:structured"

	if len(block) < minStructuredSummaryChars {
		if o.abstractive == nil {
			return nil, fmt.Errorf("structured summary too short and no abstractive summarizer configured")
		}

		input := text
		if meetingContext != "" {
			input = fmt.Sprintf("Meeting Context: %s\n\nTranscript: %s", meetingContext, text)
		}
		abstract, err := o.abstractive.Summarize(ctx, input, ai.DefaultGenerationOptions(o.maxLength))
		if err != nil {
			return nil, fmt.Errorf("local abstractive summarization failed: %w", err)
		}
		if block != "" {
			block += "\n\n"
		}
		block += abstract
		modelUsed = "local:structured+abstractive"
	}

	if o.logger != nil {
		o.logger.Info("✅ Local summarization used", zap.String("model", modelUsed))
	}
	return &entities.SummaryResult{
		Summary:      block,
		ModelUsed:    modelUsed,
		FallbackUsed: true,
	}, nil
}
