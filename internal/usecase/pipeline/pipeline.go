package pipeline

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
	"github.com/meetingmind-team/meetingmind/pkg/config"
)

// Options controls a single pipeline run
type Options struct {
	// MeetingContext is optional caller-supplied background for the
	// summarizer ("Q3 planning sync").
	MeetingContext string
	// PreferRemote enables the remote summarization stage.
	PreferRemote bool
	// StructuredOnly skips the fallback chain entirely and uses the
	// structured builder as the primary strategy.
	StructuredOnly bool
}

// Result is the full pipeline contract the persistence layer folds into a
// Meeting record.
type Result struct {
	Summary      string
	ModelUsed    string
	FallbackUsed bool
	Entities     entities.EntityGroups
	Tasks        []*entities.TaskItem
	Segmentation *entities.SegmentationResult
	Structured   *entities.StructuredSummary
}

// Pipeline wires the cleaner, segmenter, extractors and the summarization
// orchestrator into one transcript-processing run.
type Pipeline struct {
	orchestrator    *Orchestrator
	entityExtractor *EntityExtractor
	taskExtractor   *TaskExtractor
	builder         *SummaryBuilder
	logger          *zap.Logger
}

// NewPipeline builds a pipeline over the given model capabilities. seq may
// be nil; task ids then come from an in-memory counter.
func NewPipeline(remote RemoteSummarizer, abstractive AbstractiveSummarizer, classifier TokenClassifier, seq Sequence, cfg *config.ModelAPIConfig, logger *zap.Logger) *Pipeline {
	builder := NewSummaryBuilder()
	return &Pipeline{
		orchestrator:    NewOrchestrator(remote, abstractive, builder, cfg, logger),
		entityExtractor: NewEntityExtractor(classifier, logger),
		taskExtractor:   NewTaskExtractor(seq),
		builder:         builder,
		logger:          logger,
	}
}

// Run processes one transcript: clean, segment, then entity extraction, task
// extraction and summarization as three concurrent branches. Entity and task
// failures degrade to empty results; only an exhausted summarization chain is
// fatal.
func (p *Pipeline) Run(ctx context.Context, transcript string, opts Options) (*Result, error) {
	cleaned := CleanTranscript(transcript)
	segmentation := SegmentBySpeaker(cleaned)

	var (
		wg     sync.WaitGroup
		groups entities.EntityGroups
		tasks  []*entities.TaskItem
		sum    *entities.SummaryResult
		sumErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if p.logger != nil {
					p.logger.Error("❌ Entity extraction panicked", zap.Any("panic", r))
				}
				groups = entities.EmptyEntityGroups()
			}
		}()
		groups = p.entityExtractor.Extract(ctx, cleaned)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				if p.logger != nil {
					p.logger.Error("❌ Task extraction panicked", zap.Any("panic", r))
				}
				tasks = nil
			}
		}()
		tasks = p.taskExtractor.ExtractFromSegments(segmentation.Segments)
	}()

	if !opts.StructuredOnly {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sum, sumErr = p.orchestrator.Summarize(ctx, cleaned, opts.MeetingContext, segmentation.Segments, opts.PreferRemote)
		}()
	}

	wg.Wait()

	if sumErr != nil {
		return nil, sumErr
	}

	topics := p.builder.DetectTopics(segmentation.Segments)
	structured := p.builder.Build(segmentation.Segments, topics, tasks, opts.MeetingContext)

	if opts.StructuredOnly {
		sum = &entities.SummaryResult{
			Summary:      structured.Text,
			ModelUsed:    "local:structured",
			FallbackUsed: false,
		}
	}

	if p.logger != nil {
		p.logger.Info("✅ Pipeline run complete",
			zap.Int("segments", len(segmentation.Segments)),
			zap.Int("speakers", len(segmentation.Speakers)),
			zap.Int("entities", groups.Total()),
			zap.Int("tasks", len(tasks)),
			zap.String("model_used", sum.ModelUsed),
			zap.Bool("fallback_used", sum.FallbackUsed))
	}

	return &Result{
		Summary:      sum.Summary,
		ModelUsed:    sum.ModelUsed,
		FallbackUsed: sum.FallbackUsed,
		Entities:     groups,
		Tasks:        tasks,
		Segmentation: segmentation,
		Structured:   structured,
	}, nil
}
