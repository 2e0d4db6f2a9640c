package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/meetingmind-team/meetingmind/errors"
	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
	domainrepo "github.com/meetingmind-team/meetingmind/internal/domain/repositories"
	"github.com/meetingmind-team/meetingmind/internal/infrastructure/cache"
	"github.com/meetingmind-team/meetingmind/internal/usecase/pipeline"
	pkgai "github.com/meetingmind-team/meetingmind/pkg/ai"
	"github.com/meetingmind-team/meetingmind/pkg/config"
	"github.com/meetingmind-team/meetingmind/pkg/runcontext"
)

// ProcessInput carries one transcript-processing request
type ProcessInput struct {
	Title          string
	Transcript     string
	Context        string
	PreferRemote   bool
	StructuredOnly bool
	// Duration in seconds, when the transcript came from a recording
	Duration int
}

// Service defines meeting processing and retrieval methods
type Service interface {
	ProcessTranscript(ctx context.Context, input ProcessInput) (*entities.Meeting, []entities.TaskItem, error)
	ProcessRecording(ctx context.Context, transcriptID string, input ProcessInput) (*entities.Meeting, []entities.TaskItem, error)
	GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	ListMeetings(ctx context.Context, limit, offset int) ([]entities.Meeting, int64, error)
	DeleteMeeting(ctx context.Context, id uuid.UUID) error
	ListTasks(ctx context.Context, meetingID uuid.UUID) ([]entities.TaskItem, error)
	UpdateTaskStatus(ctx context.Context, taskID int64, status string) (*entities.TaskItem, error)
}

type meetingService struct {
	meetingRepo domainrepo.MeetingRepository
	taskRepo    domainrepo.TaskRepository
	pipe        *pipeline.Pipeline
	asrClient   *pkgai.AssemblyAIClient
	results     *cache.ResultCache
	cfg         *config.Config
	logger      *zap.Logger
}

// NewMeetingService constructs a new meeting service. results may be nil to
// disable the processed-transcript cache.
func NewMeetingService(
	meetingRepo domainrepo.MeetingRepository,
	taskRepo domainrepo.TaskRepository,
	pipe *pipeline.Pipeline,
	asrClient *pkgai.AssemblyAIClient,
	results *cache.ResultCache,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &meetingService{
		meetingRepo: meetingRepo,
		taskRepo:    taskRepo,
		pipe:        pipe,
		asrClient:   asrClient,
		results:     results,
		cfg:         cfg,
		logger:      logger,
	}
}

// cachedOutcome is the processed-transcript payload stored in the result
// cache, keyed by a digest of the pipeline inputs.
type cachedOutcome struct {
	Summary      string                `json:"summary"`
	ModelUsed    string                `json:"model_used"`
	FallbackUsed bool                  `json:"fallback_used"`
	Entities     entities.EntityGroups `json:"entities"`
	Tasks        []*entities.TaskItem  `json:"tasks"`
	Participants []string              `json:"participants"`
	SegmentCount int                   `json:"segment_count"`
}

// ProcessTranscript runs the extraction pipeline over a transcript and
// persists the resulting meeting with its tasks.
func (s *meetingService) ProcessTranscript(ctx context.Context, input ProcessInput) (*entities.Meeting, []entities.TaskItem, error) {
	ctx, cancel := runcontext.Begin(ctx, "api")
	defer cancel()

	transcript := strings.TrimSpace(input.Transcript)
	if transcript == "" {
		return nil, nil, apperrors.ErrInvalidArgument("transcript is required")
	}

	// Transcripts below the threshold carry too little signal for any
	// extractor; store them as-is with the text doubling as summary.
	if len(transcript) < s.minTranscriptChars() {
		if s.logger != nil {
			s.logger.Info("📝 Transcript under minimum length, skipping pipeline",
				zap.Int("length", len(transcript)))
		}
		meeting := s.newMeeting(input, transcript)
		meeting.Summary = transcript
		meeting.ModelUsed = "none"
		meeting.Entities = newEntitiesColumn(entities.EmptyEntityGroups())
		if err := s.meetingRepo.Create(ctx, meeting); err != nil {
			return nil, nil, apperrors.ErrDBQueryFailed("create meeting", err)
		}
		return meeting, nil, nil
	}

	outcome, err := s.processWithCache(ctx, transcript, input)
	if err != nil {
		return nil, nil, err
	}

	meeting := s.newMeeting(input, transcript)
	meeting.Summary = outcome.Summary
	meeting.ModelUsed = outcome.ModelUsed
	meeting.FallbackUsed = outcome.FallbackUsed
	meeting.Entities = newEntitiesColumn(outcome.Entities)
	meeting.Participants = outcome.Participants
	meeting.SegmentCount = outcome.SegmentCount

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed("create meeting", err)
	}

	for _, t := range outcome.Tasks {
		mid := meeting.ID
		t.MeetingID = &mid
	}
	if err := s.taskRepo.CreateBatch(ctx, outcome.Tasks); err != nil {
		return nil, nil, apperrors.ErrDBQueryFailed("create tasks", err)
	}

	stored := make([]entities.TaskItem, 0, len(outcome.Tasks))
	for _, t := range outcome.Tasks {
		stored = append(stored, *t)
	}

	if s.logger != nil {
		runID, _ := runcontext.RunID(ctx)
		s.logger.Info("✅ Meeting processed",
			zap.String("run_id", runID.String()),
			zap.String("meeting_id", meeting.ID.String()),
			zap.Int("tasks", len(stored)),
			zap.Duration("elapsed", runcontext.Elapsed(ctx)))
	}

	return meeting, stored, nil
}

// processWithCache memoizes pipeline output on the transcript digest. Cache
// trouble is logged and ignored; the pipeline is the source of truth.
func (s *meetingService) processWithCache(ctx context.Context, transcript string, input ProcessInput) (*cachedOutcome, error) {
	var key string
	if s.results != nil {
		key = cache.DigestKey(transcript, input.Context,
			fmt.Sprintf("remote=%t", input.PreferRemote),
			fmt.Sprintf("structured=%t", input.StructuredOnly))

		var cached cachedOutcome
		hit, err := s.results.Get(ctx, key, &cached)
		if err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Result cache read failed", zap.Error(err))
		}
		if hit {
			if s.logger != nil {
				s.logger.Info("⚡ Result cache hit")
			}
			// Cached tasks keep their old ids; reset so the insert
			// assigns fresh ones for this meeting.
			for _, t := range cached.Tasks {
				t.ID = 0
				t.MeetingID = nil
			}
			return &cached, nil
		}
	}

	result, err := s.pipe.Run(ctx, transcript, pipeline.Options{
		MeetingContext: input.Context,
		PreferRemote:   input.PreferRemote,
		StructuredOnly: input.StructuredOnly,
	})
	if err != nil {
		return nil, err
	}

	outcome := &cachedOutcome{
		Summary:      result.Summary,
		ModelUsed:    result.ModelUsed,
		FallbackUsed: result.FallbackUsed,
		Entities:     result.Entities,
		Tasks:        result.Tasks,
		Participants: result.Segmentation.Speakers,
		SegmentCount: len(result.Segmentation.Segments),
	}

	if s.results != nil {
		if err := s.results.Set(ctx, key, outcome); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Result cache write failed", zap.Error(err))
		}
	}

	return outcome, nil
}

// ProcessRecording fetches a finished ASR transcript by id, with retries
// while the provider is still processing, then runs the regular pipeline.
func (s *meetingService) ProcessRecording(ctx context.Context, transcriptID string, input ProcessInput) (*entities.Meeting, []entities.TaskItem, error) {
	if s.asrClient == nil {
		return nil, nil, apperrors.ErrInvalidArgument("recording ingestion is not configured")
	}
	if transcriptID == "" {
		return nil, nil, apperrors.ErrInvalidArgument("transcript_id is required")
	}

	var transcript *pkgai.ASRTranscript
	operation := func() error {
		var err error
		transcript, err = s.asrClient.FetchTranscript(ctx, transcriptID)
		if err != nil && !runcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 2 * time.Second
	policy.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, nil, apperrors.ErrTranscriptFetchFailed(transcriptID, err)
	}

	if s.logger != nil {
		s.logger.Info("🎙️ Transcript fetched from ASR provider",
			zap.String("transcript_id", transcriptID),
			zap.Int("duration_seconds", transcript.Duration))
	}

	input.Transcript = transcript.Text
	input.Duration = transcript.Duration
	return s.ProcessTranscript(ctx, input)
}

// GetMeeting retrieves a meeting by id
func (s *meetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if meeting == nil {
		return nil, apperrors.ErrMeetingNotFound(id.String())
	}
	return meeting, nil
}

// ListMeetings returns a page of meetings plus the total count
func (s *meetingService) ListMeetings(ctx context.Context, limit, offset int) ([]entities.Meeting, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	meetings, total, err := s.meetingRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.ErrDBQueryFailed("list meetings", err)
	}
	return meetings, total, nil
}

// DeleteMeeting removes a meeting and its extracted tasks
func (s *meetingService) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		return apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if meeting == nil {
		return apperrors.ErrMeetingNotFound(id.String())
	}

	if err := s.taskRepo.DeleteByMeetingID(ctx, id); err != nil {
		return apperrors.ErrDBQueryFailed("delete meeting tasks", err)
	}
	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return apperrors.ErrDBQueryFailed("delete meeting", err)
	}

	if s.logger != nil {
		s.logger.Info("🗑️ Meeting deleted", zap.String("meeting_id", id.String()))
	}
	return nil
}

// ListTasks returns the tasks extracted from one meeting
func (s *meetingService) ListTasks(ctx context.Context, meetingID uuid.UUID) ([]entities.TaskItem, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if meeting == nil {
		return nil, apperrors.ErrMeetingNotFound(meetingID.String())
	}

	tasks, err := s.taskRepo.ListByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list tasks", err)
	}
	return tasks, nil
}

// UpdateTaskStatus moves a task through pending → in-progress → completed
func (s *meetingService) UpdateTaskStatus(ctx context.Context, taskID int64, status string) (*entities.TaskItem, error) {
	if !entities.ValidTaskStatus(status) {
		return nil, apperrors.ErrInvalidTaskStatus(status)
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("get task", err)
	}
	if task == nil {
		return nil, apperrors.ErrTaskNotFound(fmt.Sprintf("%d", taskID))
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, status); err != nil {
		return nil, apperrors.ErrDBQueryFailed("update task status", err)
	}
	task.Status = status
	return task, nil
}

func (s *meetingService) minTranscriptChars() int {
	if s.cfg != nil && s.cfg.Pipeline.MinTranscriptChars > 0 {
		return s.cfg.Pipeline.MinTranscriptChars
	}
	return 20
}

func (s *meetingService) newMeeting(input ProcessInput, transcript string) *entities.Meeting {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "Untitled Meeting"
	}
	meeting := entities.NewMeeting(title)
	meeting.Transcript = transcript
	meeting.Context = input.Context
	meeting.Duration = input.Duration
	return meeting
}

func newEntitiesColumn(groups entities.EntityGroups) datatypes.JSONType[entities.EntityGroups] {
	return datatypes.NewJSONType(groups)
}
