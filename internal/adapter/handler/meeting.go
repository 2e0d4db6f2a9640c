package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/meetingmind-team/meetingmind/errors"
	"github.com/meetingmind-team/meetingmind/internal/adapter/dto/common"
	meetingdto "github.com/meetingmind-team/meetingmind/internal/adapter/dto/meeting"
	meetingusecase "github.com/meetingmind-team/meetingmind/internal/usecase/meeting"
	"github.com/meetingmind-team/meetingmind/pkg/config"
)

// Meeting handles transcript processing and meeting retrieval endpoints
type Meeting struct {
	service meetingusecase.Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service meetingusecase.Service, cfg *config.Config, logger *zap.Logger) *Meeting {
	return &Meeting{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// ProcessTranscript runs the extraction pipeline over a raw transcript and
// stores the resulting meeting.
// POST /v1/meetings/process
func (h *Meeting) ProcessTranscript(c echo.Context) error {
	var req meetingdto.ProcessTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	meeting, tasks, err := h.service.ProcessTranscript(c.Request().Context(), meetingusecase.ProcessInput{
		Title:          req.Title,
		Transcript:     req.Transcript,
		Context:        req.Context,
		PreferRemote:   h.preferRemote(req.PreferRemote),
		StructuredOnly: req.StructuredOnly,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, meetingdto.FromMeeting(meeting, tasks))
}

// ProcessRecording ingests a finished ASR transcript by provider id.
// POST /v1/meetings/from-recording
func (h *Meeting) ProcessRecording(c echo.Context) error {
	var req meetingdto.ProcessRecordingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	meeting, tasks, err := h.service.ProcessRecording(c.Request().Context(), req.TranscriptID, meetingusecase.ProcessInput{
		Title:          req.Title,
		Context:        req.Context,
		PreferRemote:   h.preferRemote(req.PreferRemote),
		StructuredOnly: req.StructuredOnly,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, meetingdto.FromMeeting(meeting, tasks))
}

// GetMeeting returns one meeting with its tasks.
// GET /v1/meetings/:id
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid meeting id"))
	}

	meeting, err := h.service.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	tasks, err := h.service.ListTasks(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.FromMeeting(meeting, tasks))
}

// ListMeetings returns a page of meetings, newest first.
// GET /v1/meetings
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req meetingdto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	meetings, total, err := h.service.ListMeetings(c.Request().Context(), req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items := make([]meetingdto.MeetingResponse, 0, len(meetings))
	for i := range meetings {
		items = append(items, meetingdto.FromMeeting(&meetings[i], nil))
	}

	return HandleSuccess(h.logger, c, common.ListResponse{
		Data:       items,
		Pagination: common.NewPagination(req.Page, req.PageSize, total),
	})
}

// DeleteMeeting removes a meeting and its tasks.
// DELETE /v1/meetings/:id
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid meeting id"))
	}

	if err := h.service.DeleteMeeting(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"deleted": id.String()})
}

// ListTasks returns the tasks extracted from one meeting.
// GET /v1/meetings/:id/tasks
func (h *Meeting) ListTasks(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid meeting id"))
	}

	tasks, err := h.service.ListTasks(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items := make([]meetingdto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, meetingdto.FromTask(t))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"tasks": items})
}

// preferRemote resolves the per-request flag against the configured default.
func (h *Meeting) preferRemote(flag *bool) bool {
	if flag != nil {
		return *flag
	}
	if h.cfg != nil {
		return h.cfg.ModelAPI.PreferRemote
	}
	return true
}
