package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/meetingmind-team/meetingmind/errors"
	meetingdto "github.com/meetingmind-team/meetingmind/internal/adapter/dto/meeting"
	meetingusecase "github.com/meetingmind-team/meetingmind/internal/usecase/meeting"
)

// Task handles task status endpoints
type Task struct {
	service meetingusecase.Service
	logger  *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service meetingusecase.Service, logger *zap.Logger) *Task {
	return &Task{
		service: service,
		logger:  logger,
	}
}

// UpdateStatus moves a task between pending, in-progress and completed.
// PATCH /v1/tasks/:id/status
func (h *Task) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("invalid task id"))
	}

	var req meetingdto.UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	task, err := h.service.UpdateTaskStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meetingdto.FromTask(*task))
}
