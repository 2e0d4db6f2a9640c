package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meetingmind-team/meetingmind/pkg/ai"
	"github.com/meetingmind-team/meetingmind/pkg/config"
)

// HealthProber reports the remote summarization sidecar's health.
// Implemented by ai.ModelAPIClient.
type HealthProber interface {
	CheckHealth(ctx context.Context) (*ai.HealthResponse, error)
}

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	taskHandler    *Task
	modelHealth    HealthProber
}

// NewRouter creates a new router with all handlers. modelHealth may be nil to
// omit the advisory model status from the health endpoint.
func NewRouter(cfg *config.Config, meetingHandler *Meeting, taskHandler *Task, modelHealth HealthProber) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		taskHandler:    taskHandler,
		modelHealth:    modelHealth,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	// Setup route groups
	rt.setupMeetingRoutes(v1)
	rt.setupTaskRoutes(v1)
}

// setupMeetingRoutes configures transcript processing and meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	if rt.meetingHandler != nil {
		meetingGroup.POST("/process", rt.meetingHandler.ProcessTranscript)
		meetingGroup.POST("/from-recording", rt.meetingHandler.ProcessRecording)
		meetingGroup.GET("", rt.meetingHandler.ListMeetings)
		meetingGroup.GET("/:id", rt.meetingHandler.GetMeeting)
		meetingGroup.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
		meetingGroup.GET("/:id/tasks", rt.meetingHandler.ListTasks)
	} else {
		// Placeholder routes when handler is not initialized
		meetingGroup.POST("/process", rt.notImplemented)
		meetingGroup.POST("/from-recording", rt.notImplemented)
		meetingGroup.GET("", rt.notImplemented)
		meetingGroup.GET("/:id", rt.notImplemented)
		meetingGroup.DELETE("/:id", rt.notImplemented)
		meetingGroup.GET("/:id/tasks", rt.notImplemented)
	}
}

// setupTaskRoutes configures task status routes
func (rt *Router) setupTaskRoutes(g *echo.Group) {
	taskGroup := g.Group("/tasks")

	if rt.taskHandler != nil {
		taskGroup.PATCH("/:id/status", rt.taskHandler.UpdateStatus)
	} else {
		taskGroup.PATCH("/:id/status", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status. The remote model probe is advisory; its
// failure never degrades the service status.
func (rt *Router) healthCheck(c echo.Context) error {
	environment := "development"
	if rt.cfg != nil && rt.cfg.Server.Environment != "" {
		environment = rt.cfg.Server.Environment
	}

	body := map[string]interface{}{
		"status":      "ok",
		"environment": environment,
	}

	if rt.modelHealth != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if hr, err := rt.modelHealth.CheckHealth(ctx); err != nil {
			body["model_api"] = map[string]interface{}{"status": "unreachable"}
		} else {
			body["model_api"] = map[string]interface{}{
				"status":        hr.Status,
				"current_model": hr.CurrentModel,
			}
		}
	}

	return c.JSON(http.StatusOK, body)
}
