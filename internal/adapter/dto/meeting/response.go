package meeting

import (
	"time"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
)

// MeetingResponse is the outward shape of a processed meeting
type MeetingResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Summary      string                `json:"summary"`
	ModelUsed    string                `json:"model_used"`
	FallbackUsed bool                  `json:"fallback_used"`
	Entities     entities.EntityGroups `json:"entities"`
	Participants []string              `json:"participants"`
	SegmentCount int                   `json:"segment_count"`
	Duration     int                   `json:"duration,omitempty"`
	Tasks        []TaskResponse        `json:"tasks,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// TaskResponse is the outward shape of an extracted task
type TaskResponse struct {
	ID            int64   `json:"id"`
	Text          string  `json:"text"`
	AssignedTo    *string `json:"assigned_to,omitempty"`
	Deadline      *string `json:"deadline,omitempty"`
	Priority      string  `json:"priority"`
	ExtractedFrom string  `json:"extracted_from,omitempty"`
	Status        string  `json:"status"`
	MeetingID     string  `json:"meeting_id,omitempty"`
}

// FromMeeting maps a meeting entity and its tasks to the response shape
func FromMeeting(m *entities.Meeting, tasks []entities.TaskItem) MeetingResponse {
	resp := MeetingResponse{
		ID:           m.ID.String(),
		Title:        m.Title,
		Summary:      m.Summary,
		ModelUsed:    m.ModelUsed,
		FallbackUsed: m.FallbackUsed,
		Entities:     m.Entities.Data(),
		Participants: m.Participants,
		SegmentCount: m.SegmentCount,
		Duration:     m.Duration,
		CreatedAt:    m.CreatedAt,
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, FromTask(t))
	}
	return resp
}

// FromTask maps a task entity to the response shape
func FromTask(t entities.TaskItem) TaskResponse {
	resp := TaskResponse{
		ID:            t.ID,
		Text:          t.Text,
		AssignedTo:    t.AssignedTo,
		Deadline:      t.Deadline,
		Priority:      t.Priority,
		ExtractedFrom: t.ExtractedFrom,
		Status:        t.Status,
	}
	if t.MeetingID != nil {
		resp.MeetingID = t.MeetingID.String()
	}
	return resp
}
