package meeting

// ProcessTranscriptRequest is the payload for POST /v1/meetings/process
type ProcessTranscriptRequest struct {
	Title          string `json:"title" validate:"omitempty,max=255"`
	Transcript     string `json:"transcript" validate:"required"`
	Context        string `json:"context" validate:"omitempty,max=2000"`
	PreferRemote   *bool  `json:"prefer_remote"`
	StructuredOnly bool   `json:"structured_only"`
}

// ProcessRecordingRequest is the payload for POST /v1/meetings/from-recording
type ProcessRecordingRequest struct {
	TranscriptID   string `json:"transcript_id" validate:"required"`
	Title          string `json:"title" validate:"omitempty,max=255"`
	Context        string `json:"context" validate:"omitempty,max=2000"`
	PreferRemote   *bool  `json:"prefer_remote"`
	StructuredOnly bool   `json:"structured_only"`
}

// ListMeetingsRequest carries pagination query parameters
type ListMeetingsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// UpdateTaskStatusRequest is the payload for PATCH /v1/tasks/:id/status
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}
