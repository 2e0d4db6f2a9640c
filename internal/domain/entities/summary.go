package entities

// SummaryResult is produced once per summarization orchestration call
type SummaryResult struct {
	Summary      string `json:"summary"`
	ModelUsed    string `json:"model_used"`
	FallbackUsed bool   `json:"fallback_used"`
}

// StructuredSummary is a template-assembled narrative summary built from
// segments, topics and tasks. Non-generative.
type StructuredSummary struct {
	Text         string      `json:"text"`
	Participants []string    `json:"participants"`
	Topics       []string    `json:"topics"`
	ActionItems  []*TaskItem `json:"action_items"`
	SegmentCount int         `json:"segment_count"`
}
