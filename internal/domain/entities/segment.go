package entities

// Segment is a sentence-like unit of transcript attributed to zero or one speaker
type Segment struct {
	Speaker string `json:"speaker,omitempty"`
	Content string `json:"content"`
}

// SegmentationResult is the output of the speaker segmenter
type SegmentationResult struct {
	Speakers []string  `json:"speakers"`
	Segments []Segment `json:"segments"`
}
