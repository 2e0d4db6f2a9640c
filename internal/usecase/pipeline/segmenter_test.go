package pipeline

import (
	"reflect"
	"testing"
)

func TestSegmentBySpeaker(t *testing.T) {
	text := "Alice: We will schedule the launch by Friday. Bob: I will follow up with Carol on the budget."

	result := SegmentBySpeaker(text)

	wantSpeakers := []string{"Alice", "Bob"}
	if !reflect.DeepEqual(result.Speakers, wantSpeakers) {
		t.Fatalf("speakers = %v, want %v", result.Speakers, wantSpeakers)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(result.Segments))
	}
	if result.Segments[0].Speaker != "Alice" || result.Segments[0].Content != "We will schedule the launch by Friday" {
		t.Fatalf("unexpected first segment: %+v", result.Segments[0])
	}
	if result.Segments[1].Speaker != "Bob" {
		t.Fatalf("unexpected second segment: %+v", result.Segments[1])
	}
}

func TestSegmentBySpeakerStoplist(t *testing.T) {
	text := "Well, I think we should postpone the release. Good: point taken everyone."

	result := SegmentBySpeaker(text)

	if len(result.Speakers) != 0 {
		t.Fatalf("stoplisted openers must not become speakers, got %v", result.Speakers)
	}
	for _, seg := range result.Segments {
		if seg.Speaker != "" {
			t.Fatalf("expected speaker-less segment, got %+v", seg)
		}
	}
}

func TestSegmentBySpeakerDashForm(t *testing.T) {
	text := "Dana - the deployment checklist is ready for review."

	result := SegmentBySpeaker(text)

	if len(result.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(result.Segments))
	}
	if result.Segments[0].Speaker != "Dana" {
		t.Fatalf("expected dash-form speaker Dana, got %+v", result.Segments[0])
	}
}

func TestSegmentBySpeakerDiscardsShortUnits(t *testing.T) {
	text := "Hi all. Today we review the quarterly roadmap together."

	result := SegmentBySpeaker(text)

	if len(result.Segments) != 1 {
		t.Fatalf("short units must be discarded, got %d segments", len(result.Segments))
	}
}

func TestSegmentBySpeakerNoSpeakers(t *testing.T) {
	result := SegmentBySpeaker("the deployment is done and everyone agreed on the timeline")
	if len(result.Speakers) != 0 {
		t.Fatalf("expected no speakers, got %v", result.Speakers)
	}
	if len(result.Segments) != 1 || result.Segments[0].Speaker != "" {
		t.Fatalf("expected one speaker-less segment, got %+v", result.Segments)
	}
}
