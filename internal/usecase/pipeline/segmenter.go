package pipeline

import (
	"regexp"
	"strings"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
)

var sentenceBoundaryRe = regexp.MustCompile(`[.!?]+\s+`)

// splitSentences breaks text into sentence-like units at terminal punctuation
// followed by whitespace. Units are trimmed; empty units are dropped.
func splitSentences(text string) []string {
	parts := sentenceBoundaryRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(p, ".!?"))
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// Speaker label patterns, tried in order. The colon/comma form wins over the
// dash form when both could match.
var speakerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^([A-Z][a-zA-Z]+)\s*[:,]\s*(.+)$`),
	regexp.MustCompile(`^([A-Z][a-zA-Z]+)\s*-\s*(.+)$`),
}

// speakerStoplist holds sentence openers that match the speaker-label shape
// but are conversational, not names.
var speakerStoplist = map[string]struct{}{
	"Good":   {},
	"Thanks": {},
	"Yes":    {},
	"No":     {},
	"Okay":   {},
	"Well":   {},
}

const minSegmentChars = 10

// SegmentBySpeaker splits cleaned transcript text into sentence-like segments
// and attributes each to a speaker when a speaker-label pattern matches.
// Speakers are collected in order of first appearance.
func SegmentBySpeaker(text string) *entities.SegmentationResult {
	result := &entities.SegmentationResult{
		Speakers: []string{},
		Segments: []entities.Segment{},
	}

	seen := make(map[string]struct{})
	for _, sentence := range splitSentences(text) {
		if len(sentence) < minSegmentChars {
			continue
		}

		speaker, content := matchSpeaker(sentence)
		if speaker != "" {
			if _, ok := seen[speaker]; !ok {
				seen[speaker] = struct{}{}
				result.Speakers = append(result.Speakers, speaker)
			}
		}
		result.Segments = append(result.Segments, entities.Segment{
			Speaker: speaker,
			Content: content,
		})
	}
	return result
}

// matchSpeaker returns the speaker label and remaining content for a sentence,
// or ("", sentence) when no pattern applies.
func matchSpeaker(sentence string) (string, string) {
	for _, pattern := range speakerPatterns {
		m := pattern.FindStringSubmatch(sentence)
		if m == nil {
			continue
		}
		name := m[1]
		if _, stopped := speakerStoplist[name]; stopped {
			continue
		}
		return name, strings.TrimSpace(m[2])
	}
	return "", sentence
}
