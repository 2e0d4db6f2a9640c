package pipeline

import (
	"fmt"
	"strings"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
)

const (
	// Segments shorter than this are not substantial enough for the
	// per-speaker key points block.
	minSubstantialSegmentChars = 30

	maxTopicsInOverview = 5

	firstPointTruncateLen  = 80
	secondPointTruncateLen = 60
)

// topicVocabulary drives topic detection by case-insensitive substring match
// of segment content.
var topicVocabulary = []string{
	"launch", "release", "deployment", "budget", "marketing", "design",
	"development", "testing", "hiring", "roadmap", "timeline", "schedule",
	"revenue", "sales", "customer", "product", "feature", "security",
	"infrastructure", "partnership",
}

// SummaryBuilder assembles a deterministic template-driven narrative summary
// from segments, topics and tasks. Nothing here is generative.
type SummaryBuilder struct{}

func NewSummaryBuilder() *SummaryBuilder {
	return &SummaryBuilder{}
}

// DetectTopics scans segment content against the topic vocabulary and
// returns topics in order of first appearance.
func (b *SummaryBuilder) DetectTopics(segments []entities.Segment) []string {
	topics := []string{}
	seen := make(map[string]struct{})
	for _, seg := range segments {
		content := strings.ToLower(seg.Content)
		for _, topic := range topicVocabulary {
			if _, ok := seen[topic]; ok {
				continue
			}
			if strings.Contains(content, topic) {
				seen[topic] = struct{}{}
				topics = append(topics, topic)
			}
		}
	}
	return topics
}

// Build assembles the full structured summary: overview, key discussion
// points, action items, and a closing next-steps paragraph. Empty segment
// sequences yield an empty-participants summary without error.
func (b *SummaryBuilder) Build(segments []entities.Segment, topics []string, tasks []*entities.TaskItem, meetingContext string) *entities.StructuredSummary {
	participants := collectSpeakers(segments)

	var sb strings.Builder
	sb.WriteString(b.overviewSentence(participants, topics, meetingContext))

	if points := b.keyPointsBlock(segments); points != "" {
		sb.WriteString("\n\nKey Discussion Points:\n")
		sb.WriteString(points)
	}

	if len(tasks) > 0 {
		sb.WriteString("\n\nAction Items:\n")
		sb.WriteString(b.actionItemsBlock(tasks))
	}

	sb.WriteString("\n\nNext Steps:\n")
	sb.WriteString(b.nextStepsSentence(tasks))

	return &entities.StructuredSummary{
		Text:         sb.String(),
		Participants: participants,
		Topics:       topics,
		ActionItems:  tasks,
		SegmentCount: len(segments),
	}
}

// OverviewBlock is the overview-plus-key-points portion of the structured
// summary. The orchestrator uses it as the base of the local fallback stage.
func (b *SummaryBuilder) OverviewBlock(segments []entities.Segment) string {
	participants := collectSpeakers(segments)
	topics := b.DetectTopics(segments)

	var sb strings.Builder
	sb.WriteString(b.overviewSentence(participants, topics, ""))
	if points := b.keyPointsBlock(segments); points != "" {
		sb.WriteString("\n\nKey Discussion Points:\n")
		sb.WriteString(points)
	}
	return sb.String()
}

func (b *SummaryBuilder) overviewSentence(participants, topics []string, meetingContext string) string {
	var sb strings.Builder
	if meetingContext != "" {
		sb.WriteString(fmt.Sprintf("Meeting context: %s. ", strings.TrimRight(meetingContext, ".")))
	}

	if len(participants) == 0 {
		sb.WriteString("The meeting transcript did not contain identifiable speakers.")
	} else {
		sb.WriteString(fmt.Sprintf("The meeting involved a discussion between %s.", joinNames(participants)))
	}

	if len(topics) > 0 {
		shown := topics
		if len(shown) > maxTopicsInOverview {
			shown = shown[:maxTopicsInOverview]
		}
		sb.WriteString(fmt.Sprintf(" Key topics included %s.", joinNames(shown)))
	}
	return sb.String()
}

// keyPointsBlock emits one line per speaker covering their first one or two
// substantial segments. Speakers with no substantial content are omitted.
func (b *SummaryBuilder) keyPointsBlock(segments []entities.Segment) string {
	bySpeaker := make(map[string][]string)
	order := []string{}
	for _, seg := range segments {
		if seg.Speaker == "" || len(seg.Content) < minSubstantialSegmentChars {
			continue
		}
		if _, ok := bySpeaker[seg.Speaker]; !ok {
			order = append(order, seg.Speaker)
		}
		bySpeaker[seg.Speaker] = append(bySpeaker[seg.Speaker], seg.Content)
	}

	lines := make([]string, 0, len(order))
	for _, speaker := range order {
		contents := bySpeaker[speaker]
		line := fmt.Sprintf("- %s discussed %s", speaker, truncate(contents[0], firstPointTruncateLen))
		if len(contents) > 1 {
			line += fmt.Sprintf(", and also covered %s", truncate(contents[1], secondPointTruncateLen))
		}
		lines = append(lines, line+".")
	}
	return strings.Join(lines, "\n")
}

func (b *SummaryBuilder) actionItemsBlock(tasks []*entities.TaskItem) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		assignee := "Unassigned"
		if t.AssignedTo != nil {
			assignee = *t.AssignedTo
		}
		line := fmt.Sprintf("- %s: %s", assignee, t.Text)
		if t.Deadline != nil {
			line += fmt.Sprintf(" (Due: %s)", *t.Deadline)
		}
		if t.Priority == entities.TaskPriorityHigh {
			line += " [HIGH PRIORITY]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (b *SummaryBuilder) nextStepsSentence(tasks []*entities.TaskItem) string {
	anyDeadline := false
	for _, t := range tasks {
		if t.Deadline != nil {
			anyDeadline = true
			break
		}
	}
	if anyDeadline {
		return "The team will proceed with the action items listed above and track the stated deadlines."
	}
	return "The team will proceed with the action items listed above."
}

// collectSpeakers returns segment speakers in order of first appearance.
func collectSpeakers(segments []entities.Segment) []string {
	speakers := []string{}
	seen := make(map[string]struct{})
	for _, seg := range segments {
		if seg.Speaker == "" {
			continue
		}
		if _, ok := seen[seg.Speaker]; ok {
			continue
		}
		seen[seg.Speaker] = struct{}{}
		speakers = append(speakers, seg.Speaker)
	}
	return speakers
}

// joinNames renders a human list: "A", "A and B", "A, B, and C".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}
