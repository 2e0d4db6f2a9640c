package pipeline

import (
	"strings"
	"testing"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
)

func TestDetectTopics(t *testing.T) {
	b := NewSummaryBuilder()
	segments := []entities.Segment{
		{Speaker: "Alice", Content: "The launch depends on the deployment pipeline"},
		{Speaker: "Bob", Content: "And the budget for the launch is tight"},
	}

	topics := b.DetectTopics(segments)

	want := []string{"launch", "deployment", "budget"}
	if len(topics) != len(want) {
		t.Fatalf("topics = %v, want %v", topics, want)
	}
	for i := range want {
		if topics[i] != want[i] {
			t.Fatalf("topics = %v, want %v (first-appearance order)", topics, want)
		}
	}
}

func TestBuildFullSummary(t *testing.T) {
	b := NewSummaryBuilder()
	deadline := "Friday"
	assignee := "Alice"
	segments := []entities.Segment{
		{Speaker: "Alice", Content: "We need to finish the launch preparation before the end of the quarter"},
		{Speaker: "Bob", Content: "The budget review is nearly complete and looks healthy overall"},
	}
	tasks := []*entities.TaskItem{
		{ID: 1, Text: "finish the launch preparation", AssignedTo: &assignee, Deadline: &deadline, Priority: entities.TaskPriorityHigh},
		{ID: 2, Text: "circulate the budget review", Priority: entities.TaskPriorityLow},
	}

	summary := b.Build(segments, b.DetectTopics(segments), tasks, "")

	if summary.SegmentCount != 2 {
		t.Fatalf("segment count = %d, want 2", summary.SegmentCount)
	}
	if len(summary.Participants) != 2 {
		t.Fatalf("participants = %v", summary.Participants)
	}
	text := summary.Text
	if !strings.Contains(text, "Alice and Bob") {
		t.Fatalf("expected two-name join, got %q", text)
	}
	if !strings.Contains(text, "Key Discussion Points:") {
		t.Fatalf("missing key points block: %q", text)
	}
	if !strings.Contains(text, "- Alice: finish the launch preparation (Due: Friday) [HIGH PRIORITY]") {
		t.Fatalf("unexpected action item rendering: %q", text)
	}
	if !strings.Contains(text, "- Unassigned: circulate the budget review") {
		t.Fatalf("missing unassigned action item: %q", text)
	}
	if !strings.Contains(text, "track the stated deadlines") {
		t.Fatalf("expected deadline mention in next steps: %q", text)
	}
}

func TestBuildOxfordComma(t *testing.T) {
	b := NewSummaryBuilder()
	segments := []entities.Segment{
		{Speaker: "Alice", Content: strings.Repeat("a", 30)},
		{Speaker: "Bob", Content: strings.Repeat("b", 30)},
		{Speaker: "Carol", Content: strings.Repeat("c", 30)},
	}

	summary := b.Build(segments, nil, nil, "")

	if !strings.Contains(summary.Text, "Alice, Bob, and Carol") {
		t.Fatalf("expected Oxford comma list, got %q", summary.Text)
	}
}

func TestBuildEmptySegments(t *testing.T) {
	b := NewSummaryBuilder()

	summary := b.Build(nil, nil, nil, "")

	if summary == nil {
		t.Fatal("expected summary for empty input")
	}
	if len(summary.Participants) != 0 {
		t.Fatalf("expected no participants, got %v", summary.Participants)
	}
	if !strings.Contains(summary.Text, "did not contain identifiable speakers") {
		t.Fatalf("unexpected empty-input text: %q", summary.Text)
	}
}

func TestKeyPointsOmitsThinSpeakers(t *testing.T) {
	b := NewSummaryBuilder()
	segments := []entities.Segment{
		{Speaker: "Alice", Content: "short"},
		{Speaker: "Bob", Content: "a sufficiently substantial remark about the release schedule"},
	}

	points := b.keyPointsBlock(segments)

	if strings.Contains(points, "Alice") {
		t.Fatalf("speaker with only thin content must be omitted: %q", points)
	}
	if !strings.Contains(points, "Bob") {
		t.Fatalf("expected Bob in key points: %q", points)
	}
}

func TestKeyPointsTruncation(t *testing.T) {
	b := NewSummaryBuilder()
	long := strings.Repeat("x", 120)
	segments := []entities.Segment{
		{Speaker: "Alice", Content: long},
		{Speaker: "Alice", Content: long},
	}

	points := b.keyPointsBlock(segments)

	if !strings.Contains(points, strings.Repeat("x", 80)+"...") {
		t.Fatalf("expected first point truncated at 80: %q", points)
	}
	if !strings.Contains(points, strings.Repeat("x", 60)+"...") {
		t.Fatalf("expected second point truncated at 60: %q", points)
	}
}

func TestOverviewBlockCapsTopics(t *testing.T) {
	b := NewSummaryBuilder()
	segments := []entities.Segment{
		{Speaker: "Alice", Content: "launch is set"},
		{Speaker: "Alice", Content: "release too"},
		{Speaker: "Alice", Content: "deployment next"},
		{Speaker: "Alice", Content: "budget is fine"},
		{Speaker: "Alice", Content: "marketing kicks off"},
		{Speaker: "Alice", Content: "development continues"},
	}

	block := b.OverviewBlock(segments)

	if strings.Contains(block, "development") {
		t.Fatalf("expected at most 5 topics in overview, got %q", block)
	}
	if !strings.Contains(block, "marketing") {
		t.Fatalf("expected fifth topic to survive, got %q", block)
	}
}
