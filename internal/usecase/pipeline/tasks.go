package pipeline

import (
	"regexp"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
)

// Candidate task text must fall strictly inside these bounds.
const (
	minTaskTextLen = 10
	maxTaskTextLen = 200
)

const minTaskSentenceLen = 5

// Sequence hands out task ids. The default implementation is a process-wide
// atomic counter; persistence swaps in the database sequence.
type Sequence interface {
	Next() int64
}

type atomicSequence struct {
	counter int64
}

func (s *atomicSequence) Next() int64 {
	return atomic.AddInt64(&s.counter, 1)
}

// NewAtomicSequence returns an in-memory monotonically increasing Sequence
func NewAtomicSequence() Sequence {
	return &atomicSequence{}
}

// taskRule pairs a task-indicator pattern with a name for logging and tests.
// Group 1 of each pattern captures the candidate task text.
type taskRule struct {
	name    string
	pattern *regexp.Regexp
}

// Task indicator rules, applied in order and non-exclusively: every match of
// every rule on a sentence produces its own candidate.
var taskRules = []taskRule{
	{"modal", regexp.MustCompile(`(?i)\b(?:will|should|must|needs? to|have to|has to|going to)\s+(.+)$`)},
	{"label", regexp.MustCompile(`(?i)\b(?:action items?|todos?|to-dos?|tasks?)\s*[:\-]?\s+(.+)$`)},
	{"followup", regexp.MustCompile(`(?i)\b(follow(?:\s|-)up\s+(?:on|with|about)\s+.+)$`)},
	{"imperative", regexp.MustCompile(`(?i)\b((?:review|prepare|schedule|send|complete|finish|update|create|check|verify|submit|draft|share|contact|call|email)\s+.+)$`)},
	{"deadline", regexp.MustCompile(`(?i)((?:\w+[ \t]+){1,8}?(?:by|before|due)\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|tomorrow|today|next week|this week|end of (?:day|week|month)))\b`)},
}

// Assignee rules, applied in order against the full sentence. First validated
// capture wins.
var assigneeRules = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:for|with|to|by|assigned to|ask)\s+([A-Z][a-z]+)\b`),
	regexp.MustCompile(`\b([A-Z][a-z]+)\s+(?:will|should|must|needs to|has to)\b`),
	regexp.MustCompile(`\b([A-Z][a-z]+)\s+(?:is|was)\s+(?:responsible|assigned)\b`),
	regexp.MustCompile(`\b([A-Z][a-z]+)\b`),
}

// assigneeStoplist rejects captures that match the name shape but are
// calendar words, relative-time words, or task vocabulary.
var assigneeStoplist = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {},
	"june": {}, "july": {}, "august": {}, "september": {}, "october": {},
	"november": {}, "december": {},
	"today": {}, "tomorrow": {}, "yesterday": {}, "next": {}, "last": {},
	"week": {}, "month": {}, "year": {}, "soon": {}, "later": {},
	"action": {}, "item": {}, "task": {}, "todo": {}, "deadline": {},
	"meeting": {}, "team": {}, "project": {}, "update": {}, "budget": {},
	"this": {}, "that": {}, "the": {}, "it": {}, "we": {}, "they": {},
	"he": {}, "she": {}, "i": {}, "you": {}, "please": {}, "also": {},
	"urgent": {}, "important": {}, "priority": {},
}

// Deadline rules, first match wins.
var deadlineRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:by|before|due|deadline[:\s]+)\s*(monday|tuesday|wednesday|thursday|friday|saturday|sunday|tomorrow|today|next week|this week|end of (?:day|week|month))\b`),
	regexp.MustCompile(`(?i)\b(?:by|before|due|deadline[:\s]+)\s*((?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?)\b`),
	regexp.MustCompile(`(?i)\b(?:by|before|due|deadline[:\s]+)\s*(\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?)\b`),
	regexp.MustCompile(`(?i)\b((?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?)\b`),
}

var (
	highPriorityKeywords   = []string{"urgent", "asap", "immediately", "critical", "deadline", "emergency"}
	mediumPriorityKeywords = []string{"important", "soon", "priority", "quickly"}
)

// TaskExtractor finds action items in transcript text with pure pattern
// matching. It performs no model calls and is expected to never fail.
type TaskExtractor struct {
	seq Sequence
}

// NewTaskExtractor builds a TaskExtractor. A nil sequence gets an in-memory
// atomic counter.
func NewTaskExtractor(seq Sequence) *TaskExtractor {
	if seq == nil {
		seq = NewAtomicSequence()
	}
	return &TaskExtractor{seq: seq}
}

// ExtractTasks scans text sentence by sentence and returns deduplicated task
// items with freshly assigned ids.
func (tx *TaskExtractor) ExtractTasks(text string) []*entities.TaskItem {
	var candidates []*entities.TaskItem
	for _, sentence := range splitSentences(text) {
		if len(sentence) <= minTaskSentenceLen {
			continue
		}
		candidates = append(candidates, tx.extractFromSentence(sentence)...)
	}
	return tx.dedupe(candidates)
}

// ExtractFromSegments runs extraction per segment; a task with no detected
// assignee inherits the segment's speaker. Deduplication spans all segments.
func (tx *TaskExtractor) ExtractFromSegments(segments []entities.Segment) []*entities.TaskItem {
	var candidates []*entities.TaskItem
	for _, seg := range segments {
		for _, sentence := range splitSentences(seg.Content) {
			if len(sentence) <= minTaskSentenceLen {
				continue
			}
			found := tx.extractFromSentence(sentence)
			if seg.Speaker != "" {
				for _, t := range found {
					if t.AssignedTo == nil {
						speaker := seg.Speaker
						t.AssignedTo = &speaker
					}
				}
			}
			candidates = append(candidates, found...)
		}
	}
	return tx.dedupe(candidates)
}

func (tx *TaskExtractor) extractFromSentence(sentence string) []*entities.TaskItem {
	var tasks []*entities.TaskItem
	for _, rule := range taskRules {
		for _, m := range rule.pattern.FindAllStringSubmatch(sentence, -1) {
			text := strings.TrimSpace(strings.TrimRight(m[1], ".!?"))
			if len(text) <= minTaskTextLen || len(text) >= maxTaskTextLen {
				continue
			}
			tasks = append(tasks, &entities.TaskItem{
				ID:            tx.seq.Next(),
				Text:          text,
				AssignedTo:    extractAssignee(sentence),
				Deadline:      extractDeadline(sentence),
				Priority:      detectPriority(text),
				ExtractedFrom: sentence,
				Status:        entities.TaskStatusPending,
				CreatedAt:     time.Now(),
			})
		}
	}
	return tasks
}

func extractAssignee(sentence string) *string {
	for _, re := range assigneeRules {
		for _, m := range re.FindAllStringSubmatch(sentence, -1) {
			name := m[1]
			if !isValidAssignee(name) {
				continue
			}
			return &name
		}
	}
	return nil
}

func isValidAssignee(name string) bool {
	if name == "" {
		return false
	}
	if _, stopped := assigneeStoplist[strings.ToLower(name)]; stopped {
		return false
	}
	return unicode.IsUpper([]rune(name)[0])
}

func extractDeadline(sentence string) *string {
	for _, re := range deadlineRules {
		if m := re.FindStringSubmatch(sentence); m != nil {
			deadline := m[1]
			return &deadline
		}
	}
	return nil
}

// detectPriority classifies by case-insensitive substring containment over
// the task text, not tokenized words.
func detectPriority(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range highPriorityKeywords {
		if strings.Contains(lower, kw) {
			return entities.TaskPriorityHigh
		}
	}
	for _, kw := range mediumPriorityKeywords {
		if strings.Contains(lower, kw) {
			return entities.TaskPriorityMedium
		}
	}
	return entities.TaskPriorityLow
}

// dedupe keeps the first occurrence for each case-insensitive trimmed text
// value; later duplicates are dropped even when assignee or deadline differ.
func (tx *TaskExtractor) dedupe(tasks []*entities.TaskItem) []*entities.TaskItem {
	seen := make(map[string]struct{}, len(tasks))
	out := make([]*entities.TaskItem, 0, len(tasks))
	for _, t := range tasks {
		key := strings.ToLower(strings.TrimSpace(t.Text))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
