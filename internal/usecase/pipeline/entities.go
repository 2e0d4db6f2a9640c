package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
	"github.com/meetingmind-team/meetingmind/pkg/ai"
)

const (
	nerScoreThreshold = 0.6
	// Adjacent same-label tokens merge when the gap between them is at
	// most this many characters.
	tokenMergeGap = 2

	personFallbackConfidence = 0.8
	orgFallbackConfidence    = 0.7
)

// EntityExtractor groups named entities out of transcript text. The primary
// path consumes the token-classification capability; a rule-based fallback
// covers capability failure and empty PERSON results.
type EntityExtractor struct {
	classifier TokenClassifier
	logger     *zap.Logger
}

func NewEntityExtractor(classifier TokenClassifier, logger *zap.Logger) *EntityExtractor {
	return &EntityExtractor{
		classifier: classifier,
		logger:     logger,
	}
}

// Extract returns entities grouped by label. It never fails: classifier
// errors degrade to the rule-based fallback, and a total failure yields
// PERSON/ORG from patterns with LOC/MISC empty.
func (x *EntityExtractor) Extract(ctx context.Context, text string) entities.EntityGroups {
	groups := entities.EmptyEntityGroups()
	if strings.TrimSpace(text) == "" {
		return groups
	}

	spans, err := x.classify(ctx, text)
	if err != nil {
		if x.logger != nil {
			x.logger.Warn("⚠️ Token classification unavailable, using rule-based extraction", zap.Error(err))
		}
		persons, orgs := x.fallbackExtract(text)
		groups.Person = persons
		groups.Org = orgs
		return groups
	}

	for _, e := range mergeTokenSpans(spans) {
		if e.Label == entities.EntityLabelPerson && !IsValidPersonName(e.Text) {
			continue
		}
		groups.Add(e)
	}

	// NER that finds no people at all usually means the model choked on
	// transcript formatting; patterns recover the obvious names.
	if len(groups.Person) == 0 {
		persons, _ := x.fallbackExtract(text)
		groups.Person = persons
	}

	return groups
}

func (x *EntityExtractor) classify(ctx context.Context, text string) ([]ai.TokenSpan, error) {
	if x.classifier == nil {
		return nil, fmt.Errorf("no token classifier configured")
	}
	return x.classifier.Classify(ctx, text)
}

// mergeTokenSpans turns raw per-token classifier output into whole entities:
// low-score tokens are dropped, B-/I- prefixes and token-piece markers are
// stripped, and consecutive same-label tokens within tokenMergeGap characters
// are merged. Merged confidence is the max over the merged tokens.
func mergeTokenSpans(spans []ai.TokenSpan) []entities.Entity {
	merged := make([]entities.Entity, 0, len(spans))
	for _, span := range spans {
		if span.Score <= nerScoreThreshold {
			continue
		}

		label, ok := normalizeLabel(span.Entity)
		if !ok {
			continue
		}

		word := span.Word
		subword := strings.HasPrefix(word, "##")
		word = strings.TrimPrefix(word, "##")
		if word == "" {
			continue
		}

		if n := len(merged); n > 0 {
			prev := &merged[n-1]
			if prev.Label == label && span.Start-prev.End <= tokenMergeGap {
				if span.Start == prev.End || subword {
					prev.Text += word
				} else {
					prev.Text += " " + word
				}
				prev.End = span.End
				if span.Score > prev.Confidence {
					prev.Confidence = span.Score
				}
				continue
			}
		}

		merged = append(merged, entities.Entity{
			Text:       word,
			Label:      label,
			Confidence: span.Score,
			Start:      span.Start,
			End:        span.End,
		})
	}
	return merged
}

// normalizeLabel strips the B-/I- prefix and maps the model's label
// vocabulary onto ours. Unknown labels are dropped.
func normalizeLabel(raw string) (entities.EntityLabel, bool) {
	raw = strings.TrimPrefix(raw, "B-")
	raw = strings.TrimPrefix(raw, "I-")
	switch strings.ToUpper(raw) {
	case "PER", "PERSON":
		return entities.EntityLabelPerson, true
	case "ORG", "ORGANIZATION":
		return entities.EntityLabelOrg, true
	case "LOC", "LOCATION", "GPE":
		return entities.EntityLabelLoc, true
	case "MISC":
		return entities.EntityLabelMisc, true
	}
	return "", false
}

// personStoplist rejects capitalized words that match the person-name shape
// but are conversational filler, calendar vocabulary, or meeting jargon.
var personStoplist = map[string]struct{}{
	"good": {}, "thanks": {}, "thank": {}, "yes": {}, "no": {}, "okay": {},
	"ok": {}, "well": {}, "right": {}, "sure": {}, "hello": {}, "hi": {},
	"meeting": {}, "team": {}, "project": {}, "update": {}, "agenda": {},
	"action": {}, "item": {}, "items": {}, "task": {}, "tasks": {},
	"summary": {}, "notes": {}, "discussion": {}, "budget": {}, "report": {},
	"today": {}, "tomorrow": {}, "yesterday": {}, "next": {}, "last": {},
	"week": {}, "month": {}, "year": {},
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {},
	"june": {}, "july": {}, "august": {}, "september": {}, "october": {},
	"november": {}, "december": {},
}

// IsValidPersonName reports whether text is plausible as a person name:
// at least two characters, not stoplisted, starts uppercase, and contains
// only letters and spaces.
func IsValidPersonName(text string) bool {
	name := strings.TrimSpace(text)
	if len(name) < 2 {
		return false
	}
	if _, stopped := personStoplist[strings.ToLower(name)]; stopped {
		return false
	}

	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

// Rule-based fallback patterns.
var (
	personBeforeVerbRe = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)?)\s+(?:said|mentioned|stated|discussed|noted)\b`)
	personBeforeColonRe = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)?)\s*:`)
	personFullNameRe    = regexp.MustCompile(`\b([A-Z][a-z]+ [A-Z][a-z]+)\b`)

	orgSuffixRe      = regexp.MustCompile(`\b((?:[A-Z][A-Za-z]+ )+(?:Inc|Corp|LLC|Ltd|Company|Technologies|Solutions|Systems))\b`)
	orgPrepositionRe = regexp.MustCompile(`\b(?:at|with|for)\s+([A-Z][A-Za-z]+(?: [A-Z][A-Za-z]+)*)\b`)
)

// fallbackExtract runs the pure pattern path: person-shaped captures around
// speech verbs, speaker colons, and two-word capitalized names, plus
// organizations by corporate suffix or preposition context.
func (x *EntityExtractor) fallbackExtract(text string) (persons, orgs []entities.Entity) {
	persons = []entities.Entity{}
	orgs = []entities.Entity{}

	seenPersons := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{personBeforeVerbRe, personBeforeColonRe, personFullNameRe} {
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			name := text[idx[2]:idx[3]]
			if !IsValidPersonName(name) {
				continue
			}
			key := strings.ToLower(name)
			if _, ok := seenPersons[key]; ok {
				continue
			}
			seenPersons[key] = struct{}{}
			persons = append(persons, entities.Entity{
				Text:       name,
				Label:      entities.EntityLabelPerson,
				Confidence: personFallbackConfidence,
				Start:      idx[2],
				End:        idx[3],
			})
		}
	}

	seenOrgs := make(map[string]struct{})
	addOrg := func(name string, start, end int) {
		key := strings.ToLower(name)
		if _, ok := seenOrgs[key]; ok {
			return
		}
		seenOrgs[key] = struct{}{}
		orgs = append(orgs, entities.Entity{
			Text:       name,
			Label:      entities.EntityLabelOrg,
			Confidence: orgFallbackConfidence,
			Start:      start,
			End:        end,
		})
	}

	for _, idx := range orgSuffixRe.FindAllStringSubmatchIndex(text, -1) {
		addOrg(text[idx[2]:idx[3]], idx[2], idx[3])
	}
	// The preposition rule over-captures person names ("with Carol"), so
	// anything that validates as a person is left to the PERSON group.
	for _, idx := range orgPrepositionRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[idx[2]:idx[3]]
		if IsValidPersonName(name) {
			continue
		}
		addOrg(name, idx[2], idx[3])
	}

	return persons, orgs
}
