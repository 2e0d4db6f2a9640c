package pipeline

import (
	"regexp"
	"strings"
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// CleanTranscript normalizes raw ASR output before any pattern matching runs
// over it: parenthetical annotations are removed, whitespace runs become a
// single space, and stutter artifacts (a word repeated three or more times,
// or a two-word phrase repeated back to back) collapse to one occurrence.
// The operation is idempotent.
func CleanTranscript(text string) string {
	cleaned := parentheticalRe.ReplaceAllString(text, " ")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = collapseWordRuns(cleaned)
	cleaned = collapsePhraseRuns(cleaned)
	return cleaned
}

// collapseWordRuns reduces a run of 3+ identical consecutive words to one.
// Runs of exactly two are kept, legitimate prose repeats itself that much.
func collapseWordRuns(text string) string {
	words := strings.Fields(text)
	if len(words) < 3 {
		return text
	}
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		j := i + 1
		for j < len(words) && strings.EqualFold(words[j], words[i]) {
			j++
		}
		if j-i >= 3 {
			out = append(out, words[i])
		} else {
			out = append(out, words[i:j]...)
		}
		i = j
	}
	return strings.Join(out, " ")
}

// collapsePhraseRuns reduces a two-word phrase repeated back to back
// ("really good really good really good") to a single occurrence.
func collapsePhraseRuns(text string) string {
	words := strings.Fields(text)
	if len(words) < 4 {
		return text
	}
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if i+3 < len(words) &&
			strings.EqualFold(words[i], words[i+2]) &&
			strings.EqualFold(words[i+1], words[i+3]) {
			j := i + 2
			for j+1 < len(words) &&
				strings.EqualFold(words[i], words[j]) &&
				strings.EqualFold(words[i+1], words[j+1]) {
				j += 2
			}
			out = append(out, words[i], words[i+1])
			i = j
			continue
		}
		out = append(out, words[i])
		i++
	}
	return strings.Join(out, " ")
}
