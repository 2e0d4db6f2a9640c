package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/meetingmind-team/meetingmind/internal/domain/entities"
	"github.com/meetingmind-team/meetingmind/pkg/ai"
)

type fakeClassifier struct {
	spans []ai.TokenSpan
	err   error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) ([]ai.TokenSpan, error) {
	return f.spans, f.err
}

func TestMergeTokenSpansSubwords(t *testing.T) {
	spans := []ai.TokenSpan{
		{Entity: "B-PER", Word: "Jo", Score: 0.95, Start: 0, End: 2},
		{Entity: "I-PER", Word: "hn", Score: 0.91, Start: 2, End: 4},
	}

	merged := mergeTokenSpans(spans)

	if len(merged) != 1 {
		t.Fatalf("expected 1 merged entity, got %d: %+v", len(merged), merged)
	}
	e := merged[0]
	if e.Text != "John" {
		t.Fatalf("merged text = %q, want John", e.Text)
	}
	if e.Label != entities.EntityLabelPerson {
		t.Fatalf("merged label = %s, want PERSON", e.Label)
	}
	if e.Confidence != 0.95 {
		t.Fatalf("merged confidence = %v, want max 0.95", e.Confidence)
	}
}

func TestMergeTokenSpansAdjacentWords(t *testing.T) {
	spans := []ai.TokenSpan{
		{Entity: "B-PER", Word: "John", Score: 0.9, Start: 0, End: 4},
		{Entity: "I-PER", Word: "Smith", Score: 0.8, Start: 5, End: 10},
	}

	merged := mergeTokenSpans(spans)

	if len(merged) != 1 || merged[0].Text != "John Smith" {
		t.Fatalf("expected single entity John Smith, got %+v", merged)
	}
}

func TestMergeTokenSpansThreshold(t *testing.T) {
	spans := []ai.TokenSpan{
		{Entity: "B-ORG", Word: "Acme", Score: 0.5, Start: 0, End: 4},
		{Entity: "B-LOC", Word: "Berlin", Score: 0.99, Start: 10, End: 16},
	}

	merged := mergeTokenSpans(spans)

	if len(merged) != 1 || merged[0].Label != entities.EntityLabelLoc {
		t.Fatalf("expected only the LOC entity above threshold, got %+v", merged)
	}
}

func TestMergeTokenSpansDistantTokensStaySeparate(t *testing.T) {
	spans := []ai.TokenSpan{
		{Entity: "B-PER", Word: "Alice", Score: 0.9, Start: 0, End: 5},
		{Entity: "B-PER", Word: "Bob", Score: 0.9, Start: 20, End: 23},
	}

	merged := mergeTokenSpans(spans)

	if len(merged) != 2 {
		t.Fatalf("expected 2 entities, got %+v", merged)
	}
}

func TestIsValidPersonName(t *testing.T) {
	valid := []string{"Alice", "John Smith", "Bo"}
	for _, name := range valid {
		if !IsValidPersonName(name) {
			t.Errorf("expected %q to validate", name)
		}
	}

	invalid := []string{"", "A", "alice", "Thanks", "Monday", "January", "R2D2", "O'Brien"}
	for _, name := range invalid {
		if IsValidPersonName(name) {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

func TestExtractFallbackOnClassifierFailure(t *testing.T) {
	x := NewEntityExtractor(&fakeClassifier{err: fmt.Errorf("connection refused")}, nil)

	groups := x.Extract(context.Background(), "Alice said the budget looks fine. We met with Acme Technologies last week.")

	if len(groups.Person) == 0 {
		t.Fatalf("expected fallback PERSON entities, got none")
	}
	if groups.Person[0].Text != "Alice" {
		t.Fatalf("expected Alice first, got %+v", groups.Person)
	}
	if groups.Person[0].Confidence != 0.8 {
		t.Fatalf("fallback person confidence = %v, want 0.8", groups.Person[0].Confidence)
	}
	foundOrg := false
	for _, org := range groups.Org {
		if org.Text == "Acme Technologies" {
			foundOrg = true
			if org.Confidence != 0.7 {
				t.Fatalf("fallback org confidence = %v, want 0.7", org.Confidence)
			}
		}
	}
	if !foundOrg {
		t.Fatalf("expected Acme Technologies in ORG group, got %+v", groups.Org)
	}
	if len(groups.Loc) != 0 || len(groups.Misc) != 0 {
		t.Fatalf("LOC/MISC must stay empty on capability failure")
	}
}

func TestExtractPersonFallbackWhenPrimaryFindsNone(t *testing.T) {
	spans := []ai.TokenSpan{
		{Entity: "B-ORG", Word: "Acme", Score: 0.9, Start: 0, End: 4},
	}
	x := NewEntityExtractor(&fakeClassifier{spans: spans}, nil)

	groups := x.Extract(context.Background(), "Acme is expanding. Carol mentioned the new hiring plan.")

	if len(groups.Org) != 1 {
		t.Fatalf("expected primary ORG to survive, got %+v", groups.Org)
	}
	if len(groups.Person) == 0 || groups.Person[0].Text != "Carol" {
		t.Fatalf("expected fallback to recover Carol, got %+v", groups.Person)
	}
}

func TestExtractRejectsInvalidPersonFromPrimary(t *testing.T) {
	spans := []ai.TokenSpan{
		{Entity: "B-PER", Word: "Thanks", Score: 0.95, Start: 0, End: 6},
		{Entity: "B-PER", Word: "Alice", Score: 0.95, Start: 10, End: 15},
	}
	x := NewEntityExtractor(&fakeClassifier{spans: spans}, nil)

	groups := x.Extract(context.Background(), "Thanks to Alice for the update.")

	if len(groups.Person) != 1 || groups.Person[0].Text != "Alice" {
		t.Fatalf("expected only Alice to survive validation, got %+v", groups.Person)
	}
}

func TestExtractEmptyText(t *testing.T) {
	x := NewEntityExtractor(&fakeClassifier{}, nil)
	groups := x.Extract(context.Background(), "   ")
	if groups.Total() != 0 {
		t.Fatalf("expected empty groups for blank input, got %+v", groups)
	}
}
