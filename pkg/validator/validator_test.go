package validator

import "testing"

type sampleRequest struct {
	Transcript string `validate:"required"`
	Status     string `validate:"omitempty,oneof=pending in-progress completed"`
}

func TestValidateTags(t *testing.T) {
	rv := New()

	if err := rv.Validate(&sampleRequest{Transcript: "hello", Status: "pending"}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	if err := rv.Validate(&sampleRequest{}); err == nil {
		t.Fatal("missing required field must fail validation")
	}

	if err := rv.Validate(&sampleRequest{Transcript: "hello", Status: "archived"}); err == nil {
		t.Fatal("unknown status must fail validation")
	}
}
