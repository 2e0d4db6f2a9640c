package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	apperrors "github.com/meetingmind-team/meetingmind/errors"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleErrorAppError(t *testing.T) {
	c, rec := newTestContext(t)

	err := HandleError(nil, c, apperrors.ErrMeetingNotFound("abc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "MEETING_NOT_FOUND" {
		t.Errorf("code = %v", body["code"])
	}
}

func TestHandleErrorWrapsPlainErrorAsInternal(t *testing.T) {
	c, rec := newTestContext(t)

	if err := HandleError(nil, c, fmt.Errorf("unexpected boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["code"] != "INTERNAL" {
		t.Errorf("code = %v", body["code"])
	}
	if body["info"] != "unexpected boom" {
		t.Errorf("info = %v", body["info"])
	}
}

func TestHandleErrorUnwrapsWrappedAppError(t *testing.T) {
	c, rec := newTestContext(t)

	wrapped := fmt.Errorf("use case failed: %w", apperrors.ErrInvalidTaskStatus("done"))
	if err := HandleError(nil, c, wrapped); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
