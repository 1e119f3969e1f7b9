package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "studio/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantFields  int
	}{
		{
			name:        "validation error keeps fields",
			err:         apperrors.Validation("Invalid booking request", map[string]string{"email": "Please enter a valid email"}),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid booking request",
			wantFields:  1,
		},
		{
			name:        "forbidden",
			err:         apperrors.Forbidden("CSRF verification failed."),
			wantStatus:  http.StatusForbidden,
			wantMessage: "CSRF verification failed.",
		},
		{
			name:        "wrapped app error",
			err:         fmt.Errorf("outer: %w", apperrors.NotFound("Company details")),
			wantStatus:  http.StatusNotFound,
			wantMessage: "Company details not found",
		},
		{
			name:        "plain error is hidden",
			err:         errors.New("connection reset by peer"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success {
				t.Error("success should be false")
			}
			if body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
			if len(body.Errors) != tt.wantFields {
				t.Errorf("errors = %v, want %d entries", body.Errors, tt.wantFields)
			}
		})
	}
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"email": "hello@example.com"})

	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Data["email"] != "hello@example.com" {
		t.Errorf("unexpected body: %+v", body)
	}
}
