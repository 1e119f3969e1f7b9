package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "studio/pkg/errors"
	"studio/pkg/logger"
	"studio/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFunc func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	return m.createFunc(ctx, req)
}

func serve(h *BookingHandler, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	h.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodPost, PathCreate, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) model.BookingAPIResponse {
	t.Helper()
	var resp model.BookingAPIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestCreate_Success(t *testing.T) {
	var received *model.BookingRequest
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
			received = req
			return &model.Booking{
				ID:          12,
				Name:        req.Name,
				Email:       req.Email,
				SessionType: req.SessionType,
				EventDate:   req.EventDate,
				Status:      model.StatusPending,
				CreatedAt:   time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
			}, nil
		},
	}
	h := NewBookingHandler(svc, logger.Discard())

	w := serve(h, `{"name":"Ada","email":"ada@example.com","phone":"+12024561111","session_type":"event","event_date":"2026-09-01","event_details":"Launch party"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if !resp.Success || resp.Data == nil || resp.Data.ID != 12 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data.CreatedAt != "2026-05-01T09:30:00Z" {
		t.Errorf("created_at = %q", resp.Data.CreatedAt)
	}
	if received.EventDetails != "Launch party" {
		t.Errorf("event_details not decoded: %+v", received)
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
			t.Error("service must not be called")
			return nil, nil
		},
	}
	w := serve(NewBookingHandler(svc, logger.Discard()), `{"name":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if resp := decode(t, w); resp.Success || resp.Message != "Invalid request body" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
			return nil, apperrors.Validation("Invalid booking request", map[string]string{
				model.WireEventDate: model.MsgDateRequired,
			})
		},
	}
	w := serve(NewBookingHandler(svc, logger.Discard()), `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	resp := decode(t, w)
	if resp.Errors[model.WireEventDate] != model.MsgDateRequired {
		t.Errorf("errors = %v", resp.Errors)
	}
}
