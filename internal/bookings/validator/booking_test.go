package validator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"studio/pkg/logger"
	"studio/pkg/model"
)

func newTestValidator() *BookingValidator {
	v := NewBookingValidator(logger.Discard())
	v.now = func() time.Time { return time.Date(2026, 6, 15, 18, 0, 0, 0, time.UTC) }
	return v
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		Name:         "Ada Lovelace",
		Email:        "ada@example.com",
		Phone:        "+12024561111",
		SessionType:  model.SessionWedding,
		EventDate:    "2026-07-01",
		EventDetails: "Ceremony at noon, reception after.",
	}
}

func TestBookingValidator_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *model.BookingRequest)
		wantField string
		wantMsg   string
	}{
		{name: "valid request", mutate: func(r *model.BookingRequest) {}},
		{name: "today is allowed", mutate: func(r *model.BookingRequest) { r.EventDate = "2026-06-15" }},
		{name: "missing name", mutate: func(r *model.BookingRequest) { r.Name = "" }, wantField: model.WireName, wantMsg: model.MsgNameRequired},
		{name: "name too long", mutate: func(r *model.BookingRequest) { r.Name = strings.Repeat("a", 101) }, wantField: model.WireName, wantMsg: model.MsgNameTooLong},
		{name: "bad email", mutate: func(r *model.BookingRequest) { r.Email = "not-an-email" }, wantField: model.WireEmail, wantMsg: model.MsgEmailInvalid},
		{name: "missing phone", mutate: func(r *model.BookingRequest) { r.Phone = "" }, wantField: model.WirePhone, wantMsg: model.MsgPhoneRequired},
		{name: "unknown session type", mutate: func(r *model.BookingRequest) { r.SessionType = "birthday" }, wantField: model.WireSessionType, wantMsg: model.MsgSessionTypeInvalid},
		{name: "malformed date", mutate: func(r *model.BookingRequest) { r.EventDate = "07/01/2026" }, wantField: model.WireEventDate, wantMsg: model.MsgDateInvalid},
		{name: "past date", mutate: func(r *model.BookingRequest) { r.EventDate = "2026-06-14" }, wantField: model.WireEventDate, wantMsg: MsgDateInPast},
		{name: "missing details", mutate: func(r *model.BookingRequest) { r.EventDetails = "" }, wantField: model.WireEventDetails, wantMsg: model.MsgMessageRequired},
		{name: "details at limit", mutate: func(r *model.BookingRequest) { r.EventDetails = strings.Repeat("é", MaxEventDetailsLength) }},
		{name: "details too long", mutate: func(r *model.BookingRequest) { r.EventDetails = strings.Repeat("x", MaxEventDetailsLength+1) }, wantField: model.WireEventDetails, wantMsg: model.MsgMessageTooLong},
		{name: "past date reported with other errors", mutate: func(r *model.BookingRequest) { r.Name = ""; r.EventDate = "2026-06-14" }, wantField: model.WireEventDate, wantMsg: MsgDateInPast},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if got := verrs.Fields()[tt.wantField]; got != tt.wantMsg {
				t.Errorf("message for %s = %q, want %q", tt.wantField, got, tt.wantMsg)
			}
		})
	}
}

func TestValidationErrors_FieldsKeepsFirstMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "first"},
		{Field: "email", Message: "second"},
	}
	if got := errs.Fields()["email"]; got != "first" {
		t.Errorf("Fields()[email] = %q, want first", got)
	}
}
