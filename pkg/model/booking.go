package model

import (
	"time"
)

const (
	SessionWedding    = "wedding"
	SessionGraduation = "graduation"
	SessionEvent      = "event"
	SessionOther      = "other"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	// EventDateLayout is the calendar-date format of event_date on the wire.
	EventDateLayout = "2006-01-02"
)

// SessionTypes is the fixed set of photography engagements a booking can request.
var SessionTypes = []string{SessionWedding, SessionGraduation, SessionEvent, SessionOther}

func IsSessionType(s string) bool {
	for _, st := range SessionTypes {
		if st == s {
			return true
		}
	}
	return false
}

// BookingRequest is the body of POST /api/bookings/create/.
type BookingRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Phone        string `json:"phone" validate:"required"`
	SessionType  string `json:"session_type" validate:"required,session_type"`
	EventDate    string `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventDetails string `json:"event_details" validate:"required"`
}

// Booking is the stored booking record.
type Booking struct {
	ID           int64     `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	SessionType  string    `json:"session_type" bson:"session_type"`
	EventDate    string    `json:"event_date" bson:"event_date"`
	EventDetails string    `json:"event_details" bson:"event_details"`
	Status       string    `json:"status" bson:"status"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func NewBooking(req *BookingRequest) *Booking {
	return &Booking{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		SessionType:  req.SessionType,
		EventDate:    req.EventDate,
		EventDetails: req.EventDetails,
		Status:       StatusPending,
	}
}

// BookingResponse is the data member of a successful booking response.
type BookingResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	SessionType string `json:"session_type"`
	EventDate   string `json:"event_date"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

func (b *Booking) Response() BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		SessionType: b.SessionType,
		EventDate:   b.EventDate,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// BookingAPIResponse is the envelope returned by the booking endpoint, on success and failure.
type BookingAPIResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *BookingResponse  `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// EventBookingCreated is the event-type header of BookingCreatedEvent messages.
const EventBookingCreated = "booking.created"

// BookingCreatedEvent is published after a booking is stored.
type BookingCreatedEvent struct {
	BookingID   int64     `json:"booking_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	SessionType string    `json:"session_type"`
	EventDate   string    `json:"event_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (b *Booking) CreatedEvent() BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:   b.ID,
		Name:        b.Name,
		Email:       b.Email,
		Phone:       b.Phone,
		SessionType: b.SessionType,
		EventDate:   b.EventDate,
		CreatedAt:   b.CreatedAt,
	}
}
