package events

import (
	"context"
	"fmt"
	"strconv"

	"studio/pkg/kafka"
	"studio/pkg/middleware"
	"studio/pkg/model"
)

// Publisher is the part of kafka.Producer the booking events need.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingEvents turns stored bookings into booking.created messages keyed by booking id,
// so every event for one booking lands on the same partition.
type BookingEvents struct {
	publisher Publisher
	source    string
}

func NewBookingEvents(publisher Publisher, source string) *BookingEvents {
	return &BookingEvents{publisher: publisher, source: source}
}

func (e *BookingEvents) PublishBookingCreated(ctx context.Context, booking *model.Booking) error {
	msg, err := kafka.NewMessage().
		WithKey(strconv.FormatInt(booking.ID, 10)).
		WithJSON(booking.CreatedEvent()).
		WithEventType(model.EventBookingCreated).
		WithHeader(kafka.HeaderSchemaVersion, "1").
		WithSource(e.source).
		WithRequestID(middleware.RequestID(ctx)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build booking event: %w", err)
	}
	return e.publisher.Publish(ctx, msg)
}
