// Package notifier turns booking.created events into notifications for the studio.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"studio/pkg/kafka"
	"studio/pkg/logger"
	"studio/pkg/model"
)

type Notification struct {
	BookingID int64
	Subject   string
	Body      string
	ReplyTo   string
}

// Sink delivers a notification.
type Sink interface {
	Notify(ctx context.Context, n Notification) error
}

// LogSink writes notifications to the structured log.
type LogSink struct {
	log *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(ctx context.Context, n Notification) error {
	s.log.Info("New booking request",
		"booking_id", n.BookingID,
		"subject", n.Subject,
		"reply_to", n.ReplyTo,
		"body", n.Body,
	)
	return nil
}

type Notifier struct {
	sink Sink
	log  *logger.Logger
}

func New(sink Sink, log *logger.Logger) *Notifier {
	return &Notifier{sink: sink, log: log}
}

// Handle is a kafka.MessageHandler. Events of other types are skipped and undecodable
// payloads are reported as permanent failures.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	if msg.EventType() != model.EventBookingCreated {
		n.log.Debug("Skipping event", "event_type", msg.EventType(), "event_id", msg.EventID())
		return nil
	}

	var event model.BookingCreatedEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.Permanent(fmt.Errorf("failed to decode %s event %s: %w", model.EventBookingCreated, msg.EventID(), err))
	}
	if event.BookingID == 0 {
		return kafka.Permanent(fmt.Errorf("%s event %s has no booking id", model.EventBookingCreated, msg.EventID()))
	}

	return n.sink.Notify(ctx, Compose(event))
}

func Compose(e model.BookingCreatedEvent) Notification {
	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\n", e.Name)
	fmt.Fprintf(&body, "Email: %s\n", e.Email)
	fmt.Fprintf(&body, "Phone: %s\n", e.Phone)
	fmt.Fprintf(&body, "Session: %s\n", e.SessionType)
	fmt.Fprintf(&body, "Date: %s\n", e.EventDate)
	fmt.Fprintf(&body, "Received: %s", e.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))

	return Notification{
		BookingID: e.BookingID,
		Subject:   fmt.Sprintf("New %s booking request for %s (#%d)", e.SessionType, e.EventDate, e.BookingID),
		Body:      body.String(),
		ReplyTo:   e.Email,
	}
}
