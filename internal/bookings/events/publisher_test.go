package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"studio/pkg/kafka"
	"studio/pkg/middleware"
	"studio/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	msgs []kafka.Message
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	p.msgs = append(p.msgs, msg)
	return p.err
}

func TestPublishBookingCreated(t *testing.T) {
	pub := &recordingPublisher{}
	events := NewBookingEvents(pub, "studio-api")

	booking := &model.Booking{
		ID:          31,
		Name:        "Ada",
		Email:       "ada@example.com",
		SessionType: model.SessionEvent,
		EventDate:   "2026-09-01",
		CreatedAt:   time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")

	require.NoError(t, events.PublishBookingCreated(ctx, booking))
	require.Len(t, pub.msgs, 1)

	msg := pub.msgs[0]
	assert.Equal(t, "31", msg.Key)
	assert.Equal(t, model.EventBookingCreated, msg.EventType())
	assert.Equal(t, "studio-api", msg.Header(kafka.HeaderSource))
	assert.Equal(t, "req-123", msg.Header(kafka.HeaderRequestID))

	var event model.BookingCreatedEvent
	require.NoError(t, msg.DecodeValue(&event))
	assert.Equal(t, booking.CreatedEvent(), event)
}

func TestPublishBookingCreated_PropagatesError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	err := NewBookingEvents(pub, "studio-api").PublishBookingCreated(context.Background(), &model.Booking{ID: 1})
	assert.Error(t, err)
}
