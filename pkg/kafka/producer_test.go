package kafka

import (
	"context"
	"errors"
	"testing"

	"studio/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("42").
		WithJSON(map[string]any{"booking_id": 42}).
		WithEventType("booking.created").
		Build()
	require.NoError(t, err)
	return msg
}

func TestPublish_WritesMessage(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, nil, "studio.bookings", logger.Discard())

	require.NoError(t, p.Publish(context.Background(), testMessage(t)))

	written := w.messages()
	require.Len(t, written, 1)
	assert.Equal(t, "42", string(written[0].Key))
	assert.JSONEq(t, `{"booking_id":42}`, string(written[0].Value))
	assert.Equal(t, "booking.created", headerValue(written[0], HeaderEventType))
	assert.NotEmpty(t, headerValue(written[0], HeaderEventID))
}

func TestPublish_RejectsInvalidMessages(t *testing.T) {
	p := newProducer(&fakeWriter{}, nil, "t", logger.Discard())

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)
}

func TestPublish_MiddlewareOrder(t *testing.T) {
	p := newProducer(&fakeWriter{}, nil, "t", logger.Discard())

	var order []string
	mark := func(name string) ProducerMiddleware {
		return func(next PublishFunc) PublishFunc {
			return func(ctx context.Context, msg Message) error {
				order = append(order, name)
				return next(ctx, msg)
			}
		}
	}
	p.Use(mark("outer"))
	p.Use(mark("inner"))

	require.NoError(t, p.Publish(context.Background(), testMessage(t)))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestPublish_FailureGoesToDLQ(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	dlq := &fakeWriter{}
	p := newProducer(w, dlq, "studio.bookings", logger.Discard())

	err := p.Publish(context.Background(), testMessage(t))
	require.Error(t, err)

	parked := dlq.messages()
	require.Len(t, parked, 1)
	assert.Equal(t, "studio.bookings", headerValue(parked[0], HeaderOriginalTopic))
	assert.Equal(t, "leader not available", headerValue(parked[0], HeaderDLQError))
}

func TestPublish_AfterClose(t *testing.T) {
	w := &fakeWriter{}
	dlq := &fakeWriter{}
	p := newProducer(w, dlq, "t", logger.Discard())

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
	assert.True(t, dlq.closed)
	assert.ErrorIs(t, p.Publish(context.Background(), testMessage(t)), ErrProducerClosed)
}
