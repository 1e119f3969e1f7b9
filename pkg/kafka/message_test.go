package kafka

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBuilder_Build(t *testing.T) {
	msg, err := NewMessage().
		WithKey("7").
		WithJSON(struct {
			ID int `json:"id"`
		}{ID: 7}).
		WithSource("studio-api").
		WithRequestID("").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "7", msg.Key)
	assert.Equal(t, "studio-api", msg.Header(HeaderSource))
	assert.NotEmpty(t, msg.EventID())
	assert.NotEmpty(t, msg.Header(HeaderTimestamp))
	_, hasRequestID := msg.Headers[HeaderRequestID]
	assert.False(t, hasRequestID, "empty header values are skipped")

	var decoded struct {
		ID int `json:"id"`
	}
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, 7, decoded.ID)
}

func TestMessageBuilder_EncodingError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithJSON(math.Inf(1)).Build()
	assert.Error(t, err)
}

func TestKafkaMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage().WithKey("k").WithJSON("v").WithEventType("booking.created").Build()
	require.NoError(t, err)

	back := fromKafkaMessage(toKafkaMessage(msg))
	assert.Equal(t, msg.Key, back.Key)
	assert.Equal(t, msg.Value, back.Value)
	assert.Equal(t, msg.Headers, back.Headers)
}

func TestRetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}
	assert.Equal(t, 0, msg.RetryCount())

	retried := msg.withHeaders(map[string]string{HeaderRetryCount: "12"})
	assert.Equal(t, 12, retried.RetryCount())
	assert.Empty(t, msg.Headers, "withHeaders must not modify the original")
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{name: "nil", err: nil, want: ErrorTypeUnknown},
		{name: "permanent wrapper", err: Permanent(errors.New("connection refused")), want: ErrorTypePermanent},
		{name: "temporary kafka error", err: kafka.LeaderNotAvailable, want: ErrorTypeTransient},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrorTypeTransient},
		{name: "network message", err: errors.New("dial tcp: Connection Refused"), want: ErrorTypeTransient},
		{name: "unknown", err: errors.New("schema mismatch"), want: ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestShouldRetry(t *testing.T) {
	transient := errors.New("i/o timeout")
	assert.True(t, ShouldRetry(transient, 0, 3))
	assert.False(t, ShouldRetry(transient, 3, 3))
	assert.False(t, ShouldRetry(Permanent(transient), 0, 3))
	assert.False(t, ShouldRetry(nil, 0, 3))
}
