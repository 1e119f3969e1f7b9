package kafkamiddleware

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"studio/pkg/kafka"
	"studio/pkg/logger"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	m := NewMetrics()

	publish := m.Producer()(func(ctx context.Context, msg kafka.Message) error { return nil })
	failing := m.Producer()(func(ctx context.Context, msg kafka.Message) error { return errors.New("boom") })
	consume := m.Consumer()(func(ctx context.Context, msg kafka.Message) error { return nil })

	_ = publish(context.Background(), kafka.Message{})
	_ = publish(context.Background(), kafka.Message{})
	_ = failing(context.Background(), kafka.Message{})
	_ = consume(context.Background(), kafka.Message{})

	s := m.Snapshot()
	if s.Published != 2 || s.PublishFailed != 1 {
		t.Errorf("publish counters = %d/%d, want 2/1", s.Published, s.PublishFailed)
	}
	if s.Consumed != 1 || s.ConsumeFailed != 0 {
		t.Errorf("consume counters = %d/%d, want 1/0", s.Consumed, s.ConsumeFailed)
	}
}

func TestMetrics_EmptySnapshot(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.AvgPublishDuration != 0 || s.AvgConsumeDuration != 0 {
		t.Errorf("expected zero averages, got %+v", s)
	}
}

func TestLogging_ReportsFailures(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug", Format: logger.JSON, Output: &buf, Service: "test"})

	wantErr := errors.New("handler exploded")
	handler := ConsumerLogging(log)(func(ctx context.Context, msg kafka.Message) error { return wantErr })

	msg := kafka.Message{Topic: "studio.bookings", Headers: map[string]string{kafka.HeaderEventID: "evt-1"}}
	if err := handler(context.Background(), msg); !errors.Is(err, wantErr) {
		t.Fatalf("error not propagated: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Failed to process message", "evt-1", "handler exploded"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestProducerLogging_PassesThrough(t *testing.T) {
	called := false
	publish := ProducerLogging(logger.Discard())(func(ctx context.Context, msg kafka.Message) error {
		called = true
		return nil
	})
	if err := publish(context.Background(), kafka.Message{Headers: map[string]string{}}); err != nil || !called {
		t.Fatalf("expected pass-through, err=%v called=%v", err, called)
	}
}
