package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"studio/internal/notifier"
	"studio/pkg/config"
	"studio/pkg/kafka"
	kafkaconfig "studio/pkg/kafka/config"
	kafkamiddleware "studio/pkg/kafka/middleware"
)

const ServiceName = "studio-notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting booking notifier", "topic", cfg.BookingEventsTopic)

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	handler := notifier.New(notifier.NewLogSink(cfg.Log), cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.BookingEventsTopic, handler.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	metrics := kafkamiddleware.NewMetrics()
	consumer.Use(kafkamiddleware.ConsumerLogging(cfg.Log))
	consumer.Use(metrics.Consumer())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	metrics.Log(cfg.Log)
	cfg.Log.Info("Notifier stopped")
}
