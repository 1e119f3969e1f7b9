package main

import (
	"studio/internal/bookings/events"
	bookinghandler "studio/internal/bookings/handler"
	bookingrepo "studio/internal/bookings/repository"
	bookingservice "studio/internal/bookings/service"
	"studio/internal/bookings/validator"
	contenthandler "studio/internal/content/handler"
	contentrepo "studio/internal/content/repository"
	contentservice "studio/internal/content/service"
	"studio/pkg/app"
	"studio/pkg/config"
	"studio/pkg/kafka"
	kafkaconfig "studio/pkg/kafka/config"
	kafkamiddleware "studio/pkg/kafka/middleware"
)

const ServiceName = "studio-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting studio API")
	serverApp := app.NewApplication(cfg)

	publisher := initPublisher(cfg, serverApp)
	bookingService := initBookingService(cfg, publisher)
	contentService := contentservice.NewContentService(contentrepo.NewMongoContentRepository(cfg), cfg)

	serverApp.SetApp(
		cfg.Client.Mongo,
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		contenthandler.NewContentHandler(contentService, serverApp.CSRF(), cfg.Log),
	)
	serverApp.OnShutdown("mongo", func() error {
		cfg.GracefulShutdown()
		return nil
	})
	serverApp.Run()
}

func initBookingService(cfg *config.Config, publisher bookingservice.EventPublisher) bookingservice.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

// initPublisher returns nil when Kafka is disabled; bookings are then only stored.
func initPublisher(cfg *config.Config, serverApp *app.Application) bookingservice.EventPublisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return nil
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	metrics := kafkamiddleware.NewMetrics()
	producer.Use(kafkamiddleware.ProducerLogging(cfg.Log))
	producer.Use(metrics.Producer())

	serverApp.OnShutdown("kafka-producer", func() error {
		metrics.Log(cfg.Log)
		return producer.Close()
	})

	return events.NewBookingEvents(producer, ServiceName)
}
