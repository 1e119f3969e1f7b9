package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "studio"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8000"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 5
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultCSRFCookieMaxAge = 365 * 24 * time.Hour
	DefaultAllowedOrigins   = "http://localhost:5173"

	DefaultPortfolioPageSize = 12
	DefaultServicesPageSize  = 6
	MaxPageSize              = 100

	DefaultBookingEventsTopic = "studio.bookings"

	EnvironmentDevelopment   = "development"
	EnvironmentProduction    = "production"
	DefaultStudioEnv         = EnvironmentProduction
	DefaultStudioAPIBaseURL  = "http://127.0.0.1:8000"
	DefaultStudioDevProxyURL = "http://localhost:5173"
	DefaultStudioReqTimeout  = 10 * time.Second
	DefaultStudioSubmitTO    = 15 * time.Second
)
