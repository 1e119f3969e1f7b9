package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvTrustProxyHeaders = "TRUST_PROXY_HEADERS"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCSRFCookieMaxAge = "CSRF_COOKIE_MAX_AGE"
	EnvCSRFCookieSecure = "CSRF_COOKIE_SECURE"
	EnvAllowedOrigins   = "ALLOWED_ORIGINS"

	EnvContentTrusted    = "CONTENT_TRUSTED"
	EnvPortfolioPageSize = "PORTFOLIO_PAGE_SIZE"
	EnvServicesPageSize  = "SERVICES_PAGE_SIZE"

	EnvKafkaEnabled       = "KAFKA_ENABLED"
	EnvBookingEventsTopic = "BOOKING_EVENTS_TOPIC"

	EnvStudioEnv            = "STUDIO_ENV"
	EnvStudioAPIBaseURL     = "STUDIO_API_BASE_URL"
	EnvStudioDevProxyURL    = "STUDIO_DEV_PROXY_URL"
	EnvStudioRequestTimeout = "STUDIO_REQUEST_TIMEOUT"
	EnvStudioSubmitTimeout  = "STUDIO_SUBMIT_TIMEOUT"
)
