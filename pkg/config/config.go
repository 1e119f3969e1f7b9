package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"studio/pkg/client"
	"studio/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	TrustProxyHeaders bool

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	CSRFCookieMaxAge time.Duration
	CSRFCookieSecure bool
	AllowedOrigins   []string

	ContentTrusted    bool
	PortfolioPageSize int
	ServicesPageSize  int

	KafkaEnabled       bool
	BookingEventsTopic string

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	dotEnvErr := loadDotEnv()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		TrustProxyHeaders: getEnvBool(EnvTrustProxyHeaders, false),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		CSRFCookieMaxAge: getEnvDuration(EnvCSRFCookieMaxAge, DefaultCSRFCookieMaxAge),
		CSRFCookieSecure: getEnvBool(EnvCSRFCookieSecure, false),
		AllowedOrigins:   getEnvList(EnvAllowedOrigins, DefaultAllowedOrigins),

		ContentTrusted:    getEnvBool(EnvContentTrusted, false),
		PortfolioPageSize: getEnvNum(EnvPortfolioPageSize, DefaultPortfolioPageSize),
		ServicesPageSize:  getEnvNum(EnvServicesPageSize, DefaultServicesPageSize),

		KafkaEnabled:       getEnvBool(EnvKafkaEnabled, false),
		BookingEventsTopic: getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}
	if dotEnvErr != nil {
		cfg.Log.Warn("Failed to load .env file", "error", dotEnvErr)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log, cfg.ShutdownTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"CSRFCookieMaxAge", cfg.CSRFCookieMaxAge},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.PortfolioPageSize <= 0 || cfg.PortfolioPageSize > MaxPageSize {
		errors = append(errors, fmt.Sprintf("PortfolioPageSize must be between 1 and %d, got: %d", MaxPageSize, cfg.PortfolioPageSize))
	}
	if cfg.ServicesPageSize <= 0 || cfg.ServicesPageSize > MaxPageSize {
		errors = append(errors, fmt.Sprintf("ServicesPageSize must be between 1 and %d, got: %d", MaxPageSize, cfg.ServicesPageSize))
	}
	if cfg.KafkaEnabled && cfg.BookingEventsTopic == "" {
		errors = append(errors, "BookingEventsTopic cannot be empty when Kafka is enabled")
	}

	return joinErrors(errors)
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"trust_proxy_headers", cfg.TrustProxyHeaders,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"csrf_cookie_max_age", cfg.CSRFCookieMaxAge,
		"csrf_cookie_secure", cfg.CSRFCookieSecure,
		"allowed_origins", cfg.AllowedOrigins,
		"content_trusted", cfg.ContentTrusted,
		"portfolio_page_size", cfg.PortfolioPageSize,
		"services_page_size", cfg.ServicesPageSize,
		"kafka_enabled", cfg.KafkaEnabled,
		"booking_events_topic", cfg.BookingEventsTopic,
	)
}

// ClientConfig configures the booking client. APIBaseURL is resolved once here and
// injected everywhere else.
type ClientConfig struct {
	Environment    string
	APIBaseURL     string
	RequestTimeout time.Duration
	SubmitTimeout  time.Duration

	Log *logger.Logger
}

func LoadClient(serviceName string) (*ClientConfig, error) {
	dotEnvErr := loadDotEnv()

	cfg := &ClientConfig{
		Environment:    getEnvStr(EnvStudioEnv, DefaultStudioEnv),
		RequestTimeout: getEnvDuration(EnvStudioRequestTimeout, DefaultStudioReqTimeout),
		SubmitTimeout:  getEnvDuration(EnvStudioSubmitTimeout, DefaultStudioSubmitTO),
		Log: logger.New(logger.Config{
			Level:   getEnvStr(EnvLogLevel, logger.WARN),
			Format:  logger.TEXT,
			Output:  os.Stderr,
			Service: serviceName,
		}),
	}
	if dotEnvErr != nil {
		cfg.Log.Warn("Failed to load .env file", "error", dotEnvErr)
	}
	cfg.APIBaseURL = ResolveAPIBaseURL(
		cfg.Environment,
		getEnvStr(EnvStudioAPIBaseURL, DefaultStudioAPIBaseURL),
		getEnvStr(EnvStudioDevProxyURL, DefaultStudioDevProxyURL),
	)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolveAPIBaseURL picks the dev proxy in development and the absolute API URL otherwise.
func ResolveAPIBaseURL(environment, apiBaseURL, devProxyURL string) string {
	base := apiBaseURL
	if environment == EnvironmentDevelopment {
		base = devProxyURL
	}
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

func (cfg *ClientConfig) Validate() error {
	var errors []string

	if cfg.Environment != EnvironmentDevelopment && cfg.Environment != EnvironmentProduction {
		errors = append(errors, fmt.Sprintf("Environment must be %q or %q, got: %s", EnvironmentDevelopment, EnvironmentProduction, cfg.Environment))
	}
	if u, err := url.Parse(cfg.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("APIBaseURL must be an absolute URL, got: %q", cfg.APIBaseURL))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.SubmitTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("SubmitTimeout must be positive, got: %s", cfg.SubmitTimeout))
	}

	return joinErrors(errors)
}

// NormalizePage clamps a 1-based page number.
func NormalizePage(page int) int {
	return max(1, page)
}

func joinErrors(errors []string) error {
	if len(errors) == 0 {
		return nil
	}
	errMsg := "Configuration validation failed:\n"
	for i, err := range errors {
		errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
	}
	return fmt.Errorf("%s", errMsg)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

// loadDotEnv reads .env, or the given files, when present. A missing file is not an
// error; one that cannot be read or parsed is.
func loadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnvStr(key, fallback)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
