package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"studio/internal/health"
	"studio/pkg/config"
	"studio/pkg/contracts"
	"studio/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type closer struct {
	name string
	fn   func() error
}

type Application struct {
	cfg         *config.Config
	server      *http.Server
	csrf        *middleware.CSRF
	rateLimiter *middleware.IPRateLimiter
	closers     []closer
	handler     http.Handler
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{
		cfg:         cfg,
		csrf:        middleware.NewCSRF(cfg.CSRFCookieMaxAge, cfg.CSRFCookieSecure, cfg.Log),
		rateLimiter: middleware.NewIPRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.Log),
	}
}

// CSRF is shared with handlers that issue the csrftoken cookie.
func (a *Application) CSRF() *middleware.CSRF {
	return a.csrf
}

// OnShutdown registers fn to run after the HTTP server has stopped, in registration order.
func (a *Application) OnShutdown(name string, fn func() error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

func (a *Application) SetApp(db health.Pinger, handlers ...contracts.Handler) {
	mux := http.NewServeMux()
	healthHandler := a.healthHandler(db)
	mux.Handle("/health", healthHandler)
	mux.Handle("/ready", healthHandler)
	mux.Handle("/", a.appHandler(handlers))
	a.handler = mux

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      a.handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// Handler returns the fully wired mux. SetApp must have been called.
func (a *Application) Handler() http.Handler {
	return a.handler
}

func (a *Application) healthHandler(db health.Pinger) http.Handler {
	router := httprouter.New()
	health.NewHandler(db, a.cfg.Log).RegisterRoutes(router)

	var h http.Handler = router
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
	return h
}

func (a *Application) appHandler(handlers []contracts.Handler) http.Handler {
	router := httprouter.New()
	for _, handler := range handlers {
		handler.RegisterRoutes(router)
	}

	// Recovery → Logging → CORS → MaxSize → ContentType → Timeout → RateLimit → CSRF → Router
	var h http.Handler = router
	h = a.csrf.Verify(h)
	h = middleware.RateLimit(a.rateLimiter, a.cfg.TrustProxyHeaders)(h)
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.CORS(a.cfg.AllowedOrigins)(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.cfg.Log.Info("Application endpoints configured with full security middleware stack")
	return h
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.Stop()
	a.cfg.Log.Info("Server stopped gracefully")
}

// Stop releases background workers and registered closers.
func (a *Application) Stop() {
	a.cfg.Log.Info("Stopping background workers...")
	a.rateLimiter.Stop()
	for _, c := range a.closers {
		if err := c.fn(); err != nil {
			a.cfg.Log.Error("Failed to stop component", "component", c.name, "error", err)
		}
	}
	a.cfg.Log.Info("Background workers stopped")
}
