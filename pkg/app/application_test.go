package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studio/pkg/config"
	"studio/pkg/logger"
	"studio/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type okPinger struct{}

func (okPinger) Ping(context.Context, *readpref.ReadPref) error { return nil }

type echoHandler struct {
	csrf *middleware.CSRF
}

func (h *echoHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/home/", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.csrf.Ensure(w, r)
		w.WriteHeader(http.StatusOK)
	})
	router.POST("/api/bookings/create/", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusCreated)
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		MaxRequestSize:    1024,
		ShutdownTimeout:   time.Second,
		CSRFCookieMaxAge:  time.Hour,
		AllowedOrigins:    []string{"http://localhost:5173"},
		Log:               logger.Discard(),
	}
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	a := NewApplication(testConfig())
	a.SetApp(okPinger{}, &echoHandler{csrf: a.CSRF()})
	t.Cleanup(a.Stop)
	return a
}

func TestApplication_HealthBypassesAppMiddleware(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ready"`)
}

func TestApplication_CSRFHandshake(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/home/")
	require.NoError(t, err)
	resp.Body.Close()

	var token string
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CSRFCookieName {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)

	post := func(withHeader bool) int {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/bookings/create/", strings.NewReader("{}"))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: token})
		if withHeader {
			req.Header.Set(middleware.CSRFHeaderName, token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusForbidden, post(false))
	assert.Equal(t, http.StatusCreated, post(true))
}

func TestApplication_StopRunsClosersInOrder(t *testing.T) {
	a := NewApplication(testConfig())
	var order []string
	a.OnShutdown("producer", func() error { order = append(order, "producer"); return nil })
	a.OnShutdown("mongo", func() error { order = append(order, "mongo"); return nil })

	a.Stop()

	assert.Equal(t, []string{"producer", "mongo"}, order)
}
