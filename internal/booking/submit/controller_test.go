package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"studio/internal/booking/csrf"
	"studio/internal/booking/form"
	"studio/pkg/client"
	"studio/pkg/config"
	"studio/pkg/logger"
	"studio/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNavigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNavigator) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

// fakeAPI is a studio backend with a scripted booking endpoint.
type fakeAPI struct {
	t        *testing.T
	srv      *httptest.Server
	bookings int32
	primes   int32
	handle   func(w http.ResponseWriter, r *http.Request)

	mu       sync.Mutex
	lastReq  model.BookingRequest
	lastCSRF string
}

func newFakeAPI(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) *fakeAPI {
	t.Helper()
	api := &fakeAPI{t: t, handle: handle}

	mux := http.NewServeMux()
	mux.HandleFunc(client.PathHome, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&api.primes, 1)
		http.SetCookie(w, &http.Cookie{Name: csrf.CookieName, Value: "tok%2F1", Path: "/"})
		w.Write([]byte(`{"success":true,"data":{}}`))
	})
	mux.HandleFunc(client.PathCreateBooking, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&api.bookings, 1)
		api.mu.Lock()
		_ = json.NewDecoder(r.Body).Decode(&api.lastReq)
		api.lastCSRF = r.Header.Get(client.CSRFHeaderName)
		api.mu.Unlock()
		api.handle(w, r)
	})
	api.srv = httptest.NewServer(mux)
	t.Cleanup(api.srv.Close)
	return api
}

func (a *fakeAPI) Bookings() int {
	return int(atomic.LoadInt32(&a.bookings))
}

func newTestController(t *testing.T, baseURL string, timeout time.Duration) (*Controller, *recordingNavigator) {
	t.Helper()
	nav := &recordingNavigator{}
	cfg := &config.ClientConfig{
		Environment:    config.EnvironmentProduction,
		APIBaseURL:     baseURL,
		RequestTimeout: time.Second,
		SubmitTimeout:  timeout,
		Log:            logger.Discard(),
	}
	c, api, err := NewFromConfig(cfg, nav)
	require.NoError(t, err)
	t.Cleanup(func() {
		c.Close()
		api.CloseIdleConnections()
	})
	return c, nav
}

func fill(t *testing.T, c *Controller, d form.Draft) {
	t.Helper()
	for _, f := range form.Fields {
		require.NoError(t, c.Edit(f, d.Value(f)))
	}
}

func validDraft() form.Draft {
	return form.Draft{
		Name:          "Ada Lovelace",
		Email:         "ada@example.com",
		Phone:         "+1 202 456 1111",
		SessionType:   model.SessionGraduation,
		PreferredDate: "2026-06-01",
		Message:       "Graduation portraits on campus.",
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestSubmit_EmptyRequiredFieldMakesNoRequest(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"success":true}`)
	})

	for _, f := range form.Fields {
		t.Run(string(f), func(t *testing.T) {
			c, nav := newTestController(t, api.srv.URL, time.Second)
			d, err := validDraft().With(f, "")
			require.NoError(t, err)
			fill(t, c, d)

			_, err = c.Submit(context.Background())

			assert.ErrorIs(t, err, ErrInvalid)
			snap := c.Snapshot()
			assert.Equal(t, Idle, snap.State)
			assert.Contains(t, snap.FieldErrors, f)
			assert.Empty(t, nav.Routes())
		})
	}
	assert.Zero(t, api.Bookings())
	assert.Zero(t, atomic.LoadInt32(&api.primes), "token resolution must not run for invalid drafts")
}

func TestSubmit_RequestCarriesDraftAndToken(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"success":true,"message":"ok","data":{"id":42,"status":"pending"}}`)
	})
	c, _ := newTestController(t, api.srv.URL, time.Second)
	d := validDraft()
	fill(t, c, d)

	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, d.Request(), api.lastReq)
	assert.Equal(t, d.SessionType, api.lastReq.SessionType)
	assert.Equal(t, "tok/1", api.lastCSRF, "token is URL-decoded from the cookie")
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.primes))
}

func TestSubmit_Success(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"message":"Booking created","data":{"id":7,"status":"pending"}}`)
	})
	c, nav := newTestController(t, api.srv.URL, time.Second)
	fill(t, c, validDraft())

	outcome, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.True(t, outcome.Succeeded)
	assert.Equal(t, int64(7), outcome.BookingID)
	assert.Equal(t, model.StatusPending, outcome.Status)
	assert.Equal(t, []string{ConfirmationRoute}, nav.Routes())

	snap := c.Snapshot()
	assert.Equal(t, Succeeded, snap.State)
	assert.True(t, snap.Draft.IsZero())
	assert.Equal(t, View{Redirect: ConfirmationRoute}, Present(snap))
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantReason  Reason
	}{
		{
			name:        "500 with empty body",
			status:      http.StatusInternalServerError,
			body:        "",
			wantMessage: MsgGeneric,
			wantReason:  ReasonDecode,
		},
		{
			name:        "200 with success false",
			status:      http.StatusOK,
			body:        `{"success":false,"message":"Date unavailable"}`,
			wantMessage: "Date unavailable",
			wantReason:  ReasonRejected,
		},
		{
			name:        "400 with server message",
			status:      http.StatusBadRequest,
			body:        `{"success":false,"message":"Invalid booking request","errors":{"event_date":"Please enter a valid date"}}`,
			wantMessage: "Invalid booking request",
			wantReason:  ReasonRejected,
		},
		{
			name:        "403 with html body",
			status:      http.StatusForbidden,
			body:        `<html><body>Forbidden</body></html>`,
			wantMessage: MsgGeneric,
			wantReason:  ReasonDecode,
		},
		{
			name:        "non-2xx without message",
			status:      http.StatusServiceUnavailable,
			body:        `{"success":false}`,
			wantMessage: MsgGeneric,
			wantReason:  ReasonRejected,
		},
		{
			name:        "success flag with error status",
			status:      http.StatusBadGateway,
			body:        `{"success":true}`,
			wantMessage: MsgGeneric,
			wantReason:  ReasonRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			c, nav := newTestController(t, api.srv.URL, time.Second)
			d := validDraft()
			fill(t, c, d)

			outcome, err := c.Submit(context.Background())

			require.NoError(t, err)
			assert.False(t, outcome.Succeeded)
			assert.Equal(t, tt.wantMessage, outcome.Message)
			assert.Equal(t, tt.wantReason, outcome.Reason)
			assert.Empty(t, nav.Routes())

			snap := c.Snapshot()
			assert.Equal(t, Failed, snap.State)
			view := Present(snap)
			assert.Equal(t, tt.wantMessage, view.Alert)
			assert.Equal(t, d, view.Values, "fields keep their values after a failure")
		})
	}
}

func TestSubmit_FailureKeepsTypedValuesAndSendsTrimmed(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":false,"message":"Date unavailable"}`)
	})
	c, _ := newTestController(t, api.srv.URL, time.Second)
	typed := validDraft()
	typed.Name = "  Ada Lovelace  "
	typed.Message = "\tGraduation portraits on campus.\n"
	fill(t, c, typed)

	outcome, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.False(t, outcome.Succeeded)

	view := Present(c.Snapshot())
	assert.Equal(t, "Date unavailable", view.Alert)
	assert.Equal(t, typed, view.Values)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, validDraft().Request(), api.lastReq)
}

func TestEdit_AfterSuccessStartsFreshForm(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"id":3,"status":"pending"}}`)
	})
	c, _ := newTestController(t, api.srv.URL, time.Second)
	fill(t, c, validDraft())

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, Succeeded, c.Snapshot().State)

	require.NoError(t, c.Edit(form.FieldName, "Grace Hopper"))

	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Nil(t, snap.Outcome)
	assert.Equal(t, form.Draft{Name: "Grace Hopper"}, snap.Draft)
	assert.Equal(t, View{Values: form.Draft{Name: "Grace Hopper"}}, Present(snap))
}

func TestSubmit_EditDuringSubmissionSurvivesSuccess(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"id":4,"status":"pending"}}`)
	})
	c, nav := newTestController(t, api.srv.URL, 5*time.Second)
	fill(t, c, validDraft())

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-started

	require.NoError(t, c.Edit(form.FieldMessage, "Also a family portrait."))
	assert.Equal(t, Submitting, c.Snapshot().State)

	close(release)
	require.NoError(t, <-done)

	snap := c.Snapshot()
	assert.Equal(t, Succeeded, snap.State)
	assert.Equal(t, "Also a family portrait.", snap.Draft.Message)
	assert.Equal(t, validDraft().Name, snap.Draft.Name)
	assert.Equal(t, []string{ConfirmationRoute}, nav.Routes())
}

func TestSubmit_ServerFieldErrorsAreShownAndClearable(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"success":false,"message":"Invalid booking request","errors":{"event_date":"Date unavailable","email":"Please enter a valid email"}}`)
	})
	c, _ := newTestController(t, api.srv.URL, time.Second)
	fill(t, c, validDraft())

	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	view := Present(c.Snapshot())
	assert.Equal(t, "Date unavailable", view.FieldMessages[form.FieldPreferredDate])

	require.NoError(t, c.Edit(form.FieldPreferredDate, "2026-06-02"))

	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Equal(t, form.FieldErrors{form.FieldEmail: "Please enter a valid email"}, snap.FieldErrors)
}

func TestSubmit_ConnectivityFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, nav := newTestController(t, base, time.Second)
	fill(t, c, validDraft())

	outcome, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, MsgNetwork, outcome.Message)
	assert.NotEqual(t, MsgGeneric, outcome.Message)
	assert.Equal(t, ReasonConnectivity, outcome.Reason)
	assert.Empty(t, nav.Routes())
}

func TestSubmit_TimeoutIsConnectivityFailure(t *testing.T) {
	release := make(chan struct{})
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	c, _ := newTestController(t, api.srv.URL, 50*time.Millisecond)
	fill(t, c, validDraft())

	outcome, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ReasonConnectivity, outcome.Reason)
	assert.Equal(t, MsgNetwork, outcome.Message)
}

func TestSubmit_SecondSubmitWhileInFlightIsIgnored(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"id":1,"status":"pending"}}`)
	})
	c, nav := newTestController(t, api.srv.URL, 5*time.Second)
	fill(t, c, validDraft())

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-started

	assert.Equal(t, Submitting, c.Snapshot().State)
	assert.True(t, Present(c.Snapshot()).Busy)
	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.Bookings())
	assert.Len(t, nav.Routes(), 1)
}

func TestSubmit_CloseDiscardsLateResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-release:
		case <-r.Context().Done():
		}
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"id":1}}`)
	})
	defer close(release)
	c, nav := newTestController(t, api.srv.URL, 5*time.Second)
	fill(t, c, validDraft())

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-started

	c.Close()

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, nav.Routes())
	assert.Equal(t, Submitting, c.Snapshot().State, "state is left as it was")
	assert.ErrorIs(t, c.Edit(form.FieldName, "x"), ErrClosed)
}

func TestEdit_ClearsOnlyThatFieldsError(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	c, _ := newTestController(t, api.srv.URL, time.Second)

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrInvalid)
	before := c.Snapshot().FieldErrors
	require.Len(t, before, len(form.Fields))

	require.NoError(t, c.Edit(form.FieldPhone, "555"))
	require.NoError(t, c.Edit(form.FieldPhone, "5551"))

	after := c.Snapshot().FieldErrors
	assert.NotContains(t, after, form.FieldPhone)
	assert.Equal(t, before.Without(form.FieldPhone), after)

	view := Present(c.Snapshot())
	assert.Equal(t, "5551", view.Values.Phone)
	assert.Empty(t, view.Alert)
	assert.Equal(t, after, view.FieldMessages)
}

func TestEdit_UnknownField(t *testing.T) {
	api := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	c, _ := newTestController(t, api.srv.URL, time.Second)

	assert.Error(t, c.Edit(form.Field("age"), "30"))
}
