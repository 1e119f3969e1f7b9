package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	apperrors "studio/pkg/errors"
	httputil "studio/pkg/http"
	"studio/pkg/logger"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"

	MsgCSRFFailed = "CSRF verification failed."

	csrfTokenBytes = 32
)

// CSRF implements the double-submit cookie check: state-changing requests must echo the
// csrftoken cookie in the X-CSRFToken header.
type CSRF struct {
	maxAge time.Duration
	secure bool
	log    *logger.Logger
}

func NewCSRF(maxAge time.Duration, secure bool, log *logger.Logger) *CSRF {
	return &CSRF{maxAge: maxAge, secure: secure, log: log}
}

// Ensure returns the request's token, issuing a fresh cookie when it carries none.
func (c *CSRF) Ensure(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token, err := newCSRFToken()
	if err != nil {
		c.log.Error("failed to generate csrf token", "request_id", RequestID(r.Context()), "error", err)
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.maxAge.Seconds()),
		Expires:  time.Now().Add(c.maxAge),
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

func (c *CSRF) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isUnsafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(CSRFCookieName)
		header := r.Header.Get(CSRFHeaderName)
		if err != nil || cookie.Value == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(header)) != 1 {
			c.log.Warn("CSRF verification failed",
				"request_id", RequestID(r.Context()),
				"path", r.URL.Path,
				"has_cookie", err == nil,
				"has_header", header != "",
			)
			httputil.WriteError(w, apperrors.Forbidden(MsgCSRFFailed))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
