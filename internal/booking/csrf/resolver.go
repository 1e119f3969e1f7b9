package csrf

import (
	"context"
	"time"

	"studio/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// Primer provokes the server into setting the token cookie.
type Primer interface {
	PrimeCSRF(ctx context.Context) error
}

type PrimerFunc func(ctx context.Context) error

func (f PrimerFunc) PrimeCSRF(ctx context.Context) error {
	return f(ctx)
}

// PrimeTimeout bounds a shared priming request, which outlives any single caller.
const PrimeTimeout = 10 * time.Second

// Resolver finds the anti-forgery token, priming the cookie once when it is missing.
type Resolver struct {
	cookies CookieReader
	primer  Primer
	log     *logger.Logger
	group   singleflight.Group
}

func NewResolver(cookies CookieReader, primer Primer, log *logger.Logger) *Resolver {
	return &Resolver{
		cookies: cookies,
		primer:  primer,
		log:     log,
	}
}

// Resolve returns the token and true, or "" and false when the server never set one.
// A failed priming request is logged and treated as absent. Concurrent callers share a
// single priming request; a caller that gives up does not cancel it for the others.
func (r *Resolver) Resolve(ctx context.Context) (string, bool) {
	if token, ok := r.cookies.Cookie(CookieName); ok {
		return token, true
	}

	ch := r.group.DoChan(CookieName, func() (any, error) {
		primeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), PrimeTimeout)
		defer cancel()
		return nil, r.primer.PrimeCSRF(primeCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			r.log.Warn("failed to prime csrf cookie", "error", res.Err)
		}
	case <-ctx.Done():
		r.log.Warn("csrf priming abandoned", "error", ctx.Err())
		return "", false
	}

	token, ok := r.cookies.Cookie(CookieName)
	if !ok {
		r.log.Debug("csrf cookie absent after priming")
	}
	return token, ok
}
