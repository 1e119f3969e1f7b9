package submit

import (
	"context"
	"errors"
	"sync"
	"time"

	"studio/internal/booking/form"
	"studio/pkg/client"
	"studio/pkg/logger"
	"studio/pkg/model"
)

// ConfirmationRoute is where a successful booking navigates to.
const ConfirmationRoute = "/success"

const DefaultSubmitTimeout = 15 * time.Second

var (
	ErrInvalid  = errors.New("booking draft failed validation")
	ErrInFlight = errors.New("booking submission already in flight")
	ErrClosed   = errors.New("booking form closed")
)

type State int

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) {
	f(route)
}

type TokenResolver interface {
	Resolve(ctx context.Context) (string, bool)
}

type Sender interface {
	CreateBooking(ctx context.Context, req model.BookingRequest, token string) (*client.Response, error)
}

// Snapshot is a copy of the controller state for presentation.
type Snapshot struct {
	State       State
	Draft       form.Draft
	FieldErrors form.FieldErrors
	Outcome     *Outcome
}

// Controller drives one booking form: edits, validation, token resolution, the POST,
// and the resulting state. At most one submission is in flight at a time.
type Controller struct {
	schema  *form.Schema
	tokens  TokenResolver
	sender  Sender
	nav     Navigator
	timeout time.Duration
	log     *logger.Logger

	lifetime context.Context
	cancel   context.CancelFunc

	mu      sync.Mutex
	closed  bool
	state   State
	draft   form.Draft
	edits   uint64
	errs    form.FieldErrors
	outcome *Outcome
}

func NewController(schema *form.Schema, tokens TokenResolver, sender Sender, nav Navigator, timeout time.Duration, log *logger.Logger) *Controller {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	lifetime, cancel := context.WithCancel(context.Background())
	return &Controller{
		schema:   schema,
		tokens:   tokens,
		sender:   sender,
		nav:      nav,
		timeout:  timeout,
		log:      log,
		lifetime: lifetime,
		cancel:   cancel,
	}
}

// Edit sets one field. The field's error is cleared and no other. A settled form goes
// back to Idle. Edits are accepted while a submission is in flight.
func (c *Controller) Edit(f form.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	d, err := c.draft.With(f, value)
	if err != nil {
		return err
	}
	c.draft = d
	c.edits++
	c.errs = c.errs.Without(f)

	if c.state == Succeeded || c.state == Failed {
		c.state = Idle
		c.outcome = nil
	}
	return nil
}

// Submit validates the draft and, when it is accepted, sends its trimmed values. The
// draft itself keeps what was typed; a success clears it unless it was edited during
// the submission. Submit blocks until the attempt settles and returns its Outcome.
// ErrInvalid means no request was made and the field errors are in Snapshot.
// ErrInFlight means another Submit is running. ErrClosed means the form was closed
// and the result was discarded.
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Outcome{}, ErrClosed
	}
	if c.state == Validating || c.state == Submitting {
		c.mu.Unlock()
		return Outcome{}, ErrInFlight
	}

	c.state = Validating
	c.outcome = nil
	accepted, errs := c.schema.Validate(c.draft)
	if len(errs) > 0 {
		c.state = Idle
		c.errs = errs
		c.mu.Unlock()
		c.log.Debug("booking draft rejected", "fields", len(errs))
		return Outcome{}, ErrInvalid
	}

	c.state = Submitting
	c.errs = nil
	sentEdits := c.edits
	c.mu.Unlock()

	subCtx, cancel := context.WithTimeout(c.lifetime, c.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	outcome := c.send(subCtx, accepted.Request())

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.Debug("discarding booking result after close", "succeeded", outcome.Succeeded)
		return outcome, ErrClosed
	}
	if outcome.Succeeded {
		c.state = Succeeded
		if c.edits == sentEdits {
			c.draft = form.Draft{}
		}
		c.errs = nil
	} else {
		c.state = Failed
		c.errs = outcome.FieldErrors.Clone()
	}
	c.outcome = &outcome
	c.mu.Unlock()

	if outcome.Succeeded {
		c.log.Info("booking request submitted", "booking_id", outcome.BookingID, "status", outcome.Status)
		c.nav.Navigate(ConfirmationRoute)
	} else {
		c.log.Warn("booking request failed", "reason", outcome.Reason, "message", outcome.Message)
	}
	return outcome, nil
}

// send resolves the token before issuing the POST; the two never overlap.
func (c *Controller) send(ctx context.Context, req model.BookingRequest) Outcome {
	token, ok := c.tokens.Resolve(ctx)
	if !ok {
		c.log.Info("submitting booking without csrf token")
	}

	resp, err := c.sender.CreateBooking(ctx, req, token)
	if err != nil {
		if client.IsTransportError(err) || ctx.Err() != nil {
			return failed(ReasonConnectivity, MsgNetwork)
		}
		c.log.Error("failed to send booking request", "error", err)
		return failed(ReasonRejected, MsgGeneric)
	}
	return interpret(resp)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:       c.state,
		Draft:       c.draft,
		FieldErrors: c.errs.Clone(),
	}
	if c.outcome != nil {
		o := *c.outcome
		o.FieldErrors = o.FieldErrors.Clone()
		s.Outcome = &o
	}
	return s
}

// Close abandons the form. An in-flight submission is cancelled and its result is
// discarded without touching state or navigating.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}
