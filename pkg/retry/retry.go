// Package retry wraps a single remote call with bounded retries and
// exponential backoff on transient failures. Permanent failures are
// returned immediately; only terminal outcomes (success, a permanent
// error, or ExhaustedError) escape the policy.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// temporary is implemented by errors worth retrying.
type temporary interface {
	Temporary() bool
}

// IsTransient reports whether err is classified as transient. Errors that
// do not declare themselves via Temporary() are treated as permanent.
func IsTransient(err error) bool {
	var t temporary
	if errors.As(err, &t) {
		return t.Temporary()
	}
	return false
}

// transientError marks an arbitrary error as transient.
type transientError struct {
	err error
}

func (e *transientError) Error() string   { return e.err.Error() }
func (e *transientError) Unwrap() error   { return e.err }
func (e *transientError) Temporary() bool { return true }

// Transient wraps err so the policy will retry it. Returns nil for nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// ExhaustedError is returned when every attempt failed transiently.
// It wraps the last attempt's error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry exhausted after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// Default policy settings.
const (
	DefaultMaxAttempts = 3
	DefaultBaseBackoff = 500 * time.Millisecond
	DefaultMaxBackoff  = 10 * time.Second
	DefaultJitter      = 0.2
)

// Policy executes operations with bounded retries and exponential backoff.
type Policy struct {
	maxAttempts int
	baseBackoff time.Duration
	maxBackoff  time.Duration
	jitter      float64
	log         *slog.Logger

	// sleep is replaced in tests to observe the backoff schedule.
	sleep func(ctx context.Context, d time.Duration) error
	randf func() float64
}

// Option configures a Policy.
type Option func(*Policy)

// WithMaxAttempts sets the attempt bound. Values below 1 are clamped to 1.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		if n < 1 {
			n = 1
		}
		p.maxAttempts = n
	}
}

// WithBaseBackoff sets the first backoff duration. Subsequent backoffs
// double until they reach the cap.
func WithBaseBackoff(d time.Duration) Option {
	return func(p *Policy) {
		p.baseBackoff = d
	}
}

// WithMaxBackoff caps a single backoff duration.
func WithMaxBackoff(d time.Duration) Option {
	return func(p *Policy) {
		p.maxBackoff = d
	}
}

// WithJitter sets the jitter fraction (0 disables, 0.2 means ±20%).
func WithJitter(f float64) Option {
	return func(p *Policy) {
		p.jitter = f
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(p *Policy) {
		p.log = log.With("component", "retry")
	}
}

// New creates a retry policy.
func New(opts ...Option) *Policy {
	p := &Policy{
		maxAttempts: DefaultMaxAttempts,
		baseBackoff: DefaultBaseBackoff,
		maxBackoff:  DefaultMaxBackoff,
		jitter:      DefaultJitter,
		sleep:       sleepContext,
		randf:       rand.Float64,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Do runs op until it succeeds, fails permanently, or the attempt budget
// is exhausted. The backoff sleep is the only suspension point and is cut
// short when ctx is canceled, so a stuck backoff sequence can always be
// interrupted between attempts.
func (p *Policy) Do(ctx context.Context, op func() error) error {
	var last error
	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		last = err
		if attempt >= p.maxAttempts {
			return &ExhaustedError{Attempts: attempt, Last: last}
		}

		d := p.backoff(attempt)
		if p.log != nil {
			p.log.Debug("transient failure, backing off",
				"attempt", attempt, "backoff_ms", d.Milliseconds(), "error", err)
		}
		if serr := p.sleep(ctx, d); serr != nil {
			return serr
		}
	}
}

// backoff computes base * 2^(attempt-1), capped at maxBackoff, with
// optional symmetric jitter.
func (p *Policy) backoff(attempt int) time.Duration {
	d := p.baseBackoff
	for i := 1; i < attempt && d < p.maxBackoff; i++ {
		d *= 2
	}
	if d > p.maxBackoff {
		d = p.maxBackoff
	}
	if p.jitter > 0 {
		delta := (p.randf()*2 - 1) * p.jitter * float64(d)
		d = time.Duration(float64(d) + delta)
		if d < 0 {
			d = 0
		}
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
