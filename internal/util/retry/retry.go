// Package retry provides a small injectable retry policy for operations
// against the host package manager and other flaky subsystems.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy holds retry configuration. Build one with Fixed or through options.
type Policy struct {
	// Attempts is the total number of tries, including the first one.
	Attempts int

	// Delay is the pause between consecutive attempts.
	Delay time.Duration

	// Multiplier scales Delay after each failed attempt. 1.0 keeps the
	// delay fixed, which is what the package installer uses.
	Multiplier float64

	// MaxDelay caps the delay when Multiplier > 1.
	MaxDelay time.Duration
}

// Fixed returns a policy with a constant delay between attempts.
func Fixed(attempts int, delay time.Duration) Policy {
	return Policy{Attempts: attempts, Delay: delay, Multiplier: 1.0}
}

// Option is a functional option for retry configuration.
type Option func(*Policy)

// WithAttempts sets the total number of attempts.
func WithAttempts(n int) Option {
	return func(p *Policy) { p.Attempts = n }
}

// WithDelay sets the delay between attempts.
func WithDelay(d time.Duration) Option {
	return func(p *Policy) { p.Delay = d }
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(p *Policy) { p.Multiplier = m }
}

// WithMaxDelay caps the delay when a multiplier is in effect.
func WithMaxDelay(d time.Duration) Option {
	return func(p *Policy) { p.MaxDelay = d }
}

// Do executes the operation under the policy. Every failure is retried the
// same way; there is no error classification beyond the Fatal marker.
// Context cancellation is respected while waiting between attempts.
//
// Errors wrapped with Fatal() are returned immediately without retrying.
func (p Policy) Do(ctx context.Context, operation func() error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Multiplier == 0 {
		p.Multiplier = 1.0
	}

	delay := p.Delay
	var lastErr error

	for attempt := 1; attempt <= p.Attempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}

		if attempt < p.Attempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(delay):
				if p.Multiplier > 1 {
					delay = time.Duration(float64(delay) * p.Multiplier)
					if p.MaxDelay > 0 && delay > p.MaxDelay {
						delay = p.MaxDelay
					}
				}
			}
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", p.Attempts, lastErr)
}

// Do executes the operation with the given options applied over a
// single-attempt base policy.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	p := Policy{Attempts: 1, Multiplier: 1.0}
	for _, opt := range opts {
		opt(&p)
	}
	return p.Do(ctx, operation)
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
