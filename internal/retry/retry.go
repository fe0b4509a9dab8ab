package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted is returned once every attempt failed with a retryable error.
var ErrExhausted = errors.New("retries exhausted")

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as a transient failure worth another attempt.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

func IsRetryable(err error) bool {
	var r *retryableError
	return errors.As(err, &r)
}

// Policy runs a call up to maxAttempts times with linear backoff
// (attempt × baseDelay) between attempts.
type Policy struct {
	maxAttempts int
	baseDelay   time.Duration
}

func NewPolicy(maxAttempts int, baseDelay time.Duration) *Policy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Policy{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

func (p *Policy) MaxAttempts() int {
	return p.maxAttempts
}

// Delay returns the wait before the attempt following the given one.
func (p *Policy) Delay(attempt int) time.Duration {
	return time.Duration(attempt) * p.baseDelay
}

// Do calls fn until it succeeds, returns a non-retryable error, or runs out
// of attempts. Backoff waits are abandoned when ctx is done.
func (p *Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err

		if attempt == p.maxAttempts {
			break
		}

		timer := time.NewTimer(p.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempt, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, p.maxAttempts, lastErr)
}
