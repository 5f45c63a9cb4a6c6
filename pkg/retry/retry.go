// Package retry runs an operation with bounded exponential backoff and a
// per-attempt timeout. The caller decides which errors are worth retrying.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds the attempts made for one logical call.
type Policy struct {
	MaxAttempts    int           // total attempts including the first; <=0 means 1
	InitialDelay   time.Duration // delay before the second attempt
	MaxDelay       time.Duration // cap for a single delay
	Multiplier     float64       // growth factor between delays
	AttemptTimeout time.Duration // deadline for each attempt; 0 disables it
}

// DefaultPolicy returns 3 attempts with 200ms doubling delays.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// Classifier reports whether an error is transient.
type Classifier func(error) bool

// Notify is called before each backoff sleep with the failed attempt number.
type Notify func(attempt int, err error, wait time.Duration)

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialDelay > 0 {
		b.InitialInterval = p.InitialDelay
	}
	if p.MaxDelay > 0 {
		b.MaxInterval = p.MaxDelay
	}
	if p.Multiplier > 0 {
		b.Multiplier = p.Multiplier
	}
	b.RandomizationFactor = 0.2
	b.MaxElapsedTime = 0
	b.Reset()

	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// Do runs op until it succeeds, returns a non-transient error, the attempts are
// exhausted or ctx is done. It returns the result, the number of attempts made
// and the last error.
func Do[T any](ctx context.Context, p Policy, transient Classifier, notify Notify, op func(context.Context) (T, error)) (T, int, error) {
	var (
		out      T
		attempts int
	)
	err := backoff.RetryNotify(func() error {
		attempts++
		actx, cancel := ctx, context.CancelFunc(func() {})
		if p.AttemptTimeout > 0 {
			actx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
		}
		defer cancel()

		v, err := op(actx)
		if err == nil {
			out = v
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		// a deadline hit by this attempt only is retryable; the parent is still alive
		if errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if transient == nil || !transient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, p.backOff(ctx), func(err error, wait time.Duration) {
		if notify != nil {
			notify(attempts, err, wait)
		}
	})
	return out, attempts, err
}
