// Package retry runs a status check a bounded number of times and reports a
// terminal outcome instead of mutating shared state between attempts.
package retry

import (
	"context"
	"errors"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

type Outcome int

const (
	// Done means the check reported completion (e.g. the order is paid).
	Done Outcome = iota + 1
	// TimedOut means every attempt ran and none reported completion.
	TimedOut
	// Failed means the last attempt errored or the context ended.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case TimedOut:
		return "timed_out"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrPermanent marks a check error that must not be retried.
var ErrPermanent = errors.New("permanent failure")

type Policy struct {
	Attempts int
	// Backoff is the wait before the second attempt; it grows linearly.
	Backoff time.Duration
	// MaxBackoff caps the wait between attempts when non-zero.
	MaxBackoff time.Duration
}

// Check reports whether the awaited condition holds.
type Check func(ctx context.Context, attempt int) (done bool, err error)

// errPending marks a not-yet-done check so the backoff loop keeps going.
var errPending = errors.New("check pending")

// Poll calls check until it returns done, the attempts run out or ctx ends.
// Errors are retried like a not-done result unless they wrap ErrPermanent;
// the last error is returned with Failed when the attempts run out on one.
func Poll(ctx context.Context, p Policy, check Check) (Outcome, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	err := goretry.Do(ctx, p.backoff(attempts), func(ctx context.Context) error {
		attempt++
		done, err := check(ctx, attempt)
		switch {
		case err == nil && done:
			return nil
		case err == nil:
			return goretry.RetryableError(errPending)
		case errors.Is(err, ErrPermanent):
			return err
		default:
			return goretry.RetryableError(err)
		}
	})

	switch {
	case err == nil:
		return Done, nil
	case errors.Is(err, errPending):
		return TimedOut, nil
	default:
		return Failed, err
	}
}

func (p Policy) backoff(attempts int) goretry.Backoff {
	n := 0
	linear := goretry.BackoffFunc(func() (time.Duration, bool) {
		n++
		return p.wait(n), false
	})
	return goretry.WithMaxRetries(uint64(attempts-1), linear)
}

func (p Policy) wait(attempt int) time.Duration {
	d := p.Backoff * time.Duration(attempt)
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		return p.MaxBackoff
	}
	return d
}
