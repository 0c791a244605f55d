// Package retry runs an operation a bounded number of times with a fixed
// delay between attempts.
package retry

import (
	"context"
	"time"
)

// Policy bounds the retries of one operation. Retryable decides whether a
// failure is worth another attempt; a nil Retryable retries everything.
type Policy struct {
	Attempts  int
	Delay     time.Duration
	Retryable func(error) bool
}

// Default matches the sync engine's upstream behavior: three attempts,
// five seconds apart.
var Default = Policy{
	Attempts: 3,
	Delay:    5 * time.Second,
}

// Do runs f until it succeeds, the policy is exhausted, or a failure is
// classified as not retryable. The returned error is always the original
// failure, not a retry bookkeeping error. The delay between attempts
// honors ctx cancellation.
func Do(ctx context.Context, p Policy, f func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := f()
		if err == nil {
			return nil
		}

		if attempt >= attempts {
			return err
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}

		timer := time.NewTimer(p.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
