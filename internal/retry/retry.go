// Package retry implements a bounded retry policy with transient-vs-permanent
// error classification.
package retry

import (
	"context"
	"time"
)

// Policy bounds a retry loop.
type Policy struct {
	Attempts int           // total attempts, including the first
	Delay    time.Duration // fixed delay between attempts
}

// DefaultPolicy matches the behavior expected of geocode resolution:
// three attempts with a one-second pause.
func DefaultPolicy() Policy {
	return Policy{Attempts: 3, Delay: time.Second}
}

// Do runs fn up to p.Attempts times. A failed attempt is retried only when
// transient(err) reports true; permanent errors abort immediately. The delay
// between attempts respects context cancellation. Returns the last error.
func Do(ctx context.Context, p Policy, transient func(error) bool, fn func(context.Context) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Delay):
			}
		}

		if err = fn(ctx); err == nil {
			return nil
		}
		if transient != nil && !transient(err) {
			return err
		}
	}
	return err
}
