// Package clock paces periodic work.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d, returning the context error if ctx is done first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Every calls fn right away, then again interval after each call returns, until ctx is done.
// Calls never overlap, so a slow call delays the next one instead of piling up.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(ctx)
		if err := SleepWithContext(ctx, interval); err != nil {
			return err
		}
	}
}
