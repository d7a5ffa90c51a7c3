package retry

import (
	"context"
	"time"
)

// Clock is the timer capability the executor suspends on between attempts.
// The core never touches the runtime timer directly; swapping the Clock
// swaps the timing backend, which is how tests drive a retry execution
// without real waiting (see the retrytest package).
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// realClock implements Clock using the standard time package.
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	}
}
