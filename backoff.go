package retry

import (
	"math"
	"time"
)

// Backoff calculates the raw delay before the next attempt. Attempts are
// numbered from 1. Implementations must be deterministic; randomization is
// the job of a Jitter.
type Backoff interface {
	Delay(attempt int) time.Duration
}

// BackoffFunc is an adapter that allows a function to be used as a Backoff.
type BackoffFunc func(attempt int) time.Duration

// Delay implements Backoff.
func (f BackoffFunc) Delay(attempt int) time.Duration {
	return f(attempt)
}

// maxShift bounds the exponent so 1<<shift stays within int64.
const maxShift = 62

// Fixed returns a backoff that always waits the same duration.
func Fixed(d time.Duration) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		if d < 0 {
			return 0
		}
		return d
	})
}

// Linear returns a backoff that increases linearly with each attempt.
// delay = base * attempt
func Linear(base time.Duration) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		if base <= 0 {
			return 0
		}
		if attempt < 1 {
			attempt = 1
		}
		if int64(base) > math.MaxInt64/int64(attempt) {
			return time.Duration(math.MaxInt64)
		}
		return base * time.Duration(attempt)
	})
}

// Exponential returns a backoff that doubles with each attempt.
// delay = base * 2^(attempt-1), saturating at the maximum duration
// instead of overflowing.
func Exponential(base time.Duration) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		if base <= 0 {
			return 0
		}
		if attempt < 1 {
			attempt = 1
		}
		shift := attempt - 1
		if shift > maxShift {
			return time.Duration(math.MaxInt64)
		}
		multiplier := int64(1) << uint(shift)
		if int64(base) > math.MaxInt64/multiplier {
			return time.Duration(math.MaxInt64)
		}
		return time.Duration(int64(base) * multiplier)
	})
}

// WithCap wraps a backoff and caps the raw delay at a maximum value.
// A Builder's MaxDelay caps the post-jitter delay instead; prefer that
// when jitter is in play, since capping before jitter skews the jitter
// distribution toward the cap.
func WithCap(max time.Duration, b Backoff) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		d := b.Delay(attempt)
		if d > max {
			return max
		}
		return d
	})
}

// WithMin wraps a backoff and ensures the delay is at least a minimum value.
func WithMin(min time.Duration, b Backoff) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		d := b.Delay(attempt)
		if d < min {
			return min
		}
		return d
	})
}
