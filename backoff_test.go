package retry_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/retrykit/retry"
)

func TestFixed(t *testing.T) {
	t.Parallel()

	b := retry.Fixed(100 * time.Millisecond)

	for attempt := 1; attempt <= 5; attempt++ {
		assert.Equal(t, 100*time.Millisecond, b.Delay(attempt), "attempt %d", attempt)
	}
}

func TestFixed_negative(t *testing.T) {
	t.Parallel()

	b := retry.Fixed(-time.Second)

	assert.Equal(t, time.Duration(0), b.Delay(1))
}

func TestLinear(t *testing.T) {
	t.Parallel()

	b := retry.Linear(100 * time.Millisecond)

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 300 * time.Millisecond},
		{5, 500 * time.Millisecond},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, b.Delay(tc.attempt), "attempt %d", tc.attempt)
	}
}

func TestLinear_saturates(t *testing.T) {
	t.Parallel()

	b := retry.Linear(time.Duration(math.MaxInt64 / 2))

	assert.Equal(t, time.Duration(math.MaxInt64), b.Delay(3))
}

func TestExponential(t *testing.T) {
	t.Parallel()

	b := retry.Exponential(100 * time.Millisecond)

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},  // 100 * 2^0
		{2, 200 * time.Millisecond},  // 100 * 2^1
		{3, 400 * time.Millisecond},  // 100 * 2^2
		{4, 800 * time.Millisecond},  // 100 * 2^3
		{5, 1600 * time.Millisecond}, // 100 * 2^4
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, b.Delay(tc.attempt), "attempt %d", tc.attempt)
	}
}

func TestExponential_saturates(t *testing.T) {
	t.Parallel()

	b := retry.Exponential(100 * time.Millisecond)

	// Past the shift width the delay clamps at the maximum duration.
	assert.Equal(t, time.Duration(math.MaxInt64), b.Delay(100))
	assert.Equal(t, time.Duration(math.MaxInt64), b.Delay(1000))

	// Large bases saturate on the multiply, not just the shift.
	big := retry.Exponential(time.Duration(math.MaxInt64 / 4))
	assert.Equal(t, time.Duration(math.MaxInt64), big.Delay(10))
}

func TestExponential_firstAttemptIsBase(t *testing.T) {
	t.Parallel()

	// Attempt 1 yields exactly base under all three strategies.
	base := 250 * time.Millisecond
	for name, b := range map[string]retry.Backoff{
		"fixed":       retry.Fixed(base),
		"linear":      retry.Linear(base),
		"exponential": retry.Exponential(base),
	} {
		assert.Equal(t, base, b.Delay(1), name)
	}
}

func TestExponential_zeroAttempt(t *testing.T) {
	t.Parallel()

	b := retry.Exponential(100 * time.Millisecond)

	// Zero and negative attempts are treated as attempt 1.
	assert.Equal(t, 100*time.Millisecond, b.Delay(0))
	assert.Equal(t, 100*time.Millisecond, b.Delay(-1))
}

func TestWithCap(t *testing.T) {
	t.Parallel()

	b := retry.WithCap(500*time.Millisecond, retry.Exponential(100*time.Millisecond))

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 500 * time.Millisecond},  // capped
		{5, 500 * time.Millisecond},  // capped
		{10, 500 * time.Millisecond}, // capped
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, b.Delay(tc.attempt), "attempt %d", tc.attempt)
	}
}

func TestWithMin(t *testing.T) {
	t.Parallel()

	b := retry.WithMin(150*time.Millisecond, retry.Linear(50*time.Millisecond))

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 150 * time.Millisecond}, // 50ms < 150ms min
		{2, 150 * time.Millisecond}, // 100ms < 150ms min
		{3, 150 * time.Millisecond}, // 150ms = min
		{4, 200 * time.Millisecond}, // 200ms > min
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, b.Delay(tc.attempt), "attempt %d", tc.attempt)
	}
}

func TestBackoffFunc(t *testing.T) {
	t.Parallel()

	custom := retry.BackoffFunc(func(attempt int) time.Duration {
		return time.Duration(attempt*attempt) * 10 * time.Millisecond
	})

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 10 * time.Millisecond},
		{2, 40 * time.Millisecond},
		{3, 90 * time.Millisecond},
		{4, 160 * time.Millisecond},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, custom.Delay(tc.attempt), "attempt %d", tc.attempt)
	}
}

func TestComposedBackoff(t *testing.T) {
	t.Parallel()

	b := retry.WithMin(50*time.Millisecond,
		retry.WithCap(1*time.Second,
			retry.Exponential(10*time.Millisecond),
		),
	)

	assert.Equal(t, 50*time.Millisecond, b.Delay(1))  // 10ms raised to min
	assert.Equal(t, 50*time.Millisecond, b.Delay(2))  // 20ms raised to min
	assert.Equal(t, 160*time.Millisecond, b.Delay(5)) // untouched
	assert.Equal(t, 1*time.Second, b.Delay(10))       // 5.12s capped
}
