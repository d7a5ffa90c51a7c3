package retrytest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrykit/retry/retrytest"
)

func TestClock_recordsSleeps(t *testing.T) {
	t.Parallel()

	clock := retrytest.NewClock()
	start := clock.Now()

	require.NoError(t, clock.Sleep(context.Background(), time.Second))
	require.NoError(t, clock.Sleep(context.Background(), 2*time.Second))

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, clock.Sleeps())
	assert.Equal(t, start.Add(3*time.Second), clock.Now())
}

func TestClock_advance(t *testing.T) {
	t.Parallel()

	clock := retrytest.NewClock()
	start := clock.Now()

	clock.Advance(time.Minute)

	assert.Equal(t, start.Add(time.Minute), clock.Now())
	assert.Empty(t, clock.Sleeps())
}

func TestClock_cancelledContext(t *testing.T) {
	t.Parallel()

	clock := retrytest.NewClock()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := clock.Sleep(ctx, time.Second)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, clock.Sleeps())
}

func TestClock_sleepsReturnsCopy(t *testing.T) {
	t.Parallel()

	clock := retrytest.NewClock()
	require.NoError(t, clock.Sleep(context.Background(), time.Second))

	sleeps := clock.Sleeps()
	sleeps[0] = time.Hour

	assert.Equal(t, []time.Duration{time.Second}, clock.Sleeps())
}
