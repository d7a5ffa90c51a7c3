// Package retrytest provides a manual clock for driving retry policies in
// tests without real wall-clock waiting.
package retrytest

import (
	"context"
	"sync"
	"time"
)

// Clock is a retry.Clock whose time only moves when a policy sleeps on it
// or the test advances it. Every requested sleep is recorded and returns
// immediately. Safe for concurrent use.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewClock returns a Clock starting at the current wall time.
func NewClock() *Clock {
	return &Clock{now: time.Now()}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep records d, advances the clock by d, and returns immediately.
// A cancelled context is honored before the sleep is recorded.
func (c *Clock) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// Advance moves the clock forward without recording a sleep, simulating
// time spent inside the operation itself.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleeps returns a copy of every delay the policy has slept for, in order.
func (c *Clock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.sleeps))
	copy(out, c.sleeps)
	return out
}
