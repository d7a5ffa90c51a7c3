// Package retry wraps fallible operations in declarative retry policies.
//
// A policy is assembled with a fluent builder: how the stop condition is
// evaluated, how many attempts to allow, how the delay between attempts
// grows, and how much randomness to mix into that delay so that many callers
// retrying against the same resource do not wake up in lockstep.
//
//   - Fluent builder: Until/UntilOK entry points, chainable configuration
//   - Composable backoff: Fixed, Linear, Exponential, WithCap, WithMin
//   - Jitter strategies: full, equal, and decorrelated, with seedable randomness
//   - Injectable Clock: control time in tests without real sleeps
//   - Hooks: OnRetry, OnSuccess, OnGiveUp for observability
//   - Pass-through results: the caller always receives the final attempt's own
//     value and error, never a synthetic "retries exhausted" error
//
// # Quick Start
//
//	user, err := retry.UntilOK[*User]().
//	    StopAfter(5).
//	    Exponential(100*time.Millisecond).
//	    FullJitter().
//	    Retry(ctx, func(ctx context.Context) (*User, error) {
//	        return client.FetchUser(ctx, id)
//	    })
//
// A policy built once can be reused across any number of concurrent
// executions:
//
//	policy := retry.UntilOK[[]byte]().
//	    StopAfter(3).
//	    Exponential(50*time.Millisecond).
//	    MaxDelay(2*time.Second).
//	    Build()
//
//	// Later, possibly from many goroutines:
//	body, err := policy.Retry(ctx, fetch)
//
// # Stop Conditions
//
// The condition sees each attempt's full result and decides whether to keep
// going. UntilOK stops on the first nil error. A custom condition is the
// mechanism for separating retriable from terminal failures:
//
//	retry.Until(func(resp *Response, err error) bool {
//	    if err != nil {
//	        return !isTransient(err) // stop on anything we can't retry
//	    }
//	    return resp.StatusCode < 500
//	})
//
// Alternatively, the operation itself can mark an error terminal with Stop:
//
//	func fetchUser(ctx context.Context) (*User, error) {
//	    user, err := db.Get(ctx, id)
//	    if errors.Is(err, sql.ErrNoRows) {
//	        return nil, retry.Stop(ErrNotFound) // don't retry "not found"
//	    }
//	    return user, err
//	}
//
// # Attempt Limits
//
// Without StopAfter a policy retries without bound, holding the calling
// goroutine until the condition is met or the context is cancelled. That is
// the documented default, not an error, but most callers should set a bound:
//
//	retry.UntilOK[T]().
//	    StopAfter(10).                 // at most 10 invocations
//	    MaxDuration(30*time.Second)    // or 30s of total elapsed time
//
// When the limits run out, the last result is returned exactly as the
// operation produced it. Callers that need to know how many attempts were
// made track it through the hooks.
//
// # Backoff and Jitter
//
// Backoff computes the raw delay from the attempt number; jitter randomizes
// it; MaxDelay caps the randomized value:
//
//	retry.UntilOK[T]().
//	    Exponential(100*time.Millisecond). // 100ms, 200ms, 400ms, ...
//	    EqualJitter().                     // keep half, randomize half
//	    MaxDelay(10*time.Second)           // cap applied after jitter
//
// DecorrelatedJitter stands alone: it derives each delay from the previous
// one rather than from the backoff, per the AWS architecture blog family of
// strategies.
//
// Custom strategies plug in through the Backoff and Jitter interfaces, or
// the BackoffFunc and JitterFunc adapters:
//
//	custom := retry.BackoffFunc(func(attempt int) time.Duration {
//	    return time.Duration(attempt*attempt) * 10 * time.Millisecond
//	})
//
// # Hooks
//
// Hooks observe the loop without coupling it to a logger or metrics system.
// OnRetry fires before each delay, never for the attempt that ends the loop:
//
//	retry.UntilOK[T]().
//	    OnRetry(func(ctx context.Context, attempt int, v T, err error, delay time.Duration) {
//	        logger.Warn("retrying", zap.Int("attempt", attempt), zap.Error(err))
//	    }).
//	    OnGiveUp(func(ctx context.Context, v T, err error, attempts int) {
//	        logger.Error("giving up", zap.Int("attempts", attempts))
//	    })
//
// The retryzap and retryprom subpackages provide ready-made hooks for zap
// logging and Prometheus metrics.
//
// # Testing
//
// Both collaborators that touch the outside world are injectable: the Clock
// that performs the suspension and the random source behind the built-in
// jitters. retrytest.Clock records requested sleeps instead of waiting, and
// Rand pins the jitter sequence to a seed:
//
//	clock := retrytest.NewClock()
//	_, err := retry.UntilOK[int]().
//	    StopAfter(3).
//	    Fixed(time.Second).
//	    Clock(clock).
//	    Rand(rand.New(rand.NewPCG(1, 2))).
//	    Retry(ctx, op)
//	// clock.Sleeps() holds the exact delays the policy applied.
package retry
