package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Operation is the unit of work a policy retries. Each invocation must be
// independent; the engine does not enforce idempotence, so the caller is
// responsible for making repeated invocations safe.
type Operation[T any] func(ctx context.Context) (T, error)

// OnRetryFunc is called once per retry with the result being retried, just
// before the delay suspension. It is never called for the attempt that ends
// the loop.
type OnRetryFunc[T any] func(ctx context.Context, attempt int, v T, err error, delay time.Duration)

// OnSuccessFunc is called when the stop condition accepts a result,
// with the number of attempts it took.
type OnSuccessFunc func(ctx context.Context, attempts int)

// OnGiveUpFunc is called when the loop stops without the condition being
// met: attempts exhausted or the time budget spent. The final result is
// still returned to the caller as-is.
type OnGiveUpFunc[T any] func(ctx context.Context, v T, err error, attempts int)

// Until starts building a policy that retries an operation until cond
// accepts its result. The zero configuration retries forever with no delay
// between attempts; see StopAfter, Fixed, Linear, and Exponential.
func Until[T any](cond Condition[T]) *Builder[T] {
	return &Builder[T]{
		cond:    cond,
		backoff: Fixed(0),
		jitter:  NoJitter(),
		clock:   realClock{},
	}
}

// UntilOK is shorthand for Until(OK[T]()): retry until the operation
// returns a nil error.
func UntilOK[T any]() *Builder[T] {
	return Until(OK[T]())
}

// Builder accumulates retry configuration through method chaining. Builders
// are not safe for concurrent mutation; call Build to freeze the
// configuration into a Policy that is.
type Builder[T any] struct {
	cond        Condition[T]
	backoff     Backoff
	jitter      Jitter
	maxAttempts int
	maxDelay    time.Duration
	maxDuration time.Duration
	onRetry     OnRetryFunc[T]
	onSuccess   OnSuccessFunc
	onGiveUp    OnGiveUpFunc[T]
	clock       Clock
	src         source
	collect     bool
}

// Fixed waits the same duration between every retry. Replaces any
// previously chosen backoff.
func (b *Builder[T]) Fixed(d time.Duration) *Builder[T] {
	b.backoff = Fixed(d)
	return b
}

// Linear waits base * attempt between retries. Replaces any previously
// chosen backoff.
func (b *Builder[T]) Linear(base time.Duration) *Builder[T] {
	b.backoff = Linear(base)
	return b
}

// Exponential waits base * 2^(attempt-1) between retries, saturating
// instead of overflowing. Replaces any previously chosen backoff.
func (b *Builder[T]) Exponential(base time.Duration) *Builder[T] {
	b.backoff = Exponential(base)
	return b
}

// Backoff sets a custom backoff strategy.
func (b *Builder[T]) Backoff(backoff Backoff) *Builder[T] {
	b.backoff = backoff
	return b
}

// FullJitter randomizes each delay uniformly over [0, delay]. Replaces any
// previously chosen jitter.
func (b *Builder[T]) FullJitter() *Builder[T] {
	b.jitter = FullJitter()
	return b
}

// EqualJitter randomizes half of each delay, yielding [delay/2, delay].
// Replaces any previously chosen jitter.
func (b *Builder[T]) EqualJitter() *Builder[T] {
	b.jitter = EqualJitter()
	return b
}

// DecorrelatedJitter picks each delay uniformly from [base, 3*previous],
// independent of the configured backoff. Replaces any previously chosen
// jitter.
func (b *Builder[T]) DecorrelatedJitter(base time.Duration) *Builder[T] {
	b.jitter = DecorrelatedJitter(base)
	return b
}

// NoJitter disables jitter, the default.
func (b *Builder[T]) NoJitter() *Builder[T] {
	b.jitter = NoJitter()
	return b
}

// Jitter sets a custom jitter strategy.
func (b *Builder[T]) Jitter(j Jitter) *Builder[T] {
	b.jitter = j
	return b
}

// StopAfter bounds the loop to at most n invocations of the operation.
// Without it the policy retries without bound, which ties up the calling
// goroutine until the condition is met or the context is cancelled; most
// callers want an explicit bound.
func (b *Builder[T]) StopAfter(n int) *Builder[T] {
	b.maxAttempts = n
	return b
}

// MaxDelay caps each delay after jitter has been applied. The cap is
// deliberately post-jitter: capping the raw delay instead would pile the
// jitter distribution up against the cap.
func (b *Builder[T]) MaxDelay(d time.Duration) *Builder[T] {
	b.maxDelay = d
	return b
}

// MaxDuration bounds the total elapsed time across all attempts, measured
// by the policy's clock. Delays are trimmed to the remaining budget and the
// loop stops once it is spent, even if attempts remain.
func (b *Builder[T]) MaxDuration(d time.Duration) *Builder[T] {
	b.maxDuration = d
	return b
}

// OnRetry sets a hook called before each retry sleep. The hook observes the
// result; it cannot alter it.
func (b *Builder[T]) OnRetry(fn OnRetryFunc[T]) *Builder[T] {
	b.onRetry = fn
	return b
}

// OnSuccess sets a hook called when the condition accepts a result.
func (b *Builder[T]) OnSuccess(fn OnSuccessFunc) *Builder[T] {
	b.onSuccess = fn
	return b
}

// OnGiveUp sets a hook called when attempts or the time budget run out.
func (b *Builder[T]) OnGiveUp(fn OnGiveUpFunc[T]) *Builder[T] {
	b.onGiveUp = fn
	return b
}

// Clock sets the timer backend. Useful for testing; see retrytest.
func (b *Builder[T]) Clock(c Clock) *Builder[T] {
	b.clock = c
	return b
}

// Rand rebinds the built-in jitter strategies to r instead of the shared
// process-wide generator, making the delay sequence reproducible from a
// seed. It has no effect on a custom Jitter.
func (b *Builder[T]) Rand(r *rand.Rand) *Builder[T] {
	b.src = r
	return b
}

// CollectErrors makes the final error an errors.Join of every attempt error
// when the loop gives up, instead of only the last one. errors.Is and
// errors.As work through the joined chain.
func (b *Builder[T]) CollectErrors() *Builder[T] {
	b.collect = true
	return b
}

// Build freezes the configuration into an immutable Policy. The builder can
// keep being modified afterwards without affecting the built policy.
func (b *Builder[T]) Build() *Policy[T] {
	jitter := b.jitter
	if b.src != nil {
		if s, ok := jitter.(sourced); ok {
			jitter = s.withSource(b.src)
		}
	}
	return &Policy[T]{
		cond:        b.cond,
		backoff:     b.backoff,
		jitter:      jitter,
		maxAttempts: b.maxAttempts,
		maxDelay:    b.maxDelay,
		maxDuration: b.maxDuration,
		onRetry:     b.onRetry,
		onSuccess:   b.onSuccess,
		onGiveUp:    b.onGiveUp,
		clock:       b.clock,
		collect:     b.collect,
	}
}

// Retry builds the policy and runs op under it.
func (b *Builder[T]) Retry(ctx context.Context, op Operation[T]) (T, error) {
	return b.Build().Retry(ctx, op)
}

// Policy is an immutable retry configuration. A single Policy may drive any
// number of concurrent executions; all per-run state lives inside Retry.
type Policy[T any] struct {
	cond        Condition[T]
	backoff     Backoff
	jitter      Jitter
	maxAttempts int
	maxDelay    time.Duration
	maxDuration time.Duration
	onRetry     OnRetryFunc[T]
	onSuccess   OnSuccessFunc
	onGiveUp    OnGiveUpFunc[T]
	clock       Clock
	collect     bool
}

// Retry invokes op until the stop condition accepts its result or the
// configured limits run out. The returned value and error are always those
// of the final attempt; the engine never substitutes an error of its own,
// so callers distinguish success from exhausted-failure by inspecting the
// result itself.
func (p *Policy[T]) Retry(ctx context.Context, op Operation[T]) (T, error) {
	var (
		prev     time.Duration
		errs     []error
		deadline time.Time
	)
	if p.maxDuration > 0 {
		deadline = p.clock.Now().Add(p.maxDuration)
	}

	for attempt := 1; ; attempt++ {
		v, err := op(ctx)

		// Terminal error short-circuits everything else.
		var stopped *stopError
		if err != nil && errors.As(err, &stopped) {
			return v, stopped.Unwrap()
		}

		if p.collect && err != nil {
			errs = append(errs, err)
		}

		if p.cond(v, err) {
			if p.onSuccess != nil {
				p.onSuccess(ctx, attempt)
			}
			return v, err
		}

		exhausted := p.maxAttempts > 0 && attempt >= p.maxAttempts
		spent := p.maxDuration > 0 && !p.clock.Now().Before(deadline)
		if exhausted || spent {
			if p.onGiveUp != nil {
				p.onGiveUp(ctx, v, err, attempt)
			}
			return v, p.finalErr(err, errs)
		}

		raw := p.backoff.Delay(attempt)
		delay := p.jitter.Jitter(raw, prev)
		if p.maxDelay > 0 && delay > p.maxDelay {
			delay = p.maxDelay
		}
		if p.maxDuration > 0 {
			remaining := deadline.Sub(p.clock.Now())
			if delay > remaining {
				delay = remaining
			}
			if delay <= 0 {
				if p.onGiveUp != nil {
					p.onGiveUp(ctx, v, err, attempt)
				}
				return v, p.finalErr(err, errs)
			}
		}

		if p.onRetry != nil {
			p.onRetry(ctx, attempt, v, err, delay)
		}

		if serr := p.clock.Sleep(ctx, delay); serr != nil {
			return v, p.finalErr(err, errs)
		}
		prev = delay
	}
}

func (p *Policy[T]) finalErr(last error, errs []error) error {
	if !p.collect || len(errs) == 0 {
		return last
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
