package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

// Jitter randomizes a computed backoff delay so that many callers retrying
// against the same resource do not wake up in lockstep. prev is the previous
// post-jitter delay of the current execution, or zero before the first retry;
// only the decorrelated strategy uses it.
type Jitter interface {
	Jitter(raw, prev time.Duration) time.Duration
}

// JitterFunc is an adapter that allows a function to be used as a Jitter.
type JitterFunc func(raw, prev time.Duration) time.Duration

// Jitter implements Jitter.
func (f JitterFunc) Jitter(raw, prev time.Duration) time.Duration {
	return f(raw, prev)
}

// source is the uniform random source the built-in jitter strategies draw
// from. *rand.Rand satisfies it.
type source interface {
	Int64N(n int64) int64
}

// globalSource draws from the shared process-wide generator.
type globalSource struct{}

func (globalSource) Int64N(n int64) int64 {
	return rand.Int64N(n)
}

// sourced is implemented by jitter strategies whose random source can be
// rebound, which is how Builder.Rand reaches the built-in strategies.
type sourced interface {
	withSource(src source) Jitter
}

// uniform returns a random duration in [0, max], inclusive on both ends.
func uniform(src source, max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	n := int64(max)
	if n < math.MaxInt64 {
		n++
	}
	return time.Duration(src.Int64N(n))
}

// NoJitter returns a jitter that passes the raw delay through unchanged.
func NoJitter() Jitter {
	return noJitter{}
}

type noJitter struct{}

func (noJitter) Jitter(raw, _ time.Duration) time.Duration {
	return raw
}

// FullJitter returns a jitter that picks a uniformly random delay between
// zero and the raw delay.
func FullJitter() Jitter {
	return fullJitter{src: globalSource{}}
}

type fullJitter struct {
	src source
}

func (j fullJitter) Jitter(raw, _ time.Duration) time.Duration {
	return uniform(j.src, raw)
}

func (j fullJitter) withSource(src source) Jitter {
	return fullJitter{src: src}
}

// EqualJitter returns a jitter that keeps half of the raw delay and
// randomizes the other half, yielding a delay in [raw/2, raw].
func EqualJitter() Jitter {
	return equalJitter{src: globalSource{}}
}

type equalJitter struct {
	src source
}

func (j equalJitter) Jitter(raw, _ time.Duration) time.Duration {
	if raw <= 0 {
		return 0
	}
	half := raw / 2
	return half + uniform(j.src, raw-half)
}

func (j equalJitter) withSource(src source) Jitter {
	return equalJitter{src: src}
}

// DecorrelatedJitter returns a jitter that picks the next delay uniformly
// between base and three times the previous delay, ignoring the raw backoff
// value entirely. The first retry treats the previous delay as base, so the
// result is never below base.
func DecorrelatedJitter(base time.Duration) Jitter {
	return decorrelatedJitter{base: base, src: globalSource{}}
}

type decorrelatedJitter struct {
	base time.Duration
	src  source
}

func (j decorrelatedJitter) Jitter(_, prev time.Duration) time.Duration {
	base := j.base
	if base < 0 {
		base = 0
	}
	if prev < base {
		prev = base
	}
	upper := time.Duration(math.MaxInt64)
	if int64(prev) <= math.MaxInt64/3 {
		upper = prev * 3
	}
	return base + uniform(j.src, upper-base)
}

func (j decorrelatedJitter) withSource(src source) Jitter {
	return decorrelatedJitter{base: j.base, src: src}
}
