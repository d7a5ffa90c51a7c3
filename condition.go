package retry

// Condition decides whether a completed attempt ends the retry loop. It is
// called once per attempt with that attempt's result; returning true stops,
// returning false retries. Conditions must not mutate external state.
type Condition[T any] func(v T, err error) bool

// OK returns a condition that stops retrying as soon as the operation
// succeeds. Any non-nil error is retried; use a custom condition (or Stop)
// to treat certain failures as terminal.
func OK[T any]() Condition[T] {
	return func(_ T, err error) bool {
		return err == nil
	}
}

// Not inverts a condition.
func Not[T any](cond Condition[T]) Condition[T] {
	return func(v T, err error) bool {
		return !cond(v, err)
	}
}

// Stop wraps an error to signal that it should not be retried.
// The retry loop will immediately return the unwrapped error.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return &stopError{err: err}
}

// stopError wraps an error that should not be retried.
type stopError struct {
	err error
}

func (e *stopError) Error() string {
	return e.err.Error()
}

func (e *stopError) Unwrap() error {
	return e.err
}
