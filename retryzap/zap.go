// Package retryzap provides retry hooks that log through zap.
package retryzap

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/retrykit/retry"
)

// Hook returns an OnRetry hook that logs each retry at Warn level with the
// attempt number, the error being retried, and the delay about to be
// applied.
func Hook[T any](log *zap.Logger) retry.OnRetryFunc[T] {
	return func(_ context.Context, attempt int, _ T, err error, delay time.Duration) {
		log.Warn("retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
			zap.Duration("delay", delay),
		)
	}
}

// GiveUpHook returns an OnGiveUp hook that logs at Error level once the
// policy stops retrying without the condition being met.
func GiveUpHook[T any](log *zap.Logger) retry.OnGiveUpFunc[T] {
	return func(_ context.Context, _ T, err error, attempts int) {
		log.Error("giving up",
			zap.Int("attempts", attempts),
			zap.Error(err),
		)
	}
}

// SuccessHook returns an OnSuccess hook that logs recoveries, i.e. runs
// that needed more than one attempt, at Info level.
func SuccessHook(log *zap.Logger) retry.OnSuccessFunc {
	return func(_ context.Context, attempts int) {
		if attempts > 1 {
			log.Info("recovered", zap.Int("attempts", attempts))
		}
	}
}
