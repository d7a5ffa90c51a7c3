// Package retryprom provides retry hooks that record Prometheus metrics.
package retryprom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/retrykit/retry"
)

// Metrics holds the collectors the hooks record into. One Metrics value can
// serve every policy in a process; the operation label tells them apart.
type Metrics struct {
	retries *prometheus.CounterVec
	giveUps *prometheus.CounterVec
	delay   *prometheus.HistogramVec
}

// New creates and registers the retry collectors on reg under the given
// namespace.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "retry",
				Name:      "retries_total",
				Help:      "Total number of retried attempts.",
			},
			[]string{"operation"},
		),
		giveUps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "retry",
				Name:      "give_ups_total",
				Help:      "Total number of runs that exhausted their retry policy.",
			},
			[]string{"operation"},
		),
		delay: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "retry",
				Name:      "delay_seconds",
				Help:      "Backoff delay applied before each retry.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"operation"},
		),
	}
}

// Hook returns an OnRetry hook that counts retries and observes the applied
// delay for the named operation.
func Hook[T any](m *Metrics, operation string) retry.OnRetryFunc[T] {
	return func(_ context.Context, _ int, _ T, _ error, delay time.Duration) {
		m.retries.WithLabelValues(operation).Inc()
		m.delay.WithLabelValues(operation).Observe(delay.Seconds())
	}
}

// GiveUpHook returns an OnGiveUp hook that counts exhausted runs for the
// named operation.
func GiveUpHook[T any](m *Metrics, operation string) retry.OnGiveUpFunc[T] {
	return func(_ context.Context, _ T, _ error, _ int) {
		m.giveUps.WithLabelValues(operation).Inc()
	}
}
