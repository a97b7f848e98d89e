// Package metrics exposes Prometheus instrumentation of remote calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ResultSuccess is the result label of a successful call.
const ResultSuccess = "success"

// Metrics holds the remote call collectors.
//
//   - remote_calls_total{feature,operation,result}: every terminated call, result is
//     "success" or the error tag
//   - remote_call_duration_seconds{feature,operation}: latency including local checks
//   - session_invalidations_total{feature}: credentials cleared after a backend rejection
type Metrics struct {
	Calls                *prometheus.CounterVec
	CallDuration         *prometheus.HistogramVec
	SessionInvalidations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg registers nothing, which keeps tests independent of the default registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_calls_total",
			Help:      "Total number of remote calls by terminal result",
		}, []string{"feature", "operation", "result"}),
		CallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_call_duration_seconds",
			Help:      "Duration of remote calls in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"feature", "operation"}),
		SessionInvalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_invalidations_total",
			Help:      "Total number of credentials cleared after the backend rejected them",
		}, []string{"feature"}),
	}
}

// ObserveCall records one terminated call. Safe on a nil receiver.
func (m *Metrics) ObserveCall(feature, operation, result string, duration time.Duration) {
	if m == nil {
		return
	}

	m.Calls.WithLabelValues(feature, operation, result).Inc()
	m.CallDuration.WithLabelValues(feature, operation).Observe(duration.Seconds())
}

// ObserveInvalidation records a credential cleared because of a backend rejection.
// Safe on a nil receiver.
func (m *Metrics) ObserveInvalidation(feature string) {
	if m == nil {
		return
	}

	m.SessionInvalidations.WithLabelValues(feature).Inc()
}
