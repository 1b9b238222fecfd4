// Package metrics defines the Prometheus collectors of the ledger.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/circleledger/internal/models"
)

const namespace = "ledger"

// Result label values.
const (
	ResultOK         = "ok"
	ResultValidation = "validation"
	ResultNotFound   = "not_found"
	ResultConflict   = "conflict"
	ResultDenied     = "denied"
	ResultInvariant  = "invariant"
	ResultError      = "error"
)

// Metrics records ledger operations. A nil *Metrics is valid and records nothing.
type Metrics struct {
	operations          *prometheus.CounterVec
	duration            *prometheus.HistogramVec
	invariantViolations prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Ledger operations by operation and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of ledger operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		invariantViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invariant_violations_total",
			Help:      "Broken ledger invariants. Any increase needs an operator.",
		}),
	}
	reg.MustRegister(m.operations, m.duration, m.invariantViolations)
	return m
}

// NewRegistry returns a registry with the Go and process collectors plus the
// ledger collectors.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, New(reg)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Observe records one finished operation.
func (m *Metrics) Observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := Result(err)
	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if result == ResultInvariant {
		m.invariantViolations.Inc()
	}
}

// Result maps err to its result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case models.IsInvariantViolation(err):
		return ResultInvariant
	case models.IsValidation(err):
		return ResultValidation
	case models.IsNotFound(err):
		return ResultNotFound
	case models.IsConflict(err):
		return ResultConflict
	case errors.Is(err, models.ErrPermissionDenied):
		return ResultDenied
	}
	return ResultError
}
