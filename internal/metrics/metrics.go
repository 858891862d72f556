package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shipment_balancer"

// Metrics bundles the Prometheus instruments exported by the service. All
// methods are nil-safe so callers can run without instrumentation in tests.
type Metrics struct {
	registry *prometheus.Registry

	balanceRequests *prometheus.CounterVec
	balanceDuration *prometheus.HistogramVec
	balanceSpread   *prometheus.HistogramVec
}

// New creates a Metrics instance backed by its own registry, so the exposition
// endpoint serves only the service's instruments.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		balanceRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_requests_total",
			Help:      "Balance requests processed, partitioned by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		balanceDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "balance_duration_seconds",
			Help:      "Time spent computing a packing.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),
		balanceSpread: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "balance_spread_weight",
			Help:      "Weight spread of returned packings.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"strategy"}),
	}
}

// Handler returns the Prometheus exposition endpoint for the registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveBalance records one completed balance computation.
func (m *Metrics) ObserveBalance(strategy string, seconds float64, spread int) {
	if m == nil {
		return
	}
	m.balanceRequests.WithLabelValues(strategy, "ok").Inc()
	m.balanceDuration.WithLabelValues(strategy).Observe(seconds)
	m.balanceSpread.WithLabelValues(strategy).Observe(float64(spread))
}

// ObserveRejected records a balance request that failed validation.
func (m *Metrics) ObserveRejected(strategy string) {
	if m == nil {
		return
	}
	m.balanceRequests.WithLabelValues(strategy, "rejected").Inc()
}
