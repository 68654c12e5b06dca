package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the resolver service.
type Metrics struct {
	ResolveRequests *prometheus.CounterVec // labels: mode={location,text}, outcome={suggested,deterministic}
	FallbackTotal   *prometheus.CounterVec // labels: mode={location,text}, reason={suggester_error,no_registry_match}
	AreaRequests    *prometheus.CounterVec // labels: outcome={ok,placeholder}

	// Generative endpoint metrics.
	InferenceRequests *prometheus.CounterVec   // labels: method={suggest,describe}, outcome={success,error}
	InferenceDuration *prometheus.HistogramVec // labels: method={suggest,describe}
	AreaCache         *prometheus.CounterVec   // labels: result={hit,miss}

	RegistrySize prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.ResolveRequests,
		m.FallbackTotal,
		m.AreaRequests,
		m.InferenceRequests,
		m.InferenceDuration,
		m.AreaCache,
		m.RegistrySize,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ResolveRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jurisdictiond",
			Name:      "resolve_requests_total",
			Help:      "Resolution requests by query mode and ranking outcome.",
		}, []string{"mode", "outcome"}),
		FallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jurisdictiond",
			Name:      "resolve_fallback_total",
			Help:      "Disambiguation fallbacks by query mode and reason.",
		}, []string{"mode", "reason"}),
		AreaRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jurisdictiond",
			Name:      "area_requests_total",
			Help:      "Area label requests by outcome.",
		}, []string{"outcome"}),
		InferenceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jurisdictiond",
			Name:      "inference_requests_total",
			Help:      "Generative endpoint requests by method and outcome.",
		}, []string{"method", "outcome"}),
		InferenceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jurisdictiond",
			Name:      "inference_duration_seconds",
			Help:      "Generative endpoint request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 25},
		}, []string{"method"}),
		AreaCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jurisdictiond",
			Name:      "area_cache_total",
			Help:      "Area label cache lookups by result.",
		}, []string{"result"}),
		RegistrySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jurisdictiond",
			Name:      "registry_stations",
			Help:      "Number of stations loaded in the registry.",
		}),
	}
}
