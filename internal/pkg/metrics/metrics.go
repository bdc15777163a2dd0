package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "listings"

// Outcome labels для geocode_requests_total
const (
	OutcomeSuccess   = "success"
	OutcomeNoResults = "no_results"
	OutcomeAuth      = "auth_error"
	OutcomeQuota     = "quota_exceeded"
	OutcomeProvider  = "provider_error"
)

// Metrics - счетчики Prometheus для геокодирования, seed и воркера
type Metrics struct {
	GeocodeRequests    *prometheus.CounterVec // labels: outcome
	GeocodeAPIDuration prometheus.Histogram
	SeedItems          *prometheus.CounterVec // labels: result={geocoded,fallback}
	WorkerEvents       *prometheus.CounterVec // labels: result={updated,failed,skipped}
}

// New создает метрики и регистрирует их в reg.
// В тестах передавайте prometheus.NewRegistry(), чтобы избежать паники
// "duplicate metrics collector registration".
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding provider calls by outcome.",
		}, []string{"outcome"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SeedItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seed_items_total",
			Help:      "Seeded listings by geocoding result.",
		}, []string{"result"}),
		WorkerEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_worker_events_total",
			Help:      "Re-geocode events processed by the worker, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.GeocodeRequests,
		m.GeocodeAPIDuration,
		m.SeedItems,
		m.WorkerEvents,
	)

	return m
}

// NewForTesting - метрики на отдельном реестре
func NewForTesting() *Metrics {
	return New(prometheus.NewRegistry())
}
