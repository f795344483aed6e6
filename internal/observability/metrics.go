package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the data layer.
type Metrics struct {
	ProviderRequests   *prometheus.CounterVec // labels: provider, outcome={success,error}
	SyntheticFallbacks prometheus.Counter
	StaleDiscards      prometheus.Counter
	HistoryCache       *prometheus.CounterVec // labels: result={hit,miss,expired,corrupt}
	SnapshotRefreshes  prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_data",
			Name:      "provider_requests_total",
			Help:      "Upstream provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		SyntheticFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_data",
			Name:      "synthetic_fallbacks_total",
			Help:      "Forecast requests served from the synthetic provider.",
		}),
		StaleDiscards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_data",
			Name:      "stale_discards_total",
			Help:      "Fetch results discarded because a newer request superseded them.",
		}),
		HistoryCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_data",
			Name:      "history_cache_total",
			Help:      "Historical cache lookups by result.",
		}, []string{"result"}),
		SnapshotRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_data",
			Name:      "snapshot_refreshes_total",
			Help:      "Scheduled snapshot refresh runs completed.",
		}),
	}
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ProviderRequests,
		m.SyntheticFallbacks,
		m.StaleDiscards,
		m.HistoryCache,
		m.SnapshotRefreshes,
	)
	return m
}

// NewMetricsForTesting creates unregistered collectors so tests don't panic
// with "already registered".
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
