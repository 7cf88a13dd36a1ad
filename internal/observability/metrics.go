package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quakereport"

// Metrics holds the Prometheus counters, histograms, and gauges for feed loading.
type Metrics struct {
	// Fetch metrics.
	FetchRequests  *prometheus.CounterVec // labels: outcome={success,error,circuit_open}
	FetchDuration  prometheus.Histogram
	RecordsParsed  prometheus.Counter
	RecordsSkipped prometheus.Counter

	// Loader metrics.
	LoadsStarted       prometheus.Counter
	LoadsIgnored       prometheus.Counter
	LoaderState        prometheus.Gauge       // 0 idle, 1 loading, 2 loaded, 3 failed
	ConnectivityChecks *prometheus.CounterVec // labels: result={online,offline}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.RecordsParsed,
		m.RecordsSkipped,
		m.LoadsStarted,
		m.LoadsIgnored,
		m.LoaderState,
		m.ConnectivityChecks,
	)

	return m
}

// NewUnregisteredMetrics creates Metrics that are never exported. One-shot
// CLI commands use it.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "USGS feed requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a USGS feed request including body parsing.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RecordsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_parsed_total",
			Help:      "Earthquake records parsed from the feed.",
		}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Malformed feed features skipped during parsing.",
		}),
		LoadsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_started_total",
			Help:      "Background loads started.",
		}),
		LoadsIgnored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_ignored_total",
			Help:      "Load triggers ignored because a load was already in flight.",
		}),
		LoaderState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loader_state",
			Help:      "Current loader state: 0 idle, 1 loading, 2 loaded, 3 failed.",
		}),
		ConnectivityChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connectivity_checks_total",
			Help:      "Connectivity checks by result.",
		}, []string{"result"}),
	}
}
