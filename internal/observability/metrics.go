package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one run.
type Metrics struct {
	// Feed metrics.
	FetchRequests  *prometheus.CounterVec   // labels: feed, outcome={success,error}
	FetchDuration  *prometheus.HistogramVec // labels: feed
	RecordsFetched *prometheus.CounterVec   // labels: feed

	// Analysis metrics.
	SeriesPoints     *prometheus.GaugeVec   // labels: chart
	Projections      *prometheus.CounterVec // labels: outcome={projected,degenerate,error}
	DaysToSaturation prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.RecordsFetched,
		m.SeriesPoints,
		m.Projections,
		m.DaysToSaturation,
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
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "belcovid",
			Name:      "fetch_requests_total",
			Help:      "Epistat feed downloads by feed and outcome.",
		}, []string{"feed", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "belcovid",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a feed download and decode.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"feed"}),
		RecordsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "belcovid",
			Name:      "records_fetched_total",
			Help:      "Records decoded from each feed.",
		}, []string{"feed"}),
		SeriesPoints: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "belcovid",
			Name:      "series_points",
			Help:      "Number of daily points in the last chart built.",
		}, []string{"chart"}),
		Projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "belcovid",
			Name:      "saturation_projections_total",
			Help:      "Saturation projections by outcome.",
		}, []string{"outcome"}),
		DaysToSaturation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "belcovid",
			Name:      "days_to_saturation",
			Help:      "Last projected number of days until hospital beds are full.",
		}),
	}
}

// WriteTextfile dumps every metric of the default registry to path in the
// text exposition format, atomically.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
