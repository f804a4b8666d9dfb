package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	providerRequests *prometheus.CounterVec
	parseFailures    *prometheus.CounterVec
	runDuration      prometheus.Histogram
	documents        prometheus.Gauge
	tickers          prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		providerRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalyst_provider_requests_total",
				Help: "Provider requests by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		parseFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalyst_parse_failures_total",
				Help: "Provider replies that failed all parse tiers",
			},
			[]string{"provider"},
		),
		runDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalyst_run_duration_seconds",
				Help:    "Duration of one full screen run",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
		documents: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalyst_documents_ingested",
				Help: "Documents ingested in the last run",
			},
		),
		tickers: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalyst_tickers_discovered",
				Help: "Distinct tickers discovered in the last run",
			},
		),
	}
}

// RecordProviderRequest records one provider call outcome ("ok" or an
// error kind label).
func (r *Recorder) RecordProviderRequest(provider, outcome string) {
	r.providerRequests.WithLabelValues(provider, outcome).Inc()
}

// RecordParseFailure records a reply that defeated the tolerant parser.
func (r *Recorder) RecordParseFailure(provider string) {
	r.parseFailures.WithLabelValues(provider).Inc()
}

// RecordRunDuration records one run's wall time in seconds.
func (r *Recorder) RecordRunDuration(seconds float64) {
	r.runDuration.Observe(seconds)
}

// RecordIngest records last-run ingestion volumes.
func (r *Recorder) RecordIngest(documents, tickers int) {
	r.documents.Set(float64(documents))
	r.tickers.Set(float64(tickers))
}
