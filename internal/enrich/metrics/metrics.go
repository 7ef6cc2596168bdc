package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the enrichment engine.
type Metrics struct {
	// Full enrichment latency, crawl and directory calls included
	EnrichLatency prometheus.Histogram

	// Enrichment outcomes: "full", "email_only", "name_only", "empty"
	Outcomes *prometheus.CounterVec

	// Candidates discovered by source
	Candidates *prometheus.CounterVec

	// Directory API calls by endpoint and result
	DirectoryCalls *prometheus.CounterVec

	// Pages fetched by the crawler
	PagesCrawled prometheus.Counter
}

// New creates a Metrics instance with all enrichment metrics registered.
func New() *Metrics {
	return &Metrics{
		EnrichLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "surge_enrich_duration_seconds",
			Help:    "Duration of full contact enrichment per firm",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "surge_enrich_outcomes_total",
			Help: "Enrichment outcomes by completeness of the contact found",
		}, []string{"outcome"}),
		Candidates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "surge_enrich_candidates_total",
			Help: "Contact candidates discovered by source",
		}, []string{"source"}),
		DirectoryCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "surge_directory_requests_total",
			Help: "Directory service requests by endpoint and result",
		}, []string{"endpoint", "result"}),
		PagesCrawled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "surge_pages_crawled_total",
			Help: "Pages fetched by the site crawler",
		}),
	}
}

// ObserveEnrichLatency records the duration of one enrichment call.
func (m *Metrics) ObserveEnrichLatency(d time.Duration) {
	if m != nil {
		m.EnrichLatency.Observe(d.Seconds())
	}
}

// IncrementOutcome records the completeness of one enrichment result.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome).Inc()
	}
}

// AddCandidates records candidates discovered from a source.
func (m *Metrics) AddCandidates(source string, n int) {
	if m != nil && n > 0 {
		m.Candidates.WithLabelValues(source).Add(float64(n))
	}
}

// IncrementDirectoryCall records one directory API request.
func (m *Metrics) IncrementDirectoryCall(endpoint, result string) {
	if m != nil {
		m.DirectoryCalls.WithLabelValues(endpoint, result).Inc()
	}
}

// IncrementPagesCrawled records one fetched page.
func (m *Metrics) IncrementPagesCrawled() {
	if m != nil {
		m.PagesCrawled.Inc()
	}
}
