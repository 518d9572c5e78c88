// Package metrics defines the Prometheus collectors recorded while crawling
// and writes them in the node-exporter textfile format.
//
// All methods are safe on a nil *Collector, so callers that do not want
// metrics simply pass nil.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes used as the "outcome" label of sitegrep_fetches_total.
const (
	OutcomeIndexed = "indexed"
	OutcomeFailed  = "failed"
)

// Search result kinds used as the "result" label of sitegrep_searches_total.
const (
	searchHit  = "hit"
	searchZero = "zero_result"
)

// Collector holds the sitegrep metrics and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	FetchesTotal       *prometheus.CounterVec
	FetchDuration      prometheus.Histogram
	LinksOutOfScope    prometheus.Counter
	IndexedPages       prometheus.Gauge
	SearchesTotal      *prometheus.CounterVec
	SearchResultsCount prometheus.Histogram
}

// New creates a Collector with its own registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitegrep_fetches_total",
				Help: "Pages dispatched for fetching, by outcome (indexed, failed).",
			},
			[]string{"outcome"},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitegrep_fetch_duration_seconds",
				Help:    "Time spent fetching and extracting one page.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		LinksOutOfScope: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sitegrep_links_out_of_scope_total",
				Help: "Discovered links dropped because they are outside the crawl scope.",
			},
		),
		IndexedPages: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sitegrep_indexed_pages",
				Help: "Pages currently held in the index.",
			},
		),
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sitegrep_searches_total",
				Help: "Keyword searches by result type (hit, zero_result).",
			},
			[]string{"result"},
		),
		SearchResultsCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sitegrep_search_results_count",
				Help:    "Number of URLs returned per search.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
			},
		),
	}
}

// ObserveFetch records one dispatched page.
func (c *Collector) ObserveFetch(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.FetchesTotal.WithLabelValues(outcome).Inc()
	c.FetchDuration.Observe(d.Seconds())
	if outcome == OutcomeIndexed {
		c.IndexedPages.Inc()
	}
}

// IncOutOfScope records one link dropped by the scope test.
func (c *Collector) IncOutOfScope() {
	if c == nil {
		return
	}
	c.LinksOutOfScope.Inc()
}

// ObserveSearch records one search returning n URLs.
func (c *Collector) ObserveSearch(n int) {
	if c == nil {
		return
	}
	result := searchHit
	if n == 0 {
		result = searchZero
	}
	c.SearchesTotal.WithLabelValues(result).Inc()
	c.SearchResultsCount.Observe(float64(n))
}

// ReleaseIndex subtracts the pages of a closed index from the gauge.
func (c *Collector) ReleaseIndex(pages int) {
	if c == nil {
		return
	}
	c.IndexedPages.Sub(float64(pages))
}
