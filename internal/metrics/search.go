package metrics

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/usecase/search"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdgeo",
			Name:      "search_requests_total",
			Help:      "Total number of search calls",
		},
		[]string{"op"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bdgeo",
			Name:      "search_duration_seconds",
			Help:      "Search call duration in seconds",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"op"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bdgeo",
			Name:      "search_results",
			Help:      "Number of results returned per search call",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"op"},
	)

	SearchZeroResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bdgeo",
			Name:      "search_zero_results_total",
			Help:      "Total search calls that returned nothing",
		},
		[]string{"op"},
	)

	CatalogEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "bdgeo",
			Name:      "catalog_entities",
			Help:      "Number of loaded catalog entities",
		},
		[]string{"category"},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers search and catalog metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SearchResults)
		prometheus.MustRegister(SearchZeroResultsTotal)
		prometheus.MustRegister(CatalogEntities)
	})
}

// SearchObserver records search.Events as Prometheus metrics.
type SearchObserver struct{}

// Observe implements search.Observer.
func (SearchObserver) Observe(_ context.Context, ev search.Event) {
	SearchRequestsTotal.WithLabelValues(ev.Op).Inc()
	SearchDuration.WithLabelValues(ev.Op).Observe(ev.Latency.Seconds())
	SearchResults.WithLabelValues(ev.Op).Observe(float64(ev.Results))
	if ev.Results == 0 {
		SearchZeroResultsTotal.WithLabelValues(ev.Op).Inc()
	}
}

// catalogCounter is the part of the catalog the gauge needs.
type catalogCounter interface {
	Categories() []category.Category
	Count(c category.Category) int
}

// SetCatalogSize publishes per-category entity counts.
func SetCatalogSize(c catalogCounter) {
	for _, cat := range c.Categories() {
		CatalogEntities.WithLabelValues(string(cat)).Set(float64(c.Count(cat)))
	}
}
