package bdgeo

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation outcomes. An empty outcome is a successful call that found
// nothing: no hits, no suggestions, no parent.
const (
	outcomeOK    = "ok"
	outcomeEmpty = "empty"
	outcomeError = "error"
)

// SDK operation names, used as the operation label.
const (
	opCatalogLoad    = "catalog.load"
	opSearch         = "search"
	opQuick          = "quick"
	opAutocomplete   = "autocomplete"
	opRegionGet      = "region.get"
	opRegionParent   = "region.parent"
	opRegionChildren = "region.children"
	opRegionAddress  = "region.address"
)

type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	results    *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bdgeo",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK calls by operation and outcome (ok, empty, error).",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bdgeo",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK call duration in seconds.",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05, .25},
		}, []string{"operation"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bdgeo",
			Subsystem: "sdk",
			Name:      "results",
			Help:      "Regions returned per successful SDK call.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 500},
		}, []string{"operation"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.results); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector, or adopts the one already registered
// by another Client on the same registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("bdgeo: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("bdgeo: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

func outcome(n int, err error) string {
	switch {
	case err != nil:
		return outcomeError
	case n == 0:
		return outcomeEmpty
	default:
		return outcomeOK
	}
}

// observer logs and counts SDK calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// observe records one call of op that returned n regions.
func (o *observer) observe(op string, start time.Time, n int, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	out := outcome(n, err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, out).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
		if err == nil {
			o.metrics.results.WithLabelValues(op).Observe(float64(n))
		}
	}

	if o.logger == nil {
		return
	}
	if err != nil {
		o.logger.Warn("bdgeo call failed", "op", op, "duration", dur, "error", err)
		return
	}
	o.logger.Debug("bdgeo call", "op", op, "outcome", out, "results", n, "duration", dur)
}
