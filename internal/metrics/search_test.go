package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/usecase/search"
)

func TestSearchObserver_RecordsEvent(t *testing.T) {
	before := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("test_op"))
	zeroBefore := testutil.ToFloat64(SearchZeroResultsTotal.WithLabelValues("test_op"))

	var obs search.Observer = SearchObserver{}
	obs.Observe(context.Background(), search.Event{Op: "test_op", Query: "dhaka", Results: 3, Latency: time.Millisecond})
	obs.Observe(context.Background(), search.Event{Op: "test_op", Query: "zzz", Results: 0, Latency: time.Millisecond})

	if got := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("test_op")) - before; got != 2 {
		t.Errorf("expected 2 requests recorded, got %f", got)
	}
	if got := testutil.ToFloat64(SearchZeroResultsTotal.WithLabelValues("test_op")) - zeroBefore; got != 1 {
		t.Errorf("expected 1 zero-result call, got %f", got)
	}
	if testutil.CollectAndCount(SearchDuration) == 0 {
		t.Error("expected search_duration_seconds observations")
	}
	if testutil.CollectAndCount(SearchResults) == 0 {
		t.Error("expected search_results observations")
	}
}

type fakeCatalog map[category.Category]int

func (f fakeCatalog) Categories() []category.Category {
	return []category.Category{category.Division, category.District}
}

func (f fakeCatalog) Count(c category.Category) int { return f[c] }

func TestSetCatalogSize(t *testing.T) {
	SetCatalogSize(fakeCatalog{category.Division: 8, category.District: 64})

	if got := testutil.ToFloat64(CatalogEntities.WithLabelValues("division")); got != 8 {
		t.Errorf("expected 8 divisions, got %f", got)
	}
	if got := testutil.ToFloat64(CatalogEntities.WithLabelValues("district")); got != 64 {
		t.Errorf("expected 64 districts, got %f", got)
	}
}

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()
}
