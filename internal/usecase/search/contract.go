package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
)

// CatalogReader exposes the frozen catalog to the search core.
// Implementations must not mutate what they return after construction.
type CatalogReader interface {
	Categories() []category.Category
	Entities(c category.Category) []*entity.Entity
}

// Event describes one completed search call.
type Event struct {
	Op      string
	Query   string
	Results int
	Latency time.Duration
}

// Observer receives an Event after every Service call. Must be safe for concurrent use.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// Observers fans an Event out to each observer in order.
type Observers []Observer

// Observe implements Observer.
func (obs Observers) Observe(ctx context.Context, ev Event) {
	for _, o := range obs {
		o.Observe(ctx, ev)
	}
}

// Source is one category's entities, in catalog order, for autocomplete.
type Source struct {
	Category category.Category
	Entities []*entity.Entity
}
