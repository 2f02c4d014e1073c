package search

import (
	"context"
	"sync"
	"testing"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
)

// mockCatalog implements CatalogReader for tests.
type mockCatalog struct {
	order    []category.Category
	entities map[category.Category][]*entity.Entity
}

func (m *mockCatalog) Categories() []category.Category { return m.order }

func (m *mockCatalog) Entities(c category.Category) []*entity.Entity { return m.entities[c] }

func makeEntity(id, name, bnName, slug, parentID string) *entity.Entity {
	e := entity.Reconstruct(id, name, bnName, slug, parentID, nil)
	return &e
}

// testCatalog is a small slice of the real hierarchy.
func testCatalog(t *testing.T) *mockCatalog {
	t.Helper()
	return &mockCatalog{
		order: []category.Category{category.Division, category.District, category.Upazila},
		entities: map[category.Category][]*entity.Entity{
			category.Division: {
				makeEntity("1", "Barishal", "বরিশাল", "barishal", ""),
				makeEntity("2", "Chattogram", "চট্টগ্রাম", "chattogram", ""),
				makeEntity("3", "Dhaka", "ঢাকা", "dhaka", ""),
			},
			category.District: {
				makeEntity("47", "Dhaka", "ঢাকা", "dhaka", "3"),
				makeEntity("41", "Gazipur", "গাজীপুর", "gazipur", "3"),
				makeEntity("15", "Chattogram", "চট্টগ্রাম", "chattogram", "2"),
			},
			category.Upazila: {
				makeEntity("1", "Dhamrai", "ধামরাই", "dhamrai", "47"),
				makeEntity("2", "Savar", "সাভার", "savar", "47"),
				makeEntity("3", "Gazipur Sadar", "গাজীপুর সদর", "gazipur-sadar", "41"),
			},
		},
	}
}

// recordingObserver captures events.
type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingObserver) Observe(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingObserver) ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Op
	}
	return out
}
