package result

import (
	"testing"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/field"
)

func TestNew(t *testing.T) {
	e := entity.Reconstruct("1", "Dhaka", "ঢাকা", "dhaka", "", nil)
	m := New(&e, category.District, 0.92, field.Primary)

	if m.Entity() != &e {
		t.Error("Entity() should return the referenced entity, not a copy")
	}
	if m.Category() != category.District {
		t.Errorf("Category() = %q", m.Category())
	}
	if m.Score() != 0.92 {
		t.Errorf("Score() = %f", m.Score())
	}
	if m.Field() != field.Primary {
		t.Errorf("Field() = %q", m.Field())
	}
}

func TestAggregate(t *testing.T) {
	d := entity.Reconstruct("3", "Dhaka", "ঢাকা", "dhaka", "", nil)
	z := entity.Reconstruct("47", "Dhaka", "ঢাকা", "dhaka", "3", nil)
	agg := Aggregate{Groups: []Group{
		{Category: category.Division, Matches: []Match{New(&d, category.Division, 1, field.Primary)}},
		{Category: category.District, Matches: []Match{New(&z, category.District, 1, field.Primary)}},
		{Category: category.Upazila},
	}}

	if agg.Total() != 2 {
		t.Errorf("Total() = %d, want 2", agg.Total())
	}
	if got := agg.Get(category.District); len(got) != 1 || got[0].Entity().ID() != "47" {
		t.Errorf("Get(district) = %v", got)
	}
	if got := agg.Get(category.Upazila); len(got) != 0 {
		t.Errorf("Get(upazila) = %v, want empty", got)
	}

	flat := agg.Flatten()
	if len(flat) != 2 || flat[0].Category() != category.Division {
		t.Errorf("Flatten() order wrong: %v", flat)
	}
}

func TestSuggestion(t *testing.T) {
	e := entity.Reconstruct("1", "Dhamrai", "ধামরাই", "dhamrai", "47", nil)
	s := NewSuggestion(&e, category.Upazila, field.Secondary)
	if s.Name() != "Dhamrai" || s.BnName() != "ধামরাই" {
		t.Errorf("names = %q/%q", s.Name(), s.BnName())
	}
	if s.Category() != category.Upazila || s.Field() != field.Secondary {
		t.Errorf("tags = %q/%q", s.Category(), s.Field())
	}
	if s.Entity() != &e {
		t.Error("Entity() should reference the catalog entity")
	}
}
