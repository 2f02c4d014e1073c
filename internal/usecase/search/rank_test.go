package search

import (
	"testing"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
)

func TestRank_BlankQuery(t *testing.T) {
	cat := testCatalog(t)
	for _, q := range []string{"", "   ", "\t\n"} {
		got := Rank(cat.Entities(category.District), category.District, q, options.Defaults())
		if got == nil {
			t.Errorf("Rank(%q) returned nil, want empty slice", q)
		}
		if len(got) != 0 {
			t.Errorf("Rank(%q) = %d results, want 0", q, len(got))
		}
	}
}

func TestRank_SortedDescending(t *testing.T) {
	cat := testCatalog(t)
	got := Rank(cat.Entities(category.Upazila), category.Upazila, "Gazipur", options.Defaults())
	if len(got) == 0 {
		t.Fatal("expected results")
	}
	if got[0].Entity().Name() != "Gazipur Sadar" {
		t.Errorf("top = %q, want Gazipur Sadar", got[0].Entity().Name())
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score() > got[i-1].Score() {
			t.Errorf("not sorted at %d: %f > %f", i, got[i].Score(), got[i-1].Score())
		}
	}
}

func TestRank_StableOnTies(t *testing.T) {
	entities := []*entity.Entity{
		makeEntity("a", "Sadar", "সদর", "sadar-a", ""),
		makeEntity("b", "Mirpur", "মিরপুর", "mirpur", ""),
		makeEntity("c", "Sadar", "সদর", "sadar-c", ""),
		makeEntity("d", "Sadar", "সদর", "sadar-d", ""),
	}
	got := Rank(entities, category.Upazila, "Sadar", options.Defaults())
	if len(got) < 3 {
		t.Fatalf("expected at least 3 results, got %d", len(got))
	}
	want := []string{"a", "c", "d"}
	for i, id := range want {
		if got[i].Entity().ID() != id {
			t.Errorf("result[%d] = %s, want %s (input order on ties)", i, got[i].Entity().ID(), id)
		}
	}
}

func TestRank_Limit(t *testing.T) {
	entities := make([]*entity.Entity, 0, 20)
	for i := range 20 {
		id := string(rune('a' + i))
		entities = append(entities, makeEntity(id, "Sadar "+id, "সদর", "sadar-"+id, ""))
	}

	got := Rank(entities, category.Upazila, "Sadar", options.Defaults())
	if len(got) != options.DefaultLimit {
		t.Errorf("len = %d, want default limit %d", len(got), options.DefaultLimit)
	}

	three := options.Defaults().With(options.Overrides{Limit: options.Ptr(3)})
	if got := Rank(entities, category.Upazila, "Sadar", three); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}

	for _, limit := range []int{0, -5} {
		opts := options.Defaults().With(options.Overrides{Limit: options.Ptr(limit)})
		got := Rank(entities, category.Upazila, "Sadar", opts)
		if got == nil || len(got) != 0 {
			t.Errorf("limit %d: got %v, want empty slice", limit, got)
		}
	}
}

func TestRank_TrimsQuery(t *testing.T) {
	cat := testCatalog(t)
	got := Rank(cat.Entities(category.District), category.District, "  Dhaka  ", options.Defaults())
	if len(got) == 0 || got[0].Score() != 1.0 || got[0].Entity().ID() != "47" {
		t.Fatalf("trimmed query should match Dhaka exactly, got %v", got)
	}
}

func TestRank_Threshold(t *testing.T) {
	cat := testCatalog(t)
	opts := options.Defaults().With(options.Overrides{Threshold: options.Ptr(0.5)})
	got := Rank(cat.Entities(category.Upazila), category.Upazila, "Dhaka", opts)
	for _, m := range got {
		if m.Score() < 0.5 {
			t.Errorf("%s scored %f below threshold", m.Entity().Name(), m.Score())
		}
	}
	// Dhamrai 0.571 stays, Savar 0.2 does not
	if len(got) != 1 || got[0].Entity().Name() != "Dhamrai" {
		t.Errorf("got %d results, want only Dhamrai", len(got))
	}
}

func TestRank_EmptyCatalog(t *testing.T) {
	got := Rank(nil, category.District, "Dhaka", options.Defaults())
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty slice", got)
	}
}
