package search

import (
	"testing"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/field"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
)

func TestMatchEntity_ExactPrimary(t *testing.T) {
	e := makeEntity("3", "Dhaka", "XXXX", "dhaka", "")
	m, ok := MatchEntity(e, category.Division, "Dhaka", options.Defaults())
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Score() != 1.0 {
		t.Errorf("Score() = %f, want 1", m.Score())
	}
	if m.Field() != field.Primary {
		t.Errorf("Field() = %q, want primary", m.Field())
	}
	if m.Entity() != e {
		t.Error("match must reference the catalog entity")
	}
	if m.Category() != category.Division {
		t.Errorf("Category() = %q", m.Category())
	}
}

func TestMatchEntity_TieGoesToFirstField(t *testing.T) {
	// primary and slug both score 1.0 case-insensitively
	e := makeEntity("3", "Dhaka", "ঢাকা", "dhaka", "")
	m, ok := MatchEntity(e, category.Division, "dhaka", options.Defaults())
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Field() != field.Primary {
		t.Errorf("Field() = %q, want primary on tie", m.Field())
	}

	noEnglish := options.Defaults().With(options.Overrides{IncludeEnglish: options.Ptr(false)})
	m, ok = MatchEntity(e, category.Division, "dhaka", noEnglish)
	if !ok || m.Field() != field.Slug {
		t.Errorf("without English, Field() = %q, ok=%v, want slug", m.Field(), ok)
	}
}

func TestMatchEntity_SecondaryWins(t *testing.T) {
	e := makeEntity("3", "Dhaka", "ঢাকা", "dhaka", "")
	m, ok := MatchEntity(e, category.Division, "ঢাকা", options.Defaults())
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Field() != field.Secondary || m.Score() != 1.0 {
		t.Errorf("got %q/%f, want secondary/1.0", m.Field(), m.Score())
	}
}

func TestMatchEntity_SlugWins(t *testing.T) {
	e := makeEntity("2", "Chattogram", "চট্টগ্রাম", "chittagong", "")
	m, ok := MatchEntity(e, category.Division, "chittagong", options.Defaults())
	if !ok {
		t.Fatal("expected a match")
	}
	if m.Field() != field.Slug {
		t.Errorf("Field() = %q, want slug", m.Field())
	}
}

func TestMatchEntity_Threshold(t *testing.T) {
	e := makeEntity("3", "Dhaka", "ঢাকা", "dhaka", "")

	// "Dahka" scores 0.6
	loose := options.Defaults().With(options.Overrides{Threshold: options.Ptr(0.59)})
	if _, ok := MatchEntity(e, category.Division, "Dahka", loose); !ok {
		t.Error("0.6 should clear a 0.59 threshold")
	}
	strict := options.Defaults().With(options.Overrides{Threshold: options.Ptr(0.61)})
	if _, ok := MatchEntity(e, category.Division, "Dahka", strict); ok {
		t.Error("0.6 should not clear a 0.61 threshold")
	}
	if _, ok := MatchEntity(e, category.Division, "zzzz", options.Defaults()); ok {
		t.Error("unrelated query should not match")
	}
}

func TestMatchEntity_ThresholdClamped(t *testing.T) {
	e := makeEntity("3", "Dhaka", "ঢাকা", "dhaka", "")
	above := options.Defaults().With(options.Overrides{Threshold: options.Ptr(5.0)})
	if _, ok := MatchEntity(e, category.Division, "Dhaka", above); !ok {
		t.Error("threshold above 1 clamps to 1, so an exact match still passes")
	}
	below := options.Defaults().With(options.Overrides{Threshold: options.Ptr(-1.0)})
	if _, ok := MatchEntity(e, category.Division, "zzzz", below); !ok {
		t.Error("threshold below 0 clamps to 0, so everything matches")
	}
}

func TestMatchEntity_NoFields(t *testing.T) {
	e := makeEntity("3", "Dhaka", "ঢাকা", "dhaka", "")
	none := options.Defaults().With(options.Overrides{
		IncludeEnglish: options.Ptr(false),
		IncludeBengali: options.Ptr(false),
		IncludeSlug:    options.Ptr(false),
		Threshold:      options.Ptr(0.0),
	})
	if _, ok := MatchEntity(e, category.Division, "Dhaka", none); ok {
		t.Error("no enabled fields must never match")
	}
}
