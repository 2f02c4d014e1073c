package catalog

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/bdgeo/internal/domain"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
)

func TestBuild_OrdersCategoriesTopDown(t *testing.T) {
	c := buildTestCatalog(t)
	got := c.Categories()
	want := []category.Category{category.Division, category.District, category.Upazila}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category[%d]: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestBuild_PreservesEntityOrder(t *testing.T) {
	c := buildTestCatalog(t)
	ents := c.Entities(category.District)
	ids := []string{"47", "41", "15"}
	if len(ents) != len(ids) {
		t.Fatalf("expected %d districts, got %d", len(ids), len(ents))
	}
	for i, id := range ids {
		if ents[i].ID() != id {
			t.Errorf("district[%d]: expected %s, got %s", i, id, ents[i].ID())
		}
	}
}

func TestBuild_EntitiesAreStablePointers(t *testing.T) {
	c := buildTestCatalog(t)
	a := c.Entities(category.Upazila)[1]
	b, err := c.Get(category.Upazila, "2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a != b {
		t.Error("expected Entities and Get to return the same pointer")
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		sets func(t *testing.T) []Set
	}{
		{"unknown category", func(t *testing.T) []Set {
			return []Set{{Category: "village", Entities: []entity.Entity{mustEntity(t, "1", "A", "অ", "a", "")}}}
		}},
		{"category twice", func(t *testing.T) []Set {
			return []Set{
				{Category: category.Division, Entities: []entity.Entity{mustEntity(t, "1", "A", "অ", "a", "")}},
				{Category: category.Division, Entities: []entity.Entity{mustEntity(t, "2", "B", "ব", "b", "")}},
			}
		}},
		{"duplicate id", func(t *testing.T) []Set {
			return []Set{{Category: category.Division, Entities: []entity.Entity{
				mustEntity(t, "1", "A", "অ", "a", ""),
				mustEntity(t, "1", "B", "ব", "b", ""),
			}}}
		}},
		{"duplicate slug", func(t *testing.T) []Set {
			return []Set{{Category: category.Division, Entities: []entity.Entity{
				mustEntity(t, "1", "A", "অ", "same", ""),
				mustEntity(t, "2", "B", "ব", "same", ""),
			}}}
		}},
		{"missing parent", func(t *testing.T) []Set {
			return []Set{
				{Category: category.Division, Entities: []entity.Entity{mustEntity(t, "1", "A", "অ", "a", "")}},
				{Category: category.District, Entities: []entity.Entity{mustEntity(t, "10", "B", "ব", "b", "99")}},
			}
		}},
		{"empty parent id", func(t *testing.T) []Set {
			return []Set{
				{Category: category.Division, Entities: []entity.Entity{mustEntity(t, "1", "A", "অ", "a", "")}},
				{Category: category.District, Entities: []entity.Entity{mustEntity(t, "10", "B", "ব", "b", "")}},
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.sets(t))
			if !errors.Is(err, domain.ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
			var ce *domain.CatalogError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *CatalogError, got %T", err)
			}
		})
	}
}

func TestBuild_ParentCheckSkippedWithoutParentTier(t *testing.T) {
	_, err := Build([]Set{
		{Category: category.District, Entities: []entity.Entity{mustEntity(t, "10", "B", "ব", "b", "99")}},
	})
	if err != nil {
		t.Fatalf("expected districts alone to load, got %v", err)
	}
}

func TestGet(t *testing.T) {
	c := buildTestCatalog(t)

	e, err := c.Get(category.District, "41")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Name() != "Gazipur" {
		t.Errorf("expected Gazipur, got %s", e.Name())
	}

	if _, err := c.Get(category.District, "999"); !errors.Is(err, domain.ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}
	if _, err := c.Get("village", "1"); !errors.Is(err, domain.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestGetBySlug(t *testing.T) {
	c := buildTestCatalog(t)

	e, err := c.GetBySlug(category.Upazila, "gazipur-sadar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID() != "3" {
		t.Errorf("expected id 3, got %s", e.ID())
	}
	if _, err := c.GetBySlug(category.Upazila, "nowhere"); !errors.Is(err, domain.ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestLookup_IDThenSlug(t *testing.T) {
	c := buildTestCatalog(t)

	byID, err := c.Lookup(category.District, "47")
	if err != nil || byID.Name() != "Dhaka" {
		t.Fatalf("lookup by id: %v, %v", byID, err)
	}
	bySlug, err := c.Lookup(category.District, "gazipur")
	if err != nil || bySlug.ID() != "41" {
		t.Fatalf("lookup by slug: %v, %v", bySlug, err)
	}
	if _, err := c.Lookup(category.District, "nowhere"); !errors.Is(err, domain.ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestParent(t *testing.T) {
	c := buildTestCatalog(t)
	savar, _ := c.Get(category.Upazila, "2")

	pc, p, ok := c.Parent(category.Upazila, savar)
	if !ok {
		t.Fatal("expected parent")
	}
	if pc != category.District || p.ID() != "47" {
		t.Errorf("expected district 47, got %s %s", pc, p.ID())
	}

	dhaka, _ := c.Get(category.Division, "3")
	if _, _, ok := c.Parent(category.Division, dhaka); ok {
		t.Error("expected no parent for a division")
	}
}

func TestAddress(t *testing.T) {
	c := buildTestCatalog(t)

	tests := []struct {
		name   string
		cat    category.Category
		ref    string
		wantEn string
		wantBn string
		parts  int
	}{
		{"upazila by slug", category.Upazila, "dhamrai", "Dhamrai, Dhaka, Dhaka Division", "ধামরাই, ঢাকা, ঢাকা বিভাগ", 3},
		{"upazila by id", category.Upazila, "3", "Gazipur Sadar, Gazipur, Dhaka Division", "গাজীপুর সদর, গাজীপুর, ঢাকা বিভাগ", 3},
		{"district", category.District, "chattogram", "Chattogram, Chattogram Division", "চট্টগ্রাম, চট্টগ্রাম বিভাগ", 2},
		{"division", category.Division, "3", "Dhaka Division", "ঢাকা বিভাগ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := c.Address(tt.cat, tt.ref)
			if err != nil {
				t.Fatalf("Address: %v", err)
			}
			if len(a.Parts) != tt.parts {
				t.Fatalf("expected %d parts, got %d", tt.parts, len(a.Parts))
			}
			if a.Parts[0].Category != tt.cat {
				t.Errorf("expected leaf category %s, got %s", tt.cat, a.Parts[0].Category)
			}
			if got := a.English(); got != tt.wantEn {
				t.Errorf("English() = %q, want %q", got, tt.wantEn)
			}
			if got := a.Bengali(); got != tt.wantBn {
				t.Errorf("Bengali() = %q, want %q", got, tt.wantBn)
			}
		})
	}
}

func TestAddress_Errors(t *testing.T) {
	c := buildTestCatalog(t)

	if _, err := c.Address(category.Upazila, "nowhere"); !errors.Is(err, domain.ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}

	partial, err := Build(testSets(t)[:1])
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a, err := partial.Address(category.Upazila, "savar")
	if err != nil {
		t.Fatalf("Address: %v", err)
	}
	if got := a.English(); got != "Savar" {
		t.Errorf("expected address to stop at the loaded tier, got %q", got)
	}
}

func TestChildren(t *testing.T) {
	c := buildTestCatalog(t)

	childCat, kids, err := c.Children(category.District, "47")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if childCat != category.Upazila {
		t.Errorf("expected upazila, got %s", childCat)
	}
	if len(kids) != 2 || kids[0].Name() != "Dhamrai" || kids[1].Name() != "Savar" {
		t.Errorf("unexpected children: %v", kids)
	}

	_, kids, err = c.Children(category.District, "15")
	if err != nil || kids == nil || len(kids) != 0 {
		t.Errorf("expected empty non-nil children, got %v, %v", kids, err)
	}

	_, kids, err = c.Children(category.Upazila, "1")
	if err != nil || len(kids) != 0 {
		t.Errorf("expected no children for the leaf tier, got %v, %v", kids, err)
	}

	if _, _, err := c.Children(category.District, "999"); !errors.Is(err, domain.ErrEntityNotFound) {
		t.Errorf("expected ErrEntityNotFound, got %v", err)
	}
}

func TestCounts(t *testing.T) {
	c := buildTestCatalog(t)
	if c.Count(category.Division) != 2 {
		t.Errorf("expected 2 divisions, got %d", c.Count(category.Division))
	}
	if c.Count("village") != 0 {
		t.Error("expected 0 for an unknown category")
	}
	if c.Total() != 8 {
		t.Errorf("expected 8 entities, got %d", c.Total())
	}
	if !c.Has(category.Upazila) || c.Has("village") {
		t.Error("Has reported the wrong categories")
	}
}
