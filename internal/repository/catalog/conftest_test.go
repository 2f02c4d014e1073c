package catalog

import (
	"testing"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
)

func mustEntity(t *testing.T, id, name, bn, slug, parent string) entity.Entity {
	t.Helper()
	e, err := entity.New(id, name, bn, slug, parent, nil)
	if err != nil {
		t.Fatalf("entity.New(%s): %v", id, err)
	}
	return e
}

// testSets is a small three-tier hierarchy.
func testSets(t *testing.T) []Set {
	t.Helper()
	return []Set{
		{Category: category.Upazila, Entities: []entity.Entity{
			mustEntity(t, "1", "Dhamrai", "ধামরাই", "dhamrai", "47"),
			mustEntity(t, "2", "Savar", "সাভার", "savar", "47"),
			mustEntity(t, "3", "Gazipur Sadar", "গাজীপুর সদর", "gazipur-sadar", "41"),
		}},
		{Category: category.Division, Entities: []entity.Entity{
			mustEntity(t, "3", "Dhaka", "ঢাকা", "dhaka", ""),
			mustEntity(t, "2", "Chattogram", "চট্টগ্রাম", "chattogram", ""),
		}},
		{Category: category.District, Entities: []entity.Entity{
			mustEntity(t, "47", "Dhaka", "ঢাকা", "dhaka", "3"),
			mustEntity(t, "41", "Gazipur", "গাজীপুর", "gazipur", "3"),
			mustEntity(t, "15", "Chattogram", "চট্টগ্রাম", "chattogram", "2"),
		}},
	}
}

func buildTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Build(testSets(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}
