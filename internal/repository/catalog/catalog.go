package catalog

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/bdgeo/internal/domain"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/address"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
)

// Set is the full entity list of one category, in catalog order.
type Set struct {
	Category category.Category
	Source   string
	Entities []entity.Entity
}

// Catalog is an immutable, in-memory view of the administrative hierarchy.
// Safe for concurrent readers; nothing mutates it after Build.
type Catalog struct {
	order    []category.Category
	entities map[category.Category][]*entity.Entity
	byID     map[category.Category]map[string]*entity.Entity
	bySlug   map[category.Category]map[string]*entity.Entity
	children map[category.Category]map[string][]*entity.Entity
}

// Build validates the sets and freezes them into a Catalog.
// Categories are ordered top-down regardless of input order.
func Build(sets []Set) (*Catalog, error) {
	sorted := make([]Set, len(sets))
	copy(sorted, sets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Category.Level() < sorted[j].Category.Level()
	})

	c := &Catalog{
		entities: make(map[category.Category][]*entity.Entity, len(sorted)),
		byID:     make(map[category.Category]map[string]*entity.Entity, len(sorted)),
		bySlug:   make(map[category.Category]map[string]*entity.Entity, len(sorted)),
		children: make(map[category.Category]map[string][]*entity.Entity, len(sorted)),
	}

	for _, s := range sorted {
		if err := c.add(s); err != nil {
			return nil, err
		}
	}
	if err := c.link(sorted); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) add(s Set) error {
	source := s.Source
	if source == "" {
		source = string(s.Category)
	}
	if !s.Category.IsValid() {
		return domain.NewCatalogError(source, "", fmt.Sprintf("unknown category %q", s.Category))
	}
	if _, dup := c.byID[s.Category]; dup {
		return domain.NewCatalogError(source, "", fmt.Sprintf("category %s loaded twice", s.Category))
	}

	owned := make([]entity.Entity, len(s.Entities))
	copy(owned, s.Entities)

	ptrs := make([]*entity.Entity, len(owned))
	ids := make(map[string]*entity.Entity, len(owned))
	slugs := make(map[string]*entity.Entity, len(owned))
	for i := range owned {
		e := &owned[i]
		if _, dup := ids[e.ID()]; dup {
			return domain.NewCatalogError(source, e.ID(), "duplicate id")
		}
		if prev, dup := slugs[e.Slug()]; dup {
			return domain.NewCatalogError(source, e.ID(),
				fmt.Sprintf("slug %q already used by %s", e.Slug(), prev.ID()))
		}
		ptrs[i] = e
		ids[e.ID()] = e
		slugs[e.Slug()] = e
	}

	c.order = append(c.order, s.Category)
	c.entities[s.Category] = ptrs
	c.byID[s.Category] = ids
	c.bySlug[s.Category] = slugs
	return nil
}

// link checks parent references and indexes children by parent id.
// Parent checks apply only when the parent category is loaded too.
func (c *Catalog) link(sets []Set) error {
	for _, s := range sets {
		parentCat, ok := s.Category.Parent()
		if !ok {
			continue
		}
		parents, loaded := c.byID[parentCat]
		if !loaded {
			continue
		}
		source := s.Source
		if source == "" {
			source = string(s.Category)
		}
		idx := make(map[string][]*entity.Entity, len(parents))
		for _, e := range c.entities[s.Category] {
			if e.ParentID() == "" {
				return domain.NewCatalogError(source, e.ID(), "parent_id is required")
			}
			if _, found := parents[e.ParentID()]; !found {
				return domain.NewCatalogError(source, e.ID(),
					fmt.Sprintf("parent %s %q not found", parentCat, e.ParentID()))
			}
			idx[e.ParentID()] = append(idx[e.ParentID()], e)
		}
		c.children[parentCat] = idx
	}
	return nil
}

// Categories returns the loaded categories, top tier first.
func (c *Catalog) Categories() []category.Category {
	out := make([]category.Category, len(c.order))
	copy(out, c.order)
	return out
}

// Entities returns the entities of a category in catalog order.
// The slice is shared; callers must not modify it. Unknown categories yield nil.
func (c *Catalog) Entities(cat category.Category) []*entity.Entity {
	return c.entities[cat]
}

// Has reports whether the category is loaded.
func (c *Catalog) Has(cat category.Category) bool {
	_, ok := c.byID[cat]
	return ok
}

// Get returns an entity by id.
func (c *Catalog) Get(cat category.Category, id string) (*entity.Entity, error) {
	ids, ok := c.byID[cat]
	if !ok {
		return nil, fmt.Errorf("%s: %w", cat, domain.ErrUnknownCategory)
	}
	e, ok := ids[id]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", cat, id, domain.ErrEntityNotFound)
	}
	return e, nil
}

// GetBySlug returns an entity by slug.
func (c *Catalog) GetBySlug(cat category.Category, s string) (*entity.Entity, error) {
	slugs, ok := c.bySlug[cat]
	if !ok {
		return nil, fmt.Errorf("%s: %w", cat, domain.ErrUnknownCategory)
	}
	e, ok := slugs[s]
	if !ok {
		return nil, fmt.Errorf("%s slug %q: %w", cat, s, domain.ErrEntityNotFound)
	}
	return e, nil
}

// Lookup resolves a reference that is either an id or a slug, id first.
func (c *Catalog) Lookup(cat category.Category, ref string) (*entity.Entity, error) {
	e, err := c.Get(cat, ref)
	if err == nil {
		return e, nil
	}
	if bySlug, slugErr := c.GetBySlug(cat, ref); slugErr == nil {
		return bySlug, nil
	}
	return nil, err
}

// Parent returns the entity one tier above. ok is false for top-tier
// entities or when the parent category is not loaded.
func (c *Catalog) Parent(cat category.Category, e *entity.Entity) (category.Category, *entity.Entity, bool) {
	parentCat, ok := cat.Parent()
	if !ok || e.ParentID() == "" {
		return "", nil, false
	}
	p, ok := c.byID[parentCat][e.ParentID()]
	if !ok {
		return "", nil, false
	}
	return parentCat, p, true
}

// Address resolves ref and walks its parents up to the top loaded tier.
func (c *Catalog) Address(cat category.Category, ref string) (address.Address, error) {
	e, err := c.Lookup(cat, ref)
	if err != nil {
		return address.Address{}, err
	}
	parts := []address.Part{{Category: cat, Entity: e}}
	for {
		pc, p, ok := c.Parent(cat, e)
		if !ok {
			break
		}
		parts = append(parts, address.Part{Category: pc, Entity: p})
		cat, e = pc, p
	}
	return address.Address{Parts: parts}, nil
}

// Children returns the child category and the entities whose parent is id.
// The leaf tier, or an unloaded child tier, yields an empty slice.
func (c *Catalog) Children(cat category.Category, id string) (category.Category, []*entity.Entity, error) {
	if _, err := c.Get(cat, id); err != nil {
		return "", nil, err
	}
	childCat, ok := cat.Child()
	if !ok || !c.Has(childCat) {
		return childCat, []*entity.Entity{}, nil
	}
	kids := c.children[cat][id]
	out := make([]*entity.Entity, len(kids))
	copy(out, kids)
	return childCat, out, nil
}

// Count returns the number of entities in a category.
func (c *Catalog) Count(cat category.Category) int {
	return len(c.entities[cat])
}

// Total returns the number of entities across all categories.
func (c *Catalog) Total() int {
	n := 0
	for _, cat := range c.order {
		n += len(c.entities[cat])
	}
	return n
}
