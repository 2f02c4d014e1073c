package entity

import (
	"fmt"
	"maps"
	"strings"
)

// Entity is an immutable catalog record: one administrative region.
type Entity struct {
	id         string
	name       string
	bnName     string
	slug       string
	parentID   string
	attributes map[string]string
}

// New validates and creates an Entity.
// id, name, bnName and slug are required; slug must already be lowercase.
func New(id, name, bnName, slug, parentID string, attributes map[string]string) (Entity, error) {
	if strings.TrimSpace(id) == "" {
		return Entity{}, fmt.Errorf("entity id is required")
	}
	if strings.TrimSpace(name) == "" {
		return Entity{}, fmt.Errorf("entity %s: name is required", id)
	}
	if strings.TrimSpace(bnName) == "" {
		return Entity{}, fmt.Errorf("entity %s: bn_name is required", id)
	}
	if slug == "" {
		return Entity{}, fmt.Errorf("entity %s: slug is required", id)
	}
	if slug != strings.ToLower(slug) {
		return Entity{}, fmt.Errorf("entity %s: slug %q must be lowercase", id, slug)
	}
	return Reconstruct(id, name, bnName, slug, parentID, attributes), nil
}

// Reconstruct creates an Entity without validation.
func Reconstruct(id, name, bnName, slug, parentID string, attributes map[string]string) Entity {
	return Entity{
		id:         id,
		name:       name,
		bnName:     bnName,
		slug:       slug,
		parentID:   parentID,
		attributes: maps.Clone(attributes),
	}
}

// ID returns the stable identifier.
func (e *Entity) ID() string { return e.id }

// Name returns the primary (English) name.
func (e *Entity) Name() string { return e.name }

// BnName returns the secondary (Bengali) name.
func (e *Entity) BnName() string { return e.bnName }

// Slug returns the URL-safe slug.
func (e *Entity) Slug() string { return e.slug }

// ParentID returns the identifier of the parent region (empty for the top tier).
func (e *Entity) ParentID() string { return e.parentID }

// Attribute returns a domain attribute not used by search.
func (e *Entity) Attribute(key string) (string, bool) {
	v, ok := e.attributes[key]
	return v, ok
}

// Attributes returns a copy of all domain attributes.
func (e *Entity) Attributes() map[string]string { return maps.Clone(e.attributes) }
