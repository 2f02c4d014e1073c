package result

import (
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/field"
)

// Match is a single ranked search hit.
type Match struct {
	entity   *entity.Entity
	category category.Category
	score    float64
	field    field.Field
}

// New creates a search hit referencing e.
func New(e *entity.Entity, c category.Category, score float64, f field.Field) Match {
	return Match{entity: e, category: c, score: score, field: f}
}

// Entity returns the matched catalog entity.
func (m *Match) Entity() *entity.Entity { return m.entity }

// Category returns the category the entity belongs to.
func (m *Match) Category() category.Category { return m.category }

// Score returns the similarity score in [0,1].
func (m *Match) Score() float64 { return m.score }

// Field returns the entity field that produced the best score.
func (m *Match) Field() field.Field { return m.field }

// Group holds one category's matches in descending score order.
type Group struct {
	Category category.Category
	Matches  []Match
}

// Aggregate is the multi-category result of one search call.
// Groups follow the catalog's category order.
type Aggregate struct {
	Groups []Group
}

// Get returns the matches for category c (nil if c was not searched).
func (a *Aggregate) Get(c category.Category) []Match {
	for _, g := range a.Groups {
		if g.Category == c {
			return g.Matches
		}
	}
	return nil
}

// Total returns the number of matches across all groups.
func (a *Aggregate) Total() int {
	n := 0
	for _, g := range a.Groups {
		n += len(g.Matches)
	}
	return n
}

// Flatten returns all matches in group order.
func (a *Aggregate) Flatten() []Match {
	out := make([]Match, 0, a.Total())
	for _, g := range a.Groups {
		out = append(out, g.Matches...)
	}
	return out
}

// Suggestion is one autocomplete entry. It carries no score.
type Suggestion struct {
	entity   *entity.Entity
	category category.Category
	field    field.Field
}

// NewSuggestion creates an autocomplete entry for e matched on f.
func NewSuggestion(e *entity.Entity, c category.Category, f field.Field) Suggestion {
	return Suggestion{entity: e, category: c, field: f}
}

// Name returns the primary name of the suggested entity.
func (s *Suggestion) Name() string { return s.entity.Name() }

// BnName returns the secondary name of the suggested entity.
func (s *Suggestion) BnName() string { return s.entity.BnName() }

// Category returns the category tag.
func (s *Suggestion) Category() category.Category { return s.category }

// Entity returns the suggested entity.
func (s *Suggestion) Entity() *entity.Entity { return s.entity }

// Field returns which name matched the prefix.
func (s *Suggestion) Field() field.Field { return s.field }
