package catalog

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
)

// fileDTO is the on-disk shape of one category file (YAML or JSON).
type fileDTO struct {
	Category string      `yaml:"category"`
	Entities []recordDTO `yaml:"entities"`
}

// recordDTO is one region. Unknown scalar keys are kept as attributes.
type recordDTO struct {
	ID       string            `yaml:"id"`
	ParentID string            `yaml:"parent_id"`
	Name     string            `yaml:"name"`
	BnName   string            `yaml:"bn_name"`
	Slug     string            `yaml:"slug"`
	Extra    map[string]string `yaml:",inline"`
}

// recordToEntity converts a decoded record into a validated Entity.
// A missing slug is derived from the English name; a non-canonical one is re-slugged.
func recordToEntity(r recordDTO) (entity.Entity, error) {
	s := strings.TrimSpace(r.Slug)
	switch {
	case s == "":
		s = slug.Make(r.Name)
	case !slug.IsSlug(s):
		s = slug.Make(s)
	}
	e, err := entity.New(
		strings.TrimSpace(r.ID),
		strings.TrimSpace(r.Name),
		strings.TrimSpace(r.BnName),
		s,
		strings.TrimSpace(r.ParentID),
		r.Extra,
	)
	if err != nil {
		return entity.Entity{}, fmt.Errorf("convert record: %w", err)
	}
	return e, nil
}
