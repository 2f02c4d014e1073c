package search

import (
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/field"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/result"
)

// MatchEntity scores the enabled fields of e against query and keeps the best one.
// Fields are evaluated primary, secondary, slug; a later field must score strictly
// higher to win. Returns false when no field is enabled or the best score is
// below the threshold.
func MatchEntity(e *entity.Entity, c category.Category, query string, opts options.Options) (result.Match, bool) {
	var (
		best      float64
		bestField field.Field
		found     bool
	)

	consider := func(f field.Field, value string) {
		s := Score(query, value, opts.CaseSensitive)
		if !found || s > best {
			best, bestField, found = s, f, true
		}
	}

	if opts.IncludeEnglish {
		consider(field.Primary, e.Name())
	}
	if opts.IncludeBengali {
		consider(field.Secondary, e.BnName())
	}
	if opts.IncludeSlug {
		consider(field.Slug, e.Slug())
	}

	if !found || best < opts.ClampedThreshold() {
		return result.Match{}, false
	}
	return result.New(e, c, best, bestField), true
}
