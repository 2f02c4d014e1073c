package search

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/mode"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/bdgeo/internal/logger"
)

// Operation names reported to the Observer.
const (
	OpSearch         = "search"
	OpSearchCategory = "search_category"
	OpSearchEnglish  = "search_english"
	OpSearchBengali  = "search_bengali"
	OpFuzzy          = "fuzzy"
	OpQuick          = "quick"
	OpAutocomplete   = "autocomplete"
)

// Service fans queries out over the catalog's categories.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	catalog        CatalogReader
	defaults       options.Options
	fuzzyThreshold float64
	observer       Observer
}

// New creates a search service. defaults is the base every call's overrides apply to.
func New(catalog CatalogReader, defaults options.Options) *Service {
	return &Service{
		catalog:        catalog,
		defaults:       defaults,
		fuzzyThreshold: options.FuzzyThreshold,
	}
}

// WithFuzzyThreshold sets the threshold used by FuzzySearch when the caller gives none.
func (s *Service) WithFuzzyThreshold(t float64) *Service {
	s.fuzzyThreshold = t
	return s
}

// WithObserver attaches an observer notified after every call.
func (s *Service) WithObserver(o Observer) *Service {
	s.observer = o
	return s
}

// Defaults returns the base options of this service.
func (s *Service) Defaults() options.Options {
	return s.defaults.With(options.Overrides{})
}

// Search ranks every selected category independently; the limit applies per category.
func (s *Service) Search(ctx context.Context, query string, ov options.Overrides) result.Aggregate {
	return s.searchOp(ctx, OpSearch, query, s.defaults.With(ov))
}

// SearchCategory searches a single category. Unknown categories yield no matches.
func (s *Service) SearchCategory(
	ctx context.Context, c category.Category, query string, ov options.Overrides,
) []result.Match {
	ov.Categories = []category.Category{c}
	agg := s.searchOp(ctx, OpSearchCategory, query, s.defaults.With(ov))
	if matches := agg.Get(c); matches != nil {
		return matches
	}
	return []result.Match{}
}

// SearchEnglish matches primary names and slugs only.
func (s *Service) SearchEnglish(ctx context.Context, query string, ov options.Overrides) result.Aggregate {
	return s.searchOp(ctx, OpSearchEnglish, query, s.Resolve(mode.English, ov))
}

// SearchBengali matches secondary names only.
func (s *Service) SearchBengali(ctx context.Context, query string, ov options.Overrides) result.Aggregate {
	return s.searchOp(ctx, OpSearchBengali, query, s.Resolve(mode.Bengali, ov))
}

// FuzzySearch is Search with the typo-tolerant threshold unless ov sets one.
func (s *Service) FuzzySearch(ctx context.Context, query string, ov options.Overrides) result.Aggregate {
	return s.searchOp(ctx, OpFuzzy, query, s.Resolve(mode.Fuzzy, ov))
}

// SearchMode dispatches to the preset named by m. Unknown modes behave as Default.
func (s *Service) SearchMode(ctx context.Context, m mode.Mode, query string, ov options.Overrides) result.Aggregate {
	switch m {
	case mode.English:
		return s.SearchEnglish(ctx, query, ov)
	case mode.Bengali:
		return s.SearchBengali(ctx, query, ov)
	case mode.Fuzzy:
		return s.FuzzySearch(ctx, query, ov)
	default:
		return s.Search(ctx, query, ov)
	}
}

// Resolve returns the effective options of preset m with ov applied.
// Callers at the edge use it to validate before searching.
func (s *Service) Resolve(m mode.Mode, ov options.Overrides) options.Options {
	switch m {
	case mode.English:
		ov.IncludeBengali = options.Ptr(false)
	case mode.Bengali:
		ov.IncludeEnglish = options.Ptr(false)
		ov.IncludeSlug = options.Ptr(false)
	case mode.Fuzzy:
		if ov.Threshold == nil {
			ov.Threshold = options.Ptr(s.fuzzyThreshold)
		}
	}
	return s.defaults.With(ov)
}

// QuickMatch returns the single best match across all selected categories.
// Ties across categories go to the earlier category.
func (s *Service) QuickMatch(ctx context.Context, query string, ov options.Overrides) (result.Match, bool) {
	return s.QuickMatchMode(ctx, mode.Default, query, ov)
}

// QuickMatchMode is QuickMatch under preset m: the same fields and threshold
// SearchMode would use, with the limit forced to 1.
func (s *Service) QuickMatchMode(
	ctx context.Context, m mode.Mode, query string, ov options.Overrides,
) (result.Match, bool) {
	start := time.Now()

	ov.Limit = options.Ptr(1)
	agg := s.search(query, s.Resolve(m, ov))

	flat := agg.Flatten()
	sortByScore(flat)

	found := len(flat) > 0
	n := 0
	if found {
		n = 1
	}
	s.finish(ctx, OpQuick, query, n, start)

	if !found {
		return result.Match{}, false
	}
	return flat[0], true
}

// QuickSearch returns the entity of QuickMatch.
func (s *Service) QuickSearch(ctx context.Context, query string, ov options.Overrides) (*entity.Entity, bool) {
	m, ok := s.QuickMatch(ctx, query, ov)
	if !ok {
		return nil, false
	}
	return m.Entity(), true
}

// Autocomplete returns prefix suggestions across the selected categories, capped overall.
func (s *Service) Autocomplete(ctx context.Context, query string, ov options.Overrides) []result.Suggestion {
	start := time.Now()
	opts := s.defaults.With(ov)

	cats := s.selected(opts)
	sources := make([]Source, 0, len(cats))
	for _, c := range cats {
		sources = append(sources, Source{Category: c, Entities: s.catalog.Entities(c)})
	}

	suggestions := Autocomplete(sources, query, opts)
	s.finish(ctx, OpAutocomplete, query, len(suggestions), start)
	return suggestions
}

func (s *Service) searchOp(ctx context.Context, op, query string, opts options.Options) result.Aggregate {
	start := time.Now()
	agg := s.search(query, opts)
	s.finish(ctx, op, query, agg.Total(), start)
	return agg
}

func (s *Service) search(query string, opts options.Options) result.Aggregate {
	cats := s.selected(opts)
	agg := result.Aggregate{Groups: make([]result.Group, 0, len(cats))}
	for _, c := range cats {
		agg.Groups = append(agg.Groups, result.Group{
			Category: c,
			Matches:  Rank(s.catalog.Entities(c), c, query, opts),
		})
	}
	return agg
}

// selected returns the catalog categories chosen by opts, in catalog order.
func (s *Service) selected(opts options.Options) []category.Category {
	all := s.catalog.Categories()
	out := make([]category.Category, 0, len(all))
	for _, c := range all {
		if opts.Searches(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Service) finish(ctx context.Context, op, query string, n int, start time.Time) {
	latency := time.Since(start)
	logpkg.FromContext(ctx).Debug("search completed",
		zap.String("op", op),
		zap.String("query", strings.TrimSpace(query)),
		zap.Int("results", n),
		zap.Duration("latency", latency),
	)
	if s.observer != nil {
		s.observer.Observe(ctx, Event{Op: op, Query: query, Results: n, Latency: latency})
	}
}
