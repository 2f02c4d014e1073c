package search

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/bdgeo/internal/domain/search/field"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/result"
)

// Autocomplete priorities: primary-name prefixes always precede secondary-name ones.
const (
	primaryPriority   = 1
	secondaryPriority = 2
)

// Autocomplete returns entities whose primary or secondary name starts with query.
// A primary-name prefix match has priority over a secondary-name one regardless of
// position; within a priority, source order then entity order is kept. Slugs are
// never checked. The limit applies across all sources combined.
func Autocomplete(sources []Source, query string, opts options.Options) []result.Suggestion {
	query = strings.TrimSpace(query)
	if query == "" || opts.Limit <= 0 {
		return []result.Suggestion{}
	}

	fold := func(s string) string { return s }
	if !opts.CaseSensitive {
		fold = strings.ToLower
		query = strings.ToLower(query)
	}

	type ranked struct {
		suggestion result.Suggestion
		priority   int
	}

	var hits []ranked
	for _, src := range sources {
		for _, e := range src.Entities {
			switch {
			case opts.IncludeEnglish && strings.HasPrefix(fold(e.Name()), query):
				hits = append(hits, ranked{result.NewSuggestion(e, src.Category, field.Primary), primaryPriority})
			case opts.IncludeBengali && strings.HasPrefix(fold(e.BnName()), query):
				hits = append(hits, ranked{result.NewSuggestion(e, src.Category, field.Secondary), secondaryPriority})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].priority < hits[j].priority
	})

	n := min(len(hits), opts.Limit)
	out := make([]result.Suggestion, n)
	for i := range n {
		out[i] = hits[i].suggestion
	}
	return out
}
