package search

import (
	"sort"
	"strings"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/result"
)

// Rank scans entities, keeps matches at or above the threshold, sorts them by
// descending score (ties keep input order) and truncates to opts.Limit.
// A blank query or a non-positive limit yields an empty slice.
func Rank(entities []*entity.Entity, c category.Category, query string, opts options.Options) []result.Match {
	query = strings.TrimSpace(query)
	if query == "" || opts.Limit <= 0 {
		return []result.Match{}
	}

	matches := make([]result.Match, 0)
	for _, e := range entities {
		if m, ok := MatchEntity(e, c, query, opts); ok {
			matches = append(matches, m)
		}
	}

	sortByScore(matches)

	if len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches
}

// sortByScore orders matches by descending score, keeping input order on ties.
func sortByScore(matches []result.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score() > matches[j].Score()
	})
}
