// Package stats keeps bounded, in-memory query statistics fed by the search
// observer hook: most frequent queries and the latest zero-result queries.
package stats

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kailas-cloud/bdgeo/internal/usecase/search"
)

const defaultCapacity = 100

// Config bounds the tracked query sets.
type Config struct {
	TopQueriesCapacity  int
	ZeroResultsCapacity int
}

// QueryCount is a normalised query and how often it was seen.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Snapshot is a point-in-time copy of the statistics.
type Snapshot struct {
	TotalQueries      int64            `json:"total_queries"`
	ZeroResultCount   int64            `json:"zero_result_count"`
	ByOp              map[string]int64 `json:"by_op"`
	TopQueries        []QueryCount     `json:"top_queries"`
	ZeroResultQueries []string         `json:"zero_result_queries"`
	Since             time.Time        `json:"since"`
}

// Service implements search.Observer. Safe for concurrent use.
type Service struct {
	mu        sync.Mutex
	queries   *lru.Cache[string, int64]
	zero      *ring[string]
	byOp      map[string]int64
	total     int64
	zeroCount int64
	since     time.Time
}

// New creates a stats collector. Non-positive capacities fall back to 100.
func New(cfg Config) *Service {
	if cfg.TopQueriesCapacity <= 0 {
		cfg.TopQueriesCapacity = defaultCapacity
	}
	if cfg.ZeroResultsCapacity <= 0 {
		cfg.ZeroResultsCapacity = defaultCapacity
	}
	// lru.New only fails on a non-positive size.
	queries, _ := lru.New[string, int64](cfg.TopQueriesCapacity)
	return &Service{
		queries: queries,
		zero:    newRing[string](cfg.ZeroResultsCapacity),
		byOp:    make(map[string]int64),
		since:   time.Now(),
	}
}

// Observe records one completed search call. Blank queries count toward
// totals but are not tracked by text.
func (s *Service) Observe(_ context.Context, ev search.Event) {
	q := normalize(ev.Query)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	s.byOp[ev.Op]++
	if ev.Results == 0 {
		s.zeroCount++
	}
	if q == "" {
		return
	}
	n, _ := s.queries.Get(q)
	s.queries.Add(q, n+1)
	if ev.Results == 0 {
		s.zero.add(q)
	}
}

// Snapshot returns up to top most frequent queries (all tracked when top <= 0),
// ordered by count then text, and the zero-result queries oldest first.
func (s *Service) Snapshot(top int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.queries.Keys()
	counts := make([]QueryCount, 0, len(keys))
	for _, k := range keys {
		if n, ok := s.queries.Peek(k); ok {
			counts = append(counts, QueryCount{Query: k, Count: n})
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Query < counts[j].Query
	})
	if top > 0 && len(counts) > top {
		counts = counts[:top]
	}

	return Snapshot{
		TotalQueries:      s.total,
		ZeroResultCount:   s.zeroCount,
		ByOp:              maps.Clone(s.byOp),
		TopQueries:        counts,
		ZeroResultQueries: s.zero.list(),
		Since:             s.since,
	}
}

func normalize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
