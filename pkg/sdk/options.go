package bdgeo

import (
	"io/fs"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/mode"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogFS  fs.FS
	catalogSrc string

	defaults       options.Options
	fuzzyThreshold float64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCatalogDir loads the catalog from a directory instead of the embedded data.
func WithCatalogDir(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogFS = nil
		c.catalogSrc = dir
	})
}

// WithCatalogFS loads the catalog from an fs.FS (for example an embed.FS).
func WithCatalogFS(fsys fs.FS) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogFS = fsys
		c.catalogSrc = ""
	})
}

// WithDefaultLimit sets the per-category result limit. Default: 10.
func WithDefaultLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaults.Limit = n
	})
}

// WithDefaultThreshold sets the minimum score of a hit. Default: 0.3.
func WithDefaultThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaults.Threshold = t
	})
}

// WithFuzzyThreshold sets the threshold used by Fuzzy(). Default: 0.4.
func WithFuzzyThreshold(t float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.fuzzyThreshold = t
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// SearchOption tunes a single query.
type SearchOption func(*query)

type query struct {
	mode mode.Mode
	ov   options.Overrides
	err  error
}

// Limit caps hits per category (Search) or overall (Autocomplete).
func Limit(n int) SearchOption {
	return func(q *query) { q.ov.Limit = options.Ptr(n) }
}

// Threshold sets the minimum score in [0,1].
func Threshold(t float64) SearchOption {
	return func(q *query) { q.ov.Threshold = options.Ptr(t) }
}

// CaseSensitive compares without case folding.
func CaseSensitive() SearchOption {
	return func(q *query) { q.ov.CaseSensitive = options.Ptr(true) }
}

// WithoutSlug skips slug matching.
func WithoutSlug() SearchOption {
	return func(q *query) { q.ov.IncludeSlug = options.Ptr(false) }
}

// In restricts the search to the given categories.
func In(categories ...Category) SearchOption {
	return func(q *query) {
		for _, c := range categories {
			cat, err := category.Parse(string(c))
			if err != nil {
				q.err = err
				return
			}
			q.ov.Categories = append(q.ov.Categories, cat)
		}
	}
}

// EnglishOnly matches English names and slugs only.
func EnglishOnly() SearchOption {
	return func(q *query) { q.mode = mode.English }
}

// BengaliOnly matches Bengali names only.
func BengaliOnly() SearchOption {
	return func(q *query) { q.mode = mode.Bengali }
}

// Fuzzy uses the typo-tolerant threshold unless Threshold is also given.
func Fuzzy() SearchOption {
	return func(q *query) { q.mode = mode.Fuzzy }
}

func buildQuery(opts []SearchOption) query {
	q := query{mode: mode.Default}
	for _, o := range opts {
		o(&q)
	}
	return q
}
