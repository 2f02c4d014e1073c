package bdgeo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kailas-cloud/bdgeo/data"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/address"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/mode"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/result"
	catalogrepo "github.com/kailas-cloud/bdgeo/internal/repository/catalog"
	healthuc "github.com/kailas-cloud/bdgeo/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bdgeo/internal/usecase/search"
)

// Internal interfaces, replaced by fakes in tests.
type searchUseCase interface {
	SearchMode(ctx context.Context, m mode.Mode, query string, ov options.Overrides) result.Aggregate
	QuickMatchMode(ctx context.Context, m mode.Mode, query string, ov options.Overrides) (result.Match, bool)
	Autocomplete(ctx context.Context, query string, ov options.Overrides) []result.Suggestion
	Resolve(m mode.Mode, ov options.Overrides) options.Options
}

type catalogReader interface {
	Categories() []category.Category
	Lookup(c category.Category, ref string) (*entity.Entity, error)
	Parent(c category.Category, e *entity.Entity) (category.Category, *entity.Entity, bool)
	Children(c category.Category, id string) (category.Category, []*entity.Entity, error)
	Address(c category.Category, ref string) (address.Address, error)
}

// Client is the bdgeo SDK entry point. Safe for concurrent use.
type Client struct {
	catalog   catalogReader
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New loads the catalog and returns a ready Client.
// The provided context bounds catalog loading.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		catalogFS:      data.FS,
		defaults:       options.Defaults(),
		fuzzyThreshold: options.FuzzyThreshold,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if err := cfg.defaults.Validate(); err != nil {
		return nil, fmt.Errorf("bdgeo: %w", err)
	}
	if cfg.fuzzyThreshold < 0 || cfg.fuzzyThreshold > 1 {
		return nil, fmt.Errorf("bdgeo: %w: fuzzy threshold must be between 0 and 1, got %g",
			ErrInvalidOptions, cfg.fuzzyThreshold)
	}

	fsys := cfg.catalogFS
	if cfg.catalogSrc != "" {
		fsys = os.DirFS(cfg.catalogSrc)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cat, err := catalogrepo.Load(ctx, fsys)
	if err != nil {
		obs.observe(opCatalogLoad, start, 0, err)
		return nil, fmt.Errorf("bdgeo: %w", err)
	}
	obs.observe(opCatalogLoad, start, cat.Total(), nil)

	return wireClient(cat, cfg, obs), nil
}

func wireClient(cat *catalogrepo.Catalog, cfg *clientConfig, obs *observer) *Client {
	searchSvc := searchuc.New(cat, cfg.defaults).WithFuzzyThreshold(cfg.fuzzyThreshold)
	return &Client{
		catalog:   cat,
		searchSvc: searchSvc,
		healthSvc: healthuc.New(cat),
		obs:       obs,
	}
}

// Categories returns the loaded categories, top tier first.
func (c *Client) Categories() []Category {
	cats := c.catalog.Categories()
	out := make([]Category, len(cats))
	for i, cat := range cats {
		out[i] = Category(cat)
	}
	return out
}

// Search ranks regions in every selected category. An empty query yields
// empty results, not an error; only invalid options fail.
func (c *Client) Search(ctx context.Context, text string, opts ...SearchOption) (res Results, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opSearch, start, res.Total, err) }()

	q, err := c.prepare(opts)
	if err != nil {
		return Results{}, err
	}
	agg := c.searchSvc.SearchMode(ctx, q.mode, text, q.ov)
	return fromAggregate(agg), nil
}

// Quick returns the single best hit across all categories. Presets such as
// Fuzzy or BengaliOnly apply exactly as they do for Search.
func (c *Client) Quick(ctx context.Context, text string, opts ...SearchOption) (m Match, ok bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opQuick, start, count(ok), err) }()

	q, err := c.prepare(opts)
	if err != nil {
		return Match{}, false, err
	}
	hit, ok := c.searchSvc.QuickMatchMode(ctx, q.mode, text, q.ov)
	if !ok {
		return Match{}, false, nil
	}
	return fromMatch(hit), true, nil
}

// Autocomplete lists regions whose name starts with prefix: English-name
// hits first, then Bengali-name hits. Limit applies to the combined list.
func (c *Client) Autocomplete(ctx context.Context, prefix string, opts ...SearchOption) (out []Suggestion, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opAutocomplete, start, len(out), err) }()

	q, err := c.prepare(opts)
	if err != nil {
		return nil, err
	}
	switch q.mode {
	case mode.English:
		q.ov.IncludeBengali = options.Ptr(false)
	case mode.Bengali:
		q.ov.IncludeEnglish = options.Ptr(false)
	}

	ss := c.searchSvc.Autocomplete(ctx, prefix, q.ov)
	out = make([]Suggestion, len(ss))
	for i := range ss {
		out[i] = Suggestion{
			Category: Category(ss[i].Category()),
			Region:   fromEntity(ss[i].Entity()),
			Field:    MatchedField(ss[i].Field()),
		}
	}
	return out, nil
}

// Region returns a region by id or slug.
func (c *Client) Region(ctx context.Context, cat Category, ref string) (r Region, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opRegionGet, start, count(err == nil), err) }()

	dc, err := category.Parse(string(cat))
	if err != nil {
		return Region{}, fmt.Errorf("%w: %s", ErrUnknownCategory, err.Error())
	}
	e, err := c.catalog.Lookup(dc, strings.TrimSpace(ref))
	if err != nil {
		return Region{}, err
	}
	return fromEntity(e), nil
}

// Parent returns the region one tier above. ok is false for divisions.
func (c *Client) Parent(ctx context.Context, cat Category, ref string) (parentCat Category, p Region, ok bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opRegionParent, start, count(ok), err) }()

	dc, err := category.Parse(string(cat))
	if err != nil {
		return "", Region{}, false, fmt.Errorf("%w: %s", ErrUnknownCategory, err.Error())
	}
	e, err := c.catalog.Lookup(dc, strings.TrimSpace(ref))
	if err != nil {
		return "", Region{}, false, err
	}
	pc, pe, ok := c.catalog.Parent(dc, e)
	if !ok {
		return "", Region{}, false, nil
	}
	return Category(pc), fromEntity(pe), true, nil
}

// Address returns the region with its parents, formatted in both languages.
func (c *Client) Address(ctx context.Context, cat Category, ref string) (a Address, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opRegionAddress, start, len(a.Parts), err) }()

	dc, err := category.Parse(string(cat))
	if err != nil {
		return Address{}, fmt.Errorf("%w: %s", ErrUnknownCategory, err.Error())
	}
	da, err := c.catalog.Address(dc, strings.TrimSpace(ref))
	if err != nil {
		return Address{}, err
	}
	return fromAddress(da), nil
}

// Children returns the regions one tier below, in catalog order.
func (c *Client) Children(ctx context.Context, cat Category, ref string) (childCat Category, kids []Region, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opRegionChildren, start, len(kids), err) }()

	dc, err := category.Parse(string(cat))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownCategory, err.Error())
	}
	e, err := c.catalog.Lookup(dc, strings.TrimSpace(ref))
	if err != nil {
		return "", nil, err
	}
	cc, ents, err := c.catalog.Children(dc, e.ID())
	if err != nil {
		return "", nil, err
	}
	kids = make([]Region, len(ents))
	for i, k := range ents {
		kids[i] = fromEntity(k)
	}
	return Category(cc), kids, nil
}

// prepare applies opts and validates the options the preset would run with.
func (c *Client) prepare(opts []SearchOption) (query, error) {
	q := buildQuery(opts)
	if q.err != nil {
		return q, fmt.Errorf("%w: %w: %s", ErrInvalidOptions, ErrUnknownCategory, q.err.Error())
	}
	if err := c.searchSvc.Resolve(q.mode, q.ov).Validate(); err != nil {
		return q, err
	}
	return q, nil
}

// count is 1 for a found region, 0 otherwise.
func count(found bool) int {
	if found {
		return 1
	}
	return 0
}
