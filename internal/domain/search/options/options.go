package options

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/bdgeo/internal/domain"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
)

// Search defaults.
const (
	DefaultLimit     = 10
	DefaultThreshold = 0.3
	// FuzzyThreshold is the minimum score of the typo-tolerant preset.
	FuzzyThreshold = 0.4
)

// Options controls a single search call. It is a plain value; nothing is stored.
type Options struct {
	IncludeEnglish bool
	IncludeBengali bool
	IncludeSlug    bool
	// Limit caps results per category (search) or overall (autocomplete).
	Limit         int
	Threshold     float64
	CaseSensitive bool
	// Categories restricts the search; empty means every category.
	Categories []category.Category
}

// Defaults returns both languages and slug enabled, limit 10, threshold 0.3,
// case-insensitive, all categories.
func Defaults() Options {
	return Options{
		IncludeEnglish: true,
		IncludeBengali: true,
		IncludeSlug:    true,
		Limit:          DefaultLimit,
		Threshold:      DefaultThreshold,
	}
}

// Overrides is a partial Options: nil fields keep the base value.
type Overrides struct {
	IncludeEnglish *bool
	IncludeBengali *bool
	IncludeSlug    *bool
	Limit          *int
	Threshold      *float64
	CaseSensitive  *bool
	Categories     []category.Category
}

// With returns a copy of o with every non-nil override applied.
func (o Options) With(ov Overrides) Options {
	if ov.IncludeEnglish != nil {
		o.IncludeEnglish = *ov.IncludeEnglish
	}
	if ov.IncludeBengali != nil {
		o.IncludeBengali = *ov.IncludeBengali
	}
	if ov.IncludeSlug != nil {
		o.IncludeSlug = *ov.IncludeSlug
	}
	if ov.Limit != nil {
		o.Limit = *ov.Limit
	}
	if ov.Threshold != nil {
		o.Threshold = *ov.Threshold
	}
	if ov.CaseSensitive != nil {
		o.CaseSensitive = *ov.CaseSensitive
	}
	if ov.Categories != nil {
		o.Categories = slices.Clone(ov.Categories)
	} else {
		o.Categories = slices.Clone(o.Categories)
	}
	return o
}

// Merge layers b on top of a; b wins wherever it sets a field.
func Merge(a, b Overrides) Overrides {
	if b.IncludeEnglish != nil {
		a.IncludeEnglish = b.IncludeEnglish
	}
	if b.IncludeBengali != nil {
		a.IncludeBengali = b.IncludeBengali
	}
	if b.IncludeSlug != nil {
		a.IncludeSlug = b.IncludeSlug
	}
	if b.Limit != nil {
		a.Limit = b.Limit
	}
	if b.Threshold != nil {
		a.Threshold = b.Threshold
	}
	if b.CaseSensitive != nil {
		a.CaseSensitive = b.CaseSensitive
	}
	if b.Categories != nil {
		a.Categories = b.Categories
	}
	return a
}

// Validate rejects limits below 1, thresholds outside [0,1] and unknown categories.
// Search itself never calls it; callers at the edges (config, HTTP, CLI) do.
func (o Options) Validate() error {
	if o.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidOptions, o.Limit)
	}
	if o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be between 0 and 1, got %g", domain.ErrInvalidOptions, o.Threshold)
	}
	for _, c := range o.Categories {
		if !c.IsValid() {
			return fmt.Errorf("%w: %w %q", domain.ErrInvalidOptions, domain.ErrUnknownCategory, c)
		}
	}
	return nil
}

// ClampedThreshold returns the threshold clipped into [0,1].
func (o Options) ClampedThreshold() float64 {
	return min(max(o.Threshold, 0), 1)
}

// Searches reports whether category c is selected.
func (o Options) Searches(c category.Category) bool {
	return len(o.Categories) == 0 || slices.Contains(o.Categories, c)
}

// Ptr returns a pointer to v, for building Overrides literals.
func Ptr[T any](v T) *T { return &v }
