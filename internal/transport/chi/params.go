package chi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/bdgeo/internal/domain"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
)

// Limits bounds what a client may ask for.
type Limits struct {
	MaxLimit       int
	MaxQueryLength int
}

// overridesFromQuery reads the optional search parameters. Absent parameters stay nil
// so configured defaults apply.
func overridesFromQuery(q url.Values) (options.Overrides, error) {
	var ov options.Overrides

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ov, fmt.Errorf("%w: limit must be an integer", domain.ErrInvalidOptions)
		}
		ov.Limit = &n
	}
	if v := q.Get("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ov, fmt.Errorf("%w: threshold must be a number", domain.ErrInvalidOptions)
		}
		ov.Threshold = &f
	}

	bools := []struct {
		name string
		dst  **bool
	}{
		{"case_sensitive", &ov.CaseSensitive},
		{"english", &ov.IncludeEnglish},
		{"bengali", &ov.IncludeBengali},
		{"slug", &ov.IncludeSlug},
	}
	for _, b := range bools {
		v := q.Get(b.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return ov, fmt.Errorf("%w: %s must be a boolean", domain.ErrInvalidOptions, b.name)
		}
		*b.dst = &parsed
	}

	if v := q.Get("categories"); v != "" {
		cats, err := category.ParseList(v)
		if err != nil {
			return ov, fmt.Errorf("%w: %w: %s", domain.ErrInvalidOptions, domain.ErrUnknownCategory, err.Error())
		}
		ov.Categories = cats
	}
	return ov, nil
}

// checkQuery enforces the configured query length. Blank queries are allowed.
func (l Limits) checkQuery(query string) error {
	if l.MaxQueryLength > 0 && utf8.RuneCountInString(query) > l.MaxQueryLength {
		return fmt.Errorf("%w: query longer than %d characters", domain.ErrInvalidOptions, l.MaxQueryLength)
	}
	return nil
}

// checkOptions validates resolved options against their ranges and the server limit.
func (l Limits) checkOptions(opts options.Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("validate options: %w", err)
	}
	if l.MaxLimit > 0 && opts.Limit > l.MaxLimit {
		return fmt.Errorf("%w: limit %d exceeds maximum %d", domain.ErrInvalidOptions, opts.Limit, l.MaxLimit)
	}
	return nil
}

func queryParam(q url.Values) string {
	return strings.TrimSpace(q.Get("q"))
}
