package chi

import (
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/address"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/mode"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/result"
)

// ErrorCode is the machine-readable error kind in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeUnknownCategory  ErrorCode = "unknown_category"
	CodeEntityNotFound   ErrorCode = "entity_not_found"
	CodeNoMatch          ErrorCode = "no_match"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// EntityResponse is one catalog region.
type EntityResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	BnName     string            `json:"bn_name"`
	Slug       string            `json:"slug"`
	ParentID   string            `json:"parent_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// MatchResponse is one scored search hit.
type MatchResponse struct {
	Category     string         `json:"category"`
	Score        float64        `json:"score"`
	MatchedField string         `json:"matched_field"`
	Entity       EntityResponse `json:"entity"`
}

// GroupResponse holds one category's hits, best first.
type GroupResponse struct {
	Category string          `json:"category"`
	Matches  []MatchResponse `json:"matches"`
}

// SearchResponse is the body of GET /api/v1/search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Mode    string          `json:"mode"`
	Total   int             `json:"total"`
	Results []GroupResponse `json:"results"`
}

// CategorySearchResponse is the body of GET /api/v1/search/{category}.
type CategorySearchResponse struct {
	Query    string          `json:"query"`
	Category string          `json:"category"`
	Total    int             `json:"total"`
	Matches  []MatchResponse `json:"matches"`
}

// SuggestionResponse is one autocomplete entry.
type SuggestionResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BnName       string `json:"bn_name"`
	Slug         string `json:"slug"`
	Category     string `json:"category"`
	MatchedField string `json:"matched_field"`
}

// AutocompleteResponse is the body of GET /api/v1/autocomplete.
type AutocompleteResponse struct {
	Query       string               `json:"query"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// ParentRef points from an entity to the region one tier above.
type ParentRef struct {
	Category string `json:"category"`
	ID       string `json:"id"`
	Name     string `json:"name"`
}

// EntityDetailResponse is the body of GET /api/v1/{category}/{ref}.
type EntityDetailResponse struct {
	Category string         `json:"category"`
	Entity   EntityResponse `json:"entity"`
	Parent   *ParentRef     `json:"parent,omitempty"`
}

// AddressResponse is the body of GET /api/v1/{category}/{ref}/address.
// Parts run from the requested region up to its division.
type AddressResponse struct {
	English string      `json:"english"`
	Bengali string      `json:"bengali"`
	Parts   []ParentRef `json:"parts"`
}

// EntityListResponse lists a category or the children of one entity.
type EntityListResponse struct {
	Category string           `json:"category"`
	ParentID string           `json:"parent_id,omitempty"`
	Total    int              `json:"total"`
	Items    []EntityResponse `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Entities map[string]int    `json:"entities"`
}

func entityToResponse(e *entity.Entity) EntityResponse {
	return EntityResponse{
		ID:         e.ID(),
		Name:       e.Name(),
		BnName:     e.BnName(),
		Slug:       e.Slug(),
		ParentID:   e.ParentID(),
		Attributes: e.Attributes(),
	}
}

func entitiesToResponse(ents []*entity.Entity) []EntityResponse {
	out := make([]EntityResponse, len(ents))
	for i, e := range ents {
		out[i] = entityToResponse(e)
	}
	return out
}

func matchToResponse(m result.Match) MatchResponse {
	return MatchResponse{
		Category:     string(m.Category()),
		Score:        m.Score(),
		MatchedField: string(m.Field()),
		Entity:       entityToResponse(m.Entity()),
	}
}

func matchesToResponse(ms []result.Match) []MatchResponse {
	out := make([]MatchResponse, len(ms))
	for i, m := range ms {
		out[i] = matchToResponse(m)
	}
	return out
}

func aggregateToResponse(agg result.Aggregate) []GroupResponse {
	out := make([]GroupResponse, len(agg.Groups))
	for i, g := range agg.Groups {
		out[i] = GroupResponse{Category: string(g.Category), Matches: matchesToResponse(g.Matches)}
	}
	return out
}

func suggestionsToResponse(ss []result.Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, len(ss))
	for i, s := range ss {
		out[i] = SuggestionResponse{
			ID:           s.Entity().ID(),
			Name:         s.Name(),
			BnName:       s.BnName(),
			Slug:         s.Entity().Slug(),
			Category:     string(s.Category()),
			MatchedField: string(s.Field()),
		}
	}
	return out
}

// NewSearchResponse builds the body shared by the HTTP API and the CLI's JSON output.
func NewSearchResponse(query string, m mode.Mode, agg result.Aggregate) SearchResponse {
	return SearchResponse{
		Query:   query,
		Mode:    string(m),
		Total:   agg.Total(),
		Results: aggregateToResponse(agg),
	}
}

// NewCategorySearchResponse builds the body of a single-category search.
func NewCategorySearchResponse(query string, c category.Category, ms []result.Match) CategorySearchResponse {
	return CategorySearchResponse{
		Query:    query,
		Category: string(c),
		Total:    len(ms),
		Matches:  matchesToResponse(ms),
	}
}

// NewMatchResponse builds the body of a quick match.
func NewMatchResponse(m result.Match) MatchResponse {
	return matchToResponse(m)
}

// NewAutocompleteResponse builds the body of an autocomplete call.
func NewAutocompleteResponse(query string, ss []result.Suggestion) AutocompleteResponse {
	return AutocompleteResponse{
		Query:       query,
		Suggestions: suggestionsToResponse(ss),
	}
}

func parentRef(c category.Category, e *entity.Entity) *ParentRef {
	return &ParentRef{Category: string(c), ID: e.ID(), Name: e.Name()}
}

// NewAddressResponse converts a domain address to its wire form.
func NewAddressResponse(a address.Address) AddressResponse {
	parts := make([]ParentRef, len(a.Parts))
	for i, p := range a.Parts {
		parts[i] = *parentRef(p.Category, p.Entity)
	}
	return AddressResponse{English: a.English(), Bengali: a.Bengali(), Parts: parts}
}
