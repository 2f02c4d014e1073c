package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bdgeo/internal/domain"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/address"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/entity"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/mode"
	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
	healthuc "github.com/kailas-cloud/bdgeo/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bdgeo/internal/usecase/search"
	statsuc "github.com/kailas-cloud/bdgeo/internal/usecase/stats"
)

const defaultTopQueries = 10

// entityCatalog is the read side of the catalog used for entity lookups.
type entityCatalog interface {
	Has(c category.Category) bool
	Entities(c category.Category) []*entity.Entity
	Lookup(c category.Category, ref string) (*entity.Entity, error)
	Parent(c category.Category, e *entity.Entity) (category.Category, *entity.Entity, bool)
	Children(c category.Category, id string) (category.Category, []*entity.Entity, error)
	Address(c category.Category, ref string) (address.Address, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the JSON API over a chi router.
type Server struct {
	search        *searchuc.Service
	catalog       entityCatalog
	health        *healthuc.Service
	stats         *statsuc.Service
	limits        Limits
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	catalog entityCatalog,
	health *healthuc.Service,
	stats *statsuc.Service,
	limits Limits,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		catalog: catalog,
		health:  health,
		stats:   stats,
		limits:  limits,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrUnknownCategory, http.StatusNotFound, CodeUnknownCategory),
		sentinelHandler(domain.ErrEntityNotFound, http.StatusNotFound, CodeEntityNotFound),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r gochi.Router) {
		r.Get("/search", s.Search)
		r.Get("/search/{category}", s.SearchCategory)
		r.Get("/quick", s.Quick)
		r.Get("/autocomplete", s.Autocomplete)
		r.Get("/stats", s.Stats)
		r.Get("/{category}", s.ListEntities)
		r.Get("/{category}/{ref}", s.GetEntity)
		r.Get("/{category}/{ref}/children", s.ListChildren)
		r.Get("/{category}/{ref}/address", s.GetAddress)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	m, err := modeParam(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	query, ov, err := s.parseSearch(r, m)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	agg := s.search.SearchMode(r.Context(), m, query, ov)
	writeJSON(w, http.StatusOK, NewSearchResponse(query, m, agg))
}

// SearchCategory handles GET /api/v1/search/{category}.
func (s *Server) SearchCategory(w http.ResponseWriter, r *http.Request) {
	c, err := categoryParam(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	query, ov, err := s.parseSearch(r, mode.Default)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	matches := s.search.SearchCategory(r.Context(), c, query, ov)
	writeJSON(w, http.StatusOK, NewCategorySearchResponse(query, c, matches))
}

// Quick handles GET /api/v1/quick.
func (s *Server) Quick(w http.ResponseWriter, r *http.Request) {
	pm, err := modeParam(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	query, ov, err := s.parseSearch(r, pm)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	m, ok := s.search.QuickMatchMode(r.Context(), pm, query, ov)
	if !ok {
		writeError(w, http.StatusNotFound, CodeNoMatch, "no match for query")
		return
	}
	writeJSON(w, http.StatusOK, NewMatchResponse(m))
}

// Autocomplete handles GET /api/v1/autocomplete.
func (s *Server) Autocomplete(w http.ResponseWriter, r *http.Request) {
	query, ov, err := s.parseSearch(r, mode.Default)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	suggestions := s.search.Autocomplete(r.Context(), query, ov)
	writeJSON(w, http.StatusOK, NewAutocompleteResponse(query, suggestions))
}

// Stats handles GET /api/v1/stats.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	top := defaultTopQueries
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, CodeValidationFailed, "top must be a non-negative integer")
			return
		}
		top = n
	}
	writeJSON(w, http.StatusOK, s.stats.Snapshot(top))
}

// ListEntities handles GET /api/v1/{category}.
func (s *Server) ListEntities(w http.ResponseWriter, r *http.Request) {
	c, err := categoryParam(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if !s.catalog.Has(c) {
		s.handleDomainError(w, r, fmt.Errorf("%s: %w", c, domain.ErrUnknownCategory))
		return
	}

	ents := s.catalog.Entities(c)
	writeJSON(w, http.StatusOK, EntityListResponse{
		Category: string(c),
		Total:    len(ents),
		Items:    entitiesToResponse(ents),
	})
}

// GetEntity handles GET /api/v1/{category}/{ref}; ref is an id or a slug.
func (s *Server) GetEntity(w http.ResponseWriter, r *http.Request) {
	c, err := categoryParam(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	e, err := s.catalog.Lookup(c, gochi.URLParam(r, "ref"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := EntityDetailResponse{Category: string(c), Entity: entityToResponse(e)}
	if pc, p, ok := s.catalog.Parent(c, e); ok {
		resp.Parent = parentRef(pc, p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListChildren handles GET /api/v1/{category}/{ref}/children.
func (s *Server) ListChildren(w http.ResponseWriter, r *http.Request) {
	c, err := categoryParam(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	e, err := s.catalog.Lookup(c, gochi.URLParam(r, "ref"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	childCat, kids, err := s.catalog.Children(c, e.ID())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, EntityListResponse{
		Category: string(childCat),
		ParentID: e.ID(),
		Total:    len(kids),
		Items:    entitiesToResponse(kids),
	})
}

// GetAddress handles GET /api/v1/{category}/{ref}/address.
func (s *Server) GetAddress(w http.ResponseWriter, r *http.Request) {
	c, err := categoryParam(r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	a, err := s.catalog.Address(c, gochi.URLParam(r, "ref"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, NewAddressResponse(a))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:   string(report.Status),
		Checks:   checks,
		Entities: report.Entities,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// parseSearch reads q and the option overrides, then validates the options
// the preset m would actually run with.
func (s *Server) parseSearch(r *http.Request, m mode.Mode) (string, options.Overrides, error) {
	q := r.URL.Query()
	query := queryParam(q)
	if err := s.limits.checkQuery(query); err != nil {
		return "", options.Overrides{}, err
	}
	ov, err := overridesFromQuery(q)
	if err != nil {
		return "", options.Overrides{}, err
	}
	if err := s.limits.checkOptions(s.search.Resolve(m, ov)); err != nil {
		return "", options.Overrides{}, err
	}
	return query, ov, nil
}

func modeParam(r *http.Request) (mode.Mode, error) {
	m, err := mode.Parse(r.URL.Query().Get("mode"))
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidOptions, err.Error())
	}
	return m, nil
}

func categoryParam(r *http.Request) (category.Category, error) {
	raw := gochi.URLParam(r, "category")
	c, err := category.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownCategory, err.Error())
	}
	return c, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUnknownCategory,
		domain.ErrEntityNotFound,
		domain.ErrInvalidOptions,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// validationHandler reports the full message: it only describes client input.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidOptions) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.With(zap.String("request_id", chiMiddleware.GetReqID(r.Context())))
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
