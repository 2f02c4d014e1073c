package health

import (
	"context"

	"github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status   Status
	Checks   map[string]CheckResult
	Entities map[string]int
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogInspector
}

// New creates a Service. catalog can be nil before loading finishes.
func New(catalog CatalogInspector) *Service {
	return &Service{catalog: catalog}
}

// Check reports the catalog state: one check per hierarchy tier plus a total.
// An empty catalog is unhealthy; a missing or empty tier degrades.
func (s *Service) Check(_ context.Context) Report {
	checks := make(map[string]CheckResult)
	entities := make(map[string]int)

	if s.catalog == nil {
		checks["catalog"] = CheckError
		return Report{Status: Unhealthy, Checks: checks, Entities: entities}
	}

	for _, c := range s.catalog.Categories() {
		entities[string(c)] = s.catalog.Count(c)
	}

	total := 0
	for _, c := range category.All() {
		n := entities[string(c)]
		total += n
		if n > 0 {
			checks["catalog."+string(c)] = CheckOK
		} else {
			checks["catalog."+string(c)] = CheckError
		}
	}

	if total == 0 {
		checks["catalog"] = CheckError
		return Report{Status: Unhealthy, Checks: checks, Entities: entities}
	}
	checks["catalog"] = CheckOK

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Entities: entities}
}
