package bdgeo

import (
	"context"

	healthuc "github.com/kailas-cloud/bdgeo/internal/usecase/health"
)

// HealthStatus represents the aggregated catalog health.
type HealthStatus struct {
	Status   string            // "ok", "degraded", "error"
	Checks   map[string]string // component → "ok"/"error"
	Entities map[string]int    // category → region count
}

// Health reports whether every hierarchy tier is loaded and non-empty.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:   string(report.Status),
		Checks:   checks,
		Entities: report.Entities,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
