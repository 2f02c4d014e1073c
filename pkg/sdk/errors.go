package bdgeo

import "github.com/kailas-cloud/bdgeo/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidOptions  = domain.ErrInvalidOptions
	ErrUnknownCategory = domain.ErrUnknownCategory
	ErrRegionNotFound  = domain.ErrEntityNotFound
	ErrInvalidCatalog  = domain.ErrInvalidCatalog
)
