package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOptions signals search options outside their allowed range.
	ErrInvalidOptions = errors.New("invalid search options")
	// ErrUnknownCategory signals a category the catalog does not hold.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrEntityNotFound signals a missing catalog entity.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrInvalidCatalog signals malformed or inconsistent catalog data.
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// CatalogError wraps ErrInvalidCatalog with the offending source and record.
type CatalogError struct {
	Source string
	Record string
	Reason string
}

func (e *CatalogError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidCatalog.Error(), e.Source, e.Reason)
	}
	return fmt.Sprintf("%s: %s: record %q: %s", ErrInvalidCatalog.Error(), e.Source, e.Record, e.Reason)
}

func (e *CatalogError) Unwrap() error { return ErrInvalidCatalog }

// NewCatalogError creates a catalog error for a single source file or record.
func NewCatalogError(source, record, reason string) error {
	return &CatalogError{Source: source, Record: record, Reason: reason}
}
