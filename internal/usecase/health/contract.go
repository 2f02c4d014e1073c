package health

import "github.com/kailas-cloud/bdgeo/internal/domain/catalog/category"

// CatalogInspector exposes what the health check reads from the catalog.
type CatalogInspector interface {
	Categories() []category.Category
	Count(c category.Category) int
}
