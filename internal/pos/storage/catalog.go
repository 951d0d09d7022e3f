package storage

import (
	"context"
	"time"

	"github.com/iudanet/bookpos/internal/models"
)

//go:generate moq -out catalog_mock.go . CatalogStore

// CatalogStore defines interface for the local product catalog.
// The catalog owns stock counters: they are mutated only inside
// a sale commit transaction or by the inventory reconciler.
type CatalogStore interface {
	// SaveProduct inserts or replaces a product by SKU
	SaveProduct(ctx context.Context, product *models.Product) error

	// GetProduct retrieves a product by SKU, including soft-deleted ones
	// (callers check the Deleted flag). Returns ErrProductNotFound if
	// the SKU has never existed.
	GetProduct(ctx context.Context, sku string) (*models.Product, error)

	// ListProducts returns all non-deleted products ordered by SKU
	ListProducts(ctx context.Context) ([]*models.Product, error)

	// DeleteProduct marks a product as deleted (soft delete for LWW sync).
	// UpdatedAt is set to the given time so the deletion wins reconciliation.
	DeleteProduct(ctx context.Context, sku string, at time.Time) error
}
