package storage

import (
	"context"

	"github.com/iudanet/bookpos/internal/models"
)

// SaleStore defines interface for the append-only sale log.
// CommitSale and ReverseSale are the only operations that touch
// stock counters, and both run as a single local transaction.
type SaleStore interface {
	// CommitSale atomically decrements stock for every line and inserts
	// the sale with sync status "pending". On success the assigned
	// sequential id is written into sale.ID and the resulting stock
	// per SKU is returned (used for stock-changed replication events).
	// Any shortfall aborts the whole transaction with
	// *models.InsufficientStockError and no partial effect.
	CommitSale(ctx context.Context, sale *models.Sale) (map[string]int, error)

	// GetSale retrieves a sale by id.
	// Returns ErrSaleNotFound if the sale doesn't exist.
	GetSale(ctx context.Context, id int64) (*models.Sale, error)

	// ListSales returns all sales ordered by id
	ListSales(ctx context.Context) ([]*models.Sale, error)

	// ListSalesBySyncStatus returns sales with the given sync status.
	// Used by the dispatcher recovery tick to find committed sales
	// whose replication was never enqueued.
	ListSalesBySyncStatus(ctx context.Context, status models.SyncStatus) ([]*models.Sale, error)

	// SetSyncStatus transitions the sale's replication status.
	// This is the only permitted mutation of a committed sale.
	SetSyncStatus(ctx context.Context, id int64, status models.SyncStatus) error

	// ReverseSale atomically restores stock for every line and deletes
	// the sale row. Returns the deleted sale (for compensating events)
	// and the resulting stock per SKU.
	// Returns ErrSaleNotFound if the sale doesn't exist.
	ReverseSale(ctx context.Context, id int64) (*models.Sale, map[string]int, error)
}
