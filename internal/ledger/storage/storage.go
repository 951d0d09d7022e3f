// Package storage определяет хранилище документов реестра.
// Реестр - документное хранилище в духе Firebase RTDB: документы
// адресуются ключом (id продажи, SKU, дата), PUT перезаписывает
// целиком, PATCH мержит поля. Семантику LWW реестр не знает -
// она целиком на стороне кассы.
package storage

import (
	"context"
	"encoding/json"
	"errors"
)

// Common ledger storage errors
var (
	// ErrSaleNotFound indicates that sale document was not found
	ErrSaleNotFound = errors.New("sale document not found")

	// ErrSummaryNotFound indicates that daily summary was not found
	ErrSummaryNotFound = errors.New("daily summary not found")
)

// Store defines interface for the ledger document store
type Store interface {
	// PutSale stores or replaces a sale document by id
	PutSale(ctx context.Context, id string, doc json.RawMessage) error

	// GetSale retrieves a sale document by id
	// Returns ErrSaleNotFound if the document doesn't exist
	GetSale(ctx context.Context, id string) (json.RawMessage, error)

	// PutProduct stores or replaces a product document by SKU
	PutProduct(ctx context.Context, sku string, doc json.RawMessage) error

	// PatchProduct merges fields into an existing product document,
	// creating it if absent
	PatchProduct(ctx context.Context, sku string, fields map[string]any) error

	// DeleteProduct removes a product document by SKU.
	// Deleting an absent document is not an error: the operation
	// is idempotent by contract.
	DeleteProduct(ctx context.Context, sku string) error

	// ListProducts returns all product documents keyed by SKU
	ListProducts(ctx context.Context) (map[string]json.RawMessage, error)

	// PutDailySummary stores or replaces a daily summary by date
	PutDailySummary(ctx context.Context, date string, doc json.RawMessage) error

	// GetDailySummary retrieves a daily summary by date
	// Returns ErrSummaryNotFound if the document doesn't exist
	GetDailySummary(ctx context.Context, date string) (json.RawMessage, error)
}
