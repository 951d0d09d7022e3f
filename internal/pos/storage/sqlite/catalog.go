package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/storage"
)

// SaveProduct creates or replaces a product by SKU.
// LWW decisions are made by the caller (reconciler); the store
// itself writes unconditionally.
func (s *Storage) SaveProduct(ctx context.Context, product *models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO products (
			sku, title, author, category, item_type,
			price, cost, stock, deleted, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sku) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			category = excluded.category,
			item_type = excluded.item_type,
			price = excluded.price,
			cost = excluded.cost,
			stock = excluded.stock,
			deleted = excluded.deleted,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		product.SKU,
		product.Title,
		product.Author,
		product.Category,
		product.ItemType,
		product.Price,
		product.Cost,
		product.Stock,
		boolToInt(product.Deleted),
		product.CreatedAt.Unix(),
		product.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	return nil
}

// GetProduct retrieves a product by SKU, including soft-deleted ones
// Returns storage.ErrProductNotFound if the SKU has never existed
func (s *Storage) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	query := `
		SELECT sku, title, author, category, item_type,
		       price, cost, stock, deleted, created_at, updated_at
		FROM products
		WHERE sku = ?
	`

	product, err := scanProduct(s.db.QueryRowContext(ctx, query, sku))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// ListProducts returns all non-deleted products ordered by SKU
func (s *Storage) ListProducts(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT sku, title, author, category, item_type,
		       price, cost, stock, deleted, created_at, updated_at
		FROM products
		WHERE deleted = 0
		ORDER BY sku
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return products, nil
}

// DeleteProduct marks a product as deleted (soft delete for LWW sync)
func (s *Storage) DeleteProduct(ctx context.Context, sku string, at time.Time) error {
	query := `UPDATE products SET deleted = 1, updated_at = ? WHERE sku = ?`

	result, err := s.db.ExecContext(ctx, query, at.Unix(), sku)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrProductNotFound
	}

	return nil
}

// rowScanner объединяет *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct читает одну строку таблицы products
func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}
	var deleted int
	var createdAt, updatedAt int64

	err := row.Scan(
		&product.SKU,
		&product.Title,
		&product.Author,
		&product.Category,
		&product.ItemType,
		&product.Price,
		&product.Cost,
		&product.Stock,
		&deleted,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Deleted = deleted != 0
	product.CreatedAt = time.Unix(createdAt, 0).UTC()
	product.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return product, nil
}
