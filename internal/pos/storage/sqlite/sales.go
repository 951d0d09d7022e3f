package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/storage"
)

// CommitSale atomically decrements stock for every line and inserts the sale.
// Остатки перепроверяются здесь, по текущему состоянию каталога, а не по
// снимку корзины: конкурирующая фиксация могла успеть списать товар.
// Любая нехватка откатывает транзакцию целиком — частичных списаний нет.
func (s *Storage) CommitSale(ctx context.Context, sale *models.Sale) (map[string]int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := sale.Timestamp.Unix()
	stocks := make(map[string]int, len(sale.Lines))

	for _, line := range sale.Lines {
		// Условное списание: UPDATE затронет строку только если остатка хватает.
		// Это единственная авторитетная проверка остатка.
		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - ?, updated_at = ?
			WHERE sku = ? AND deleted = 0 AND stock >= ?
		`, line.Quantity, now, line.SKU, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock for %s: %w", line.SKU, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to get rows affected: %w", err)
		}

		if affected == 0 {
			// Выясняем фактический остаток для сообщения об ошибке
			available := 0
			row := tx.QueryRowContext(ctx,
				`SELECT stock FROM products WHERE sku = ? AND deleted = 0`, line.SKU)
			if err := row.Scan(&available); err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("failed to read stock for %s: %w", line.SKU, err)
			}
			return nil, &models.InsufficientStockError{
				SKU:       line.SKU,
				Requested: line.Quantity,
				Available: available,
			}
		}

		var newStock int
		row := tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE sku = ?`, line.SKU)
		if err := row.Scan(&newStock); err != nil {
			return nil, fmt.Errorf("failed to read new stock for %s: %w", line.SKU, err)
		}
		stocks[line.SKU] = newStock
	}

	linesJSON, err := json.Marshal(sale.Lines)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sale lines: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO sales (
			sale_date, lines_json, discount, subtotal, total, profit,
			payment_method, tendered, change, cashier, sync_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		now,
		string(linesJSON),
		sale.Discount,
		sale.Subtotal,
		sale.Total,
		sale.Profit,
		string(sale.PaymentMethod),
		sale.Tendered,
		sale.Change,
		sale.Cashier,
		string(models.SyncStatusPending),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get sale id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	sale.ID = id
	sale.SyncStatus = models.SyncStatusPending

	return stocks, nil
}

// GetSale retrieves a sale by id
// Returns storage.ErrSaleNotFound if the sale doesn't exist
func (s *Storage) GetSale(ctx context.Context, id int64) (*models.Sale, error) {
	row := s.db.QueryRowContext(ctx, saleSelect+` WHERE id = ?`, id)

	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	return sale, nil
}

// ListSales returns all sales ordered by id
func (s *Storage) ListSales(ctx context.Context) ([]*models.Sale, error) {
	return s.querySales(ctx, saleSelect+` ORDER BY id`)
}

// ListSalesBySyncStatus returns sales with the given sync status
func (s *Storage) ListSalesBySyncStatus(ctx context.Context, status models.SyncStatus) ([]*models.Sale, error) {
	return s.querySales(ctx, saleSelect+` WHERE sync_status = ? ORDER BY id`, string(status))
}

// SetSyncStatus transitions the sale's replication status
func (s *Storage) SetSyncStatus(ctx context.Context, id int64, status models.SyncStatus) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sales SET sync_status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to set sync status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrSaleNotFound
	}

	return nil
}

// ReverseSale atomically restores stock for every line and deletes the sale.
// Это единственная разрешённая операция, меняющая существование продажи
// после фиксации.
func (s *Storage) ReverseSale(ctx context.Context, id int64) (*models.Sale, map[string]int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	sale, err := scanSale(tx.QueryRowContext(ctx, saleSelect+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, storage.ErrSaleNotFound
		}
		return nil, nil, fmt.Errorf("failed to get sale: %w", err)
	}

	now := time.Now().Unix()
	stocks := make(map[string]int, len(sale.Lines))

	for _, line := range sale.Lines {
		_, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock + ?, updated_at = ?
			WHERE sku = ?
		`, line.Quantity, now, line.SKU)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to restore stock for %s: %w", line.SKU, err)
		}

		var newStock int
		row := tx.QueryRowContext(ctx, `SELECT stock FROM products WHERE sku = ?`, line.SKU)
		if err := row.Scan(&newStock); err != nil {
			return nil, nil, fmt.Errorf("failed to read new stock for %s: %w", line.SKU, err)
		}
		stocks[line.SKU] = newStock
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id); err != nil {
		return nil, nil, fmt.Errorf("failed to delete sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sale, stocks, nil
}

const saleSelect = `
	SELECT id, sale_date, lines_json, discount, subtotal, total, profit,
	       payment_method, tendered, change, cashier, sync_status
	FROM sales`

// querySales выполняет запрос списка продаж
func (s *Storage) querySales(ctx context.Context, query string, args ...any) ([]*models.Sale, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sales []*models.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return sales, nil
}

// scanSale читает одну строку таблицы sales
func scanSale(row rowScanner) (*models.Sale, error) {
	sale := &models.Sale{}
	var saleDate int64
	var linesJSON, paymentMethod, syncStatus string

	err := row.Scan(
		&sale.ID,
		&saleDate,
		&linesJSON,
		&sale.Discount,
		&sale.Subtotal,
		&sale.Total,
		&sale.Profit,
		&paymentMethod,
		&sale.Tendered,
		&sale.Change,
		&sale.Cashier,
		&syncStatus,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(linesJSON), &sale.Lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sale lines: %w", err)
	}

	sale.Timestamp = time.Unix(saleDate, 0).UTC()
	sale.PaymentMethod = models.PaymentMethod(paymentMethod)
	sale.SyncStatus = models.SyncStatus(syncStatus)

	return sale, nil
}
