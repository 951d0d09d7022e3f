// Package committer реализует фиксацию продажи: атомарное превращение
// корзины в постоянную запись Sale со списанием остатков и постановкой
// событий репликации в очередь. Машина состояний одной попытки:
// Validating -> Reserving -> Persisting -> Committed, либо Rejected
// на этапах валидации/резервирования (корзина остается нетронутой).
package committer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/cart"
	"github.com/iudanet/bookpos/internal/pos/storage"
	"github.com/iudanet/bookpos/pkg/api"
)

// Committer turns finalized carts into durable sales
type Committer struct {
	sales    storage.SaleStore
	queue    storage.EventQueue
	logger   *slog.Logger
	location string
}

// New creates a new transaction committer.
// location identifies this till in replicated sale documents.
func New(sales storage.SaleStore, queue storage.EventQueue, logger *slog.Logger, location string) *Committer {
	return &Committer{
		sales:    sales,
		queue:    queue,
		logger:   logger,
		location: location,
	}
}

// Commit фиксирует корзину как продажу.
// Порядок: валидация корзины и оплаты, затем одна локальная транзакция
// (авторитетная перепроверка остатков + вставка продажи + списание),
// затем постановка событий репликации. Отказ репликации никогда не
// отменяет продажу: продажа финальна с момента локальной фиксации.
// При успехе корзина очищается; при отклонении остается нетронутой.
func (c *Committer) Commit(
	ctx context.Context,
	crt *cart.Cart,
	method models.PaymentMethod,
	tendered int64,
	cashier models.Principal,
) (*models.Sale, error) {
	// Validating
	lines := crt.Lines()
	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	totals := crt.Totals()
	if totals.Total < 0 || (totals.Discount > 0 && totals.Discount >= totals.Subtotal) {
		return nil, &models.ValidationError{Field: "discount", Reason: "must be less than subtotal"}
	}
	if tendered < totals.Total {
		return nil, &models.InsufficientPaymentError{
			Total:    totals.Total,
			Tendered: tendered,
		}
	}

	sale := &models.Sale{
		Timestamp:     time.Now().UTC(),
		Lines:         lines,
		PaymentMethod: method,
		Cashier:       cashier.Username,
		Discount:      totals.Discount,
		Subtotal:      totals.Subtotal,
		Total:         totals.Total,
		Profit:        totals.Profit,
		Tendered:      tendered,
		Change:        tendered - totals.Total,
	}

	// Reserving + Persisting: одна транзакция хранилища
	stocks, err := c.sales.CommitSale(ctx, sale)
	if err != nil {
		var stockErr *models.InsufficientStockError
		if errors.As(err, &stockErr) {
			// Бизнес-отклонение: кассир корректирует корзину и повторяет
			return nil, err
		}
		// Системный отказ хранилища - более серьёзный класс ошибки
		return nil, &models.PersistenceError{Op: "commit sale", Err: err}
	}

	c.logger.Info("Sale committed",
		"sale_id", sale.ID,
		"cart_id", crt.ID(),
		"cashier", cashier.Username,
		"total", sale.Total,
		"change", sale.Change,
		"lines", len(sale.Lines))

	// Committed: продажа финальна. Постановка событий в очередь идет
	// после транзакции; сбой здесь не теряет репликацию - строка продажи
	// уже помечена sync_status=pending, и recovery tick диспетчера
	// поставит события заново.
	c.enqueueSaleEvents(ctx, sale, stocks)

	crt.Clear()

	return sale, nil
}

// Reverse сторнирует продажу: восстанавливает остатки по всем строкам,
// удаляет запись продажи и ставит компенсирующие stock-changed события.
// Привилегированная операция, требует способности CanDeleteSale.
func (c *Committer) Reverse(ctx context.Context, saleID int64, by models.Principal) error {
	if !by.Role.CanDeleteSale() {
		return fmt.Errorf("%w: role %s cannot delete sales", models.ErrPermissionDenied, by.Role)
	}

	sale, stocks, err := c.sales.ReverseSale(ctx, saleID)
	if err != nil {
		if errors.Is(err, storage.ErrSaleNotFound) {
			return models.ErrSaleNotFound
		}
		return &models.PersistenceError{Op: "reverse sale", Err: err}
	}

	c.logger.Info("Sale reversed",
		"sale_id", saleID,
		"by", by.Username,
		"total", sale.Total,
		"lines", len(sale.Lines))

	for _, line := range sale.Lines {
		c.enqueueStockChanged(ctx, line.SKU, stocks[line.SKU])
	}

	return nil
}

// enqueueSaleEvents ставит в очередь sale-created и по одному
// stock-changed на каждый затронутый SKU
func (c *Committer) enqueueSaleEvents(ctx context.Context, sale *models.Sale, stocks map[string]int) {
	doc := api.SaleDocumentFrom(sale, c.location)
	payload, err := json.Marshal(doc)
	if err != nil {
		c.logger.Error("Failed to marshal sale document", "sale_id", sale.ID, "error", err)
		return
	}

	event := &models.SyncEvent{
		EventID: uuid.New().String(),
		Type:    models.EventSaleCreated,
		Key:     strconv.FormatInt(sale.ID, 10),
		Payload: payload,
	}
	if _, err := c.queue.Append(ctx, event); err != nil {
		c.logger.Error("Failed to enqueue sale-created event",
			"sale_id", sale.ID, "error", err)
		// Строка продажи осталась в sync_status=pending, recovery tick подберет
		return
	}

	for _, line := range sale.Lines {
		c.enqueueStockChanged(ctx, line.SKU, stocks[line.SKU])
	}
}

// enqueueStockChanged ставит в очередь событие изменения остатка.
// Передается абсолютное значение, поэтому повторная доставка безопасна.
func (c *Committer) enqueueStockChanged(ctx context.Context, sku string, stock int) {
	payload, err := json.Marshal(api.StockPatch{Stock: stock})
	if err != nil {
		c.logger.Error("Failed to marshal stock patch", "sku", sku, "error", err)
		return
	}

	event := &models.SyncEvent{
		EventID: uuid.New().String(),
		Type:    models.EventStockChanged,
		Key:     sku,
		Payload: payload,
	}
	if _, err := c.queue.Append(ctx, event); err != nil {
		c.logger.Error("Failed to enqueue stock-changed event",
			"sku", sku, "error", err)
	}
}
