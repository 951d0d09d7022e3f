package dispatcher

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/bookpos/internal/models"
	pkgapi "github.com/iudanet/bookpos/pkg/api"
)

// recoveryLoop периодически ищет продажи, чья репликация не попала
// в очередь: процесс упал между фиксацией транзакции и постановкой
// событий. Строка продажи помечена sync_status=pending внутри самой
// транзакции фиксации, поэтому такой разрыв всегда обнаружим.
func (d *Dispatcher) recoveryLoop(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.RecoveryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.recoverUnqueuedSales(ctx)
		}
	}
}

// recoverUnqueuedSales ставит заново события для зафиксированных,
// но не поставленных в очередь продаж
func (d *Dispatcher) recoverUnqueuedSales(ctx context.Context) {
	sales, err := d.sales.ListSalesBySyncStatus(ctx, models.SyncStatusPending)
	if err != nil {
		d.logger.Error("Recovery: failed to list pending sales", "error", err)
		return
	}

	for _, sale := range sales {
		d.recoverSaleCreated(ctx, sale)

		// Списания проверяются независимо от sale-created: процесс мог
		// упасть между постановкой sale-created и постановкой списаний.
		// Отправляется текущий остаток каталога: значение абсолютное,
		// поэтому это безопасно и при уже доставленных списаниях.
		for _, line := range sale.Lines {
			d.recoverStock(ctx, line.SKU)
		}
	}
}

// recoverSaleCreated ставит sale-created заново, если его нет в очереди
func (d *Dispatcher) recoverSaleCreated(ctx context.Context, sale *models.Sale) {
	key := strconv.FormatInt(sale.ID, 10)

	queued, err := d.queue.HasKey(ctx, models.EventSaleCreated, key)
	if err != nil {
		d.logger.Error("Recovery: failed to check queue", "sale_id", sale.ID, "error", err)
		return
	}
	if queued {
		return
	}

	d.logger.Warn("Recovering unqueued sale", "sale_id", sale.ID)

	payload, err := json.Marshal(pkgapi.SaleDocumentFrom(sale, d.cfg.Location))
	if err != nil {
		d.logger.Error("Recovery: failed to marshal sale document", "sale_id", sale.ID, "error", err)
		return
	}

	event := &models.SyncEvent{
		EventID: uuid.New().String(),
		Type:    models.EventSaleCreated,
		Key:     key,
		Payload: payload,
	}
	if err := d.Enqueue(ctx, event); err != nil {
		d.logger.Error("Recovery: failed to enqueue sale", "sale_id", sale.ID, "error", err)
	}
}

// recoverStock ставит stock-changed с текущим остатком каталога
func (d *Dispatcher) recoverStock(ctx context.Context, sku string) {
	queued, err := d.queue.HasKey(ctx, models.EventStockChanged, sku)
	if err != nil {
		d.logger.Error("Recovery: failed to check queue", "sku", sku, "error", err)
		return
	}
	if queued {
		return
	}

	product, err := d.catalog.GetProduct(ctx, sku)
	if err != nil {
		d.logger.Error("Recovery: failed to get product", "sku", sku, "error", err)
		return
	}

	payload, err := json.Marshal(pkgapi.StockPatch{Stock: product.Stock})
	if err != nil {
		d.logger.Error("Recovery: failed to marshal stock patch", "sku", sku, "error", err)
		return
	}

	event := &models.SyncEvent{
		EventID: uuid.New().String(),
		Type:    models.EventStockChanged,
		Key:     sku,
		Payload: payload,
	}
	if err := d.Enqueue(ctx, event); err != nil {
		d.logger.Error("Recovery: failed to enqueue stock change", "sku", sku, "error", err)
	}
}
