// Package reconciler выполняет сверку локального каталога с удалённым
// реестром: pull забирает снимок и мержит его по политике LWW,
// push отправляет локальные правки каталога через общую очередь
// диспетчера. Остатки, списанные продажами, pull никогда не ломает:
// более свежая локальная версия всегда побеждает устаревший снимок.
package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/api"
	"github.com/iudanet/bookpos/internal/pos/storage"
	pkgapi "github.com/iudanet/bookpos/pkg/api"
)

// Service handles catalog reconciliation with the remote ledger
type Service struct {
	catalog storage.CatalogStore
	queue   storage.EventQueue
	client  api.ClientAPI
	logger  *slog.Logger
}

// New creates a new reconciler service
func New(catalog storage.CatalogStore, queue storage.EventQueue, client api.ClientAPI, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		queue:   queue,
		client:  client,
		logger:  logger,
	}
}

// PullResult contains pull operation results
type PullResult struct {
	Pulled    int // количество документов в снимке реестра
	Merged    int // количество записей, принятых в локальный каталог
	Conflicts int // количество конфликтов, разрешенных в пользу локальной версии
	Skipped   int // количество пропущенных документов (ошибки)
}

// Pull забирает снимок каталога из реестра и мержит его локально.
// Для каждого документа применяется правило LWW: запись принимается,
// только если удалённая версия новее локальной или SKU еще нет.
func (s *Service) Pull(ctx context.Context) (*PullResult, error) {
	s.logger.Info("Starting catalog pull")

	docs, err := s.client.GetProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog snapshot: %w", err)
	}

	result := &PullResult{Pulled: len(docs)}

	for _, doc := range docs {
		remote := pkgapi.ProductFromDocument(doc)
		if err := remote.Validate(); err != nil {
			s.logger.Warn("Skipping invalid remote document", "sku", doc.SKU, "error", err)
			result.Skipped++
			continue
		}

		merged, err := s.mergeProduct(ctx, remote)
		if err != nil {
			s.logger.Warn("Failed to merge remote product", "sku", remote.SKU, "error", err)
			result.Skipped++
			continue
		}

		if merged {
			result.Merged++
		} else {
			result.Conflicts++
		}
	}

	s.logger.Info("Catalog pull completed",
		"pulled", result.Pulled,
		"merged", result.Merged,
		"conflicts", result.Conflicts,
		"skipped", result.Skipped)

	return result, nil
}

// mergeProduct применяет LWW-правило для одной записи каталога.
// Возвращает (merged bool, err error): merged=false означает, что
// локальная версия новее и оставлена без изменений.
func (s *Service) mergeProduct(ctx context.Context, remote *models.Product) (bool, error) {
	local, err := s.catalog.GetProduct(ctx, remote.SKU)
	if err != nil {
		// SKU еще нет локально - просто сохраняем
		if errors.Is(err, storage.ErrProductNotFound) {
			return true, s.catalog.SaveProduct(ctx, remote)
		}
		return false, fmt.Errorf("failed to get local product: %w", err)
	}

	if remote.NewerThan(local) {
		s.logger.Debug("Merging product (remote wins)",
			"sku", remote.SKU,
			"remote_updated", remote.UpdatedAt,
			"local_updated", local.UpdatedAt)
		return true, s.catalog.SaveProduct(ctx, remote)
	}

	// Локальная версия новее: например, продажа успела списать остаток
	// после того, как реестр отдал снимок
	s.logger.Debug("Keeping local product (local is newer)",
		"sku", remote.SKU,
		"remote_updated", remote.UpdatedAt,
		"local_updated", local.UpdatedAt)

	return false, nil
}

// Push сохраняет локальную правку каталога и ставит её на репликацию.
// Вызывается для правок вне фиксации продажи (инвентарные операции).
func (s *Service) Push(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	if err := product.Validate(); err != nil {
		return err
	}

	if err := s.catalog.SaveProduct(ctx, product); err != nil {
		return &models.PersistenceError{Op: "save product", Err: err}
	}

	payload, err := json.Marshal(pkgapi.ProductDocumentFrom(product))
	if err != nil {
		return fmt.Errorf("failed to marshal product document: %w", err)
	}

	event := &models.SyncEvent{
		EventID: uuid.New().String(),
		Type:    models.EventProductUpsert,
		Key:     product.SKU,
		Payload: payload,
	}
	if _, err := s.queue.Append(ctx, event); err != nil {
		return fmt.Errorf("failed to enqueue product upsert: %w", err)
	}

	s.logger.Info("Product pushed", "sku", product.SKU, "stock", product.Stock)
	return nil
}

// PushDelete помечает товар удалённым локально и реплицирует удаление.
// Запись физически остается в каталоге (soft delete), чтобы LWW-сверка
// не воскресила товар из устаревшего снимка.
func (s *Service) PushDelete(ctx context.Context, sku string) error {
	if err := s.catalog.DeleteProduct(ctx, sku, time.Now().UTC()); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return fmt.Errorf("%w: %s", models.ErrUnknownSKU, sku)
		}
		return &models.PersistenceError{Op: "delete product", Err: err}
	}

	event := &models.SyncEvent{
		EventID: uuid.New().String(),
		Type:    models.EventProductDeleted,
		Key:     sku,
	}
	if _, err := s.queue.Append(ctx, event); err != nil {
		return fmt.Errorf("failed to enqueue product delete: %w", err)
	}

	s.logger.Info("Product delete pushed", "sku", sku)
	return nil
}
