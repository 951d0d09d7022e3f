// Package dispatcher реализует асинхронную доставку событий репликации
// в удалённый реестр: ограниченный пул воркеров, долговечная очередь,
// экспоненциальный backoff с jitter и терминальный статус failed после
// исчерпания попыток. Диспетчер никогда не блокирует фиксацию продажи
// и никогда не берет локальный commit lock: он только читает уже
// зафиксированные факты и пишет в удалённый реестр.
package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/api"
	"github.com/iudanet/bookpos/internal/pos/storage"
	pkgapi "github.com/iudanet/bookpos/pkg/api"
)

// Config настраивает пул воркеров и политику повторов
type Config struct {
	// Workers количество конкурентных отправителей (1-4)
	Workers int
	// MaxAttempts максимальное число попыток доставки одного события,
	// после которого событие переходит в терминальный failed
	MaxAttempts int
	// BaseBackoff начальная задержка экспоненциального backoff
	BaseBackoff time.Duration
	// MaxBackoff потолок задержки между попытками
	MaxBackoff time.Duration
	// AttemptTimeout ограничение одной попытки доставки
	AttemptTimeout time.Duration
	// PollInterval период опроса очереди воркером при простое
	PollInterval time.Duration
	// RecoveryInterval период проверки продаж, чья репликация
	// не попала в очередь (упали между фиксацией и постановкой)
	RecoveryInterval time.Duration
	// Location идентификатор кассы в документах реестра
	Location string
}

// DefaultConfig возвращает настройки по умолчанию
func DefaultConfig() Config {
	return Config{
		Workers:          2,
		MaxAttempts:      8,
		BaseBackoff:      time.Second,
		MaxBackoff:       60 * time.Second,
		AttemptTimeout:   10 * time.Second,
		PollInterval:     time.Second,
		RecoveryInterval: 30 * time.Second,
		Location:         "bookpos",
	}
}

// Dispatcher consumes the durable queue and replicates events
type Dispatcher struct {
	queue   storage.EventQueue
	sales   storage.SaleStore
	catalog storage.CatalogStore
	client  api.ClientAPI
	logger  *slog.Logger
	notify  chan struct{}
	cfg     Config
}

// New creates a new sync dispatcher
func New(
	queue storage.EventQueue,
	sales storage.SaleStore,
	catalog storage.CatalogStore,
	client api.ClientAPI,
	logger *slog.Logger,
	cfg Config,
) *Dispatcher {
	def := DefaultConfig()
	if cfg.Workers < 1 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = def.BaseBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	if cfg.AttemptTimeout <= 0 {
		cfg.AttemptTimeout = def.AttemptTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.RecoveryInterval <= 0 {
		cfg.RecoveryInterval = def.RecoveryInterval
	}
	if cfg.Location == "" {
		cfg.Location = def.Location
	}

	return &Dispatcher{
		queue:   queue,
		sales:   sales,
		catalog: catalog,
		client:  client,
		logger:  logger,
		notify:  make(chan struct{}, 1),
		cfg:     cfg,
	}
}

// Enqueue appends an event to the durable queue and wakes a worker.
// Возвращается сразу; сетевого I/O в потоке вызывающего нет никогда.
func (d *Dispatcher) Enqueue(ctx context.Context, event *models.SyncEvent) error {
	if _, err := d.queue.Append(ctx, event); err != nil {
		return fmt.Errorf("failed to enqueue event: %w", err)
	}

	// Неблокирующее уведомление: если канал полон, воркер и так проснется
	select {
	case d.notify <- struct{}{}:
	default:
	}

	return nil
}

// PendingCount возвращает количество событий, ожидающих доставки
func (d *Dispatcher) PendingCount(ctx context.Context) (int, error) {
	return d.queue.PendingCount(ctx)
}

// Run запускает пул воркеров и recovery ticker и блокируется до отмены
// контекста. При выходе in-flight попытки прерываются; события остаются
// в долговечной очереди, рестарт возобновляет доставку без потерь.
func (d *Dispatcher) Run(ctx context.Context) error {
	// Inflight после рестарта - процесс упал во время доставки
	reset, err := d.queue.ResetInflight(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset inflight events: %w", err)
	}
	if reset > 0 {
		d.logger.Info("Reset inflight events to pending", "count", reset)
	}

	var wg sync.WaitGroup
	for i := 0; i < d.cfg.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			d.workerLoop(ctx, worker)
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		d.recoveryLoop(ctx)
	}()

	d.logger.Info("Sync dispatcher started",
		"workers", d.cfg.Workers,
		"max_attempts", d.cfg.MaxAttempts)

	<-ctx.Done()
	wg.Wait()

	d.logger.Info("Sync dispatcher stopped")
	return nil
}

// workerLoop забирает события из очереди в порядке постановки
func (d *Dispatcher) workerLoop(ctx context.Context, worker int) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		event, err := d.queue.Claim(ctx)
		switch {
		case errors.Is(err, storage.ErrQueueEmpty):
			select {
			case <-ctx.Done():
				return
			case <-d.notify:
			case <-ticker.C:
			}
			continue
		case err != nil:
			d.logger.Error("Failed to claim event", "worker", worker, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			continue
		}

		d.process(ctx, worker, event)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// errUnknownEventType отмечает событие, доставить которое невозможно
// в принципе; такие события не повторяются, а сразу переходят в failed
var errUnknownEventType = errors.New("unknown event type")

// process выполняет одну попытку доставки события.
// Провалившееся событие возвращается в pending с отметкой времени
// следующей попытки: воркер не удерживается на backoff и может брать
// другие события. При падении процесса ResetInflight вернет взятое
// событие в pending на рестарте.
func (d *Dispatcher) process(ctx context.Context, worker int, event *models.SyncEvent) {
	attemptCtx, cancel := context.WithTimeout(ctx, d.cfg.AttemptTimeout)
	err := d.deliver(attemptCtx, event)
	cancel()

	attempts := event.Attempts + 1

	if err == nil {
		if ackErr := d.queue.Ack(ctx, event.ID); ackErr != nil {
			d.logger.Error("Failed to ack event", "event_id", event.EventID, "error", ackErr)
		}

		d.logger.Info("Event delivered",
			"worker", worker,
			"event_id", event.EventID,
			"type", event.Type,
			"key", event.Key,
			"attempts", attempts)

		if event.Type == models.EventSaleCreated {
			d.markSale(ctx, event, models.SyncStatusSynced)
			d.updateDailySummary(ctx, event)
		}
		return
	}

	if ctx.Err() != nil {
		// Останов процесса: событие остается inflight,
		// рестарт вернет его в pending
		return
	}

	d.logger.Warn("Delivery attempt failed",
		"worker", worker,
		"event_id", event.EventID,
		"type", event.Type,
		"key", event.Key,
		"attempt", attempts,
		"error", err)

	if attempts >= d.cfg.MaxAttempts || errors.Is(err, errUnknownEventType) {
		// Терминальный отказ - операционный алерт, не потеря продажи:
		// локальная запись продажи остается авторитетной
		d.logger.Error("Event delivery failed permanently",
			"event_id", event.EventID,
			"type", event.Type,
			"key", event.Key,
			"attempts", attempts,
			"error", err)
		if failErr := d.queue.Fail(ctx, event.ID, err.Error()); failErr != nil {
			d.logger.Error("Failed to mark event failed", "event_id", event.EventID, "error", failErr)
		}
		d.markSale(ctx, event, models.SyncStatusFailed)
		return
	}

	next := time.Now().UTC().Add(d.backoffDelay(attempts))
	if relErr := d.queue.Release(ctx, event.ID, attempts, err.Error(), next); relErr != nil {
		d.logger.Error("Failed to release event", "event_id", event.EventID, "error", relErr)
	}
}

// backoffDelay возвращает задержку перед попыткой с номером attempts+1:
// экспонента от BaseBackoff с jitter и потолком MaxBackoff
func (d *Dispatcher) backoffDelay(attempts int) time.Duration {
	backoff := retry.NewExponential(d.cfg.BaseBackoff)
	backoff = retry.WithJitter(d.cfg.BaseBackoff/2, backoff)
	backoff = retry.WithCappedDuration(d.cfg.MaxBackoff, backoff)

	var delay time.Duration
	for i := 0; i < attempts; i++ {
		next, stop := backoff.Next()
		if stop {
			break
		}
		delay = next
	}
	return delay
}

// deliver выполняет один запрос к реестру согласно типу события
func (d *Dispatcher) deliver(ctx context.Context, event *models.SyncEvent) error {
	switch event.Type {
	case models.EventSaleCreated:
		return d.client.PutSale(ctx, event.Key, event.Payload)
	case models.EventStockChanged:
		return d.client.PatchStock(ctx, event.Key, event.Payload)
	case models.EventProductUpsert:
		return d.client.PutProduct(ctx, event.Key, event.Payload)
	case models.EventProductDeleted:
		return d.client.DeleteProduct(ctx, event.Key)
	}
	return fmt.Errorf("%w %q", errUnknownEventType, event.Type)
}

// markSale переводит sync_status продажи для событий sale-created
func (d *Dispatcher) markSale(ctx context.Context, event *models.SyncEvent, status models.SyncStatus) {
	if event.Type != models.EventSaleCreated {
		return
	}

	saleID, err := strconv.ParseInt(event.Key, 10, 64)
	if err != nil {
		d.logger.Error("Invalid sale key in event", "key", event.Key, "error", err)
		return
	}

	if err := d.sales.SetSyncStatus(ctx, saleID, status); err != nil {
		// Продажа могла быть сторнирована, пока событие ждало доставки
		if !errors.Is(err, storage.ErrSaleNotFound) {
			d.logger.Error("Failed to set sale sync status",
				"sale_id", saleID, "status", status, "error", err)
		}
	}
}

// updateDailySummary обновляет дневной агрегат продаж в реестре.
// Best effort: ошибка логируется и не ставится в очередь повторов,
// агрегат пересчитается следующей продажей за тот же день.
func (d *Dispatcher) updateDailySummary(ctx context.Context, event *models.SyncEvent) {
	var doc pkgapi.SaleDocument
	if err := json.Unmarshal(event.Payload, &doc); err != nil {
		d.logger.Error("Failed to unmarshal sale document", "key", event.Key, "error", err)
		return
	}

	date := doc.Timestamp.Format("2006-01-02")

	summaryCtx, cancel := context.WithTimeout(ctx, d.cfg.AttemptTimeout)
	defer cancel()

	summary, err := d.client.GetDailySummary(summaryCtx, date)
	if err != nil {
		d.logger.Warn("Failed to get daily summary", "date", date, "error", err)
		return
	}

	summary.TotalSales += doc.Total
	summary.TransactionCount++
	summary.LastUpdated = time.Now().UTC()

	if err := d.client.PutDailySummary(summaryCtx, date, *summary); err != nil {
		d.logger.Warn("Failed to update daily summary", "date", date, "error", err)
	}
}
