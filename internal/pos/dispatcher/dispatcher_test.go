package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/api"
	"github.com/iudanet/bookpos/internal/pos/storage"
	"github.com/iudanet/bookpos/internal/pos/storage/boltdb"
	"github.com/iudanet/bookpos/internal/pos/storage/sqlite"
	pkgapi "github.com/iudanet/bookpos/pkg/api"
)

type fixture struct {
	db         *sqlite.Storage
	queue      *boltdb.Storage
	client     *api.ClientAPIMock
	dispatcher *Dispatcher
}

// newFixture собирает диспетчер с быстрыми повторами поверх реальных хранилищ
func newFixture(t *testing.T, client *api.ClientAPIMock) *fixture {
	t.Helper()

	ctx := context.Background()
	tmpDir := t.TempDir()

	db, err := sqlite.New(ctx, filepath.Join(tmpDir, "pos.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	queue, err := boltdb.New(ctx, filepath.Join(tmpDir, "queue.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, queue.Close())
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := Config{
		Workers:        1,
		MaxAttempts:    3,
		BaseBackoff:    time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		AttemptTimeout: time.Second,
		PollInterval:   10 * time.Millisecond,
		Location:       "test-till",
	}

	return &fixture{
		db:         db,
		queue:      queue,
		client:     client,
		dispatcher: New(queue, db, db, client, logger, cfg),
	}
}

func (f *fixture) commitSale(t *testing.T) *models.Sale {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, f.db.SaveProduct(ctx, &models.Product{
		SKU: "PEN", Title: "Pen", ItemType: models.ItemTypeBook,
		Price: 500, Cost: 200, Stock: 10,
		CreatedAt: now, UpdatedAt: now,
	}))

	sale := &models.Sale{
		Timestamp:     now,
		Lines:         []models.SaleLine{{SKU: "PEN", Title: "Pen", Quantity: 2, UnitPrice: 500, UnitCost: 200}},
		PaymentMethod: models.PaymentCash,
		Cashier:       "wanjiku",
		Subtotal:      1000,
		Total:         1000,
		Profit:        600,
		Tendered:      1000,
	}
	_, err := f.db.CommitSale(ctx, sale)
	require.NoError(t, err)

	return sale
}

func saleEvent(t *testing.T, sale *models.Sale) *models.SyncEvent {
	t.Helper()

	payload, err := json.Marshal(pkgapi.SaleDocumentFrom(sale, "test-till"))
	require.NoError(t, err)

	return &models.SyncEvent{
		EventID: "ev-sale",
		Type:    models.EventSaleCreated,
		Key:     "1",
		Payload: payload,
	}
}

func TestProcess_DeliversAndAcks(t *testing.T) {
	ctx := context.Background()
	client := &api.ClientAPIMock{
		PutSaleFunc: func(ctx context.Context, saleID string, doc json.RawMessage) error {
			return nil
		},
		GetDailySummaryFunc: func(ctx context.Context, date string) (*pkgapi.DailySummary, error) {
			return &pkgapi.DailySummary{}, nil
		},
		PutDailySummaryFunc: func(ctx context.Context, date string, summary pkgapi.DailySummary) error {
			return nil
		},
	}
	f := newFixture(t, client)
	sale := f.commitSale(t)

	require.NoError(t, f.dispatcher.Enqueue(ctx, saleEvent(t, sale)))

	event, err := f.queue.Claim(ctx)
	require.NoError(t, err)
	f.dispatcher.process(ctx, 0, event)

	// Доставлено и убрано из очереди
	require.Len(t, client.PutSaleCalls(), 1)
	assert.Equal(t, "1", client.PutSaleCalls()[0].SaleID)

	count, err := f.queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Продажа помечена synced
	got, err := f.db.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, got.SyncStatus)

	// Дневной агрегат дополнен суммой продажи
	require.Len(t, client.PutDailySummaryCalls(), 1)
	put := client.PutDailySummaryCalls()[0]
	assert.Equal(t, sale.Timestamp.Format("2006-01-02"), put.Date)
	assert.Equal(t, int64(1000), put.Summary.TotalSales)
	assert.Equal(t, 1, put.Summary.TransactionCount)
}

// drainProcess гоняет claim/process до опустошения очереди.
// Между попытками события лежат в pending на backoff, поэтому
// пустой claim означает ожидание, а не завершение.
func drainProcess(t *testing.T, f *fixture) {
	t.Helper()

	ctx := context.Background()
	deadline := time.Now().Add(5 * time.Second)
	for {
		event, err := f.queue.Claim(ctx)
		if errors.Is(err, storage.ErrQueueEmpty) {
			count, countErr := f.queue.PendingCount(ctx)
			require.NoError(t, countErr)
			if count == 0 {
				return
			}
			require.True(t, time.Now().Before(deadline), "queue did not drain")
			time.Sleep(time.Millisecond)
			continue
		}
		require.NoError(t, err)
		f.dispatcher.process(ctx, 0, event)
	}
}

func TestProcess_RetriesUntilSuccess(t *testing.T) {
	ctx := context.Background()

	var calls atomic.Int32
	client := &api.ClientAPIMock{
		PatchStockFunc: func(ctx context.Context, sku string, doc json.RawMessage) error {
			if calls.Add(1) < 3 {
				return errors.New("connection refused")
			}
			return nil
		},
	}
	f := newFixture(t, client)

	payload, _ := json.Marshal(pkgapi.StockPatch{Stock: 8})
	require.NoError(t, f.dispatcher.Enqueue(ctx, &models.SyncEvent{
		EventID: "ev-stock",
		Type:    models.EventStockChanged,
		Key:     "PEN",
		Payload: payload,
	}))

	drainProcess(t, f)

	assert.Equal(t, int32(3), calls.Load())

	count, err := f.queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProcess_ReleasesBetweenAttempts(t *testing.T) {
	ctx := context.Background()
	client := &api.ClientAPIMock{
		PatchStockFunc: func(ctx context.Context, sku string, doc json.RawMessage) error {
			return errors.New("connection refused")
		},
	}
	f := newFixture(t, client)

	payload, _ := json.Marshal(pkgapi.StockPatch{Stock: 8})
	require.NoError(t, f.dispatcher.Enqueue(ctx, &models.SyncEvent{
		EventID: "ev-stock",
		Type:    models.EventStockChanged,
		Key:     "PEN",
		Payload: payload,
	}))

	event, err := f.queue.Claim(ctx)
	require.NoError(t, err)
	f.dispatcher.process(ctx, 0, event)

	// После неудачной попытки событие не висит inflight: оно вернулось
	// в pending с backoff и счетчиком попыток
	count, err := f.queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	deadline := time.Now().Add(5 * time.Second)
	for {
		event, err = f.queue.Claim(ctx)
		if err == nil {
			break
		}
		require.ErrorIs(t, err, storage.ErrQueueEmpty)
		require.True(t, time.Now().Before(deadline), "released event never became due")
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, 1, event.Attempts)
	assert.Contains(t, event.LastError, "connection refused")
}

func TestProcess_TerminalFailure(t *testing.T) {
	ctx := context.Background()
	client := &api.ClientAPIMock{
		PutSaleFunc: func(ctx context.Context, saleID string, doc json.RawMessage) error {
			return errors.New("ledger is down")
		},
	}
	f := newFixture(t, client)
	sale := f.commitSale(t)

	require.NoError(t, f.dispatcher.Enqueue(ctx, saleEvent(t, sale)))

	drainProcess(t, f)

	// Ровно MaxAttempts попыток, затем терминальный failed
	assert.Len(t, client.PutSaleCalls(), 3)

	failed, err := f.queue.ListFailed(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, 3, failed[0].Attempts)
	assert.Contains(t, failed[0].LastError, "ledger is down")

	// Продажа остается авторитетной локально, статус failed
	got, err := f.db.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusFailed, got.SyncStatus)
}

func TestProcess_UnknownEventType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &api.ClientAPIMock{})

	require.NoError(t, f.dispatcher.Enqueue(ctx, &models.SyncEvent{
		EventID: "ev-bad",
		Type:    models.EventType("unknown"),
		Key:     "X",
	}))

	event, err := f.queue.Claim(ctx)
	require.NoError(t, err)
	f.dispatcher.process(ctx, 0, event)

	failed, err := f.queue.ListFailed(ctx)
	require.NoError(t, err)
	assert.Len(t, failed, 1)
}

func TestRun_DeliversEnqueuedEvents(t *testing.T) {
	delivered := make(chan string, 4)
	client := &api.ClientAPIMock{
		PatchStockFunc: func(ctx context.Context, sku string, doc json.RawMessage) error {
			delivered <- sku
			return nil
		},
	}
	f := newFixture(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- f.dispatcher.Run(ctx)
	}()

	payload, _ := json.Marshal(pkgapi.StockPatch{Stock: 8})
	require.NoError(t, f.dispatcher.Enqueue(ctx, &models.SyncEvent{
		EventID: "ev-stock",
		Type:    models.EventStockChanged,
		Key:     "PEN",
		Payload: payload,
	}))

	select {
	case sku := <-delivered:
		assert.Equal(t, "PEN", sku)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}

	cancel()
	require.NoError(t, <-done)

	count, err := f.queue.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecoverUnqueuedSales(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &api.ClientAPIMock{})

	// Продажа зафиксирована, но события не попали в очередь
	// (процесс упал между транзакцией и постановкой)
	sale := f.commitSale(t)

	f.dispatcher.recoverUnqueuedSales(ctx)

	first, err := f.queue.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EventSaleCreated, first.Type)
	assert.Equal(t, "1", first.Key)

	var doc pkgapi.SaleDocument
	require.NoError(t, json.Unmarshal(first.Payload, &doc))
	assert.Equal(t, sale.ID, doc.SaleID)
	assert.Equal(t, "test-till", doc.Location)

	// Текущий остаток каталога как абсолютное значение
	second, err := f.queue.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EventStockChanged, second.Type)
	assert.Equal(t, "PEN", second.Key)

	var patch pkgapi.StockPatch
	require.NoError(t, json.Unmarshal(second.Payload, &patch))
	assert.Equal(t, 8, patch.Stock)

	_, err = f.queue.Claim(ctx)
	assert.ErrorIs(t, err, storage.ErrQueueEmpty)
}

func TestRecoverUnqueuedSales_PartialEnqueue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &api.ClientAPIMock{})

	// Процесс упал между постановкой sale-created и постановкой
	// списаний: в очереди есть только sale-created
	sale := f.commitSale(t)
	require.NoError(t, f.dispatcher.Enqueue(ctx, saleEvent(t, sale)))

	f.dispatcher.recoverUnqueuedSales(ctx)

	// sale-created не дублируется, списание восстановлено
	first, err := f.queue.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EventSaleCreated, first.Type)

	second, err := f.queue.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EventStockChanged, second.Type)
	assert.Equal(t, "PEN", second.Key)

	var patch pkgapi.StockPatch
	require.NoError(t, json.Unmarshal(second.Payload, &patch))
	assert.Equal(t, 8, patch.Stock)

	_, err = f.queue.Claim(ctx)
	assert.ErrorIs(t, err, storage.ErrQueueEmpty)
}

func TestRecoverUnqueuedSales_SkipsFullyQueued(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &api.ClientAPIMock{})

	sale := f.commitSale(t)
	require.NoError(t, f.dispatcher.Enqueue(ctx, saleEvent(t, sale)))

	payload, err := json.Marshal(pkgapi.StockPatch{Stock: 8})
	require.NoError(t, err)
	require.NoError(t, f.dispatcher.Enqueue(ctx, &models.SyncEvent{
		EventID: "ev-stock",
		Type:    models.EventStockChanged,
		Key:     "PEN",
		Payload: payload,
	}))

	// Оба события уже в очереди - recovery ничего не добавляет
	f.dispatcher.recoverUnqueuedSales(ctx)

	count, err := f.queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Повторный прогон идемпотентен
	f.dispatcher.recoverUnqueuedSales(ctx)
	count, err = f.queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
