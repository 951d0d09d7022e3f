package boltdb

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/storage"
)

func newTestQueue(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "queue.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func testEvent(eventType models.EventType, key string) *models.SyncEvent {
	return &models.SyncEvent{
		EventID: key + "-event",
		Type:    eventType,
		Key:     key,
		Payload: json.RawMessage(`{"stock": 5}`),
	}
}

func TestAppend_AssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	first, err := queue.Append(ctx, testEvent(models.EventStockChanged, "PEN"))
	require.NoError(t, err)
	second, err := queue.Append(ctx, testEvent(models.EventStockChanged, "NB"))
	require.NoError(t, err)

	assert.Equal(t, first+1, second)

	count, err := queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClaim_FIFO(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	_, err := queue.Append(ctx, testEvent(models.EventSaleCreated, "1"))
	require.NoError(t, err)
	_, err = queue.Append(ctx, testEvent(models.EventStockChanged, "PEN"))
	require.NoError(t, err)

	first, err := queue.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EventSaleCreated, first.Type)
	assert.Equal(t, models.EventStatusInflight, first.Status)

	second, err := queue.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EventStockChanged, second.Type)

	// Все события inflight - очередь пуста для новых claim
	_, err = queue.Claim(ctx)
	assert.ErrorIs(t, err, storage.ErrQueueEmpty)
}

func TestAck_RemovesEvent(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	id, err := queue.Append(ctx, testEvent(models.EventSaleCreated, "1"))
	require.NoError(t, err)

	_, err = queue.Claim(ctx)
	require.NoError(t, err)

	require.NoError(t, queue.Ack(ctx, id))

	count, err := queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, queue.Ack(ctx, id), storage.ErrEventNotFound)
}

func TestRelease(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	id, err := queue.Append(ctx, testEvent(models.EventSaleCreated, "1"))
	require.NoError(t, err)

	_, err = queue.Claim(ctx)
	require.NoError(t, err)

	// Возврат в pending с прошедшим next_attempt - событие сразу claimable
	require.NoError(t, queue.Release(ctx, id, 3, "connection refused", time.Now().Add(-time.Second)))

	event, err := queue.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, event.Attempts)
	assert.Equal(t, "connection refused", event.LastError)
	assert.Equal(t, models.EventStatusInflight, event.Status)

	assert.ErrorIs(t, queue.Release(ctx, 999, 1, "x", time.Now()), storage.ErrEventNotFound)
}

func TestRelease_BackoffDelaysClaim(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	first, err := queue.Append(ctx, testEvent(models.EventSaleCreated, "1"))
	require.NoError(t, err)
	_, err = queue.Append(ctx, testEvent(models.EventStockChanged, "PEN"))
	require.NoError(t, err)

	_, err = queue.Claim(ctx)
	require.NoError(t, err)

	// Событие на backoff не выдается, но очередь не блокируется:
	// claim отдает следующее готовое событие
	require.NoError(t, queue.Release(ctx, first, 1, "timeout", time.Now().Add(time.Hour)))

	event, err := queue.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EventStockChanged, event.Type)

	_, err = queue.Claim(ctx)
	assert.ErrorIs(t, err, storage.ErrQueueEmpty)

	// Отложенное событие остается pending и учитывается в счетчике
	count, err := queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFail_Terminal(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	id, err := queue.Append(ctx, testEvent(models.EventSaleCreated, "1"))
	require.NoError(t, err)

	_, err = queue.Claim(ctx)
	require.NoError(t, err)
	require.NoError(t, queue.Fail(ctx, id, "gone for good"))

	// failed не считается pending и не выдается claim'ом
	count, err := queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = queue.Claim(ctx)
	assert.ErrorIs(t, err, storage.ErrQueueEmpty)

	failed, err := queue.ListFailed(ctx)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "gone for good", failed[0].LastError)
}

func TestResetInflight(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	_, err := queue.Append(ctx, testEvent(models.EventSaleCreated, "1"))
	require.NoError(t, err)
	_, err = queue.Append(ctx, testEvent(models.EventStockChanged, "PEN"))
	require.NoError(t, err)

	_, err = queue.Claim(ctx)
	require.NoError(t, err)
	_, err = queue.Claim(ctx)
	require.NoError(t, err)

	reset, err := queue.ResetInflight(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, reset)

	// Порядок очереди сохранен
	event, err := queue.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EventSaleCreated, event.Type)
}

func TestHasKey(t *testing.T) {
	ctx := context.Background()
	queue := newTestQueue(t)

	id, err := queue.Append(ctx, testEvent(models.EventSaleCreated, "7"))
	require.NoError(t, err)

	found, err := queue.HasKey(ctx, models.EventSaleCreated, "7")
	require.NoError(t, err)
	assert.True(t, found)

	// Тот же ключ, другой тип события
	found, err = queue.HasKey(ctx, models.EventStockChanged, "7")
	require.NoError(t, err)
	assert.False(t, found)

	// После ack ключ освобождается
	require.NoError(t, queue.Ack(ctx, id))
	found, err = queue.HasKey(ctx, models.EventSaleCreated, "7")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQueue_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "queue.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)

	_, err = store.Append(ctx, testEvent(models.EventSaleCreated, "1"))
	require.NoError(t, err)
	_, err = store.Claim(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// После рестарта inflight возвращается в pending и доставляется заново
	store, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, store.Close())
	}()

	reset, err := store.ResetInflight(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, reset)

	event, err := store.Claim(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.EventSaleCreated, event.Type)
	assert.Equal(t, "1", event.Key)
}
