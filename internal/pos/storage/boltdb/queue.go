package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/storage"
)

// Append adds a pending event to the tail of the queue.
// Ключом служит монотонный sequence number в big-endian кодировке,
// поэтому обход курсором даёт порядок постановки в очередь.
func (s *Storage) Append(ctx context.Context, event *models.SyncEvent) (uint64, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var seq uint64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(eventsBucket)

		id, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}

		stored := event.Clone()
		stored.ID = id
		stored.Status = models.EventStatusPending
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = time.Now().UTC()
		}

		data, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		if err := bucket.Put(seqKey(id), data); err != nil {
			return fmt.Errorf("failed to save event: %w", err)
		}

		seq = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	event.ID = seq
	event.Status = models.EventStatusPending
	return seq, nil
}

// Claim returns the oldest due pending event and marks it inflight.
// Pending события с next_attempt в будущем пропускаются: они ждут
// своего backoff и не должны занимать воркера.
// Returns storage.ErrQueueEmpty if no due pending events are available
func (s *Storage) Claim(ctx context.Context) (*models.SyncEvent, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	now := time.Now().UTC()
	var claimed *models.SyncEvent
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(eventsBucket)
		cursor := bucket.Cursor()

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			event := &models.SyncEvent{}
			if err := json.Unmarshal(v, event); err != nil {
				return fmt.Errorf("failed to unmarshal event: %w", err)
			}

			if event.Status != models.EventStatusPending {
				continue
			}
			if event.NextAttempt.After(now) {
				continue
			}

			event.Status = models.EventStatusInflight
			data, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			if err := bucket.Put(k, data); err != nil {
				return fmt.Errorf("failed to update event: %w", err)
			}

			claimed = event
			return nil
		}

		return storage.ErrQueueEmpty
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

// Release returns an inflight event to pending after a failed attempt.
// Событие снова станет claimable не раньше nextAttempt.
func (s *Storage) Release(ctx context.Context, id uint64, attempts int, lastError string, nextAttempt time.Time) error {
	return s.updateEvent(id, func(event *models.SyncEvent) {
		event.Status = models.EventStatusPending
		event.Attempts = attempts
		event.LastError = lastError
		event.NextAttempt = nextAttempt.UTC()
	})
}

// Ack retires a delivered event from the queue
func (s *Storage) Ack(ctx context.Context, id uint64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(eventsBucket)
		if bucket.Get(seqKey(id)) == nil {
			return storage.ErrEventNotFound
		}
		return bucket.Delete(seqKey(id))
	})
}

// Fail transitions an event to the terminal failed status
func (s *Storage) Fail(ctx context.Context, id uint64, lastError string) error {
	return s.updateEvent(id, func(event *models.SyncEvent) {
		event.Status = models.EventStatusFailed
		event.LastError = lastError
	})
}

// ResetInflight returns all inflight events to pending.
// Inflight после рестарта означает, что процесс упал во время доставки;
// повторная отправка безопасна благодаря идемпотентным ключам.
func (s *Storage) ResetInflight(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(eventsBucket)
		cursor := bucket.Cursor()

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			event := &models.SyncEvent{}
			if err := json.Unmarshal(v, event); err != nil {
				return fmt.Errorf("failed to unmarshal event: %w", err)
			}

			if event.Status != models.EventStatusInflight {
				continue
			}

			event.Status = models.EventStatusPending
			data, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			if err := bucket.Put(k, data); err != nil {
				return fmt.Errorf("failed to update event: %w", err)
			}
			count++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// PendingCount returns the number of pending and inflight events
func (s *Storage) PendingCount(ctx context.Context) (int, error) {
	count := 0
	err := s.forEach(func(event *models.SyncEvent) {
		if event.Status == models.EventStatusPending || event.Status == models.EventStatusInflight {
			count++
		}
	})
	return count, err
}

// ListFailed returns all events in the terminal failed status
func (s *Storage) ListFailed(ctx context.Context) ([]*models.SyncEvent, error) {
	var failed []*models.SyncEvent
	err := s.forEach(func(event *models.SyncEvent) {
		if event.Status == models.EventStatusFailed {
			failed = append(failed, event)
		}
	})
	return failed, err
}

// HasKey reports whether a non-terminal event of the given type and key is queued
func (s *Storage) HasKey(ctx context.Context, eventType models.EventType, key string) (bool, error) {
	found := false
	err := s.forEach(func(event *models.SyncEvent) {
		if event.Type == eventType && event.Key == key &&
			(event.Status == models.EventStatusPending || event.Status == models.EventStatusInflight) {
			found = true
		}
	})
	return found, err
}

// updateEvent применяет мутацию к событию по id внутри одной транзакции
func (s *Storage) updateEvent(id uint64, mutate func(*models.SyncEvent)) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(eventsBucket)

		data := bucket.Get(seqKey(id))
		if data == nil {
			return storage.ErrEventNotFound
		}

		event := &models.SyncEvent{}
		if err := json.Unmarshal(data, event); err != nil {
			return fmt.Errorf("failed to unmarshal event: %w", err)
		}

		mutate(event)

		updated, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		return bucket.Put(seqKey(id), updated)
	})
}

// forEach обходит все события очереди в порядке постановки
func (s *Storage) forEach(visit func(*models.SyncEvent)) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(eventsBucket)
		cursor := bucket.Cursor()

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			event := &models.SyncEvent{}
			if err := json.Unmarshal(v, event); err != nil {
				return fmt.Errorf("failed to unmarshal event: %w", err)
			}
			visit(event)
		}

		return nil
	})
}

// seqKey кодирует sequence number в big-endian ключ
func seqKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
