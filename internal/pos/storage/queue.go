package storage

import (
	"context"
	"time"

	"github.com/iudanet/bookpos/internal/models"
)

// EventQueue defines interface for the durable outbound replication queue.
// Events survive process restarts; a committed sale's replication is never
// silently forgotten. Producers only Append, the dispatcher owns the rest.
type EventQueue interface {
	// Append adds a pending event to the tail of the queue and returns
	// its assigned sequence number. Never performs network I/O.
	Append(ctx context.Context, event *models.SyncEvent) (uint64, error)

	// Claim returns the oldest due pending event and marks it inflight.
	// Events whose NextAttempt lies in the future are skipped.
	// Returns ErrQueueEmpty if no due pending events are available.
	Claim(ctx context.Context) (*models.SyncEvent, error)

	// Release returns an inflight event to pending after a failed
	// delivery attempt, recording the attempt count and last error.
	// The event is not claimable again before nextAttempt, so the
	// backoff delay never pins a worker.
	Release(ctx context.Context, id uint64, attempts int, lastError string, nextAttempt time.Time) error

	// Ack retires a delivered event from the queue
	Ack(ctx context.Context, id uint64) error

	// Fail transitions an event to the terminal failed status.
	// Failed events are kept for operator inspection.
	Fail(ctx context.Context, id uint64, lastError string) error

	// ResetInflight returns all inflight events to pending.
	// Called on startup: an inflight event means the process crashed
	// mid-delivery, and re-sending is safe because keys are idempotent.
	ResetInflight(ctx context.Context) (int, error)

	// PendingCount returns the number of pending and inflight events
	PendingCount(ctx context.Context) (int, error)

	// ListFailed returns all events in the terminal failed status
	ListFailed(ctx context.Context) ([]*models.SyncEvent, error)

	// HasKey reports whether a non-terminal event of the given type
	// with the given idempotency key is already queued.
	// Used by the dispatcher recovery tick.
	HasKey(ctx context.Context, eventType models.EventType, key string) (bool, error)
}
