package models

import (
	"encoding/json"
	"time"
)

// EventType тип исходящего события репликации
type EventType string

const (
	EventSaleCreated    EventType = "sale-created"
	EventStockChanged   EventType = "stock-changed"
	EventProductUpsert  EventType = "product-upserted"
	EventProductDeleted EventType = "product-deleted"
)

// EventStatus статус события в очереди доставки
type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"  // ожидает доставки
	EventStatusInflight EventStatus = "inflight" // взято воркером, доставка выполняется
	EventStatusAcked    EventStatus = "acked"    // подтверждено удалённым реестром
	EventStatusFailed   EventStatus = "failed"   // терминальный отказ после maxAttempts
)

// SyncEvent представляет единицу исходящей репликации в очереди.
// Создается Committer'ом и Reconciler'ом при каждом локальном изменении,
// потребляется и завершается Sync Dispatcher'ом.
type SyncEvent struct {
	CreatedAt   time.Time       `json:"created_at"`   // CreatedAt время постановки в очередь
	NextAttempt time.Time       `json:"next_attempt"` // NextAttempt не брать в доставку раньше этого времени (backoff)
	EventID     string          `json:"event_id"`     // EventID уникальный идентификатор события (UUID)
	Type        EventType       `json:"type"`         // Type тип события
	Key         string          `json:"key"`          // Key ключ идемпотентности: id продажи или SKU (ключ удалённого документа)
	Payload     json.RawMessage `json:"payload"`      // Payload тело запроса к удалённому реестру
	LastError   string          `json:"last_error"`   // LastError текст последней ошибки доставки
	ID          uint64          `json:"id"`           // ID порядковый номер в очереди (присваивается при Append)
	Attempts    int             `json:"attempts"`     // Attempts количество выполненных попыток доставки
	Status      EventStatus     `json:"status"`       // Status текущий статус
}

// Clone создает глубокую копию события
func (e *SyncEvent) Clone() *SyncEvent {
	clone := *e
	clone.Payload = make(json.RawMessage, len(e.Payload))
	copy(clone.Payload, e.Payload)
	return &clone
}
