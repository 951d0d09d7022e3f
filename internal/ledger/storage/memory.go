package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore - потокобезопасное хранилище документов в памяти.
// Реестр-референс не переживает рестарт, durability здесь не цель:
// касса обязана уметь доехать повторной доставкой.
type MemoryStore struct {
	sales     map[string]json.RawMessage
	products  map[string]json.RawMessage
	summaries map[string]json.RawMessage
	mu        sync.RWMutex
}

// NewMemoryStore creates a new in-memory document store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sales:     make(map[string]json.RawMessage),
		products:  make(map[string]json.RawMessage),
		summaries: make(map[string]json.RawMessage),
	}
}

func (s *MemoryStore) PutSale(_ context.Context, id string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales[id] = cloneDoc(doc)
	return nil
}

func (s *MemoryStore) GetSale(_ context.Context, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.sales[id]
	if !ok {
		return nil, ErrSaleNotFound
	}
	return cloneDoc(doc), nil
}

func (s *MemoryStore) PutProduct(_ context.Context, sku string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[sku] = cloneDoc(doc)
	return nil
}

// PatchProduct мержит поля в существующий документ товара.
// Отсутствующий документ создаётся из одних патч-полей: касса может
// прислать stock-changed раньше, чем product-upserted доедет.
func (s *MemoryStore) PatchProduct(_ context.Context, sku string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(map[string]any)
	if existing, ok := s.products[sku]; ok {
		if err := json.Unmarshal(existing, &merged); err != nil {
			return fmt.Errorf("unmarshal product %s: %w", sku, err)
		}
	}
	for k, v := range fields {
		merged[k] = v
	}

	doc, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshal product %s: %w", sku, err)
	}
	s.products[sku] = doc
	return nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.products, sku)
	return nil
}

func (s *MemoryStore) ListProducts(_ context.Context) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(s.products))
	for sku, doc := range s.products {
		out[sku] = cloneDoc(doc)
	}
	return out, nil
}

func (s *MemoryStore) PutDailySummary(_ context.Context, date string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[date] = cloneDoc(doc)
	return nil
}

func (s *MemoryStore) GetDailySummary(_ context.Context, date string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.summaries[date]
	if !ok {
		return nil, ErrSummaryNotFound
	}
	return cloneDoc(doc), nil
}

func cloneDoc(doc json.RawMessage) json.RawMessage {
	if doc == nil {
		return nil
	}
	out := make(json.RawMessage, len(doc))
	copy(out, doc)
	return out
}
