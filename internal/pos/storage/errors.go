package storage

import "errors"

// Common storage errors
var (
	// ErrProductNotFound indicates that product was not found in the catalog
	ErrProductNotFound = errors.New("product not found")

	// ErrSaleNotFound indicates that sale was not found in the sale store
	ErrSaleNotFound = errors.New("sale not found")

	// ErrEventNotFound indicates that sync event was not found in the queue
	ErrEventNotFound = errors.New("sync event not found")

	// ErrQueueEmpty indicates that no pending events are available
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
