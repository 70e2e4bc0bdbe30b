// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/todolist/internal/models"
)

// Store defines the interface for todo item storage operations.
// This abstraction allows swapping storage backends (memory, SQLite, PostgreSQL)
// without changing the service layer.
//
// Each call is atomic on its own. Callers combining several calls (fetch,
// modify, write) get last-writer-wins semantics.
type Store interface {
	// Get retrieves an item by its ID.
	// Returns nil and no error if the item does not exist.
	Get(ctx context.Context, id int64) (*models.TodoItem, error)

	// GetByTitle returns every item whose title matches exactly, in insertion order.
	GetByTitle(ctx context.Context, title string) ([]*models.TodoItem, error)

	// Put writes an item. When item.ID is zero a new record is inserted and
	// item.ID is populated by the store; otherwise the record with that ID is replaced.
	Put(ctx context.Context, item *models.TodoItem) error

	// DeleteByID removes the item with the given ID. Deleting a missing ID is a no-op.
	DeleteByID(ctx context.Context, id int64) error

	// DeleteByTitle removes all items with the given title and reports how many were removed.
	DeleteByTitle(ctx context.Context, title string) (int64, error)

	// List returns all items in insertion order.
	List(ctx context.Context) ([]*models.TodoItem, error)

	// Close releases any resources held by the store.
	Close() error
}
