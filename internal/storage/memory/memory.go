// Package memory provides an in-memory implementation of the storage.Store interface.
// It is used by tests and by the "memory" store driver.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps todo items in a map guarded by a RWMutex.
// IDs come from a monotonically increasing counter and are never reused.
type Store struct {
	mu     sync.RWMutex
	items  map[int64]*models.TodoItem
	nextID int64
	now    func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		items:  make(map[int64]*models.TodoItem),
		nextID: 1,
		now:    time.Now,
	}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// Get retrieves an item by ID.
func (s *Store) Get(ctx context.Context, id int64) (*models.TodoItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return item.Clone(), nil
}

// GetByTitle returns all items with an exactly matching title.
func (s *Store) GetByTitle(ctx context.Context, title string) ([]*models.TodoItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.TodoItem
	for _, item := range s.sorted() {
		if item.Title == title {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

// Put inserts a new item (ID == 0) or replaces an existing one.
func (s *Store) Put(ctx context.Context, item *models.TodoItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Unix()
	if item.ID == 0 {
		item.ID = s.nextID
		s.nextID++
		if item.CreatedAt == 0 {
			item.CreatedAt = now
		}
	} else if existing, ok := s.items[item.ID]; ok {
		item.CreatedAt = existing.CreatedAt
	} else {
		return fmt.Errorf("todo item not found: %d", item.ID)
	}
	item.UpdatedAt = now

	s.items[item.ID] = item.Clone()
	return nil
}

// DeleteByID removes a single item. Missing IDs are ignored.
func (s *Store) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

// DeleteByTitle removes every item with the given title.
func (s *Store) DeleteByTitle(ctx context.Context, title string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, item := range s.items {
		if item.Title == title {
			delete(s.items, id)
			removed++
		}
	}
	return removed, nil
}

// List returns all items ordered by ID, which is insertion order.
func (s *Store) List(ctx context.Context) ([]*models.TodoItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := s.sorted()
	out := make([]*models.TodoItem, len(sorted))
	for i, item := range sorted {
		out[i] = item.Clone()
	}
	return out, nil
}

// sorted returns the stored pointers ordered by ID. Callers must hold s.mu.
func (s *Store) sorted() []*models.TodoItem {
	out := make([]*models.TodoItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
