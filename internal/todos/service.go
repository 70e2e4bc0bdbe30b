// Package todos implements the todo list operations on top of a storage.Store.
//
// Every operation returns a resolution.Result instead of an error. Store
// failures are logged here and reported as STORE_ERROR with a generic
// message, so transports never see the underlying cause.
package todos

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/todolist/internal/metrics"
	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/resolution"
	"github.com/mmynk/todolist/internal/storage"
)

const (
	MessageAdded   = "Todo item added"
	MessageDeleted = "Deleted"
)

// Service runs the todo operations. It holds no mutable state of its own and
// re-reads from the store on every call, so it is safe for concurrent use.
type Service struct {
	store   storage.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for request and failure logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics records every operation outcome on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a Service backed by store.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every item in insertion order.
func (s *Service) List(ctx context.Context) resolution.Result {
	s.logger.Info("List request received")

	items, err := s.store.List(ctx)
	if err != nil {
		return s.storeFailure("list", err)
	}

	s.logger.Info("List successful", "count", len(items))
	return s.done("list", resolution.SuccessList(items))
}

// Add stores a new item. Any ID supplied by the caller is ignored.
func (s *Service) Add(ctx context.Context, item models.TodoItem) resolution.Result {
	s.logger.Info("Add request received", "title", item.Title)

	item.ID = 0
	item.CreatedAt = 0
	item.UpdatedAt = 0
	if item.Status == "" {
		item.Status = models.StatusTodo
	}
	if !item.Status.Valid() {
		return s.done("add", resolution.InvalidRequest(fmt.Sprintf("unknown status %q", item.Status)))
	}

	if err := s.store.Put(ctx, &item); err != nil {
		return s.storeFailure("add", err)
	}

	s.logger.Info("Todo item added", "id", item.ID)
	return s.done("add", resolution.Created(&item, MessageAdded))
}

// Search looks items up by title, or by id when no title is given.
func (s *Service) Search(ctx context.Context, title *string, id *int64) resolution.Result {
	s.logger.Info("Search request received", "title", deref(title), "id", deref(id))

	addr, err := resolution.Resolve(title, id)
	if err != nil {
		return s.done("search", resolution.Classify(err))
	}

	switch addr.Mode {
	case resolution.ByTitle:
		items, err := s.store.GetByTitle(ctx, addr.Title)
		if err != nil {
			return s.storeFailure("search", err)
		}
		s.logger.Info("Search successful", "mode", addr.Mode, "count", len(items))
		return s.done("search", resolution.SuccessList(items))
	default:
		item, err := s.store.Get(ctx, addr.ID)
		if err != nil {
			return s.storeFailure("search", err)
		}
		if item == nil {
			return s.done("search", resolution.NotFound(fmt.Sprintf("no todo item with id %d", addr.ID)))
		}
		s.logger.Info("Search successful", "mode", addr.Mode, "id", item.ID)
		return s.done("search", resolution.SuccessList([]*models.TodoItem{item}))
	}
}

// Delete removes items by title, or a single item by id when no title is given.
// Deleting by a title that matches nothing still succeeds.
func (s *Service) Delete(ctx context.Context, title *string, id *int64) resolution.Result {
	s.logger.Info("Delete request received", "title", deref(title), "id", deref(id))

	addr, err := resolution.Resolve(title, id)
	if err != nil {
		return s.done("delete", resolution.Classify(err))
	}

	switch addr.Mode {
	case resolution.ByTitle:
		n, err := s.store.DeleteByTitle(ctx, addr.Title)
		if err != nil {
			return s.storeFailure("delete", err)
		}
		s.logger.Info("Todo items deleted", "title", addr.Title, "count", n)
	default:
		existing, err := s.store.Get(ctx, addr.ID)
		if err != nil {
			return s.storeFailure("delete", err)
		}
		if existing == nil {
			return s.done("delete", resolution.NotFound(fmt.Sprintf("no todo item with id %d", addr.ID)))
		}
		if err := s.store.DeleteByID(ctx, addr.ID); err != nil {
			return s.storeFailure("delete", err)
		}
		s.logger.Info("Todo item deleted", "id", addr.ID)
	}
	return s.done("delete", resolution.Success(nil, MessageDeleted))
}

// Update merges patch into the item with the given id.
//
// The fetch and the write are separate store calls; a concurrent update of
// the same id in between is overwritten (last writer wins).
func (s *Service) Update(ctx context.Context, id int64, patch models.Patch) resolution.Result {
	s.logger.Info("Update request received", "id", id, "title", deref(patch.Title), "checked", patch.Checked)

	if patch.Status != nil && !patch.Status.Valid() {
		return s.done("update", resolution.InvalidRequest(fmt.Sprintf("unknown status %q", *patch.Status)))
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return s.storeFailure("update", err)
	}
	if current == nil {
		return s.done("update", resolution.NotFound(fmt.Sprintf("no todo item with id %d", id)))
	}

	merged := resolution.Merge(*current, patch)
	if err := s.store.Put(ctx, &merged); err != nil {
		return s.storeFailure("update", err)
	}

	s.logger.Info("Todo item updated", "id", merged.ID)
	return s.done("update", resolution.Success(&merged, ""))
}

func (s *Service) storeFailure(op string, err error) resolution.Result {
	s.logger.Error("Store operation failed", "operation", op, "error", err)
	return s.done(op, resolution.StoreError())
}

func (s *Service) done(op string, res resolution.Result) resolution.Result {
	s.metrics.ObserveOperation(op, res.Kind.String())
	return res
}

// deref makes optional request fields readable in logs.
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
