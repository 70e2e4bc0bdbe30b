// Package storagetest holds a behaviour suite every storage.Store implementation must pass.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/storage"
)

// Run exercises store against the storage.Store contract.
// newStore must return an empty store; Run closes it when each subtest ends.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("Put assigns distinct IDs to identical items", func(t *testing.T) {
		store := open(t, newStore)
		a := &models.TodoItem{Title: "Same", Status: models.StatusTodo}
		b := &models.TodoItem{Title: "Same", Status: models.StatusTodo}
		mustPut(t, store, a)
		mustPut(t, store, b)

		if a.ID == 0 || b.ID == 0 {
			t.Fatalf("expected IDs to be assigned, got %d and %d", a.ID, b.ID)
		}
		if a.ID == b.ID {
			t.Errorf("expected distinct IDs, both were %d", a.ID)
		}
		if a.CreatedAt == 0 || a.UpdatedAt == 0 {
			t.Error("expected timestamps to be set")
		}
	})

	t.Run("Get returns nil for missing item", func(t *testing.T) {
		store := open(t, newStore)
		item, err := store.Get(ctx, 424242)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if item != nil {
			t.Errorf("expected nil, got %+v", item)
		}
	})

	t.Run("Get round-trips every field", func(t *testing.T) {
		store := open(t, newStore)
		due := time.Date(2026, 12, 24, 18, 30, 0, 0, time.UTC)
		original := &models.TodoItem{
			Title:       "Wrap presents",
			Description: "the big box first",
			Checked:     true,
			Status:      models.StatusInProgress,
			DueDate:     &due,
		}
		mustPut(t, store, original)

		got, err := store.Get(ctx, original.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected item, got nil")
		}
		if got.Title != original.Title || got.Description != original.Description {
			t.Errorf("text mismatch: got %q/%q", got.Title, got.Description)
		}
		if !got.Checked {
			t.Error("expected checked to be true")
		}
		if got.Status != models.StatusInProgress {
			t.Errorf("status: got %s, want IN_PROGRESS", got.Status)
		}
		if got.DueDate == nil || !got.DueDate.Equal(due) {
			t.Errorf("dueDate: got %v, want %v", got.DueDate, due)
		}
	})

	t.Run("Put replaces existing item and keeps ID", func(t *testing.T) {
		store := open(t, newStore)
		item := &models.TodoItem{Title: "Before", Status: models.StatusTodo}
		mustPut(t, store, item)
		id, created := item.ID, item.CreatedAt

		item.Title = "After"
		item.Checked = true
		mustPut(t, store, item)

		if item.ID != id {
			t.Errorf("ID changed from %d to %d", id, item.ID)
		}
		got, err := store.Get(ctx, id)
		if err != nil || got == nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Title != "After" || !got.Checked {
			t.Errorf("update not persisted: %+v", got)
		}
		if got.CreatedAt != created {
			t.Errorf("createdAt changed from %d to %d", created, got.CreatedAt)
		}
		all, err := store.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected 1 item after replace, got %d", len(all))
		}
	})

	t.Run("Put with unknown ID fails", func(t *testing.T) {
		store := open(t, newStore)
		if err := store.Put(ctx, &models.TodoItem{ID: 999, Title: "Ghost"}); err == nil {
			t.Error("expected error for unknown ID")
		}
	})

	t.Run("GetByTitle tolerates zero one and many", func(t *testing.T) {
		store := open(t, newStore)
		mustPut(t, store, &models.TodoItem{Title: "Dup", Status: models.StatusTodo})
		mustPut(t, store, &models.TodoItem{Title: "Solo", Status: models.StatusTodo})
		mustPut(t, store, &models.TodoItem{Title: "Dup", Status: models.StatusTodo})

		for title, want := range map[string]int{"Dup": 2, "Solo": 1, "None": 0} {
			got, err := store.GetByTitle(ctx, title)
			if err != nil {
				t.Fatalf("GetByTitle(%q) failed: %v", title, err)
			}
			if len(got) != want {
				t.Errorf("GetByTitle(%q): got %d items, want %d", title, len(got), want)
			}
		}
	})

	t.Run("List keeps insertion order", func(t *testing.T) {
		store := open(t, newStore)
		titles := []string{"first", "second", "third", "fourth"}
		for _, title := range titles {
			mustPut(t, store, &models.TodoItem{Title: title, Status: models.StatusTodo})
		}

		for round := 0; round < 2; round++ {
			items, err := store.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(items) != len(titles) {
				t.Fatalf("expected %d items, got %d", len(titles), len(items))
			}
			for i, item := range items {
				if item.Title != titles[i] {
					t.Errorf("round %d position %d: got %q, want %q", round, i, item.Title, titles[i])
				}
			}
		}
	})

	t.Run("DeleteByID removes only that item", func(t *testing.T) {
		store := open(t, newStore)
		keep := &models.TodoItem{Title: "keep", Status: models.StatusTodo}
		drop := &models.TodoItem{Title: "drop", Status: models.StatusTodo}
		mustPut(t, store, keep)
		mustPut(t, store, drop)

		if err := store.DeleteByID(ctx, drop.ID); err != nil {
			t.Fatalf("DeleteByID failed: %v", err)
		}
		if err := store.DeleteByID(ctx, drop.ID); err != nil {
			t.Errorf("second DeleteByID should be a no-op, got %v", err)
		}
		if got, _ := store.Get(ctx, drop.ID); got != nil {
			t.Error("expected deleted item to be gone")
		}
		if got, _ := store.Get(ctx, keep.ID); got == nil {
			t.Error("expected other item to remain")
		}
	})

	t.Run("DeleteByTitle removes all matches", func(t *testing.T) {
		store := open(t, newStore)
		mustPut(t, store, &models.TodoItem{Title: "Dup", Status: models.StatusTodo})
		mustPut(t, store, &models.TodoItem{Title: "Other", Status: models.StatusTodo})
		mustPut(t, store, &models.TodoItem{Title: "Dup", Status: models.StatusTodo})

		n, err := store.DeleteByTitle(ctx, "Dup")
		if err != nil {
			t.Fatalf("DeleteByTitle failed: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 removed, got %d", n)
		}
		n, err = store.DeleteByTitle(ctx, "Dup")
		if err != nil || n != 0 {
			t.Errorf("expected (0, nil) on second delete, got (%d, %v)", n, err)
		}
		items, _ := store.List(ctx)
		if len(items) != 1 || items[0].Title != "Other" {
			t.Errorf("unexpected remaining items: %+v", items)
		}
	})

	t.Run("IDs are not reused after delete", func(t *testing.T) {
		store := open(t, newStore)
		first := &models.TodoItem{Title: "one", Status: models.StatusTodo}
		mustPut(t, store, first)
		if err := store.DeleteByID(ctx, first.ID); err != nil {
			t.Fatalf("DeleteByID failed: %v", err)
		}
		second := &models.TodoItem{Title: "two", Status: models.StatusTodo}
		mustPut(t, store, second)
		if second.ID == first.ID {
			t.Errorf("ID %d was reused", first.ID)
		}
	})
}

func open(t *testing.T, newStore func(t *testing.T) storage.Store) storage.Store {
	t.Helper()
	store := newStore(t)
	t.Cleanup(func() { store.Close() })
	return store
}

func mustPut(t *testing.T, store storage.Store, item *models.TodoItem) {
	t.Helper()
	if err := store.Put(context.Background(), item); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
}
