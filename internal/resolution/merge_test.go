package resolution

import (
	"testing"
	"time"

	"github.com/mmynk/todolist/internal/models"
)

func TestMerge(t *testing.T) {
	due := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	done := models.StatusDone

	tests := []struct {
		name     string
		current  models.TodoItem
		patch    models.Patch
		validate func(t *testing.T, got models.TodoItem)
	}{
		{
			name:    "missing title is retained, checked overwritten",
			current: models.TodoItem{ID: 1, Title: "A", Checked: false},
			patch:   models.Patch{Title: nil, Checked: true},
			validate: func(t *testing.T, got models.TodoItem) {
				if got.ID != 1 || got.Title != "A" || !got.Checked {
					t.Errorf("got %+v, want {ID:1 Title:A Checked:true}", got)
				}
			},
		},
		{
			name:    "present title replaces stored title",
			current: models.TodoItem{ID: 1, Title: "A", Checked: false},
			patch:   models.Patch{Title: strPtr("B"), Checked: false},
			validate: func(t *testing.T, got models.TodoItem) {
				if got.ID != 1 || got.Title != "B" || got.Checked {
					t.Errorf("got %+v, want {ID:1 Title:B Checked:false}", got)
				}
			},
		},
		{
			name:    "omitted checked clears a checked item",
			current: models.TodoItem{ID: 2, Title: "A", Checked: true},
			patch:   models.Patch{},
			validate: func(t *testing.T, got models.TodoItem) {
				if got.Checked {
					t.Error("expected checked to be overwritten with false")
				}
			},
		},
		{
			name: "optional attributes follow the title rule",
			current: models.TodoItem{
				ID: 3, Title: "A", Description: "keep", Status: models.StatusTodo, CreatedAt: 100,
			},
			patch: models.Patch{DueDate: &due, Status: &done},
			validate: func(t *testing.T, got models.TodoItem) {
				if got.Description != "keep" {
					t.Errorf("description: got %q, want %q", got.Description, "keep")
				}
				if got.Status != models.StatusDone {
					t.Errorf("status: got %s, want DONE", got.Status)
				}
				if got.DueDate == nil || !got.DueDate.Equal(due) {
					t.Errorf("dueDate: got %v, want %v", got.DueDate, due)
				}
				if got.CreatedAt != 100 {
					t.Errorf("createdAt changed: %d", got.CreatedAt)
				}
			},
		},
		{
			name:    "empty description is a value, not an omission",
			current: models.TodoItem{ID: 4, Title: "A", Description: "old"},
			patch:   models.Patch{Description: strPtr("")},
			validate: func(t *testing.T, got models.TodoItem) {
				if got.Description != "" {
					t.Errorf("description: got %q, want empty", got.Description)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Merge(tt.current, tt.patch))
		})
	}
}

func TestMergeDoesNotAliasDueDate(t *testing.T) {
	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	current := models.TodoItem{ID: 1, Title: "A", DueDate: &due}

	merged := Merge(current, models.Patch{})
	*merged.DueDate = merged.DueDate.Add(time.Hour)

	if !current.DueDate.Equal(due) {
		t.Errorf("stored due date was mutated through merged copy: %v", current.DueDate)
	}
}
