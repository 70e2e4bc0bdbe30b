package models

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a TodoItem.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus converts a case-insensitive string into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(v)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}

// TodoItem represents a single entry on the todo list.
type TodoItem struct {
	// ID is assigned by the store on creation and is immutable afterwards.
	ID int64 `json:"id"`

	// Title is the short text of the task.
	// Titles are not unique; searching by title may return several items.
	Title string `json:"title"`

	// Description is an optional longer explanation of the task.
	Description string `json:"description,omitempty"`

	// Checked marks the item as ticked off on the list.
	Checked bool `json:"checked"`

	// Status is the lifecycle state (TODO, IN_PROGRESS, DONE).
	// New items without a status start as TODO.
	Status Status `json:"status"`

	// DueDate is an optional deadline.
	DueDate *time.Time `json:"dueDate,omitempty"`

	// CreatedAt is the Unix timestamp when the item was first stored.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the most recent write.
	UpdatedAt int64 `json:"updatedAt"`
}

// Clone returns a deep copy of the item so callers can hand out records
// without sharing the DueDate pointer.
func (t *TodoItem) Clone() *TodoItem {
	if t == nil {
		return nil
	}
	cp := *t
	if t.DueDate != nil {
		d := *t.DueDate
		cp.DueDate = &d
	}
	return &cp
}

// Patch is a partial update for an existing TodoItem.
//
// A nil pointer field means "leave the stored value unchanged".
// Checked has no such escape hatch: it is always written.
type Patch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      *Status    `json:"status"`
	Checked     bool       `json:"checked"`
}
