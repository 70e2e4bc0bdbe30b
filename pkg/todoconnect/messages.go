package todoconnect

import "github.com/mmynk/todolist/internal/models"

type ListTodosRequest struct{}

type ListTodosResponse struct {
	Items []*models.TodoItem `json:"items"`
}

type AddTodoRequest struct {
	Item *models.TodoItem `json:"item"`
}

type AddTodoResponse struct {
	Message string           `json:"message"`
	Item    *models.TodoItem `json:"item"`
}

// SearchTodosRequest addresses items by title or, when Title is nil, by ID.
type SearchTodosRequest struct {
	Title *string `json:"title,omitempty"`
	ID    *int64  `json:"id,omitempty"`
}

type SearchTodosResponse struct {
	Items []*models.TodoItem `json:"items"`
}

// DeleteTodosRequest addresses items by title or, when Title is nil, by ID.
type DeleteTodosRequest struct {
	Title *string `json:"title,omitempty"`
	ID    *int64  `json:"id,omitempty"`
}

type DeleteTodosResponse struct {
	Message string `json:"message"`
}

type UpdateTodoRequest struct {
	ID    int64        `json:"id"`
	Patch models.Patch `json:"patch"`
}

type UpdateTodoResponse struct {
	Item *models.TodoItem `json:"item"`
}
