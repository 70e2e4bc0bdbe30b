package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/todolist/internal/resolution"
	"github.com/mmynk/todolist/internal/todos"
	"github.com/mmynk/todolist/pkg/todoconnect"
)

// Ensure TodoService implements the Connect handler interface
var _ todoconnect.TodoServiceHandler = (*TodoService)(nil)

// TodoService implements the Connect TodoService
type TodoService struct {
	todos *todos.Service
}

// NewTodoService creates a new TodoService on top of the todo operations.
func NewTodoService(svc *todos.Service) *TodoService {
	return &TodoService{todos: svc}
}

// ListTodos returns every todo item.
func (s *TodoService) ListTodos(ctx context.Context, req *connect.Request[todoconnect.ListTodosRequest]) (*connect.Response[todoconnect.ListTodosResponse], error) {
	res := s.todos.List(ctx)
	if err := connectError(res); err != nil {
		return nil, err
	}
	return connect.NewResponse(&todoconnect.ListTodosResponse{Items: res.Items}), nil
}

// AddTodo creates a new todo item.
func (s *TodoService) AddTodo(ctx context.Context, req *connect.Request[todoconnect.AddTodoRequest]) (*connect.Response[todoconnect.AddTodoResponse], error) {
	if req.Msg.Item == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("item required"))
	}

	res := s.todos.Add(ctx, *req.Msg.Item)
	if err := connectError(res); err != nil {
		return nil, err
	}
	return connect.NewResponse(&todoconnect.AddTodoResponse{Message: res.Message, Item: res.Item}), nil
}

// SearchTodos looks up todo items by title or id.
func (s *TodoService) SearchTodos(ctx context.Context, req *connect.Request[todoconnect.SearchTodosRequest]) (*connect.Response[todoconnect.SearchTodosResponse], error) {
	res := s.todos.Search(ctx, titleParam(req.Msg.Title), req.Msg.ID)
	if err := connectError(res); err != nil {
		return nil, err
	}
	return connect.NewResponse(&todoconnect.SearchTodosResponse{Items: res.Items}), nil
}

// DeleteTodos removes todo items by title or id.
func (s *TodoService) DeleteTodos(ctx context.Context, req *connect.Request[todoconnect.DeleteTodosRequest]) (*connect.Response[todoconnect.DeleteTodosResponse], error) {
	res := s.todos.Delete(ctx, titleParam(req.Msg.Title), req.Msg.ID)
	if err := connectError(res); err != nil {
		return nil, err
	}
	return connect.NewResponse(&todoconnect.DeleteTodosResponse{Message: res.Message}), nil
}

// UpdateTodo applies a partial update to one todo item.
func (s *TodoService) UpdateTodo(ctx context.Context, req *connect.Request[todoconnect.UpdateTodoRequest]) (*connect.Response[todoconnect.UpdateTodoResponse], error) {
	res := s.todos.Update(ctx, req.Msg.ID, req.Msg.Patch)
	if err := connectError(res); err != nil {
		return nil, err
	}
	return connect.NewResponse(&todoconnect.UpdateTodoResponse{Item: res.Item}), nil
}

// titleParam treats an empty title as absent, the same way the REST API
// treats an empty title= query value.
func titleParam(title *string) *string {
	if title == nil || *title == "" {
		return nil
	}
	return title
}

// connectError translates a failed result into a Connect error; successful results yield nil.
func connectError(res resolution.Result) error {
	if res.OK() {
		return nil
	}
	return connect.NewError(Code(res.Kind), res.Err())
}

// Code maps a result kind onto a Connect status code.
func Code(kind resolution.Kind) connect.Code {
	switch kind {
	case resolution.KindNotFound:
		return connect.CodeNotFound
	case resolution.KindInvalidRequest:
		return connect.CodeInvalidArgument
	case resolution.KindStoreError:
		return connect.CodeInternal
	default:
		return connect.CodeUnknown
	}
}
