// Package todoconnect defines the TodoService Connect RPC contract: the
// request and response messages, the handler interface, and constructors for
// the HTTP handler and a typed client.
//
// Messages are plain Go structs carried as JSON, so any Connect client that
// speaks the JSON codec can call the service.
package todoconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// TodoServiceName is the fully-qualified name of the TodoService service.
	TodoServiceName = "todolist.v1.TodoService"
)

// Procedure paths, formatted as "/" + service name + "/" + method name.
const (
	TodoServiceListTodosProcedure   = "/todolist.v1.TodoService/ListTodos"
	TodoServiceAddTodoProcedure     = "/todolist.v1.TodoService/AddTodo"
	TodoServiceSearchTodosProcedure = "/todolist.v1.TodoService/SearchTodos"
	TodoServiceDeleteTodosProcedure = "/todolist.v1.TodoService/DeleteTodos"
	TodoServiceUpdateTodoProcedure  = "/todolist.v1.TodoService/UpdateTodo"
)

// TodoServiceHandler is implemented by the server side of TodoService.
type TodoServiceHandler interface {
	ListTodos(context.Context, *connect.Request[ListTodosRequest]) (*connect.Response[ListTodosResponse], error)
	AddTodo(context.Context, *connect.Request[AddTodoRequest]) (*connect.Response[AddTodoResponse], error)
	SearchTodos(context.Context, *connect.Request[SearchTodosRequest]) (*connect.Response[SearchTodosResponse], error)
	DeleteTodos(context.Context, *connect.Request[DeleteTodosRequest]) (*connect.Response[DeleteTodosResponse], error)
	UpdateTodo(context.Context, *connect.Request[UpdateTodoRequest]) (*connect.Response[UpdateTodoResponse], error)
}

// NewTodoServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTodoServiceHandler(svc TodoServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	handlers := map[string]http.Handler{
		TodoServiceListTodosProcedure:   connect.NewUnaryHandler(TodoServiceListTodosProcedure, svc.ListTodos, opts...),
		TodoServiceAddTodoProcedure:     connect.NewUnaryHandler(TodoServiceAddTodoProcedure, svc.AddTodo, opts...),
		TodoServiceSearchTodosProcedure: connect.NewUnaryHandler(TodoServiceSearchTodosProcedure, svc.SearchTodos, opts...),
		TodoServiceDeleteTodosProcedure: connect.NewUnaryHandler(TodoServiceDeleteTodosProcedure, svc.DeleteTodos, opts...),
		TodoServiceUpdateTodoProcedure:  connect.NewUnaryHandler(TodoServiceUpdateTodoProcedure, svc.UpdateTodo, opts...),
	}

	path := "/" + TodoServiceName + "/"
	return path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// TodoServiceClient is a typed client for TodoService.
type TodoServiceClient struct {
	listTodos   *connect.Client[ListTodosRequest, ListTodosResponse]
	addTodo     *connect.Client[AddTodoRequest, AddTodoResponse]
	searchTodos *connect.Client[SearchTodosRequest, SearchTodosResponse]
	deleteTodos *connect.Client[DeleteTodosRequest, DeleteTodosResponse]
	updateTodo  *connect.Client[UpdateTodoRequest, UpdateTodoResponse]
}

// NewTodoServiceClient constructs a client for the TodoService served at baseURL
// (for example, http://localhost:8080).
func NewTodoServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TodoServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &TodoServiceClient{
		listTodos:   connect.NewClient[ListTodosRequest, ListTodosResponse](httpClient, baseURL+TodoServiceListTodosProcedure, opts...),
		addTodo:     connect.NewClient[AddTodoRequest, AddTodoResponse](httpClient, baseURL+TodoServiceAddTodoProcedure, opts...),
		searchTodos: connect.NewClient[SearchTodosRequest, SearchTodosResponse](httpClient, baseURL+TodoServiceSearchTodosProcedure, opts...),
		deleteTodos: connect.NewClient[DeleteTodosRequest, DeleteTodosResponse](httpClient, baseURL+TodoServiceDeleteTodosProcedure, opts...),
		updateTodo:  connect.NewClient[UpdateTodoRequest, UpdateTodoResponse](httpClient, baseURL+TodoServiceUpdateTodoProcedure, opts...),
	}
}

func (c *TodoServiceClient) ListTodos(ctx context.Context, req *connect.Request[ListTodosRequest]) (*connect.Response[ListTodosResponse], error) {
	return c.listTodos.CallUnary(ctx, req)
}

func (c *TodoServiceClient) AddTodo(ctx context.Context, req *connect.Request[AddTodoRequest]) (*connect.Response[AddTodoResponse], error) {
	return c.addTodo.CallUnary(ctx, req)
}

func (c *TodoServiceClient) SearchTodos(ctx context.Context, req *connect.Request[SearchTodosRequest]) (*connect.Response[SearchTodosResponse], error) {
	return c.searchTodos.CallUnary(ctx, req)
}

func (c *TodoServiceClient) DeleteTodos(ctx context.Context, req *connect.Request[DeleteTodosRequest]) (*connect.Response[DeleteTodosResponse], error) {
	return c.deleteTodos.CallUnary(ctx, req)
}

func (c *TodoServiceClient) UpdateTodo(ctx context.Context, req *connect.Request[UpdateTodoRequest]) (*connect.Response[UpdateTodoResponse], error) {
	return c.updateTodo.CallUnary(ctx, req)
}
