// Package httpapi exposes the todo operations over a JSON REST API.
//
// Routes keep the paths used by the existing frontend:
//
//	GET    /api/todos                  list all items
//	POST   /api/todos/add              add an item
//	GET    /api/todos/search?title=|id= search by title or id
//	DELETE /api/todos/delete?title=|id= delete by title or id
//	PUT    /api/todos/update/{id}      partial update
//	GET    /healthz                    liveness probe
package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mmynk/todolist/internal/models"
	"github.com/mmynk/todolist/internal/resolution"
	"github.com/mmynk/todolist/internal/todos"
)

// Handler serves the REST API for a todos.Service.
type Handler struct {
	svc     *todos.Service
	schemas *schemas
}

// New creates a Handler. It fails only if the embedded request schemas do not compile.
func New(svc *todos.Service) (*Handler, error) {
	sch, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, schemas: sch}, nil
}

// Register mounts the API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/todos", h.list)
	mux.HandleFunc("POST /api/todos/add", h.add)
	mux.HandleFunc("GET /api/todos/search", h.search)
	mux.HandleFunc("DELETE /api/todos/delete", h.delete)
	mux.HandleFunc("PUT /api/todos/update/{id}", h.update)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// addRequest is the add body. Status is decoded as a plain string so an
// unknown value surfaces as INVALID_REQUEST from the service.
type addRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Checked     bool       `json:"checked"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"dueDate"`
}

type messageResponse struct {
	Message string           `json:"message"`
	Item    *models.TodoItem `json:"item,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	res := h.svc.List(r.Context())
	writeJSON(w, StatusCode(res.Kind), res.Items)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeBody(r.Body, h.schemas.add, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := models.TodoItem{
		Title:   req.Title,
		Checked: req.Checked,
		DueDate: req.DueDate,
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Status != nil {
		item.Status = models.Status(*req.Status)
	}

	res := h.svc.Add(r.Context(), item)
	if !res.OK() {
		writeError(w, StatusCode(res.Kind), res.Message)
		return
	}
	writeJSON(w, StatusCode(res.Kind), messageResponse{Message: res.Message, Item: res.Item})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	title, id, err := addressParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := h.svc.Search(r.Context(), title, id)
	switch res.Kind {
	case resolution.KindSuccess, resolution.KindStoreError:
		writeJSON(w, StatusCode(res.Kind), res.Items)
	default:
		writeError(w, StatusCode(res.Kind), res.Message)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	title, id, err := addressParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := h.svc.Delete(r.Context(), title, id)
	if !res.OK() {
		writeError(w, StatusCode(res.Kind), res.Message)
		return
	}
	writeJSON(w, StatusCode(res.Kind), messageResponse{Message: res.Message})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid id %q", r.PathValue("id")))
		return
	}

	var patch models.Patch
	if err := decodeBody(r.Body, h.schemas.update, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := h.svc.Update(r.Context(), id, patch)
	if !res.OK() {
		writeError(w, StatusCode(res.Kind), res.Message)
		return
	}
	writeJSON(w, StatusCode(res.Kind), res.Item)
}

// addressParams reads the optional title and id query parameters.
// An empty title= is treated as absent; a non-numeric id is an error.
func addressParams(r *http.Request) (*string, *int64, error) {
	q := r.URL.Query()

	var title *string
	if v := q.Get("title"); v != "" {
		title = &v
	}

	var id *int64
	if v := q.Get("id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid id %q", v)
		}
		id = &n
	}
	return title, id, nil
}

// StatusCode translates a result kind into an HTTP status.
// STORE_ERROR answers 400, as the legacy API did, rather than 5xx.
func StatusCode(kind resolution.Kind) int {
	switch kind {
	case resolution.KindSuccess:
		return http.StatusOK
	case resolution.KindCreated:
		return http.StatusCreated
	case resolution.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
