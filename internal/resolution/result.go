package resolution

import (
	"errors"
	"fmt"

	"github.com/mmynk/todolist/internal/models"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("todo item not found")
	ErrStoreError     = errors.New("store error")
)

// Kind is the closed set of outcomes an operation can report.
type Kind int

const (
	KindSuccess Kind = iota + 1
	KindCreated
	KindNotFound
	KindInvalidRequest
	KindStoreError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "SUCCESS"
	case KindCreated:
		return "CREATED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidRequest:
		return "INVALID_REQUEST"
	case KindStoreError:
		return "STORE_ERROR"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is what the request handlers render into a transport response.
// Item is set for single-record outcomes, Items for list outcomes.
type Result struct {
	Kind    Kind
	Message string
	Item    *models.TodoItem
	Items   []*models.TodoItem
}

// OK reports whether the result is SUCCESS or CREATED.
func (r Result) OK() bool {
	return r.Kind == KindSuccess || r.Kind == KindCreated
}

// Err returns the sentinel error for a failure kind, or nil on success.
func (r Result) Err() error {
	var sentinel error
	switch r.Kind {
	case KindSuccess, KindCreated:
		return nil
	case KindNotFound:
		sentinel = ErrNotFound
	case KindInvalidRequest:
		sentinel = ErrInvalidRequest
	default:
		sentinel = ErrStoreError
	}
	if r.Message == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, r.Message)
}

func Success(item *models.TodoItem, message string) Result {
	return Result{Kind: KindSuccess, Item: item, Message: message}
}

// SuccessList never carries a nil slice so encoders render [] rather than null.
func SuccessList(items []*models.TodoItem) Result {
	if items == nil {
		items = []*models.TodoItem{}
	}
	return Result{Kind: KindSuccess, Items: items}
}

func Created(item *models.TodoItem, message string) Result {
	return Result{Kind: KindCreated, Item: item, Message: message}
}

func NotFound(message string) Result {
	return Result{Kind: KindNotFound, Message: message}
}

func InvalidRequest(message string) Result {
	return Result{Kind: KindInvalidRequest, Message: message}
}

// StoreError carries only a generic message; the cause stays in the logs.
func StoreError() Result {
	return Result{Kind: KindStoreError, Message: "store unavailable", Items: []*models.TodoItem{}}
}

// Classify maps an error raised inside an operation onto a failure Result.
func Classify(err error) Result {
	switch {
	case err == nil:
		return Result{Kind: KindSuccess}
	case errors.Is(err, ErrInvalidRequest):
		return InvalidRequest(err.Error())
	case errors.Is(err, ErrNotFound):
		return NotFound(err.Error())
	default:
		return StoreError()
	}
}
