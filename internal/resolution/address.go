// Package resolution decides how a client request maps onto stored todo items.
//
// It holds three pieces of pure logic shared by every transport:
//   - Resolve picks the addressing mode (by title or by id) for search and delete
//   - Merge applies a partial update onto a stored item
//   - Result and Kind classify the outcome of an operation
//
// Nothing in this package talks to a store or keeps state between calls.
package resolution

import "fmt"

// Mode identifies how a request addresses its target records.
type Mode int

const (
	ByTitle Mode = iota + 1
	ByID
)

func (m Mode) String() string {
	switch m {
	case ByTitle:
		return "BY_TITLE"
	case ByID:
		return "BY_ID"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Address is the outcome of Resolve: a mode plus the key selected for it.
type Address struct {
	Mode  Mode
	Title string
	ID    int64
}

// Resolve chooses the addressing mode for a search or delete request.
//
// A present title always wins, even when an id is supplied too. A non-nil
// empty title is still present here; both transports map an empty title to
// nil before calling, so "title=&id=5" addresses id 5.
// NOTE: title-over-id precedence and the absent/absent rejection mirror the
// legacy API branch order; both are flagged for product review.
func Resolve(title *string, id *int64) (Address, error) {
	switch {
	case title != nil:
		return Address{Mode: ByTitle, Title: *title}, nil
	case id != nil:
		return Address{Mode: ByID, ID: *id}, nil
	default:
		return Address{}, fmt.Errorf("%w: either title or id is required", ErrInvalidRequest)
	}
}
