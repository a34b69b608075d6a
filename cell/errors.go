package cell

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/stash/typeid"
)

var (
	// ErrTypeMismatch is returned when a cell is accessed as a type other than
	// the exact type of the value it holds.
	ErrTypeMismatch = errors.New("cell: type mismatch")

	// ErrAlreadyBorrowed is returned when a write view is requested while read
	// views are outstanding.
	ErrAlreadyBorrowed = errors.New("cell: already borrowed")

	// ErrAlreadyMutablyBorrowed is returned when any view is requested while a
	// write view is outstanding.
	ErrAlreadyMutablyBorrowed = errors.New("cell: already mutably borrowed")
)

// BorrowMode is the kind of view requested from a Shared cell.
type BorrowMode uint8

const (
	Read BorrowMode = iota
	Write
)

func (m BorrowMode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("BorrowMode(%d)", uint8(m))
	}
}

// BorrowError describes a conflicting access to a Shared cell. It records the
// requested mode and the borrow state of the cell at the time of the request.
type BorrowError struct {
	Type    typeid.Id
	Mode    BorrowMode
	Readers int
	Writing bool
}

func (e *BorrowError) Error() string {
	if e.Writing {
		return fmt.Sprintf("cell: cannot take %s view of %s: already mutably borrowed", e.Mode, e.Type)
	}

	return fmt.Sprintf("cell: cannot take %s view of %s: %d read views outstanding", e.Mode, e.Type, e.Readers)
}

func (e *BorrowError) Is(target error) bool {
	if e.Writing {
		return target == ErrAlreadyMutablyBorrowed
	}

	return target == ErrAlreadyBorrowed
}

// TypeMismatchError reports the stored and the requested type of a failed downcast.
type TypeMismatchError struct {
	Stored    typeid.Id
	Requested typeid.Id
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cell: holds %s, not %s", e.Stored, e.Requested)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
