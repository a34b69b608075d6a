package cell

import (
	"fmt"
	"reflect"

	"github.com/oliverbestmann/stash/typeid"
)

// Shared is a type erased value that can be referenced by multiple holders.
// Holders share the *Shared and take read or write views when they need
// access. Any number of read views may coexist, a write view excludes all
// other views.
//
// A Shared cell is not safe for concurrent use.
type Shared struct {
	noCopy noCopy

	typ typeid.Id

	// value is always a *T, where T is the type identified by typ
	value any

	readers int
	writing bool
}

// NewShared moves value into a new Shared cell.
func NewShared[T any](value T) *Shared {
	return &Shared{
		typ:   typeid.For[T](),
		value: &value,
	}
}

// Type returns the identifier of the type stored in the cell, or
// typeid.None for a nil cell.
func (s *Shared) Type() typeid.Id {
	if s == nil {
		return typeid.None
	}

	return s.typ
}

// Readers returns the number of outstanding read views.
func (s *Shared) Readers() int {
	if s == nil {
		return 0
	}

	return s.readers
}

// Writing reports whether a write view is outstanding.
func (s *Shared) Writing() bool {
	return s != nil && s.writing
}

// Value returns a copy of the stored value as an any, or nil for a nil cell.
// It panics with a *BorrowError if a write view is outstanding.
func (s *Shared) Value() any {
	if s == nil {
		return nil
	}

	if err := s.checkRead(); err != nil {
		panic(err)
	}

	return reflect.ValueOf(s.value).Elem().Interface()
}

func (s *Shared) checkRead() error {
	if s.writing {
		return &BorrowError{Type: s.typ, Mode: Read, Writing: true}
	}

	return nil
}

func (s *Shared) checkWrite() error {
	if s.writing || s.readers > 0 {
		return &BorrowError{Type: s.typ, Mode: Write, Readers: s.readers, Writing: s.writing}
	}

	return nil
}

// Ref is a read view into a Shared cell. It must be released once the
// holder is done with it.
type Ref[T any] struct {
	cell  *Shared
	value *T
}

// Get returns a copy of the value.
func (r *Ref[T]) Get() T {
	if r.cell == nil {
		panic(fmt.Sprintf("use of released read view of %s", typeid.For[T]()))
	}

	return *r.value
}

// Release gives up the view. Releasing a view more than once has no effect.
func (r *Ref[T]) Release() {
	if r.cell == nil {
		return
	}

	r.cell.readers -= 1
	r.cell = nil
	r.value = nil
}

// RefMut is a write view into a Shared cell. It must be released once the
// holder is done with it.
type RefMut[T any] struct {
	cell  *Shared
	value *T
}

// Get returns a pointer to the value. The pointer must not be used after
// the view was released.
func (r *RefMut[T]) Get() *T {
	if r.cell == nil {
		panic(fmt.Sprintf("use of released write view of %s", typeid.For[T]()))
	}

	return r.value
}

// Set replaces the value.
func (r *RefMut[T]) Set(value T) {
	*r.Get() = value
}

// Release gives up the view. Releasing a view more than once has no effect.
func (r *RefMut[T]) Release() {
	if r.cell == nil {
		return
	}

	r.cell.writing = false
	r.cell = nil
	r.value = nil
}

func sharedPointerOf[T any](s *Shared) (*T, bool) {
	if s == nil {
		return nil, false
	}

	return pointerOf[T](s.typ, s.value)
}

// TryBorrow takes a read view into the cell. It fails with ErrTypeMismatch if the
// cell is nil or does not hold a T, and with a *BorrowError if a write view is outstanding.
// The borrow state is not modified if the types do not match.
func TryBorrow[T any](s *Shared) (*Ref[T], error) {
	ptr, ok := sharedPointerOf[T](s)
	if !ok {
		return nil, &TypeMismatchError{Stored: s.Type(), Requested: typeid.For[T]()}
	}

	if err := s.checkRead(); err != nil {
		return nil, err
	}

	s.readers += 1

	return &Ref[T]{cell: s, value: ptr}, nil
}

// TryBorrowMut takes a write view into the cell. It fails with ErrTypeMismatch if
// the cell is nil or does not hold a T, and with a *BorrowError if any other view is outstanding.
// The borrow state is not modified if the types do not match.
func TryBorrowMut[T any](s *Shared) (*RefMut[T], error) {
	ptr, ok := sharedPointerOf[T](s)
	if !ok {
		return nil, &TypeMismatchError{Stored: s.Type(), Requested: typeid.For[T]()}
	}

	if err := s.checkWrite(); err != nil {
		return nil, err
	}

	s.writing = true

	return &RefMut[T]{cell: s, value: ptr}, nil
}

// Borrow takes a read view into the cell. It returns false if the cell is nil
// or does not hold a value of exactly type T. Conflicting with an outstanding write view is a
// programming error, Borrow panics with a *BorrowError in that case.
func Borrow[T any](s *Shared) (*Ref[T], bool) {
	if _, ok := sharedPointerOf[T](s); !ok {
		return nil, false
	}

	ref, err := TryBorrow[T](s)
	if err != nil {
		panic(err)
	}

	return ref, true
}

// BorrowMut takes a write view into the cell. It returns false if the cell is nil
// or does not hold a value of exactly type T. Conflicting with any outstanding view is a
// programming error, BorrowMut panics with a *BorrowError in that case.
func BorrowMut[T any](s *Shared) (*RefMut[T], bool) {
	if _, ok := sharedPointerOf[T](s); !ok {
		return nil, false
	}

	ref, err := TryBorrowMut[T](s)
	if err != nil {
		panic(err)
	}

	return ref, true
}
