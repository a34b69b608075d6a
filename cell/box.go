// Package cell provides type erased storage slots for values of arbitrary types.
//
// A Box exclusively owns its value. A Shared cell may be held by several owners
// at once, each of them negotiating read or write access at the moment of
// access. Conflicting accesses are detected at runtime.
//
// Both kinds of cells only ever hand out a value as the exact type it was
// stored as. There is no conversion between related types: a cell holding a
// Meters will not downcast to a float64, even if Meters is defined as one.
package cell

import (
	"reflect"

	"github.com/oliverbestmann/stash/typeid"
)

// Box is an exclusively owned, type erased value.
type Box struct {
	typ typeid.Id

	// value is always a *T, where T is the type identified by typ
	value any
}

// NewBox moves value into a new Box.
func NewBox[T any](value T) *Box {
	return &Box{
		typ:   typeid.For[T](),
		value: &value,
	}
}

// Type returns the identifier of the type stored in the box.
func (b *Box) Type() typeid.Id {
	return b.typ
}

// Value returns a copy of the stored value as an any.
func (b *Box) Value() any {
	return reflect.ValueOf(b.value).Elem().Interface()
}

// Pointer returns the pointer to the stored value as an any.
func (b *Box) Pointer() any {
	return b.value
}

// Downcast returns a pointer to the value stored in the box if the box holds a
// value of exactly type T. The pointer aliases the stored value.
func Downcast[T any](b *Box) (*T, bool) {
	if b == nil {
		return nil, false
	}

	return pointerOf[T](b.typ, b.value)
}

// Into returns a copy of the value stored in the box if the box holds a
// value of exactly type T.
func Into[T any](b *Box) (T, bool) {
	ptr, ok := Downcast[T](b)
	if !ok {
		var zero T
		return zero, false
	}

	return *ptr, true
}

func pointerOf[T any](typ typeid.Id, value any) (*T, bool) {
	if typ != typeid.For[T]() {
		return nil, false
	}

	ptr, ok := value.(*T)
	return ptr, ok
}
