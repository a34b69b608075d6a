// Package typeid assigns every Go type a small, totally ordered identifier
// that is stable for the lifetime of the process.
package typeid

import (
	"cmp"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"sync/atomic"
)

// Id identifies a concrete type at runtime. Ids are assigned lazily, the first
// type asked for gets id 1.
type Id uint32

// None is never assigned to a type.
const None = Id(0)

type table struct {
	ids map[reflect.Type]Id

	// types[id-1] is the type with the given id
	types []reflect.Type
}

var lookup atomic.Pointer[table]

func init() {
	lookup.Store(&table{ids: map[reflect.Type]Id{}})
}

// For returns the identifier of T.
//
// If T is an interface type, the identifier is the one of the interface itself,
// not of the dynamic type of any value stored in it.
func For[T any]() Id {
	return Of(reflect.TypeFor[T]())
}

// Of returns the identifier of the given reflected type.
func Of(ty reflect.Type) Id {
	if ty == nil {
		panic("typeid: nil type")
	}

	if id, ok := lookup.Load().ids[ty]; ok {
		return id
	}

	return ensure(ty)
}

// Lookup returns the identifier of the given reflected type if one was
// assigned before. It never assigns a new identifier.
func Lookup(ty reflect.Type) (Id, bool) {
	id, ok := lookup.Load().ids[ty]
	return id, ok
}

func ensure(ty reflect.Type) Id {
	for {
		previous := lookup.Load()
		if id, ok := previous.ids[ty]; ok {
			return id
		}

		id := Id(len(previous.types) + 1)

		next := &table{
			ids:   maps.Clone(previous.ids),
			types: append(slices.Clip(previous.types), ty),
		}

		next.ids[ty] = id

		if lookup.CompareAndSwap(previous, next) {
			return id
		}
	}
}

// Type returns the reflected type this identifier was assigned to.
// It returns nil for None or an id that was never assigned.
func (id Id) Type() reflect.Type {
	types := lookup.Load().types
	if id == None || int(id) > len(types) {
		return nil
	}

	return types[id-1]
}

func (id Id) String() string {
	if ty := id.Type(); ty != nil {
		return ty.String()
	}

	return "typeid(" + strconv.Itoa(int(id)) + ")"
}

// Compare orders identifiers by the sequence in which they were assigned.
func Compare(a, b Id) int {
	return cmp.Compare(a, b)
}
