package stash

import (
	"maps"
	"slices"

	"github.com/oliverbestmann/stash/cell"
	"github.com/oliverbestmann/stash/typeid"
)

// Resources holds at most one value per type. Each value is exclusively
// owned by a cell.Box.
//
// Resources does not arbitrate access to the values it holds: a pointer
// obtained through a Box stays valid and writable until the box is replaced
// or removed. The zero value is ready to use.
type Resources struct {
	boxes map[typeid.Id]*cell.Box
}

// Insert stores the box under its type, replacing a previous box of the same
// type. The replaced box is returned if there was one.
func (r *Resources) Insert(box *cell.Box) (*cell.Box, bool) {
	if r.boxes == nil {
		r.boxes = map[typeid.Id]*cell.Box{}
	}

	previous, replaced := r.boxes[box.Type()]
	r.boxes[box.Type()] = box

	return previous, replaced
}

// Get returns the box stored for the given type.
func (r *Resources) Get(ty typeid.Id) (*cell.Box, bool) {
	box, ok := r.boxes[ty]
	return box, ok
}

// Remove deletes the box stored for the given type and returns it.
func (r *Resources) Remove(ty typeid.Id) (*cell.Box, bool) {
	box, ok := r.boxes[ty]
	if ok {
		delete(r.boxes, ty)
	}

	return box, ok
}

// Has reports whether a box is stored for the given type.
func (r *Resources) Has(ty typeid.Id) bool {
	_, ok := r.boxes[ty]
	return ok
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return len(r.boxes)
}

// Types returns the types of all stored resources in ascending order.
func (r *Resources) Types() []typeid.Id {
	return slices.Sorted(maps.Keys(r.boxes))
}
