package stash

import (
	"fmt"
	"maps"
	"slices"

	"github.com/oliverbestmann/stash/cell"
	"github.com/oliverbestmann/stash/typeid"
)

// Components holds an ordered sequence of shared cells per registered type.
// A type must be registered before any of its values can be stored or read,
// accessing an unregistered type is a programming error and panics.
// The zero value is ready to use.
type Components struct {
	sequences map[typeid.Id][]*cell.Shared
}

// Register creates an empty sequence for the given type. Registering a type
// again drops all cells previously stored for it. It returns true if the
// type had been registered before.
func (c *Components) Register(ty typeid.Id) bool {
	if c.sequences == nil {
		c.sequences = map[typeid.Id][]*cell.Shared{}
	}

	_, existed := c.sequences[ty]
	c.sequences[ty] = nil

	return existed
}

// IsRegistered reports whether the given type was registered.
func (c *Components) IsRegistered(ty typeid.Id) bool {
	_, ok := c.sequences[ty]
	return ok
}

// UpsertLast replaces the last cell of the sequence of the cell's type with the
// given cell, or appends the cell if the sequence is empty. The sequence never
// grows past a single element through this method.
func (c *Components) UpsertLast(shared *cell.Shared) *Components {
	ty := shared.Type()
	sequence := c.sequenceOf(ty)

	if len(sequence) > 0 {
		sequence[len(sequence)-1] = shared
	} else {
		c.sequences[ty] = append(sequence, shared)
	}

	return c
}

// Cell returns the cell at the given index within the sequence of the given type.
func (c *Components) Cell(ty typeid.Id, index int) (*cell.Shared, bool) {
	sequence := c.sequenceOf(ty)
	if index < 0 || index >= len(sequence) {
		return nil, false
	}

	return sequence[index], true
}

// Len returns the number of cells stored for the given type.
func (c *Components) Len(ty typeid.Id) int {
	return len(c.sequenceOf(ty))
}

// Types returns all registered types in ascending order.
func (c *Components) Types() []typeid.Id {
	return slices.Sorted(maps.Keys(c.sequences))
}

func (c *Components) sequenceOf(ty typeid.Id) []*cell.Shared {
	sequence, ok := c.sequences[ty]
	if !ok {
		panic(fmt.Sprintf("component type %s is not registered", ty))
	}

	return sequence
}
