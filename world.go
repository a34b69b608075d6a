// Package stash stores values of unrelated types keyed by their type alone.
//
// A World holds resources, at most one value per type, and components, an
// ordered sequence of shared cells per registered type.
package stash

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/oliverbestmann/stash/cell"
	"github.com/oliverbestmann/stash/typeid"
)

// World holds at most one resource per type and a sequence of components
// per registered component type. Resources and components live in two
// independent namespaces: a resource of type T never affects the components
// of type T and vice versa.
//
// A World is not safe for concurrent use.
type World struct {
	noCopy noCopy

	resources  Resources
	components Components

	logger *zap.Logger
}

// Option configures a World created by NewWorld.
type Option func(w *World)

// WithLogger sets the logger diagnostic events are written to.
// Logging is disabled by default, a nil logger keeps it disabled.
func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorld creates a new empty world.
func NewWorld(options ...Option) *World {
	w := &World{logger: zap.NewNop()}

	for _, option := range options {
		option(w)
	}

	return w
}

// AddResource stores the resource in the world, replacing any previous
// resource of the same type.
func AddResource[T any](w *World, resource T) {
	box := cell.NewBox(resource)

	w.logger.Debug("Resource added", zap.Stringer("type", box.Type()))

	if _, replaced := w.resources.Insert(box); replaced {
		w.logger.Info("Resource replaced", zap.Stringer("type", box.Type()))
	} else {
		w.logger.Info("Resource inserted", zap.Stringer("type", box.Type()))
	}
}

// ResourceOf returns a copy of the resource of type T.
func ResourceOf[T any](w *World) (T, bool) {
	return cell.Into[T](w.resourceBox(typeid.For[T]()))
}

// ResourceMutOf returns a pointer to the resource of type T. The pointer
// stays valid until the resource is replaced or removed.
func ResourceMutOf[T any](w *World) (*T, bool) {
	return cell.Downcast[T](w.resourceBox(typeid.For[T]()))
}

// RemoveResource removes the resource of type T from the world and returns it.
func RemoveResource[T any](w *World) (T, bool) {
	box, ok := w.resources.Remove(typeid.For[T]())
	if ok {
		w.logger.Debug("Resource removed", zap.Stringer("type", box.Type()))
	}

	return cell.Into[T](box)
}

// HasResource reports whether the world holds a resource of type T.
func HasResource[T any](w *World) bool {
	return w.resources.Has(typeid.For[T]())
}

// Resource returns a pointer to the resource of the given reflect type.
// The type must be the non-pointer type of the resource, i.e. the type of the resource
// as it was passed to AddResource.
func (w *World) Resource(ty reflect.Type) (any, bool) {
	id, ok := typeid.Lookup(ty)
	if !ok {
		return nil, false
	}

	box, ok := w.resources.Get(id)
	if !ok {
		return nil, false
	}

	return box.Pointer(), true
}

// ResourceTypes returns the types of all resources in the order their types
// were first seen by the process.
func (w *World) ResourceTypes() []reflect.Type {
	return reflectTypes(w.resources.Types())
}

func (w *World) resourceBox(ty typeid.Id) *cell.Box {
	box, _ := w.resources.Get(ty)
	return box
}

// RegisterComponent prepares the world to hold components of type T.
// Registering a type again drops all components stored for it.
func RegisterComponent[T any](w *World) {
	ty := typeid.For[T]()

	if w.components.Register(ty) {
		w.logger.Warn("Component type registered again, stored components dropped",
			zap.Stringer("type", ty))
	}
}

// IsComponentRegistered reports whether RegisterComponent was called for T.
func IsComponentRegistered[T any](w *World) bool {
	return w.components.IsRegistered(typeid.For[T]())
}

// UpsertLast replaces the most recent component of type T with a new cell
// holding the given value. If there is no component of type T yet, the value
// is added as the first one. T must have been registered.
//
// Calls can be chained:
//
//	UpsertLast(UpsertLast(w, Location{12, 32.4}), Size{2})
func UpsertLast[T any](w *World, component T) *World {
	w.components.UpsertLast(cell.NewShared(component))
	return w
}

// ComponentCell returns the cell at the given index within the components of type T.
// T must have been registered.
func ComponentCell[T any](w *World, index int) (*cell.Shared, bool) {
	return w.components.Cell(typeid.For[T](), index)
}

// ComponentLen returns the number of components of type T.
// T must have been registered.
func ComponentLen[T any](w *World) int {
	return w.components.Len(typeid.For[T]())
}

// Component returns the cell at the given index within the components of
// the given reflect type. The type must have been registered.
func (w *World) Component(ty reflect.Type, index int) (*cell.Shared, bool) {
	return w.components.Cell(registeredTypeOf(ty), index)
}

// ComponentTypes returns all registered component types in the order their
// types were first seen by the process.
func (w *World) ComponentTypes() []reflect.Type {
	return reflectTypes(w.components.Types())
}

// ComponentLenOf returns the number of components of the given reflect type.
// The type must have been registered.
func (w *World) ComponentLenOf(ty reflect.Type) int {
	return w.components.Len(registeredTypeOf(ty))
}

// registeredTypeOf returns the identifier of a type that must have been
// registered as a component type before.
func registeredTypeOf(ty reflect.Type) typeid.Id {
	id, ok := typeid.Lookup(ty)
	if !ok {
		panic(fmt.Sprintf("component type %s is not registered", ty))
	}

	return id
}

func reflectTypes(ids []typeid.Id) []reflect.Type {
	types := make([]reflect.Type, 0, len(ids))
	for _, id := range ids {
		types = append(types, id.Type())
	}

	return types
}
