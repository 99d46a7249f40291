package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

var entityType = reflect.TypeFor[Entity]()

// View is a lazy query over entities holding a combination of components.
// The type T must be a struct whose fields are pointers to registered
// component types. Named fields may be marked `ecs:"optional"`; embedded
// fields are always required. A single field of type Entity, if present,
// receives the id of the row.
//
// Iteration walks the storage of the first required field and yields rows
// for entities that hold every other required component. Adding or removing
// components of any queried type while iterating panics with
// ErrViewInvalidated; use a Query or Commands for that.
type View[T any] struct {
	storage     *Storage
	storages    []iComponentStorage
	optional    []bool
	fieldOffset []uintptr
	entityField int
	entityOff   uintptr
	base        int
	mask        Mask
}

// NewView creates a new view for the given struct type. It panics if T is
// malformed or names an unregistered component type.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		storage:     storage,
		entityField: -1,
		base:        -1,
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityType {
			if v.entityField >= 0 {
				panic("View struct may hold at most one Entity field")
			}
			v.entityField = i
			v.entityOff = field.Offset
			continue
		}

		if fieldType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("View struct field %s must be a pointer type", field.Name))
		}

		isOptional := false
		if !field.Anonymous {
			if tag := field.Tag.Get("ecs"); tag != "" {
				if tag != "optional" {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
				isOptional = true
			}
		}

		cs := storage.mustStorageFor(fieldType.Elem())
		if !isOptional {
			if v.base < 0 {
				v.base = len(v.storages)
			}
			v.mask = v.mask.With(cs.ID())
		}
		v.storages = append(v.storages, cs)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	if v.base < 0 {
		panic("View struct must have at least one required component")
	}
	return v
}

// Mask returns the set of required component ids.
func (v *View[T]) Mask() Mask {
	return v.mask
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id Entity, ptr *T) bool {
	structPtr := unsafe.Pointer(ptr)

	for i, cs := range v.storages {
		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])
		component := cs.Pointer(id)
		if component == nil && !v.optional[i] {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = component
	}

	if v.entityField >= 0 {
		*(*Entity)(unsafe.Add(structPtr, v.entityOff)) = id
	}
	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components.
func (v *View[T]) Get(id Entity) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) versions() uint64 {
	var sum uint64
	for _, cs := range v.storages {
		sum += cs.Version()
	}
	return sum
}

// Iter returns an iterator over every matching entity and its populated
// view struct, in the insertion order of the base storage.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		start := v.versions()
		var result T
		for id := range v.storages[v.base].Iter() {
			if !v.Fill(id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
			if v.versions() != start {
				panic(ErrViewInvalidated)
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs).
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities currently matching the view.
func (v *View[T]) Count() int {
	n := 0
	for id := range v.storages[v.base].Iter() {
		if v.matches(id) {
			n++
		}
	}
	return n
}

func (v *View[T]) matches(id Entity) bool {
	for i, cs := range v.storages {
		if !v.optional[i] && !cs.Has(id) {
			return false
		}
	}
	return true
}

// Init re-binds the view to storage. Called by the Scheduler during system
// registration for View fields declared by value.
func (v *View[T]) Init(storage *Storage) {
	*v = *NewView[T](storage)
}
