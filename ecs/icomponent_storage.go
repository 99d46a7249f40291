package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iComponentStorage is an interface for a type-erased component storage.
type iComponentStorage interface {
	Append(e Entity, item any) error
	Delete(e Entity) bool
	Get(e Entity) any
	Pointer(e Entity) unsafe.Pointer
	Has(e Entity) bool
	Compact() int
	Iter() iter.Seq[Entity]
	Len() int
	Holes() int
	Version() uint64
	ID() ComponentID
	Type() reflect.Type
	Blocks() int
}
