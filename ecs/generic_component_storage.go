package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// MaxComponents bounds the number of component types a registry may hold,
// so that a component set always fits in a Mask.
const MaxComponents = 64

// ComponentID is the dense identifier a registry assigns to a component type.
type ComponentID uint8

// Mask is a bitset of ComponentIDs.
type Mask uint64

// With returns m with id set.
func (m Mask) With(id ComponentID) Mask {
	return m | 1<<id
}

// Has reports whether id is set in m.
func (m Mask) Has(id ComponentID) bool {
	return m&(1<<id) != 0
}

// Contains reports whether every bit of other is also set in m.
func (m Mask) Contains(other Mask) bool {
	return m&other == other
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage has its own registry, so independent worlds can coexist.
type ComponentRegistry struct {
	types     []reflect.Type
	ids       map[reflect.Type]ComponentID
	factories []func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentID),
	}
}

// RegisterComponent registers T with the registry and returns its id.
// Registering the same type twice returns the existing id.
func RegisterComponent[T any](r *ComponentRegistry) ComponentID {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Chan, reflect.Func:
		panic(fmt.Sprintf("ecs: component type %s must be a value type", t))
	}
	if len(r.types) >= MaxComponents {
		panic(fmt.Sprintf("ecs: cannot register %s, registry is full (%d types)", t, MaxComponents))
	}

	id := ComponentID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.factories = append(r.factories, func() iComponentStorage {
		return newComponentStorage[T](id)
	})
	return id
}

// ID returns the id assigned to t.
func (r *ComponentRegistry) ID(t reflect.Type) (ComponentID, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// Type returns the component type registered under id.
func (r *ComponentRegistry) Type(id ComponentID) reflect.Type {
	return r.types[id]
}

// Types returns every registered type in id order.
func (r *ComponentRegistry) Types() []reflect.Type {
	return append([]reflect.Type(nil), r.types...)
}

// Len returns the number of registered types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

const (
	genericBlockSize = 64
)

// componentStorage holds every component of type T. Values live in fixed
// size blocks that never move once allocated, so pointers handed out stay
// valid until the row is removed or the storage is compacted. Rows are kept
// in insertion order; removal leaves a tombstone until Compact.
type componentStorage[T any] struct {
	id      ComponentID
	typ     reflect.Type
	blocks  []*[genericBlockSize]T
	owners  []Entity
	index   *intmap.Map[Entity, int]
	live    int
	version uint64
}

func newComponentStorage[T any](id ComponentID) *componentStorage[T] {
	return &componentStorage[T]{
		id:    id,
		typ:   reflect.TypeFor[T](),
		index: intmap.New[Entity, int](genericBlockSize),
	}
}

func (cs *componentStorage[T]) slot(i int) *T {
	return &cs.blocks[i/genericBlockSize][i%genericBlockSize]
}

func (cs *componentStorage[T]) insert(e Entity, value T) error {
	if e == 0 {
		return fmt.Errorf("%w: cannot hold %s", ErrInvalidEntity, cs.typ)
	}
	if _, ok := cs.index.Get(e); ok {
		return fmt.Errorf("%w: entity %d already has %s", ErrDuplicateComponent, e, cs.typ)
	}

	i := len(cs.owners)
	if i/genericBlockSize >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
	}
	*cs.slot(i) = value
	cs.owners = append(cs.owners, e)
	cs.index.Put(e, i)
	cs.live++
	cs.version++
	return nil
}

// Append stores item, which must be a T or *T, for entity e.
func (cs *componentStorage[T]) Append(e Entity, item any) error {
	switch v := item.(type) {
	case T:
		return cs.insert(e, v)
	case *T:
		if v == nil {
			return fmt.Errorf("ecs: nil *%s for entity %d", cs.typ, e)
		}
		return cs.insert(e, *v)
	default:
		return fmt.Errorf("ecs: storage for %s cannot hold %T", cs.typ, item)
	}
}

func (cs *componentStorage[T]) get(e Entity) *T {
	i, ok := cs.index.Get(e)
	if !ok {
		return nil
	}
	return cs.slot(i)
}

// Get returns a *T for e boxed in an interface, or nil.
func (cs *componentStorage[T]) Get(e Entity) any {
	if p := cs.get(e); p != nil {
		return p
	}
	return nil
}

// Pointer returns the raw address of e's component, or nil.
func (cs *componentStorage[T]) Pointer(e Entity) unsafe.Pointer {
	return unsafe.Pointer(cs.get(e))
}

// Has checks if e holds a component in this storage.
func (cs *componentStorage[T]) Has(e Entity) bool {
	_, ok := cs.index.Get(e)
	return ok
}

// Delete tombstones e's row. It reports whether a row was removed.
func (cs *componentStorage[T]) Delete(e Entity) bool {
	i, ok := cs.index.Get(e)
	if !ok {
		return false
	}
	var zero T
	*cs.slot(i) = zero
	cs.owners[i] = 0
	cs.index.Del(e)
	cs.live--
	cs.version++
	return true
}

// Compact closes the gaps left by deleted rows while keeping the relative
// order of the survivors. It returns how many tombstones were reclaimed.
func (cs *componentStorage[T]) Compact() int {
	holes := len(cs.owners) - cs.live
	if holes == 0 {
		return 0
	}

	write := 0
	for read, owner := range cs.owners {
		if owner == 0 {
			continue
		}
		if read != write {
			*cs.slot(write) = *cs.slot(read)
			cs.owners[write] = owner
			cs.index.Put(owner, write)
		}
		write++
	}

	var zero T
	for i := write; i < len(cs.owners); i++ {
		*cs.slot(i) = zero
	}
	cs.owners = cs.owners[:write]

	needed := (write + genericBlockSize - 1) / genericBlockSize
	for i := needed; i < len(cs.blocks); i++ {
		cs.blocks[i] = nil
	}
	cs.blocks = cs.blocks[:needed]
	cs.version++
	return holes
}

// Iter yields the owners of live rows in insertion order.
func (cs *componentStorage[T]) Iter() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, owner := range cs.owners {
			if owner == 0 {
				continue
			}
			if !yield(owner) {
				return
			}
		}
	}
}

func (cs *componentStorage[T]) Len() int           { return cs.live }
func (cs *componentStorage[T]) Holes() int         { return len(cs.owners) - cs.live }
func (cs *componentStorage[T]) Version() uint64    { return cs.version }
func (cs *componentStorage[T]) ID() ComponentID    { return cs.id }
func (cs *componentStorage[T]) Type() reflect.Type { return cs.typ }
func (cs *componentStorage[T]) Blocks() int        { return len(cs.blocks) }
