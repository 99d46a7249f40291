package ecs

import (
	"fmt"
	"reflect"
	"slices"
)

// Storage is the component manager of an ECS instance. It owns exactly one
// per-type storage for every type in its registry. Entities have no record
// of their own: an entity exists only through the rows keyed by its id.
type Storage struct {
	registry *ComponentRegistry
	storages []iComponentStorage
}

// NewStorage creates a storage with one component storage per type
// currently registered in registry. Types registered afterwards are picked
// up lazily.
func NewStorage(registry *ComponentRegistry) *Storage {
	s := &Storage{registry: registry}
	s.sync()
	return s
}

func (s *Storage) sync() {
	for i := len(s.storages); i < len(s.registry.factories); i++ {
		s.storages = append(s.storages, s.registry.factories[i]())
	}
}

// Registry returns the registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) storageFor(t reflect.Type) (iComponentStorage, error) {
	id, ok := s.registry.ID(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredComponent, t)
	}
	s.sync()
	return s.storages[id], nil
}

func (s *Storage) mustStorageFor(t reflect.Type) iComponentStorage {
	cs, err := s.storageFor(t)
	if err != nil {
		panic(err)
	}
	return cs
}

func typedStorage[T any](s *Storage) (*componentStorage[T], error) {
	cs, err := s.storageFor(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return cs.(*componentStorage[T]), nil
}

// Add attaches component c to entity e.
func Add[T any](s *Storage, e Entity, c T) error {
	cs, err := typedStorage[T](s)
	if err != nil {
		return err
	}
	return cs.insert(e, c)
}

// Get returns a pointer to e's component of type T, or nil when e does not
// hold one. The pointer is valid until the row is removed or compacted.
func Get[T any](s *Storage, e Entity) *T {
	cs, err := typedStorage[T](s)
	if err != nil {
		return nil
	}
	return cs.get(e)
}

// MustGet is like Get but returns ErrMissingComponent instead of nil.
func MustGet[T any](s *Storage, e Entity) (*T, error) {
	cs, err := typedStorage[T](s)
	if err != nil {
		return nil, err
	}
	if c := cs.get(e); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("%w: entity %d has no %s", ErrMissingComponent, e, cs.typ)
}

// Has reports whether e holds a component of type T.
func Has[T any](s *Storage, e Entity) bool {
	cs, err := typedStorage[T](s)
	if err != nil {
		return false
	}
	return cs.Has(e)
}

// RemoveComponent detaches e's component of type T, if any.
func RemoveComponent[T any](s *Storage, e Entity) bool {
	cs, err := typedStorage[T](s)
	if err != nil {
		return false
	}
	return cs.Delete(e)
}

// AddComponent attaches a dynamically typed component (a value or a pointer
// to a value of a registered type) to e.
func (s *Storage) AddComponent(e Entity, component any) error {
	t := reflect.TypeOf(component)
	if t == nil {
		return fmt.Errorf("ecs: nil component for entity %d", e)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	cs, err := s.storageFor(t)
	if err != nil {
		return err
	}
	return cs.Append(e, component)
}

// Spawn attaches every component to e. If any attachment fails, the rows
// already added for e are removed and the error is returned.
func (s *Storage) Spawn(e Entity, components ...any) error {
	for _, c := range components {
		if err := s.AddComponent(e, c); err != nil {
			s.Delete(e)
			return fmt.Errorf("spawn entity %d: %w", e, err)
		}
	}
	return nil
}

// Contains reports whether e holds the component registered under id.
func (s *Storage) Contains(e Entity, id ComponentID) bool {
	s.sync()
	if int(id) >= len(s.storages) {
		return false
	}
	return s.storages[id].Has(e)
}

// Mask returns the set of component ids e currently holds.
func (s *Storage) Mask(e Entity) Mask {
	s.sync()
	var m Mask
	for _, cs := range s.storages {
		if cs.Has(e) {
			m = m.With(cs.ID())
		}
	}
	return m
}

// Alive reports whether e holds at least one component.
func (s *Storage) Alive(e Entity) bool {
	for _, cs := range s.storages {
		if cs.Has(e) {
			return true
		}
	}
	return false
}

// Delete removes e from every storage and returns the number of rows
// removed. Deleting an unknown entity is a no-op.
func (s *Storage) Delete(e Entity) int {
	removed := 0
	for _, cs := range s.storages {
		if cs.Delete(e) {
			removed++
		}
	}
	return removed
}

// Components returns pointers to every component e holds, in registry order.
func (s *Storage) Components(e Entity) []any {
	var out []any
	for _, cs := range s.storages {
		if c := cs.Get(e); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// ComponentByType returns a pointer to e's component of type t, or nil.
func (s *Storage) ComponentByType(e Entity, t reflect.Type) any {
	cs, err := s.storageFor(t)
	if err != nil {
		return nil
	}
	return cs.Get(e)
}

// Entities returns every entity holding at least one component, ascending.
func (s *Storage) Entities() []Entity {
	seen := make(map[Entity]struct{})
	for _, cs := range s.storages {
		for e := range cs.Iter() {
			seen[e] = struct{}{}
		}
	}
	out := make([]Entity, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Count returns the number of entities holding every type in ids.
func (s *Storage) Count(ids ...ComponentID) int {
	if len(ids) == 0 {
		return len(s.Entities())
	}
	s.sync()
	for _, id := range ids {
		if int(id) >= len(s.storages) {
			return 0
		}
	}
	base := s.storages[ids[0]]
	for _, id := range ids[1:] {
		if s.storages[id].Len() < base.Len() {
			base = s.storages[id]
		}
	}
	n := 0
	for e := range base.Iter() {
		match := true
		for _, id := range ids {
			if !s.storages[id].Has(e) {
				match = false
				break
			}
		}
		if match {
			n++
		}
	}
	return n
}

// Holes returns the number of tombstoned rows across all storages.
func (s *Storage) Holes() int {
	n := 0
	for _, cs := range s.storages {
		n += cs.Holes()
	}
	return n
}

// Compact compacts every storage and returns the number of reclaimed rows.
// It must not be called while a View or Query is being iterated.
func (s *Storage) Compact() int {
	n := 0
	for _, cs := range s.storages {
		n += cs.Compact()
	}
	return n
}
