package ecs

import (
	"iter"
)

// Query is the eager counterpart of View. Execute snapshots the ids of the
// matching entities; iteration then walks the snapshot and re-reads each
// row, skipping entities that no longer match. Structural changes made while
// iterating are therefore safe, although components added after Execute are
// not observed until the next Execute.
type Query[T any] struct {
	view       *View[T]
	entities   []Entity
	cacheValid bool
}

// NewQuery creates a new Query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	return &Query[T]{
		view: NewView[T](storage),
	}
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.entities = q.entities[:0]
	q.cacheValid = false
}

// Execute snapshots the entities matching the query.
// Called automatically by the Scheduler before each system runs.
func (q *Query[T]) Execute() {
	q.entities = q.entities[:0]
	for id := range q.view.storages[q.view.base].Iter() {
		if q.view.matches(id) {
			q.entities = append(q.entities, id)
		}
	}
	q.cacheValid = true
}

// Entities returns a copy of the snapshot taken by the last Execute.
func (q *Query[T]) Entities() []Entity {
	if !q.cacheValid {
		panic("Query.Entities() called before Query.Execute()")
	}
	return append([]Entity(nil), q.entities...)
}

// Len returns the size of the snapshot.
func (q *Query[T]) Len() int {
	return len(q.entities)
}

// Get returns the populated view struct for id, or nil.
func (q *Query[T]) Get(id Entity) *T {
	return q.view.Get(id)
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	snapshot := append([]Entity(nil), q.entities...)
	return func(yield func(Entity, T) bool) {
		var result T
		for _, id := range snapshot {
			if !q.view.Fill(id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	seq := q.Iter()
	return func(yield func(T) bool) {
		for _, value := range seq {
			if !yield(value) {
				return
			}
		}
	}
}
