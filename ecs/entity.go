package ecs

// Entity is an opaque identifier. It carries no data; it only keys rows in
// component storages. The zero value never refers to a live entity.
type Entity uint64

// Allocator issues unique, strictly increasing entity identifiers.
// Identifiers are never reused within the lifetime of an Allocator.
type Allocator struct {
	next Entity
}

// NewAllocator creates an allocator whose first identifier is 1.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns a fresh entity identifier
func (a *Allocator) Next() Entity {
	id := a.next
	a.next++
	return id
}

// Issued returns how many identifiers have been handed out so far.
func (a *Allocator) Issued() uint64 {
	return uint64(a.next - 1)
}
