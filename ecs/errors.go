package ecs

import "errors"

var (
	// ErrDuplicateComponent is returned when an entity already holds a
	// component of the type being added.
	ErrDuplicateComponent = errors.New("duplicate component")

	// ErrUnregisteredComponent reports use of a type that was never passed
	// to RegisterComponent.
	ErrUnregisteredComponent = errors.New("component type not registered")

	// ErrInvalidEntity reports use of the zero Entity, which is never issued.
	ErrInvalidEntity = errors.New("invalid entity 0")

	// ErrMissingComponent reports access to a component the entity does not hold.
	ErrMissingComponent = errors.New("missing component")

	// ErrViewInvalidated is the panic value raised when a storage queried by
	// a lazy View is structurally modified during iteration.
	ErrViewInvalidated = errors.New("view invalidated by structural change during iteration")
)
