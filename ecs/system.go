package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query
// and View fields for accessing entities, as well as custom state fields that
// persist between frames. A returned error stops the current update.
type System interface {
	Execute(frame *UpdateFrame) error
}
