package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

// Commands provides a buffer for deferred ECS operations that are applied
// when the scheduler flushes it between systems. This prevents structural
// changes to the storage while a system is iterating.
type Commands struct {
	entities *Allocator
	spawns   []spawnCommand
	deletes  []Entity
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func()
}

// NewCommands creates a command buffer that reserves spawned ids from entities.
func NewCommands(entities *Allocator) *Commands {
	return &Commands{entities: entities}
}

type spawnCommand struct {
	entity     Entity
	components []any
}

type addComponentCommand struct {
	entity    Entity
	component any
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

// Defer queues a function to run after every other queued operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components. The id
// is reserved immediately; its components appear on Flush.
func (c *Commands) Spawn(components ...any) Entity {
	id := c.entities.Next()
	c.spawns = append(c.spawns, spawnCommand{entity: id, components: components})
	return id
}

// Delete queues an entity deletion. Queuing the same entity twice is harmless.
func (c *Commands) Delete(entity Entity) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity Entity, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending reports whether any operation is queued.
func (c *Commands) Pending() bool {
	return len(c.spawns)+len(c.deletes)+len(c.adds)+len(c.removes)+len(c.defers) > 0
}

// Flush applies all queued operations to storage in the order deletes,
// removes, adds, spawns, defers and resets the buffer. Every operation is
// attempted; failures are joined into the returned error.
func (c *Commands) Flush(storage *Storage) error {
	var errs []error
	deleted := make(map[Entity]bool, len(c.deletes))

	for _, e := range c.deletes {
		if deleted[e] {
			continue
		}
		storage.Delete(e)
		deleted[e] = true
	}

	for _, cmd := range c.removes {
		if deleted[cmd.entity] {
			continue
		}
		if cs, err := storage.storageFor(cmd.compType); err != nil {
			errs = append(errs, err)
		} else {
			cs.Delete(cmd.entity)
		}
	}

	for _, cmd := range c.adds {
		if deleted[cmd.entity] {
			continue
		}
		if err := storage.AddComponent(cmd.entity, cmd.component); err != nil {
			errs = append(errs, fmt.Errorf("add to entity %d: %w", cmd.entity, err))
		}
	}

	for _, cmd := range c.spawns {
		if err := storage.Spawn(cmd.entity, cmd.components...); err != nil {
			errs = append(errs, err)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
	return errors.Join(errs...)
}
