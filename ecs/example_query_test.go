package ecs_test

import (
	"fmt"

	"github.com/plus3/tanks/ecs"
)

// ExampleQuery demonstrates an eager query. Execute snapshots the matching
// entities, so the loop body may add or remove components freely; rows that
// stop matching are skipped.
func ExampleQuery() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)
	entities := ecs.NewAllocator()

	storage.Spawn(entities.Next(), Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	storage.Spawn(entities.Next(), Position{X: 10, Y: 10}, Velocity{DX: 0, DY: 1}, Health{Current: 100, Max: 100})
	storage.Spawn(entities.Next(), Position{X: 20, Y: 20}, Velocity{DX: -1, DY: -1})

	query := ecs.NewQuery[struct {
		Id ecs.Entity
		*Position
		*Velocity
	}](storage)
	query.Execute()

	fmt.Println("Moving entities:")
	for item := range query.Values() {
		newX := item.Position.X + item.Velocity.DX
		newY := item.Position.Y + item.Velocity.DY
		fmt.Printf("Position (%.0f, %.0f) -> (%.0f, %.0f)\n", item.Position.X, item.Position.Y, newX, newY)
		if item.Id == 1 {
			ecs.RemoveComponent[Velocity](storage, 3)
		}
	}

	// Output:
	// Moving entities:
	// Position (0, 0) -> (1, 0)
	// Position (10, 10) -> (10, 11)
}
