package ecs_test

import "github.com/plus3/tanks/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Temperature float64

type Inventory struct {
	Items []string
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Temperature](registry)
	ecs.RegisterComponent[Inventory](registry)
	return registry
}

type testWorld struct {
	entities *ecs.Allocator
	storage  *ecs.Storage
}

func newTestWorld() *testWorld {
	return &testWorld{
		entities: ecs.NewAllocator(),
		storage:  ecs.NewStorage(newTestRegistry()),
	}
}

func (w *testWorld) spawn(components ...any) ecs.Entity {
	id := w.entities.Next()
	if err := w.storage.Spawn(id, components...); err != nil {
		panic(err)
	}
	return id
}
