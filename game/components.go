package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/ecs"
)

// Transform places an entity in world space. Yaw is the rotation about the
// y axis in radians; a yaw of zero faces +x.
type Transform struct {
	Position mgl32.Vec3
	Yaw      float32
	Scale    mgl32.Vec3
}

// Velocity moves an entity along its facing (Linear, units per second) and
// turns it (Angular, radians per second).
type Velocity struct {
	Linear  float32
	Angular float32
}

// Weapon is a cooldown-gated bullet emitter. Active is true while the
// cooldown has elapsed and the weapon could fire this tick.
type Weapon struct {
	FireRate    float32
	BulletSpeed float32
	Cooldown    float32
	Active      bool
}

// IntentToFire records whether the owner wants to shoot.
type IntentToFire struct {
	Active bool
}

// Expirable entities are removed once RemainingTime runs out.
type Expirable struct {
	RemainingTime float32
}

// Renderable references a shared mesh.
type Renderable struct {
	Mesh *Mesh
}

type (
	Tank    struct{}
	Bot     struct{}
	Bullet  struct{}
	Barrier struct{}
)

// Player marks a human-controlled tank. Slot indexes PlayerBindings and
// survives respawns.
type Player struct {
	Slot int
}

// NewRegistry returns a registry holding every game component type. This is
// the single list storages are built from; a type missing here cannot be
// stored.
func NewRegistry() *ecs.ComponentRegistry {
	r := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Weapon](r)
	ecs.RegisterComponent[IntentToFire](r)
	ecs.RegisterComponent[Expirable](r)
	ecs.RegisterComponent[Renderable](r)
	ecs.RegisterComponent[Motion](r)
	ecs.RegisterComponent[Tank](r)
	ecs.RegisterComponent[Player](r)
	ecs.RegisterComponent[Bot](r)
	ecs.RegisterComponent[Bullet](r)
	ecs.RegisterComponent[Barrier](r)
	return r
}
