package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/arena"
	"github.com/plus3/tanks/ecs"
	"go.uber.org/zap"
)

const (
	// HitRadius is how close a bullet must come to a tank to destroy it.
	HitRadius = 1.5
	// TankMargin insets the walkable rectangle tanks are clamped to.
	TankMargin = 3
)

// Forward returns the unit facing of yaw on the xz plane.
func Forward(yaw float32) mgl32.Vec3 {
	s, c := math.Sincos(float64(yaw))
	return mgl32.Vec3{float32(c), 0, float32(-s)}
}

// PhysicsSystem integrates motion, keeps tanks on walkable ground, bounces
// bullets off walls and resolves bullet hits.
type PhysicsSystem struct {
	Map    *arena.Map
	Events EventSink
	Logger *zap.Logger

	Movers ecs.Query[struct {
		*Transform
		*Velocity
		Tank *Tank `ecs:"optional"`
	}]
	Tanks ecs.Query[struct {
		ecs.Entity
		*Tank
		*Transform
	}]
	Bullets ecs.Query[struct {
		ecs.Entity
		*Bullet
		*Transform
	}]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) error {
	dt := float32(frame.DeltaTime)
	s.move(dt)
	s.clampTanks()
	s.bounceBullets()
	s.resolveHits(frame.Commands)
	return nil
}

func (s *PhysicsSystem) move(dt float32) {
	for item := range s.Movers.Values() {
		t, v := item.Transform, item.Velocity
		dest := t.Position.Add(Forward(t.Yaw).Mul(v.Linear * dt))
		if item.Tank == nil {
			t.Position = dest
		} else if open, _ := s.Map.IsOpen(dest, false); open {
			t.Position = dest
		}
		t.Yaw += v.Angular * dt
	}
}

func (s *PhysicsSystem) clampTanks() {
	walkable := s.Map.Walkable(TankMargin)
	for item := range s.Tanks.Values() {
		item.Transform.Position = walkable.Clamp(item.Transform.Position)
	}
}

// bounceBullets reflects the yaw of every bullet sitting on a wall cell
// about the axis the wall runs along.
func (s *PhysicsSystem) bounceBullets() {
	for id, item := range s.Bullets.Iter() {
		t := item.Transform
		open, axis := s.Map.IsOpen(t.Position, true)
		if open {
			continue
		}
		switch axis {
		case arena.AxisX:
			t.Yaw = 2*math.Pi - t.Yaw
		case arena.AxisZ:
			t.Yaw = 3*math.Pi - t.Yaw
		default:
			continue
		}
		s.Events.Emit(Event{Kind: EventBounced, Entity: id, Position: t.Position})
	}
}

// resolveHits pairs every bullet with the first tank in range. Both are
// queued for removal once the scan is complete.
func (s *PhysicsSystem) resolveHits(cmds *ecs.Commands) {
	type hit struct{ tank, bullet ecs.Entity }
	var hits []hit

	for bulletID, bullet := range s.Bullets.Iter() {
		bp := bullet.Transform.Position
		for tankID, tank := range s.Tanks.Iter() {
			tp := tank.Transform.Position
			dx, dz := tp.X()-bp.X(), tp.Z()-bp.Z()
			if dx*dx+dz*dz <= HitRadius*HitRadius {
				hits = append(hits, hit{tank: tankID, bullet: bulletID})
				break
			}
		}
	}

	for _, h := range hits {
		cmds.Delete(h.tank)
		cmds.Delete(h.bullet)
		s.Logger.Debug("tank destroyed",
			zap.Uint64("entity", uint64(h.tank)), zap.Uint64("bullet", uint64(h.bullet)))
		s.Events.Emit(Event{Kind: EventDestroyed, Entity: h.tank, Other: h.bullet})
	}
}
