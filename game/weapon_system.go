package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/ecs"
)

const (
	muzzleDistance = 2
	bulletScale    = 0.2
)

// WeaponSystem counts weapon cooldowns down and fires for tanks that want
// to. A player's intent is cleared by the shot; a bot keeps firing as long
// as its intent stays set.
type WeaponSystem struct {
	Resources *Resources
	Settings  Settings
	Events    EventSink

	Tanks ecs.Query[struct {
		ecs.Entity
		*Tank
		*Transform
		*Weapon
		*IntentToFire
		Player *Player `ecs:"optional"`
	}]
}

func (s *WeaponSystem) Execute(frame *ecs.UpdateFrame) error {
	dt := float32(frame.DeltaTime)

	for id, item := range s.Tanks.Iter() {
		w := item.Weapon
		w.Cooldown -= dt
		if w.Cooldown <= 0 && item.IntentToFire.Active {
			w.Cooldown = 1 / w.FireRate
			bullet := s.fire(frame.Commands, item.Transform, w)
			if item.Player != nil {
				item.IntentToFire.Active = false
			}
			s.Events.Emit(Event{Kind: EventFired, Entity: id, Other: bullet, Position: item.Transform.Position})
		}
		w.Active = w.Cooldown <= 0
	}
	return nil
}

func (s *WeaponSystem) fire(cmds *ecs.Commands, t *Transform, w *Weapon) ecs.Entity {
	components := []any{
		Bullet{},
		Transform{
			Position: t.Position.Add(Forward(t.Yaw).Mul(muzzleDistance)),
			Yaw:      t.Yaw,
			Scale:    mgl32.Vec3{bulletScale, bulletScale, bulletScale},
		},
		Velocity{Linear: w.BulletSpeed},
		Renderable{Mesh: s.Resources.Mesh(MeshBullet)},
	}
	if s.Settings.BulletTTL > 0 {
		components = append(components, Expirable{RemainingTime: s.Settings.BulletTTL})
	}
	return cmds.Spawn(components...)
}
