package game_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/ecs"
	"github.com/plus3/tanks/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeaponSim(t *testing.T) *sim {
	s := newSim(t, openMap(50, 50))
	return s.register(&game.WeaponSystem{
		Resources: s.res,
		Settings:  game.DefaultSettings(),
		Events:    s.events,
	})
}

func TestWeaponCooldownGatesFire(t *testing.T) {
	s := newWeaponSim(t)
	tank := s.tank(mgl32.Vec3{10, 0, 10}, game.Bot{})
	ecs.Get[game.IntentToFire](s.storage, tank).Active = true
	weapon := ecs.Get[game.Weapon](s.storage, tank)

	s.tick(0.25)
	assert.Equal(t, 1, countBullets(s.storage))
	assert.Equal(t, float32(2.0), weapon.Cooldown)
	assert.False(t, weapon.Active)

	// Intent stays set, but the next shot waits for the cooldown.
	for i := 0; i < 7; i++ {
		s.tick(0.25)
	}
	assert.Equal(t, 1, countBullets(s.storage))
	assert.Equal(t, float32(0.25), weapon.Cooldown)

	s.tick(0.25)
	assert.Equal(t, 2, countBullets(s.storage))
	assert.Equal(t, float32(2.0), weapon.Cooldown)
}

func TestWeaponSpawnsBulletAtMuzzle(t *testing.T) {
	s := newWeaponSim(t)
	tank := s.tank(mgl32.Vec3{10, 0, 10}, game.Bot{})
	ecs.Get[game.IntentToFire](s.storage, tank).Active = true

	s.tick(0.1)

	bullets := ecs.NewView[struct {
		*game.Bullet
		*game.Transform
		*game.Velocity
		*game.Renderable
		*game.Expirable
	}](s.storage)
	require.Equal(t, 1, bullets.Count())
	for b := range bullets.Values() {
		assert.True(t, b.Transform.Position.ApproxEqual(mgl32.Vec3{12, 0, 10}))
		assert.Equal(t, float32(0), b.Transform.Yaw)
		assert.Equal(t, mgl32.Vec3{0.2, 0.2, 0.2}, b.Transform.Scale)
		assert.Equal(t, game.Velocity{Linear: 16}, *b.Velocity)
		assert.Equal(t, game.MeshBullet, b.Renderable.Mesh.Name)
		assert.Equal(t, float32(8), b.Expirable.RemainingTime)
	}

	require.Len(t, s.events.events, 1)
	assert.Equal(t, game.EventFired, s.events.events[0].Kind)
	assert.Equal(t, tank, s.events.events[0].Entity)
}

func TestWeaponPlayerIsSingleShot(t *testing.T) {
	s := newWeaponSim(t)
	tank := s.tank(mgl32.Vec3{10, 0, 10}, game.Player{})
	intent := ecs.Get[game.IntentToFire](s.storage, tank)
	intent.Active = true

	s.tick(0.5)
	assert.Equal(t, 1, countBullets(s.storage))
	assert.False(t, intent.Active)

	for i := 0; i < 10; i++ {
		s.tick(0.5)
	}
	assert.Equal(t, 1, countBullets(s.storage))
	assert.True(t, ecs.Get[game.Weapon](s.storage, tank).Active, "weapon is armed again")
}

func TestWeaponWithoutIntentDoesNotFire(t *testing.T) {
	s := newWeaponSim(t)
	s.tank(mgl32.Vec3{10, 0, 10}, game.Bot{})

	for i := 0; i < 5; i++ {
		s.tick(1)
	}
	assert.Equal(t, 0, countBullets(s.storage))
}
