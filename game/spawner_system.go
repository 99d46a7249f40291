package game

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/ecs"
	"go.uber.org/zap"
)

// MaxSpawnAttempts bounds the rejection sampling of spawn cells.
const MaxSpawnAttempts = 10000

// ErrNoOpenCell is returned when no open cell was found within
// MaxSpawnAttempts samples.
var ErrNoOpenCell = errors.New("no open cell to spawn on")

const tankScale = 0.15

// SpawnerSystem keeps the number of bots and players at their targets.
type SpawnerSystem struct {
	Resources *Resources
	Settings  Settings
	Events    EventSink
	Logger    *zap.Logger

	Bots    ecs.View[struct{ *Bot }]
	Players ecs.View[struct{ *Player }]
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) error {
	bots := s.Bots.Count()
	var taken [len(PlayerBindings)]bool
	players := 0
	for item := range s.Players.Values() {
		if item.Player.Slot >= 0 && item.Player.Slot < len(taken) {
			taken[item.Player.Slot] = true
		}
		players++
	}
	s.Logger.Debug("spawner census",
		zap.Int("bots", bots), zap.Int("bots_wanted", s.Settings.Bots),
		zap.Int("players", players), zap.Int("players_wanted", s.Settings.Players))

	for ; bots < s.Settings.Bots; bots++ {
		extra := []any{Bot{}}
		if s.Settings.AI == AIScripted {
			extra = append(extra, Motion{})
		}
		if err := s.spawnTank(frame, extra...); err != nil {
			return err
		}
	}
	for slot := 0; slot < s.Settings.Players && players < s.Settings.Players; slot++ {
		if taken[slot] {
			continue
		}
		if err := s.spawnTank(frame, Player{Slot: slot}); err != nil {
			return err
		}
		players++
	}
	return nil
}

func (s *SpawnerSystem) spawnTank(frame *ecs.UpdateFrame, extra ...any) error {
	pos, err := s.openPosition()
	if err != nil {
		return err
	}
	components := append([]any{
		Tank{},
		Transform{Position: pos, Scale: mgl32.Vec3{tankScale, tankScale, tankScale}},
		Velocity{},
		Weapon{FireRate: s.Settings.FireRate, BulletSpeed: s.Settings.BulletSpeed},
		IntentToFire{},
		Renderable{Mesh: s.Resources.Mesh(MeshTank)},
	}, extra...)

	id := frame.Commands.Spawn(components...)
	s.Logger.Debug("spawned tank", zap.Uint64("entity", uint64(id)),
		zap.Float32("x", pos.X()), zap.Float32("z", pos.Z()))
	s.Events.Emit(Event{Kind: EventSpawned, Entity: id, Position: pos})
	return nil
}

// openPosition samples map cells uniformly until it finds one a tank may
// stand on.
func (s *SpawnerSystem) openPosition() (mgl32.Vec3, error) {
	m, rng := s.Resources.Map, s.Resources.Rand
	for range MaxSpawnAttempts {
		x, z := rng.IntN(m.Width()), rng.IntN(m.Height())
		if m.IsOpenCell(x, z) {
			return mgl32.Vec3{float32(x), 0, float32(z)}, nil
		}
	}
	return mgl32.Vec3{}, fmt.Errorf("%w after %d attempts", ErrNoOpenCell, MaxSpawnAttempts)
}
