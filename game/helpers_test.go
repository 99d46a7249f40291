package game_test

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/arena"
	"github.com/plus3/tanks/ecs"
	"github.com/plus3/tanks/game"
	"github.com/stretchr/testify/require"
)

// sim runs a hand-picked subset of systems over a fresh storage.
type sim struct {
	t         *testing.T
	entities  *ecs.Allocator
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	res       *game.Resources
	events    *eventLog
	elapsed   float64
}

func newSim(t *testing.T, m *arena.Map) *sim {
	t.Helper()
	entities := ecs.NewAllocator()
	storage := ecs.NewStorage(game.NewRegistry())
	return &sim{
		t:         t,
		entities:  entities,
		storage:   storage,
		scheduler: ecs.NewScheduler(entities, storage),
		res:       game.NewResources(m, rand.New(rand.NewPCG(1, 1))),
		events:    &eventLog{},
	}
}

// openMap is a width x height map with no barriers at all.
func openMap(width, height int) *arena.Map {
	return arena.New(width, height, 1)
}

func defaultMap(t *testing.T) *arena.Map {
	m, err := arena.NewDefault(80, 60)
	require.NoError(t, err)
	return m
}

func (s *sim) register(systems ...ecs.System) *sim {
	for _, sys := range systems {
		s.scheduler.Register(sys)
	}
	return s
}

func (s *sim) spawn(components ...any) ecs.Entity {
	s.t.Helper()
	id := s.entities.Next()
	require.NoError(s.t, s.storage.Spawn(id, components...))
	return id
}

func (s *sim) tick(dt float64) {
	s.t.Helper()
	s.elapsed += dt
	require.NoError(s.t, s.scheduler.Once(dt, s.elapsed))
}

func (s *sim) tank(pos mgl32.Vec3, tag any) ecs.Entity {
	return s.spawn(
		game.Tank{},
		tag,
		game.Transform{Position: pos, Scale: mgl32.Vec3{0.15, 0.15, 0.15}},
		game.Velocity{},
		game.Weapon{FireRate: 0.5, BulletSpeed: 16},
		game.IntentToFire{},
	)
}

func (s *sim) bullet(pos mgl32.Vec3, yaw float32) ecs.Entity {
	return s.spawn(
		game.Bullet{},
		game.Transform{Position: pos, Yaw: yaw, Scale: mgl32.Vec3{0.2, 0.2, 0.2}},
		game.Velocity{},
	)
}

func countBullets(st *ecs.Storage) int {
	return ecs.NewView[struct{ *game.Bullet }](st).Count()
}

func countTanks(st *ecs.Storage) int {
	return ecs.NewView[struct{ *game.Tank }](st).Count()
}

type eventLog struct {
	events []game.Event
}

func (l *eventLog) Emit(e game.Event) { l.events = append(l.events, e) }

func (l *eventLog) kinds() []game.EventKind {
	var out []game.EventKind
	for _, e := range l.events {
		out = append(out, e.Kind)
	}
	return out
}

type submission struct {
	transform mgl32.Mat4
	mesh      *game.Mesh
	profile   game.ShaderProfile
}

type recordingRenderer struct {
	frames  int
	elapsed float32
	drawn   []submission
	err     error
}

func (r *recordingRenderer) BeginFrame(elapsed float32) {
	r.frames++
	r.elapsed = elapsed
	r.drawn = r.drawn[:0]
}

func (r *recordingRenderer) Submit(transform mgl32.Mat4, mesh *game.Mesh, profile game.ShaderProfile) {
	r.drawn = append(r.drawn, submission{transform, mesh, profile})
}

func (r *recordingRenderer) EndFrame() error { return r.err }
