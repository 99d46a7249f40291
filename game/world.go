// Package game is the tank battle simulation: its components, the systems
// that run them each tick, and the World that sequences those systems.
package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/ecs"
	"go.uber.org/zap"
)

// compactThreshold is the number of tombstoned rows that triggers a
// storage compaction at the end of a tick.
const compactThreshold = 256

// World owns the entity allocator and component storage of one session
// and runs the fixed system pipeline:
// Input, Spawner, AI, Physics, Weapon, Expiration, Render.
type World struct {
	entities  *ecs.Allocator
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	resources *Resources
	settings  Settings
	events    EventSink
	logger    *zap.Logger
	input     *InputSystem
}

// Option customizes a World.
type Option func(*World)

// WithSettings overrides DefaultSettings.
func WithSettings(s Settings) Option {
	return func(w *World) { w.settings = s }
}

// WithEvents routes simulation events to sink.
func WithEvents(sink EventSink) Option {
	return func(w *World) { w.events = sink }
}

// WithLogger sets the logger used by the world and its systems.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.logger = l }
}

// NewWorld builds a world over res, spawns the barriers described by the
// arena and registers the system pipeline.
func NewWorld(res *Resources, input Input, renderer Renderer, opts ...Option) (*World, error) {
	w := &World{
		entities:  ecs.NewAllocator(),
		storage:   ecs.NewStorage(NewRegistry()),
		resources: res,
		settings:  DefaultSettings(),
		events:    NopSink{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	if err := w.spawnBarriers(); err != nil {
		return nil, err
	}

	w.input = &InputSystem{Input: input}
	w.scheduler = ecs.NewScheduler(w.entities, w.storage)
	w.scheduler.Register(w.input)
	w.scheduler.Register(&SpawnerSystem{
		Resources: res,
		Settings:  w.settings,
		Events:    w.events,
		Logger:    w.logger.Named("spawner"),
	})
	w.scheduler.Register(&AISystem{Resources: res})
	w.scheduler.Register(&PhysicsSystem{
		Map:    res.Map,
		Events: w.events,
		Logger: w.logger.Named("physics"),
	})
	w.scheduler.Register(&WeaponSystem{
		Resources: res,
		Settings:  w.settings,
		Events:    w.events,
	})
	w.scheduler.Register(&ExpirationSystem{Events: w.events})
	w.scheduler.Register(&RenderSystem{Renderer: renderer})

	w.logger.Info("world ready",
		zap.Int("width", res.Map.Width()-1),
		zap.Int("height", res.Map.Height()-1),
		zap.Int("players", w.settings.Players),
		zap.Int("bots", w.settings.Bots),
		zap.String("ai", string(w.settings.AI)))
	return w, nil
}

func (w *World) spawnBarriers() error {
	for _, l := range w.resources.Map.Barriers() {
		start := mgl32.Vec3{float32(l.Start.X), 0, float32(l.Start.Y)}
		end := mgl32.Vec3{float32(l.End.X), 0, float32(l.End.Y)}
		err := w.storage.Spawn(w.entities.Next(),
			Barrier{},
			Transform{Scale: mgl32.Vec3{1, 1, 1}},
			Renderable{Mesh: BarrierMesh(start, end)},
		)
		if err != nil {
			return fmt.Errorf("spawn barrier: %w", err)
		}
	}
	return nil
}

// Update advances the simulation by dt seconds. elapsed is the time since
// the session started. Any system error is returned and ends the tick.
func (w *World) Update(dt, elapsed float64) error {
	if err := w.scheduler.Once(dt, elapsed); err != nil {
		return err
	}
	if w.storage.Holes() >= compactThreshold {
		n := w.storage.Compact()
		w.logger.Debug("compacted storage", zap.Int("rows", n))
	}
	return nil
}

// QuitRequested reports whether the players asked to leave.
func (w *World) QuitRequested() bool {
	return w.input.QuitRequested()
}

func (w *World) Storage() *ecs.Storage     { return w.storage }
func (w *World) Entities() *ecs.Allocator  { return w.entities }
func (w *World) Scheduler() *ecs.Scheduler { return w.scheduler }
func (w *World) Resources() *Resources     { return w.resources }
func (w *World) Settings() Settings        { return w.settings }

// Stats is a snapshot of the session for frontends and reports.
type Stats struct {
	Tanks, Players, Bots, Bullets, Barriers int
	Storage                                 *ecs.StorageStats
	Scheduler                               *ecs.SchedulerStats
}

// Stats collects population counts and engine statistics.
func (w *World) Stats() Stats {
	return Stats{
		Tanks:     countOf[Tank](w.storage),
		Players:   countOf[Player](w.storage),
		Bots:      countOf[Bot](w.storage),
		Bullets:   countOf[Bullet](w.storage),
		Barriers:  countOf[Barrier](w.storage),
		Storage:   w.storage.CollectStats(),
		Scheduler: w.scheduler.GetStats(),
	}
}

func countOf[T any](s *ecs.Storage) int {
	return ecs.NewView[struct{ C *T }](s).Count()
}
