package debugui

import (
	"github.com/plus3/tanks/ecs"
)

// Overlay is the inspector's own ECS world. Call Update between the ImGui
// backend's BeginFrame and EndFrame.
type Overlay struct {
	entities  *ecs.Allocator
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	timer     *FrameTimer
	elapsed   float64

	Input ImguiInputState
}

// NewOverlay builds the inspector windows for target storage and scheduler.
func NewOverlay(target *ecs.Storage, scheduler *ecs.Scheduler) (*Overlay, error) {
	registry := ecs.NewComponentRegistry()
	RegisterDebugUIComponents(registry)

	o := &Overlay{
		entities: ecs.NewAllocator(),
		storage:  ecs.NewStorage(registry),
		timer:    NewFrameTimer(),
	}
	o.scheduler = ecs.NewScheduler(o.entities, o.storage)
	o.scheduler.Register(&ImguiSystem{Input: &o.Input})

	err := SpawnDebugUI(o.storage, o.entities, Target{
		Storage:   target,
		Scheduler: scheduler,
		Timer:     o.timer,
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Storage returns the storage holding the window entities.
func (o *Overlay) Storage() *ecs.Storage {
	return o.storage
}

// Update renders every window.
func (o *Overlay) Update() error {
	dt := float64(o.timer.GetDeltaTime())
	o.elapsed += dt
	return o.scheduler.Once(dt, o.elapsed)
}
