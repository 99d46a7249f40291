package debugui

import (
	"fmt"

	"github.com/plus3/tanks/ecs"
)

// Target is the storage and scheduler the inspector windows look at.
type Target struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Timer     *FrameTimer
}

// SpawnDebugUI spawns one window entity per inspector panel into ui.
func SpawnDebugUI(ui *ecs.Storage, entities *ecs.Allocator, target Target) error {
	browser := entities.Next()
	inspector := entities.Next()
	viewer := entities.Next()
	perf := entities.Next()
	query := entities.Next()

	windows := []struct {
		id         ecs.Entity
		components []any
	}{
		{browser, []any{NewEntityBrowserComponent(100), ImguiItem{Render: func() {
			ecs.Get[EntityBrowserComponent](ui, browser).Render(target.Storage)
		}}}},
		{inspector, []any{NewComponentInspectorComponent(), ImguiItem{Render: func() {
			selected := ecs.Get[EntityBrowserComponent](ui, browser).GetSelectedEntity()
			ecs.Get[ComponentInspectorComponent](ui, inspector).Render(target.Storage, selected)
		}}}},
		{viewer, []any{NewStorageViewerComponent(), ImguiItem{Render: func() {
			if id := ecs.Get[StorageViewerComponent](ui, viewer).Render(target.Storage); id != nil {
				ecs.Get[EntityBrowserComponent](ui, browser).FilterComponent(id)
			}
		}}}},
		{perf, []any{NewPerformanceStatsComponent(120), ImguiItem{Render: func() {
			ecs.Get[PerformanceStatsComponent](ui, perf).Render(target.Storage, target.Scheduler, target.Timer.Delta())
		}}}},
		{query, []any{NewQueryDebuggerComponent(), ImguiItem{Render: func() {
			ecs.Get[QueryDebuggerComponent](ui, query).Render(target.Storage)
		}}}},
	}

	for _, w := range windows {
		if err := ui.Spawn(w.id, w.components...); err != nil {
			return fmt.Errorf("spawn debug window: %w", err)
		}
	}
	return nil
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[StorageViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
}
