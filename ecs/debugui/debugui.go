// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// The inspector windows are themselves entities of a small ECS world, rendered
// by ImguiSystem, and inspect a separate target storage and scheduler.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tanks/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also refreshes Input, when set, with the current input capture state.
type ImguiSystem struct {
	Items ecs.Query[struct{ *ImguiItem }]
	Input *ImguiInputState
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) error {
	if i.Input != nil {
		io := imgui.CurrentIO()
		i.Input.WantCaptureMouse = io.WantCaptureMouse()
		i.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
	return nil
}
