package game

import (
	"fmt"

	"github.com/plus3/tanks/ecs"
)

// RenderSystem submits every drawable to the renderer. Tanks use the player
// profile, everything else the environment profile.
type RenderSystem struct {
	Renderer Renderer

	Drawables ecs.Query[struct {
		*Transform
		*Renderable
		Tank *Tank `ecs:"optional"`
	}]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) error {
	s.Renderer.BeginFrame(float32(frame.Elapsed))
	for item := range s.Drawables.Values() {
		if item.Renderable.Mesh == nil {
			continue
		}
		profile := ProfileEnvironment
		if item.Tank != nil {
			profile = ProfilePlayer
		}
		s.Renderer.Submit(ModelMatrix(*item.Transform), item.Renderable.Mesh, profile)
	}
	if err := s.Renderer.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}
