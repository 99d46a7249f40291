package game

import (
	"math"

	"github.com/plus3/tanks/ecs"
)

const (
	turnRate      = math.Pi / 4 * 8
	forwardSpeed  = 15
	backwardSpeed = -10
)

// InputSystem steers Player tanks from the keyboard. Each player is driven
// by the binding of its slot.
type InputSystem struct {
	Input   Input
	Players ecs.Query[struct {
		*Player
		*Velocity
		*IntentToFire
	}]

	quit bool
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) error {
	if s.Input.TakeKeyPressed(KeyEscape) {
		s.quit = true
	}

	// Take every fire edge so a press made while a player is dead does not
	// fire once it respawns.
	var fire [len(PlayerBindings)]bool
	for i, b := range PlayerBindings {
		fire[i] = s.Input.TakeKeyPressed(b.Fire)
	}

	for item := range s.Players.Values() {
		slot := item.Player.Slot
		if slot < 0 || slot >= len(PlayerBindings) {
			continue
		}
		b := PlayerBindings[slot]
		item.Velocity.Angular = turnRate * (s.axis(b.Left) - s.axis(b.Right))
		item.Velocity.Linear = s.throttle(b)
		if fire[slot] {
			item.IntentToFire.Active = !item.IntentToFire.Active
		}
	}
	return nil
}

func (s *InputSystem) axis(k Key) float32 {
	if s.Input.IsKeyDown(k) {
		return 1
	}
	return 0
}

func (s *InputSystem) throttle(b Binding) float32 {
	fwd, back := s.Input.IsKeyDown(b.Forward), s.Input.IsKeyDown(b.Backward)
	switch {
	case fwd == back:
		return 0
	case fwd:
		return forwardSpeed
	default:
		return backwardSpeed
	}
}

// QuitRequested reports whether Escape has been pressed.
func (s *InputSystem) QuitRequested() bool {
	return s.quit
}
