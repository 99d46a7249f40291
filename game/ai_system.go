package game

import (
	"github.com/plus3/tanks/ecs"
)

const (
	botMaxLinear  = 15
	botMaxAngular = 5
)

// AISystem drives Bot tanks. In random mode every bot re-rolls its velocity
// each tick; bots carrying a Motion component follow their queued segments
// instead. Bots always want to fire.
type AISystem struct {
	Resources *Resources

	Bots ecs.Query[struct {
		*Bot
		*Velocity
		*IntentToFire
		Motion *Motion `ecs:"optional"`
	}]
}

func (s *AISystem) Execute(frame *ecs.UpdateFrame) error {
	rng := s.Resources.Rand
	dt := float32(frame.DeltaTime)

	for item := range s.Bots.Values() {
		if item.Motion != nil {
			item.Motion.refill(rng)
			item.Motion.Step(item.Velocity, dt)
		} else {
			item.Velocity.Linear = float32(rng.IntN(botMaxLinear))
			item.Velocity.Angular = float32(rng.IntN(botMaxAngular))
		}
		item.IntentToFire.Active = true
	}
	return nil
}
