package game

import (
	"github.com/plus3/tanks/ecs"
)

// ExpirationSystem ages Expirable entities and removes the ones whose time
// is up after the scan.
type ExpirationSystem struct {
	Events EventSink

	Expiring ecs.Query[struct {
		ecs.Entity
		*Expirable
	}]
}

func (s *ExpirationSystem) Execute(frame *ecs.UpdateFrame) error {
	dt := float32(frame.DeltaTime)

	var expired []ecs.Entity
	for id, item := range s.Expiring.Iter() {
		item.Expirable.RemainingTime -= dt
		if item.Expirable.RemainingTime <= 0 {
			expired = append(expired, id)
		}
	}

	for _, id := range expired {
		frame.Commands.Delete(id)
		s.Events.Emit(Event{Kind: EventExpired, Entity: id})
	}
	return nil
}
