package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/tanks/ecs"
)

// EventKind identifies what happened.
type EventKind uint8

const (
	EventSpawned EventKind = iota
	EventFired
	EventBounced
	EventDestroyed
	EventExpired
)

func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventFired:
		return "fired"
	case EventBounced:
		return "bounced"
	case EventDestroyed:
		return "destroyed"
	case EventExpired:
		return "expired"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is a notable simulation occurrence. Other is the second party
// where there is one: the bullet for EventFired and EventDestroyed.
type Event struct {
	Kind     EventKind
	Entity   ecs.Entity
	Other    ecs.Entity
	Position mgl32.Vec3
}

// EventSink receives events synchronously from inside a tick. It must not
// block.
type EventSink interface {
	Emit(Event)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

func (f EventSinkFunc) Emit(e Event) { f(e) }

// MultiSink fans an event out to several sinks in order.
type MultiSink []EventSink

func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}
