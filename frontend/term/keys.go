package term

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tanks/game"
)

// DefaultHoldWindow spans the interval between a terminal's autorepeat
// events.
const DefaultHoldWindow = 150 * time.Millisecond

// Keys is a game.Input fed from terminal key events. Terminals report
// presses and autorepeats but never releases, so a key counts as held until
// hold has passed since its last event. An event for a key that is not held
// is also a press edge.
type Keys struct {
	hold     time.Duration
	now      time.Time
	lastSeen map[game.Key]time.Time
	pressed  map[game.Key]bool
}

func NewKeys(hold time.Duration) *Keys {
	return &Keys{
		hold:     hold,
		lastSeen: make(map[game.Key]time.Time),
		pressed:  make(map[game.Key]bool),
	}
}

// Advance sets the clock IsKeyDown measures against.
func (k *Keys) Advance(now time.Time) {
	k.now = now
}

// Handle records ev. It reports false for keys the game does not use.
func (k *Keys) Handle(ev *tcell.EventKey) bool {
	key, ok := translate(ev)
	if !ok {
		return false
	}
	if !k.held(key, ev.When()) {
		k.pressed[key] = true
	}
	k.lastSeen[key] = ev.When()
	return true
}

func (k *Keys) held(key game.Key, at time.Time) bool {
	last, ok := k.lastSeen[key]
	return ok && at.Sub(last) < k.hold
}

func (k *Keys) IsKeyDown(key game.Key) bool {
	return k.held(key, k.now)
}

func (k *Keys) TakeKeyPressed(key game.Key) bool {
	if !k.pressed[key] {
		return false
	}
	delete(k.pressed, key)
	return true
}

func translate(ev *tcell.EventKey) (game.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.KeyUp, true
	case tcell.KeyDown:
		return game.KeyDown, true
	case tcell.KeyLeft:
		return game.KeyLeft, true
	case tcell.KeyRight:
		return game.KeyRight, true
	case tcell.KeyEscape:
		return game.KeyEscape, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return game.KeyW, true
		case 'a', 'A':
			return game.KeyA, true
		case 's', 'S':
			return game.KeyS, true
		case 'd', 'D':
			return game.KeyD, true
		case 'q', 'Q':
			return game.KeyQ, true
		case 'm', 'M':
			return game.KeyM, true
		}
	}
	return 0, false
}
