package game

// Key is a keyboard key the simulation reacts to.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyM
	KeyEscape
	keyCount
)

var keyNames = [keyCount]string{
	"W", "A", "S", "D", "Q", "Up", "Down", "Left", "Right", "M", "Escape",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "?"
}

// Keys lists every key the simulation polls.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Input is the polled keyboard surface.
type Input interface {
	// IsKeyDown reports whether k is held.
	IsKeyDown(k Key) bool
	// TakeKeyPressed reports whether k was pressed since the last call and
	// consumes the press.
	TakeKeyPressed(k Key) bool
}

// KeyState is an Input fed by a frontend (or a test). The frontend calls
// SetDown and Press while draining its events; systems read it afterwards.
type KeyState struct {
	down    [keyCount]bool
	pressed [keyCount]bool
}

// SetDown records the level state of k.
func (s *KeyState) SetDown(k Key, down bool) {
	if k < keyCount {
		s.down[k] = down
	}
}

// Press latches a press edge for k until it is taken.
func (s *KeyState) Press(k Key) {
	if k < keyCount {
		s.pressed[k] = true
	}
}

// Release clears every held key.
func (s *KeyState) Release() {
	s.down = [keyCount]bool{}
}

func (s *KeyState) IsKeyDown(k Key) bool {
	return k < keyCount && s.down[k]
}

func (s *KeyState) TakeKeyPressed(k Key) bool {
	if k >= keyCount || !s.pressed[k] {
		return false
	}
	s.pressed[k] = false
	return true
}

// Binding maps one player's controls to keys.
type Binding struct {
	Forward, Backward, Left, Right, Fire Key
}

// PlayerBindings holds the controls of player one and player two.
var PlayerBindings = [...]Binding{
	{Forward: KeyW, Backward: KeyS, Left: KeyA, Right: KeyD, Fire: KeyQ},
	{Forward: KeyUp, Backward: KeyDown, Left: KeyLeft, Right: KeyRight, Fire: KeyM},
}
