package ebitenfe

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tanks/game"
)

var keyMap = map[game.Key]ebiten.Key{
	game.KeyW:      ebiten.KeyW,
	game.KeyA:      ebiten.KeyA,
	game.KeyS:      ebiten.KeyS,
	game.KeyD:      ebiten.KeyD,
	game.KeyQ:      ebiten.KeyQ,
	game.KeyUp:     ebiten.KeyArrowUp,
	game.KeyDown:   ebiten.KeyArrowDown,
	game.KeyLeft:   ebiten.KeyArrowLeft,
	game.KeyRight:  ebiten.KeyArrowRight,
	game.KeyM:      ebiten.KeyM,
	game.KeyEscape: ebiten.KeyEscape,
}

// pollKeys copies ebiten's keyboard state into keys. Must be called from
// Update.
func pollKeys(keys *game.KeyState) {
	for k, ek := range keyMap {
		keys.SetDown(k, ebiten.IsKeyPressed(ek))
		if inpututil.IsKeyJustPressed(ek) {
			keys.Press(k)
		}
	}
}
