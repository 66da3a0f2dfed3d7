package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/pixel-island/internal/core"
)

// KeyMap binds window keys to game codes.
type KeyMap map[core.Code][]ebiten.Key

// DefaultKeyMap returns the arrow, WASD and space/enter bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		core.CodeLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
		core.CodeRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
		core.CodeUp:     {ebiten.KeyArrowUp, ebiten.KeyW},
		core.CodeDown:   {ebiten.KeyArrowDown, ebiten.KeyS},
		core.CodeAction: {ebiten.KeySpace, ebiten.KeyEnter},
	}
}

// Poll feeds the held state of every bound code into in. pressed reports
// whether a key is down; the game passes ebiten.IsKeyPressed.
func (km KeyMap) Poll(in *core.Input, pressed func(ebiten.Key) bool) {
	for _, c := range core.Codes {
		down := false
		for _, k := range km[c] {
			if pressed(k) {
				down = true
				break
			}
		}
		if down {
			in.OnActivate(c)
		} else {
			in.OnDeactivate(c)
		}
	}
}
