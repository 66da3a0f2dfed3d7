package entity

import (
	"github.com/vovakirdan/pixel-island/internal/assets"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// DefaultInteractionDistance is how close, center to center, the player
// must be to use an interactable.
const DefaultInteractionDistance = 40.0

// Interactable is a spot on the island that reacts to the action input
// when the player stands close to it.
type Interactable struct {
	Box      core.Rect
	Label    string
	Target   string // scene to switch to; empty for none
	Frame    string // terrain frame; empty draws a debug box
	Distance float64
	OnUse    func()

	nearby bool
}

// NewInteractable creates an interactable with the default distance.
func NewInteractable(box core.Rect, label, target string) *Interactable {
	return &Interactable{
		Box:      box,
		Label:    label,
		Target:   target,
		Distance: DefaultInteractionDistance,
	}
}

// CheckProximity recomputes and returns whether the player is close enough.
func (it *Interactable) CheckProximity(p *Player) bool {
	px, py := p.Center()
	cx, cy := it.Box.Center()
	dist := it.Distance
	if dist <= 0 {
		dist = DefaultInteractionDistance
	}
	it.nearby = core.Distance(px, py, cx, cy) < dist
	return it.nearby
}

// Nearby reports the result of the last CheckProximity.
func (it *Interactable) Nearby() bool {
	return it.nearby
}

// Interact runs the callback, then switches to the target scene if one is set.
func (it *Interactable) Interact(sw scene.Switcher) {
	if it.OnUse != nil {
		it.OnUse()
	}
	if it.Target != "" {
		sw.SwitchTo(it.Target, nil)
	}
}

// Prompt returns the hint shown while the player is nearby.
func (it *Interactable) Prompt() string {
	return "Press [SPACE] - " + it.Label
}

var (
	debugFill   = core.Color{R: 0, G: 100, B: 200, A: 0x4d}
	promptStyle = render.TextStyle{Color: core.ColorGold, Size: 12, Align: render.AlignCenter}
)

// Render draws the spot and, when the player is nearby, its prompt.
func (it *Interactable) Render(s render.Surface, sprites *render.Sprites) {
	if it.Frame != "" {
		sprites.Draw(s, assets.AtlasTerrain, it.Frame, it.Box.X, it.Box.Y, 1)
	} else {
		s.FillRect(it.Box, debugFill)
	}

	if !it.nearby {
		return
	}

	text := it.Prompt()
	cx, _ := it.Box.Center()
	baseline := it.Box.Y - 10
	const padding = 4.0
	w := s.MeasureText(text, promptStyle)
	s.FillRect(core.NewRect(cx-w/2-padding, baseline-14, w+padding*2, 18), core.ColorOverlay)
	s.Text(cx, baseline, text, promptStyle)
}
