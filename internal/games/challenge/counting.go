package challenge

import (
	"fmt"

	"github.com/vovakirdan/pixel-island/internal/assets"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// Counting bounds.
const (
	MinTarget   = 1
	MaxTarget   = 5
	MaxSelected = 7
)

// countingFish are the sprites a counting round draws from.
var countingFish = []string{"fish_blue", "fish_yellow", "fish_orange", "fish_red", "fish_green"}

// ShownFish is a fish drawn for the player to count.
type ShownFish struct {
	Frame string
	X, Y  float64
}

// Counting asks how many fish are on screen.
type Counting struct {
	Target   int
	Selected int
	Fish     []ShownFish
}

// Generate implements Puzzle.
func (c *Counting) Generate(rnd scene.Rand) {
	c.Target = scene.RandInt(rnd, MinTarget, MaxTarget)
	c.Selected = 0
	c.Fish = c.Fish[:0]
	for i := range c.Target {
		c.Fish = append(c.Fish, ShownFish{
			Frame: countingFish[rnd.IntN(len(countingFish))],
			X:     200 + float64(i%4)*100,
			Y:     200 + float64(i/4)*100,
		})
	}
}

// Adjust implements Puzzle.
func (c *Counting) Adjust(in *core.Input) {
	if in.WasJustActivated(core.CodeUp) {
		c.Selected = core.Min(MaxSelected, c.Selected+1)
	}
	if in.WasJustActivated(core.CodeDown) {
		c.Selected = core.Max(0, c.Selected-1)
	}
}

// Solved implements Puzzle.
func (c *Counting) Solved() bool {
	return c.Selected == c.Target
}

var (
	headingStyle = render.TextStyle{Color: core.ColorDark, Size: 28, Bold: true, Align: render.AlignCenter}
	promptStyle  = render.TextStyle{Color: core.ColorDark, Size: 20, Align: render.AlignCenter}
	bigStyle     = render.TextStyle{Color: core.ColorDark, Size: 48, Bold: true, Align: render.AlignCenter}
	smallStyle   = render.TextStyle{Color: core.ColorDark, Size: 16, Align: render.AlignCenter}
	praiseStyle  = render.TextStyle{Color: core.ColorLime, Size: 48, Bold: true, Align: render.AlignCenter}
	oopsStyle    = render.TextStyle{Color: core.ColorCoral, Size: 36, Bold: true, Align: render.AlignCenter}
	bodyStyle    = render.TextStyle{Color: core.ColorDark, Size: 24, Align: render.AlignCenter}
)

const (
	cx = core.WorldWidth / 2
	cy = core.WorldHeight / 2
)

// Render implements Puzzle.
func (c *Counting) Render(surf render.Surface, sprites *render.Sprites, phase Phase) {
	surf.Text(cx, 80, "Counting Fish!", headingStyle)

	switch phase {
	case Playing:
		surf.Text(cx, 140, "How many fish do you see?", promptStyle)
		for _, f := range c.Fish {
			sprites.Draw(surf, assets.AtlasFish, f.Frame, f.X, f.Y, 2)
		}

		box := core.NewRect(cx-150, cy+80, 300, 80)
		surf.FillRect(box, core.ColorWhite)
		surf.StrokeRect(box, core.ColorDark, 4)
		surf.Text(cx, cy+140, fmt.Sprint(c.Selected), bigStyle)
		surf.Text(cx, cy+190, "Up/Down to change, SPACE to submit", smallStyle)

	case Correct:
		surf.Text(cx, cy, "CORRECT!", praiseStyle)
		surf.Text(cx, cy+60, fmt.Sprintf("Yes! There are %d fish!", c.Target), bodyStyle)
		surf.Text(cx, cy+100, "Great job counting!", smallStyle)
		sprites.Draw(surf, assets.AtlasFish, "fish_blue", cx-80, cy-80, 3)
		sprites.Draw(surf, assets.AtlasFish, "fish_yellow", cx+40, cy-80, 3)

	case Wrong:
		surf.Text(cx, cy, "Not quite!", oopsStyle)
		surf.Text(cx, cy+60, "Let's try counting again!", bodyStyle)
		surf.Text(cx, cy+100, "Count carefully, one by one!", smallStyle)
	}
}
