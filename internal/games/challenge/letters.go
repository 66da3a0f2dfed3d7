package challenge

import (
	"github.com/vovakirdan/pixel-island/internal/assets"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// ChoiceCount is the number of letters offered per round.
const ChoiceCount = 4

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var choiceX = [ChoiceCount]float64{200, 350, 500, 650}

const choiceY = 300

// Letters asks the player to pick the target letter out of four.
type Letters struct {
	Target   byte
	Choices  []byte
	Selected int
}

// Generate implements Puzzle. The target appears exactly once among the
// choices; the other three are distinct letters drawn from the rest.
func (l *Letters) Generate(rnd scene.Rand) {
	l.Target = alphabet[rnd.IntN(len(alphabet))]
	l.Selected = 0

	pool := make([]byte, 0, len(alphabet)-1)
	for i := range len(alphabet) {
		if alphabet[i] != l.Target {
			pool = append(pool, alphabet[i])
		}
	}

	l.Choices = append(l.Choices[:0], l.Target)
	for len(l.Choices) < ChoiceCount {
		i := rnd.IntN(len(pool))
		l.Choices = append(l.Choices, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	rnd.Shuffle(len(l.Choices), func(i, j int) {
		l.Choices[i], l.Choices[j] = l.Choices[j], l.Choices[i]
	})
}

// Adjust implements Puzzle.
func (l *Letters) Adjust(in *core.Input) {
	if in.WasJustActivated(core.CodeLeft) {
		l.Selected = core.Max(0, l.Selected-1)
	}
	if in.WasJustActivated(core.CodeRight) {
		l.Selected = core.Min(len(l.Choices)-1, l.Selected+1)
	}
}

// Solved implements Puzzle.
func (l *Letters) Solved() bool {
	return l.Selected < len(l.Choices) && l.Choices[l.Selected] == l.Target
}

var (
	letterStyle = render.TextStyle{Color: core.ColorDark, Size: 72, Bold: true, Align: render.AlignCenter}
	hintStyle   = render.TextStyle{Color: core.ColorDark, Size: 18, Align: render.AlignCenter}
)

// Render implements Puzzle.
func (l *Letters) Render(surf render.Surface, sprites *render.Sprites, phase Phase) {
	surf.Text(cx, 80, "Find the Letter!", headingStyle)
	target := string(l.Target)

	switch phase {
	case Playing:
		surf.Text(cx, 150, "Find the letter:", bodyStyle)
		box := core.NewRect(cx-60, 170, 120, 100)
		surf.FillRect(box, core.ColorWhite)
		surf.StrokeRect(box, core.ColorDark, 4)
		surf.Text(cx, 250, target, letterStyle)

		for i, c := range l.Choices {
			x := choiceX[i]
			r := core.NewRect(x-40, choiceY-50, 80, 80)
			fill, border, width := core.ColorWhite, core.ColorDark, 3.0
			if i == l.Selected {
				fill, border, width = core.ColorGold, core.ColorCoral, 6
			}
			surf.FillRect(r, fill)
			surf.StrokeRect(r, border, width)
			surf.Text(x, choiceY+10, string(c), bigStyle)
		}
		surf.Text(cx, 450, "Left/Right to choose, SPACE to select", smallStyle)

	case Correct:
		surf.Text(cx, cy-50, "EXCELLENT!", praiseStyle)
		surf.Text(cx, cy+50, target, letterStyle)
		surf.Text(cx, cy+100, "You found the right letter!", bodyStyle)
		sprites.Draw(surf, assets.AtlasFish, "fish_blue", cx-100, cy-80, 2)
		sprites.Draw(surf, assets.AtlasFish, "seahorse_yellow", cx+60, cy-80, 2)

	case Wrong:
		surf.Text(cx, cy-50, "Oops! Try again!", oopsStyle)
		surf.Text(cx, cy+20, "Look for the letter: "+target, bodyStyle)
		surf.Text(cx, cy+60, "You can do it!", hintStyle)
	}
}
