package entity

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene/scenetest"
)

var islandBounds = core.NewRect(100, 100, 600, 400)

func holding(codes ...core.Code) *core.Input {
	in := core.NewInput()
	for _, c := range codes {
		in.OnActivate(c)
	}
	return in
}

func TestPlayerMovesEachAxis(t *testing.T) {
	tests := []struct {
		name   string
		codes  []core.Code
		dx, dy float64
		facing Direction
	}{
		{"none", nil, 0, 0, FacingDown},
		{"left", []core.Code{core.CodeLeft}, -10, 0, FacingLeft},
		{"right", []core.Code{core.CodeRight}, 10, 0, FacingRight},
		{"up", []core.Code{core.CodeUp}, 0, -10, FacingUp},
		{"down", []core.Code{core.CodeDown}, 0, 10, FacingDown},
		// Diagonals are not normalized: both axes move a full step.
		{"up right", []core.Code{core.CodeUp, core.CodeRight}, 10, -10, FacingUp},
		{"left down", []core.Code{core.CodeLeft, core.CodeDown}, -10, 10, FacingDown},
		// Opposites cancel; the later branch decides facing.
		{"left right", []core.Code{core.CodeLeft, core.CodeRight}, 0, 0, FacingRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(400, 300)
			p.Update(0.1, holding(tt.codes...), islandBounds, nil)

			if math.Abs(p.X-(400+tt.dx)) > 1e-9 || math.Abs(p.Y-(300+tt.dy)) > 1e-9 {
				t.Errorf("position = (%v, %v), expected (%v, %v)", p.X, p.Y, 400+tt.dx, 300+tt.dy)
			}
			if p.Facing != tt.facing {
				t.Errorf("facing = %v, expected %v", p.Facing, tt.facing)
			}
		})
	}
}

func TestPlayerDiagonalIsFaster(t *testing.T) {
	p := NewPlayer(400, 300)
	p.Update(0.1, holding(core.CodeRight, core.CodeDown), islandBounds, nil)

	moved := core.Distance(400, 300, p.X, p.Y)
	if moved <= PlayerSpeed*0.1 {
		t.Errorf("diagonal moved %v, expected more than a straight step", moved)
	}
}

func TestPlayerClampedToBounds(t *testing.T) {
	p := NewPlayer(105, 105)
	p.Update(0.1, holding(core.CodeLeft, core.CodeUp), islandBounds, nil)
	if p.X != 100 || p.Y != 100 {
		t.Errorf("top-left clamp = (%v, %v)", p.X, p.Y)
	}

	p = NewPlayer(670, 460)
	p.Update(0.1, holding(core.CodeRight, core.CodeDown), islandBounds, nil)
	if p.X != 700-PlayerWidth || p.Y != 500-PlayerHeight {
		t.Errorf("bottom-right clamp = (%v, %v)", p.X, p.Y)
	}
}

func TestPlayerCollisionRevertsWholeMove(t *testing.T) {
	// Obstacle directly right of the player; moving right+down would
	// still slide down if axes were resolved separately.
	obstacle := core.NewRect(430, 290, 30, 60)
	p := NewPlayer(400, 300)

	p.Update(0.1, holding(core.CodeRight, core.CodeDown), islandBounds, []core.Rect{obstacle})

	if p.X != 400 || p.Y != 300 {
		t.Errorf("position = (%v, %v), expected full revert to (400, 300)", p.X, p.Y)
	}
	if p.Facing != FacingDown {
		t.Errorf("facing should still update on a blocked move, got %v", p.Facing)
	}
}

func TestPlayerTouchingIsNotColliding(t *testing.T) {
	obstacle := core.NewRect(434, 300, 20, 20)
	p := NewPlayer(400, 300)

	p.Update(0.1, holding(core.CodeRight), islandBounds, []core.Rect{obstacle})

	if p.X != 410 {
		t.Errorf("moving flush against an obstacle should succeed, X = %v", p.X)
	}
}

func TestPlayerNeverEntersObstacles(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	obstacles := []core.Rect{
		core.NewRect(200, 150, 30, 40),
		core.NewRect(500, 180, 30, 40),
		core.NewRect(350, 250, 40, 30),
		core.NewRect(150, 350, 25, 25),
		core.NewRect(600, 350, 25, 25),
	}

	p := NewPlayer(400, 300)
	for tick := range 20000 {
		in := core.NewInput()
		for _, c := range []core.Code{core.CodeLeft, core.CodeRight, core.CodeUp, core.CodeDown} {
			if rng.IntN(2) == 0 {
				in.OnActivate(c)
			}
		}
		p.Update(rng.Float64()*0.1, in, islandBounds, obstacles)

		box := p.Bounds()
		for _, o := range obstacles {
			if box.Overlaps(o) {
				t.Fatalf("tick %d: player %+v overlaps obstacle %+v", tick, box, o)
			}
		}
		if box.X < islandBounds.X || box.Right() > islandBounds.Right() ||
			box.Y < islandBounds.Y || box.Bottom() > islandBounds.Bottom() {
			t.Fatalf("tick %d: player %+v left bounds", tick, box)
		}
	}
}

func TestDirectionString(t *testing.T) {
	names := map[Direction]string{FacingDown: "down", FacingUp: "up", FacingLeft: "left", FacingRight: "right"}
	for d, want := range names {
		if d.String() != want {
			t.Errorf("%d.String() = %q, expected %q", d, d.String(), want)
		}
	}
}

func TestInteractableProximity(t *testing.T) {
	it := NewInteractable(core.NewRect(250, 450, 50, 50), "Go Fishing", "fishing")
	// Interactable center (275, 475); player center = (x+12, y+18)

	tests := []struct {
		name   string
		x, y   float64
		nearby bool
	}{
		{"on top", 263, 457, true},
		{"39 away", 263 + 39, 457, true},
		{"exactly 40 away", 263 + 40, 457, false},
		{"far", 400, 300, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := it.CheckProximity(NewPlayer(tt.x, tt.y))
			if got != tt.nearby || it.Nearby() != tt.nearby {
				t.Errorf("CheckProximity() = %v, expected %v", got, tt.nearby)
			}
		})
	}
}

func TestInteractableCustomDistance(t *testing.T) {
	it := NewInteractable(core.NewRect(0, 0, 10, 10), "x", "")
	it.Distance = 100

	if !it.CheckProximity(NewPlayer(50, 0)) {
		t.Error("player within the custom distance should be nearby")
	}
}

func TestInteractableInteractOrder(t *testing.T) {
	sw := &scenetest.Switcher{}
	var order []string

	it := NewInteractable(core.NewRect(0, 0, 10, 10), "Count Fish", "counting")
	it.OnUse = func() {
		order = append(order, "callback")
		if len(sw.Calls) != 0 {
			t.Error("callback must run before the scene switch")
		}
	}

	it.Interact(sw)
	order = append(order, sw.Last())

	if len(order) != 2 || order[0] != "callback" || order[1] != "counting" {
		t.Errorf("interaction order = %v", order)
	}

	// No target: callback only
	sw = &scenetest.Switcher{}
	NewInteractable(core.NewRect(0, 0, 10, 10), "Sign", "").Interact(sw)
	if len(sw.Calls) != 0 {
		t.Errorf("no target should not switch, got %v", sw.Calls)
	}
}

func TestInteractableRenderPrompt(t *testing.T) {
	ctx, _ := scenetest.NewContext(&scenetest.Rand{})
	it := NewInteractable(core.NewRect(250, 450, 50, 50), "Go Fishing", "fishing")
	it.Frame = "wave_shallow"

	rec := &render.Recorder{}
	it.Render(rec, ctx.Sprites)
	if rec.HasText("Go Fishing") {
		t.Error("prompt should be hidden while the player is away")
	}
	if len(rec.Images()) != 1 || rec.Images()[0].Image.Frame != "terrain_8" {
		t.Errorf("expected the wave_shallow sprite, got %+v", rec.Images())
	}

	it.CheckProximity(NewPlayer(263, 457))
	rec.Reset()
	it.Render(rec, ctx.Sprites)
	if !rec.HasText("Press [SPACE] - Go Fishing") {
		t.Errorf("prompt missing, texts = %v", rec.Texts())
	}
}
