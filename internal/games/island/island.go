// Package island implements the hub scene: the player walks around the
// island and starts mini-games from its interactables.
package island

import (
	"fmt"

	"github.com/vovakirdan/pixel-island/internal/assets"
	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/entity"
	"github.com/vovakirdan/pixel-island/internal/registry"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

func init() {
	registry.Register(scene.Island, "Island", New)
}

type decoration struct {
	x, y  float64
	frame string
}

// Scene is the hub world.
type Scene struct {
	ctx *scene.Context
	sw  scene.Switcher

	from          string
	title         string
	bounds        core.Rect
	player        *entity.Player
	obstacles     []core.Rect
	obstacleArt   []string
	interactables []*entity.Interactable
	decorations   []decoration
}

// New creates the island scene.
func New(ctx *scene.Context, sw scene.Switcher) scene.Scene {
	return &Scene{ctx: ctx, sw: sw}
}

// Init records which scene the player came back from, if any.
func (s *Scene) Init(data scene.Data) {
	s.from, _ = data["from"].(string)
}

// Create builds the island from the configured layout.
func (s *Scene) Create() {
	layout := s.ctx.Config.Island

	s.title = layout.Title
	s.bounds = rect(layout.Bounds)
	s.player = entity.NewPlayer(layout.Spawn.X, layout.Spawn.Y)

	for _, o := range layout.Obstacles {
		s.obstacles = append(s.obstacles, rect(o.RectConfig))
		s.obstacleArt = append(s.obstacleArt, o.Frame)
	}
	for _, ic := range layout.Interactables {
		it := entity.NewInteractable(rect(ic.RectConfig), ic.Label, ic.Target)
		it.Frame = ic.Frame
		if ic.Distance > 0 {
			it.Distance = ic.Distance
		}
		s.interactables = append(s.interactables, it)
	}
	for _, d := range layout.Decorations {
		s.decorations = append(s.decorations, decoration{x: d.X, y: d.Y, frame: d.Frame})
	}

	if s.from != "" {
		s.ctx.Logger.Debug("back on the island", "from", s.from)
	}
}

func rect(r config.RectConfig) core.Rect {
	return core.NewRect(r.X, r.Y, r.W, r.H)
}

// Player returns the player entity.
func (s *Scene) Player() *entity.Player {
	return s.player
}

// Interactables returns the island's interactables in layout order.
func (s *Scene) Interactables() []*entity.Interactable {
	return s.interactables
}

// Update moves the player and starts the first nearby interactable when
// action is pressed.
func (s *Scene) Update(dt float64) {
	in := s.ctx.Input
	s.player.Update(dt, in, s.bounds, s.obstacles)

	for _, it := range s.interactables {
		it.CheckProximity(s.player)
	}
	if !in.ActionJustActivated() {
		return
	}
	for _, it := range s.interactables {
		if it.Nearby() {
			s.ctx.Logger.Debug("interact", "label", it.Label, "target", it.Target)
			it.Interact(s.sw)
			return
		}
	}
}

var (
	titleStyle = render.TextStyle{Color: core.ColorDark, Size: 24, Bold: true, Align: render.AlignCenter}
	helpStyle  = render.TextStyle{Color: core.ColorDark, Size: 14, Align: render.AlignCenter}
	hudStyle   = render.TextStyle{Color: core.ColorDark, Size: 12, Align: render.AlignLeft}
)

// Render draws the island back to front: ground, decorations, obstacles,
// the player, interactables and the text overlay.
func (s *Scene) Render(surf render.Surface) {
	w := s.ctx.Width
	surf.FillRect(core.NewRect(0, 0, w, 200), core.ColorSky)
	surf.FillRect(core.NewRect(0, 200, w, 400), core.ColorSand)
	surf.FillRect(core.NewRect(0, 430, 300, 170), core.ColorWater)
	surf.FillRect(core.NewRect(500, 430, 300, 170), core.ColorWater)

	for _, d := range s.decorations {
		s.ctx.Sprites.Draw(surf, assets.AtlasTerrain, d.frame, d.x, d.y, 1)
	}
	for i, o := range s.obstacles {
		s.ctx.Sprites.Draw(surf, assets.AtlasTerrain, s.obstacleArt[i], o.X, o.Y, 1)
	}
	s.player.Render(surf, s.ctx.Sprites)
	for _, it := range s.interactables {
		it.Render(surf, s.ctx.Sprites)
	}

	surf.Text(w/2, 40, s.title, titleStyle)
	surf.Text(w/2, 580, "Arrow keys to move, Space to interact", helpStyle)

	hud := fmt.Sprintf("Fish %d  Counting %d  Letters %d",
		s.ctx.Progress.FishStats().TotalCaught,
		s.ctx.Progress.CountingProgress(), s.ctx.Progress.LetterProgress())
	surf.Text(10, 20, hud, hudStyle)
}
