package challenge

import (
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/registry"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

func init() {
	registry.Register(scene.Counting, "Count Fish", NewCounting)
	registry.Register(scene.Letters, "Learn Letters", NewLetters)
}

// Scene runs a Machine and records solved rounds in the progress store.
type Scene struct {
	ctx     *scene.Context
	sw      scene.Switcher
	name    string
	newP    func() Puzzle
	commit  func(*progress.Store)
	bg      core.Color
	machine *Machine
}

// NewCounting creates the counting scene.
func NewCounting(ctx *scene.Context, sw scene.Switcher) scene.Scene {
	return &Scene{
		ctx:    ctx,
		sw:     sw,
		name:   scene.Counting,
		newP:   func() Puzzle { return &Counting{} },
		commit: (*progress.Store).IncrementCounting,
		bg:     core.ColorSky,
	}
}

// NewLetters creates the letter scene.
func NewLetters(ctx *scene.Context, sw scene.Switcher) scene.Scene {
	return &Scene{
		ctx:    ctx,
		sw:     sw,
		name:   scene.Letters,
		newP:   func() Puzzle { return &Letters{} },
		commit: (*progress.Store).IncrementLetter,
		bg:     core.ColorScreen,
	}
}

// Create generates the first round.
func (s *Scene) Create() {
	s.machine = NewMachine(s.newP(), s.ctx.Rand)
}

// Machine exposes the state machine.
func (s *Scene) Machine() *Machine {
	return s.machine
}

// Update advances the round and acts on its outcome.
func (s *Scene) Update(dt float64) {
	switch s.machine.Update(dt, s.ctx.Input) {
	case OutcomeSolved:
		s.commit(s.ctx.Progress)
		s.ctx.Logger.Info("challenge solved", "scene", s.name)
	case OutcomeMissed:
		s.ctx.Logger.Debug("challenge missed", "scene", s.name)
	case OutcomeDone:
		s.sw.SwitchTo(scene.Island, scene.Data{"from": s.name})
	}
}

// Render draws the round over the scene background.
func (s *Scene) Render(surf render.Surface) {
	surf.FillRect(core.NewRect(0, 0, s.ctx.Width, s.ctx.Height), s.bg)
	s.machine.Puzzle().Render(surf, s.ctx.Sprites, s.machine.Phase())
}
