// Package scenetest provides a scripted random source, a recording
// switcher and a ready context for scene tests.
package scenetest

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-island/internal/assets"
	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// Rand returns scripted values. Once a script runs out, Float64 returns
// Float and IntN returns Int (reduced modulo n). Shuffle leaves the order
// unchanged.
type Rand struct {
	Floats []float64
	Ints   []int
	Float  float64
	Int    int
}

// Float64 implements scene.Rand.
func (r *Rand) Float64() float64 {
	if len(r.Floats) > 0 {
		v := r.Floats[0]
		r.Floats = r.Floats[1:]
		return v
	}
	return r.Float
}

// IntN implements scene.Rand.
func (r *Rand) IntN(n int) int {
	v := r.Int
	if len(r.Ints) > 0 {
		v = r.Ints[0]
		r.Ints = r.Ints[1:]
	}
	return ((v % n) + n) % n
}

// Shuffle implements scene.Rand.
func (r *Rand) Shuffle(int, func(i, j int)) {}

// Switcher records SwitchTo calls.
type Switcher struct {
	Calls []string
	Data  []scene.Data
}

// SwitchTo implements scene.Switcher.
func (s *Switcher) SwitchTo(name string, data scene.Data) {
	s.Calls = append(s.Calls, name)
	s.Data = append(s.Data, data)
}

// Last returns the most recent target, or "" if none.
func (s *Switcher) Last() string {
	if len(s.Calls) == 0 {
		return ""
	}
	return s.Calls[len(s.Calls)-1]
}

// NewContext returns a context with the embedded assets, an in-memory
// progress store, the default config and a silent logger.
func NewContext(rnd scene.Rand) (*scene.Context, *progress.MemoryBackend) {
	logger := log.New(io.Discard)

	loader := assets.NewLoader(assets.DefaultFS())
	if err := loader.LoadAll(context.Background(), assets.DefaultSpecs()); err != nil {
		panic(err) // embedded assets are part of the build
	}

	backend := progress.NewMemoryBackend()
	return &scene.Context{
		Input:    core.NewInput(),
		Progress: progress.NewStore(backend, logger),
		Sprites:  render.NewSprites(loader, logger),
		Rand:     rnd,
		Logger:   logger,
		Config:   config.Default(),
		Width:    core.WorldWidth,
		Height:   core.WorldHeight,
	}, backend
}

// Press activates and immediately releases code, leaving a pending
// just-activated edge for the next update.
func Press(in *core.Input, code core.Code) {
	in.OnActivate(code)
	in.OnDeactivate(code)
}
