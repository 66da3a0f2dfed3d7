package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-island/internal/assets"
	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/registry"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// Options are the pieces a host hands to New.
type Options struct {
	Config    config.Config
	Runtime   core.RuntimeConfig
	Assets    render.AtlasSource
	Progress  *progress.Store
	Surface   render.Surface
	Scheduler Scheduler
	Logger    *log.Logger

	// Rand overrides the random source built from Runtime.Seed.
	Rand scene.Rand
}

// Engine is one running game: the shared context, the scene manager
// holding every registered scene and the loop driving them.
type Engine struct {
	ctx     *scene.Context
	manager *scene.Manager
	loop    *Loop
	started time.Time
}

// New wires a game together. It does not start the loop.
func New(opts Options) (*Engine, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Progress == nil {
		return nil, fmt.Errorf("engine: progress store is required")
	}
	if opts.Assets == nil || opts.Surface == nil || opts.Scheduler == nil {
		return nil, fmt.Errorf("engine: assets, surface and scheduler are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = NewRand(opts.Runtime.Seed)
	}

	ctx := &scene.Context{
		Input:    core.NewInput(),
		Progress: opts.Progress,
		Sprites:  render.NewSprites(opts.Assets, logger),
		Rand:     rnd,
		Logger:   logger,
		Config:   opts.Config,
		Width:    float64(opts.Config.Width),
		Height:   float64(opts.Config.Height),
	}

	m := scene.NewManager(ctx)
	registry.Install(m)

	return &Engine{
		ctx:     ctx,
		manager: m,
		loop:    NewLoop(opts.Scheduler, m, ctx.Input, opts.Surface, WithLogger(logger)),
	}, nil
}

// NewRand returns the game's random source. A zero seed uses fresh entropy.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// LoadAssets loads the game's images and atlases from dir, or from the
// embedded placeholders when dir is empty.
func LoadAssets(ctx context.Context, dir string) (*assets.Loader, error) {
	loader := assets.NewLoader(assets.FS(dir))
	if err := loader.LoadAll(ctx, assets.DefaultSpecs()); err != nil {
		return nil, err
	}
	return loader, nil
}

// Start makes first the active scene and starts the loop.
func (e *Engine) Start(first string) error {
	if err := e.manager.TryStart(first, nil); err != nil {
		return err
	}
	e.started = time.Now()
	e.loop.Start()
	return nil
}

// Stop halts the loop, adds the session's play time to the progress
// record and returns it. Stopping twice records nothing more.
func (e *Engine) Stop() time.Duration {
	e.loop.Stop()
	if e.started.IsZero() {
		return 0
	}
	d := time.Since(e.started)
	e.started = time.Time{}
	e.ctx.Progress.AddPlayTime(d.Seconds())
	e.ctx.Logger.Info("session ended", "played", d.Round(time.Second))
	return d
}

// Input returns the input state hosts feed key events into.
func (e *Engine) Input() *core.Input {
	return e.ctx.Input
}

// Context returns the shared scene context.
func (e *Engine) Context() *scene.Context {
	return e.ctx
}

// Manager returns the scene manager.
func (e *Engine) Manager() *scene.Manager {
	return e.manager
}

// Loop returns the tick driver.
func (e *Engine) Loop() *Loop {
	return e.loop
}
