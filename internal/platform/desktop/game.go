package desktop

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/engine"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// Options configure a window session.
type Options struct {
	Config   config.Config
	Runtime  core.RuntimeConfig
	Assets   render.AtlasSource
	Progress *progress.Store
	Logger   *log.Logger
}

// Game implements ebiten.Game. Each Ebitengine update fires the engine's
// pending frame, so the engine ticks at the window's TPS.
type Game struct {
	engine  *engine.Engine
	frames  *engine.FrameQueue
	surface *Surface
	keys    KeyMap
	logger  *log.Logger

	width, height int
	started       bool
}

// NewGame wires an engine drawing into an offscreen world-sized image.
func NewGame(opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	surface, err := NewSurface(opts.Config.Width, opts.Config.Height)
	if err != nil {
		return nil, err
	}
	frames := &engine.FrameQueue{}
	eng, err := engine.New(engine.Options{
		Config:    opts.Config,
		Runtime:   opts.Runtime,
		Assets:    opts.Assets,
		Progress:  opts.Progress,
		Surface:   surface,
		Scheduler: frames,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	return &Game{
		engine:  eng,
		frames:  frames,
		surface: surface,
		keys:    DefaultKeyMap(),
		logger:  logger,
		width:   opts.Config.Width,
		height:  opts.Config.Height,
	}, nil
}

// Engine returns the engine the game drives.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Update polls the keyboard and runs the pending frame. The hub scene
// starts on the first update, once the graphics driver is up.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if !g.started {
		g.started = true
		return g.engine.Start(scene.Island)
	}

	g.keys.Poll(g.engine.Input(), ebiten.IsKeyPressed)
	g.frames.Fire(time.Now())
	return nil
}

// Draw copies the last rendered frame onto the window.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.surface.Image(), nil)
}

// Layout keeps the logical screen at world size; Ebitengine scales it to
// the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens the window and plays until it is closed.
func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}

	scale := opts.Config.Window.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle(opts.Config.Window.Title)
	ebiten.SetWindowSize(int(float64(g.width)*scale), int(float64(g.height)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if opts.Runtime.TickRate > 0 {
		ebiten.SetTPS(opts.Runtime.TickRate)
	}

	err = ebiten.RunGame(g)
	g.engine.Stop()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
