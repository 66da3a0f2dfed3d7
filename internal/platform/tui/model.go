package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/engine"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// footerHeight is the number of terminal rows reserved for the help bar.
const footerHeight = 1

// Options configure a game Model.
type Options struct {
	Config   config.Config
	Runtime  core.RuntimeConfig
	Assets   render.AtlasSource
	Progress *progress.Store
	Logger   *log.Logger

	// Renderer styles the output; nil uses the local terminal.
	Renderer *lipgloss.Renderer
}

// Model is the Bubble Tea model hosting one game session. Bubble Tea
// ticks drive the engine's frame queue and key presses feed its input.
type Model struct {
	engine *engine.Engine
	frames *engine.FrameQueue
	screen *core.Screen
	out    *ScreenRenderer
	keys   KeyMap
	help   help.Model
	hold   *keyHold
	logger *log.Logger

	tickRate   int
	width      int
	height     int
	collection *CollectionModel
	quitting   bool
	err        error
}

// NewModel wires an engine drawing into a terminal-sized screen.
func NewModel(opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = opts.Config.TickRate
	}
	if rt.ScreenW <= 0 || rt.ScreenH <= footerHeight {
		def := core.DefaultConfig()
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}

	screen := core.NewScreen(rt.ScreenW, rt.ScreenH-footerHeight)
	frames := &engine.FrameQueue{}
	eng, err := engine.New(engine.Options{
		Config:    opts.Config,
		Runtime:   rt,
		Assets:    opts.Assets,
		Progress:  opts.Progress,
		Surface:   render.NewCanvas(screen, float64(opts.Config.Width), float64(opts.Config.Height)),
		Scheduler: frames,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	h := help.New()
	h.Width = rt.ScreenW

	return &Model{
		engine:   eng,
		frames:   frames,
		screen:   screen,
		out:      NewScreenRenderer(opts.Renderer),
		keys:     DefaultKeyMap(),
		help:     h,
		hold:     newKeyHold(time.Duration(opts.Config.KeyHoldMS) * time.Millisecond),
		logger:   logger,
		tickRate: rt.TickRate,
		width:    rt.ScreenW,
		height:   rt.ScreenH,
	}, nil
}

// Engine returns the engine the model drives.
func (m *Model) Engine() *engine.Engine {
	return m.engine
}

// Init starts the hub scene and the tick loop.
func (m *Model) Init() tea.Cmd {
	if err := m.engine.Start(scene.Island); err != nil {
		m.err = err
		m.quitting = true
		return tea.Quit
	}
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, core.Max(1, msg.Height-footerHeight))
		m.help.Width = msg.Width
		if m.collection != nil {
			m.collection.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.collection != nil {
		var cmd tea.Cmd
		m.collection, cmd = m.collection.Update(msg)
		switch {
		case m.collection.Quitting():
			return m, m.quit()
		case m.collection.Closed():
			m.collection = nil
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Collection):
		m.engine.Input().ReleaseAll()
		m.hold = newKeyHold(m.hold.hold)
		m.collection = NewCollectionModel(m.engine.Context().Progress, m.width, m.height)
		return m, nil
	}

	if code, ok := m.keys.Code(msg); ok {
		m.engine.Input().OnActivate(code)
		m.hold.Press(code, time.Now())
	}
	return m, nil
}

// handleTick releases expired keys and runs the pending frame. While the
// collection is open the game is paused and frames stay queued.
func (m *Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	for _, c := range m.hold.Expire(now) {
		m.engine.Input().OnDeactivate(c)
	}
	if m.collection == nil {
		m.frames.Fire(now)
	}
	return m, tickCmd(m.tickRate)
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

// Close stops the engine and records the session's play time. Hosts call
// it once the program has exited, however it ended; play time is recorded
// only once.
func (m *Model) Close() {
	m.quitting = true
	m.engine.Stop()
}

// View renders the current frame and the help bar.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.collection != nil {
		return m.collection.View()
	}

	helpStyle := m.out.r.NewStyle().Foreground(lipgloss.Color("241"))
	return m.out.Render(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

// Run plays a local session in the terminal until the player quits.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	model.Close()
	if err != nil {
		return err
	}
	return model.Err()
}
