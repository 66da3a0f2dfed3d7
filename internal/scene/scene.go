// Package scene owns the single active scene and its lifecycle.
// Scenes contain game logic and drawing only; the engine drives them and
// the platform hosts handle input and presentation.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/pixel-island/internal/render"
)

// Names of the scenes the game registers.
const (
	Island   = "island"
	Fishing  = "fishing"
	Counting = "counting"
	Letters  = "letters"
)

// ErrUnknownScene is returned when starting a scene that is not registered.
var ErrUnknownScene = errors.New("scene: unknown scene")

// Data is passed from the scene that requested a switch to the next scene's Init.
type Data map[string]any

// Scene is the interface every scene implements.
type Scene interface {
	// Update advances the scene by dt seconds.
	Update(dt float64)

	// Render draws the scene. The surface is cleared before this call.
	Render(s render.Surface)
}

// Initializer is implemented by scenes that accept data when started.
type Initializer interface {
	Init(data Data)
}

// Creator is implemented by scenes that build their state after Init.
type Creator interface {
	Create()
}

// Destroyer is implemented by scenes that release state when replaced.
type Destroyer interface {
	Destroy()
}

// Switcher is what scenes use to move to another scene.
type Switcher interface {
	SwitchTo(name string, data Data)
}

// Factory creates a scene bound to the shared context and the manager.
type Factory func(ctx *Context, sw Switcher) Scene

// Manager holds the scene factories and the one active scene.
// There is no scene stack: starting a scene replaces the active one.
type Manager struct {
	ctx       *Context
	factories map[string]Factory

	active     Scene
	activeName string
	generation uint64
}

// NewManager creates a manager whose scenes share ctx.
func NewManager(ctx *Context) *Manager {
	return &Manager{
		ctx:       ctx,
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name, replacing any previous one.
func (m *Manager) Register(name string, f Factory) {
	m.factories[name] = f
}

// Start makes name the active scene. An unknown name is logged and leaves
// the current scene running.
func (m *Manager) Start(name string, data Data) {
	if err := m.TryStart(name, data); err != nil {
		m.ctx.logger().Error("cannot start scene", "scene", name, "error", err)
	}
}

// TryStart is Start returning the lookup error instead of logging it.
//
// The previous scene is destroyed before the new one is constructed; the
// new scene is initialized, created and only then made active.
func (m *Manager) TryStart(name string, data Data) error {
	f, ok := m.factories[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	if m.active != nil {
		if d, ok := m.active.(Destroyer); ok {
			d.Destroy()
		}
	}

	if data == nil {
		data = Data{}
	}
	s := f(m.ctx, m)
	if i, ok := s.(Initializer); ok {
		i.Init(data)
	}
	if c, ok := s.(Creator); ok {
		c.Create()
	}

	m.ctx.logger().Debug("scene started", "scene", name, "from", m.activeName)
	m.active = s
	m.activeName = name
	m.generation++
	return nil
}

// SwitchTo is called by scenes during play. It behaves like Start.
func (m *Manager) SwitchTo(name string, data Data) {
	m.Start(name, data)
}

// Active returns the active scene, or nil before the first Start.
func (m *Manager) Active() Scene {
	return m.active
}

// ActiveName returns the registered name of the active scene.
func (m *Manager) ActiveName() string {
	return m.activeName
}

// Generation increases every time a scene becomes active. Comparing it
// before and after a call tells whether the call switched scenes.
func (m *Manager) Generation() uint64 {
	return m.generation
}

// Names returns the registered scene names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ensure Manager implements Switcher
var _ Switcher = (*Manager)(nil)
