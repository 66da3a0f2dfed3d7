package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixel-island/internal/core"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	Action     key.Binding
	Collection key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Collection, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Action, k.Collection},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings: arrows, WASD and vim keys
// to move, space or enter to act.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Action: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "interact"),
		),
		Collection: key.NewBinding(
			key.WithKeys("tab", "c"),
			key.WithHelp("tab", "collection"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Code maps a key message to the input code it drives.
func (k KeyMap) Code(msg tea.KeyMsg) (core.Code, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return core.CodeLeft, true
	case key.Matches(msg, k.Right):
		return core.CodeRight, true
	case key.Matches(msg, k.Up):
		return core.CodeUp, true
	case key.Matches(msg, k.Down):
		return core.CodeDown, true
	case key.Matches(msg, k.Action):
		return core.CodeAction, true
	}
	return 0, false
}

// keyHold turns the press-only events of a terminal into held keys.
// A key counts as held until it has not repeated for the hold duration.
type keyHold struct {
	hold time.Duration
	seen map[core.Code]time.Time
}

func newKeyHold(hold time.Duration) *keyHold {
	return &keyHold{hold: hold, seen: make(map[core.Code]time.Time)}
}

// Press records a press or auto-repeat of c at now.
func (h *keyHold) Press(c core.Code, now time.Time) {
	h.seen[c] = now
}

// Expire returns the codes whose hold ran out by now and forgets them.
func (h *keyHold) Expire(now time.Time) []core.Code {
	var released []core.Code
	for c, t := range h.seen {
		if now.Sub(t) >= h.hold {
			released = append(released, c)
			delete(h.seen, c)
		}
	}
	return released
}

// Held reports whether c is currently held.
func (h *keyHold) Held(c core.Code) bool {
	_, ok := h.seen[c]
	return ok
}
