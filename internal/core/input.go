package core

// Code is a digital input the game reacts to, abstracted from physical keys.
// Hosts translate their own key events (terminal keys, window keys) to codes.
type Code int

const (
	CodeNone   Code = iota
	CodeLeft        // Left arrow, A, H
	CodeRight       // Right arrow, D, L
	CodeUp          // Up arrow, W, K
	CodeDown        // Down arrow, S, J
	CodeAction      // Space, Enter - interact, hook, submit
)

// Codes lists every input code the game consumes.
var Codes = []Code{CodeLeft, CodeRight, CodeUp, CodeDown, CodeAction}

// String returns a human-readable name for the code.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "None"
	case CodeLeft:
		return "Left"
	case CodeRight:
		return "Right"
	case CodeUp:
		return "Up"
	case CodeDown:
		return "Down"
	case CodeAction:
		return "Action"
	default:
		return "Unknown"
	}
}

// Input tracks held codes and the codes that became held during the current
// tick. A code is just-activated only on the tick of its false->true held
// transition; repeated activations while held do not re-trigger it.
type Input struct {
	held          map[Code]bool
	justActivated map[Code]bool
}

// NewInput creates an input state with nothing held.
func NewInput() *Input {
	return &Input{
		held:          make(map[Code]bool),
		justActivated: make(map[Code]bool),
	}
}

// OnActivate records that a code went (or stayed) down.
func (in *Input) OnActivate(c Code) {
	if !in.held[c] {
		in.justActivated[c] = true
	}
	in.held[c] = true
}

// OnDeactivate records that a code was released.
// It leaves a pending just-activated flag alone so a tap shorter than a tick
// is still seen once.
func (in *Input) OnDeactivate(c Code) {
	in.held[c] = false
}

// IsHeld returns whether the code is currently held.
func (in *Input) IsHeld(c Code) bool {
	return in.held[c]
}

// WasJustActivated returns whether the code went down during this tick.
// Reading does not clear the flag; EndOfTick does.
func (in *Input) WasJustActivated(c Code) bool {
	return in.justActivated[c]
}

// EndOfTick clears every just-activated flag. The loop calls it exactly once
// per tick, after the active scene has updated and rendered.
func (in *Input) EndOfTick() {
	for k := range in.justActivated {
		delete(in.justActivated, k)
	}
}

// ReleaseAll marks every code as released, e.g. when the host loses focus.
func (in *Input) ReleaseAll() {
	for k := range in.held {
		in.held[k] = false
	}
}

// Left reports whether the left direction is held.
func (in *Input) Left() bool { return in.IsHeld(CodeLeft) }

// Right reports whether the right direction is held.
func (in *Input) Right() bool { return in.IsHeld(CodeRight) }

// Up reports whether the up direction is held.
func (in *Input) Up() bool { return in.IsHeld(CodeUp) }

// Down reports whether the down direction is held.
func (in *Input) Down() bool { return in.IsHeld(CodeDown) }

// ActionHeld reports whether the action code is held.
func (in *Input) ActionHeld() bool { return in.IsHeld(CodeAction) }

// ActionJustActivated reports whether the action code went down this tick.
func (in *Input) ActionJustActivated() bool { return in.WasJustActivated(CodeAction) }
