// Package challenge implements the counting and letter mini-games on top
// of a shared playing/correct/wrong state machine.
package challenge

import (
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// FeedbackTime is how long the correct and wrong screens stay up
// without input.
const FeedbackTime = 2.0

// feedbackEpsilon absorbs rounding in the summed frame steps, so twenty
// 0.1 s ticks end a 2 s screen.
const feedbackEpsilon = 1e-9

// Phase is the state of a challenge round.
type Phase int

const (
	Playing Phase = iota
	Correct
	Wrong
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	}
	return "unknown"
}

// Outcome reports what a Machine update did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeSolved fires once when a round is answered correctly.
	OutcomeSolved
	// OutcomeMissed fires when a round is answered wrongly.
	OutcomeMissed
	// OutcomeRetry fires when the wrong screen ends and a new round starts.
	OutcomeRetry
	// OutcomeDone fires when the correct screen ends.
	OutcomeDone
)

// Puzzle is one kind of challenge: it generates rounds, lets directional
// input move its selection and checks the answer.
type Puzzle interface {
	// Generate replaces the current round with a new one.
	Generate(rnd scene.Rand)
	// Adjust applies just-activated directional input to the selection.
	Adjust(in *core.Input)
	// Solved reports whether the selection matches the target.
	Solved() bool
	// Render draws the round for the given phase.
	Render(surf render.Surface, sprites *render.Sprites, phase Phase)
}

// Machine drives a Puzzle through playing, correct and wrong.
type Machine struct {
	puzzle   Puzzle
	rnd      scene.Rand
	phase    Phase
	feedback float64
	done     bool
}

// NewMachine generates the first round of p.
func NewMachine(p Puzzle, rnd scene.Rand) *Machine {
	m := &Machine{puzzle: p, rnd: rnd}
	m.puzzle.Generate(rnd)
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Feedback returns the time spent on the current feedback screen.
func (m *Machine) Feedback() float64 {
	return m.feedback
}

// Puzzle returns the puzzle being played.
func (m *Machine) Puzzle() Puzzle {
	return m.puzzle
}

// Update advances the machine by dt seconds. Once the correct screen has
// ended the machine stays put and reports nothing.
func (m *Machine) Update(dt float64, in *core.Input) Outcome {
	if m.done {
		return OutcomeNone
	}
	action := in.ActionJustActivated()

	switch m.phase {
	case Playing:
		m.puzzle.Adjust(in)
		if !action {
			return OutcomeNone
		}
		m.feedback = 0
		if m.puzzle.Solved() {
			m.phase = Correct
			return OutcomeSolved
		}
		m.phase = Wrong
		return OutcomeMissed

	case Correct:
		m.feedback += dt
		if m.feedback >= FeedbackTime-feedbackEpsilon || action {
			m.done = true
			return OutcomeDone
		}

	case Wrong:
		m.feedback += dt
		if m.feedback >= FeedbackTime-feedbackEpsilon || action {
			m.puzzle.Generate(m.rnd)
			m.phase = Playing
			m.feedback = 0
			return OutcomeRetry
		}
	}
	return OutcomeNone
}
