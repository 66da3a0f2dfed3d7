// Package fishing implements the fishing mini-game: wait for a bite, hook
// it in time, then keep the drifting arrow inside a moving zone until the
// fish is reeled in.
package fishing

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// Phase is the state of a fishing session.
type Phase int

const (
	Waiting Phase = iota
	Hooking
	Reeling
	Success
	Fail
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Hooking:
		return "hooking"
	case Reeling:
		return "reeling"
	case Success:
		return "success"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Game balance. Positions are offsets from the track center in pixels.
const (
	MinWait        = 1.0 // seconds before a bite, lower bound
	MaxWait        = 3.0 // upper bound, exclusive
	HookWindow     = 1.5 // seconds to react to a bite
	BobLimit       = 0.15
	BobRate        = 2.0 // bob units per second
	TrackLimit     = 130.0
	TargetRange    = 100.0
	TargetInterval = 1.0  // seconds between target moves
	DriftPerTick   = 2.0  // current pushing the arrow right, every tick
	ReelJump       = 30.0 // arrow moves left per action press
	ZoneHalfWidth  = 30.0
	ReelTime       = 3.0 // seconds in zone to land a fish
	RevealTime     = 1.0 / 3.0

	// FailTooSlow is the fail reason when the hook window passes.
	FailTooSlow = "Too slow!"
)

// Event tells the hosting scene what a step changed.
type Event int

const (
	EventNone Event = iota
	EventBite       // waiting -> hooking
	EventHooked     // hooking -> reeling
	EventCaught     // reeling -> success; commit the catch
	EventLost       // hooking -> fail
	EventClose      // result acknowledged; leave the mini-game
)

// Session is the fishing state machine. It has no notion of drawing or
// scenes; Update takes the elapsed time and whether the action input was
// just activated.
type Session struct {
	rnd scene.Rand

	phase Phase
	timer float64

	waitDelay    float64
	hookDeadline float64
	bobOffset    float64
	bobDir       float64

	playerPos       float64
	targetPos       float64
	targetMoveTimer float64
	progress        float64
	catch           Fish

	failReason string

	reveal      *gween.Tween
	revealScale float64
}

// NewSession starts a session in the waiting phase.
func NewSession(rnd scene.Rand) *Session {
	s := &Session{rnd: rnd}
	s.Reset()
	return s
}

// Reset returns to waiting with a freshly rolled bite delay.
func (s *Session) Reset() {
	*s = Session{
		rnd:       s.rnd,
		phase:     Waiting,
		bobDir:    1,
		waitDelay: scene.RandRange(s.rnd, MinWait, MaxWait),
	}
}

// Update advances the session by dt seconds.
func (s *Session) Update(dt float64, action bool) Event {
	// The timer runs in every phase; deadlines are absolute timer values.
	s.timer += dt

	switch s.phase {
	case Waiting:
		return s.updateWaiting(dt)
	case Hooking:
		return s.updateHooking(action)
	case Reeling:
		return s.updateReeling(dt, action)
	case Success, Fail:
		return s.updateResult(dt, action)
	}
	return EventNone
}

func (s *Session) updateWaiting(dt float64) Event {
	s.bobOffset += dt * BobRate * s.bobDir
	if math.Abs(s.bobOffset) > BobLimit {
		s.bobDir = -s.bobDir
	}

	if s.timer >= s.waitDelay {
		s.phase = Hooking
		s.hookDeadline = s.timer + HookWindow
		return EventBite
	}
	return EventNone
}

func (s *Session) updateHooking(action bool) Event {
	if action {
		s.startReeling()
		return EventHooked
	}
	if s.timer >= s.hookDeadline {
		s.phase = Fail
		s.failReason = FailTooSlow
		return EventLost
	}
	return EventNone
}

func (s *Session) startReeling() {
	s.phase = Reeling
	s.catch = SelectCatch(s.rnd)
	s.playerPos = 0
	s.targetPos = s.rollTarget()
	s.progress = 0
	s.targetMoveTimer = 0
}

func (s *Session) rollTarget() float64 {
	return scene.RandRange(s.rnd, -TargetRange, TargetRange)
}

func (s *Session) updateReeling(dt float64, action bool) Event {
	s.targetMoveTimer += dt
	if s.targetMoveTimer > TargetInterval {
		s.targetPos = s.rollTarget()
		s.targetMoveTimer = 0
	}

	s.playerPos = core.Clamp(s.playerPos+DriftPerTick, -TrackLimit, TrackLimit)
	if action {
		s.playerPos = core.Clamp(s.playerPos-ReelJump, -TrackLimit, TrackLimit)
	}

	if s.InZone() {
		s.progress += dt / ReelTime
	} else {
		s.progress -= dt / ReelTime
	}
	s.progress = core.Clamp(s.progress, 0, 1)

	if s.progress >= 1 {
		s.phase = Success
		s.reveal = gween.New(0, 1, float32(RevealTime), ease.Linear)
		return EventCaught
	}
	return EventNone
}

func (s *Session) updateResult(dt float64, action bool) Event {
	if s.phase == Success && s.reveal != nil {
		v, _ := s.reveal.Update(float32(dt))
		s.revealScale = float64(v)
	}
	if action {
		return EventClose
	}
	return EventNone
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Timer returns the seconds since the session started.
func (s *Session) Timer() float64 { return s.timer }

// WaitDelay returns when, on the timer, the fish bites.
func (s *Session) WaitDelay() float64 { return s.waitDelay }

// HookDeadline returns when, on the timer, a bite is lost.
func (s *Session) HookDeadline() float64 { return s.hookDeadline }

// BobOffset returns the cosmetic float offset while waiting.
func (s *Session) BobOffset() float64 { return s.bobOffset }

// PlayerPosition returns the arrow offset in [-130, 130].
func (s *Session) PlayerPosition() float64 { return s.playerPos }

// TargetPosition returns the zone center in [-100, 100].
func (s *Session) TargetPosition() float64 { return s.targetPos }

// Progress returns the reel progress in [0, 1].
func (s *Session) Progress() float64 { return s.progress }

// InZone reports whether the arrow is inside the target zone.
func (s *Session) InZone() bool {
	return math.Abs(s.playerPos-s.targetPos) < ZoneHalfWidth
}

// Catch returns the hooked fish. Valid from reeling on.
func (s *Session) Catch() (Fish, bool) {
	return s.catch, s.phase == Reeling || s.phase == Success
}

// FailReason returns why the session failed, or "".
func (s *Session) FailReason() string { return s.failReason }

// RevealScale returns the success reveal animation value in [0, 1].
func (s *Session) RevealScale() float64 { return s.revealScale }
