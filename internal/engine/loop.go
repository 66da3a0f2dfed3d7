// Package engine drives the active scene once per host frame and wires
// the shared game context together.
package engine

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

// MaxDelta caps the time step of a single tick, in seconds.
const MaxDelta = 0.1

// Scheduler is the host's once-per-frame callback. Each call schedules
// fn exactly once; hosts invoke it on the goroutine that owns the game.
type Scheduler interface {
	RequestFrame(fn func(now time.Time))
}

// FrameQueue is a Scheduler for hosts that own their event loop: frame
// requests wait in the queue until the host calls Fire.
type FrameQueue struct {
	pending []func(now time.Time)
}

// RequestFrame implements Scheduler.
func (q *FrameQueue) RequestFrame(fn func(now time.Time)) {
	q.pending = append(q.pending, fn)
}

// Pending returns the number of queued callbacks.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Fire runs the queued callbacks with now and returns how many ran.
// Callbacks queued while firing wait for the next call.
func (q *FrameQueue) Fire(now time.Time) int {
	fns := q.pending
	q.pending = nil
	for _, fn := range fns {
		fn(now)
	}
	return len(fns)
}

// Loop is the tick driver. It is not safe for concurrent use; the host
// calls Start, Stop and every scheduled tick from one goroutine.
type Loop struct {
	sched   Scheduler
	manager *scene.Manager
	input   *core.Input
	surface render.Surface
	logger  *log.Logger
	clock   func() time.Time

	running bool
	run     uint64
	last    time.Time
	dt      float64
	ticks   uint64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithClock replaces time.Now as the source of the start timestamp.
func WithClock(now func() time.Time) LoopOption {
	return func(l *Loop) { l.clock = now }
}

// WithLogger sets the loop's logger.
func WithLogger(logger *log.Logger) LoopOption {
	return func(l *Loop) { l.logger = logger }
}

// NewLoop creates a stopped loop drawing m's active scene onto surface.
func NewLoop(sched Scheduler, m *scene.Manager, in *core.Input, surface render.Surface, opts ...LoopOption) *Loop {
	l := &Loop{
		sched:   sched,
		manager: m,
		input:   in,
		surface: surface,
		logger:  log.Default(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start records the current time and runs the first tick immediately.
// Starting a running loop does nothing.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.run++
	l.last = l.clock()
	l.logger.Debug("loop started", "run", l.run)
	l.tick(l.run, l.last)
}

// Stop prevents further ticks from doing work. A tick that is already
// scheduled still fires and returns immediately, also when the loop was
// started again in between.
func (l *Loop) Stop() {
	if l.running {
		l.logger.Debug("loop stopped", "ticks", l.ticks)
	}
	l.running = false
}

// Running reports whether the loop is started.
func (l *Loop) Running() bool {
	return l.running
}

// DeltaTime returns the clamped time step of the last tick, in seconds.
func (l *Loop) DeltaTime() float64 {
	return l.dt
}

// Ticks returns how many ticks did work since the loop was created.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// tick advances the game to now and reschedules itself while the loop is
// running. run identifies the Start call that scheduled it; callbacks left
// over from an earlier run return without touching the loop.
//
// The active scene is updated and then rendered. When the update switched
// scenes, the render is skipped so the new scene is never drawn before its
// first update, and the surface keeps the previous frame.
func (l *Loop) tick(run uint64, now time.Time) {
	if run != l.run {
		return
	}
	dt := now.Sub(l.last).Seconds()
	l.last = now
	dt = core.Clamp(dt, 0, MaxDelta)
	l.dt = dt

	if !l.running {
		return
	}
	l.ticks++

	if active := l.manager.Active(); active != nil {
		gen := l.manager.Generation()
		active.Update(dt)
		if l.manager.Generation() == gen {
			l.surface.Clear(core.ColorScreen)
			active.Render(l.surface)
		}
	}
	l.input.EndOfTick()

	if l.running {
		l.sched.RequestFrame(func(now time.Time) { l.tick(run, now) })
	}
}
