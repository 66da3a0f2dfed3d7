package engine

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	_ "github.com/vovakirdan/pixel-island/internal/games/challenge"
	_ "github.com/vovakirdan/pixel-island/internal/games/fishing"
	_ "github.com/vovakirdan/pixel-island/internal/games/island"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
	"github.com/vovakirdan/pixel-island/internal/scene/scenetest"
)

// probe records the order of calls the loop makes on it.
type probe struct {
	name   string
	calls  *[]string
	dts    []float64
	onTick func()
}

func (p *probe) Update(dt float64) {
	p.dts = append(p.dts, dt)
	*p.calls = append(*p.calls, p.name+".update")
	if p.onTick != nil {
		p.onTick()
	}
}

func (p *probe) Render(render.Surface) {
	*p.calls = append(*p.calls, p.name+".render")
}

func (p *probe) Destroy() {
	*p.calls = append(*p.calls, p.name+".destroy")
}

type loopFixture struct {
	sched   *FrameQueue
	manager *scene.Manager
	input   *core.Input
	rec     *render.Recorder
	loop    *Loop
	calls   []string
	scenes  map[string]*probe
	t0      time.Time
}

func newLoopFixture() *loopFixture {
	f := &loopFixture{
		sched:  &FrameQueue{},
		rec:    &render.Recorder{},
		scenes: map[string]*probe{},
		t0:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	ctx, _ := scenetest.NewContext(&scenetest.Rand{})
	f.input = ctx.Input
	f.manager = scene.NewManager(ctx)
	for _, name := range []string{"a", "b"} {
		f.manager.Register(name, func(*scene.Context, scene.Switcher) scene.Scene {
			p := &probe{name: name, calls: &f.calls}
			f.scenes[name] = p
			return p
		})
	}
	f.loop = NewLoop(f.sched, f.manager, f.input, f.rec,
		WithClock(func() time.Time { return f.t0 }),
		WithLogger(log.New(io.Discard)))
	return f
}

func (f *loopFixture) at(ms int) time.Time {
	return f.t0.Add(time.Duration(ms) * time.Millisecond)
}

func TestLoopStartTicksImmediately(t *testing.T) {
	f := newLoopFixture()
	f.manager.Start("a", nil)
	f.loop.Start()

	if got := f.scenes["a"].dts; len(got) != 1 || got[0] != 0 {
		t.Errorf("first tick dts = %v, expected one zero step", got)
	}
	if f.sched.Pending() != 1 {
		t.Errorf("pending frames = %d, expected 1", f.sched.Pending())
	}

	f.loop.Start()
	if len(f.scenes["a"].dts) != 1 {
		t.Error("starting a running loop ticked again")
	}
}

func TestLoopDeltaTime(t *testing.T) {
	tests := []struct {
		name   string
		frames []int // ms since start
		expect []float64
	}{
		{"steady", []int{16, 32, 48}, []float64{0.016, 0.016, 0.016}},
		{"spike clamped", []int{16, 5016, 5032}, []float64{0.016, MaxDelta, 0.016}},
		{"exact cap", []int{100}, []float64{0.1}},
		{"clock going back", []int{16, 10}, []float64{0.016, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLoopFixture()
			f.manager.Start("a", nil)
			f.loop.Start()
			for _, ms := range tt.frames {
				f.sched.Fire(f.at(ms))
			}

			got := f.scenes["a"].dts[1:]
			if len(got) != len(tt.expect) {
				t.Fatalf("dts = %v, expected %v", got, tt.expect)
			}
			for i := range got {
				if math.Abs(got[i]-tt.expect[i]) > 1e-9 {
					t.Errorf("dt[%d] = %v, expected %v", i, got[i], tt.expect[i])
				}
			}
		})
	}
}

func TestLoopStopLetsPendingTickFireOnce(t *testing.T) {
	f := newLoopFixture()
	f.manager.Start("a", nil)
	f.loop.Start()
	f.loop.Stop()

	if n := f.sched.Fire(f.at(16)); n != 1 {
		t.Fatalf("fired %d callbacks, expected the one already scheduled", n)
	}
	if len(f.scenes["a"].dts) != 1 {
		t.Error("stopped loop updated the scene")
	}
	if f.sched.Pending() != 0 {
		t.Error("stopped loop rescheduled itself")
	}
	if f.loop.Running() {
		t.Error("loop still running")
	}
}

func TestLoopRestartKeepsOneTickChain(t *testing.T) {
	f := newLoopFixture()
	f.manager.Start("a", nil)
	f.loop.Start()
	f.loop.Stop()
	f.loop.Start()

	if f.sched.Pending() != 2 {
		t.Fatalf("pending frames = %d, expected the stale and the new callback", f.sched.Pending())
	}
	for i, ms := range []int{16, 32, 48} {
		f.sched.Fire(f.at(ms))
		if f.sched.Pending() != 1 {
			t.Fatalf("frame %d: pending = %d, expected a single tick chain", i, f.sched.Pending())
		}
	}
	// two immediate ticks from Start, then one per fired frame
	if got := len(f.scenes["a"].dts); got != 5 {
		t.Errorf("scene updated %d times, expected 5", got)
	}
	if f.loop.Ticks() != 5 {
		t.Errorf("ticks = %d, expected 5", f.loop.Ticks())
	}
}

func TestLoopUpdateBeforeRender(t *testing.T) {
	f := newLoopFixture()
	f.manager.Start("a", nil)
	f.loop.Start()
	f.sched.Fire(f.at(16))

	expect := []string{"a.update", "a.render", "a.update", "a.render"}
	if len(f.calls) != len(expect) {
		t.Fatalf("calls = %v, expected %v", f.calls, expect)
	}
	for i := range expect {
		if f.calls[i] != expect[i] {
			t.Errorf("calls = %v, expected %v", f.calls, expect)
			break
		}
	}
}

func TestLoopSwitchDuringUpdateSkipsRender(t *testing.T) {
	f := newLoopFixture()
	f.manager.Start("a", nil)
	f.scenes["a"].onTick = func() { f.manager.SwitchTo("b", nil) }
	f.loop.Start()

	expect := []string{"a.update", "a.destroy"}
	if len(f.calls) != len(expect) || f.calls[0] != expect[0] || f.calls[1] != expect[1] {
		t.Fatalf("calls = %v, expected %v", f.calls, expect)
	}
	if f.manager.ActiveName() != "b" {
		t.Fatalf("active = %q, expected b", f.manager.ActiveName())
	}

	f.calls = nil
	f.sched.Fire(f.at(16))
	if len(f.calls) != 2 || f.calls[0] != "b.update" || f.calls[1] != "b.render" {
		t.Errorf("calls = %v, expected b to update then render", f.calls)
	}
}

func TestLoopWithoutSceneStillReschedules(t *testing.T) {
	f := newLoopFixture()
	f.loop.Start()
	f.sched.Fire(f.at(16))

	if f.loop.Ticks() != 2 {
		t.Errorf("ticks = %d, expected 2", f.loop.Ticks())
	}
	if f.sched.Pending() != 1 {
		t.Error("loop stopped rescheduling without a scene")
	}
	if len(f.rec.Ops) != 0 {
		t.Error("loop drew without an active scene")
	}
}

func TestLoopClearsInputEdges(t *testing.T) {
	f := newLoopFixture()
	f.manager.Start("a", nil)
	seen := 0
	f.scenes["a"].onTick = func() {
		if f.input.ActionJustActivated() {
			seen++
		}
	}
	f.loop.Start()

	f.input.OnActivate(core.CodeAction)
	f.sched.Fire(f.at(16))
	f.input.OnActivate(core.CodeAction) // repeat while held
	f.sched.Fire(f.at(32))

	if seen != 1 {
		t.Errorf("action seen on %d ticks, expected 1", seen)
	}
	if !f.input.ActionHeld() {
		t.Error("held state must survive the tick")
	}
}

func newTestEngine(t *testing.T) (*Engine, *FrameQueue, *progress.MemoryBackend) {
	t.Helper()
	loader, err := LoadAssets(t.Context(), "")
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	backend := progress.NewMemoryBackend()
	sched := &FrameQueue{}

	e, err := New(Options{
		Config:    config.Default(),
		Runtime:   core.RuntimeConfig{Seed: 42},
		Assets:    loader,
		Progress:  progress.NewStore(backend, logger),
		Surface:   &render.Recorder{},
		Scheduler: sched,
		Logger:    logger,
	})
	if err != nil {
		t.Fatal(err)
	}
	return e, sched, backend
}

func TestEngineStartsIsland(t *testing.T) {
	e, sched, _ := newTestEngine(t)

	if err := e.Start(scene.Island); err != nil {
		t.Fatal(err)
	}
	if e.Manager().ActiveName() != scene.Island {
		t.Errorf("active = %q, expected island", e.Manager().ActiveName())
	}
	for _, name := range []string{scene.Island, scene.Fishing, scene.Counting, scene.Letters} {
		found := false
		for _, n := range e.Manager().Names() {
			found = found || n == name
		}
		if !found {
			t.Errorf("scene %q not installed", name)
		}
	}
	if sched.Pending() != 1 {
		t.Error("engine did not schedule the next frame")
	}
}

func TestEngineUnknownScene(t *testing.T) {
	e, sched, _ := newTestEngine(t)

	err := e.Start("volcano")
	if !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("err = %v, expected ErrUnknownScene", err)
	}
	if e.Loop().Running() || sched.Pending() != 0 {
		t.Error("loop started without a scene")
	}
}

func TestEngineStopRecordsPlayTime(t *testing.T) {
	e, _, _ := newTestEngine(t)
	if err := e.Start(scene.Island); err != nil {
		t.Fatal(err)
	}

	e.Stop()
	first := e.Context().Progress.Snapshot().TotalPlayTime
	if first < 0 {
		t.Errorf("play time = %v, expected non-negative", first)
	}
	if d := e.Stop(); d != 0 {
		t.Errorf("second stop returned %v, expected 0", d)
	}
	if got := e.Context().Progress.Snapshot().TotalPlayTime; got != first {
		t.Errorf("second stop changed play time from %v to %v", first, got)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	logger := log.New(io.Discard)
	store := progress.NewStore(progress.NewMemoryBackend(), logger)
	bad := config.Default()
	bad.TickRate = 0

	tests := []struct {
		name string
		opts Options
	}{
		{"invalid config", Options{Config: bad, Progress: store, Surface: &render.Recorder{}, Scheduler: &FrameQueue{}}},
		{"no store", Options{Config: config.Default(), Surface: &render.Recorder{}, Scheduler: &FrameQueue{}}},
		{"no scheduler", Options{Config: config.Default(), Progress: store, Surface: &render.Recorder{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestNewRandIsSeeded(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for range 10 {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed produced different sequences")
		}
	}
}
