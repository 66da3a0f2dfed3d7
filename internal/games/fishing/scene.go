package fishing

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pixel-island/internal/assets"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/registry"
	"github.com/vovakirdan/pixel-island/internal/render"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

func init() {
	registry.Register(scene.Fishing, "Go Fishing", New)
}

// Scene hosts a Session: it feeds it input, commits catches to the
// progress store and draws the fishing window.
type Scene struct {
	ctx     *scene.Context
	sw      scene.Switcher
	session *Session
}

// New creates the fishing scene.
func New(ctx *scene.Context, sw scene.Switcher) scene.Scene {
	return &Scene{ctx: ctx, sw: sw}
}

// Create starts a fresh session.
func (s *Scene) Create() {
	s.session = NewSession(s.ctx.Rand)
}

// Session exposes the state machine.
func (s *Scene) Session() *Session {
	return s.session
}

// Update advances the session and acts on its transitions.
func (s *Scene) Update(dt float64) {
	switch s.session.Update(dt, s.ctx.Input.ActionJustActivated()) {
	case EventCaught:
		fish, _ := s.session.Catch()
		s.ctx.Progress.AddFish(fish.ID)
		s.ctx.Logger.Info("fish caught", "fish", fish.ID, "tier", fish.Tier)
	case EventLost:
		s.ctx.Logger.Debug("fish got away", "reason", s.session.FailReason())
	case EventClose:
		s.sw.SwitchTo(scene.Island, scene.Data{"from": scene.Fishing})
	}
}

// Window layout, centered on the world.
const (
	centerX = 400.0
	centerY = 300.0
	windowW = 500.0
	windowH = 350.0
)

var (
	titleStyle   = render.TextStyle{Color: core.ColorScreen, Size: 24, Bold: true, Align: render.AlignCenter}
	infoStyle    = render.TextStyle{Color: core.ColorDark, Size: 18, Align: render.AlignCenter}
	alertStyle   = render.TextStyle{Color: core.ColorRed, Size: 22, Bold: true, Align: render.AlignCenter}
	resultStyle  = render.TextStyle{Color: core.ColorDark, Size: 20, Bold: true, Align: render.AlignCenter}
	failStyle    = render.TextStyle{Color: core.ColorRed, Size: 20, Bold: true, Align: render.AlignCenter}
	tierStyle    = render.TextStyle{Color: core.ColorDark, Size: 16, Align: render.AlignCenter}
	buttonStyle  = render.TextStyle{Color: core.ColorScreen, Size: 20, Bold: true, Align: render.AlignCenter}
	hintStyle    = render.TextStyle{Color: core.ColorDark, Size: 12, Align: render.AlignCenter}
	rodRect      = core.NewRect(centerX-100, centerY-20, 8, 120)
	progressRect = core.NewRect(centerX-150, centerY+130, 300, 20)
)

// Render draws the fishing window over the dimmed world.
func (s *Scene) Render(surf render.Surface) {
	surf.FillRect(core.NewRect(0, 0, s.ctx.Width, s.ctx.Height), core.ColorOverlay)

	outer := core.NewRect(centerX-windowW/2-10, centerY-windowH/2-10, windowW+20, windowH+20)
	surf.FillRect(outer, core.ColorWhite)
	surf.StrokeRect(outer, core.ColorBlack, 4)

	inner := core.NewRect(centerX-windowW/2, centerY-windowH/2, windowW, windowH)
	surf.FillRect(inner, core.ColorScreen)
	surf.StrokeRect(inner, core.ColorDark, 4)

	surf.FillRect(core.NewRect(centerX-240, centerY-140, 480, 50), core.ColorDark)
	surf.Text(centerX, centerY-110, "FISHING MINI-GAME", titleStyle)

	switch s.session.Phase() {
	case Waiting:
		s.renderWaiting(surf)
	case Hooking:
		s.renderHooking(surf)
	case Reeling:
		s.renderReeling(surf)
	case Success:
		s.renderSuccess(surf)
	case Fail:
		s.renderFail(surf)
	}
}

func (s *Scene) renderWaiting(surf render.Surface) {
	surf.Text(centerX, centerY-60, "Wait for the fish to bite...", infoStyle)
	surf.FillRect(rodRect, core.ColorWood)

	hookY := centerY + 60 + s.session.BobOffset()*50
	surf.Line(centerX-96, centerY+40, centerX+50, hookY, core.ColorDark, 2)
	surf.FillCircle(centerX+50, hookY, 8, core.ColorBlack)
}

func (s *Scene) renderHooking(surf render.Surface) {
	surf.Text(centerX, centerY-60, "! PRESS SPACE NOW !", alertStyle)
	surf.FillRect(rodRect, core.ColorWood)

	shake := math.Sin(s.session.Timer()*30) * 5
	surf.FillCircle(centerX+50+shake, centerY+60, 8, core.ColorBlack)
}

func (s *Scene) renderReeling(surf render.Surface) {
	surf.Text(centerX, centerY-60, "Keep the arrow in the green zone!", infoStyle)

	const trackW, trackH = 300.0, 60.0
	trackY := centerY + 60.0
	surf.FillRect(core.NewRect(centerX-trackW/2, trackY-trackH/2, trackW, trackH), core.ColorDark)
	surf.FillRect(core.NewRect(centerX-trackW/2+4, trackY-trackH/2+4, trackW-8, trackH-8), core.ColorMid)

	zone := core.NewRect(centerX+s.session.TargetPosition()-25, trackY-26, 50, 52)
	surf.FillRect(zone, core.ColorZoneFill)
	surf.StrokeRect(zone, core.ColorLime, 3)

	arrowX := centerX + s.session.PlayerPosition()
	surf.FillTriangle(arrowX, trackY-20, arrowX-15, trackY+20, arrowX+15, trackY+20, core.ColorCoral)

	if p := s.session.Progress(); p > 0 {
		bar := progressRect
		bar.W *= p
		surf.FillRect(bar, core.ColorLime)
	}
	surf.StrokeRect(progressRect, core.ColorDark, 2)
}

func (s *Scene) renderSuccess(surf render.Surface) {
	fish, _ := s.session.Catch()
	surf.Text(centerX, centerY-60, fmt.Sprintf("You caught a %s!", fish.Name), resultStyle)

	scale := 3 + s.session.RevealScale()*3
	s.ctx.Sprites.Draw(surf, assets.AtlasFish, fish.ID, centerX-20*scale/2, centerY-20*scale/2, scale)

	surf.Text(centerX, centerY+80, fmt.Sprintf("[%s]", fish.Tier), tierStyle)
	renderCloseButton(surf)
}

func (s *Scene) renderFail(surf render.Surface) {
	surf.Text(centerX, centerY-60, "X "+s.session.FailReason(), failStyle)
	renderCloseButton(surf)
}

func renderCloseButton(surf render.Surface) {
	const btnW, btnH = 150.0, 40.0
	btnY := centerY + 130.0
	btn := core.NewRect(centerX-btnW/2, btnY-btnH/2, btnW, btnH)

	surf.FillRect(btn, core.ColorDark)
	surf.Text(centerX, btnY+7, "CLOSE", buttonStyle)
	surf.StrokeRect(btn, core.ColorBlack, 2)
	surf.Text(centerX, btnY+30, "(Press SPACE)", hintStyle)
}
