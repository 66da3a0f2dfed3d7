// Package desktop hosts the game in an Ebitengine window. The engine draws
// into an offscreen world-sized image during Update; Draw scales it onto
// the window.
package desktop

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/render"
)

// defaultTextSize is used when a TextStyle leaves Size unset.
const defaultTextSize = 16

// faceKey identifies a cached font face.
type faceKey struct {
	size float64
	bold bool
}

// Surface is a render.Surface backed by an ebiten.Image.
type Surface struct {
	dst *ebiten.Image

	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace

	pages map[image.Image]*ebiten.Image
	white *ebiten.Image
}

// NewSurface creates a width x height offscreen surface using the Go fonts.
func NewSurface(width, height int) (*Surface, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("desktop: load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("desktop: load bold font: %w", err)
	}

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &Surface{
		dst:     ebiten.NewImage(width, height),
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]*text.GoTextFace),
		pages:   make(map[image.Image]*ebiten.Image),
		white:   white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}, nil
}

// Image returns the image the surface draws on.
func (s *Surface) Image() *ebiten.Image {
	return s.dst
}

func (s *Surface) Clear(c core.Color) {
	s.dst.Fill(c)
}

func (s *Surface) FillRect(r core.Rect, c core.Color) {
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (s *Surface) StrokeRect(r core.Rect, c core.Color, width float64) {
	vector.StrokeRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(width), c, false)
}

func (s *Surface) Line(x1, y1, x2, y2 float64, c core.Color, width float64) {
	vector.StrokeLine(s.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, true)
}

func (s *Surface) FillCircle(cx, cy, radius float64, c core.Color) {
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(radius), c, true)
}

// FillTriangle fills the triangle through a vector path.
func (s *Surface) FillTriangle(x1, y1, x2, y2, x3, y3 float64, c core.Color) {
	var path vector.Path
	path.MoveTo(float32(x1), float32(y1))
	path.LineTo(float32(x2), float32(y2))
	path.LineTo(float32(x3), float32(y3))
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 0xff
		vs[i].ColorG = float32(c.G) / 0xff
		vs[i].ColorB = float32(c.B) / 0xff
		vs[i].ColorA = float32(c.A) / 0xff
	}
	s.dst.DrawTriangles(vs, is, s.white, &ebiten.DrawTrianglesOptions{})
}

func (s *Surface) face(style render.TextStyle) *text.GoTextFace {
	size := style.Size
	if size <= 0 {
		size = defaultTextSize
	}
	k := faceKey{size: size, bold: style.Bold}
	if f, ok := s.faces[k]; ok {
		return f
	}
	src := s.regular
	if style.Bold {
		src = s.bold
	}
	f := &text.GoTextFace{Source: src, Size: size}
	s.faces[k] = f
	return f
}

// Text draws s with its baseline at y.
func (s *Surface) Text(x, y float64, str string, style render.TextStyle) {
	f := s.face(style)
	left := render.TextLeft(x, text.Advance(str, f), style.Align)

	op := &text.DrawOptions{}
	op.GeoM.Translate(left, y-f.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(style.Color)
	text.Draw(s.dst, str, f, op)
}

func (s *Surface) MeasureText(str string, style render.TextStyle) float64 {
	return text.Advance(str, s.face(style))
}

// DrawImage copies the sprite's source rectangle scaled into dst. Atlas
// pages are uploaded once and reused.
func (s *Surface) DrawImage(img render.Image, dst core.Rect) {
	if img.Source == nil || img.Src.Empty() || dst.W <= 0 || dst.H <= 0 {
		return
	}
	page, ok := s.pages[img.Source]
	if !ok {
		page = ebiten.NewImageFromImage(img.Source)
		s.pages[img.Source] = page
	}
	sub := page.SubImage(img.Src.Sub(img.Source.Bounds().Min)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.W/float64(img.Src.Dx()), dst.H/float64(img.Src.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.Filter = ebiten.FilterNearest
	s.dst.DrawImage(sub, op)
}

var _ render.Surface = (*Surface)(nil)
