// Package render defines the draw surface scenes paint on and the hosts
// implement. Scenes work in world coordinates (800x600); a surface maps them
// onto whatever it draws to.
package render

import (
	"image"

	"github.com/vovakirdan/pixel-island/internal/core"
)

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle controls how Text draws.
type TextStyle struct {
	Color core.Color
	Size  float64 // nominal pixel height
	Bold  bool
	Align Align
}

// Image is a sprite resolved against its atlas: the page image and the
// source rectangle to copy from it.
type Image struct {
	Atlas  string
	Frame  string // grid key after legacy name mapping
	Source image.Image
	Src    image.Rectangle
}

// Surface is the set of primitives scenes draw with.
// Colors with alpha below 0xff blend over what is already drawn.
type Surface interface {
	// Clear fills the whole surface.
	Clear(c core.Color)
	FillRect(r core.Rect, c core.Color)
	StrokeRect(r core.Rect, c core.Color, width float64)
	Line(x1, y1, x2, y2 float64, c core.Color, width float64)
	FillCircle(cx, cy, radius float64, c core.Color)
	FillTriangle(x1, y1, x2, y2, x3, y3 float64, c core.Color)
	// Text draws s with its baseline at y, anchored at x per style.Align.
	Text(x, y float64, s string, style TextStyle)
	// MeasureText returns the drawn width of s in world units.
	MeasureText(s string, style TextStyle) float64
	// DrawImage copies img.Src scaled into dst.
	DrawImage(img Image, dst core.Rect)
}

// TextLeft returns the left edge of a text run of width w anchored at x.
func TextLeft(x, w float64, align Align) float64 {
	switch align {
	case AlignCenter:
		return x - w/2
	case AlignRight:
		return x - w
	default:
		return x
	}
}

// Blend composes src over dst using src's alpha. The result is opaque
// when dst is.
func Blend(dst, src core.Color) core.Color {
	if src.A == 0xff || dst.IsZero() {
		return src
	}
	if src.A == 0 {
		return dst
	}
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(0xff-a)) / 0xff)
	}
	return core.Color{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: dst.A,
	}
}
