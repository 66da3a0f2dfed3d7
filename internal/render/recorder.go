package render

import (
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/pixel-island/internal/core"
)

// Op is one recorded draw call.
type Op struct {
	Kind  string // "clear", "fill", "stroke", "line", "circle", "triangle", "text", "image"
	Rect  core.Rect
	Color core.Color
	Text  string
	Image Image
}

// Recorder is a Surface that records draw calls instead of drawing them.
// Text is measured at 8 world units per rune.
type Recorder struct {
	Ops []Op
}

// Reset drops the recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) Clear(c core.Color) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Color: c})
}

func (r *Recorder) FillRect(rect core.Rect, c core.Color) {
	r.Ops = append(r.Ops, Op{Kind: "fill", Rect: rect, Color: c})
}

func (r *Recorder) StrokeRect(rect core.Rect, c core.Color, _ float64) {
	r.Ops = append(r.Ops, Op{Kind: "stroke", Rect: rect, Color: c})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, c core.Color, _ float64) {
	r.Ops = append(r.Ops, Op{Kind: "line", Rect: core.NewRect(x1, y1, x2-x1, y2-y1), Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c core.Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", Rect: core.NewRect(cx-radius, cy-radius, 2*radius, 2*radius), Color: c})
}

func (r *Recorder) FillTriangle(x1, y1, x2, y2, x3, y3 float64, c core.Color) {
	r.Ops = append(r.Ops, Op{Kind: "triangle", Rect: core.NewRect(x1, y1, 0, 0), Color: c})
}

func (r *Recorder) Text(x, y float64, s string, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: "text", Rect: core.NewRect(x, y, 0, 0), Color: style.Color, Text: s})
}

func (r *Recorder) MeasureText(s string, _ TextStyle) float64 {
	return float64(utf8.RuneCountInString(s)) * 8
}

func (r *Recorder) DrawImage(img Image, dst core.Rect) {
	r.Ops = append(r.Ops, Op{Kind: "image", Rect: dst, Image: img})
}

// Texts returns every recorded text run in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether any text run contains substr.
func (r *Recorder) HasText(substr string) bool {
	for _, t := range r.Texts() {
		if strings.Contains(t, substr) {
			return true
		}
	}
	return false
}

// Images returns every recorded image draw in order.
func (r *Recorder) Images() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == "image" {
			out = append(out, op)
		}
	}
	return out
}

// Ensure Recorder implements Surface
var _ Surface = (*Recorder)(nil)
