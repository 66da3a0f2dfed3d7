package render

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/pixel-island/internal/core"
)

// Canvas is a Surface that projects world coordinates onto a character
// Screen. Each cell stands for a (worldW/cols) x (worldH/rows) block and is
// painted from the shape or pixel under its center. Shapes smaller than a
// cell still paint the cell under their center.
type Canvas struct {
	screen *core.Screen
	worldW float64
	worldH float64
}

// NewCanvas creates a canvas drawing the worldW x worldH world onto screen.
func NewCanvas(screen *core.Screen, worldW, worldH float64) *Canvas {
	return &Canvas{screen: screen, worldW: worldW, worldH: worldH}
}

// Screen returns the backing screen.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

func (c *Canvas) cellW() float64 { return c.worldW / float64(c.screen.Width()) }
func (c *Canvas) cellH() float64 { return c.worldH / float64(c.screen.Height()) }

// span returns the half-open cell range whose centers lie in [lo, hi).
func span(lo, hi, size float64, n int) (int, int) {
	if n <= 0 || hi <= lo {
		return 0, 0
	}
	a := int(math.Ceil(lo/size - 0.5))
	b := int(math.Ceil(hi/size - 0.5))
	if a >= b {
		a = int(math.Floor((lo + hi) / 2 / size))
		b = a + 1
	}
	return core.Max(a, 0), core.Min(b, n)
}

func (c *Canvas) cols(lo, hi float64) (int, int) { return span(lo, hi, c.cellW(), c.screen.Width()) }
func (c *Canvas) rows(lo, hi float64) (int, int) { return span(lo, hi, c.cellH(), c.screen.Height()) }

// cellCenter returns the world position of a cell's center.
func (c *Canvas) cellCenter(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * c.cellW(), (float64(y) + 0.5) * c.cellH()
}

// paint covers one cell with a color, erasing any glyph on it.
func (c *Canvas) paint(x, y int, col core.Color) {
	if x < 0 || y < 0 || x >= c.screen.Width() || y >= c.screen.Height() {
		return
	}
	c.screen.Set(x, y, ' ')
	c.screen.SetBG(x, y, Blend(c.screen.GetCell(x, y).BG, col))
}

// Clear fills every cell with c.
func (c *Canvas) Clear(col core.Color) {
	c.screen.Fill(' ', col)
}

// FillRect paints the cells covered by r.
func (c *Canvas) FillRect(r core.Rect, col core.Color) {
	x0, x1 := c.cols(r.X, r.Right())
	y0, y1 := c.rows(r.Y, r.Bottom())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.paint(x, y, col)
		}
	}
}

// StrokeRect paints the border cells of r. Cells are the thinnest line a
// terminal can show, so width is ignored.
func (c *Canvas) StrokeRect(r core.Rect, col core.Color, _ float64) {
	x0, x1 := c.cols(r.X, r.Right())
	y0, y1 := c.rows(r.Y, r.Bottom())
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for x := x0; x < x1; x++ {
		c.paint(x, y0, col)
		if y1-1 != y0 {
			c.paint(x, y1-1, col)
		}
	}
	for y := y0 + 1; y < y1-1; y++ {
		c.paint(x0, y, col)
		if x1-1 != x0 {
			c.paint(x1-1, y, col)
		}
	}
}

// Line paints the cells along the segment.
func (c *Canvas) Line(x1, y1, x2, y2 float64, col core.Color, _ float64) {
	steps := int(math.Max(math.Abs(x2-x1)/c.cellW(), math.Abs(y2-y1)/c.cellH())*2) + 1
	lastX, lastY := -1, -1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx := int(math.Floor((x1 + (x2-x1)*t) / c.cellW()))
		cy := int(math.Floor((y1 + (y2-y1)*t) / c.cellH()))
		if cx == lastX && cy == lastY {
			continue
		}
		c.paint(cx, cy, col)
		lastX, lastY = cx, cy
	}
}

// FillCircle paints the cells whose centers lie inside the circle.
func (c *Canvas) FillCircle(cx, cy, radius float64, col core.Color) {
	c.fillShape(cx-radius, cy-radius, cx+radius, cy+radius, func(px, py float64) bool {
		return core.Distance(px, py, cx, cy) <= radius
	}, cx, cy, col)
}

// FillTriangle paints the cells whose centers lie inside the triangle.
func (c *Canvas) FillTriangle(x1, y1, x2, y2, x3, y3 float64, col core.Color) {
	side := func(ax, ay, bx, by, px, py float64) float64 {
		return (px-bx)*(ay-by) - (ax-bx)*(py-by)
	}
	inside := func(px, py float64) bool {
		d1 := side(px, py, x1, y1, x2, y2)
		d2 := side(px, py, x2, y2, x3, y3)
		d3 := side(px, py, x3, y3, x1, y1)
		neg := d1 < 0 || d2 < 0 || d3 < 0
		pos := d1 > 0 || d2 > 0 || d3 > 0
		return !(neg && pos)
	}
	minX, maxX := math.Min(x1, math.Min(x2, x3)), math.Max(x1, math.Max(x2, x3))
	minY, maxY := math.Min(y1, math.Min(y2, y3)), math.Max(y1, math.Max(y2, y3))
	c.fillShape(minX, minY, maxX, maxY, inside, (x1+x2+x3)/3, (y1+y2+y3)/3, col)
}

// fillShape paints cells in the bounding box that pass inside. When no
// cell center is inside, the cell under (fx, fy) is painted instead.
func (c *Canvas) fillShape(minX, minY, maxX, maxY float64, inside func(x, y float64) bool, fx, fy float64, col core.Color) {
	x0, x1 := c.cols(minX, maxX)
	y0, y1 := c.rows(minY, maxY)
	painted := false
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := c.cellCenter(x, y)
			if inside(px, py) {
				c.paint(x, y, col)
				painted = true
			}
		}
	}
	if !painted {
		c.paint(int(math.Floor(fx/c.cellW())), int(math.Floor(fy/c.cellH())), col)
	}
}

// Text writes s on the row containing the vertical middle of the text.
func (c *Canvas) Text(x, y float64, s string, style TextStyle) {
	size := style.Size
	if size <= 0 {
		size = c.cellH()
	}
	left := TextLeft(x, c.MeasureText(s, style), style.Align)
	col := int(math.Round(left / c.cellW()))
	row := int(math.Floor((y - size/2) / c.cellH()))
	row = core.Max(0, core.Min(row, c.screen.Height()-1))
	c.screen.DrawText(col, row, s, style.Color)
}

// MeasureText returns one cell width per rune.
func (c *Canvas) MeasureText(s string, _ TextStyle) float64 {
	return float64(utf8.RuneCountInString(s)) * c.cellW()
}

// DrawImage samples the source pixel under each covered cell's center.
// Mostly transparent pixels leave the cell untouched.
func (c *Canvas) DrawImage(img Image, dst core.Rect) {
	if img.Source == nil || img.Src.Empty() || dst.W <= 0 || dst.H <= 0 {
		return
	}
	sample := func(px, py float64) (core.Color, bool) {
		u := (px - dst.X) / dst.W
		v := (py - dst.Y) / dst.H
		sx := img.Src.Min.X + int(core.Clamp(u, 0, 0.999)*float64(img.Src.Dx()))
		sy := img.Src.Min.Y + int(core.Clamp(v, 0, 0.999)*float64(img.Src.Dy()))
		n := color.NRGBAModel.Convert(img.Source.At(sx, sy)).(color.NRGBA)
		if n.A < 0x80 {
			return core.Color{}, false
		}
		return core.Color{R: n.R, G: n.G, B: n.B, A: 0xff}, true
	}

	x0, x1 := c.cols(dst.X, dst.Right())
	y0, y1 := c.rows(dst.Y, dst.Bottom())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if col, ok := sample(c.cellCenter(x, y)); ok {
				c.paint(x, y, col)
			}
		}
	}
}

// Ensure Canvas implements Surface
var _ Surface = (*Canvas)(nil)
