package core

import (
	"fmt"
	"strconv"
)

// Color is a straight-alpha RGBA color. The zero value means "unset" and
// lets a screen cell keep the host's default terminal color.
type Color struct {
	R, G, B, A uint8
}

// Hex parses a "#RRGGBB" string into an opaque Color.
// Malformed input yields the zero Color.
func Hex(s string) Color {
	if len(s) != 7 || s[0] != '#' {
		return Color{}
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// RGBA implements image/color.Color with premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R) * a / 0xff
	g = uint32(c.G) * a / 0xff
	b = uint32(c.B) * a / 0xff
	return r, g, b, a
}

// IsZero reports whether the color is unset.
func (c Color) IsZero() bool {
	return c == Color{}
}

// String returns the "#RRGGBB" form.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// WithAlpha returns a copy of c with the given alpha.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Palette used by the scenes. Names follow the handheld-console look of the game.
var (
	ColorScreen   = Hex("#9BBC0F") // light green background
	ColorDark     = Hex("#0F380F") // darkest green, text and borders
	ColorMid      = Hex("#8BAC0F")
	ColorSky      = Hex("#87CEEB")
	ColorSand     = Hex("#F4D03F")
	ColorWater    = Hex("#2E86AB")
	ColorWhite    = Hex("#FFFFFF")
	ColorBlack    = Hex("#000000")
	ColorGold     = Hex("#FFD700")
	ColorRed      = Hex("#FF0000")
	ColorCoral    = Hex("#FF6B6B")
	ColorLime     = Hex("#32CD32")
	ColorWood     = Hex("#8B4513")
	ColorOverlay  = ColorBlack.WithAlpha(0xb3)
	ColorZoneFill = Hex("#32CD32").WithAlpha(0x80)
)
