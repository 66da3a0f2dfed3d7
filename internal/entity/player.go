// Package entity contains the hub world's actors: the player and the
// spots it can interact with.
package entity

import (
	"github.com/vovakirdan/pixel-island/internal/assets"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/render"
)

// Direction is the way the player faces.
type Direction int

const (
	FacingDown Direction = iota
	FacingUp
	FacingLeft
	FacingRight
)

func (d Direction) String() string {
	switch d {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}

// Player movement and collision box constants.
const (
	PlayerSpeed  = 100.0 // pixels per second
	PlayerWidth  = 24.0
	PlayerHeight = 36.0

	// The sprite is drawn up and to the left of the collision box so the
	// box sits on the character's body.
	spriteOffsetX = -8.0
	spriteOffsetY = -8.0
	playerFrame   = "char_child"
)

// Player is the character walking the hub island.
type Player struct {
	X, Y   float64
	Facing Direction
}

// NewPlayer places a player facing down at (x, y).
func NewPlayer(x, y float64) *Player {
	return &Player{X: x, Y: y, Facing: FacingDown}
}

// Bounds returns the collision box.
func (p *Player) Bounds() core.Rect {
	return core.NewRect(p.X, p.Y, PlayerWidth, PlayerHeight)
}

// Center returns the center of the collision box.
func (p *Player) Center() (float64, float64) {
	return p.Bounds().Center()
}

// Update moves the player for one tick.
//
// Each axis moves independently at full speed, so diagonal movement is
// faster than straight movement. The result is clamped into bounds. If the
// new box overlaps any obstacle the whole move is undone; there is no
// sliding along walls.
func (p *Player) Update(dt float64, in *core.Input, bounds core.Rect, obstacles []core.Rect) {
	oldX, oldY := p.X, p.Y
	step := PlayerSpeed * dt

	if in.Left() {
		p.X -= step
		p.Facing = FacingLeft
	}
	if in.Right() {
		p.X += step
		p.Facing = FacingRight
	}
	if in.Up() {
		p.Y -= step
		p.Facing = FacingUp
	}
	if in.Down() {
		p.Y += step
		p.Facing = FacingDown
	}

	p.X = core.Clamp(p.X, bounds.X, bounds.Right()-PlayerWidth)
	p.Y = core.Clamp(p.Y, bounds.Y, bounds.Bottom()-PlayerHeight)

	box := p.Bounds()
	for _, o := range obstacles {
		if box.Overlaps(o) {
			p.X, p.Y = oldX, oldY
			break
		}
	}
}

// Render draws the player sprite.
func (p *Player) Render(s render.Surface, sprites *render.Sprites) {
	sprites.Draw(s, assets.AtlasFish, playerFrame, p.X+spriteOffsetX, p.Y+spriteOffsetY, 1)
}
