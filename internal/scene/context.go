package scene

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/render"
)

// Rand is the random source scenes draw from. *math/rand/v2.Rand
// implements it; tests pass a seeded or scripted source.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Shuffle permutes n elements using swap.
	Shuffle(n int, swap func(i, j int))
}

// Context is the state shared by every scene of one game session.
type Context struct {
	Input    *core.Input
	Progress *progress.Store
	Sprites  *render.Sprites
	Rand     Rand
	Logger   *log.Logger
	Config   config.Config

	Width  float64
	Height float64
}

func (c *Context) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// RandRange returns a value from r uniformly distributed in [lo, hi).
func RandRange(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// RandInt returns an integer from r uniformly distributed in [lo, hi].
func RandInt(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}
