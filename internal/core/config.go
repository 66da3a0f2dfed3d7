package core

// World dimensions in pixels. Scenes lay themselves out in this space and
// hosts scale it to whatever they display.
const (
	WorldWidth  = 800
	WorldHeight = 600
)

// RuntimeConfig contains host settings passed to the engine at start.
type RuntimeConfig struct {
	ScreenW  int   // Host display width (terminal cells or window pixels)
	ScreenH  int   // Host display height
	TickRate int   // Frame requests per second the host aims for (default 60)
	Seed     int64 // RNG seed for reproducible sessions; 0 means time-based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
