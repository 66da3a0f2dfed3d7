// Package config provides YAML-based configuration for the game: runtime
// settings, the island layout and the SSH server.
package config

import (
	"fmt"
	"time"
)

// Config is the full game configuration.
type Config struct {
	TickRate  int    `yaml:"tick_rate"`   // frames per second requested from the host
	Width     int    `yaml:"width"`       // world width in pixels
	Height    int    `yaml:"height"`      // world height in pixels
	KeyHoldMS int    `yaml:"key_hold_ms"` // terminal key release timeout
	DBPath    string `yaml:"db_path"`
	Profile   string `yaml:"profile"`
	AssetsDir string `yaml:"assets_dir"` // empty uses the embedded assets
	LogLevel  string `yaml:"log_level"`

	Island IslandConfig `yaml:"island"`
	SSH    SSHConfig    `yaml:"ssh"`
	Window WindowConfig `yaml:"window"`
}

// RectConfig is a world-space rectangle.
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// PointConfig is a world-space position.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// IslandConfig describes the hub scene layout.
type IslandConfig struct {
	Title         string               `yaml:"title"`
	Bounds        RectConfig           `yaml:"bounds"`
	Spawn         PointConfig          `yaml:"spawn"`
	Obstacles     []ObstacleConfig     `yaml:"obstacles"`
	Interactables []InteractableConfig `yaml:"interactables"`
	Decorations   []DecorationConfig   `yaml:"decorations"`
}

// ObstacleConfig is a solid box drawn with a terrain frame.
type ObstacleConfig struct {
	RectConfig `yaml:",inline"`
	Frame      string `yaml:"frame"`
}

// InteractableConfig is a spot the player can activate.
type InteractableConfig struct {
	RectConfig `yaml:",inline"`
	Label      string  `yaml:"label"`
	Target     string  `yaml:"target"` // scene to switch to
	Frame      string  `yaml:"frame"`
	Distance   float64 `yaml:"interaction_distance"` // 0 uses the default
}

// DecorationConfig is a terrain frame drawn without collision.
type DecorationConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Frame string  `yaml:"frame"`
}

// SSHConfig configures the serve command.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key"` // empty uses ~/.pixelisland/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// WindowConfig configures the desktop window.
type WindowConfig struct {
	Title string  `yaml:"title"`
	Scale float64 `yaml:"scale"`
}

// Validate checks values the game cannot run without.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: world size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Island.Bounds.W <= 0 || c.Island.Bounds.H <= 0 {
		return fmt.Errorf("config: island bounds must have a positive size")
	}
	for i, it := range c.Island.Interactables {
		if it.Label == "" {
			return fmt.Errorf("config: island interactable %d has no label", i)
		}
		if it.Distance < 0 {
			return fmt.Errorf("config: island interactable %q has a negative interaction distance", it.Label)
		}
	}
	return nil
}
