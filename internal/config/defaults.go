package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/pixelisland.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded
// defaults/pixelisland.yaml.
func Default() Config {
	return Config{
		TickRate:  60,
		Width:     800,
		Height:    600,
		KeyHoldMS: 150,
		DBPath:    "~/.pixelisland/progress.db",
		Profile:   "default",
		LogLevel:  "info",
		Island: IslandConfig{
			Title:  "Maxi's Island",
			Bounds: RectConfig{X: 100, Y: 100, W: 600, H: 400},
			Spawn:  PointConfig{X: 400, Y: 300},
			Obstacles: []ObstacleConfig{
				{RectConfig: RectConfig{X: 200, Y: 150, W: 30, H: 40}, Frame: "palm_big"},
				{RectConfig: RectConfig{X: 500, Y: 180, W: 30, H: 40}, Frame: "palm_small"},
				{RectConfig: RectConfig{X: 350, Y: 250, W: 40, H: 30}, Frame: "rock_cluster"},
				{RectConfig: RectConfig{X: 150, Y: 350, W: 25, H: 25}, Frame: "bush_large"},
				{RectConfig: RectConfig{X: 600, Y: 350, W: 25, H: 25}, Frame: "bush_medium"},
			},
			Interactables: []InteractableConfig{
				{RectConfig: RectConfig{X: 250, Y: 450, W: 50, H: 50}, Label: "Go Fishing", Target: "fishing", Frame: "wave_shallow"},
				{RectConfig: RectConfig{X: 150, Y: 200, W: 50, H: 50}, Label: "Count Fish", Target: "counting", Frame: "bush_medium"},
				{RectConfig: RectConfig{X: 550, Y: 220, W: 50, H: 50}, Label: "Learn Letters", Target: "letters", Frame: "rock_cluster"},
			},
			Decorations: []DecorationConfig{
				{X: 50, Y: 120, Frame: "palm_small"},
				{X: 700, Y: 110, Frame: "palm_big"},
				{X: 300, Y: 480, Frame: "wave_shallow"},
				{X: 400, Y: 480, Frame: "wave_deep"},
			},
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Window: WindowConfig{
			Title: "Pixel Island",
			Scale: 1,
		},
	}
}
