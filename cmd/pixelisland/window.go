package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/engine"
	"github.com/vovakirdan/pixel-island/internal/platform/desktop"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window with full-color sprites.

Controls:
  Arrows/WASD  - Walk, change answers
  Space/Enter  - Interact, cast, submit
  Esc          - Quit

The window title and scale come from the "window" section of the config.

Examples:
  pixelisland window
  pixelisland window --profile maxi`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	loader, err := engine.LoadAssets(context.Background(), cfg.AssetsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load game: %v\n", err)
		os.Exit(1)
	}

	store, closeStore := openProgress(cfg, logger)
	defer closeStore()

	return desktop.Run(desktop.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  cfg.Width,
			ScreenH:  cfg.Height,
			TickRate: cfg.TickRate,
			Seed:     flagSeed,
		},
		Assets:   loader,
		Progress: store,
		Logger:   logger,
	})
}
