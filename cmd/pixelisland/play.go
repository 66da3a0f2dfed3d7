package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/engine"
	"github.com/vovakirdan/pixel-island/internal/platform/tui"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal on the island.

Controls:
  Arrows/WASD  - Walk, change answers
  Space/Enter  - Interact, cast, submit
  Tab/C        - Fish collection
  ?            - Toggle help
  Q/Esc        - Quit

Logs are written to ~/.pixelisland/pixelisland.log.

Examples:
  pixelisland play
  pixelisland play --profile maxi
  pixelisland play --seed 42 --fps 30`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	loader, err := engine.LoadAssets(context.Background(), cfg.AssetsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load game: %v\n", err)
		os.Exit(1)
	}

	store, closeStore := openProgress(cfg, logger)
	defer closeStore()

	return tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.TickRate,
			Seed:     flagSeed,
		},
		Assets:   loader,
		Progress: store,
		Logger:   logger,
	})
}

// openLogFile opens ~/.pixelisland/pixelisland.log for appending.
func openLogFile() (*os.File, error) {
	path, err := storage.ExpandHome(filepath.Join("~", ".pixelisland", "pixelisland.log"))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// openProgress opens the profile's saved progress. When the database is
// unavailable the game still works and progress lives for this session only.
func openProgress(cfg config.Config, logger *log.Logger) (*progress.Store, func()) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open progress database, progress will not be saved", "error", err)
		return progress.NewStore(progress.NewMemoryBackend(), logger), func() {}
	}
	store := progress.NewStore(db.Backend(cfg.Profile), logger.With("profile", cfg.Profile))
	return store, func() { db.Close() }
}
