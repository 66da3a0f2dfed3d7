// pixelisland is a small learning game for children: walk around an
// island, go fishing, count fish and find letters.
//
// Usage:
//
//	pixelisland play                - Play in the terminal
//	pixelisland window              - Play in a desktop window
//	pixelisland serve               - Start SSH server for remote play
//	pixelisland progress [--reset]  - Show or reset saved progress
//	pixelisland scenes              - List registered scenes
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: from config, 60)
//	--seed <value>       - Set RNG seed for reproducible rounds
//	--db <path>          - Set database path (default: ~/.pixelisland/progress.db)
//	--profile <name>     - Progress profile to play with
//	--config <path>      - Config YAML to load
//	--assets <dir>       - Load images from dir instead of the embedded set
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-island/internal/config"

	// Import scenes to register them
	_ "github.com/vovakirdan/pixel-island/internal/games/challenge"
	_ "github.com/vovakirdan/pixel-island/internal/games/fishing"
	_ "github.com/vovakirdan/pixel-island/internal/games/island"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagProfile  string
	flagConfig   string
	flagAssets   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixelisland",
	Short: "Pixel Island - a learning game for little players",
	Long: `Pixel Island is a small island to explore. Walk to the dock to go
fishing, to the counting board to count fish and to the letter sign to
find letters. Everything caught and learned is saved.

Available commands:
  play      - Play in the terminal
  window    - Play in a desktop window
  serve     - Start SSH server for remote play
  progress  - Show or reset saved progress
  scenes    - List registered scenes

Examples:
  pixelisland play
  pixelisland window --profile maxi
  pixelisland serve
  pixelisland progress --profile maxi`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Progress profile name")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory to load images from (default: embedded)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(scenesCmd)
}

// loadConfig reads the config file, then applies PIXELISLAND_* environment
// variables and the global flags in that order.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	fromEnv, err := config.EnvOverrides()
	if err != nil {
		return config.Config{}, err
	}
	fromEnv.Apply(&cfg)
	config.Overrides{
		TickRate:  flagFPS,
		DBPath:    flagDBPath,
		Profile:   flagProfile,
		AssetsDir: flagAssets,
		LogLevel:  flagLogLevel,
	}.Apply(&cfg)
	return cfg, cfg.Validate()
}

// newLogger creates the process logger writing to w at the configured level.
func newLogger(w io.Writer, cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pixelisland",
	})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
