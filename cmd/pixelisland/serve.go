package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-island/internal/engine"
	"github.com/vovakirdan/pixel-island/internal/platform/tui"
	"github.com/vovakirdan/pixel-island/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Pixel Island SSH server",
	Long: `Start an SSH server that lets players connect and play in their terminal.

Each SSH user name gets its own progress profile in the server database,
so every player keeps their own fish collection.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pixelisland/host_key

Examples:
  pixelisland serve                           # Listen on the configured address
  pixelisland serve --ssh :2222               # Listen on port 2222
  pixelisland serve --host-key ./my_host_key  # Use specific host key
  pixelisland serve --db ./progress.db        # Use specific database

Players can connect with:
  ssh maxi@localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (0 = from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	logger := newLogger(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, err := engine.LoadAssets(ctx, cfg.AssetsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load game: %v\n", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	server, err := tui.NewSSHServer(cfg, db, loader, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting Pixel Island SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
