package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-island/internal/games/fishing"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/storage"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress",
	Long: `Display the fish collection and learning progress of a profile,
and list every profile with saved progress.

Examples:
  pixelisland progress
  pixelisland progress --profile maxi
  pixelisland progress --profile maxi --reset`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Erase the profile's progress")
}

func runProgress(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if flagReset {
		if err := db.DeleteProfile(cfg.Profile); err != nil {
			return err
		}
		fmt.Printf("Progress of %q erased.\n", cfg.Profile)
		return nil
	}

	store := progress.NewStore(db.Backend(cfg.Profile), logger.With("profile", cfg.Profile))
	printProgress(cfg.Profile, store)

	profiles, err := db.Profiles()
	if err != nil {
		return err
	}
	printProfiles(profiles)
	return nil
}

func printProgress(profile string, store *progress.Store) {
	data := store.Snapshot()
	stats := store.FishStats()

	fmt.Printf("Progress - %s\n", profile)
	fmt.Println()
	fmt.Printf("  Fish caught:    %d\n", stats.TotalCaught)
	fmt.Printf("  Kinds caught:   %d/%d\n", stats.CaughtTypes, len(fishing.Catalog))
	fmt.Printf("  Counting games: %d\n", store.CountingProgress())
	fmt.Printf("  Letter games:   %d\n", store.LetterProgress())
	fmt.Printf("  Play time:      %s\n", time.Duration(data.TotalPlayTime*float64(time.Second)).Round(time.Second))
	fmt.Println()

	caught := make(map[string]int)
	for _, e := range store.Collection() {
		if e.Caught {
			caught[e.TypeID] = e.Count
		}
	}

	fmt.Printf("  %-14s  %-9s  %s\n", "Fish", "Rarity", "Caught")
	fmt.Printf("  %-14s  %-9s  %s\n", "----", "------", "------")
	for _, f := range fishing.Catalog {
		if n, ok := caught[f.ID]; ok {
			fmt.Printf("  %-14s  %-9s  %d\n", f.Name, f.Tier, n)
		} else {
			fmt.Printf("  %-14s  %-9s  %s\n", "???", f.Tier, "-")
		}
	}
	fmt.Println()
}

func printProfiles(profiles []storage.ProfileInfo) {
	if len(profiles) == 0 {
		return
	}
	fmt.Println("Saved profiles:")
	for _, p := range profiles {
		fmt.Printf("  %-16s  last played %s\n", p.Name, p.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
