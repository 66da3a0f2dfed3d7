package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-island/internal/registry"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List all registered scenes",
	Long:  `Shows every scene the game registers, the island hub and its activities.`,
	Args:  cobra.NoArgs,
	Run:   runScenes,
}

func runScenes(_ *cobra.Command, _ []string) {
	scenes := registry.List()

	if len(scenes) == 0 {
		fmt.Println("No scenes registered.")
		return
	}

	fmt.Println("Registered scenes:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, s := range scenes {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----")
	for _, s := range scenes {
		fmt.Printf("  %-*s  %s\n", maxNameLen, s.Name, s.Title)
	}
}
