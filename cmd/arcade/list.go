package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dso-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available apps",
	Long:  `Shows a list of all apps registered for the board.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	apps := registry.List()

	if len(apps) == 0 {
		fmt.Println("No apps available.")
		return
	}

	fmt.Println("Available apps:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, a := range apps {
		if len(a.ID) > maxIDLen {
			maxIDLen = len(a.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, a := range apps {
		fmt.Printf("  %-*s  %s\n", maxIDLen, a.ID, a.Title)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to run an app.")
}
