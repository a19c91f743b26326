package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starquest/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed scenarios",
	Long:  `Shows the built-in scenario packs and any loaded with --content.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenarios := registry.List()

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, sc := range scenarios {
		maxIDLen = max(maxIDLen, len(sc.ID))
		maxTitleLen = max(maxTitleLen, len(sc.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, sc := range scenarios {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, sc.ID, maxTitleLen, sc.Title, sc.Description)
	}

	fmt.Println()
	fmt.Println("Run 'starquest play <id>' to fly a voyage.")
}
