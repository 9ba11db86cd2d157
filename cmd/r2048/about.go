package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/r2048/internal/game"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show rules and controls",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(game.Title)
		fmt.Println()
		for _, line := range game.InfoLines() {
			fmt.Println(line)
		}
	},
}
