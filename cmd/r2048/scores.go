package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/r2048/internal/platform/tui"
	"github.com/vovakirdan/r2048/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded games and overall statistics.

Examples:
  r2048 scores
  r2048 scores --limit 25
  r2048 scores -i
  r2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of games to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Browse scores in a scrollable table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded game")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Println("All scores deleted.")
		return nil
	}

	if flagScoresInteractive {
		size := terminalConfig()
		return tui.RunScoreboard(store, size.ScreenW, size.ScreenH)
	}

	games, err := store.TopScores(flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println("High Scores - r2048")
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'r2048' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-4s  %s\n", "Rank", "Score", "Tile", "Moves", "From", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %-4s  %s\n", "----", "-----", "----", "-----", "----", "----")

	for i, g := range games {
		fmt.Printf("  %-4d  %-10d  %-6d  %-5d  %-4s  %s\n",
			i+1, g.Score, g.MaxTile, g.Moves, g.Origin, g.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d   Best tile: %d   Games: %d (%d lost)   Average: %.0f\n",
		stats.HighScore, stats.BestTile, stats.GamesCount, stats.LostCount, stats.AvgScore)
	return nil
}
