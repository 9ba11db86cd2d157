// r2048 is the 2048 sliding-tile game for the terminal.
//
// Usage:
//
//	r2048                    - Play a game (same as "r2048 play")
//	r2048 play               - Play a game
//	r2048 scores             - Show high scores
//	r2048 serve              - Start the SSH and HTTP servers
//	r2048 about              - Show rules and controls
//	r2048 config             - Print the default configuration
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible games
//	--db <path>      - Set database path (default: ~/.r2048/scores.db)
//	--config <path>  - Read configuration from a YAML file
//	--debug          - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/r2048/internal/config"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagDebug  bool
)

var (
	// Set by the root's PersistentPreRunE.
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "r2048",
	Short: "r2048 - 2048 in your terminal",
	Long: `r2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the tiles, merge equal neighbours and reach the 2048 tile.
Running r2048 without a command starts a game.

Available commands:
  play     - Play a game
  scores   - View high scores
  serve    - Start the SSH and HTTP servers
  about    - Show rules and controls
  config   - Print the default configuration

Examples:
  r2048
  r2048 play --difficulty hard
  r2048 play -d
  r2048 serve --ssh :2222 --http ""
  r2048 scores`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runPlay,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(aboutCmd)
}

// setup loads the configuration and creates the logger.
func setup(_ *cobra.Command, _ []string) error {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "r2048",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	appConfig = cfg

	logger.Debug("configuration loaded", "db", cfg.Storage.DBPath, "policy", cfg.Game.LossPolicy)
	return nil
}
