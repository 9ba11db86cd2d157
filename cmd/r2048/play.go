package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/r2048/internal/board"
	"github.com/vovakirdan/r2048/internal/config"
	"github.com/vovakirdan/r2048/internal/core"
	"github.com/vovakirdan/r2048/internal/game"
	"github.com/vovakirdan/r2048/internal/platform/tui"
	"github.com/vovakirdan/r2048/internal/storage"
)

var (
	flagDevelBoard bool
	flagDifficulty string
	flagLossPolicy string
	flagMenu       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of 2048.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  R                 - Start a new game
  I/?               - Rules and controls
  Q/Esc/Ctrl+C      - Quit

Difficulty options (chance that a new tile is a 4):
  easy   - 5%
  normal - 10%
  hard   - 25%

Loss policies:
  lock    - A lost board ignores moves until you start a new game
  display - A lost board is only announced

Examples:
  r2048 play
  r2048 play --difficulty hard
  r2048 play --devel-board
  r2048 play --menu
  r2048 play --seed 42 --loss-policy display`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags on cmd. The root command carries
// them too since playing is its default action.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&flagDevelBoard, "devel-board", "d", false, "Start on the debug board (2..16384)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flagLossPolicy, "loss-policy", "", "Loss policy: lock, display")
	cmd.Flags().BoolVarP(&flagMenu, "menu", "m", false, "Pick the difficulty from a menu")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg := appConfig
	if flagDifficulty != "" {
		if err := config.ApplyPreset(&cfg, flagDifficulty); err != nil {
			return err
		}
	}
	if flagLossPolicy != "" {
		cfg.Game.LossPolicy = flagLossPolicy
	}
	policy, err := cfg.Game.Policy()
	if err != nil {
		return err
	}

	runtime := terminalConfig()
	runtime.TickRate = cfg.UI.TickRate
	runtime.Seed = flagSeed

	develBoard := flagDevelBoard
	if flagMenu {
		sel, err := tui.RunStartMenu(runtime, cfg.Game.Difficulty)
		if err != nil {
			return err
		}
		if sel == nil {
			return nil
		}
		if err := config.ApplyPreset(&cfg, string(sel.Difficulty)); err != nil {
			return err
		}
		develBoard = develBoard || sel.DevelBoard
	}

	var src board.Source
	if runtime.Seed != 0 {
		src = board.NewSource(runtime.Seed)
	}

	session := game.NewSession(game.Options{
		Source:            src,
		Spawn4Probability: cfg.Game.Spawn4Probability,
		LossPolicy:        policy,
		DevelBoard:        develBoard,
		Origin:            "tui",
	})

	// Open score storage; the game still works without it.
	var scores tui.ScoreStore
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.Storage.DBPath, "error", err)
	} else {
		defer store.Close()
		scores = store
	}

	return tui.Run(session, scores, runtime, tui.Options{HighlightTicks: cfg.UI.HighlightTicks})
}

// terminalConfig returns the default runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	return cfg
}
