package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/r2048/internal/api"
	"github.com/vovakirdan/r2048/internal/board"
	"github.com/vovakirdan/r2048/internal/game"
	"github.com/vovakirdan/r2048/internal/platform/tui"
	"github.com/vovakirdan/r2048/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and HTTP servers",
	Long: `Start an SSH server for interactive play and an HTTP JSON API.

Each SSH connection gets its own game. HTTP clients create games with
POST /api/v1/games and play them with POST /api/v1/games/{id}/moves.
Finished games from both servers go to the same score database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.r2048/host_key

Pass an empty address to disable a server.

Examples:
  r2048 serve                           # SSH on :23234, HTTP on :8048
  r2048 serve --ssh :2222               # SSH on port 2222
  r2048 serve --http ""                 # SSH only
  r2048 serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if cmd.Flags().Changed("ssh") {
		cfg.Server.SSHAddress = flagSSHAddr
	}
	if cmd.Flags().Changed("http") {
		cfg.Server.HTTPAddress = flagHTTPAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}
	if cfg.Server.SSHAddress == "" && cfg.Server.HTTPAddress == "" {
		return errors.New("both servers are disabled")
	}

	policy, err := cfg.Game.Policy()
	if err != nil {
		return err
	}

	// Scores are shared by every connection; serving without them still works.
	var (
		scores tui.ScoreStore
		saver  game.ResultSaver
	)
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.Storage.DBPath, "error", err)
	} else {
		defer store.Close()
		scores, saver = store, store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Server.SSHAddress != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = cfg.Server.SSHAddress
		sshCfg.HostKeyPath = cfg.Server.HostKeyPath
		if cfg.Server.IdleTimeout > 0 {
			sshCfg.IdleTimeout = cfg.Server.IdleTimeoutDuration()
		}
		sshCfg.Spawn4Probability = cfg.Game.Spawn4Probability
		sshCfg.LossPolicy = policy
		sshCfg.HighlightTicks = cfg.UI.HighlightTicks
		sshCfg.TickRate = cfg.UI.TickRate

		sshServer, err := tui.NewSSHServer(sshCfg, scores, logger.WithPrefix("r2048-ssh"))
		if err != nil {
			return err
		}
		g.Go(func() error { return sshServer.Run(ctx) })
		fmt.Printf("SSH: connect with ssh -p <port> localhost (listening on %s)\n", cfg.Server.SSHAddress)
	}

	if cfg.Server.HTTPAddress != "" {
		opts := api.Options{
			Spawn4Probability: cfg.Game.Spawn4Probability,
			LossPolicy:        policy,
			IdleTimeout:       cfg.Server.IdleTimeoutDuration(),
			Saver:             saver,
			Logger:            logger.WithPrefix("r2048-http"),
		}
		if flagSeed != 0 {
			var (
				mu   sync.Mutex
				seed = flagSeed
			)
			opts.NewSource = func() board.Source {
				mu.Lock()
				defer mu.Unlock()
				seed++
				return board.NewSource(seed)
			}
		}
		httpServer := api.NewServer(opts)
		g.Go(func() error { return httpServer.Serve(ctx, cfg.Server.HTTPAddress) })
		fmt.Printf("HTTP: API listening on %s\n", cfg.Server.HTTPAddress)
	}

	fmt.Println("Press Ctrl+C to stop")
	return g.Wait()
}
