package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/r2048/internal/board"
	"github.com/vovakirdan/r2048/internal/core"
	"github.com/vovakirdan/r2048/internal/game"
)

// connIDKey stores the per-connection id in the ssh context.
type connIDKey struct{}

// sessionKey stores the connection's *game.Session in the ssh context.
type sessionKey struct{}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.r2048/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Spawn4Probability and LossPolicy are applied to every session.
	Spawn4Probability float64
	LossPolicy        game.LossPolicy

	// HighlightTicks and TickRate tune the spawn highlight.
	HighlightTicks int
	TickRate       int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:           ":23234",
		IdleTimeout:       30 * time.Minute,
		Spawn4Probability: board.DefaultSpawn4Probability,
		LossPolicy:        game.LossPolicyLock,
		HighlightTicks:    9,
		TickRate:          60,
	}
}

// SSHServer serves one independent game per SSH connection.
// All connections share the score store.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	scores ScoreStore
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. scores may be nil; a nil logger
// logs to stderr.
func NewSSHServer(cfg SSHServerConfig, scores ScoreStore, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "r2048-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		scores: scores,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".r2048", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a game model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "r2048 needs an interactive terminal (try ssh -t)")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	session := game.NewSession(game.Options{
		Source:            board.NewRandomSource(),
		Spawn4Probability: s.config.Spawn4Probability,
		LossPolicy:        s.config.LossPolicy,
		Origin:            "ssh",
	})

	sshSession.Context().SetValue(sessionKey{}, session)
	s.logger.Debug("game session created",
		"conn", sshSession.Context().Value(connIDKey{}),
		"session", session.ID(),
	)

	model := NewModel(session, s.scores, cfg, Options{HighlightTicks: s.config.HighlightTicks})
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := uuid.NewString()
		sshSession.Context().SetValue(connIDKey{}, id)

		start := time.Now()
		s.logger.Info("session started",
			"conn", id,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		if session, ok := sshSession.Context().Value(sessionKey{}).(*game.Session); ok {
			s.finishSession(session, id)
		}
		s.logger.Info("session ended",
			"conn", id,
			"user", sshSession.User(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// finishSession records the game of a connection that went away. Games the
// player already ended are not recorded twice.
func (s *SSHServer) finishSession(session *game.Session, conn string) {
	r := session.Close()
	if r == nil || s.scores == nil {
		return
	}
	if err := game.Report(s.scores, r); err != nil {
		s.logger.Warn("could not save game", "conn", conn, "game", r.GameID, "error", err)
		return
	}
	s.logger.Debug("game recorded on disconnect", "conn", conn, "game", r.GameID, "score", r.Score)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) Run(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- fmt.Errorf("ssh: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down SSH server...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
