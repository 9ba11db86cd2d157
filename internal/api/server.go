// Package api exposes game sessions over a JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/r2048/internal/board"
	"github.com/vovakirdan/r2048/internal/game"
)

// DefaultMaxSessions caps concurrently open games when Options.MaxSessions is zero.
const DefaultMaxSessions = 1000

// Options configures a Server.
type Options struct {
	// NewSource returns the randomness for a new session. Nil seeds from the OS.
	NewSource func() board.Source

	Spawn4Probability float64
	LossPolicy        game.LossPolicy
	MaxSessions       int

	// IdleTimeout closes games nobody has touched for this long. Zero keeps
	// games open until they are deleted or the server stops.
	IdleTimeout time.Duration

	// Saver records finished games. May be nil.
	Saver game.ResultSaver

	// Logger defaults to a stderr logger.
	Logger *log.Logger
}

// entry serializes access to one session. closed is set once the entry
// leaves the session map; holders of a stale pointer must not use it.
type entry struct {
	mu         sync.Mutex
	session    *game.Session
	lastAccess time.Time
	closed     bool
}

// Server handles HTTP requests.
type Server struct {
	opts   Options
	logger *log.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewServer creates a new API server.
func NewServer(opts Options) *Server {
	if opts.NewSource == nil {
		opts.NewSource = board.NewRandomSource
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = DefaultMaxSessions
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "r2048-http",
		})
	}

	return &Server{
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1/games", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/moves", s.handleMove)
			r.Post("/reset", s.handleReset)
		})
	})

	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting HTTP server", "address", addr)

	if s.opts.IdleTimeout > 0 {
		go s.sweepLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeAll()
	return err
}

// closeAll records every open game. Used on shutdown.
func (s *Server) closeAll() {
	s.mu.Lock()
	entries := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range entries {
		s.retire(e)
	}
}

// sweepLoop closes idle games until ctx is cancelled.
func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(max(s.opts.IdleTimeout/2, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepIdle(s.now())
		}
	}
}

// sweepIdle closes and records every game last touched before
// now-IdleTimeout. It returns how many games were closed.
func (s *Server) sweepIdle(now time.Time) int {
	cutoff := now.Add(-s.opts.IdleTimeout)

	var idle []*entry
	s.mu.Lock()
	for id, e := range s.sessions {
		e.mu.Lock()
		if e.lastAccess.Before(cutoff) {
			idle = append(idle, e)
			delete(s.sessions, id)
		}
		e.mu.Unlock()
	}
	s.mu.Unlock()

	for _, e := range idle {
		s.retire(e)
	}
	if len(idle) > 0 {
		s.logger.Info("closed idle games", "count", len(idle), "open", s.Sessions())
	}
	return len(idle)
}

// retire closes an entry already removed from the session map and records
// its game.
func (s *Server) retire(e *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	s.record(e.session.Close())
}

// lookup returns the entry for id, or nil.
func (s *Server) lookup(id string) *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// acquire locks e and marks it used. It reports false, with e unlocked,
// when e was closed while the caller waited.
func (s *Server) acquire(e *entry) bool {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false
	}
	e.lastAccess = s.now()
	return true
}

// record saves a finished game. Failures are logged, never returned to clients.
func (s *Server) record(r *game.Result) {
	if err := game.Report(s.opts.Saver, r); err != nil {
		s.logger.Warn("could not save game", "game", r.GameID, "error", err)
	}
}

// Sessions returns the number of open games.
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Debug("could not encode response", "error", err)
	}
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
