// Package game drives a single 2048 board: it translates actions into engine
// operations, owns the info overlay and the loss policy, and reports finished
// games so front ends can record them.
package game

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/r2048/internal/board"
	"github.com/vovakirdan/r2048/internal/core"
)

// Options configures a Session.
type Options struct {
	// Source supplies spawn randomness. Nil seeds one from the OS.
	Source board.Source

	// Spawn4Probability is the chance a spawned tile is a 4.
	// Zero selects board.DefaultSpawn4Probability.
	Spawn4Probability float64

	// LossPolicy defaults to LossPolicyLock.
	LossPolicy LossPolicy

	// DevelBoard starts the first game on board.DevelGrid instead of a
	// random spawn. Later games started with Reset are random.
	DevelBoard bool

	// Origin tags results with the front end that played them ("tui", "ssh", "http").
	Origin string
}

// Outcome tells the front end what an action changed.
type Outcome struct {
	Redraw   bool
	Quit     bool
	Finished *Result
}

// View is a read-only snapshot of a session for renderers.
type View struct {
	SessionID string     `json:"session_id"`
	GameID    string     `json:"game_id"`
	Cells     board.Grid `json:"cells"`
	Score     uint64     `json:"score"`
	Loss      bool       `json:"loss"`
	ShowInfo  bool       `json:"show_info"`
	Locked    bool       `json:"locked"`
	MaxTile   uint64     `json:"max_tile"`
	Moves     int        `json:"moves"`
	LastSpawn int        `json:"last_spawn"`
}

// Session owns one board at a time. It is not safe for concurrent use.
type Session struct {
	id   string
	opts Options

	board    *board.Board
	gameID   string
	moves    int
	showInfo bool
	locked   bool
	reported bool
}

// NewSession creates a session and starts its first game.
func NewSession(opts Options) *Session {
	if opts.Source == nil {
		opts.Source = board.NewRandomSource()
	}
	if opts.Spawn4Probability <= 0 {
		opts.Spawn4Probability = board.DefaultSpawn4Probability
	}
	if opts.LossPolicy == "" {
		opts.LossPolicy = LossPolicyLock
	}

	s := &Session{
		id:   uuid.NewString(),
		opts: opts,
	}

	if opts.DevelBoard {
		b, err := board.FromGrid(board.DevelGrid(), opts.Source, s.boardOptions()...)
		if err == nil {
			s.start(b)
			return s
		}
	}
	s.start(board.New(opts.Source, s.boardOptions()...))
	return s
}

func (s *Session) boardOptions() []board.Option {
	return []board.Option{board.WithSpawn4Probability(s.opts.Spawn4Probability)}
}

func (s *Session) start(b *board.Board) {
	s.board = b
	s.gameID = uuid.NewString()
	s.moves = 0
	s.locked = false
	s.reported = false
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Apply runs one decoded input action.
//
// While the info overlay is shown only ActionQuit is honoured, and it closes
// the overlay instead of quitting. Move errors are board.ErrIllegalMove and
// ErrLocked; both leave the session unchanged.
func (s *Session) Apply(a core.Action) (Outcome, error) {
	if s.showInfo {
		if a == core.ActionQuit {
			s.showInfo = false
			return Outcome{Redraw: true}, nil
		}
		return Outcome{}, nil
	}

	switch a {
	case core.ActionMoveUp:
		return s.Move(board.Up)
	case core.ActionMoveDown:
		return s.Move(board.Down)
	case core.ActionMoveLeft:
		return s.Move(board.Left)
	case core.ActionMoveRight:
		return s.Move(board.Right)
	case core.ActionReset:
		return s.Reset(), nil
	case core.ActionQuit:
		return Outcome{Quit: true, Finished: s.finish()}, nil
	case core.ActionShowInfo:
		s.showInfo = true
		return Outcome{Redraw: true}, nil
	}

	return Outcome{}, nil
}

// Move slides the board toward dir.
func (s *Session) Move(dir board.Direction) (Outcome, error) {
	if s.locked {
		return Outcome{}, ErrLocked
	}
	if err := s.board.Move(dir); err != nil {
		return Outcome{}, err
	}
	s.moves++

	out := Outcome{Redraw: true}
	if s.board.IsLoss() {
		if s.opts.LossPolicy == LossPolicyLock {
			s.locked = true
		}
		out.Finished = s.finish()
	}
	return out, nil
}

// Reset replaces the board with a fresh one holding a single spawned tile.
// The replaced game is reported unless it was already reported on loss.
func (s *Session) Reset() Outcome {
	finished := s.finish()
	s.start(board.New(s.opts.Source, s.boardOptions()...))
	return Outcome{Redraw: true, Finished: finished}
}

// Close reports the current game as finished. It is the non-interactive
// counterpart of ActionQuit.
func (s *Session) Close() *Result {
	return s.finish()
}

// finish returns the current game's result once. Games with no successful
// move are not reported.
func (s *Session) finish() *Result {
	if s.reported || s.moves == 0 {
		return nil
	}
	s.reported = true

	g := s.board.Grid()
	return &Result{
		GameID:  s.gameID,
		Origin:  s.opts.Origin,
		Score:   s.board.Score(),
		MaxTile: g.MaxTile(),
		Moves:   s.moves,
		Lost:    s.board.IsLoss(),
	}
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	g := s.board.Grid()
	return View{
		SessionID: s.id,
		GameID:    s.gameID,
		Cells:     g,
		Score:     s.board.Score(),
		Loss:      s.board.IsLoss(),
		ShowInfo:  s.showInfo,
		Locked:    s.locked,
		MaxTile:   g.MaxTile(),
		Moves:     s.moves,
		LastSpawn: s.board.LastSpawn(),
	}
}

// LossPolicy returns the policy the session was created with.
func (s *Session) LossPolicy() LossPolicy {
	return s.opts.LossPolicy
}
