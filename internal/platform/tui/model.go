package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/r2048/internal/core"
	"github.com/vovakirdan/r2048/internal/game"
)

// ScoreStore records finished games and reports the best score so far.
// *storage.Store satisfies it.
type ScoreStore interface {
	game.ResultSaver
	HighScore() (uint64, error)
}

// Options tunes a Model.
type Options struct {
	// HighlightTicks is how many ticks a freshly spawned tile stays highlighted.
	// Zero disables the highlight and the tick loop with it.
	HighlightTicks int
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	session  *game.Session
	scores   ScoreStore
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	opts     Options
	best     uint64
	glow     int // ticks left on the spawn highlight
	quitting bool
}

// NewModel creates a model driving session. scores may be nil.
func NewModel(session *game.Session, scores ScoreStore, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	var best uint64
	if scores != nil {
		if hs, err := scores.HighScore(); err == nil {
			best = hs
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		session: session,
		scores:  scores,
		screen:  core.NewScreen(cfg.ScreenW, screenHeight(cfg.ScreenH)),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    h,
		opts:    opts,
		best:    best,
		glow:    opts.HighlightTicks,
	}
}

// screenHeight leaves the last line for the help view.
func screenHeight(h int) int {
	return max(0, h-1)
}

// Init starts the highlight animation of the first tile.
func (m Model) Init() tea.Cmd {
	if m.glow > 0 {
		return tickCmd(m.config.TickRate)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, screenHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.glow > 0 {
			m.glow--
		}
		if m.glow > 0 {
			return m, tickCmd(m.config.TickRate)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C quits even when the info overlay is open.
	if msg.String() == "ctrl+c" {
		m.record(m.session.Close())
		m.quitting = true
		return m, tea.Quit
	}

	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}

	// Illegal and locked moves change nothing and need no feedback.
	out, err := m.session.Apply(action)
	if err != nil {
		return m, nil
	}

	m.record(out.Finished)

	if out.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	if out.Redraw && (action.IsMove() || action == core.ActionReset) {
		return m, m.startGlow()
	}
	return m, nil
}

// startGlow restarts the spawn highlight. A tick loop is only started when
// none is running.
func (m *Model) startGlow() tea.Cmd {
	running := m.glow > 0
	m.glow = m.opts.HighlightTicks
	if running || m.glow == 0 {
		return nil
	}
	return tickCmd(m.config.TickRate)
}

// record saves a finished game and updates the best score.
func (m *Model) record(r *game.Result) {
	if r == nil {
		return
	}
	m.best = max(m.best, r.Score)
	if m.scores != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		game.Report(m.scores, r)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.session.View()
	highlight := -1
	if m.glow > 0 {
		highlight = v.LastSpawn
	}

	drawGame(m.screen, v, m.best, highlight)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Session returns the session driven by the model.
func (m Model) Session() *game.Session {
	return m.session
}

// Run starts the Bubble Tea program for session on the local terminal.
func Run(session *game.Session, scores ScoreStore, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(session, scores, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
