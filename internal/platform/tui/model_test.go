package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/r2048/internal/board"
	"github.com/vovakirdan/r2048/internal/core"
	"github.com/vovakirdan/r2048/internal/game"
)

type fakeScores struct {
	high  uint64
	saved []game.Result
}

func (f *fakeScores) SaveResult(r game.Result) error {
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeScores) HighScore() (uint64, error) {
	return f.high, nil
}

func newTestModel(t *testing.T, scores ScoreStore, highlight int) Model {
	t.Helper()
	session := game.NewSession(game.Options{Source: board.NewSource(11), Origin: "tui"})
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60}
	return NewModel(session, scores, cfg, Options{HighlightTicks: highlight})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

// playUntilMoved presses arrows until one of them changes the board.
func playUntilMoved(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	for _, k := range []tea.KeyType{tea.KeyLeft, tea.KeyUp, tea.KeyRight, tea.KeyDown} {
		before := m.Session().View().Moves
		next, cmd := update(t, m, tea.KeyMsg{Type: k})
		if next.Session().View().Moves > before {
			return next, cmd
		}
		m = next
	}
	t.Fatal("no arrow key changed the board")
	return m, nil
}

func TestModelLoadsBestScore(t *testing.T) {
	m := newTestModel(t, &fakeScores{high: 4096}, 0)

	if !strings.Contains(m.View(), "Best: 4096") {
		t.Error("best score from the store should be shown")
	}
}

func TestModelMoveStartsHighlight(t *testing.T) {
	m := newTestModel(t, nil, 3)

	if m.Init() == nil {
		t.Error("Init should start the highlight of the first tile")
	}

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, TickMsg{})
	if cmd != nil || m.glow != 0 {
		t.Fatalf("highlight should stop after 3 ticks, glow = %d", m.glow)
	}

	m, cmd = playUntilMoved(t, m)
	if cmd == nil {
		t.Error("a successful move should restart the tick loop")
	}
	if m.glow != 3 {
		t.Errorf("glow = %d, expected 3", m.glow)
	}

	_, cmd = playUntilMoved(t, m)
	if cmd != nil {
		t.Error("a running tick loop must not be started twice")
	}
}

func TestModelNoHighlight(t *testing.T) {
	m := newTestModel(t, nil, 0)

	if m.Init() != nil {
		t.Error("Init should not tick without a highlight")
	}
	if _, cmd := playUntilMoved(t, m); cmd != nil {
		t.Error("moves should not tick without a highlight")
	}
}

func TestModelResetRecordsScore(t *testing.T) {
	scores := &fakeScores{}
	m := newTestModel(t, scores, 0)

	// Play until something merged so the game has a score.
	for i := 0; i < 200 && m.Session().View().Score == 0; i++ {
		m, _ = playUntilMoved(t, m)
	}
	score := m.Session().View().Score
	if score == 0 {
		t.Fatal("no merge after 200 moves")
	}

	m, _ = update(t, m, runeKey("r"))
	if len(scores.saved) != 1 || scores.saved[0].Score != score {
		t.Fatalf("reset should record the finished game, saved %+v", scores.saved)
	}
	if scores.saved[0].Origin != "tui" {
		t.Errorf("origin = %q, expected tui", scores.saved[0].Origin)
	}
	if m.best != score {
		t.Errorf("best = %d, expected %d", m.best, score)
	}
	if m.Session().View().Moves != 0 {
		t.Error("reset should start a new game")
	}
}

func TestModelInfoOverlayAndQuit(t *testing.T) {
	m := newTestModel(t, nil, 0)

	m, _ = update(t, m, runeKey("?"))
	if !m.Session().View().ShowInfo {
		t.Fatal("? should open the info overlay")
	}

	m, cmd := update(t, m, runeKey("q"))
	if cmd != nil || m.quitting {
		t.Fatal("q with the overlay open should only close it")
	}
	if m.Session().View().ShowInfo {
		t.Error("overlay should be closed")
	}

	m, cmd = update(t, m, runeKey("q"))
	if cmd == nil || !m.quitting {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("a quitting model renders nothing")
	}
}

func TestModelCtrlCQuitsThroughOverlay(t *testing.T) {
	scores := &fakeScores{}
	m := newTestModel(t, scores, 0)

	m, _ = update(t, m, runeKey("i"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !m.quitting {
		t.Error("ctrl+c should quit even with the overlay open")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, nil, 0)
	before := m.Session().View()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 100x39", m.screen.Width(), m.screen.Height())
	}
	if m.Session().View().Cells != before.Cells {
		t.Error("resizing must not reset the board")
	}
}
