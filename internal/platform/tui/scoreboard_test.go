package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/r2048/internal/storage"
)

type fakeSource struct {
	games []storage.GameRecord
	stats *storage.Stats
	err   error
	loads int
}

func (f *fakeSource) TopScores(limit int) ([]storage.GameRecord, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.games) > limit {
		return f.games[:limit], nil
	}
	return f.games, nil
}

func (f *fakeSource) Stats() (*storage.Stats, error) {
	return f.stats, nil
}

func TestScoreRows(t *testing.T) {
	when := time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC)
	rows := scoreRows([]storage.GameRecord{
		{Score: 20480, MaxTile: 2048, Moves: 900, Origin: "ssh", Lost: true, CreatedAt: when},
		{Score: 12, MaxTile: 8, Moves: 5, Origin: "tui"},
	})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	want := []string{"#1", "20480 ✗", "2048", "900", "ssh", "Mar 04 10:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 col %d = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][0] != "#2" || rows[1][1] != "12" || rows[1][5] != "-" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestScoreboardView(t *testing.T) {
	src := &fakeSource{
		games: []storage.GameRecord{{Score: 4096, MaxTile: 512, Moves: 300, Origin: "tui"}},
		stats: &storage.Stats{GamesCount: 7, HighScore: 4096, BestTile: 512},
	}

	wide := NewScoreboardModel(src, 100, 30).View()
	for _, s := range []string{"HIGH SCORES", "4096", "Games:  7", "Stats"} {
		if !strings.Contains(wide, s) {
			t.Errorf("wide view should contain %q", s)
		}
	}

	narrow := NewScoreboardModel(src, 60, 30).View()
	if strings.Contains(narrow, "Stats") {
		t.Error("narrow view should not show the sidebar")
	}
	if !strings.Contains(narrow, "7 games") {
		t.Error("narrow view should show the stats line")
	}
}

func TestScoreboardEmptyAndErrors(t *testing.T) {
	if v := NewScoreboardModel(nil, 80, 24).View(); !strings.Contains(v, "No games recorded yet") {
		t.Error("nil source should show the empty message")
	}

	src := &fakeSource{err: errors.New("database is locked")}
	if v := NewScoreboardModel(src, 80, 24).View(); !strings.Contains(v, "database is locked") {
		t.Error("load errors should be shown")
	}
}

func TestScoreboardRefreshAndQuit(t *testing.T) {
	src := &fakeSource{}
	m := NewScoreboardModel(src, 80, 24)
	if src.loads != 1 {
		t.Fatalf("loads = %d, want 1", src.loads)
	}

	src.games = []storage.GameRecord{{Score: 64, MaxTile: 32, Moves: 10}}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(ScoreboardModel)
	if src.loads != 2 || len(m.games) != 1 {
		t.Errorf("refresh should reload scores, loads=%d games=%d", src.loads, len(m.games))
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(ScoreboardModel)
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestScoreboardResize(t *testing.T) {
	m := NewScoreboardModel(&fakeSource{}, 60, 24)
	if m.showSidebar {
		t.Fatal("sidebar should be hidden at width 60")
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if !next.(ScoreboardModel).showSidebar {
		t.Error("sidebar should be shown after widening")
	}
}
