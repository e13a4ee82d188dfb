package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/fold/internal/storage"
)

func TestScoreboardSwitchesModeAndView(t *testing.T) {
	store := openStore(t)
	store.SaveScore("fold", 1200)
	store.SaveScore("fold_practice", 90)
	if _, err := store.SaveLevelResult(storage.LevelResult{
		RunID: uuid.New(), GameID: "fold_practice", Level: 2, Score: 90, Moves: 7,
	}); err != nil {
		t.Fatalf("SaveLevelResult: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.Mode() != "fold" {
		t.Fatalf("initial mode = %q", m.Mode())
	}
	if !strings.Contains(m.View(), "1200") {
		t.Error("expected campaign score in view")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Mode() != "fold_practice" {
		t.Fatalf("mode after tab = %q", m.Mode())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	m = next.(ScoreboardModel)
	if !m.ShowingLevels() {
		t.Fatal("expected level view after v")
	}
	if !strings.Contains(m.View(), "won") {
		t.Error("expected level result row in view")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "not being recorded") {
		t.Error("expected no-store message")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if sb := next.(ScoreboardModel); !sb.IsGoingBack() || sb.IsQuitting() {
		t.Error("esc should go back")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if sb := next.(ScoreboardModel); !sb.IsQuitting() {
		t.Error("q should quit")
	}
}
