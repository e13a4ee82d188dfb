package tui

import (
	"bytes"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fold/internal/config"
	"github.com/vovakirdan/fold/internal/core"
	_ "github.com/vovakirdan/fold/internal/games/fold"
	"github.com/vovakirdan/fold/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	game, err := NewGame("fold", config.DefaultFoldConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if opts.Config.ScreenW == 0 {
		opts.Config = core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 1, StartLevel: 1}
	}
	m := NewModel(game, opts)
	m.Init()
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	return next.(Model)
}

func TestNewModelReservesHelpRow(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.screen.Height() != 39 {
		t.Errorf("Expected screen height 39, got %d", m.screen.Height())
	}
}

func TestSkipSavesLevelResult(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, Options{Store: store})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	if m.gameState.Level != 2 {
		t.Fatalf("Expected level 2 after skip, got %d", m.gameState.Level)
	}
	results, err := store.RunResults(m.RunID())
	if err != nil {
		t.Fatalf("RunResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 level result, got %d", len(results))
	}
	if !results[0].Skipped || results[0].Level != 1 || results[0].GameID != "fold" {
		t.Errorf("Unexpected result %+v", results[0])
	}
}

func TestQuitStopsProgram(t *testing.T) {
	m := newTestModel(t, Options{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).IsQuitting() {
		t.Error("Expected quitting")
	}
	if cmd == nil {
		t.Error("Expected tea.Quit command")
	}
}

func TestEmbeddedQuitReturnsToMenu(t *testing.T) {
	m := newTestModel(t, Options{Embedded: true})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	got := next.(Model)
	if !got.BackToMenu() || got.IsQuitting() {
		t.Error("Embedded quit should only leave the game")
	}
	if cmd != nil {
		t.Error("Embedded quit should not stop the program")
	}
}

func TestRestartStartsNewRun(t *testing.T) {
	m := newTestModel(t, Options{})
	first := m.RunID()
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.RunID() == first {
		t.Error("Expected a new run ID after restart")
	}
}

func TestBellRingsOnFoldCue(t *testing.T) {
	var out bytes.Buffer
	m := newTestModel(t, Options{Bell: true, BellOut: &out})
	m.handleEvents([]core.Event{{Kind: core.EventFoldCue}})
	if out.String() != "\a" {
		t.Errorf("Expected a bell, got %q", out.String())
	}

	out.Reset()
	quiet := newTestModel(t, Options{BellOut: &out})
	quiet.handleEvents([]core.Event{{Kind: core.EventFoldCue}})
	if out.Len() != 0 {
		t.Error("Bell should be off by default")
	}
}

func TestMousePressBecomesPointer(t *testing.T) {
	m := newTestModel(t, Options{})
	next, _ := m.Update(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	got := next.(Model)
	if len(got.inputFrame.Pointer) != 1 || got.inputFrame.Pointer[0].Kind != core.PointerDown {
		t.Errorf("Expected one pointer down, got %+v", got.inputFrame.Pointer)
	}
}

func TestSessionOpensGameFromMenu(t *testing.T) {
	s := NewSessionModel(SessionDeps{Settings: config.DefaultFoldConfig()},
		core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 1, StartLevel: 1})

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.current != screenGame {
		t.Fatalf("Expected game screen, got %v", s.current)
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	s = next.(SessionModel)
	if s.current != screenMenu || s.quitting {
		t.Errorf("Expected quitting the game to return to the menu")
	}
}
