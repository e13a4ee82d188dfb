package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fold/internal/core"
)

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionSelect},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")}, core.ActionUndo},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, core.ActionSkip},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestPointer(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.MouseMsg
		want   core.PointerKind
		wantOK bool
	}{
		{"left press", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, core.PointerDown, true},
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, 0, false},
		{"motion", tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, core.PointerMove, true},
		{"release", tea.MouseMsg{Action: tea.MouseActionRelease}, core.PointerUp, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := Pointer(tt.msg)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && ev.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", ev.Kind, tt.want)
			}
		})
	}
	if ev, _ := Pointer(tests[0].msg); ev.X != 3 || ev.Y != 4 {
		t.Errorf("Pointer position = (%d,%d), want (3,4)", ev.X, ev.Y)
	}
}
