package core

import (
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '█', ColorTop)
	if got := s.GetCell(5, 5); got.Rune != '█' || got.Color != ColorTop {
		t.Errorf("GetCell(5, 5) = %+v, expected top tile", got)
	}

	s.Set(5, 5, 'X')
	if got := s.GetCell(5, 5); got.Color != ColorDefault {
		t.Errorf("Set should reset colour, got %v", got.Color)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"fits", 0, "Score", "Score     "},
		{"clipped", 7, "Level", "       Lev"},
		{"multibyte", 1, "→ok", " →ok      "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(10, 1)
			s.DrawTextColored(tt.x, 0, tt.text, ColorHUD)
			if got := s.Row(0); got != tt.want {
				t.Errorf("Row(0) = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "WIN", ColorWin)

	if got := s.Row(0); got != "    WIN    " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(4, 0).Color != ColorWin {
		t.Error("centred text should carry its colour")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorDim)

	want := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}

	// Degenerate boxes draw nothing.
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 3), ColorDim)
	if s.Get(0, 0) != ' ' {
		t.Error("1-wide box should not draw")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawRect(NewRect(1, 1, 3, 1), '▒', ColorFiller)

	if got := s.Row(1); got != " ▒▒▒ " {
		t.Errorf("Row(1) = %q", got)
	}
	if got := s.Row(0); got != "     " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	want := "ab\nef\n  "
	if got := s.String(); got != want {
		t.Errorf("after shrink String() = %q, expected %q", got, want)
	}

	s.Resize(3, 1)
	if got := s.Row(0); got != "ab " {
		t.Errorf("after grow Row(0) = %q", got)
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected blanks", got)
	}
}
