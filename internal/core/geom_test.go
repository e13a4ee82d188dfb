package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.Centered(20, 10)

	if inner != NewRect(30, 7, 20, 10) {
		t.Errorf("Centered = %+v", inner)
	}
	cx, cy := inner.Center()
	if cx != 40 || cy != 12 {
		t.Errorf("Center = (%d, %d), expected (40, 12)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionUndo)
	f.AddPointer(PointerDown, 3, 4)
	clone := f.Clone()

	f.Clear()
	if !f.Empty() {
		t.Error("cleared frame should be empty")
	}
	if !clone.Has(ActionUndo) || len(clone.Pointer) != 1 {
		t.Errorf("clone should keep input, got %+v", clone)
	}
	if clone.Pointer[0] != (PointerEvent{Kind: PointerDown, X: 3, Y: 4}) {
		t.Errorf("pointer = %+v", clone.Pointer[0])
	}
}
