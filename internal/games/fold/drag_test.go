package fold

import (
	"testing"

	"github.com/vovakirdan/fold/internal/games/fold/core"
)

func TestClassifyDrag(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		wantDir  core.Direction
		strength float64
	}{
		{"right", 6, 0, core.DirRight, 2},
		{"left", -3, 0, core.DirLeft, 1},
		{"up is negative rows", 0, -3, core.DirUp, 2},
		{"down", 0, 2, core.DirDown, 4.0 / 3},
		{"too short", 2, 0, core.DirNone, 0},
		{"short row still counts double", 0, 1.5, core.DirDown, 1},
		{"diagonal leans right", 5, -1, core.DirRight, 0},
		{"diagonal leans up", 1, -2, core.DirUp, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, strength := ClassifyDrag(tt.dx, tt.dy, 3)
			if dir != tt.wantDir {
				t.Errorf("ClassifyDrag(%v, %v) dir = %v, want %v", tt.dx, tt.dy, dir, tt.wantDir)
			}
			if tt.strength > 0 && !approx(strength, tt.strength) {
				t.Errorf("ClassifyDrag(%v, %v) strength = %v, want %v", tt.dx, tt.dy, strength, tt.strength)
			}
		})
	}
}

func TestClassifyDragZeroThreshold(t *testing.T) {
	if dir, _ := ClassifyDrag(10, 0, 0); dir != core.DirNone {
		t.Errorf("Expected DirNone with zero threshold, got %v", dir)
	}
}

func TestDragTracker(t *testing.T) {
	d := NewDragTracker(3)
	if d.Active() {
		t.Fatal("New tracker should be idle")
	}

	// Moves before Begin are ignored
	d.Move(50, 50)
	if dir, _ := d.Current(); dir != core.DirNone {
		t.Errorf("Idle tracker classified %v", dir)
	}

	d.Begin(10, 10)
	d.Move(12, 10)
	if dir, _ := d.Current(); dir != core.DirNone {
		t.Errorf("Short drag classified %v", dir)
	}
	d.Move(17, 10)
	if dir, _ := d.Current(); dir != core.DirRight {
		t.Errorf("Expected Right mid-drag, got %v", dir)
	}

	dir, strength := d.End(10, 4)
	if dir != core.DirUp {
		t.Errorf("Expected release to classify Up, got %v", dir)
	}
	if !approx(strength, 4) {
		t.Errorf("Expected strength 4, got %v", strength)
	}
	if d.Active() {
		t.Error("Tracker should be idle after End")
	}
	if x, y := d.Start(); x != 10 || y != 10 {
		t.Errorf("Start = (%d,%d), want (10,10)", x, y)
	}
}

func TestDragTrackerCancel(t *testing.T) {
	d := NewDragTracker(3)
	d.Begin(0, 0)
	d.Cancel()
	if dir, _ := d.End(20, 0); dir != core.DirNone {
		t.Errorf("Cancelled drag classified %v", dir)
	}
}

func approx(a, b float64) bool {
	const eps = 1e-9
	return a-b < eps && b-a < eps
}
