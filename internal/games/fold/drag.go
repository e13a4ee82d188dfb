package fold

import (
	"math"

	"github.com/vovakirdan/fold/internal/games/fold/core"
)

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

// ClassifyDrag turns a screen-space drag into a fold direction and strength.
// dy grows downward, as terminal rows do. Drags shorter than threshold
// (measured in column widths) give DirNone.
//
// Directions follow angular sectors of the drag vector:
// [315,45) Right, [45,135) Up, [135,225) Left, [225,315) Down.
func ClassifyDrag(dx, dy, threshold float64) (core.Direction, float64) {
	vx, vy := dx, -dy*cellAspect
	mag := math.Hypot(vx, vy)
	if threshold <= 0 || mag < threshold {
		return core.DirNone, 0
	}

	angle := math.Atan2(vy, vx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	var dir core.Direction
	switch {
	case angle >= 315 || angle < 45:
		dir = core.DirRight
	case angle < 135:
		dir = core.DirUp
	case angle < 225:
		dir = core.DirLeft
	default:
		dir = core.DirDown
	}
	return dir, mag / threshold
}

// DragTracker follows one pointer gesture from press to release.
type DragTracker struct {
	threshold      float64
	active         bool
	startX, startY int
	curX, curY     int
}

// NewDragTracker creates a tracker with the given drag threshold in columns.
func NewDragTracker(threshold float64) *DragTracker {
	return &DragTracker{threshold: threshold}
}

// Begin starts a gesture at (x, y).
func (d *DragTracker) Begin(x, y int) {
	d.active = true
	d.startX, d.startY = x, y
	d.curX, d.curY = x, y
}

// Move updates the current pointer position.
func (d *DragTracker) Move(x, y int) {
	if d.active {
		d.curX, d.curY = x, y
	}
}

// Active reports whether a gesture is in progress.
func (d *DragTracker) Active() bool {
	return d.active
}

// Start returns where the gesture began.
func (d *DragTracker) Start() (int, int) {
	return d.startX, d.startY
}

// Current classifies the gesture so far.
func (d *DragTracker) Current() (core.Direction, float64) {
	if !d.active {
		return core.DirNone, 0
	}
	return ClassifyDrag(float64(d.curX-d.startX), float64(d.curY-d.startY), d.threshold)
}

// End finishes the gesture at (x, y) and classifies it.
func (d *DragTracker) End(x, y int) (core.Direction, float64) {
	d.Move(x, y)
	dir, strength := d.Current()
	d.active = false
	return dir, strength
}

// Cancel drops the gesture without classifying it.
func (d *DragTracker) Cancel() {
	d.active = false
}
