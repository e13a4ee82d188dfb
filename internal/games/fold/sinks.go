package fold

import (
	platformcore "github.com/vovakirdan/fold/internal/core"
	"github.com/vovakirdan/fold/internal/games/fold/core"
)

// flashTicks is how long the fold cue highlights the title.
const flashTicks = 12

// hud mirrors what the coordinator reports for display.
type hud struct {
	score       int
	level       int
	undoEnabled bool
	winMessage  string
	winVisible  bool
}

func (h *hud) UpdateHUD(score, level int, undoEnabled bool) {
	h.score, h.level, h.undoEnabled = score, level, undoEnabled
}

func (h *hud) ShowWin(message string) {
	h.winMessage = message
	h.winVisible = true
}

func (h *hud) HidePanels() {
	h.winVisible = false
}

// cue turns fold completions into a title flash and a platform event.
type cue struct {
	flash  int
	events *[]platformcore.Event
}

func (c *cue) FoldCue() {
	c.flash = flashTicks
	*c.events = append(*c.events, platformcore.Event{Kind: platformcore.EventFoldCue})
}

func (c *cue) tick() {
	if c.flash > 0 {
		c.flash--
	}
}

// poses keeps the last animated pose of each block for drawing.
type poses map[core.BlockID]core.Transform

func (p poses) ApplyPose(b *core.Block, world core.Transform) {
	p[b.ID] = world
}

// recorder forwards coordinator events to an outer observer and turns level
// outcomes into platform events.
type recorder struct {
	next   core.Observer
	game   *Game
	events *[]platformcore.Event
}

func (r *recorder) FoldStarted(level int, dir core.Direction) { r.next.FoldStarted(level, dir) }
func (r *recorder) FoldCompleted(level int)                   { r.next.FoldCompleted(level) }
func (r *recorder) InvalidFold(level int)                     { r.next.InvalidFold(level) }
func (r *recorder) Undo(level int)                            { r.next.Undo(level) }

func (r *recorder) LevelWon(level, score, moves int) {
	r.next.LevelWon(level, score, moves)
	*r.events = append(*r.events, platformcore.Event{
		Kind:  platformcore.EventLevelComplete,
		Level: level,
		Score: score,
		Moves: moves,
	})
}

func (r *recorder) LevelSkipped(level int) {
	r.next.LevelSkipped(level)
	*r.events = append(*r.events, platformcore.Event{
		Kind:  platformcore.EventLevelSkipped,
		Level: level,
		Score: r.game.coord.Score(),
		Moves: r.game.coord.Moves(),
	})
}
