package fold

import (
	"fmt"
	"strings"
)

// Snapshot is a comparable summary of the game, used for determinism
// checks and debug dumps.
type Snapshot struct {
	Tick   uint64
	Level  int
	Score  int
	Moves  int
	Folded int
	Won    bool
	Board  string // One "id kind cell pos" line per block
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() Snapshot {
	if g.coord == nil {
		return Snapshot{Tick: g.tick}
	}
	var sb strings.Builder
	for _, b := range g.coord.Blocks() {
		p := b.World().Position
		fmt.Fprintf(&sb, "%d %s %s (%.3f,%.3f,%.3f)\n", b.ID, b.Kind, b.Cell, p.X, p.Y, p.Z)
	}
	return Snapshot{
		Tick:   g.tick,
		Level:  g.coord.Level(),
		Score:  g.coord.Score(),
		Moves:  g.coord.Moves(),
		Folded: g.coord.FoldedCount(),
		Won:    g.coord.Won(),
		Board:  sb.String(),
	}
}
