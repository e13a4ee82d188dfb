package fold

import (
	"fmt"
	"math"
	"strings"

	platformcore "github.com/vovakirdan/fold/internal/core"
	"github.com/vovakirdan/fold/internal/games/fold/core"
)

const (
	hudHeight    = 4 // Title, separator, controls, separator
	footerHeight = 1
)

// boardSpan returns the lowest and highest cell coordinate on an n×n board.
// It matches the centring used by core.GridCells.
func boardSpan(n int) (lo, hi int) {
	n = max(n, 1)
	shift := int(math.RoundToEven(float64(n-1) / 2))
	return -shift, n - 1 - shift
}

// boardRect returns the screen area covered by the tiles.
func (g *Game) boardRect() platformcore.Rect {
	n := max(g.coord.GridSize(), 1)
	w := n * g.settings.Display.TileWidth
	h := n * g.settings.Display.TileHeight
	area := platformcore.NewRect(0, hudHeight, g.screenW, max(g.screenH-hudHeight-footerHeight, 0))
	return area.Centered(w, h)
}

// tileRect returns the screen rectangle of a board cell.
func (g *Game) tileRect(c core.Coord) platformcore.Rect {
	lo, hi := boardSpan(g.coord.GridSize())
	board := g.boardRect()
	tw, th := g.settings.Display.TileWidth, g.settings.Display.TileHeight
	return platformcore.NewRect(board.X+(c.X-lo)*tw, board.Y+(hi-c.Z)*th, tw, th)
}

// cellAt maps a screen position to a board cell. Higher Z is drawn higher up.
func (g *Game) cellAt(x, y int) (core.Coord, bool) {
	if g.coord == nil || g.coord.GridSize() == 0 {
		return core.Coord{}, false
	}
	board := g.boardRect()
	if !board.Contains(x, y) {
		return core.Coord{}, false
	}
	lo, hi := boardSpan(g.coord.GridSize())
	col := (x - board.X) / g.settings.Display.TileWidth
	row := (y - board.Y) / g.settings.Display.TileHeight
	return core.C(lo+col, hi-row), true
}

// pose returns the pose a block should be drawn at.
func (g *Game) pose(b *core.Block) core.Transform {
	if p, ok := g.poses[b.ID]; ok {
		return p
	}
	return b.World()
}

// column is what is visible in one board cell: the highest block and
// how many blocks share the cell.
type column struct {
	top    *core.Block
	height float64
	count  int
}

func (g *Game) columns() map[core.Coord]*column {
	size := g.coord.Config().Settings.BlockSize
	if size <= 0 {
		size = 1
	}
	cols := make(map[core.Coord]*column)
	for _, b := range g.coord.Blocks() {
		p := g.pose(b).Position
		cell := core.C(int(math.Round(p.X/size)), int(math.Round(p.Z/size)))
		col, ok := cols[cell]
		if !ok {
			col = &column{}
			cols[cell] = col
		}
		col.count++
		if col.top == nil || p.Y > col.height {
			col.top, col.height = b, p.Y
		}
	}
	return cols
}

// prunePoses forgets poses of blocks that have come to rest.
func (g *Game) prunePoses() {
	for id := range g.poses {
		e := g.coord.Engine(id)
		if e == nil || (!e.Folding() && !e.Shaking()) {
			delete(g.poses, id)
		}
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.coord == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)
	g.renderFooter(dst)

	switch {
	case g.hud.winVisible:
		lines := strings.Split(g.hud.winMessage, "\n")
		g.renderOverlay(dst, lines...)
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	title := " " + g.Title()
	color := platformcore.ColorHUD
	if g.cue.flash > 0 {
		title += " *"
		color = platformcore.ColorWin
	}
	hud := fmt.Sprintf("%s | Score: %d | Level: %d | Moves: %d",
		title, g.hud.score, g.hud.level, g.coord.Moves())
	dst.DrawTextColored(0, 0, hud, color)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', platformcore.ColorDim)
	}

	var controls string
	if g.holding {
		controls = " [GRAB] ←↑↓→: Fold | Space: Release | U: Undo | N: Skip"
	} else {
		controls = " ←↑↓→: Move | Space: Grab | Drag: Fold | U: Undo | N: Skip | P: Pause"
	}
	dst.DrawTextColored(0, 2, controls, platformcore.ColorDim)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 3, '─', platformcore.ColorDim)
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen) {
	lo, hi := boardSpan(g.coord.GridSize())
	cols := g.columns()

	for x := lo; x <= hi; x++ {
		for z := lo; z <= hi; z++ {
			cell := core.C(x, z)
			r := g.tileRect(cell)
			col, ok := cols[cell]
			if !ok {
				cx, cy := r.Center()
				dst.SetColored(cx, cy, '·', platformcore.ColorDim)
				if cell == g.cursor {
					dst.DrawBox(r, platformcore.ColorCursor)
				}
				continue
			}
			g.renderTile(dst, r, cell, col)
		}
	}
}

func (g *Game) renderTile(dst *platformcore.Screen, r platformcore.Rect, cell core.Coord, col *column) {
	b := col.top
	border := g.tileColor(b)
	switch {
	case g.engineShaking(b.ID):
		border = platformcore.ColorInvalid
	case g.holding && b.ID == g.grabbed:
		border = platformcore.ColorGrab
	case cell == g.cursor:
		border = platformcore.ColorCursor
	}
	dst.DrawBox(r, border)

	label := string(b.Kind.Rune())
	if col.count > 1 {
		label += fmt.Sprintf("%d", col.count)
	}
	cx, cy := r.Center()
	dst.DrawTextColored(cx-len(label)/2, cy, label, kindColor(b.Kind))
}

// tileColor picks the border role of the visible block.
func (g *Game) tileColor(b *core.Block) platformcore.Color {
	switch {
	case b.State.Folded:
		return platformcore.ColorFolded
	case !b.State.Selectable:
		return platformcore.ColorLocked
	default:
		return kindColor(b.Kind)
	}
}

func kindColor(k core.Kind) platformcore.Color {
	switch k {
	case core.KindBottom:
		return platformcore.ColorBottom
	case core.KindTop:
		return platformcore.ColorTop
	default:
		return platformcore.ColorFiller
	}
}

func (g *Game) engineShaking(id core.BlockID) bool {
	e := g.coord.Engine(id)
	return e != nil && e.Shaking()
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	undo := "Undo: -"
	if g.hud.undoEnabled {
		undo = "Undo: U"
	}
	fillers := len(g.coord.Blocks()) - 2
	status := fmt.Sprintf(" Folded %d/%d | %s", g.coord.FoldedCount(), max(fillers, 0), undo)
	dst.DrawTextColored(0, dst.Height()-1, status, platformcore.ColorDim)
}

// renderOverlay draws a centred box with the given lines.
func (g *Game) renderOverlay(dst *platformcore.Screen, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := dst.Bounds().Centered(w+6, len(lines)+4)
	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWin)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+2+i, l, platformcore.ColorWin)
	}
}
