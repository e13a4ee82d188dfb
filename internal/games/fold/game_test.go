package fold

import (
	"testing"

	"github.com/vovakirdan/fold/internal/config"
	platformcore "github.com/vovakirdan/fold/internal/core"
	"github.com/vovakirdan/fold/internal/games/fold/core"
	"github.com/vovakirdan/fold/internal/registry"
)

func testConfig(seed int64) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{
		ScreenW:    80,
		ScreenH:    40,
		TickRate:   60,
		Seed:       seed,
		StartLevel: 1,
	}
}

// foldable returns a filler and a direction it can currently fold in.
func foldable(t *testing.T, g *Game) (*core.Block, core.Direction) {
	t.Helper()
	for _, b := range g.coord.Blocks() {
		if b.Kind != core.KindFiller {
			continue
		}
		for _, d := range core.Directions {
			if g.coord.CanFold(b.ID, d) {
				return b, d
			}
		}
	}
	t.Fatal("No foldable filler on the board")
	return nil, core.DirNone
}

// settle steps the game until no block is animating.
func settle(t *testing.T, g *Game) []platformcore.Event {
	t.Helper()
	var events []platformcore.Event
	in := platformcore.NewInputFrame()
	for i := 0; i < 600 && g.coord.Busy(); i++ {
		res := g.Step(in)
		events = append(events, res.Events...)
	}
	if g.coord.Busy() {
		t.Fatal("Board never settled")
	}
	return events
}

func directionAction(d core.Direction) platformcore.Action {
	switch d {
	case core.DirUp:
		return platformcore.ActionUp
	case core.DirDown:
		return platformcore.ActionDown
	case core.DirLeft:
		return platformcore.ActionLeft
	default:
		return platformcore.ActionRight
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"fold", "fold_practice"} {
		if !registry.Exists(id) {
			t.Errorf("Mode %q not registered", id)
		}
	}
	g, err := registry.Create("fold_practice")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "fold_practice" {
		t.Errorf("ID = %q", g.ID())
	}
}

func TestResetStartsLevel(t *testing.T) {
	g := New()
	g.Reset(testConfig(7))

	st := g.State()
	if st.Level != 1 {
		t.Errorf("Expected level 1, got %d", st.Level)
	}
	if st.Score != 0 || st.Moves != 0 {
		t.Errorf("Expected fresh score and moves, got %d/%d", st.Score, st.Moves)
	}
	if got, want := len(g.coord.Blocks()), 2+core.FillerCount(1); got != want {
		t.Errorf("Expected %d blocks, got %d", want, got)
	}
}

func TestResetUsesConfiguredStartLevel(t *testing.T) {
	g := New()
	cfg := config.DefaultFoldConfig()
	cfg.Difficulty.StartLevel = 3
	g.Configure(cfg, nil, nil)

	rc := testConfig(1)
	rc.StartLevel = 0
	g.Reset(rc)

	if g.State().Level != 3 {
		t.Errorf("Expected level 3, got %d", g.State().Level)
	}
}

func TestDeterminism(t *testing.T) {
	g1 := New()
	g1.Reset(testConfig(12345))
	g2 := New()
	g2.Reset(testConfig(12345))

	b, d := foldable(t, g1)
	for _, g := range []*Game{g1, g2} {
		g.cursor = b.Cell
		in := platformcore.NewInputFrame()
		in.Set(platformcore.ActionSelect)
		g.Step(in)
		in.Clear()
		in.Set(directionAction(d))
		g.Step(in)
		settle(t, g)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1 != s2 {
		t.Errorf("Snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestKeyboardFold(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))
	b, d := foldable(t, g)

	g.cursor = b.Cell
	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionSelect)
	g.Step(in)
	if !g.holding || g.grabbed != b.ID {
		t.Fatalf("Expected block %d grabbed", b.ID)
	}

	in.Clear()
	in.Set(directionAction(d))
	g.Step(in)
	if g.holding {
		t.Error("Grab should be released after folding")
	}
	events := settle(t, g)

	if g.State().Moves != 1 {
		t.Errorf("Expected 1 move, got %d", g.State().Moves)
	}
	if !g.coord.IsFolded(b.ID) {
		t.Error("Expected grabbed block to be folded")
	}
	cues := 0
	for _, ev := range events {
		if ev.Kind == platformcore.EventFoldCue {
			cues++
		}
	}
	if cues != 1 {
		t.Errorf("Expected 1 fold cue event, got %d", cues)
	}
}

func TestSelectLockedBlockShakes(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))

	g.cursor = g.coord.Top().Cell
	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionSelect)
	g.Step(in)

	if g.holding {
		t.Error("Locked top block should not be grabbed")
	}
	if !g.engineShaking(g.coord.Top().ID) {
		t.Error("Expected locked block to shake")
	}
}

func TestPointerPressLockedBlockShakes(t *testing.T) {
	g := New()
	g.Reset(testConfig(3))

	top := g.coord.Top()
	x, y := g.tileRect(top.Cell).Center()
	in := platformcore.NewInputFrame()
	in.AddPointer(platformcore.PointerDown, x, y)
	g.Step(in)

	if g.drag.Active() {
		t.Error("Locked block should not start a drag")
	}
	if !g.engineShaking(top.ID) {
		t.Error("Expected pressed locked block to shake")
	}
}

func TestPointerDragFolds(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))
	b, d := foldable(t, g)

	r := g.tileRect(b.Cell)
	x, y := r.Center()
	dx, dz := d.Delta()

	in := platformcore.NewInputFrame()
	in.AddPointer(platformcore.PointerDown, x, y)
	in.AddPointer(platformcore.PointerMove, x+dx*3, y-dz*2)
	in.AddPointer(platformcore.PointerUp, x+dx*6, y-dz*3)
	g.Step(in)
	settle(t, g)

	if g.State().Moves != 1 {
		t.Errorf("Expected drag to fold once, got %d moves", g.State().Moves)
	}
	if !g.coord.IsFolded(b.ID) {
		t.Error("Expected dragged block to be folded")
	}
}

func TestPointerShortDragIgnored(t *testing.T) {
	g := New()
	g.Reset(testConfig(5))
	b, _ := foldable(t, g)

	x, y := g.tileRect(b.Cell).Center()
	in := platformcore.NewInputFrame()
	in.AddPointer(platformcore.PointerDown, x, y)
	in.AddPointer(platformcore.PointerUp, x+1, y)
	g.Step(in)

	if g.coord.Busy() || g.State().Moves != 0 {
		t.Error("Short drag should do nothing")
	}
	if g.cursor != b.Cell {
		t.Errorf("Cursor should follow the press, got %v", g.cursor)
	}
}

func TestCellAtRoundTrip(t *testing.T) {
	g := New()
	g.Reset(testConfig(9))

	for _, c := range core.GridCells(g.coord.GridSize()) {
		x, y := g.tileRect(c).Center()
		got, ok := g.cellAt(x, y)
		if !ok || got != c {
			t.Errorf("cellAt(tileRect(%v)) = %v, %v", c, got, ok)
		}
	}
	if _, ok := g.cellAt(0, 0); ok {
		t.Error("HUD position should not map to a cell")
	}
}

func TestUndoAction(t *testing.T) {
	g := New()
	g.Reset(testConfig(11))
	b, d := foldable(t, g)

	g.coord.Fold(b.ID, d, 1)
	settle(t, g)
	if g.State().Moves != 1 {
		t.Fatalf("Expected 1 move, got %d", g.State().Moves)
	}

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionUndo)
	g.Step(in)

	if g.State().Moves != 0 {
		t.Errorf("Expected undo to restore 0 moves, got %d", g.State().Moves)
	}
	if g.coord.IsFolded(b.ID) {
		t.Error("Expected block to be unfolded after undo")
	}
}

func TestSkipEmitsEvent(t *testing.T) {
	tests := []struct {
		name      string
		game      func() *Game
		wantScore int
	}{
		{"campaign clamps at zero", New, 0},
		{"practice is free", NewPractice, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.game()
			g.Reset(testConfig(2))

			in := platformcore.NewInputFrame()
			in.Set(platformcore.ActionSkip)
			res := g.Step(in)

			if res.State.Level != 2 {
				t.Errorf("Expected level 2 after skip, got %d", res.State.Level)
			}
			if res.State.Score != tt.wantScore {
				t.Errorf("Expected score %d, got %d", tt.wantScore, res.State.Score)
			}
			found := false
			for _, ev := range res.Events {
				if ev.Kind == platformcore.EventLevelSkipped && ev.Level == 1 {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected skip event for level 1, got %+v", res.Events)
			}
		})
	}
}

func TestPracticeSkipPenalty(t *testing.T) {
	cfg := config.DefaultFoldConfig()
	if got := CoreConfig(cfg, ModePractice).SkipPenalty; got != 0 {
		t.Errorf("Practice penalty = %d, want 0", got)
	}
	if got := CoreConfig(cfg, ModeCampaign).SkipPenalty; got != cfg.Rules.SkipPenalty {
		t.Errorf("Campaign penalty = %d, want %d", got, cfg.Rules.SkipPenalty)
	}
}

func TestPauseFreezesBoard(t *testing.T) {
	g := New()
	g.Reset(testConfig(4))
	b, d := foldable(t, g)

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionPause)
	g.Step(in)
	if !g.State().Paused {
		t.Fatal("Expected paused")
	}

	g.cursor = b.Cell
	in.Clear()
	in.Set(platformcore.ActionSelect)
	g.Step(in)
	in.Clear()
	in.Set(directionAction(d))
	g.Step(in)
	if g.coord.Busy() {
		t.Error("Paused game should ignore folds")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	rc := testConfig(1)
	rc.ScreenW, rc.ScreenH = 10, 5
	g.Reset(rc)

	if !g.State().Paused {
		t.Error("Expected tiny screen to pause the game")
	}
	g.Resize(80, 40)
	if g.State().Paused {
		t.Error("Expected resize to resume the game")
	}
}

func TestRenderShowsBoard(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	g.cursor = core.C(99, 99) // Keep the cursor off the tiles under test

	screen := platformcore.NewScreen(80, 40)
	g.Render(screen)

	bottom := g.tileRect(g.coord.Bottom().Cell)
	cx, cy := bottom.Center()
	if got := screen.Get(cx, cy); got != 'B' {
		t.Errorf("Expected B at bottom tile centre, got %q", got)
	}
	top := g.tileRect(g.coord.Top().Cell)
	if got := screen.GetCell(top.X, top.Y).Color; got != platformcore.ColorLocked {
		t.Errorf("Expected locked top border, got %v", got)
	}
}
