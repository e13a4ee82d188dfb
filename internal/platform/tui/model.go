package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/fold/internal/config"
	"github.com/vovakirdan/fold/internal/core"
	foldcore "github.com/vovakirdan/fold/internal/games/fold/core"
	"github.com/vovakirdan/fold/internal/registry"
	"github.com/vovakirdan/fold/internal/storage"
)

// helpHeight is the row kept below the game screen for key help.
const helpHeight = 1

// configurable is implemented by modes that take file configuration,
// a metrics observer and a logger.
type configurable interface {
	Configure(cfg config.FoldConfig, obs foldcore.Observer, logger *log.Logger)
}

// resizer is implemented by modes that can adapt to a new terminal size
// without starting over.
type resizer interface {
	Resize(w, h int)
}

// NewGame creates a registered mode and configures it when supported.
// A nil observer keeps the mode's default.
func NewGame(mode string, settings config.FoldConfig, obs foldcore.Observer, logger *log.Logger) (registry.Game, error) {
	game, err := registry.Create(mode)
	if err != nil {
		return nil, err
	}
	if c, ok := game.(configurable); ok {
		c.Configure(settings, obs, logger)
	}
	return game, nil
}

// Options configures a game model.
type Options struct {
	Store   *storage.Store // Optional
	Config  core.RuntimeConfig
	Bell    bool      // Ring the terminal bell on each fold
	BellOut io.Writer // Where the bell goes; defaults to stdout
	Logger  *log.Logger
	Palette *Palette // Defaults to the local terminal
	// Embedded models hand control back to a parent instead of quitting
	// the program.
	Embedded bool
}

// Model is the Bubble Tea model for running a fold game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	runID      uuid.UUID
	bell       bool
	bellOut    io.Writer
	logger     *log.Logger
	palette    *Palette
	embedded   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	bellOut := opts.BellOut
	if bellOut == nil {
		bellOut = os.Stdout
	}

	palette := opts.Palette
	if palette == nil {
		palette = NewPalette(nil)
	}

	h := help.New()
	h.ShowAll = false

	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 0)
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		runID:      uuid.New(),
		bell:       opts.Bell,
		bellOut:    bellOut,
		logger:     logger,
		palette:    palette,
		embedded:   opts.Embedded,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("run started", "mode", m.game.ID(), "run", m.runID, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := Pointer(msg); ok {
			m.inputFrame.Pointer = append(m.inputFrame.Pointer, ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.saveScore()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-helpHeight, 0)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.saveScore()
		m.newRun()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.handleEvents(result.Events)

	if m.gameState.GameOver {
		m.saveScore()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleEvents persists level outcomes and rings the bell.
func (m *Model) handleEvents(events []core.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case core.EventFoldCue:
			if m.bell {
				//nolint:errcheck // Best-effort bell
				io.WriteString(m.bellOut, "\a")
			}
		case core.EventLevelComplete, core.EventLevelSkipped:
			skipped := ev.Kind == core.EventLevelSkipped
			m.logger.Info("level finished",
				"run", m.runID, "level", ev.Level, "score", ev.Score, "moves", ev.Moves, "skipped", skipped)
			if m.store == nil {
				continue
			}
			_, err := m.store.SaveLevelResult(storage.LevelResult{
				RunID:   m.runID,
				GameID:  m.game.ID(),
				Level:   ev.Level,
				Score:   ev.Score,
				Moves:   ev.Moves,
				Skipped: skipped,
			})
			if err != nil {
				m.logger.Warn("cannot save level result", "err", err)
			}
		}
	}
}

// saveScore records the run score once.
func (m *Model) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	score := m.game.State().Score
	if m.store == nil || score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), score); err != nil {
		m.logger.Warn("cannot save score", "err", err)
		return
	}
	m.logger.Info("score saved", "mode", m.game.ID(), "run", m.runID, "score", score)
}

// newRun starts over with a fresh seed and run ID.
func (m *Model) newRun() {
	m.config.Seed = time.Now().UnixNano()
	m.runID = uuid.New()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.logger.Info("run started", "mode", m.game.ID(), "run", m.runID, "seed", m.config.Seed)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.DataDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	board := m.palette.Paint(m.screen)
	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left,
			board, m.palette.help.Render(m.help.FullHelpView(m.keys.FullHelp())))
	}
	return board + "\n" + m.palette.help.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// IsQuitting returns true if the user asked to leave the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if an embedded game was closed.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunID identifies the current run in the level results table.
func (m Model) RunID() uuid.UUID {
	return m.runID
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, opts Options) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
