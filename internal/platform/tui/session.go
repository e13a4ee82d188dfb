package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fold/internal/config"
	"github.com/vovakirdan/fold/internal/core"
	foldcore "github.com/vovakirdan/fold/internal/games/fold/core"
	"github.com/vovakirdan/fold/internal/metrics"
	"github.com/vovakirdan/fold/internal/storage"
)

// SessionDeps are shared by every screen of one session.
type SessionDeps struct {
	Store    *storage.Store     // Optional
	Settings config.FoldConfig
	Metrics  *metrics.Collector // Optional
	Logger   *log.Logger
	Bell     io.Writer
	Palette  *Palette // Optional
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu, game and scoreboard.
// The SSH server runs one per connection.
type SessionModel struct {
	deps       SessionDeps
	config     core.RuntimeConfig
	current    screen
	menu       MenuModel
	game       Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig) SessionModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps.Store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.deps.Store, m.config.ScreenW, m.config.ScreenH)
		m.current = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		mode := m.menu.Selected().GameID
		var obs foldcore.Observer
		if m.deps.Metrics != nil {
			obs = m.deps.Metrics.Observer(mode)
		}
		game, err := NewGame(mode, m.deps.Settings, obs, m.deps.Logger)
		if err != nil {
			m.deps.Logger.Error("cannot create game", "mode", mode, "err", err)
			m.menu = NewMenuModel(m.deps.Store, m.config)
			return m, nil
		}
		m.game = NewModel(game, Options{
			Store:    m.deps.Store,
			Config:   m.config,
			Bell:     m.deps.Settings.Display.Bell,
			BellOut:  m.deps.Bell,
			Logger:   m.deps.Logger,
			Palette:  m.deps.Palette,
			Embedded: true,
		})
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu so high scores are current. Pending ticks from
// a closed game are ignored by the menu.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.deps.Store, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(deps SessionDeps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
