package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fold/internal/registry"
	"github.com/vovakirdan/fold/internal/storage"
)

const (
	scoreboardRows   = 50
	scoreboardChrome = 9 // Title, tabs, stats, help and borders
)

// boardView selects what the scoreboard table lists.
type boardView int

const (
	viewRuns boardView = iota
	viewLevels
)

func (v boardView) String() string {
	if v == viewLevels {
		return "Recent levels"
	}
	return "Best runs"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev, k.Toggle},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "runs/levels"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses stored runs and level results per mode.
type ScoreboardModel struct {
	modes    []registry.GameInfo
	current  int
	view     boardView
	store    *storage.Store
	scores   []storage.ScoreEntry
	levels   []storage.LevelResult
	stats    *storage.GameStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard showing the first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.reload()
	return m
}

// SelectMode switches to the given mode if it is registered.
func (m *ScoreboardModel) SelectMode(id string) {
	for i, info := range m.modes {
		if info.ID == id {
			m.current = i
			m.reload()
			return
		}
	}
}

// Mode returns the ID of the mode being shown.
func (m ScoreboardModel) Mode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.current].ID
}

// ShowingLevels reports whether the table lists level results.
func (m ScoreboardModel) ShowingLevels() bool { return m.view == viewLevels }

// reload fetches data for the current mode and view and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.scores, m.levels, m.stats, m.loadErr = nil, nil, nil, nil

	mode := m.Mode()
	if m.store != nil && mode != "" {
		if st, err := m.store.GetGameStats(mode); err == nil {
			m.stats = st
		}
		switch m.view {
		case viewLevels:
			m.levels, m.loadErr = m.store.RecentLevels(mode, scoreboardRows)
		default:
			m.scores, m.loadErr = m.store.TopScores(mode, scoreboardRows)
		}
	}
	m.table = m.buildTable()
}

func (m ScoreboardModel) buildTable() table.Model {
	var (
		cols []table.Column
		rows []table.Row
	)
	switch m.view {
	case viewLevels:
		cols = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Result", Width: 8},
			{Title: "Moves", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Run", Width: 8},
			{Title: "When", Width: 12},
		}
		for _, r := range m.levels {
			result := "won"
			if r.Skipped {
				result = "skipped"
			}
			rows = append(rows, table.Row{
				strconv.Itoa(r.Level),
				result,
				strconv.Itoa(r.Moves),
				strconv.Itoa(r.Score),
				r.RunID.String()[:8],
				r.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	default:
		cols = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "When", Width: 12},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				strconv.Itoa(s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-scoreboardChrome, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if len(m.modes) > 0 {
				m.current = (m.current + 1) % len(m.modes)
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			if len(m.modes) > 0 {
				m.current = (m.current + len(m.modes) - 1) % len(m.modes)
				m.reload()
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(centerText(title.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(muted.Render(m.view.String()), m.width))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(m.renderBody())))
	b.WriteString("\n")
	if line := m.renderStats(); line != "" {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	b.WriteString(muted.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	idle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)

	tabs := make([]string, len(m.modes))
	for i, info := range m.modes {
		if i == m.current {
			tabs[i] = active.Render(info.Title)
		} else {
			tabs[i] = idle.Render(info.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) renderBody() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 4)

	switch {
	case m.store == nil:
		return empty.Render("Scores are not being recorded.")
	case m.loadErr != nil:
		return empty.Render("Cannot load scores: " + m.loadErr.Error())
	case m.view == viewRuns && len(m.scores) == 0:
		return empty.Render("No runs recorded yet.\nFold some tiles to set a high score!")
	case m.view == viewLevels && len(m.levels) == 0:
		return empty.Render("No levels finished yet.")
	}
	return m.table.View()
}

// renderStats summarises runs and levels for the selected mode.
func (m ScoreboardModel) renderStats() string {
	st := m.stats
	if st == nil || st.RunsCount == 0 && st.LevelsWon == 0 && st.LevelsSkip == 0 {
		return ""
	}
	line := fmt.Sprintf("Runs %d | Avg %.0f | Levels won %d | Skipped %d | Best level %d | Avg moves %.1f",
		st.RunsCount, st.AvgScore, st.LevelsWon, st.LevelsSkip, st.BestLevel, st.AvgMoves)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(line)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own, starting at mode.
func RunScoreboard(store *storage.Store, mode string, width, height int) error {
	m := NewScoreboardModel(store, width, height)
	m.SelectMode(mode)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
