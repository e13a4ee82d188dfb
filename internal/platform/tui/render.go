package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fold/internal/core"
)

// paletteColors are the ANSI colours for each cell role.
var paletteColors = map[core.Color]struct {
	fg   string
	bold bool
}{
	core.ColorBottom:  {"12", true},
	core.ColorTop:     {"208", true},
	core.ColorFiller:  {"7", false},
	core.ColorLocked:  {"240", false},
	core.ColorFolded:  {"6", false},
	core.ColorCursor:  {"11", true},
	core.ColorGrab:    {"10", true},
	core.ColorInvalid: {"9", true},
	core.ColorHUD:     {"14", false},
	core.ColorDim:     {"245", false},
	core.ColorWin:     {"229", true},
}

// Palette turns screen buffers into styled text for one terminal. SSH
// sessions each get their own so colour support follows the client.
type Palette struct {
	styles map[core.Color]lipgloss.Style
	help   lipgloss.Style
}

// NewPalette builds a palette for r, or for the default renderer when r is nil.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{
		styles: make(map[core.Color]lipgloss.Style, len(paletteColors)+1),
		help:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
	p.styles[core.ColorDefault] = r.NewStyle()
	for role, c := range paletteColors {
		p.styles[role] = r.NewStyle().Foreground(lipgloss.Color(c.fg)).Bold(c.bold)
	}
	return p
}

func (p *Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.styles[core.ColorDefault]
}

// Paint renders the screen one row at a time, styling each same-role span once.
func (p *Palette) Paint(s *core.Screen) string {
	rows := make([]string, s.Height())
	var span []rune
	for y := range rows {
		var row strings.Builder
		span = span[:0]
		role := core.ColorDefault
		for x := 0; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != role && len(span) > 0 {
				row.WriteString(p.style(role).Render(string(span)))
				span = span[:0]
			}
			role = cell.Color
			span = append(span, cell.Rune)
		}
		if len(span) > 0 {
			row.WriteString(p.style(role).Render(string(span)))
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}
