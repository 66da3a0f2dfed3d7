package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixel-island/internal/core"
)

type cellStyle struct {
	fg, bg core.Color
}

// ScreenRenderer converts a Screen buffer to styled terminal output.
// Styles are built per renderer so SSH sessions get their own color profile.
type ScreenRenderer struct {
	r      *lipgloss.Renderer
	styles map[cellStyle]lipgloss.Style
}

// NewScreenRenderer creates a renderer. A nil r uses the default renderer.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ScreenRenderer{r: r, styles: make(map[cellStyle]lipgloss.Style)}
}

func (sr *ScreenRenderer) style(cs cellStyle) lipgloss.Style {
	if st, ok := sr.styles[cs]; ok {
		return st
	}
	st := sr.r.NewStyle()
	if !cs.fg.IsZero() {
		st = st.Foreground(lipgloss.Color(cs.fg.String()))
	}
	if !cs.bg.IsZero() {
		st = st.Background(lipgloss.Color(cs.bg.String()))
	}
	sr.styles[cs] = st
	return st
}

// Render converts s to a string, grouping adjacent cells with the same
// colors to minimize ANSI escape sequences.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			cs := cellStyle{fg: cell.FG, bg: cell.BG}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellStyle{fg: cell.FG, bg: cell.BG}) != cs {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(sr.style(cs).Render(run.String()))
		}
	}
	return sb.String()
}
