package log

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// levelColors maps each level to an ANSI colour index.
var levelColors = map[LogLevel]lipgloss.Color{
	Debug: "4",
	Info:  "2",
	Warn:  "3",
	Error: "1",
	Fatal: "5",
}

// painter colours terminal entries by level. Escape sequences are only
// emitted when w is a terminal that supports them.
type painter struct {
	styles map[LogLevel]lipgloss.Style
}

func newPainter(w io.Writer) *painter {
	r := lipgloss.NewRenderer(w)

	p := &painter{
		styles: make(map[LogLevel]lipgloss.Style, len(levelColors)),
	}
	for level, color := range levelColors {
		p.styles[level] = r.NewStyle().Foreground(color).TabWidth(lipgloss.NoTabConversion)
	}
	return p
}

func (p *painter) paint(level LogLevel, s string) string {
	if p == nil {
		return s
	}
	style, ok := p.styles[level]
	if !ok {
		return s
	}
	return style.Render(s)
}
