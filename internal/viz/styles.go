package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the lipgloss styles derived from a Theme.
type palette struct {
	canvas, panel     lipgloss.Style
	header, label     lipgloss.Style
	value, active     lipgloss.Style
	graph, help, hint lipgloss.Style
	running, paused   lipgloss.Style
	recording         lipgloss.Style
	high, mid, low    lipgloss.Style
}

func newPalette(t Theme) palette {
	return palette{
		canvas:    lipgloss.NewStyle().Padding(0, 1),
		panel:     lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(0, 2).Width(40),
		header:    lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:     lipgloss.NewStyle().Foreground(t.Text),
		active:    lipgloss.NewStyle().Foreground(t.Cursor).Bold(true),
		graph:     lipgloss.NewStyle().Foreground(t.Bond),
		help:      lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		hint:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		running:   lipgloss.NewStyle().Bold(true).Foreground(t.Good),
		paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warn),
		recording: lipgloss.NewStyle().Bold(true).Foreground(t.Bad).Blink(true),
		high:      lipgloss.NewStyle().Foreground(t.Good),
		mid:       lipgloss.NewStyle().Foreground(t.Warn),
		low:       lipgloss.NewStyle().Foreground(t.Bad),
	}
}

// ProgressBar renders percent in [0, 1] as a bar of width cells.
func (p palette) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case percent > 0.8:
		return p.high.Render(bar)
	case percent > 0.4:
		return p.mid.Render(bar)
	}
	return p.low.Render(bar)
}

// Sparkline renders the most recent values, one cell each.
func (p palette) Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return p.hint.Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		norm := (v - lo) / span
		idx := max(0, min(int(norm*float64(len(chars)-1)), len(chars)-1))
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(p.high.Render(c))
		case norm > 0.3:
			b.WriteString(p.mid.Render(c))
		default:
			b.WriteString(p.low.Render(c))
		}
	}
	return b.String()
}

func (p palette) Separator(width int) string {
	mid := width / 2
	return p.hint.Render(strings.Repeat("─", max(0, mid-3)) + " ◆ " + strings.Repeat("─", max(0, width-mid-3)))
}
