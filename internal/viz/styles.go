package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const statsWidth = 62

// styles are derived from a Theme. Each model owns its own set so SSH
// sessions can switch themes independently.
type styles struct {
	canvas      lipgloss.Style
	stats       lipgloss.Style
	header      lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	activeParam lipgloss.Style
	graph       lipgloss.Style
	help        lipgloss.Style
	running     lipgloss.Style
	paused      lipgloss.Style
	errText     lipgloss.Style
	barFill     lipgloss.Style
	barEmpty    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2).Foreground(t.Text),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(statsWidth),
		header:      lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:       lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		value:       lipgloss.NewStyle().Foreground(t.Text),
		activeParam: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:       lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 0),
		help:        lipgloss.NewStyle().Foreground(t.Border).MarginTop(1),
		running:     lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		paused:      lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
		errText:     lipgloss.NewStyle().Foreground(t.Error),
		barFill:     lipgloss.NewStyle().Foreground(t.Accent),
		barEmpty:    lipgloss.NewStyle().Foreground(t.Border),
	}
}

// sliderBar renders a slider position in [0, 1] as a fixed-width bar.
func (s styles) sliderBar(pos float64, width int) string {
	filled := int(pos*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + s.barFill.Render(strings.Repeat("=", filled)) +
		s.barEmpty.Render(strings.Repeat("-", width-filled)) + "]"
}

func (s styles) separator(width int) string {
	return s.help.UnsetMarginTop().Render(strings.Repeat("─", width))
}
