package tui

import (
	"github.com/charmbracelet/lipgloss"

	"cadview/internal/config"
)

// theme holds the chrome styles. Accents follow the viewer colors so the
// panels match what the canvas draws.
type theme struct {
	app   lipgloss.Style
	box   lipgloss.Style
	title lipgloss.Style
	dim   lipgloss.Style
	hover lipgloss.Style
}

func newTheme(v config.Visual) theme {
	hex := func(c config.Color) lipgloss.Color { return lipgloss.Color(c.Resolve().Hex()) }
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	return theme{
		app:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"}),
		box:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(hex(v.EdgeColor)).Padding(0, 1),
		title: lipgloss.NewStyle().Foreground(hex(v.SelectedColor)).Bold(true),
		dim:   lipgloss.NewStyle().Foreground(muted),
		hover: lipgloss.NewStyle().Foreground(hex(v.HighlightColor)),
	}
}
