package nowplaying

import "github.com/charmbracelet/lipgloss"

type styles struct {
	clock      lipgloss.Style
	track      lipgloss.Style
	artists    lipgloss.Style
	paused     lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		clock:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		track:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		artists:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		paused:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
