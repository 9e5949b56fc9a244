package cli

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA000"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336"))
	silentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

func Header(text string) string  { return headerStyle.Render(text) }
func Warning(text string) string { return warningStyle.Render(text) }
func Error(text string) string   { return errorStyle.Render(text) }
func Silent(text string) string  { return silentStyle.Render(text) }

// Day renders text in a day's hex color, as used for day headers and pins.
func Day(hex, text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hex)).Render(text)
}
