package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Height(1).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#AAAAAA")).
			PaddingLeft(1)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFA500"))
	completeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

// Heading renders s as a bold section title for plain CLI output.
func Heading(s string) string {
	return titleStyle.Render(s)
}

// Complete renders s in the completed-quest colour.
func Complete(s string) string {
	return completeStyle.Render(s)
}

// Muted renders s in a dim gray.
func Muted(s string) string {
	return mutedStyle.Render(s)
}
