package log

import "github.com/charmbracelet/lipgloss"

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0000FF"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))

	fatalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Background(lipgloss.Color("#000000")).
			Bold(true)

	importantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Background(lipgloss.Color("#3A3A3A")).
			Bold(true)

	levelStyles = []struct {
		level    Level
		maxWidth int
		style    lipgloss.Style
	}{
		{DebugLevel, 5, debugStyle},
		{InfoLevel, 5, infoStyle},
		{WarnLevel, 5, warnStyle},
		{ErrorLevel, 5, errorStyle},
		{FatalLevel, 5, fatalStyle},
		{ImportantLevel, 9, importantStyle},
	}
)

// Highlight makes the given text stand out (yellow fg and dark bg)
func Highlight(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F0F080")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true).
		Render(" " + text + " ")
}
