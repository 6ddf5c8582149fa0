package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

var (
	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	alterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F080"))

	containerStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#CCCCCC"))
)

// printDeprecation writes a boxed notice to stderr. A nil info only
// names the field.
func printDeprecation(fieldName string, info *Deprecation) {
	fmt.Fprintln(os.Stderr, renderDeprecation(fieldName, info, time.Now()))
}

func renderDeprecation(fieldName string, info *Deprecation, now time.Time) string {
	if info == nil {
		return containerStyle.Render(warningStyle.Render("Warning: ") +
			fmt.Sprintf("Field '%s' is deprecated", fieldName))
	}

	header := warningStyle.Render("Warning: ") + fmt.Sprintf("Field '%s' is deprecated", fieldName)
	if info.StrictMode {
		header = errorStyle.Render("Error: ") + fmt.Sprintf("Field '%s' is already retired", fieldName)
	}

	removed := !info.RemovalDate.IsZero() && now.After(info.RemovalDate)
	lines := []string{header}
	if info.Alternative != "" {
		lines = append(lines, fmt.Sprintf("Please use '%s' instead", alterStyle.Render(info.Alternative)))
	}
	if !info.DeprecatedAt.IsZero() {
		lines = append(lines, infoStyle.Render(fmt.Sprintf("Deprecated since: %s", info.DeprecatedAt.Format("2006-01-02"))))
	}
	if !info.RemovalDate.IsZero() {
		lines = append(lines, infoStyle.Render(lo.Ternary(
			removed,
			fmt.Sprintf("Removed at: %s", info.RemovalDate.Format("2006-01-02")),
			fmt.Sprintf("Planned removal date: %s", info.RemovalDate.Format("2006-01-02")),
		)))
	}

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
