package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"muse/internal/logtail"
)

// renderLog draws the diagnostic log overlay: the tail of muse's own log
// file, colored by level.
func (m Model) renderLog() string {
	maxRows := m.height - 6
	if maxRows < 5 {
		maxRows = 5
	}

	lines := m.logLines
	if len(lines) > maxRows {
		lines = lines[len(lines)-maxRows:]
	}

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Render("Log") +
		m.styles.FaintText.Render("  "+m.config.LogPath) + "\n\n")
	if len(lines) == 0 {
		b.WriteString(m.styles.FaintText.Render("log is empty"))
	}
	width := m.width - 8
	for _, line := range lines {
		b.WriteString(m.logLineStyle(line).Render(truncate(line, width)) + "\n")
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(0, 2).
		Width(m.width - 4).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}

func (m Model) logLineStyle(line string) lipgloss.Style {
	switch logtail.Level(line) {
	case "error":
		return m.styles.DangerText
	case "warn":
		return m.styles.WarningText
	case "debug":
		return m.styles.FaintText
	default:
		return m.styles.MutedText
	}
}
