package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	key   string
	label string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		title: "Pages",
		entries: []helpEntry{
			{"d", "dashboard"},
			{"b", "browse the archive"},
			{"/ or s", "search"},
			{"t", "tags"},
			{"a", "analytics"},
			{"esc", "back"},
		},
	},
	{
		title: "Lists",
		entries: []helpEntry{
			{"j/k or ↑/↓", "move selection"},
			{"g / G", "top / bottom"},
			{"enter", "open selected writing"},
			{"f", "cycle content type filter"},
			{"c", "chapters only"},
			{"r", "reload"},
		},
	},
	{
		title: "Session",
		entries: []helpEntry{
			{"x", "toggle explicit content"},
			{"T", "cycle theme"},
			{"L", "view the log"},
			{"?", "this help"},
			{"Q or ctrl+c", "quit"},
		},
	},
}

// renderHelp draws the full-screen help page. Any key dismisses it.
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Logo.Render("muse") +
		m.styles.MutedText.Render("  a reading room for the writing archive"))
	b.WriteString("\n\n")

	for i, section := range helpSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.AccentText.Render(section.title) + "\n")
		for _, entry := range section.entries {
			b.WriteString("  " + m.styles.Text.Width(14).Render(entry.key) +
				m.styles.MutedText.Render(entry.label) + "\n")
		}
	}
	b.WriteString("\n" + m.styles.FaintText.Render("press any key to close"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(1, 3).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
