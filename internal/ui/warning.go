package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"muse/internal/render"
)

// handleWarningKey handles the content-warning overlay. Confirming opens
// the one writing the warning was raised for without opening the session
// gate; declining returns to browsing.
func (m Model) handleWarningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := m.warning.writing
	from := m.warning.returnTo

	switch msg.String() {
	case "y", "enter":
		m.warning = nil
		m.view = ViewReader
		m.reader.returnTo = from
		cmd := m.loadReader(w.ID)
		return m, cmd
	case "n", "esc":
		m.warning = nil
		if m.view != ViewBrowse {
			return m.navigate(ViewBrowse)
		}
		return m, nil
	}
	return m, nil
}

// renderWarning draws the centered content-warning dialog over a dimmed
// background.
func (m Model) renderWarning() string {
	w := m.warning.writing

	title := render.Sanitize(w.Title)
	if title == "" {
		title = "(untitled)"
	}

	body := strings.Join([]string{
		m.styles.DangerText.Render("Explicit Content"),
		"",
		m.styles.Text.Render(truncate(title, 50)) + " " +
			m.styles.MutedText.Render("is marked 18+."),
		m.styles.MutedText.Render("Show it this one time?"),
		"",
		m.styles.SuccessText.Render("y") + m.styles.MutedText.Render(" show  ") +
			m.styles.DangerText.Render("n") + m.styles.MutedText.Render(" back"),
	}, "\n")

	dialog := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Padding(1, 3).
		Render(body)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(m.theme.Background)))
}
