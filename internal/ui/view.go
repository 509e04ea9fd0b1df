package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "starting muse..."
	}
	if m.warning != nil {
		return m.renderWarning()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLog {
		return m.renderLog()
	}

	var content string
	switch m.view {
	case ViewDashboard:
		content = m.renderDashboard()
	case ViewBrowse:
		content = m.renderBrowse()
	case ViewSearch:
		content = m.renderSearch()
	case ViewTags:
		content = m.renderTags()
	case ViewAnalytics:
		content = m.renderAnalytics()
	case ViewReader:
		content = m.renderReader()
	}

	body := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight(m.height) + 1). // content plus the notice row
		Padding(0, 2).
		Background(lipgloss.Color(m.theme.Background)).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.renderNotice(), content))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderCommandBar(),
	)
}

func contentWidth(width int) int {
	w := width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func contentHeight(height int) int {
	// Header, notice row and command bar each take one line.
	h := height - 3
	if h < 5 {
		h = 5
	}
	return h
}

var viewTitles = map[View]string{
	ViewDashboard: "Dashboard",
	ViewBrowse:    "Browse",
	ViewSearch:    "Search",
	ViewTags:      "Tags",
	ViewAnalytics: "Analytics",
	ViewReader:    "Reader",
}

// renderHeader draws the top bar: logo, active view, connectivity dot,
// gate indicator and the archive size when known.
func (m Model) renderHeader() string {
	styles := m.styles.WithBackground(m.theme.Surface)

	left := styles.Logo.Render(" muse ") +
		styles.MutedText.Render(" · ") +
		styles.Text.Render(viewTitles[m.view])
	if m.view == ViewBrowse && m.browse.tag != "" {
		left += styles.MutedText.Render(" · #" + m.browse.tag)
	}

	var parts []string
	switch {
	case m.snapshot.IsOffline():
		parts = append(parts, styles.DangerText.Render("● offline"))
	case m.snapshot.LastError != nil:
		parts = append(parts, styles.WarningText.Render("● unstable"))
	case m.snapshot.HasHealth && m.snapshot.Health.Healthy():
		parts = append(parts, styles.SuccessText.Render("● connected"))
	default:
		parts = append(parts, styles.MutedText.Render("● probing"))
	}
	if m.snapshot.HasHealth && m.snapshot.Health.TotalWritings > 0 {
		parts = append(parts, styles.MutedText.Render(
			fmt.Sprintf("%d writings", m.snapshot.Health.TotalWritings)))
	}
	if m.gate {
		parts = append(parts, styles.DangerText.Render("explicit on"))
	} else {
		parts = append(parts, styles.FaintText.Render("explicit off"))
	}
	right := strings.Join(parts, styles.MutedText.Render("  "))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	filler := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Render(strings.Repeat(" ", gap))

	return lipgloss.NewStyle().
		Width(m.width).
		Background(lipgloss.Color(m.theme.Surface)).
		Render(" " + left + filler + right + " ")
}

// renderNotice draws the transient error banner row. It is always one row
// tall so the layout does not jump when an error appears.
func (m Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return m.styles.DangerText.Render("! " + m.notice)
}

// renderCommandBar draws the bottom key hint bar.
func (m Model) renderCommandBar() string {
	styles := m.styles.WithBackground(m.theme.Surface)

	hints := []struct{ key, label string }{
		{"d", "dashboard"},
		{"b", "browse"},
		{"/", "search"},
		{"t", "tags"},
		{"a", "analytics"},
		{"x", "explicit"},
		{"?", "help"},
		{"Q", "quit"},
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			styles.AccentText.Render(h.key)+styles.MutedText.Render(" "+h.label))
	}
	bar := strings.Join(parts, styles.MutedText.Render("  "))

	return lipgloss.NewStyle().
		Width(m.width).
		Background(lipgloss.Color(m.theme.Surface)).
		Render(" " + bar)
}

// titledBox wraps content in a rounded border with an embedded title.
func (m Model) titledBox(title, content string, width int) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(width - 2)

	box := border.Render(content)
	if title == "" {
		return box
	}

	// Splice the title into the top border run.
	lines := strings.Split(box, "\n")
	if len(lines) == 0 {
		return box
	}
	label := " " + title + " "
	styledLabel := m.styles.AccentText.Render(label)
	top := lines[0]
	if lipgloss.Width(top) > lipgloss.Width(label)+4 {
		runes := []rune(stripANSI(top))
		prefix := string(runes[:2])
		suffix := string(runes[2+len([]rune(label)):])
		borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))
		lines[0] = borderStyle.Render(prefix) + styledLabel + borderStyle.Render(suffix)
	}
	return strings.Join(lines, "\n")
}

// stripANSI removes SGR escape sequences so border splicing can index by
// visible runes.
func stripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inEscape := false
	for _, r := range s {
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		if r == 0x1b {
			inEscape = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (m Model) renderLoadingLine(what string) string {
	return m.styles.MutedText.Render("loading " + what + "...")
}

func (m Model) renderEmptyLine(what string) string {
	return m.styles.FaintText.Render("no " + what)
}
