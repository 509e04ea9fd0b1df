package ui

import (
	"fmt"
	"sort"
	"strings"

	"muse/internal/render"
)

// renderDashboard draws the landing page: an archive summary box and the
// most recent writings.
func (m Model) renderDashboard() string {
	width := contentWidth(m.width)

	if m.dashboard.loading && m.dashboard.stats == nil {
		return m.renderLoadingLine("archive")
	}
	if m.dashboard.stats == nil {
		return m.renderEmptyLine("archive data")
	}

	stats := m.dashboard.stats

	summary := []string{
		m.styles.Text.Render(fmt.Sprintf("%d writings · %d words · %.0f words on average",
			stats.TotalWritings, stats.TotalWords, stats.AverageWords)),
	}
	if line := m.typeSummaryLine(); line != "" {
		summary = append(summary, line)
	}
	statsBox := m.titledBox("Archive", strings.Join(summary, "\n"), width)

	recent := m.applyGate(m.dashboard.recent)
	var recentBlock string
	if len(recent) == 0 {
		recentBlock = m.renderEmptyLine("recent writings")
	} else {
		recentBlock = m.renderCards(recent, -1, width)
	}

	out := statsBox + "\n"
	if today := m.applyGate(m.dashboard.today); len(today) > 0 {
		out += m.styles.AccentText.Render("Written Today") + "\n\n" +
			m.renderCards(today, -1, width) + "\n\n"
	}
	return out +
		m.styles.AccentText.Render("Recent") + "\n\n" +
		recentBlock
}

// typeSummaryLine renders the per-type counts in a stable order.
func (m Model) typeSummaryLine() string {
	dist := m.dashboard.stats.ContentTypeDistribution
	if len(dist) == 0 {
		return ""
	}
	types := make([]string, 0, len(dist))
	for name := range dist {
		types = append(types, name)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, name := range types {
		label := m.styles.TypeStyle(name).Render(render.TitleCase(name))
		parts = append(parts, fmt.Sprintf("%s %d", label, dist[name].Count))
	}
	return strings.Join(parts, "  ")
}
