package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"muse/internal/render"
)

// renderAnalytics draws the statistics page: distribution bars per content
// type, the publication pipeline, and the most used tags.
func (m Model) renderAnalytics() string {
	if m.analytics.loading && m.analytics.stats == nil {
		return m.renderLoadingLine("statistics")
	}
	if m.analytics.stats == nil {
		return m.renderEmptyLine("statistics")
	}

	width := contentWidth(m.width)
	stats := m.analytics.stats

	sections := []string{
		m.titledBox("Totals", m.styles.Text.Render(fmt.Sprintf(
			"%d writings · %d words · %.0f words on average",
			stats.TotalWritings, stats.TotalWords, stats.AverageWords)), width),
	}

	if len(stats.ContentTypeDistribution) > 0 {
		sections = append(sections,
			m.titledBox("Content Types", m.renderTypeBars(width-6), width))
	}
	if len(stats.PublicationStatusDistribution) > 0 {
		sections = append(sections,
			m.titledBox("Publication", m.renderStatusLines(), width))
	}
	if len(stats.TopTags) > 0 {
		sections = append(sections,
			m.titledBox("Top Tags", m.renderTopTags(), width))
	}

	return strings.Join(sections, "\n")
}

// renderTypeBars draws one proportional bar per content type, with the
// explicit share marked separately.
func (m Model) renderTypeBars(width int) string {
	dist := m.analytics.stats.ContentTypeDistribution

	types := make([]string, 0, len(dist))
	max := 0
	for name, tc := range dist {
		types = append(types, name)
		if tc.Count > max {
			max = tc.Count
		}
	}
	sort.Slice(types, func(i, j int) bool {
		if dist[types[i]].Count != dist[types[j]].Count {
			return dist[types[i]].Count > dist[types[j]].Count
		}
		return types[i] < types[j]
	})

	barWidth := width - 26
	if barWidth < 10 {
		barWidth = 10
	}

	lines := make([]string, 0, len(types))
	for _, name := range types {
		tc := dist[name]
		filled := 0
		if max > 0 {
			filled = tc.Count * barWidth / max
		}
		if filled == 0 && tc.Count > 0 {
			filled = 1
		}

		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		barColor := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.TypeColor(name)))
		label := fmt.Sprintf("%-10s", render.TitleCase(name))
		count := fmt.Sprintf("%4d", tc.Count)
		line := m.styles.Text.Render(label) + " " +
			barColor.Render(bar) + " " +
			m.styles.MutedText.Render(count)
		if tc.Explicit > 0 {
			line += m.styles.DangerText.Render(fmt.Sprintf(" (%d explicit)", tc.Explicit))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusLines() string {
	dist := m.analytics.stats.PublicationStatusDistribution

	statuses := make([]string, 0, len(dist))
	for name := range dist {
		statuses = append(statuses, name)
	}
	sort.Strings(statuses)

	parts := make([]string, 0, len(statuses))
	for _, name := range statuses {
		parts = append(parts, fmt.Sprintf("%s %s",
			m.styles.Text.Render(render.TitleCase(name)),
			m.styles.MutedText.Render(fmt.Sprintf("%d", dist[name]))))
	}
	return strings.Join(parts, m.styles.FaintText.Render("  ·  "))
}

func (m Model) renderTopTags() string {
	tags := m.analytics.stats.TopTags
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, m.styles.AccentText.Render("#"+render.Sanitize(tag.Name))+
			m.styles.FaintText.Render(fmt.Sprintf(" %d", tag.Count)))
	}
	return strings.Join(parts, "  ")
}
