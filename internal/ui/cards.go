package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"muse/internal/archive"
	"muse/internal/render"
)

// renderCards draws a vertical list of writing cards. Each card is three
// rows: a badge-and-title row, a one-line excerpt, and a meta row. The
// selected card carries an accent bar in the gutter.
func (m Model) renderCards(items []archive.Writing, selected, width int) string {
	if len(items) == 0 {
		return m.renderEmptyLine("writings")
	}

	blocks := make([]string, 0, len(items))
	for i, w := range items {
		blocks = append(blocks, m.renderCard(render.NewCard(w), i == selected, width))
	}
	return strings.Join(blocks, "\n\n")
}

// cardRows is a card's height including its trailing separator row.
const cardRows = 4

// renderCardWindow renders the slice of cards around the selection that
// fits in maxRows, so long lists stay usable on short terminals.
func (m Model) renderCardWindow(items []archive.Writing, selected, width, maxRows int) string {
	if len(items) == 0 {
		return m.renderEmptyLine("writings")
	}

	fit := maxRows / cardRows
	if fit < 1 {
		fit = 1
	}
	if fit >= len(items) {
		return m.renderCards(items, selected, width)
	}

	selected = clamp(selected, len(items))
	start := selected - fit/2
	if start < 0 {
		start = 0
	}
	if start+fit > len(items) {
		start = len(items) - fit
	}

	window := m.renderCards(items[start:start+fit], selected-start, width)
	footer := m.styles.FaintText.Render(
		fmt.Sprintf("%d-%d of %d", start+1, start+fit, len(items)))
	return window + "\n\n" + footer
}

func (m Model) renderCard(card render.Card, selected bool, width int) string {
	textWidth := width - 4
	if textWidth < 16 {
		textWidth = 16
	}

	badge := m.styles.TypeStyle(strings.ToLower(card.TypeBadge)).Render(card.TypeBadge)

	title := card.Title
	if title == "" {
		title = "(untitled)"
	}
	titleStyle := m.styles.Text.Bold(true)
	if selected {
		titleStyle = m.styles.Selected.Bold(true)
	}
	head := badge + " " + titleStyle.Render(truncate(title, textWidth-lipgloss.Width(badge)-1))
	if card.Explicit {
		head += " " + m.styles.DangerText.Render("18+")
	}

	excerpt := m.styles.MutedText.Render(truncate(oneLine(card.Excerpt), textWidth))

	meta := make([]string, 0, 3)
	if card.WordCount > 0 {
		meta = append(meta, fmt.Sprintf("%d words", card.WordCount))
	}
	if card.Date != "" {
		meta = append(meta, card.Date)
	}
	if len(card.TagNames) > 0 {
		meta = append(meta, "#"+strings.Join(card.TagNames, " #"))
	}
	metaLine := m.styles.FaintText.Render(truncate(strings.Join(meta, " · "), textWidth))

	gutter := "  "
	if selected {
		gutter = m.styles.AccentText.Render("┃ ")
	}
	lines := []string{head, excerpt, metaLine}
	for i, line := range lines {
		lines[i] = gutter + line
	}
	return strings.Join(lines, "\n")
}

// oneLine collapses a multi-line excerpt into a single display line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to at most width visible runes, appending an
// ellipsis when something was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
