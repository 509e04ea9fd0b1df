package ui

import (
	"fmt"
	"strings"

	"muse/internal/archive"
	"muse/internal/render"
)

// renderReader draws the full-text reading page inside a scrolling
// viewport.
func (m Model) renderReader() string {
	if m.reader.loading {
		return m.renderLoadingLine("writing")
	}
	if m.reader.writing == nil {
		return m.renderEmptyLine("writing")
	}

	scroll := m.styles.FaintText.Render(
		"esc back · j/k scroll · " + percent(m.reader.viewport.ScrollPercent()))
	return m.reader.viewport.View() + "\n" + scroll
}

// renderReaderContent builds the viewport text for a writing: title, meta
// line, tags, then the body formatted for its content type.
func (m Model) renderReaderContent(w archive.Writing) string {
	width := contentWidth(m.width)
	full := render.NewFullView(w)

	var b strings.Builder
	b.WriteString(m.styles.Text.Bold(true).Render(full.Title))
	if w.ExplicitContent {
		b.WriteString(" " + m.styles.DangerText.Render("18+"))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(full.Meta))
	b.WriteString("\n")
	if len(full.TagNames) > 0 {
		b.WriteString(m.styles.AccentText.Render("#" + strings.Join(full.TagNames, " #")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	wrap := m.styles.Text.Width(width)
	for i, paragraph := range full.Paragraphs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(wrap.Render(paragraph))
	}
	if note := strings.TrimSpace(w.Notes); note != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.FaintText.Render("notes: " + render.Sanitize(note)))
	}
	return b.String()
}

func percent(p float64) string {
	switch {
	case p <= 0:
		return "top"
	case p >= 1:
		return "end"
	default:
		return fmt.Sprintf("%d%%", int(p*100))
	}
}
