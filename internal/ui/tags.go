package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"muse/internal/render"
)

// handleTagsKey handles selection on the tag list; Enter drills into the
// browse page scoped to the chosen tag.
func (m Model) handleTagsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.tags.selected = moveSelection(m.tags.selected, -1, len(m.tags.tags))
	case key.Matches(msg, m.keys.Down):
		m.tags.selected = moveSelection(m.tags.selected, 1, len(m.tags.tags))
	case key.Matches(msg, m.keys.Top):
		m.tags.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.tags.selected = clamp(len(m.tags.tags)-1, len(m.tags.tags))
	case key.Matches(msg, m.keys.Open):
		if len(m.tags.tags) > 0 {
			m.browse.tag = m.tags.tags[m.tags.selected].Name
			m.browse.selected = 0
			return m.navigate(ViewBrowse)
		}
	}
	return m, nil
}

// renderTags draws the tag list with usage counts.
func (m Model) renderTags() string {
	if m.tags.loading && len(m.tags.tags) == 0 {
		return m.renderLoadingLine("tags")
	}
	if len(m.tags.tags) == 0 {
		return m.renderEmptyLine("tags")
	}

	maxRows := contentHeight(m.height) - 2
	if maxRows < 1 {
		maxRows = 1
	}
	selected := clamp(m.tags.selected, len(m.tags.tags))
	start := 0
	if len(m.tags.tags) > maxRows {
		start = selected - maxRows/2
		if start < 0 {
			start = 0
		}
		if start+maxRows > len(m.tags.tags) {
			start = len(m.tags.tags) - maxRows
		}
	}
	end := start + maxRows
	if end > len(m.tags.tags) {
		end = len(m.tags.tags)
	}

	lines := make([]string, 0, end-start+2)
	lines = append(lines,
		m.styles.AccentText.Render(fmt.Sprintf("%d tags", len(m.tags.tags))), "")
	for i := start; i < end; i++ {
		tag := m.tags.tags[i]
		name := "#" + render.Sanitize(tag.Name)
		count := fmt.Sprintf("%d", tag.UsageCount)

		var line string
		if i == selected {
			line = m.styles.AccentText.Render("┃ ") +
				m.styles.Selected.Render(name) + " " + m.styles.MutedText.Render(count)
		} else {
			line = "  " + m.styles.Text.Render(name) + " " + m.styles.FaintText.Render(count)
		}
		if tag.TagType != "" {
			line += " " + m.styles.FaintText.Render("("+tag.TagType+")")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
