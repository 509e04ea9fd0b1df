package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"muse/internal/render"
)

// handleBrowseKey handles selection and filtering on the browse page.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleBrowse()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.browse.selected = moveSelection(m.browse.selected, -1, len(visible))
	case key.Matches(msg, m.keys.Down):
		m.browse.selected = moveSelection(m.browse.selected, 1, len(visible))
	case key.Matches(msg, m.keys.Top):
		m.browse.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.browse.selected = clamp(len(visible)-1, len(visible))
	case key.Matches(msg, m.keys.CycleType):
		m.browse.typeFilter = (m.browse.typeFilter + 1) % len(typeFilters)
		m.browse.chapters = false
		m.browse.selected = 0
		cmd := m.loadBrowse()
		return m, cmd
	case key.Matches(msg, m.keys.Chapters):
		m.browse.chapters = !m.browse.chapters
		m.browse.typeFilter = 0
		m.browse.selected = 0
		cmd := m.loadBrowse()
		return m, cmd
	case key.Matches(msg, m.keys.Open):
		if len(visible) > 0 {
			return m.openWriting(visible[clamp(m.browse.selected, len(visible))], ViewBrowse)
		}
	}
	return m, nil
}

// renderBrowse draws the browse grid with its filter line.
func (m Model) renderBrowse() string {
	width := contentWidth(m.width)

	filter := "all types"
	if t := typeFilters[m.browse.typeFilter]; t != "" {
		filter = render.TitleCase(t)
	}
	if m.browse.chapters {
		filter = "chapters"
	}
	headline := m.styles.AccentText.Render(filter)
	if m.browse.tag != "" {
		headline += m.styles.MutedText.Render("  tagged ") +
			m.styles.Text.Render("#"+m.browse.tag)
	}

	visible := m.visibleBrowse()
	count := m.styles.FaintText.Render(fmt.Sprintf("  %d shown", len(visible)))
	if m.browse.total > len(visible) {
		count = m.styles.FaintText.Render(
			fmt.Sprintf("  %d shown of %d", len(visible), m.browse.total))
	}

	var list string
	switch {
	case m.browse.loading && len(m.browse.writings) == 0:
		list = m.renderLoadingLine("writings")
	default:
		list = m.renderCardWindow(visible, m.browse.selected, width, contentHeight(m.height)-2)
	}

	return headline + count + "\n\n" + list
}
