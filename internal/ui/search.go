package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleSearchInputKey handles keys while the search input is focused.
// Typing restarts the debounce window; Enter commits a full search; Esc
// releases focus but keeps the current results on screen.
func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		query := strings.TrimSpace(m.search.input.Value())
		if len([]rune(query)) < minQueryLen {
			return m, nil
		}
		// Cancel any pending quick search; the committed one supersedes it.
		m.search.debounceSeq++
		m.search.input.Blur()
		return m.fireSearch(query, true)

	case tea.KeyEsc:
		m.search.input.Blur()
		return m, nil
	}

	before := m.search.input.Value()
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	after := m.search.input.Value()
	if after == before {
		return m, cmd
	}

	m.search.debounceSeq++
	if len([]rune(strings.TrimSpace(after))) < minQueryLen {
		// Too short to search: clear stale results without touching the
		// network, and let the bumped sequence kill any pending timer.
		m.search.results = nil
		m.search.resultsFor = ""
		m.search.committed = false
		m.search.total = 0
		m.search.selected = 0
		return m, cmd
	}
	return m, tea.Batch(cmd, debounceCmd(m.search.debounceSeq))
}

// handleSearchKey handles keys on the search page while the input is
// blurred: result navigation and opening.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleSearch()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.search.selected = moveSelection(m.search.selected, -1, len(visible))
	case key.Matches(msg, m.keys.Down):
		m.search.selected = moveSelection(m.search.selected, 1, len(visible))
	case key.Matches(msg, m.keys.Top):
		m.search.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.search.selected = clamp(len(visible)-1, len(visible))
	case key.Matches(msg, m.keys.Open):
		if len(visible) > 0 {
			return m.openWriting(visible[clamp(m.search.selected, len(visible))], ViewSearch)
		}
	}
	return m, nil
}

// fireQuickSearch runs after the debounce window closes on the query the
// user has stopped typing.
func (m Model) fireQuickSearch() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.search.input.Value())
	if len([]rune(query)) < minQueryLen {
		return m, nil
	}
	return m.fireSearch(query, false)
}

// fireSearch issues a search request. Committed searches use the full
// result budget; quick searches stay small.
func (m Model) fireSearch(query string, committed bool) (tea.Model, tea.Cmd) {
	limit := m.config.QuickLimit
	if committed {
		limit = m.config.SearchLimit
	}
	cmd := m.loadSearch(query, limit, committed)
	return m, cmd
}

// renderSearch draws the search page: the input box and the results below.
func (m Model) renderSearch() string {
	width := contentWidth(m.width)

	inputBox := m.titledBox("Search", m.search.input.View(), width)

	var body string
	switch {
	case m.search.loading:
		body = m.renderLoadingLine("results")
	case m.search.resultsFor == "":
		body = m.styles.FaintText.Render("type at least 2 characters to search; enter for full results")
	default:
		visible := m.visibleSearch()
		label := "quick matches"
		if m.search.committed {
			label = "results"
		}
		head := m.styles.AccentText.Render(
			fmt.Sprintf("%d %s for %q", len(visible), label, m.search.resultsFor))
		if !m.search.input.Focused() && len(visible) > 0 {
			head += m.styles.FaintText.Render("  (enter opens, / edits query)")
		}
		selected := m.search.selected
		if m.search.input.Focused() {
			selected = -1
		}
		body = head + "\n\n" +
			m.renderCardWindow(visible, selected, width, contentHeight(m.height)-6)
	}

	return inputBox + "\n" + body
}
