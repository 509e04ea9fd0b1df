package ui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"muse/internal/archive"
	"muse/internal/logtail"
)

// Messages delivered by async commands. Every data message carries the
// sequence number of the request that produced it; Update drops any message
// whose sequence no longer matches the view's latest, so a slow response
// can never overwrite a newer one.

type tickMsg time.Time

type dashboardMsg struct {
	seq    int
	stats  *archive.Stats
	recent []archive.Writing
	today  []archive.Writing
	err    error
}

type browseMsg struct {
	seq  int
	page archive.WritingPage
	err  error
}

type tagsMsg struct {
	seq  int
	tags []archive.Tag
	err  error
}

type analyticsMsg struct {
	seq   int
	stats *archive.Stats
	err   error
}

// searchTickMsg fires when the debounce window closes.
type searchTickMsg struct {
	seq int
}

type searchMsg struct {
	seq       int
	query     string
	committed bool
	page      archive.WritingPage
	err       error
}

type readerMsg struct {
	seq     int
	writing *archive.Writing
	err     error
}

type logLinesMsg struct {
	lines []string
	err   error
}

// loadDashboard arms a fresh sequence number and returns the fetch command.
func (m *Model) loadDashboard() tea.Cmd {
	m.seq++
	m.dashboard.seq = m.seq
	m.dashboard.loading = true
	return m.fetchDashboard(m.dashboard.seq)
}

func (m Model) fetchDashboard(seq int) tea.Cmd {
	ctx, client := m.ctx, m.client
	query := archive.ListQuery{Limit: m.config.RecentCount, Explicit: m.gate}
	return func() tea.Msg {
		stats, err := client.Stats(ctx)
		if err != nil {
			return dashboardMsg{seq: seq, err: err}
		}
		page, err := client.ListWritings(ctx, query)
		if err != nil {
			return dashboardMsg{seq: seq, err: err}
		}
		// Today's writings are a bonus panel; an empty page is normal.
		today, err := client.TodaysWritings(ctx, query)
		if err != nil {
			return dashboardMsg{seq: seq, err: err}
		}
		return dashboardMsg{seq: seq, stats: stats, recent: page.Items, today: today.Items}
	}
}

func (m *Model) loadBrowse() tea.Cmd {
	m.seq++
	m.browse.seq = m.seq
	m.browse.loading = true

	seq := m.browse.seq
	ctx, client := m.ctx, m.client
	tag := m.browse.tag
	chapters := m.browse.chapters
	contentType := typeFilters[m.browse.typeFilter]
	query := archive.ListQuery{
		Limit:    browseLimit,
		Explicit: m.gate,
	}
	return func() tea.Msg {
		var (
			page archive.WritingPage
			err  error
		)
		switch {
		case tag != "":
			query.ContentType = contentType
			page, err = client.WritingsByTag(ctx, tag, query)
		case chapters:
			page, err = client.Chapters(ctx, query)
		case contentType != "":
			page, err = client.WritingsByType(ctx, contentType, query)
		default:
			page, err = client.ListWritings(ctx, query)
		}
		return browseMsg{seq: seq, page: page, err: err}
	}
}

func (m *Model) loadTags() tea.Cmd {
	m.seq++
	m.tags.seq = m.seq
	m.tags.loading = true

	seq := m.tags.seq
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		tags, err := client.Tags(ctx)
		return tagsMsg{seq: seq, tags: tags, err: err}
	}
}

func (m *Model) loadAnalytics() tea.Cmd {
	m.seq++
	m.analytics.seq = m.seq
	m.analytics.loading = true

	seq := m.analytics.seq
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		stats, err := client.Stats(ctx)
		return analyticsMsg{seq: seq, stats: stats, err: err}
	}
}

func (m *Model) loadReader(id int64) tea.Cmd {
	m.seq++
	m.reader.seq = m.seq
	m.reader.loading = true

	seq := m.reader.seq
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		writing, err := client.Writing(ctx, id)
		return readerMsg{seq: seq, writing: writing, err: err}
	}
}

func (m *Model) loadSearch(query string, limit int, committed bool) tea.Cmd {
	m.seq++
	m.search.seq = m.seq
	m.search.loading = true

	seq := m.search.seq
	ctx, client := m.ctx, m.client
	sq := archive.SearchQuery{Q: query, Limit: limit, IncludeExplicit: m.gate}
	return func() tea.Msg {
		page, err := client.Search(ctx, sq)
		return searchMsg{seq: seq, query: query, committed: committed, page: page, err: err}
	}
}

// debounceCmd schedules the quick-search trigger for the current keystroke
// generation. Timers from superseded generations are ignored on arrival.
func debounceCmd(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func (m Model) loadLogLines() tea.Cmd {
	path := m.config.LogPath
	return func() tea.Msg {
		lines, err := logtail.Read(path, 200)
		return logLinesMsg{lines: lines, err: err}
	}
}

// errorNotice turns a load failure into the one-line banner the header
// shows. Timeouts and connection failures read differently from archive
// rejections so the user knows whether to check the daemon or the query.
func errorNotice(err error) string {
	var apiErr *archive.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Msg != "" {
			return fmt.Sprintf("archive error (%d): %s", apiErr.Status, apiErr.Msg)
		}
		return fmt.Sprintf("archive error (%d)", apiErr.Status)
	case archive.IsTimeout(err):
		return "archive not responding (timed out)"
	default:
		return "cannot reach the archive"
	}
}
