package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"muse/internal/archive"
	"muse/internal/config"
	"muse/internal/prefs"
	"muse/internal/state"
)

// View identifies the active page.
type View int

const (
	ViewDashboard View = iota
	ViewBrowse
	ViewSearch
	ViewTags
	ViewAnalytics
	ViewReader
)

// Options configure the UI.
type Options struct {
	Context   context.Context
	Client    archive.Fetcher
	Store     *state.Store
	Config    *config.Config
	ThemeName string
	PrefsPath string
}

// Run starts the Bubble Tea program and blocks until exit.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts),
		tea.WithAltScreen(),
		tea.WithContext(opts.Context),
	)
	_, err := p.Run()
	return err
}

// refreshInterval drives the header clock and connectivity re-read. Data
// loads are per-navigation, not periodic.
const refreshInterval = 5 * time.Second

// searchDebounce is how long typing must pause before a quick search fires.
const searchDebounce = 300 * time.Millisecond

// minQueryLen is the shortest query worth sending to the archive.
const minQueryLen = 2

// browseLimit is the page size for the browse grid.
const browseLimit = 100

type dashboardState struct {
	seq     int
	loading bool
	stats   *archive.Stats
	recent  []archive.Writing
	today   []archive.Writing
}

type browseState struct {
	seq        int
	loading    bool
	writings   []archive.Writing
	total      int
	selected   int
	typeFilter int    // index into typeFilters
	tag        string // non-empty when browsing a single tag
	chapters   bool   // chapter-length pieces only
}

type searchState struct {
	input       textinput.Model
	debounceSeq int
	seq         int
	loading     bool
	results     []archive.Writing
	resultsFor  string // query the current results answer
	committed   bool   // true after an Enter-submitted full search
	total       int
	selected    int
}

type tagsState struct {
	seq      int
	loading  bool
	tags     []archive.Tag
	selected int
}

type analyticsState struct {
	seq     int
	loading bool
	stats   *archive.Stats
}

type readerState struct {
	seq      int
	loading  bool
	writing  *archive.Writing
	viewport viewport.Model
	returnTo View
}

// warningState is the content-warning overlay. Confirming reveals the one
// writing it was raised for; it never flips the session gate.
type warningState struct {
	writing  archive.Writing
	returnTo View
}

// typeFilters are the content types the browse filter cycles through. The
// empty entry means "all types".
var typeFilters = []string{"", "poetry", "prose", "dialogue", "song", "erotica", "fragment"}

// Model is the Bubble Tea model for the muse UI.
type Model struct {
	ctx       context.Context
	client    archive.Fetcher
	store     *state.Store
	config    *config.Config
	prefsPath string

	keys   keyMap
	theme  Theme
	styles Styles

	width  int
	height int
	ready  bool

	view View
	gate bool // explicit content visible this session
	seq  int  // request generation; responses carrying an older seq are stale

	notice   string // transient error banner, cleared by the next success
	snapshot state.Snapshot

	dashboard dashboardState
	browse    browseState
	search    searchState
	tags      tagsState
	analytics analyticsState
	reader    readerState

	warning  *warningState
	showHelp bool
	showLog  bool
	logLines []string
}

// NewModel builds the initial UI model.
func NewModel(opts Options) Model {
	theme := GetTheme(opts.ThemeName)

	input := textinput.New()
	input.Placeholder = "search the archive..."
	input.CharLimit = 120
	input.Prompt = "/ "

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{QuickLimit: 8, SearchLimit: 50, RecentCount: 6}
	}

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		config:    cfg,
		prefsPath: opts.PrefsPath,
		keys:      defaultKeyMap(),
		theme:     theme,
		styles:    theme.Styles(),
		view:      ViewDashboard,
		dashboard: dashboardState{loading: true},
		search:    searchState{input: input},
	}
}

// Init starts the clock and the first dashboard load. The initial fetch
// reuses the zero sequence number already stored in the model, since Init
// cannot record a new one.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.fetchDashboard(m.dashboard.seq))
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.reader.viewport.Width = contentWidth(m.width)
		m.reader.viewport.Height = contentHeight(m.height)
		if m.reader.writing != nil {
			m.reader.viewport.SetContent(m.renderReaderContent(*m.reader.writing))
		}
		return m, nil

	case tickMsg:
		if m.store != nil {
			m.snapshot = m.store.Snapshot()
		}
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dashboardMsg:
		if msg.seq != m.dashboard.seq {
			return m, nil
		}
		m.dashboard.loading = false
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			return m, nil
		}
		m.notice = ""
		m.dashboard.stats = msg.stats
		m.dashboard.recent = msg.recent
		m.dashboard.today = msg.today
		return m, nil

	case browseMsg:
		if msg.seq != m.browse.seq {
			return m, nil
		}
		m.browse.loading = false
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			return m, nil
		}
		m.notice = ""
		m.browse.writings = msg.page.Items
		m.browse.total = msg.page.Total
		m.browse.selected = clamp(m.browse.selected, len(m.visibleBrowse()))
		return m, nil

	case tagsMsg:
		if msg.seq != m.tags.seq {
			return m, nil
		}
		m.tags.loading = false
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			return m, nil
		}
		m.notice = ""
		m.tags.tags = msg.tags
		m.tags.selected = clamp(m.tags.selected, len(msg.tags))
		return m, nil

	case analyticsMsg:
		if msg.seq != m.analytics.seq {
			return m, nil
		}
		m.analytics.loading = false
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			return m, nil
		}
		m.notice = ""
		m.analytics.stats = msg.stats
		return m, nil

	case searchTickMsg:
		// Stale debounce timer: typing continued after this timer was set.
		if msg.seq != m.search.debounceSeq {
			return m, nil
		}
		return m.fireQuickSearch()

	case searchMsg:
		if msg.seq != m.search.seq {
			return m, nil
		}
		m.search.loading = false
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			return m, nil
		}
		m.notice = ""
		m.search.results = msg.page.Items
		m.search.total = msg.page.Total
		m.search.resultsFor = msg.query
		m.search.committed = msg.committed
		m.search.selected = clamp(m.search.selected, len(m.visibleSearch()))
		return m, nil

	case readerMsg:
		if msg.seq != m.reader.seq {
			return m, nil
		}
		m.reader.loading = false
		if msg.err != nil {
			m.notice = errorNotice(msg.err)
			m.view = m.reader.returnTo
			return m, nil
		}
		m.notice = ""
		m.reader.writing = msg.writing
		m.reader.viewport = viewport.New(contentWidth(m.width), contentHeight(m.height))
		m.reader.viewport.SetContent(m.renderReaderContent(*msg.writing))
		return m, nil

	case logLinesMsg:
		if msg.err != nil {
			m.logLines = []string{"log unavailable: " + msg.err.Error()}
			return m, nil
		}
		m.logLines = msg.lines
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works, even inside overlays and the search input.
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.warning != nil {
		return m.handleWarningKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showLog {
		if key.Matches(msg, m.keys.LogView) || key.Matches(msg, m.keys.Back) {
			m.showLog = false
		}
		return m, nil
	}

	// A focused search input owns the keyboard apart from enter and esc.
	if m.view == ViewSearch && m.search.input.Focused() {
		return m.handleSearchInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.LogView):
		m.showLog = true
		return m, m.loadLogLines()

	case key.Matches(msg, m.keys.CycleTheme):
		next := NextTheme(m.theme.Name)
		m.theme = GetTheme(next)
		m.styles = m.theme.Styles()
		// Best effort; a read-only config dir should not break the session.
		_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: next})
		return m, nil

	case key.Matches(msg, m.keys.ToggleGate):
		return m.toggleGate()

	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(ViewDashboard)

	case key.Matches(msg, m.keys.Browse):
		m.browse.tag = ""
		return m.navigate(ViewBrowse)

	case key.Matches(msg, m.keys.Search):
		return m.navigate(ViewSearch)

	case key.Matches(msg, m.keys.Tags):
		return m.navigate(ViewTags)

	case key.Matches(msg, m.keys.Analytics):
		return m.navigate(ViewAnalytics)

	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.Back):
		return m.goBack()
	}

	return m.handleViewKey(msg)
}

// handleViewKey routes navigation and selection keys to the active view.
func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewBrowse:
		return m.handleBrowseKey(msg)
	case ViewSearch:
		return m.handleSearchKey(msg)
	case ViewTags:
		return m.handleTagsKey(msg)
	case ViewReader:
		var cmd tea.Cmd
		m.reader.viewport, cmd = m.reader.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// navigate switches views and kicks off that view's load. The load command
// is armed before the model is returned so the new sequence number travels
// with it.
func (m Model) navigate(view View) (tea.Model, tea.Cmd) {
	m.view = view
	var cmd tea.Cmd
	switch view {
	case ViewDashboard:
		cmd = m.loadDashboard()
	case ViewBrowse:
		cmd = m.loadBrowse()
	case ViewSearch:
		m.search.input.Focus()
		cmd = textinput.Blink
	case ViewTags:
		cmd = m.loadTags()
	case ViewAnalytics:
		cmd = m.loadAnalytics()
	}
	return m, cmd
}

// reload re-runs the active view's load without moving selection.
func (m Model) reload() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ViewDashboard:
		cmd = m.loadDashboard()
	case ViewBrowse:
		cmd = m.loadBrowse()
	case ViewTags:
		cmd = m.loadTags()
	case ViewAnalytics:
		cmd = m.loadAnalytics()
	case ViewSearch:
		if m.search.resultsFor != "" {
			return m.fireSearch(m.search.resultsFor, m.search.committed)
		}
	case ViewReader:
		if m.reader.writing != nil {
			cmd = m.loadReader(m.reader.writing.ID)
		}
	}
	return m, cmd
}

func (m Model) goBack() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewReader:
		m.view = m.reader.returnTo
		return m, nil
	case ViewBrowse:
		if m.browse.tag != "" {
			// Leave the tag drill-down, back to the tag list.
			m.browse.tag = ""
			return m.navigate(ViewTags)
		}
	case ViewSearch, ViewTags, ViewAnalytics:
		return m.navigate(ViewDashboard)
	}
	if m.view != ViewDashboard {
		return m.navigate(ViewDashboard)
	}
	return m, nil
}

// toggleGate flips explicit-content visibility for this session only and
// reloads the views that fetch filtered data from the archive.
func (m Model) toggleGate() (tea.Model, tea.Cmd) {
	m.gate = !m.gate
	// Closing the gate shrinks the visible lists immediately; the selection
	// must not outlive the items it pointed at while the reload is in flight.
	m.browse.selected = clamp(m.browse.selected, len(m.visibleBrowse()))
	m.search.selected = clamp(m.search.selected, len(m.visibleSearch()))
	var cmd tea.Cmd
	switch m.view {
	case ViewDashboard:
		cmd = m.loadDashboard()
	case ViewBrowse:
		cmd = m.loadBrowse()
	case ViewSearch:
		if m.search.resultsFor != "" {
			return m.fireSearch(m.search.resultsFor, m.search.committed)
		}
	}
	return m, cmd
}

// visibleBrowse applies the gate to the browse list. The server already
// filters, but gate decisions are re-applied on every render so cached
// items can never leak past a closed gate.
func (m Model) visibleBrowse() []archive.Writing {
	return m.applyGate(m.browse.writings)
}

func (m Model) visibleSearch() []archive.Writing {
	return m.applyGate(m.search.results)
}

func (m Model) applyGate(items []archive.Writing) []archive.Writing {
	if m.gate {
		return items
	}
	visible := make([]archive.Writing, 0, len(items))
	for _, w := range items {
		if !w.ExplicitContent {
			visible = append(visible, w)
		}
	}
	return visible
}

// openWriting routes a selected item either to the reader or, for explicit
// content behind a closed gate, to the content-warning overlay.
func (m Model) openWriting(w archive.Writing, from View) (tea.Model, tea.Cmd) {
	if w.ExplicitContent && !m.gate {
		m.warning = &warningState{writing: w, returnTo: from}
		return m, nil
	}
	m.view = ViewReader
	m.reader.returnTo = from
	cmd := m.loadReader(w.ID)
	return m, cmd
}

func clamp(selected, length int) int {
	if length == 0 {
		return 0
	}
	if selected >= length {
		return length - 1
	}
	if selected < 0 {
		return 0
	}
	return selected
}

func moveSelection(selected, delta, length int) int {
	return clamp(selected+delta, length)
}
