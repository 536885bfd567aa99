package ui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/gallery/internal/catalog"
	"github.com/five82/gallery/internal/listing"
	"github.com/five82/gallery/internal/prefs"
	"github.com/five82/gallery/internal/state"
	"github.com/five82/gallery/internal/tabs"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Fetcher    catalog.Fetcher
	Controller *tabs.Controller
	Logger     *log.Logger
	ThemeName  string
	PrefsPath  string
	// InitialTab is the tab selected at startup.
	InitialTab state.Tab
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	fetcher    catalog.Fetcher
	controller *tabs.Controller
	session    *state.Session
	logger     *log.Logger
	prefsPath  string
	initialTab state.Tab

	// UI state
	keys     keyMap
	theme    Theme
	spinner  spinner.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Content state
	viewport viewport.Model
	rows     []row
	cursor   map[state.Tab]int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultThemeName
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	theme := GetTheme(themeName)
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)).
			Background(lipgloss.Color(theme.SurfaceAlt))),
	)

	m := Model{
		ctx:        ctx,
		fetcher:    opts.Fetcher,
		controller: opts.Controller,
		session:    opts.Controller.Session(),
		logger:     logger,
		prefsPath:  prefsPath,
		initialTab: opts.InitialTab,
		keys:       DefaultKeyMap(),
		theme:      theme,
		spinner:    sp,
		cursor:     make(map[state.Tab]int, len(state.Tabs)),
	}
	m.rows = flatten(m.session.Container(m.session.Active))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	reqs := m.controller.Start()
	if m.initialTab != state.TabCatalog {
		reqs = append(reqs, m.controller.Handle(tabs.Target{Kind: tabs.TargetTab, Tab: m.initialTab})...)
	}
	return tea.Batch(
		m.spinner.Tick,
		m.issue(reqs),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vw, vh := max(1, msg.Width-2), max(1, msg.Height-contentTop-1)
		if !m.ready {
			m.viewport = viewport.New(vw, vh)
		} else {
			m.viewport.Width = vw
			m.viewport.Height = vh
		}
		m.ready = true
		m.sync()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.sync()
		return m, cmd

	case fetchMsg:
		probes := m.controller.Complete(msg.req, msg.records, msg.err)
		m.sync()
		return m, m.probe(probes)

	case probeMsg:
		m.controller.Settle(msg.probe, msg.info, msg.err)
		m.sync()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	main := m.renderMain()
	if m.session.Popup.Open {
		return m.overlayPopup(main)
	}
	return main
}

// renderMain renders the header, tab bar and active tab.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderTabBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// overlayPopup replaces the screen lines under the lightbox.
func (m Model) overlayPopup(base string) string {
	g := layoutPopup(m.width, m.height)
	backdrop := NewBgStyle(m.theme.Background)
	lines := strings.Split(base, "\n")
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	for i, l := range m.popupBox(g) {
		y := g.y0 + i
		if y >= len(lines) {
			break
		}
		lines[y] = backdrop.Spaces(g.x0) + l + backdrop.Spaces(m.width-g.x0-g.w)
	}
	return strings.Join(lines, "\n")
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(GetTheme(NextTheme(m.theme.Name)))
		m.savePrefs()
		m.sync()
		return m, nil
	}

	if m.session.Popup.Open {
		if key.Matches(msg, m.keys.Close) {
			return m, m.dispatch(tabs.Target{Kind: tabs.TargetPopupClose})
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		next := state.TabFavorites
		if m.session.Active == state.TabFavorites {
			next = state.TabCatalog
		}
		return m, m.dispatch(tabs.Target{Kind: tabs.TargetTab, Tab: next})

	case key.Matches(msg, m.keys.CatalogTab):
		return m, m.dispatch(tabs.Target{Kind: tabs.TargetTab, Tab: state.TabCatalog})

	case key.Matches(msg, m.keys.FavoritesTab):
		return m, m.dispatch(tabs.Target{Kind: tabs.TargetTab, Tab: state.TabFavorites})

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor[m.session.Active] = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor[m.session.Active] = len(itemIndexes(m.rows)) - 1
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveCursor(-max(1, m.viewport.Height/2))
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveCursor(max(1, m.viewport.Height/2))

	case key.Matches(msg, m.keys.Expand):
		if n, ok := m.selected(); ok && n.Expandable {
			return m, m.dispatch(m.target(tabs.TargetExpand, n))
		}
	case key.Matches(msg, m.keys.Collapse):
		m.collapse()
	case key.Matches(msg, m.keys.Star):
		if n, ok := m.selected(); ok && n.Star {
			return m, m.dispatch(m.target(tabs.TargetStar, n))
		}
	case key.Matches(msg, m.keys.Open):
		if n, ok := m.selected(); ok && n.Thumbnail != "" {
			return m, m.dispatch(m.target(tabs.TargetThumbnail, n))
		}
	}

	m.sync()
	return m, nil
}

// handleMouse processes clicks, wheel scrolling and pointer motion.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.viewport.ScrollUp(3)
		m.session.Caption.Visible = false
	case msg.Button == tea.MouseButtonWheelDown:
		m.viewport.ScrollDown(3)
		m.session.Caption.Visible = false

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		t, idx := m.classifyClick(msg.X, msg.Y)
		if idx >= 0 {
			m.pointCursor(idx)
		}
		if t.Kind != tabs.TargetNone {
			return m, m.dispatch(t)
		}

	case msg.Action == tea.MouseActionMotion:
		m.controller.Move(m.classifyMotion(msg.X, msg.Y))
	}

	m.refresh()
	return m, nil
}

// dispatch hands a target to the controller and issues its requests.
func (m *Model) dispatch(t tabs.Target) tea.Cmd {
	before := m.session.Active
	reqs := m.controller.Handle(t)
	if m.session.Active != before {
		m.savePrefs()
	}
	m.sync()
	return m.issue(reqs)
}

// savePrefs records the theme and active tab.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	tab := prefs.TabCatalog
	if m.session.Active == state.TabFavorites {
		tab = prefs.TabFavorites
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Tab: tab}); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "err", err)
	}
}

func (m Model) target(kind tabs.TargetKind, n *listing.Node) tabs.Target {
	return tabs.Target{Kind: kind, Tab: m.session.Active, Handle: n.Handle}
}

// selected returns the node under the cursor.
func (m Model) selected() (*listing.Node, bool) {
	idx := itemIndexes(m.rows)
	if len(idx) == 0 {
		return nil, false
	}
	pos := clamp(m.cursor[m.session.Active], 0, len(idx)-1)
	return m.rows[idx[pos]].node, true
}

func (m *Model) moveCursor(delta int) {
	n := len(itemIndexes(m.rows))
	if n == 0 {
		return
	}
	m.cursor[m.session.Active] = clamp(m.cursor[m.session.Active]+delta, 0, n-1)
}

// pointCursor moves the cursor to the item at row index idx.
func (m *Model) pointCursor(idx int) {
	for pos, i := range itemIndexes(m.rows) {
		if i == idx {
			m.cursor[m.session.Active] = pos
			return
		}
	}
}

// collapse closes the selected node, or moves to its parent when it is
// already closed.
func (m *Model) collapse() {
	idx := itemIndexes(m.rows)
	if len(idx) == 0 {
		return
	}
	pos := clamp(m.cursor[m.session.Active], 0, len(idx)-1)
	r := m.rows[idx[pos]]
	if r.node.Expanded {
		m.controller.Handle(m.target(tabs.TargetExpand, r.node))
		return
	}
	for p := pos - 1; p >= 0; p-- {
		if m.rows[idx[p]].depth < r.depth {
			m.cursor[m.session.Active] = p
			return
		}
	}
}

// sync rebuilds the rows of the active tab and keeps the cursor in view.
func (m *Model) sync() {
	m.rows = flatten(m.session.Container(m.session.Active))
	idx := itemIndexes(m.rows)
	if len(idx) == 0 {
		m.cursor[m.session.Active] = 0
	} else {
		m.cursor[m.session.Active] = clamp(m.cursor[m.session.Active], 0, len(idx)-1)
	}
	if !m.ready {
		return
	}
	if len(idx) > 0 {
		line := idx[m.cursor[m.session.Active]]
		switch {
		case line < m.viewport.YOffset:
			m.viewport.YOffset = line
		case line >= m.viewport.YOffset+m.viewport.Height:
			m.viewport.YOffset = line - m.viewport.Height + 1
		}
	}
	m.refresh()
}

// refresh re-renders the content lines without moving the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.contentLines(m.viewport.Width), "\n"))
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.spinner.Style = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Accent)).
		Background(lipgloss.Color(t.SurfaceAlt))
}

// Messages

type fetchMsg struct {
	req     tabs.Request
	records []catalog.Record
	err     error
}

type probeMsg struct {
	probe listing.Probe
	info  catalog.ImageInfo
	err   error
}

// Commands

// issue runs the fetches requested by the controller.
func (m Model) issue(reqs []tabs.Request) tea.Cmd {
	if len(reqs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, fetchCmd(m.ctx, m.fetcher, req))
	}
	return tea.Batch(cmds...)
}

// probe runs the image probes of a finished render.
func (m Model) probe(probes []listing.Probe) tea.Cmd {
	if len(probes) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(probes))
	for _, p := range probes {
		cmds = append(cmds, probeCmd(m.ctx, m.fetcher, p))
	}
	return tea.Batch(cmds...)
}

func fetchCmd(ctx context.Context, f catalog.Fetcher, req tabs.Request) tea.Cmd {
	return func() tea.Msg {
		records, err := f.Fetch(ctx, req.Query)
		return fetchMsg{req: req, records: records, err: err}
	}
}

func probeCmd(ctx context.Context, f catalog.Fetcher, p listing.Probe) tea.Cmd {
	return func() tea.Msg {
		info, err := f.ProbeImage(ctx, p.URL)
		return probeMsg{probe: p, info: info, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(m.ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
