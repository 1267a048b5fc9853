// Package tui provides the live Bubble Tea dashboard for timetrack.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/timetrack/internal/duration"
	"github.com/fakeyudi/timetrack/internal/tracker"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))
)

// activityColors maps the color tokens stored on activities to terminal colors.
var activityColors = map[string]lipgloss.Color{
	"green":  "82",
	"blue":   "33",
	"yellow": "220",
	"purple": "135",
	"red":    "196",
	"orange": "214",
}

func colorFor(token string) lipgloss.Color {
	if c, ok := activityColors[strings.ToLower(token)]; ok {
		return c
	}
	return lipgloss.Color("245")
}

// ── Tab definitions ─────────────────

type tabID int

const (
	tabActivities tabID = iota
	tabHistory
	tabCount
)

var tabNames = [tabCount]string{"Activities", "History"}

// headingLines is the number of lines heading() emits before a list.
const headingLines = 3

// ── Messages ────────────────────

type tickMsg time.Time

// stateChangedMsg reports that another process rewrote the state file.
type stateChangedMsg struct{}

// ── Model ────────────────────

// Options configures the dashboard.
type Options struct {
	Refresh     time.Duration
	ShowSeconds bool
	// Save persists the engine after every mutation made from the dashboard.
	Save func(*tracker.Engine) error
	// Reload reads the engine back from disk after Changes fires.
	Reload func() (*tracker.Engine, error)
	// Changes signals external writes to the state file. May be nil.
	Changes <-chan struct{}
	// Source is shown in the title bar, usually the state file path.
	Source string
}

// Model is the root Bubble Tea model for the dashboard.
type Model struct {
	engine    *tracker.Engine
	opts      Options
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool

	activities []tracker.Activity
	history    []tracker.Interval
	names      map[string]string
	cursors    [tabCount]int
	status     string
	statusErr  bool
}

// New creates a dashboard over e.
func New(e *tracker.Engine, opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = time.Second
	}
	m := Model{engine: e, opts: opts}
	m.refresh()
	return m
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForChange())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitForChange blocks on the watch channel. A closed or absent channel
// yields no further messages.
func (m Model) waitForChange() tea.Cmd {
	ch := m.opts.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1", "2":
			m.activeTab = tabID(msg.String()[0] - '1')
			return m, nil
		case "up", "k":
			m.moveCursor(-1)
			return m, nil
		case "down", "j":
			m.moveCursor(1)
			return m, nil
		case "enter", " ":
			if m.activeTab == tabActivities {
				m.toggleSelected()
				return m, nil
			}
		case "d":
			if m.activeTab == tabHistory {
				m.deleteSelected()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil

	case tickMsg:
		m.refresh()
		return m, m.tick()

	case stateChangedMsg:
		m.reload()
		return m, m.waitForChange()
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  timetrack  " + m.opts.Source)

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ select  q quit"
	switch m.activeTab {
	case tabActivities:
		hint += "  enter toggle"
	case tabHistory:
		hint += "  d delete"
	}
	right := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	if m.status != "" {
		right = m.status
		if m.statusErr {
			right = errorStyle.Render(m.status)
		}
	}
	pad := m.width - lipgloss.Width(hint) - lipgloss.Width(right) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint + strings.Repeat(" ", pad) + right)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Actions ───────────────────────────────────────────────────────────────────

func (m *Model) toggleSelected() {
	if len(m.activities) == 0 {
		return
	}
	a := m.activities[m.cursors[tabActivities]]
	updated, err := m.engine.Toggle(a.ID)
	if err != nil {
		m.setError(err)
		return
	}
	verb := "stopped"
	if updated.Active {
		verb = "started"
	}
	m.persist(fmt.Sprintf("%s %s", verb, updated.Name))
}

func (m *Model) deleteSelected() {
	if len(m.history) == 0 {
		return
	}
	iv := m.history[m.cursors[tabHistory]]
	if err := m.engine.DeleteInterval(iv.ID); err != nil {
		m.setError(err)
		return
	}
	m.persist("deleted interval " + iv.ID)
}

func (m *Model) persist(done string) {
	if m.opts.Save != nil {
		if err := m.opts.Save(m.engine); err != nil {
			m.setError(err)
			m.refresh()
			return
		}
	}
	m.status, m.statusErr = done, false
	m.refresh()
}

func (m *Model) reload() {
	if m.opts.Reload == nil {
		return
	}
	e, err := m.opts.Reload()
	if err != nil {
		m.setError(err)
		return
	}
	m.engine = e
	m.refresh()
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

func (m *Model) moveCursor(delta int) {
	n := m.rowCount(m.activeTab)
	if n == 0 {
		return
	}
	c := m.cursors[m.activeTab] + delta
	if c < 0 || c >= n {
		return
	}
	m.cursors[m.activeTab] = c
	m.render(m.activeTab)
	m.followCursor(m.activeTab)
}

func (m *Model) rowCount(t tabID) int {
	if t == tabActivities {
		return len(m.activities)
	}
	return len(m.history)
}

// refresh re-reads the engine and re-renders both tabs.
func (m *Model) refresh() {
	m.activities = m.engine.ListActivities()
	tracker.SortByName(m.activities)
	m.history = m.engine.ListSorted()
	m.names = make(map[string]string, len(m.activities))
	for _, a := range m.activities {
		m.names[a.ID] = a.Name
	}
	for t := tabID(0); t < tabCount; t++ {
		n := m.rowCount(t)
		if m.cursors[t] >= n {
			m.cursors[t] = max(n-1, 0)
		}
		m.render(t)
	}
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		m.viewports[i] = viewport.New(m.width, vpHeight)
		m.render(i)
	}
}

func (m *Model) render(t tabID) {
	if !m.ready {
		return
	}
	var content string
	switch t {
	case tabActivities:
		content = m.renderActivities()
	case tabHistory:
		content = m.renderHistory()
	}
	m.viewports[t].SetContent(content)
}

// followCursor scrolls the viewport so the selected row is visible.
func (m *Model) followCursor(t tabID) {
	if !m.ready {
		return
	}
	vp := &m.viewports[t]
	line := headingLines + m.cursors[t]
	switch {
	case line < vp.YOffset:
		vp.SetYOffset(line)
	case line >= vp.YOffset+vp.Height:
		vp.SetYOffset(line - vp.Height + 1)
	}
}

// ── Tab renderers ─────────────────────────────────────────────────────────────

func heading(s string) string {
	return "\n" + sectionHeader.Render("  "+s) + "\n\n"
}

func (m *Model) renderActivities() string {
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("Activities (%d)", len(m.activities))))
	if len(m.activities) == 0 {
		sb.WriteString(dimStyle.Render("  (none: add one with `timetrack add` or `timetrack seed`)") + "\n")
		return sb.String()
	}
	nameWidth := 0
	for _, a := range m.activities {
		nameWidth = max(nameWidth, lipgloss.Width(a.Name))
	}
	for i, a := range m.activities {
		dot := dimStyle.Render("○")
		if a.Active {
			dot = lipgloss.NewStyle().Foreground(colorFor(a.Color)).Render("●")
		}
		w := m.engine.LatestWindow(a.ID)
		total := m.engine.CumulativeDuration(a.ID)
		name := a.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(a.Name))
		row := fmt.Sprintf("  %s  %s  %s  %s",
			dot,
			name,
			timeStyle.Render(fmt.Sprintf("%-15s", duration.Window(w.Start, w.End))),
			totalStyle.Render(duration.Format(total, m.opts.ShowSeconds)),
		)
		if i == m.cursors[tabActivities] {
			row = selectedRowStyle.Width(m.width - 2).Render(row)
		}
		sb.WriteString(row + "\n")
	}
	return sb.String()
}

func (m *Model) renderHistory() string {
	var sb strings.Builder
	sb.WriteString(heading(fmt.Sprintf("History (%d)", len(m.history))))
	if len(m.history) == 0 {
		sb.WriteString(dimStyle.Render("  (no intervals recorded)") + "\n")
		return sb.String()
	}
	now := m.engine.Now()
	for i, iv := range m.history {
		name, ok := m.names[iv.ActivityID]
		if !ok {
			name = "(orphaned)"
		}
		start := iv.Start
		row := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(start.Local().Format("2006-01-02")),
			timeStyle.Render(fmt.Sprintf("%-15s", duration.Window(&start, iv.End))),
			totalStyle.Render(fmt.Sprintf("%8s", duration.Format(iv.Elapsed(now), m.opts.ShowSeconds))),
			name,
		)
		if i == m.cursors[tabHistory] {
			row = selectedRowStyle.Width(m.width - 2).Render(row)
		}
		sb.WriteString(row + "\n")
	}
	return sb.String()
}

// Run starts the dashboard over e.
func Run(e *tracker.Engine, opts Options) error {
	p := tea.NewProgram(New(e, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
