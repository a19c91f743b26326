package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starquest/internal/registry"
	"github.com/vovakirdan/starquest/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 100 // Minimum width to show scenario list sidebar
	sidebarWidth       = 22  // Width of scenario list sidebar
	maxRuns            = 100 // Max runs to load
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	Back         key.Binding
	Quit         key.Binding
	NextScenario key.Binding
	PrevScenario key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScenario, k.PrevScenario, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScenario, k.PrevScenario},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev scenario"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next scenario"),
		),
		NextScenario: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next scenario"),
		),
		PrevScenario: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev scenario"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	scenarios   []registry.ScenarioInfo // List of installed scenarios
	cursor      int                     // Currently selected scenario index
	store       *storage.Store          // Run history
	runs        []storage.Run
	stats       *storage.ScenarioStats
	allStats    map[string]*storage.ScenarioStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show scenario list sidebar
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		scenarios:   registry.List(),
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		if all, err := store.AllScenarioStats(); err == nil {
			m.allStats = all
		}
	}

	// Initialize table
	m.table = m.createTable()

	// Load runs for first scenario
	if len(m.scenarios) > 0 {
		m.loadRuns(m.scenarios[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 7},
		{Title: "Visited", Width: 8},
		{Title: "Answers", Width: 8},
		{Title: "Outcome", Width: 12},
		{Title: "Date", Width: 13},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Widen the outcome column when there is room
	if extra := tableWidth - 70; extra > 0 {
		columns[5].Width += min(extra, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-11), // Leave room for header, stats, details, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the best runs and aggregates for the given scenario.
func (m *ScoreboardModel) loadRuns(scenarioID string) {
	m.runs = nil
	m.stats = nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	if runs, err := m.store.TopRuns(scenarioID, maxRuns); err == nil {
		m.runs = runs
	}
	if stats, err := m.store.ScenarioStats(scenarioID); err == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.Difficulty,
			fmt.Sprintf("%d", r.Visited),
			fmt.Sprintf("%d/%d", r.Correct, r.Correct+r.Wrong),
			runOutcome(r),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScenario), key.Matches(msg, m.keys.Right):
			if len(m.scenarios) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenarios)
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScenario), key.Matches(msg, m.keys.Left):
			if len(m.scenarios) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.scenarios) - 1
				}
				m.loadRuns(m.scenarios[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Voyage log styles
var (
	logTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	logDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	logActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	logTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "VOYAGE LOG"
	if len(m.scenarios) > 0 {
		title = fmt.Sprintf("VOYAGE LOG - %s", m.scenarios[m.cursor].Title)
	}

	body := logBoxStyle.Render(m.renderTableContent())
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body)
	} else {
		body = m.renderTabs() + "\n\n" + centerText(body, m.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		centerText(logTitleStyle.Render(title), m.width),
		centerText(m.renderStats(), m.width),
		"",
		body,
		m.renderSelected(),
		logDimStyle.Render(m.help.View(m.keys)),
	)
}

// renderSidebar lists scenarios with their best score.
func (m ScoreboardModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString("Scenarios\n")
	b.WriteString(strings.Repeat("-", sidebarWidth-4))

	for i, sc := range m.scenarios {
		name := truncate(sc.Title, sidebarWidth-6)
		line := "  " + name
		if i == m.cursor {
			line = logActiveStyle.Render("> " + name)
		}
		b.WriteString("\n")
		b.WriteString(line)
		if st, ok := m.allStats[sc.ID]; ok && st.HighScore > 0 {
			b.WriteString("\n")
			b.WriteString(logDimStyle.Render(fmt.Sprintf("    best %d", st.HighScore)))
		}
	}

	return logBoxStyle.Width(sidebarWidth).Render(b.String())
}

// renderTabs shows scenarios as a tab strip, or just the current one
// with arrows when the strip does not fit.
func (m ScoreboardModel) renderTabs() string {
	if len(m.scenarios) == 0 {
		return ""
	}

	tabs := make([]string, len(m.scenarios))
	for i, sc := range m.scenarios {
		name := truncate(sc.Title, 10)
		if i == m.cursor {
			tabs[i] = logTabStyle.Render(name)
		} else {
			tabs[i] = logDimStyle.Render(" " + name + " ")
		}
	}

	strip := strings.Join(tabs, " ")
	if lipgloss.Width(strip) > m.width-4 {
		strip = fmt.Sprintf("< %s >", m.scenarios[m.cursor].Title)
	}
	return centerText(strip, m.width)
}

// renderSelected describes how the highlighted voyage ended.
func (m ScoreboardModel) renderSelected() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return ""
	}
	r := m.runs[i]
	return logDimStyle.Render(fmt.Sprintf(" #%d  %s  ·  fuel %d  hull %d  errors %d  moves %d",
		i+1, r.Reason, r.Fuel, r.Hull, r.Errors, r.Moves))
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return logDimStyle.Italic(true).Padding(2, 4).
			Render("No voyages logged yet.\nFly one to make history!")
	}

	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// renderStats renders the aggregate line for the selected scenario.
func (m ScoreboardModel) renderStats() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	if m.stats == nil || m.stats.Runs == 0 {
		return style.Render("no runs yet")
	}
	st := m.stats
	return style.Render(fmt.Sprintf("runs %d · survived %d · best %d · avg %.0f · avg visited %.1f",
		st.Runs, st.Survived, st.HighScore, st.AvgScore, st.AvgVisited))
}

// runOutcome summarizes how a run ended.
func runOutcome(r storage.Run) string {
	switch {
	case r.Abandoned:
		return "abandoned"
	case r.Hull <= 0:
		return "destroyed"
	case r.Fuel <= 0:
		return "out of fuel"
	default:
		return "ended"
	}
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
