package tui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starquest/internal/config"
	"github.com/vovakirdan/starquest/internal/core"
	"github.com/vovakirdan/starquest/internal/storage"
	"github.com/vovakirdan/starquest/internal/voyage"
)

// Layout constants
const (
	debugWidth   = 30 // Width of the debug panel
	minMapHeight = 5
	revealStep   = 2 // Event text runes revealed per tick
)

// numericRunes are the characters accepted while typing a numeric answer.
const numericRunes = "0123456789.-+eE"

// VoyageOptions configures a voyage model.
type VoyageOptions struct {
	Scenario   *voyage.Scenario
	Config     config.VoyageConfig
	Difficulty string
	Store      *storage.Store // nil disables run history
	Runtime    core.RuntimeConfig
	Logger     *log.Logger
	Embedded   bool // back returns to a parent menu instead of quitting
}

// Model is the Bubble Tea model for flying a voyage.
type Model struct {
	opts      VoyageOptions
	session   *voyage.Session
	screen    *core.Screen
	keyMapper *KeyMapper
	input     textinput.Model
	help      help.Model
	width     int
	height    int

	showDebug  bool
	lastState  voyage.State
	reveal     int // runes of the event text shown so far
	animating  bool
	flash      string
	runSaved   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given scenario.
func NewModel(opts VoyageOptions) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}

	input := textinput.New()
	input.Placeholder = "type a number"
	input.Prompt = "> "
	input.CharLimit = 24
	input.Width = 24

	m := Model{
		opts:      opts,
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keyMapper: NewKeyMapper(),
		input:     input,
		help:      help.New(),
		width:     opts.Runtime.ScreenW,
		height:    opts.Runtime.ScreenH,
	}
	m.startSession(uint64(opts.Runtime.Seed))
	return m
}

// startSession begins a fresh voyage. A zero seed uses the clock.
func (m *Model) startSession(seed uint64) {
	m.session = voyage.NewSession(m.opts.Scenario, voyage.Options{
		Config: m.opts.Config,
		Seed:   seed,
		Logger: m.opts.Logger,
	})
	m.lastState = m.session.State()
	m.reveal = 0
	m.animating = false
	m.flash = ""
	m.runSaved = false
	m.input.Reset()
	m.input.Blur()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	// Cursor blink and other widget messages
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.typing() {
		return m.handleNumericKey(msg)
	}
	v := m.session.View()

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		return m.quit()
	}
	if action == core.ActionDebug {
		m.showDebug = !m.showDebug
		return m, nil
	}

	switch v.State {
	case voyage.StateExploring:
		if dRow, dCol, ok := action.Delta(); ok {
			m.flash = ""
			if _, err := m.session.Move(dRow, dCol); errors.Is(err, voyage.ErrOutOfBounds) {
				m.flash = "Navigation computer refuses: edge of the charted sector."
			}
			return m.afterTransition()
		}

	case voyage.StateNarration:
		if action == core.ActionConfirm {
			m.session.Dismiss() //nolint:errcheck // state checked above
			return m.afterTransition()
		}

	case voyage.StateEvent:
		if action == core.ActionConfirm {
			if m.animating {
				m.animating = false
				m.reveal = len([]rune(v.EventText))
				return m, nil
			}
			m.session.Dismiss() //nolint:errcheck // state checked above
			return m.afterTransition()
		}

	case voyage.StateChallenge:
		if idx, ok := m.keyMapper.MapKeyToChoice(msg); ok {
			m.session.SubmitChoice(idx) //nolint:errcheck // state checked above
			return m.afterTransition()
		}

	case voyage.StateGameOver:
		switch action {
		case core.ActionRestart:
			m.startSession(0)
			return m, nil
		case core.ActionBack:
			if m.opts.Embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// typing reports whether a numeric task is waiting for an answer.
func (m Model) typing() bool {
	v := m.session.View()
	_, ok := v.Challenge.(voyage.NumericTask)
	return ok && v.State == voyage.StateChallenge
}

// handleNumericKey routes keys to the answer field.
func (m Model) handleNumericKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		out, err := m.session.SubmitNumeric(m.input.Value())
		if err != nil {
			return m, nil
		}
		if !out.Resolved {
			m.flash = "That is not a number. Try again."
			return m, nil
		}
		m.flash = ""
		m.input.Reset()
		m.input.Blur()
		return m.afterTransition()

	case tea.KeyTab:
		m.showDebug = !m.showDebug
		return m, nil

	case tea.KeyEsc:
		return m.quit()

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if !containsRune(numericRunes, r) {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// afterTransition reacts to a session state change: starts the card
// animation, focuses the answer field and records finished runs.
func (m Model) afterTransition() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	v := m.session.View()

	if v.State != m.lastState {
		switch v.State {
		case voyage.StateEvent:
			m.reveal = 0
			m.animating = true
			cmds = append(cmds, tickCmd(m.opts.Runtime.TickRate))
		case voyage.StateChallenge:
			if _, ok := v.Challenge.(voyage.NumericTask); ok {
				m.input.Reset()
				cmds = append(cmds, m.input.Focus())
			}
		}
	}
	m.lastState = v.State

	if v.State == voyage.StateGameOver {
		m.saveRun()
	}
	return m, tea.Batch(cmds...)
}

// handleTick advances the event card animation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.animating {
		return m, nil
	}
	m.reveal += revealStep
	if m.reveal >= len([]rune(m.session.View().EventText)) {
		m.animating = false
		return m, nil
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// quit abandons an unfinished voyage and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.session.Quit()
	m.saveRun()
	m.quitting = true
	return m, tea.Quit
}

// saveRun records the finished voyage once.
func (m *Model) saveRun() {
	if m.runSaved || !m.session.Over() {
		return
	}
	m.runSaved = true

	run := storage.NewRun(m.session, m.opts.Difficulty)
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveRun(run); err != nil {
		m.opts.Logger.Warn("could not save run", "scenario", run.ScenarioID, "error", err)
		return
	}
	m.opts.Logger.Debug("run saved", "scenario", run.ScenarioID, "score", run.Score, "reason", run.Reason)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	v := m.session.View()
	hud := renderHUD(v, m.opts.Scenario.Title, m.width)
	panel := m.renderPanel(v)
	keys := m.keyMapper.Keys()
	if m.typing() {
		keys = m.keyMapper.TypingKeys()
	}
	helpBar := helpStyle.Render(m.help.View(keys))

	mapW := m.width
	if m.showDebug {
		mapW -= debugWidth
	}
	mapH := m.height - lipgloss.Height(hud) - lipgloss.Height(panel) - lipgloss.Height(helpBar)
	mapH = max(mapH, minMapHeight)
	mapW = max(mapW, 10)

	m.screen.Resize(mapW, mapH)
	m.session.Render(m.screen, core.NewRect(0, 0, mapW, mapH))
	body := RenderScreen(m.screen)
	if m.showDebug {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, renderDebug(v, m.session.World().Locations(), debugWidth, mapH))
	}

	return lipgloss.JoinVertical(lipgloss.Left, hud, body, panel, helpBar)
}

// renderPanel renders the prompt area for the current state.
func (m Model) renderPanel(v voyage.View) string {
	width := max(m.width-2, 20)

	switch v.State {
	case voyage.StateNarration:
		return renderNarration(v.Narration, width)
	case voyage.StateChallenge:
		return renderChallenge(v.Challenge, m.input.View(), m.flash, width)
	case voyage.StateEvent:
		return renderEventCard(v.Event, v.EventText, m.reveal, m.animating, width)
	case voyage.StateGameOver:
		return renderGameOver(v, m.session.Score(), m.opts.Embedded, width)
	default:
		return renderStatus(v, m.flash, width)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Session returns the running voyage.
func (m Model) Session() *voyage.Session {
	return m.session
}

func containsRune(set string, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}

// Run starts the Bubble Tea program for a single voyage.
func Run(opts VoyageOptions) error {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// RunSession runs the menu, voyage and log screens as one program.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
