package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starquest/internal/config"
	"github.com/vovakirdan/starquest/internal/core"
	"github.com/vovakirdan/starquest/internal/storage"
	"github.com/vovakirdan/starquest/internal/voyage"
)

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

// modelScenario has a fuel depot east of the start and empty space south.
func modelScenario() *voyage.Scenario {
	return &voyage.Scenario{
		ID:    "tui-test",
		Title: "TUI Test",
		Locations: []voyage.Location{
			{Name: "Depot", Pos: voyage.Pos{Row: 0, Col: 1}, FuelBonus: true},
		},
		Challenges: map[string][]voyage.Challenge{
			"Depot": {voyage.MultipleChoice{Question: "F?", Options: []string{"E=mc^2", "p=mv", "F=ma"}, CorrectIndex: 2}},
			voyage.DefaultPool: {
				voyage.NumericTask{Question: "g?", CorrectValue: 9.81},
			},
		},
	}
}

// calmConfig never fires random events.
func calmConfig() config.VoyageConfig {
	cfg := config.DefaultVoyageConfig()
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.BaseProbability = 0
	return cfg
}

func newTestModel(sc *voyage.Scenario, cfg config.VoyageConfig, store *storage.Store) Model {
	rt := core.DefaultConfig()
	rt.Seed = 1
	return NewModel(VoyageOptions{
		Scenario:   sc,
		Config:     cfg,
		Difficulty: "normal",
		Store:      store,
		Runtime:    rt,
	})
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, runeKey(r))
	}
	return m
}

func TestModelVisitLocation(t *testing.T) {
	m := newTestModel(modelScenario(), calmConfig(), nil)

	m = press(t, m, runeKey('d'))
	if got := m.Session().State(); got != voyage.StateChallenge {
		t.Fatalf("state after move = %s, want challenge", got)
	}

	m = press(t, m, runeKey('2'))
	v := m.Session().View()
	if v.State != voyage.StateNarration || v.Narration != "Correct answer!" {
		t.Fatalf("after answer: state %s narration %q", v.State, v.Narration)
	}

	m = press(t, m, enterKey) // fuel bonus notice
	m = press(t, m, enterKey)
	v = m.Session().View()
	if v.State != voyage.StateExploring {
		t.Fatalf("state = %s, want exploring", v.State)
	}
	if v.Resources.Fuel != 54 {
		t.Errorf("fuel = %d, want 54", v.Resources.Fuel)
	}
}

func TestModelNumericEntry(t *testing.T) {
	m := newTestModel(modelScenario(), calmConfig(), nil)

	m = press(t, m, runeKey('s'))
	if _, ok := m.Session().View().Challenge.(voyage.NumericTask); !ok {
		t.Fatalf("expected numeric task, got %T", m.Session().View().Challenge)
	}

	// Letters are filtered out; movement keys do not move the ship.
	m = typeText(t, m, "wasd")
	if m.input.Value() != "" {
		t.Errorf("input = %q, want empty", m.input.Value())
	}

	// A lone sign is not a number: the challenge stays open.
	m = typeText(t, m, "-")
	m = press(t, m, enterKey)
	if m.Session().State() != voyage.StateChallenge {
		t.Fatalf("malformed answer resolved the challenge")
	}
	if m.flash == "" {
		t.Error("expected a hint for malformed input")
	}
	if hull := m.Session().Resources().Hull; hull != 50 {
		t.Errorf("hull = %d, want 50", hull)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = typeText(t, m, "9.81")
	m = press(t, m, enterKey)

	v := m.Session().View()
	if v.State != voyage.StateNarration || v.Narration != "Correct answer!" {
		t.Fatalf("after answer: state %s narration %q", v.State, v.Narration)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
}

func TestModelOutOfBoundsFlash(t *testing.T) {
	sc := modelScenario()
	sc.Bounds = voyage.Bounds{Rows: 3, Cols: 3}
	m := newTestModel(sc, calmConfig(), nil)

	m = press(t, m, runeKey('w'))
	if m.flash == "" {
		t.Error("expected a flash message for a rejected move")
	}
	if fuel := m.Session().Resources().Fuel; fuel != 50 {
		t.Errorf("fuel = %d, want 50", fuel)
	}
	if m.Session().State() != voyage.StateExploring {
		t.Errorf("state = %s, want exploring", m.Session().State())
	}
}

func TestModelDebugToggle(t *testing.T) {
	m := newTestModel(modelScenario(), calmConfig(), nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showDebug {
		t.Fatal("tab should show the debug panel")
	}
	if !strings.Contains(m.View(), "DEBUG") {
		t.Error("debug panel not rendered")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showDebug {
		t.Error("second tab should hide the debug panel")
	}
}

func TestModelEventReveal(t *testing.T) {
	cfg := calmConfig()
	cfg.Difficulty.BaseProbability = 1
	sc := modelScenario()
	sc.Events = []voyage.EventCard{
		{Name: "Supply drop", Description: "Crates drift by. Fuel {{.Fuel}}", FuelChange: 3, Type: voyage.EventPositive},
	}
	m := newTestModel(sc, cfg, nil)

	next, cmd := m.Update(runeKey('s'))
	m = next.(Model)
	if m.Session().State() != voyage.StateEvent {
		t.Fatalf("state = %s, want event", m.Session().State())
	}
	if !m.animating || cmd == nil {
		t.Fatal("event card should start animating")
	}

	m = press(t, m, enterKey)
	if m.animating {
		t.Fatal("confirm should skip the animation")
	}
	if m.Session().State() != voyage.StateEvent {
		t.Fatal("skipping the animation must not dismiss the card")
	}

	m = press(t, m, enterKey)
	if m.Session().State() != voyage.StateChallenge {
		t.Fatalf("state = %s, want challenge", m.Session().State())
	}
	if fuel := m.Session().Resources().Fuel; fuel != 52 {
		t.Errorf("fuel = %d, want 52", fuel)
	}
}

func TestModelSavesRunOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	cfg := calmConfig()
	cfg.Ship.Hull = 1
	m := newTestModel(modelScenario(), cfg, store)

	m = press(t, m, runeKey('s'))
	m = typeText(t, m, "1")
	m = press(t, m, enterKey)

	if !m.Session().Over() {
		t.Fatalf("state = %s, want game over", m.Session().State())
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("game over panel not rendered")
	}

	runs, err := store.TopRuns("tui-test", 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if runs[0].Reason != voyage.ReasonShipDestroyed {
		t.Errorf("reason = %q", runs[0].Reason)
	}

	// Further keys do not save again; restart begins a new voyage.
	m = press(t, m, enterKey, runeKey('r'))
	if m.Session().State() != voyage.StateExploring {
		t.Errorf("state after restart = %s, want exploring", m.Session().State())
	}
	if runs, _ := store.TopRuns("tui-test", 10); len(runs) != 1 {
		t.Errorf("saved %d runs, want 1", len(runs))
	}
}

func TestModelEscQuitsWhileTyping(t *testing.T) {
	m := newTestModel(modelScenario(), calmConfig(), nil)
	m = press(t, m, runeKey('s'))

	// q is not a digit, so it is dropped rather than quitting.
	m = typeText(t, m, "q")
	if m.IsQuitting() {
		t.Fatal("q quit while typing an answer")
	}
	keys := m.keyMapper.TypingKeys()
	if got := keys.Quit.Help().Key; got != "esc" {
		t.Errorf("typing quit help = %q, want esc", got)
	}
	if keys.Up.Enabled() {
		t.Error("movement shown in help while typing")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("esc should quit while typing")
	}
	if v := m.Session().View(); !v.Abandoned {
		t.Errorf("abandoned = %v, want true", v.Abandoned)
	}
}

func TestModelQuitAbandons(t *testing.T) {
	m := newTestModel(modelScenario(), calmConfig(), nil)

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	v := m.Session().View()
	if !v.Abandoned || v.Reason != voyage.ReasonAbandoned {
		t.Errorf("abandoned = %v reason = %q", v.Abandoned, v.Reason)
	}
	if m.Session().Score() != 0 {
		t.Errorf("abandoned score = %d, want 0", m.Session().Score())
	}
}

func TestModelEmbeddedBack(t *testing.T) {
	cfg := calmConfig()
	cfg.Ship.Fuel = 0
	rt := core.DefaultConfig()
	m := NewModel(VoyageOptions{Scenario: modelScenario(), Config: cfg, Runtime: rt, Embedded: true})

	m = press(t, m, runeKey('d'))
	if !m.Session().Over() {
		t.Fatal("moving without fuel should end the voyage")
	}
	m = press(t, m, runeKey('b'))
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("back = %v quitting = %v", m.BackToMenu(), m.IsQuitting())
	}
}
