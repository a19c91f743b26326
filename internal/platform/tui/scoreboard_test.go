package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/starquest/internal/content/packs"
	"github.com/vovakirdan/starquest/internal/storage"
)

func TestScoreboardBrowsesScenarios(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	for _, r := range []storage.Run{
		{ScenarioID: "sol", Score: 320, Hull: 12, Reason: "Out of fuel!"},
		{ScenarioID: "sol", Score: 150, Reason: "Hull <= 0. Ship destroyed!"},
		{ScenarioID: "terra-nova", Score: 90, Abandoned: true, Reason: "Session abandoned"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 40)
	if len(m.runs) != 2 {
		t.Fatalf("sol runs = %d, want 2", len(m.runs))
	}
	view := m.View()
	for _, want := range []string{"VOYAGE LOG - Sol Patrol", "320", "best 320", "Out of fuel!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.runs) != 1 || m.runs[0].ScenarioID != "terra-nova" {
		t.Fatalf("after tab: runs = %+v", m.runs)
	}
	if got := runOutcome(m.runs[0]); got != "abandoned" {
		t.Errorf("outcome = %q, want abandoned", got)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back to the menu")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No voyages logged yet.") {
		t.Error("expected the empty log message")
	}
}

func TestRunOutcome(t *testing.T) {
	tests := []struct {
		run  storage.Run
		want string
	}{
		{storage.Run{Abandoned: true, Hull: 5, Fuel: 5}, "abandoned"},
		{storage.Run{Hull: 0, Fuel: 10}, "destroyed"},
		{storage.Run{Hull: 4, Fuel: 0}, "out of fuel"},
		{storage.Run{Hull: 4, Fuel: 9}, "ended"},
	}
	for _, tt := range tests {
		if got := runOutcome(tt.run); got != tt.want {
			t.Errorf("runOutcome(%+v) = %q, want %q", tt.run, got, tt.want)
		}
	}
}
