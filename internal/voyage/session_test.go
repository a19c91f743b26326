package voyage

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/starquest/internal/config"
	"github.com/vovakirdan/starquest/internal/core"
)

func mustMove(t *testing.T, s *Session, dRow, dCol int) View {
	t.Helper()
	v, err := s.Move(dRow, dCol)
	if err != nil {
		t.Fatalf("Move(%d,%d) failed: %v", dRow, dCol, err)
	}
	return v
}

func mustDismiss(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Dismiss(); err != nil {
		t.Fatalf("Dismiss() failed in state %s: %v", s.State(), err)
	}
}

func TestVisitFuelBonusLocation(t *testing.T) {
	s := newTestSession(testScenario(), nil, nil)

	v := mustMove(t, s, 0, 1)
	if v.State != StateNarration || v.Narration != "Red dust." {
		t.Fatalf("after move: state %s narration %q", v.State, v.Narration)
	}
	if v.Location == nil || v.Location.Name != "Mars" {
		t.Fatalf("Location = %+v, want Mars", v.Location)
	}
	mustDismiss(t, s)
	if got := s.View().Narration; got != "Old tanks." {
		t.Fatalf("second story line = %q", got)
	}
	mustDismiss(t, s)

	v = s.View()
	if v.State != StateChallenge {
		t.Fatalf("state = %s, want challenge", v.State)
	}
	if _, ok := v.Challenge.(MultipleChoice); !ok {
		t.Fatalf("challenge = %T, want MultipleChoice", v.Challenge)
	}
	out, err := s.SubmitChoice(2)
	if err != nil || !out.Correct {
		t.Fatalf("SubmitChoice(2) = %+v, %v", out, err)
	}
	if got := s.View().Narration; got != "Correct answer!" {
		t.Fatalf("feedback = %q", got)
	}
	mustDismiss(t, s)

	// Fuel bonus notice
	if got := s.View().Narration; got != "You found +5 fuel!" {
		t.Fatalf("bonus notice = %q", got)
	}
	mustDismiss(t, s)

	if s.State() != StateExploring {
		t.Fatalf("state = %s, want exploring", s.State())
	}
	if fuel := s.Resources().Fuel; fuel != 54 {
		t.Errorf("Fuel = %d, want 54 (50 - 1 move + 5 bonus)", fuel)
	}

	// Leave and come back: no story, no challenge, no bonus.
	mustMove(t, s, 0, -1)
	if s.State() != StateChallenge {
		t.Fatalf("empty tile state = %s, want challenge", s.State())
	}
	if _, err := s.SubmitNumeric("9.8"); err != nil {
		t.Fatal(err)
	}
	mustDismiss(t, s)

	v = mustMove(t, s, 0, 1)
	if v.State != StateExploring {
		t.Errorf("revisit state = %s, want exploring", v.State)
	}
	if v.Resources.Fuel != 52 {
		t.Errorf("Fuel after revisit = %d, want 52", v.Resources.Fuel)
	}

	st := s.Stats()
	if st.Moves != 3 || st.Visited != 1 || st.Correct != 2 || st.Wrong != 0 {
		t.Errorf("Stats = %+v", st)
	}
	if s.Score() != 100+20+52 {
		t.Errorf("Score = %d, want 172", s.Score())
	}
}

func TestNumericMalformedKeepsChallenge(t *testing.T) {
	s := newTestSession(testScenario(), nil, nil)
	mustMove(t, s, -1, 0) // empty tile

	out, err := s.SubmitNumeric("nine")
	if err != nil {
		t.Fatal(err)
	}
	if out.Resolved {
		t.Fatal("malformed numeric input resolved the challenge")
	}
	if s.State() != StateChallenge {
		t.Errorf("state = %s, want challenge", s.State())
	}
	if res := s.Resources(); res.Hull != 50 || res.ErrorCount != 0 {
		t.Errorf("resources changed: %+v", res)
	}

	out, _ = s.SubmitNumeric("9.60")
	if !out.Resolved || out.Correct {
		t.Fatalf("9.60: %+v, want resolved incorrect", out)
	}
	if got := s.View().Narration; got != "Wrong answer! Hull -1." {
		t.Errorf("feedback = %q", got)
	}
	if res := s.Resources(); res.Hull != 49 || res.ErrorCount != 1 {
		t.Errorf("resources = %+v, want hull 49 errors 1", res)
	}
}

func TestOutOfFuel(t *testing.T) {
	sc := testScenario()
	sc.Challenges = nil
	s := newTestSession(sc, nil, func(cfg *config.VoyageConfig) { cfg.Ship.Fuel = 1 })

	mustMove(t, s, 3, 3)
	if s.Resources().Fuel != 0 {
		t.Fatalf("Fuel = %d, want 0", s.Resources().Fuel)
	}
	// Zero fuel is only terminal on the next attempt.
	if s.Over() {
		t.Fatal("session ended when fuel reached zero")
	}

	v := mustMove(t, s, 0, 1)
	if v.State != StateGameOver || v.Reason != ReasonOutOfFuel {
		t.Fatalf("state %s reason %q, want game over out of fuel", v.State, v.Reason)
	}
	if v.Pos != (Pos{Row: 3, Col: 3}) {
		t.Errorf("Pos = %v, want (3,3)", v.Pos)
	}

	if _, err := s.Move(1, 0); !errors.Is(err, ErrSessionOver) {
		t.Errorf("Move after game over err = %v, want ErrSessionOver", err)
	}
}

func TestWrongAnswerDestroysShip(t *testing.T) {
	sc := testScenario()
	sc.Challenges = map[string][]Challenge{DefaultPool: {newtonQuiz}}
	s := newTestSession(sc, nil, func(cfg *config.VoyageConfig) { cfg.Ship.Hull = 1 })

	mustMove(t, s, 2, 2)
	out, err := s.SubmitChoice(0)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Destroyed {
		t.Error("Outcome.Destroyed = false")
	}
	if v := s.View(); v.State != StateGameOver || v.Reason != ReasonShipDestroyed {
		t.Errorf("state %s reason %q", v.State, v.Reason)
	}
}

func TestEventAppliedOnDismiss(t *testing.T) {
	sc := testScenario()
	sc.Challenges = nil
	sc.Events = []EventCard{asteroidField, oldSatellite}
	rng := &scriptedRand{floats: []float64{0.0, 0.0}} // trigger, negative
	s := newTestSession(sc, rng, nil)

	v := mustMove(t, s, 2, 2)
	if v.State != StateEvent || v.Event == nil {
		t.Fatalf("state = %s, want event", v.State)
	}
	if v.EventText != "Rocks everywhere. Hull -1, Fuel -2" {
		t.Errorf("EventText = %q", v.EventText)
	}
	if v.Resources.Fuel != 49 || v.Resources.Hull != 50 {
		t.Errorf("effects applied before dismissal: %+v", v.Resources)
	}

	mustDismiss(t, s)
	if res := s.Resources(); res.Fuel != 47 || res.Hull != 49 {
		t.Errorf("after dismissal: %+v, want fuel 47 hull 49", res)
	}
	if s.State() != StateExploring {
		t.Errorf("state = %s", s.State())
	}
	if s.Stats().Events != 1 {
		t.Errorf("Events = %d", s.Stats().Events)
	}
}

func TestEventDestroysShip(t *testing.T) {
	sc := testScenario()
	sc.Challenges = nil
	sc.Events = []EventCard{{Name: "Collision", HullChange: -3, Type: EventNegative}}
	rng := &scriptedRand{floats: []float64{0.0, 0.0}}
	s := newTestSession(sc, rng, func(cfg *config.VoyageConfig) { cfg.Ship.Hull = 2 })

	mustMove(t, s, 2, 2)
	mustDismiss(t, s)
	if v := s.View(); v.State != StateGameOver || v.Reason != ReasonHullDestroyed {
		t.Errorf("state %s reason %q", v.State, v.Reason)
	}
}

func TestForcedGameOverPrecedence(t *testing.T) {
	doom := EventCard{
		Name:               "Mutiny",
		Description:        "The crew takes the ship.",
		Type:               EventNegative,
		Category:           CategoryGameOver,
		RequiredConditions: map[Condition]int{CondQuizErrorCount: 1},
	}
	sc := testScenario()
	sc.Challenges = map[string][]Challenge{DefaultPool: {newtonQuiz}}
	sc.Events = []EventCard{doom}
	s := newTestSession(sc, nil, nil) // random events never fire

	mustMove(t, s, 2, 2)
	if _, err := s.SubmitChoice(1); err != nil {
		t.Fatal(err)
	}
	mustDismiss(t, s)
	if s.Over() {
		t.Fatal("forced event fired before the next visit")
	}

	v := mustMove(t, s, 0, 1)
	if v.State != StateGameOver {
		t.Fatalf("state = %s, want game over", v.State)
	}
	if v.Reason != "The crew takes the ship." {
		t.Errorf("Reason = %q", v.Reason)
	}
}

func TestBoundsOptIn(t *testing.T) {
	sc := testScenario()
	sc.Challenges = nil

	free := newTestSession(sc, nil, nil)
	if _, err := free.Move(-1, -1); err != nil {
		t.Errorf("unbounded move failed: %v", err)
	}

	sc.Bounds = Bounds{Rows: 3, Cols: 3}
	fenced := newTestSession(sc, nil, nil)
	if _, err := fenced.Move(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
	if fenced.Resources().Fuel != 50 || fenced.Pos() != (Pos{}) {
		t.Errorf("rejected move cost fuel or moved: %+v %v", fenced.Resources(), fenced.Pos())
	}
}

func TestIntentErrors(t *testing.T) {
	s := newTestSession(testScenario(), nil, nil)

	if _, err := s.SubmitChoice(0); !errors.Is(err, ErrNoPrompt) {
		t.Errorf("SubmitChoice while exploring: %v", err)
	}
	if err := s.Dismiss(); !errors.Is(err, ErrNoPrompt) {
		t.Errorf("Dismiss while exploring: %v", err)
	}

	mustMove(t, s, 0, 1) // story narration
	if _, err := s.Move(0, 1); !errors.Is(err, ErrAwaitingInput) {
		t.Errorf("Move during narration: %v", err)
	}
	mustDismiss(t, s)
	mustDismiss(t, s)

	if _, err := s.SubmitNumeric("2"); !errors.Is(err, ErrWrongChallenge) {
		t.Errorf("SubmitNumeric on multiple choice: %v", err)
	}
}

func TestQuit(t *testing.T) {
	s := newTestSession(testScenario(), nil, nil)
	mustMove(t, s, 0, 1)
	s.Quit()

	v := s.View()
	if v.State != StateGameOver || !v.Abandoned || v.Reason != ReasonAbandoned {
		t.Errorf("after Quit: %+v", v)
	}
	if s.Score() != 0 {
		t.Errorf("abandoned Score = %d, want 0", s.Score())
	}
	if err := s.Dismiss(); !errors.Is(err, ErrSessionOver) {
		t.Errorf("Dismiss after quit: %v", err)
	}
	s.Quit() // no-op
}

func TestErrorCountInvariantRandomPlay(t *testing.T) {
	sc := testScenario()
	sc.Events = []EventCard{asteroidField, oldSatellite, mixedBag}

	for seed := uint64(1); seed <= 20; seed++ {
		rng := NewRand(seed)
		s := NewSession(sc, Options{Config: config.DefaultVoyageConfig(), Rand: rng})
		moves := [][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

		for i := 0; i < 400 && !s.Over(); i++ {
			switch s.State() {
			case StateExploring:
				m := moves[rng.IntN(len(moves))]
				s.Move(m[0], m[1])
			case StateNarration, StateEvent:
				s.Dismiss()
			case StateChallenge:
				switch s.View().Challenge.(type) {
				case MultipleChoice:
					s.SubmitChoice(rng.IntN(4))
				case NumericTask:
					s.SubmitNumeric("9.81")
				}
			}
			res := s.Resources()
			if res.ErrorCount < 0 || res.ErrorCount > res.MaxError {
				t.Fatalf("seed %d: ErrorCount %d out of range", seed, res.ErrorCount)
			}
		}
	}
}

func TestRenderMap(t *testing.T) {
	sc := testScenario()
	sc.Bounds = Bounds{Rows: 3, Cols: 3}
	s := newTestSession(sc, nil, nil)

	scr := core.NewScreen(20, 7)
	s.Render(scr, core.NewRect(0, 0, 20, 7))

	if got := scr.Get(2, 1); got != '@' {
		t.Errorf("ship glyph = %q, want '@'", got)
	}
	if got := scr.Get(5, 1); got != '$' {
		t.Errorf("Mars glyph = %q, want '$'", got)
	}
	if got := scr.Get(2, 2); got != 'O' {
		t.Errorf("Base glyph = %q, want 'O'", got)
	}
	if !strings.HasPrefix(scr.Row(0), "┌") {
		t.Errorf("frame missing: %q", scr.Row(0))
	}
}

func TestRenderFollowingShipLeavesNoTrail(t *testing.T) {
	sc := &Scenario{
		ID:     "open",
		Title:  "Open",
		Start:  Pos{Row: 5, Col: 5},
		Bounds: Bounds{Rows: 10, Cols: 10},
	}
	s := newTestSession(sc, nil, nil)
	area := core.NewRect(0, 0, 20, 8)

	reused := core.NewScreen(20, 8)
	s.Render(reused, area)
	for i := 0; i < 4; i++ {
		if _, err := s.Move(0, 1); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		s.Render(reused, area)
	}

	fresh := core.NewScreen(20, 8)
	s.Render(fresh, area)

	for y := 0; y < fresh.Height(); y++ {
		if got, want := reused.Row(y), fresh.Row(y); got != want {
			t.Errorf("row %d = %q, want %q", y, got, want)
		}
	}
	// Column 9 is the last on the map; nothing is drawn east of it.
	if got := fresh.Get(4*cellWidth+1+cellWidth/2, 4); got != ' ' {
		t.Errorf("cell past the map edge = %q, want blank", got)
	}
}
