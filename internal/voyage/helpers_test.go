package voyage

import (
	"github.com/vovakirdan/starquest/internal/config"
)

// scriptedRand replays fixed draws. Once a script runs out, Float64
// returns 0.99 (no event fires) and IntN returns 0.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	i := r.ints[0]
	r.ints = r.ints[1:]
	return i % n
}

var newtonQuiz = MultipleChoice{
	Question:     "Newton's second law?",
	Options:      []string{"E=mc^2", "p=mv", "F=ma", "F=-kx"},
	CorrectIndex: 2,
}

var gravityTask = NumericTask{
	Question:     "Gravity on Terra Nova? (m/s^2)",
	CorrectValue: 9.81,
}

// testScenario has a fuel-bonus location with a story east of the start
// and a silent location south of it.
func testScenario() *Scenario {
	return &Scenario{
		ID:    "test",
		Title: "Test",
		Start: Pos{Row: 0, Col: 0},
		Locations: []Location{
			{Name: "Mars", Pos: Pos{Row: 0, Col: 1}, FuelBonus: true, Story: []string{"Red dust.", "Old tanks."}},
			{Name: "Base", Pos: Pos{Row: 1, Col: 0}},
		},
		Challenges: map[string][]Challenge{
			"Mars":      {newtonQuiz},
			DefaultPool: {gravityTask},
		},
	}
}

func newTestSession(sc *Scenario, rng Rand, tweak func(*config.VoyageConfig)) *Session {
	cfg := config.DefaultVoyageConfig()
	if tweak != nil {
		tweak(&cfg)
	}
	if rng == nil {
		rng = &scriptedRand{}
	}
	return NewSession(sc, Options{Config: cfg, Rand: rng})
}

func newTestSelector(res *Resources, rng Rand, cards ...EventCard) *Selector {
	dm := config.NewDifficultyManager(config.DefaultVoyageConfig().Difficulty)
	return NewSelector(NewCatalog(cards), res, dm, rng)
}
