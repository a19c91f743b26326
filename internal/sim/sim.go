// Package sim flies voyages without a terminal. An autopilot heads for the
// nearest unvisited location and answers questions with a configurable skill,
// which makes it useful for balancing scenario packs and difficulty curves.
package sim

import (
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starquest/internal/config"
	"github.com/vovakirdan/starquest/internal/core"
	"github.com/vovakirdan/starquest/internal/storage"
	"github.com/vovakirdan/starquest/internal/voyage"
)

// Default autopilot settings
const (
	DefaultRuns     = 100
	DefaultAccuracy = 0.7  // Share of questions answered correctly (0-1)
	DefaultMaxSteps = 5000 // Intents per run before the run is cut off
)

// Options configures a batch of simulated voyages.
type Options struct {
	Runs       int
	Accuracy   float64
	MaxSteps   int
	Seed       uint64 // Seed of the first run; run i uses Seed+i
	Config     config.VoyageConfig
	Difficulty string
	Logger     *log.Logger
}

// Report aggregates a batch of simulated voyages.
type Report struct {
	Runs       int
	Destroyed  int
	OutOfFuel  int
	Doomed     int // ended by a game-over event card
	CutOff     int // still running after MaxSteps
	BestScore  int
	AvgScore   float64
	AvgVisited float64
	AvgEvents  float64
	AvgMoves   float64
	Results    []storage.Run
}

// Pilot plays one session.
type Pilot struct {
	rng      voyage.Rand
	accuracy float64
}

// NewPilot creates an autopilot answering correctly with the given probability.
func NewPilot(rng voyage.Rand, accuracy float64) *Pilot {
	return &Pilot{rng: rng, accuracy: min(max(accuracy, 0), 1)}
}

// Fly drives the session until it ends or maxSteps intents were issued.
// Returns the number of intents used.
func (p *Pilot) Fly(s *voyage.Session, maxSteps int) int {
	steps := 0
	for ; steps < maxSteps && !s.Over(); steps++ {
		v := s.View()
		switch v.State {
		case voyage.StateExploring:
			dRow, dCol := p.heading(s)
			if _, err := s.Move(dRow, dCol); errors.Is(err, voyage.ErrOutOfBounds) {
				continue
			}
		case voyage.StateNarration, voyage.StateEvent:
			s.Dismiss() //nolint:errcheck // state checked above
		case voyage.StateChallenge:
			p.answer(s, v.Challenge)
		}
	}
	return steps
}

// heading points one tile toward the nearest unvisited location, or in a
// random direction once everything has been visited.
func (p *Pilot) heading(s *voyage.Session) (dRow, dCol int) {
	pos := s.Pos()
	best := -1
	var target voyage.Pos
	for _, loc := range s.World().Locations() {
		if loc.Visited || loc.Pos == pos {
			continue
		}
		d := core.Abs(loc.Pos.Row-pos.Row) + core.Abs(loc.Pos.Col-pos.Col)
		if best < 0 || d < best {
			best = d
			target = loc.Pos
		}
	}

	if best < 0 {
		dirs := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		d := dirs[p.rng.IntN(len(dirs))]
		return d[0], d[1]
	}

	switch {
	case target.Row < pos.Row:
		return -1, 0
	case target.Row > pos.Row:
		return 1, 0
	case target.Col < pos.Col:
		return 0, -1
	default:
		return 0, 1
	}
}

// answer submits a right or wrong answer depending on the pilot's accuracy.
func (p *Pilot) answer(s *voyage.Session, ch voyage.Challenge) {
	correct := p.rng.Float64() < p.accuracy

	switch c := ch.(type) {
	case voyage.MultipleChoice:
		idx := c.CorrectIndex
		if !correct {
			idx = c.CorrectIndex + 1
			if n := len(c.Options); n > 1 {
				idx = (c.CorrectIndex + 1 + p.rng.IntN(n-1)) % n
			}
		}
		s.SubmitChoice(idx) //nolint:errcheck // state checked by caller

	case voyage.NumericTask:
		v := c.CorrectValue
		if !correct {
			v += 1 + 2*math.Abs(c.CorrectValue)
		}
		s.SubmitNumeric(strconv.FormatFloat(v, 'g', -1, 64)) //nolint:errcheck // state checked by caller
	}
}

// Run flies opts.Runs voyages through the scenario and aggregates them.
func Run(sc *voyage.Scenario, opts Options) Report {
	if opts.Runs <= 0 {
		opts.Runs = DefaultRuns
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rep := Report{Runs: opts.Runs, Results: make([]storage.Run, 0, opts.Runs)}
	var totalScore, totalVisited, totalEvents, totalMoves int

	for i := range opts.Runs {
		seed := opts.Seed + uint64(i)
		s := voyage.NewSession(sc, voyage.Options{Config: opts.Config, Seed: seed})
		pilot := NewPilot(voyage.NewRand(seed^0x5bd1e995), opts.Accuracy)
		pilot.Fly(s, opts.MaxSteps)

		v := s.View()
		switch {
		case !s.Over():
			rep.CutOff++
		case v.Reason == voyage.ReasonHullDestroyed || v.Reason == voyage.ReasonShipDestroyed:
			rep.Destroyed++
		case v.Reason == voyage.ReasonOutOfFuel:
			rep.OutOfFuel++
		default:
			rep.Doomed++
		}

		run := storage.NewRun(s, opts.Difficulty)
		rep.Results = append(rep.Results, run)
		rep.BestScore = max(rep.BestScore, run.Score)
		totalScore += run.Score
		totalVisited += v.Stats.Visited
		totalEvents += v.Stats.Events
		totalMoves += v.Stats.Moves

		logger.Debug("simulated run", "seed", seed, "score", run.Score, "reason", v.Reason)
	}

	n := float64(opts.Runs)
	rep.AvgScore = float64(totalScore) / n
	rep.AvgVisited = float64(totalVisited) / n
	rep.AvgEvents = float64(totalEvents) / n
	rep.AvgMoves = float64(totalMoves) / n
	return rep
}
