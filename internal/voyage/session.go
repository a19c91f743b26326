package voyage

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starquest/internal/config"
)

// State is the session's position in its state machine.
type State int

const (
	StateExploring State = iota // waiting for a move
	StateNarration              // story or feedback text awaiting dismissal
	StateChallenge              // question awaiting an answer
	StateEvent                  // event card awaiting dismissal
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateExploring:
		return "exploring"
	case StateNarration:
		return "narration"
	case StateChallenge:
		return "challenge"
	case StateEvent:
		return "event"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Errors returned when an intent does not fit the current state.
var (
	ErrSessionOver    = errors.New("voyage: session is over")
	ErrAwaitingInput  = errors.New("voyage: a prompt is awaiting input")
	ErrNoPrompt       = errors.New("voyage: nothing to answer or dismiss")
	ErrWrongChallenge = errors.New("voyage: answer does not match the active challenge")
	ErrOutOfBounds    = errors.New("voyage: move leaves the map")
)

// Game-over reasons.
const (
	ReasonOutOfFuel      = "Out of fuel!"
	ReasonHullDestroyed  = "Hull <= 0. Ship destroyed!"
	ReasonShipDestroyed  = "Your ship has been destroyed!"
	ReasonAbandoned      = "Session abandoned"
	feedbackCorrect      = "Correct answer!"
	feedbackWrongPattern = "Wrong answer! Hull -%d."
	fuelBonusPattern     = "You found +%d fuel!"
)

// Scenario is the immutable content a session is built from.
type Scenario struct {
	ID          string
	Title       string
	Description string
	Start       Pos
	Bounds      Bounds // zero value leaves movement unclamped

	Locations  []Location
	Challenges map[string][]Challenge // keyed by location name, plus DefaultPool
	Events     []EventCard
}

// Options configures a new session.
type Options struct {
	Config config.VoyageConfig
	Rand   Rand        // nil seeds a PCG from Seed
	Seed   uint64      // 0 uses the current time
	Logger *log.Logger // nil discards
}

// Stats counts what happened during a session.
type Stats struct {
	Moves   int
	Visited int
	Correct int
	Wrong   int
	Events  int
}

// Session drives one voyage from start to game over.
// It is not safe for concurrent use.
type Session struct {
	scenario *Scenario
	cfg      config.VoyageConfig
	log      *log.Logger
	rng      Rand

	res      Resources
	world    *WorldMap
	book     *ChallengeBook
	catalog  *Catalog
	dm       *config.DifficultyManager
	resolver *Resolver
	selector *Selector

	pos       Pos
	state     State
	queue     []step
	narration string
	challenge Challenge
	event     *EventCard
	reason    string
	abandoned bool
	stats     Stats
}

// NewSession starts a voyage at the scenario's start position.
func NewSession(sc *Scenario, opts Options) *Session {
	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng = NewRand(seed)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfg := opts.Config
	dm := config.NewDifficultyManager(cfg.Difficulty)

	s := &Session{
		scenario: sc,
		cfg:      cfg,
		log:      logger,
		rng:      rng,
		res:      NewResources(cfg.Ship.Fuel, cfg.Ship.Hull, dm.MaxError()),
		world:    NewWorldMap(sc.Locations),
		book:     NewChallengeBook(sc.Challenges),
		catalog:  NewCatalog(sc.Events),
		dm:       dm,
		pos:      sc.Start,
		state:    StateExploring,
	}
	s.resolver = NewResolver(&s.res, cfg.Rules.WrongAnswerDamage)
	s.selector = NewSelector(s.catalog, &s.res, dm, rng)

	s.log.Debug("session started", "scenario", sc.ID, "pos", s.pos, "fuel", s.res.Fuel, "hull", s.res.Hull)
	return s
}

// Scenario returns the content this session was built from.
func (s *Session) Scenario() *Scenario { return s.scenario }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Resources returns a snapshot of the ship's resources.
func (s *Session) Resources() Resources { return s.res }

// Pos returns the ship's position.
func (s *Session) Pos() Pos { return s.pos }

// World returns the session's map.
func (s *Session) World() *WorldMap { return s.world }

// Selector returns the event selector bound to this session.
func (s *Session) Selector() *Selector { return s.selector }

// Over reports whether the session has ended.
func (s *Session) Over() bool { return s.state == StateGameOver }

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	st := s.stats
	st.Visited = s.world.VisitedCount()
	return st
}

// Score rates the run. Abandoned runs score zero.
func (s *Session) Score() int {
	if s.abandoned {
		return 0
	}
	st := s.Stats()
	return 100*st.Visited + 10*st.Correct + max(0, s.res.Fuel)
}

// Move flies the ship by the given delta and resolves the tile it lands on.
func (s *Session) Move(dRow, dCol int) (View, error) {
	switch s.state {
	case StateGameOver:
		return s.View(), ErrSessionOver
	case StateExploring:
	default:
		return s.View(), fmt.Errorf("voyage: move during %s: %w", s.state, ErrAwaitingInput)
	}

	if !s.res.CanMove() {
		s.gameOver(ReasonOutOfFuel)
		return s.View(), nil
	}

	next := s.pos.Add(dRow, dCol)
	if !s.scenario.Bounds.Contains(next) {
		return s.View(), ErrOutOfBounds
	}

	s.pos = next
	s.res.Fuel -= s.cfg.Rules.MoveCost
	s.stats.Moves++
	s.log.Debug("move", "pos", s.pos, "fuel", s.res.Fuel)

	s.queue = s.visitSteps()
	s.advance()
	return s.View(), nil
}

// SubmitChoice answers the active multiple-choice question.
func (s *Session) SubmitChoice(index int) (Outcome, error) {
	mc, ok, err := activeChallenge[MultipleChoice](s)
	if err != nil || !ok {
		return Outcome{}, err
	}
	out := s.resolver.ResolveChoice(mc, index)
	s.afterAnswer(out)
	return out, nil
}

// SubmitNumeric answers the active numeric task. Text that is not a number
// is rejected without consuming the attempt.
func (s *Session) SubmitNumeric(text string) (Outcome, error) {
	task, ok, err := activeChallenge[NumericTask](s)
	if err != nil || !ok {
		return Outcome{}, err
	}
	out := s.resolver.ResolveNumeric(task, text)
	if !out.Resolved {
		return out, nil
	}
	s.afterAnswer(out)
	return out, nil
}

// activeChallenge returns the active challenge as T.
func activeChallenge[T Challenge](s *Session) (T, bool, error) {
	var zero T
	switch s.state {
	case StateGameOver:
		return zero, false, ErrSessionOver
	case StateChallenge:
	default:
		return zero, false, ErrNoPrompt
	}
	c, ok := s.challenge.(T)
	if !ok {
		return zero, false, ErrWrongChallenge
	}
	return c, true, nil
}

// Dismiss acknowledges the current narration or event card.
// Event effects are applied at this point.
func (s *Session) Dismiss() error {
	switch s.state {
	case StateGameOver:
		return ErrSessionOver
	case StateNarration:
		s.narration = ""
	case StateEvent:
		card := *s.event
		s.event = nil
		s.res.Apply(card)
		s.log.Debug("event applied", "event", card.Name, "fuel", s.res.Fuel, "hull", s.res.Hull)
		if s.res.Destroyed() {
			s.gameOver(ReasonHullDestroyed)
			return nil
		}
	default:
		return ErrNoPrompt
	}
	s.advance()
	return nil
}

// Quit abandons the session. Quitting a finished session does nothing.
func (s *Session) Quit() {
	if s.state == StateGameOver {
		return
	}
	s.abandoned = true
	s.gameOver(ReasonAbandoned)
}

func (s *Session) afterAnswer(out Outcome) {
	s.challenge = nil
	if out.Correct {
		s.stats.Correct++
	} else {
		s.stats.Wrong++
	}
	s.log.Debug("answer", "correct", out.Correct, "hull", s.res.Hull, "errors", s.res.ErrorCount)

	if out.Destroyed {
		s.gameOver(ReasonShipDestroyed)
		return
	}

	feedback := feedbackCorrect
	if !out.Correct {
		feedback = fmt.Sprintf(feedbackWrongPattern, s.cfg.Rules.WrongAnswerDamage)
	}
	s.queue = append([]step{{kind: stepNarrate, text: feedback}}, s.queue...)
	s.advance()
}

func (s *Session) gameOver(reason string) {
	s.state = StateGameOver
	s.reason = reason
	s.queue = nil
	s.narration = ""
	s.challenge = nil
	s.event = nil
	s.log.Debug("game over", "reason", reason, "pos", s.pos, "fuel", s.res.Fuel, "hull", s.res.Hull)
}
