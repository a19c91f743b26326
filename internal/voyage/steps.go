package voyage

import "fmt"

type stepKind int

const (
	stepNarrate stepKind = iota
	stepChallenge
	stepFuelBonus
	stepForcedEvent
	stepRandomEvent
)

// step is one unit of visit resolution. Steps run in order until one
// of them needs player input.
type step struct {
	kind stepKind
	text string // stepNarrate
	pool string // stepChallenge
}

// visitSteps plans the resolution of the tile the ship just entered.
func (s *Session) visitSteps() []step {
	var steps []step

	loc, found, first := s.world.Visit(s.pos)
	if found && first {
		s.log.Debug("location visited", "location", loc.Name)
		for _, line := range loc.Story {
			steps = append(steps, step{kind: stepNarrate, text: line})
		}
		steps = append(steps, step{kind: stepChallenge, pool: loc.Name})
		if loc.FuelBonus {
			steps = append(steps, step{kind: stepFuelBonus})
		}
	}

	steps = append(steps, step{kind: stepForcedEvent}, step{kind: stepRandomEvent})

	if !found {
		steps = append(steps, step{kind: stepChallenge, pool: DefaultPool})
	}
	return steps
}

// advance runs queued steps until one suspends or the queue drains.
func (s *Session) advance() {
	for len(s.queue) > 0 {
		if s.state == StateGameOver {
			return
		}
		st := s.queue[0]
		s.queue = s.queue[1:]
		if s.run(st) {
			return
		}
	}
	if s.state != StateGameOver {
		s.state = StateExploring
	}
}

// run executes a step and reports whether it is waiting for the player.
func (s *Session) run(st step) bool {
	switch st.kind {
	case stepNarrate:
		s.narration = st.text
		s.state = StateNarration
		return true

	case stepChallenge:
		c := s.book.Draw(st.pool, s.rng)
		if c == nil {
			return false
		}
		s.challenge = c
		s.state = StateChallenge
		return true

	case stepFuelBonus:
		s.res.Fuel += s.cfg.Rules.FuelBonus
		s.narration = fmt.Sprintf(fuelBonusPattern, s.cfg.Rules.FuelBonus)
		s.state = StateNarration
		return true

	case stepForcedEvent:
		if card, ok := s.selector.ForcedEvent(); ok {
			s.gameOver(card.Text())
			return true
		}
		return false

	case stepRandomEvent:
		if !s.selector.ShouldTrigger() {
			return false
		}
		card, ok := s.selector.Pick()
		if !ok {
			return false
		}
		scaled := s.selector.Scale(card)
		s.event = &scaled
		s.stats.Events++
		s.state = StateEvent
		s.log.Debug("event drawn", "event", scaled.Name, "hull", scaled.HullChange, "fuel", scaled.FuelChange)
		return true
	}
	return false
}
