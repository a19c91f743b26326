package voyage

import "github.com/vovakirdan/starquest/internal/config"

// Selector decides whether an event fires and which card it is.
// Probabilities follow the player's error count through the difficulty manager.
type Selector struct {
	catalog *Catalog
	res     *Resources
	dm      *config.DifficultyManager
	rng     Rand
}

// NewSelector creates a selector reading the live resources.
func NewSelector(catalog *Catalog, res *Resources, dm *config.DifficultyManager, rng Rand) *Selector {
	return &Selector{
		catalog: catalog,
		res:     res,
		dm:      dm,
		rng:     rng,
	}
}

// TriggerProbability returns the chance that an event fires on this visit.
func (s *Selector) TriggerProbability() float64 {
	return s.dm.TriggerProbability(s.res.ErrorCount)
}

// ShouldTrigger draws whether an event fires.
func (s *Selector) ShouldTrigger() bool {
	return s.rng.Float64() < s.TriggerProbability()
}

// ForcedEvent returns the first eligible game-over card, negative pool first.
func (s *Selector) ForcedEvent() (EventCard, bool) {
	for _, card := range s.catalog.All() {
		if card.Category == CategoryGameOver && s.Eligible(card) {
			return card, true
		}
	}
	return EventCard{}, false
}

// NegativeWeight returns the chance that a fired event comes from the negative pool.
func (s *Selector) NegativeWeight() float64 {
	return s.dm.NegativeWeight(s.res.ErrorCount)
}

// Pick draws an event card. A failed negative draw, or a negative pool with
// nothing eligible, falls through to the positive pool. It returns false when
// the chosen pool has no eligible card.
func (s *Selector) Pick() (EventCard, bool) {
	if s.rng.Float64() < s.NegativeWeight() {
		if card, ok := s.pickFrom(s.catalog.Negative()); ok {
			return card, true
		}
	}
	return s.pickFrom(s.catalog.Positive())
}

func (s *Selector) pickFrom(pool []EventCard) (EventCard, bool) {
	eligible := make([]EventCard, 0, len(pool))
	for _, card := range pool {
		if s.Eligible(card) {
			eligible = append(eligible, card)
		}
	}
	if len(eligible) == 0 {
		return EventCard{}, false
	}
	return eligible[s.rng.IntN(len(eligible))], true
}

// Eligible reports whether the card's conditions allow it right now.
// A card with no conditions is always eligible. Otherwise a single satisfied
// condition is enough.
// NOTE: conditions combine with OR; data authors expecting AND must split cards.
func (s *Selector) Eligible(card EventCard) bool {
	if len(card.RequiredConditions) == 0 {
		return true
	}
	for cond, threshold := range card.RequiredConditions {
		if s.satisfied(cond, threshold) {
			return true
		}
	}
	return false
}

func (s *Selector) satisfied(cond Condition, threshold int) bool {
	switch cond {
	case CondMinFuel:
		return s.res.Fuel > threshold
	case CondMinHull:
		return s.res.Hull > threshold
	case CondQuizErrorCount:
		return s.res.ErrorCount >= threshold
	default:
		return false
	}
}

// Scale returns a working copy of card with its severity adjusted to the
// error count. Positive cards come back unchanged.
func (s *Selector) Scale(card EventCard) EventCard {
	if !card.IsNegative() {
		return card
	}
	return card.Scaled(s.dm.SeverityScale(s.res.ErrorCount))
}
