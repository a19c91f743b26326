// Package voyage implements the adaptive event and challenge engine:
// ship resources, the world map, quizzes and numeric tasks, the event
// catalog with its adaptive selector, and the session state machine
// that ties them together.
//
// The engine contains pure logic with no terminal dependencies. The
// platform layer feeds intents into a Session and renders its View.
package voyage

// Resources holds the ship's consumables and the player's running error count.
type Resources struct {
	Fuel       int
	Hull       int
	ErrorCount int // Always within [0, MaxError]
	MaxError   int
}

// NewResources creates a resource state with a zero error count.
func NewResources(fuel, hull, maxError int) Resources {
	return Resources{
		Fuel:     fuel,
		Hull:     hull,
		MaxError: maxError,
	}
}

// RecordCorrect lowers the error count, stopping at zero.
func (r *Resources) RecordCorrect() {
	if r.ErrorCount > 0 {
		r.ErrorCount--
	}
}

// RecordMistake damages the hull and raises the error count, stopping at MaxError.
func (r *Resources) RecordMistake(damage int) {
	r.Hull -= damage
	if r.ErrorCount < r.MaxError {
		r.ErrorCount++
	}
}

// Apply adds an event card's effects in a single update.
func (r *Resources) Apply(card EventCard) {
	r.Fuel += card.FuelChange
	r.Hull += card.HullChange
}

// Destroyed reports whether the hull has failed.
func (r Resources) Destroyed() bool {
	return r.Hull <= 0
}

// CanMove reports whether there is fuel left for another move.
func (r Resources) CanMove() bool {
	return r.Fuel > 0
}
