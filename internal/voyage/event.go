package voyage

import (
	"strings"
	"text/template"
)

// EventType separates helpful cards from harmful ones.
type EventType string

const (
	EventPositive EventType = "positive"
	EventNegative EventType = "negative"
)

// CategoryGameOver marks cards that end the session whenever they are eligible.
const CategoryGameOver = "game_over"

// Condition is a key of an event card's eligibility map.
type Condition string

const (
	CondMinFuel        Condition = "min_fuel"         // Fuel > threshold
	CondMinHull        Condition = "min_hull"         // Hull > threshold
	CondQuizErrorCount Condition = "quiz_error_count" // ErrorCount >= threshold
)

// EventCard is a catalog entry. Cards are passed by value; the catalog
// copy is never modified, and scaling always produces a new card.
type EventCard struct {
	Name string
	// Description is a text/template; {{.Hull}} and {{.Fuel}} expand to the
	// card's (possibly scaled) changes.
	Description        string
	HullChange         int
	FuelChange         int
	Type               EventType
	Category           string
	RequiredConditions map[Condition]int // read-only, shared between copies
	Repeats            bool              // carried, not consulted
	Duration           int               // carried, not consulted
}

// IsNegative reports whether the card comes from the negative pool.
func (c EventCard) IsNegative() bool {
	return c.Type == EventNegative
}

// Scaled returns a copy whose negative changes are multiplied by scale,
// truncated toward zero. Positive changes are kept as they are.
func (c EventCard) Scaled(scale float64) EventCard {
	out := c
	if out.HullChange < 0 {
		out.HullChange = int(float64(out.HullChange) * scale)
	}
	if out.FuelChange < 0 {
		out.FuelChange = int(float64(out.FuelChange) * scale)
	}
	return out
}

// Text renders the description with the card's current changes.
// A description that is not a valid template is returned verbatim.
func (c EventCard) Text() string {
	if !strings.Contains(c.Description, "{{") {
		return c.Description
	}
	tmpl, err := template.New(c.Name).Option("missingkey=error").Parse(c.Description)
	if err != nil {
		return c.Description
	}
	var sb strings.Builder
	data := struct{ Hull, Fuel int }{c.HullChange, c.FuelChange}
	if err := tmpl.Execute(&sb, data); err != nil {
		return c.Description
	}
	return sb.String()
}

// Catalog partitions event cards into negative and positive pools.
type Catalog struct {
	negative []EventCard
	positive []EventCard
}

// NewCatalog copies cards into a catalog. Cards of an unknown type are
// treated as negative.
func NewCatalog(cards []EventCard) *Catalog {
	c := &Catalog{}
	for _, card := range cards {
		if card.Type == EventPositive {
			c.positive = append(c.positive, card)
		} else {
			c.negative = append(c.negative, card)
		}
	}
	return c
}

// Negative returns the negative pool.
func (c *Catalog) Negative() []EventCard { return c.negative }

// Positive returns the positive pool.
func (c *Catalog) Positive() []EventCard { return c.positive }

// All returns every card, negative pool first.
func (c *Catalog) All() []EventCard {
	out := make([]EventCard, 0, len(c.negative)+len(c.positive))
	out = append(out, c.negative...)
	return append(out, c.positive...)
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	return len(c.negative) + len(c.positive)
}
