// Package content loads scenario packs: locations, stories, challenge
// pools and event cards described in YAML.
package content

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/starquest/internal/voyage"
)

// Pack is the YAML structure of a scenario file.
type Pack struct {
	ID          string                    `yaml:"id"`
	Title       string                    `yaml:"title"`
	Description string                    `yaml:"description,omitempty"`
	Start       PosDef                    `yaml:"start"`
	Bounds      *BoundsDef                `yaml:"bounds,omitempty"`
	Locations   []LocationDef             `yaml:"locations"`
	Challenges  map[string][]ChallengeDef `yaml:"challenges"`
	Events      []EventDef                `yaml:"events"`

	FilePath string `yaml:"-"`
}

// PosDef is a grid coordinate.
type PosDef struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// BoundsDef restricts movement to a rows x cols grid.
type BoundsDef struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// LocationDef describes a location.
type LocationDef struct {
	Name      string   `yaml:"name"`
	Row       int      `yaml:"row"`
	Col       int      `yaml:"col"`
	FuelBonus bool     `yaml:"fuel_bonus,omitempty"`
	Story     []string `yaml:"story,omitempty"`
}

// Challenge types.
const (
	ChallengeQuiz = "quiz"
	ChallengeTask = "task"
)

// ChallengeDef describes a quiz (options + correct_index) or a task (correct_value).
type ChallengeDef struct {
	Type         string   `yaml:"type"`
	Question     string   `yaml:"question"`
	Options      []string `yaml:"options,omitempty"`
	CorrectIndex *int     `yaml:"correct_index,omitempty"`
	CorrectValue *float64 `yaml:"correct_value,omitempty"`
}

// EventDef describes an event card.
type EventDef struct {
	Name               string         `yaml:"name"`
	Description        string         `yaml:"description"`
	HullChange         int            `yaml:"hull_change,omitempty"`
	FuelChange         int            `yaml:"fuel_change,omitempty"`
	Type               string         `yaml:"type"`
	Category           string         `yaml:"category,omitempty"`
	RequiredConditions map[string]int `yaml:"required_conditions,omitempty"`
	Repeats            bool           `yaml:"repeats,omitempty"`
	Duration           int            `yaml:"duration,omitempty"`
}

// Parse decodes a YAML pack without validating it.
func Parse(data []byte) (*Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return &p, nil
}

// MustParse parses and validates embedded pack data, panicking on failure.
func MustParse(data []byte) *Pack {
	p, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("content: %v", err))
	}
	if err := Validate(p); err != nil {
		panic(fmt.Sprintf("content: pack %q: %v", p.ID, err))
	}
	return p
}

// Scenario validates the pack and converts it to engine data.
func (p *Pack) Scenario() (*voyage.Scenario, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	sc := &voyage.Scenario{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Start:       voyage.Pos{Row: p.Start.Row, Col: p.Start.Col},
		Locations:   make([]voyage.Location, 0, len(p.Locations)),
		Challenges:  make(map[string][]voyage.Challenge, len(p.Challenges)),
		Events:      make([]voyage.EventCard, 0, len(p.Events)),
	}
	if p.Bounds != nil {
		sc.Bounds = voyage.Bounds{Rows: p.Bounds.Rows, Cols: p.Bounds.Cols}
	}

	for _, l := range p.Locations {
		sc.Locations = append(sc.Locations, voyage.Location{
			Name:      l.Name,
			Pos:       voyage.Pos{Row: l.Row, Col: l.Col},
			FuelBonus: l.FuelBonus,
			Story:     l.Story,
		})
	}

	for pool, defs := range p.Challenges {
		cs := make([]voyage.Challenge, 0, len(defs))
		for _, d := range defs {
			cs = append(cs, d.challenge())
		}
		sc.Challenges[pool] = cs
	}

	for _, e := range p.Events {
		sc.Events = append(sc.Events, e.card())
	}

	return sc, nil
}

func (d ChallengeDef) challenge() voyage.Challenge {
	if d.Type == ChallengeTask {
		return voyage.NumericTask{Question: d.Question, CorrectValue: *d.CorrectValue}
	}
	return voyage.MultipleChoice{Question: d.Question, Options: d.Options, CorrectIndex: *d.CorrectIndex}
}

func (e EventDef) card() voyage.EventCard {
	var conds map[voyage.Condition]int
	if len(e.RequiredConditions) > 0 {
		conds = make(map[voyage.Condition]int, len(e.RequiredConditions))
		for k, v := range e.RequiredConditions {
			conds[voyage.Condition(k)] = v
		}
	}
	return voyage.EventCard{
		Name:               e.Name,
		Description:        e.Description,
		HullChange:         e.HullChange,
		FuelChange:         e.FuelChange,
		Type:               voyage.EventType(e.Type),
		Category:           e.Category,
		RequiredConditions: conds,
		Repeats:            e.Repeats,
		Duration:           e.Duration,
	}
}
