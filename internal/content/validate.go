package content

import (
	"fmt"
	"io"
	"sort"
	"text/template"

	"github.com/vovakirdan/starquest/internal/voyage"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a pack for content the engine cannot run.
// Checks:
//   - id present, bounds positive and containing every tile
//   - location names and tiles unique
//   - challenge pools named after a location or "default", challenges well formed
//   - event types, conditions and description templates valid
func Validate(p *Pack) error {
	if p.ID == "" {
		return ValidationError{Code: "MISSING_ID", Message: "pack has no id"}
	}

	if err := validateLocations(p); err != nil {
		return err
	}
	if err := validateChallenges(p); err != nil {
		return err
	}
	return validateEvents(p)
}

func validateLocations(p *Pack) error {
	inBounds := func(row, col int) bool {
		if p.Bounds == nil {
			return true
		}
		return row >= 0 && row < p.Bounds.Rows && col >= 0 && col < p.Bounds.Cols
	}

	if p.Bounds != nil {
		if p.Bounds.Rows <= 0 || p.Bounds.Cols <= 0 {
			return ValidationError{
				Code:    "INVALID_BOUNDS",
				Message: fmt.Sprintf("bounds %dx%d must be positive", p.Bounds.Rows, p.Bounds.Cols),
			}
		}
		if !inBounds(p.Start.Row, p.Start.Col) {
			return ValidationError{
				Code:    "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("start (%d,%d) lies outside the map", p.Start.Row, p.Start.Col),
			}
		}
	}

	names := make(map[string]bool)
	tiles := make(map[PosDef]string)
	for _, l := range p.Locations {
		if l.Name == "" {
			return ValidationError{Code: "MISSING_NAME", Message: fmt.Sprintf("location at (%d,%d) has no name", l.Row, l.Col)}
		}
		if l.Name == voyage.DefaultPool {
			return ValidationError{Code: "RESERVED_NAME", Message: fmt.Sprintf("location name %q is reserved", l.Name)}
		}
		if names[l.Name] {
			return ValidationError{Code: "DUPLICATE_LOCATION", Message: fmt.Sprintf("location %q defined twice", l.Name)}
		}
		names[l.Name] = true

		tile := PosDef{Row: l.Row, Col: l.Col}
		if other, taken := tiles[tile]; taken {
			return ValidationError{
				Code:    "DUPLICATE_TILE",
				Message: fmt.Sprintf("locations %q and %q share (%d,%d)", other, l.Name, l.Row, l.Col),
			}
		}
		tiles[tile] = l.Name

		if !inBounds(l.Row, l.Col) {
			return ValidationError{
				Code:    "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("location %q at (%d,%d) lies outside the map", l.Name, l.Row, l.Col),
			}
		}
	}
	return nil
}

func validateChallenges(p *Pack) error {
	known := make(map[string]bool, len(p.Locations)+1)
	known[voyage.DefaultPool] = true
	for _, l := range p.Locations {
		known[l.Name] = true
	}

	// Sorted for deterministic error reporting
	pools := make([]string, 0, len(p.Challenges))
	for name := range p.Challenges {
		pools = append(pools, name)
	}
	sort.Strings(pools)

	for _, pool := range pools {
		if !known[pool] {
			return ValidationError{Code: "UNKNOWN_POOL", Message: fmt.Sprintf("challenge pool %q matches no location", pool)}
		}
		for i, d := range p.Challenges[pool] {
			if err := validateChallenge(d); err != nil {
				return ValidationError{Code: "INVALID_CHALLENGE", Message: fmt.Sprintf("%s[%d]: %v", pool, i, err)}
			}
		}
	}
	return nil
}

func validateChallenge(d ChallengeDef) error {
	if d.Question == "" {
		return fmt.Errorf("empty question")
	}
	switch d.Type {
	case ChallengeQuiz:
		if len(d.Options) < 2 {
			return fmt.Errorf("quiz needs at least 2 options, got %d", len(d.Options))
		}
		if d.CorrectIndex == nil {
			return fmt.Errorf("quiz has no correct_index")
		}
		if *d.CorrectIndex < 0 || *d.CorrectIndex >= len(d.Options) {
			return fmt.Errorf("correct_index %d out of range", *d.CorrectIndex)
		}
	case ChallengeTask:
		if d.CorrectValue == nil {
			return fmt.Errorf("task has no correct_value")
		}
	default:
		return fmt.Errorf("unknown challenge type %q", d.Type)
	}
	return nil
}

func validateEvents(p *Pack) error {
	for _, e := range p.Events {
		if e.Name == "" {
			return ValidationError{Code: "MISSING_NAME", Message: "event has no name"}
		}
		switch voyage.EventType(e.Type) {
		case voyage.EventPositive, voyage.EventNegative:
		default:
			return ValidationError{Code: "INVALID_EVENT", Message: fmt.Sprintf("event %q has unknown type %q", e.Name, e.Type)}
		}
		for cond := range e.RequiredConditions {
			switch voyage.Condition(cond) {
			case voyage.CondMinFuel, voyage.CondMinHull, voyage.CondQuizErrorCount:
			default:
				return ValidationError{Code: "INVALID_EVENT", Message: fmt.Sprintf("event %q has unknown condition %q", e.Name, cond)}
			}
		}
		if err := checkTemplate(e.Description); err != nil {
			return ValidationError{Code: "INVALID_TEMPLATE", Message: fmt.Sprintf("event %q: %v", e.Name, err)}
		}
	}
	return nil
}

// checkTemplate parses and dry-runs an event description.
func checkTemplate(text string) error {
	tmpl, err := template.New("description").Option("missingkey=error").Parse(text)
	if err != nil {
		return err
	}
	return tmpl.Execute(io.Discard, struct{ Hull, Fuel int }{})
}
