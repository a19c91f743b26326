package voyage

import (
	"math"
	"strconv"
	"strings"
)

// Challenge is a quiz or task the player must answer.
// The set of variants is closed: MultipleChoice and NumericTask.
type Challenge interface {
	Prompt() string
	isChallenge()
}

// MultipleChoice is a question answered by picking an option index.
type MultipleChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
}

// Prompt returns the question text.
func (m MultipleChoice) Prompt() string { return m.Question }

func (MultipleChoice) isChallenge() {}

// NumericTask is a question answered with a number within 1% of the solution.
type NumericTask struct {
	Question     string
	CorrectValue float64
}

// Prompt returns the question text.
func (t NumericTask) Prompt() string { return t.Question }

func (NumericTask) isChallenge() {}

// toleranceRatio is the accepted relative deviation for numeric answers.
const toleranceRatio = 0.01

// Tolerance returns the absolute deviation accepted for this task.
func (t NumericTask) Tolerance() float64 {
	return math.Abs(t.CorrectValue) * toleranceRatio
}

// Accepts reports whether v is close enough to the solution.
func (t NumericTask) Accepts(v float64) bool {
	return math.Abs(v-t.CorrectValue) <= t.Tolerance()
}

// Outcome is the result of submitting an answer.
type Outcome struct {
	Resolved  bool // false when the submission was not a well-formed answer
	Correct   bool
	Destroyed bool // the wrong answer took the hull to zero
}

// Resolver checks answers and applies their consequences to the resources.
type Resolver struct {
	res    *Resources
	damage int
}

// NewResolver creates a resolver that charges damage hull per wrong answer.
func NewResolver(res *Resources, damage int) *Resolver {
	return &Resolver{res: res, damage: damage}
}

// ResolveChoice resolves a multiple-choice answer.
// Every index, even one out of range, consumes the attempt.
func (r *Resolver) ResolveChoice(mc MultipleChoice, index int) Outcome {
	return r.settle(index == mc.CorrectIndex)
}

// ResolveNumeric resolves a free-text numeric answer.
// Text that does not parse as a number leaves everything untouched.
func (r *Resolver) ResolveNumeric(task NumericTask, text string) Outcome {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) {
		return Outcome{}
	}
	return r.settle(task.Accepts(v))
}

func (r *Resolver) settle(correct bool) Outcome {
	if correct {
		r.res.RecordCorrect()
	} else {
		r.res.RecordMistake(r.damage)
	}
	return Outcome{
		Resolved:  true,
		Correct:   correct,
		Destroyed: r.res.Destroyed(),
	}
}

// ParseChoice converts typed input to an option index, or -1 if malformed.
func ParseChoice(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return -1
	}
	return n
}
