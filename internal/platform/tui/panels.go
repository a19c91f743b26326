package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starquest/internal/voyage"
)

// Panel styles
var (
	hudStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)

	eventBadBorder  = lipgloss.Color("9")
	eventGoodBorder = lipgloss.Color("10")

	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	flashStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	helpStyle   = lipgloss.NewStyle().Padding(0, 1)

	debugStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("5")).
			Padding(0, 1)
)

// Resource thresholds that turn the HUD red.
const (
	lowFuel = 5
	lowHull = 3
)

// renderHUD renders the status line above the map.
func renderHUD(v voyage.View, title string, width int) string {
	r := v.Resources

	fuel := okStyle.Render(fmt.Sprintf("%d", r.Fuel))
	if r.Fuel <= lowFuel {
		fuel = lowStyle.Render(fmt.Sprintf("%d", r.Fuel))
	}
	hull := okStyle.Render(fmt.Sprintf("%d", r.Hull))
	if r.Hull <= lowHull {
		hull = lowStyle.Render(fmt.Sprintf("%d", r.Hull))
	}

	parts := []string{
		hudStyle.Render("STARQUEST · " + title),
		labelStyle.Render("Fuel ") + fuel,
		labelStyle.Render("Hull ") + hull,
		labelStyle.Render("Errors ") + fmt.Sprintf("%d/%d", r.ErrorCount, r.MaxError),
		labelStyle.Render("Pos ") + v.Pos.String(),
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "  "))
}

// renderStatus renders the idle panel while exploring.
func renderStatus(v voyage.View, flash string, width int) string {
	var b strings.Builder
	if v.Location != nil {
		b.WriteString(promptStyle.Render(v.Location.Name))
		b.WriteString(labelStyle.Render("  (visited)"))
	} else {
		b.WriteString(labelStyle.Render("Deep space. Pick a heading."))
	}
	if flash != "" {
		b.WriteString("\n")
		b.WriteString(flashStyle.Render(flash))
	}
	return panelStyle.Width(width).Render(b.String())
}

// renderNarration renders a story line or feedback message.
func renderNarration(text string, width int) string {
	body := text + "\n" + hintStyle.Render("enter to continue")
	return panelStyle.Width(width).Render(body)
}

// renderChallenge renders the active question.
func renderChallenge(ch voyage.Challenge, input, flash string, width int) string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(ch.Prompt()))
	b.WriteString("\n")

	switch c := ch.(type) {
	case voyage.MultipleChoice:
		for i, opt := range c.Options {
			fmt.Fprintf(&b, "  [%d] %s\n", i, opt)
		}
		b.WriteString(hintStyle.Render("press the option number"))
	case voyage.NumericTask:
		b.WriteString(input)
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("enter to submit"))
	}

	if flash != "" {
		b.WriteString("\n")
		b.WriteString(flashStyle.Render(flash))
	}
	return panelStyle.Width(width).Render(b.String())
}

// renderEventCard renders an event card, revealing its text progressively.
func renderEventCard(card *voyage.EventCard, text string, reveal int, animating bool, width int) string {
	if card == nil {
		return ""
	}

	border := eventGoodBorder
	if card.IsNegative() {
		border = eventBadBorder
	}

	shown := []rune(text)
	if animating && reveal < len(shown) {
		shown = shown[:reveal]
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(card.Name))
	b.WriteString("\n")
	b.WriteString(string(shown))
	if !animating {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("hull %+d  fuel %+d", card.HullChange, card.FuelChange)))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("enter to continue"))
	}

	return panelStyle.BorderForeground(border).Width(width).Render(b.String())
}

// renderGameOver renders the final summary.
func renderGameOver(v voyage.View, score int, embedded bool, width int) string {
	var b strings.Builder
	if v.Abandoned {
		b.WriteString(lowStyle.Render("VOYAGE ABANDONED"))
	} else {
		b.WriteString(lowStyle.Render("GAME OVER"))
	}
	b.WriteString("\n")
	b.WriteString(v.Reason)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Score %d  ·  visited %d  ·  answers %d/%d  ·  moves %d",
		score, v.Stats.Visited, v.Stats.Correct, v.Stats.Correct+v.Stats.Wrong, v.Stats.Moves)
	b.WriteString("\n")

	hint := "r new voyage · q quit"
	if embedded {
		hint = "r new voyage · b menu · q quit"
	}
	b.WriteString(hintStyle.Render(hint))
	return panelStyle.BorderForeground(eventBadBorder).Width(width).Render(b.String())
}

// renderDebug renders the difficulty internals and the location list.
func renderDebug(v voyage.View, locs []voyage.Location, width, height int) string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("DEBUG"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "state   %s\n", v.State)
	fmt.Fprintf(&b, "P(evt)  %.2f\n", v.TriggerProbability)
	fmt.Fprintf(&b, "P(neg)  %.2f\n", v.NegativeWeight)
	fmt.Fprintf(&b, "events  %d\n", v.Stats.Events)
	b.WriteString("\n")
	for _, loc := range locs {
		mark := " "
		if loc.Visited {
			mark = "✓"
		}
		fmt.Fprintf(&b, "%s %s %s\n", mark, loc.Pos, loc.Name)
	}

	return debugStyle.
		Width(width - 2).
		MaxHeight(height).
		Render(strings.TrimRight(b.String(), "\n"))
}
