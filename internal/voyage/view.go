package voyage

// View is what the presentation layer needs to draw the session.
type View struct {
	State     State
	Resources Resources
	Pos       Pos
	Location  *Location // location on the current tile, if any

	Narration string
	Challenge Challenge
	Event     *EventCard // scaled card awaiting dismissal
	EventText string

	Reason    string // set once the session is over
	Abandoned bool
	Stats     Stats

	TriggerProbability float64
	NegativeWeight     float64
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	v := View{
		State:              s.state,
		Resources:          s.res,
		Pos:                s.pos,
		Narration:          s.narration,
		Challenge:          s.challenge,
		Reason:             s.reason,
		Abandoned:          s.abandoned,
		Stats:              s.Stats(),
		TriggerProbability: s.selector.TriggerProbability(),
		NegativeWeight:     s.selector.NegativeWeight(),
	}
	if loc, ok := s.world.At(s.pos); ok {
		v.Location = &loc
	}
	if s.event != nil {
		card := *s.event
		v.Event = &card
		v.EventText = card.Text()
	}
	return v
}
