package core

// Action represents a semantic player intent, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - fly one tile up
	ActionDown           // S, J, Down arrow - fly one tile down
	ActionLeft           // A, H, Left arrow - fly one tile left
	ActionRight          // D, L, Right arrow - fly one tile right
	ActionConfirm        // Enter, Space - dismiss narration or event card
	ActionBack           // B, Escape - back to menu after game over
	ActionRestart        // R - new voyage after game over
	ActionDebug          // Tab - toggle the debug panel
	ActionQuit           // Q, Ctrl+C - abandon the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionDebug:
		return "Debug"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Delta returns the grid offset (rows, cols) of a movement action.
// ok is false for actions that do not move the ship.
func (a Action) Delta() (dRow, dCol int, ok bool) {
	switch a {
	case ActionUp:
		return -1, 0, true
	case ActionDown:
		return 1, 0, true
	case ActionLeft:
		return 0, -1, true
	case ActionRight:
		return 0, 1, true
	default:
		return 0, 0, false
	}
}
