package core

// Action represents a semantic game action, abstracted from physical key presses.
// Front ends decode input into actions; the game driver consumes them.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveUp           // Up arrow, W, K
	ActionMoveDown         // Down arrow, S, J
	ActionMoveLeft         // Left arrow, A, H
	ActionMoveRight        // Right arrow, D, L
	ActionReset            // R - start a new game
	ActionQuit             // Q, Esc, Ctrl+C - exit or dismiss the overlay
	ActionShowInfo         // I, ? - show the info overlay
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionReset:
		return "Reset"
	case ActionQuit:
		return "Quit"
	case ActionShowInfo:
		return "ShowInfo"
	default:
		return "Unknown"
	}
}

// IsMove returns true for the four slide actions.
func (a Action) IsMove() bool {
	return a >= ActionMoveUp && a <= ActionMoveRight
}
