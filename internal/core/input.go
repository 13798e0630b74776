package core

// Action represents a semantic host action, abstracted from physical key presses.
// Board buttons are not actions: keys bound to them drive virtual pins directly.
type Action int

const (
	ActionNone    Action = iota
	ActionButton1        // 1, D, Right arrow - board button B1
	ActionButton2        // 2 - board button B2
	ActionButton3        // 3 - board button B3
	ActionButton4        // 4, A, Left arrow - board button B4
	ActionRestart        // R key - reboot the board after the app terminated
	ActionHelp           // ? - toggle key help
	ActionQuit           // Q, Ctrl+C - power off
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionButton1:
		return "Button1"
	case ActionButton2:
		return "Button2"
	case ActionButton3:
		return "Button3"
	case ActionButton4:
		return "Button4"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Button returns the zero-based board button index for a button action.
func (a Action) Button() (int, bool) {
	switch a {
	case ActionButton1, ActionButton2, ActionButton3, ActionButton4:
		return int(a - ActionButton1), true
	default:
		return 0, false
	}
}
