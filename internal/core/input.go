package core

// Action is a semantic player command, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionSteerLeft          // A, Left arrow
	ActionSteerRight         // D, Right arrow
	ActionTogglePause        // P, Space
	ActionBack               // Esc, B - back to the menu
	ActionQuit               // Q, Ctrl+C
	ActionScreenshot         // Ctrl+S
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSteerLeft:
		return "SteerLeft"
	case ActionSteerRight:
		return "SteerRight"
	case ActionTogglePause:
		return "TogglePause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}
