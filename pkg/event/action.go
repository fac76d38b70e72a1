package event

import "strings"

type Action string

const (
	ActionNewGame  Action = "new_game"
	ActionPause    Action = "pause"
	ActionRotate   Action = "rotate"
	ActionLeft     Action = "left"
	ActionRight    Action = "right"
	ActionSoftDrop Action = "soft_drop"
	ActionHardDrop Action = "hard_drop"
	ActionClose    Action = "close"
)

var Actions = []Action{
	ActionNewGame,
	ActionPause,
	ActionRotate,
	ActionLeft,
	ActionRight,
	ActionSoftDrop,
	ActionHardDrop,
	ActionClose,
}

// Game reports whether the action moves the active piece, as opposed to
// controlling the session.
func (a Action) Game() bool {
	switch a {
	case ActionRotate, ActionLeft, ActionRight, ActionSoftDrop, ActionHardDrop:
		return true
	default:
		return false
	}
}

// ParseCommand maps a command argument to an action. It understands the
// short words "up", "down" and "bottom" as well as the action names. When
// keyDownSlow is off, "down" drops to the bottom and "bottom" only lowers the
// piece one row.
func ParseCommand(args string, keyDownSlow bool) (Action, bool) {
	args = strings.ToLower(strings.TrimSpace(args))

	slow, fast := ActionSoftDrop, ActionHardDrop
	if !keyDownSlow {
		slow, fast = fast, slow
	}

	switch args {
	case "up":
		return ActionRotate, true
	case "down":
		return slow, true
	case "bottom":
		return fast, true
	case "q":
		return ActionClose, true
	}

	for _, a := range Actions {
		if string(a) == args {
			return a, true
		}
	}

	return "", false
}
