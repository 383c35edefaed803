package game

import "fmt"

// Action is one agent's choice for a simultaneous turn. All four actions
// are legal on every turn; whether a move actually happens is reported
// through ActionStatus after resolution.
type Action int

const (
	TurnLeft Action = iota
	TurnRight
	MoveForward
	Stay
)

// NumActions is the size of the action set.
const NumActions = 4

// Valid reports whether a is in the action set.
func (a Action) Valid() bool {
	return a >= TurnLeft && a <= Stay
}

// String returns the lowercase action name.
func (a Action) String() string {
	switch a {
	case TurnLeft:
		return "turn left"
	case TurnRight:
		return "turn right"
	case MoveForward:
		return "move forward"
	case Stay:
		return "stay"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ActionStatus is one agent's outcome from the latest resolved turn.
// Blocked moves, collisions, and failed pushes are ordinary Fail statuses,
// not errors; they are expected transitions in normal play.
type ActionStatus int

const (
	StatusUnresolved ActionStatus = iota
	StatusSuccess
	StatusFail
)

// String returns the lowercase status name.
func (s ActionStatus) String() string {
	switch s {
	case StatusUnresolved:
		return "unresolved"
	case StatusSuccess:
		return "success"
	case StatusFail:
		return "fail"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}
