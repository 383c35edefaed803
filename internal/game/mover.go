package game

import "fmt"

// Mover identifies whose move resolves next. An episode walks the chain
// Chance -> Simultaneous -> Terminal, staying on Simultaneous for one
// resolution per turn until the episode is won or the horizon runs out.
type Mover int

const (
	// MoverChance - the opening four-outcome draw has not been applied yet
	MoverChance Mover = iota

	// MoverSimultaneous - both agents submit actions, resolved in one pass
	MoverSimultaneous

	// MoverTerminal - the episode is over, no further resolution
	MoverTerminal
)

// String returns the string representation of a Mover.
func (m Mover) String() string {
	switch m {
	case MoverChance:
		return "chance"
	case MoverSimultaneous:
		return "simultaneous"
	case MoverTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("unknown(%d)", m)
	}
}

// IsTerminal returns true if no further mutation is possible.
func (m Mover) IsTerminal() bool {
	return m == MoverTerminal
}

// CanTransitionTo checks whether a transition to target is allowed.
func (m Mover) CanTransitionTo(target Mover) bool {
	switch m {
	case MoverChance:
		return target == MoverSimultaneous
	case MoverSimultaneous:
		return target == MoverTerminal
	default:
		return false
	}
}
