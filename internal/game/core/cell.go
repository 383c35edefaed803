package core

// CellKind classifies a cell of the static arena layout.
type CellKind uint8

const (
	CellOpen CellKind = iota
	CellWall
	// CellSmallBox and CellLargeBox mark box start cells. The ground
	// underneath is ordinary open floor once the box has been pushed away.
	CellSmallBox
	CellLargeBox
	CellGoal
)

// String returns the lowercase kind name.
func (k CellKind) String() string {
	switch k {
	case CellOpen:
		return "open"
	case CellWall:
		return "wall"
	case CellSmallBox:
		return "small box"
	case CellLargeBox:
		return "large box"
	case CellGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Rune returns the layout character for k.
func (k CellKind) Rune() rune {
	switch k {
	case CellWall:
		return '#'
	case CellSmallBox:
		return 'b'
	case CellLargeBox:
		return 'B'
	case CellGoal:
		return 'g'
	default:
		return '.'
	}
}
