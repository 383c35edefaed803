package core

import "fmt"

// Coordinate identifies a cell on the arena grid. Row 0 is the top row,
// column 0 the leftmost column.
type Coordinate struct {
	Row, Col int
}

// Add returns the coordinate offset by other.
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// Move returns the neighboring coordinate one step along o. Passing an
// invalid orientation returns c unchanged.
func (c Coordinate) Move(o Orientation) Coordinate {
	return c.Add(o.Offset())
}

// IsAdjacentTo reports whether other is orthogonally adjacent to c.
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return c.ManhattanDistance(other) == 1
}

// ManhattanDistance returns the L1 distance between c and other.
func (c Coordinate) ManhattanDistance(other Coordinate) int {
	dr := c.Row - other.Row
	if dr < 0 {
		dr = -dr
	}
	dc := c.Col - other.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// String returns the coordinate in (row,col) form.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Orientation is a compass heading on the grid.
type Orientation int

const (
	North Orientation = iota
	East
	South
	West
	// OrientationInvalid marks a heading that has not been assigned yet.
	// Agents carry it only between episode construction and the opening
	// chance draw; it is never observable during play.
	OrientationInvalid
)

// NumOrientations is the number of valid compass headings.
const NumOrientations = 4

// Valid reports whether o is one of the four compass headings.
func (o Orientation) Valid() bool {
	return o >= North && o <= West
}

// Left returns the heading after a 90 degree counter-clockwise turn.
func (o Orientation) Left() Orientation {
	if !o.Valid() {
		return OrientationInvalid
	}
	return (o + 3) % NumOrientations
}

// Right returns the heading after a 90 degree clockwise turn.
func (o Orientation) Right() Orientation {
	if !o.Valid() {
		return OrientationInvalid
	}
	return (o + 1) % NumOrientations
}

// Offset returns the unit step along o, or the zero offset for an invalid
// heading.
func (o Orientation) Offset() Coordinate {
	switch o {
	case North:
		return Coordinate{Row: -1}
	case East:
		return Coordinate{Col: 1}
	case South:
		return Coordinate{Row: 1}
	case West:
		return Coordinate{Col: -1}
	default:
		return Coordinate{}
	}
}

// String returns the lowercase heading name.
func (o Orientation) String() string {
	switch o {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "invalid"
	}
}
