package core

import (
	"fmt"
	"sort"
)

// NumAgents is the number of agents in the arena.
const NumAgents = 2

// Layout is the immutable arena description shared by every episode played
// on it. It is parsed from one string per grid row using these characters:
//
//	.  open floor
//	#  wall
//	b  small box start cell
//	B  large box start cell (a contiguous horizontal run)
//	g  goal cell
//	0  agent 0 start cell
//	1  agent 1 start cell
//
// The large box spans a horizontal run of at least two cells so that both
// agents can line up against one face of it. Box and agent start cells are
// open floor underneath; only the goal and walls are permanent terrain.
type Layout struct {
	rows, cols int
	cells      []CellKind

	agentStarts [NumAgents]Coordinate
	smallStart  Coordinate
	largeStart  Coordinate // westmost cell of the run
	largeWidth  int
	goal        Coordinate
}

// ParseLayout builds a Layout from one string per grid row. It rejects
// ragged rows, unknown characters, and arenas that do not contain exactly
// one goal, one small box, one contiguous large box run of width >= 2, and
// one start cell per agent.
func ParseLayout(rows []string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout: no rows")
	}
	l := &Layout{
		rows:  len(rows),
		cols:  len(rows[0]),
		cells: make([]CellKind, 0, len(rows)*len(rows[0])),
	}
	if l.cols == 0 {
		return nil, fmt.Errorf("layout: empty first row")
	}

	var goals, smalls int
	var larges []Coordinate
	var agentSeen [NumAgents]int
	for r, row := range rows {
		if len(row) != l.cols {
			return nil, fmt.Errorf("layout: row %d has %d cells, want %d", r, len(row), l.cols)
		}
		for c, ch := range row {
			coord := Coordinate{Row: r, Col: c}
			switch ch {
			case '.':
				l.cells = append(l.cells, CellOpen)
			case '#':
				l.cells = append(l.cells, CellWall)
			case 'b':
				l.cells = append(l.cells, CellSmallBox)
				l.smallStart = coord
				smalls++
			case 'B':
				l.cells = append(l.cells, CellLargeBox)
				larges = append(larges, coord)
			case 'g':
				l.cells = append(l.cells, CellGoal)
				l.goal = coord
				goals++
			case '0', '1':
				l.cells = append(l.cells, CellOpen)
				idx := int(ch - '0')
				l.agentStarts[idx] = coord
				agentSeen[idx]++
			default:
				return nil, fmt.Errorf("layout: unknown character %q at (%d,%d)", ch, r, c)
			}
		}
	}

	if goals != 1 {
		return nil, fmt.Errorf("layout: want exactly 1 goal cell, got %d", goals)
	}
	if smalls != 1 {
		return nil, fmt.Errorf("layout: want exactly 1 small box cell, got %d", smalls)
	}
	for i, n := range agentSeen {
		if n != 1 {
			return nil, fmt.Errorf("layout: want exactly 1 start cell for agent %d, got %d", i, n)
		}
	}
	if err := l.setLargeRun(larges); err != nil {
		return nil, err
	}
	return l, nil
}

// setLargeRun validates that the large box cells form one horizontal run
// and records its anchor and width.
func (l *Layout) setLargeRun(cells []Coordinate) error {
	if len(cells) < 2 {
		return fmt.Errorf("layout: large box must span at least 2 cells, got %d", len(cells))
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].Col < cells[j].Col })
	for i, c := range cells {
		if c.Row != cells[0].Row {
			return fmt.Errorf("layout: large box cells must share one row")
		}
		if c.Col != cells[0].Col+i {
			return fmt.Errorf("layout: large box cells must be contiguous")
		}
	}
	l.largeStart = cells[0]
	l.largeWidth = len(cells)
	return nil
}

// DefaultLayout returns the standard 8x8 arena: the goal on the top row,
// the large box mid-field two rows of open floor away from it, the small
// box off to one side, and the agents starting in the bottom corners.
func DefaultLayout() *Layout {
	l, err := ParseLayout([]string{
		"...g....",
		"..#..#..",
		"........",
		"...BB...",
		"......b.",
		"........",
		"........",
		"0......1",
	})
	if err != nil {
		// The embedded arena is known good.
		panic(err)
	}
	return l
}

// Rows returns the number of grid rows.
func (l *Layout) Rows() int { return l.rows }

// Cols returns the number of grid columns.
func (l *Layout) Cols() int { return l.cols }

// InBounds reports whether c lies on the grid.
func (l *Layout) InBounds(c Coordinate) bool {
	return c.Row >= 0 && c.Row < l.rows && c.Col >= 0 && c.Col < l.cols
}

// CellKind returns the static kind of the cell at c, or ErrOutOfBounds for
// coordinates off the grid. Callers on hot paths should bounds-check with
// InBounds instead of relying on the error.
func (l *Layout) CellKind(c Coordinate) (CellKind, error) {
	if !l.InBounds(c) {
		return CellOpen, fmt.Errorf("cell %v: %w", c, ErrOutOfBounds)
	}
	return l.cells[c.Row*l.cols+c.Col], nil
}

// Walkable reports whether c is on the grid and not a wall. Box start
// cells and the goal count as walkable floor.
func (l *Layout) Walkable(c Coordinate) bool {
	return l.InBounds(c) && l.cells[c.Row*l.cols+c.Col] != CellWall
}

// Goal returns the single goal cell.
func (l *Layout) Goal() Coordinate { return l.goal }

// AgentStarts returns the per-agent start cells.
func (l *Layout) AgentStarts() [NumAgents]Coordinate { return l.agentStarts }

// SmallBoxStart returns the small box's start cell.
func (l *Layout) SmallBoxStart() Coordinate { return l.smallStart }

// LargeBoxStart returns the westmost cell of the large box's start run.
func (l *Layout) LargeBoxStart() Coordinate { return l.largeStart }

// LargeBoxWidth returns the number of cells the large box spans.
func (l *Layout) LargeBoxWidth() int { return l.largeWidth }
