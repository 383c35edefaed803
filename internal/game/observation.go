package game

import (
	"fmt"

	"github.com/marlkit/boxpush/internal/game/core"
)

// Observation planes, one block per window cell. Each cell is one-hot
// across these, with occupants taking precedence over the terrain under
// them.
const (
	PlaneOwnAgent = iota
	PlaneOtherAgent
	PlaneSmallBox
	PlaneLargeBox
	PlaneWall
	PlaneGoal
	PlaneOpen
	NumPlanes
)

// ObservationLength returns the encoded vector length for an egocentric
// window of the given radius. It is fixed by the window size alone, so
// callers can size buffers without constructing a state.
func ObservationLength(radius int) int {
	side := 2*radius + 1
	return NumPlanes*side*side + core.NumOrientations + 2
}

// ObservationVector encodes what one agent can perceive: a square window
// of cells centered on the agent and rotated into its own frame (row 0 of
// the window is dead ahead), followed by the agent's orientation one-hot,
// the fraction of turns remaining, and the win flag. Cells beyond the
// grid edge read as walls. The other agent appears as a bare occupancy
// bit; its orientation is never part of the view.
func (s *State) ObservationVector(agent int) ([]float32, error) {
	if err := checkAgent(agent); err != nil {
		return nil, err
	}
	if s.mover == MoverChance {
		return nil, fmt.Errorf("observe before the opening draw: %w", ErrChancePending)
	}

	radius := s.params.ObservationRadius
	side := 2*radius + 1
	vec := make([]float32, ObservationLength(radius))

	me := s.agents[agent]
	other := s.agents[1-agent]

	idx := 0
	for wr := 0; wr < side; wr++ {
		for wc := 0; wc < side; wc++ {
			cell := me.pos.Add(frameOffset(wr-radius, wc-radius, me.orient))
			vec[idx+s.cellPlane(cell, me.pos, other.pos)] = 1
			idx += NumPlanes
		}
	}

	vec[idx+int(me.orient)] = 1
	idx += core.NumOrientations
	vec[idx] = float32(s.params.Horizon-s.steps) / float32(s.params.Horizon)
	idx++
	if s.won {
		vec[idx] = 1
	}
	return vec, nil
}

// frameOffset rotates a window offset from the agent's frame into world
// coordinates. In the agent frame, negative rows are ahead and positive
// columns are to the agent's right.
func frameOffset(dr, dc int, o core.Orientation) core.Coordinate {
	switch o {
	case core.North:
		return core.Coordinate{Row: dr, Col: dc}
	case core.East:
		return core.Coordinate{Row: dc, Col: -dr}
	case core.South:
		return core.Coordinate{Row: -dr, Col: -dc}
	default: // West
		return core.Coordinate{Row: -dc, Col: dr}
	}
}

// cellPlane classifies one world cell for the window encoding.
func (s *State) cellPlane(cell, me, other core.Coordinate) int {
	switch {
	case cell == me:
		return PlaneOwnAgent
	case cell == other:
		return PlaneOtherAgent
	case cell == s.smallBox:
		return PlaneSmallBox
	case inLargeBox(s.largeBox, s.layout.LargeBoxWidth(), cell):
		return PlaneLargeBox
	case !s.layout.Walkable(cell):
		return PlaneWall
	case cell == s.layout.Goal():
		return PlaneGoal
	default:
		return PlaneOpen
	}
}
