package game

import (
	"fmt"

	"github.com/marlkit/boxpush/internal/game/core"
)

// agentState is one agent's pose on the grid.
type agentState struct {
	pos    core.Coordinate
	orient core.Orientation
}

// State is the mutable per-episode state: both agents' poses, both box
// positions, the initiative order fixed by the opening chance draw, and
// the turn bookkeeping. States sharing a Layout are otherwise fully
// isolated, so independent episodes can run concurrently as long as each
// State is driven by a single goroutine.
type State struct {
	layout *core.Layout
	params Params

	agents   [core.NumAgents]agentState
	smallBox core.Coordinate
	largeBox core.Coordinate // westmost cell of the run

	mover       Mover
	initiative  int // agent that wins resolution ties; -1 before the draw
	statuses    [core.NumAgents]ActionStatus
	steps       int
	lastReward  float64
	totalReward float64
	won         bool
	resolved    bool // at least one simultaneous turn has resolved
}

// NewState constructs the pre-draw state for one episode on layout.
// Agents start at the layout's start cells with unassigned orientations;
// the first mover is the opening chance draw.
func NewState(layout *core.Layout, params Params) (*State, error) {
	if layout == nil {
		return nil, fmt.Errorf("nil layout")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	s := &State{
		layout:     layout,
		params:     params,
		smallBox:   layout.SmallBoxStart(),
		largeBox:   layout.LargeBoxStart(),
		mover:      MoverChance,
		initiative: -1,
	}
	starts := layout.AgentStarts()
	for i := range s.agents {
		s.agents[i] = agentState{pos: starts[i], orient: core.OrientationInvalid}
	}
	return s, nil
}

// Clone returns an independent copy of s. The immutable layout is shared;
// everything mutable is copied, so the clone can be played forward without
// touching the original.
func (s *State) Clone() *State {
	dup := *s
	return &dup
}

// Layout returns the immutable arena the episode is played on.
func (s *State) Layout() *core.Layout { return s.layout }

// CurrentMover reports whose move resolves next.
func (s *State) CurrentMover() Mover { return s.mover }

// IsTerminal reports whether the episode is over.
func (s *State) IsTerminal() bool { return s.mover == MoverTerminal }

// Won reports whether the large box has reached the goal.
func (s *State) Won() bool { return s.won }

// Steps returns the number of resolved turns so far.
func (s *State) Steps() int { return s.steps }

// Horizon returns the episode's turn budget.
func (s *State) Horizon() int { return s.params.Horizon }

// Initiative returns the agent index that wins resolution ties, or -1
// before the opening draw.
func (s *State) Initiative() int { return s.initiative }

// AgentPosition returns agent's current cell.
func (s *State) AgentPosition(agent int) (core.Coordinate, error) {
	if err := checkAgent(agent); err != nil {
		return core.Coordinate{}, err
	}
	return s.agents[agent].pos, nil
}

// AgentOrientation returns agent's current heading. It is
// OrientationInvalid until the opening draw has been applied.
func (s *State) AgentOrientation(agent int) (core.Orientation, error) {
	if err := checkAgent(agent); err != nil {
		return core.OrientationInvalid, err
	}
	return s.agents[agent].orient, nil
}

// SmallBox returns the small box's current cell.
func (s *State) SmallBox() core.Coordinate { return s.smallBox }

// LargeBox returns the westmost cell of the large box.
func (s *State) LargeBox() core.Coordinate { return s.largeBox }

// LargeBoxCells returns every cell the large box currently covers.
func (s *State) LargeBoxCells() []core.Coordinate {
	return largeCells(s.largeBox, s.layout.LargeBoxWidth())
}

// Statuses returns both agents' outcomes from the latest resolved turn,
// StatusUnresolved before the first one.
func (s *State) Statuses() [core.NumAgents]ActionStatus { return s.statuses }

// LegalActions lists the actions available to agent this turn. The domain
// imposes no action masking, so the list is always the full action set.
func (s *State) LegalActions(agent int) ([]Action, error) {
	if err := checkAgent(agent); err != nil {
		return nil, err
	}
	return []Action{TurnLeft, TurnRight, MoveForward, Stay}, nil
}

// Rewards returns the per-agent reward from the latest resolved turn.
// Both entries are identical because the task is fully cooperative. It is
// an error to ask before any turn has resolved.
func (s *State) Rewards() ([]float64, error) {
	if !s.resolved {
		return nil, ErrStaleState
	}
	return []float64{s.lastReward, s.lastReward}, nil
}

// Returns returns the per-agent sum of rewards since the episode began.
// It is an error to ask before any turn has resolved.
func (s *State) Returns() ([]float64, error) {
	if !s.resolved {
		return nil, ErrStaleState
	}
	return []float64{s.totalReward, s.totalReward}, nil
}

func checkAgent(agent int) error {
	if agent < 0 || agent >= core.NumAgents {
		return fmt.Errorf("agent %d: %w", agent, ErrInvalidAgent)
	}
	return nil
}

// largeCells expands a large box anchor into its covered cells.
func largeCells(anchor core.Coordinate, width int) []core.Coordinate {
	cells := make([]core.Coordinate, width)
	for i := range cells {
		cells[i] = core.Coordinate{Row: anchor.Row, Col: anchor.Col + i}
	}
	return cells
}

// inLargeBox reports whether c is covered by a large box anchored at
// anchor.
func inLargeBox(anchor core.Coordinate, width int, c core.Coordinate) bool {
	return c.Row == anchor.Row && c.Col >= anchor.Col && c.Col < anchor.Col+width
}
