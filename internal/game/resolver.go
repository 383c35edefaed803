package game

import (
	"fmt"

	"github.com/marlkit/boxpush/internal/game/core"
)

// turnSnapshot is the read-only pre-turn view the resolution pass judges
// every move against. Working from one snapshot rather than mutating as
// agents are examined is what makes the turn simultaneous: the outcome
// never depends on the order the agents are considered, only the
// initiative tie-break distinguishes them.
type turnSnapshot struct {
	agents   [core.NumAgents]agentState
	smallBox core.Coordinate
	largeBox core.Coordinate
}

// moveOutcome is one agent's provisional forward-move result while the
// turn is still being resolved.
type moveOutcome struct {
	status    ActionStatus
	dest      core.Coordinate
	pushesBox bool
	boxDest   core.Coordinate
}

// turnResult is the fully resolved turn, applied to the State in one shot.
type turnResult struct {
	agents   [core.NumAgents]agentState
	statuses [core.NumAgents]ActionStatus
	smallBox core.Coordinate
	largeBox core.Coordinate
	won      bool
}

// ApplySimultaneousActions resolves one simultaneous turn from the pair
// of actions the agents chose independently. Both actions must be
// submitted together; resolution applies every effect atomically, updates
// the per-agent statuses and the team reward, and advances or terminates
// the episode.
func (s *State) ApplySimultaneousActions(action0, action1 Action) error {
	switch s.mover {
	case MoverTerminal:
		return ErrEpisodeOver
	case MoverChance:
		return ErrChancePending
	}
	acts := [core.NumAgents]Action{action0, action1}
	for i, a := range acts {
		if !a.Valid() {
			return fmt.Errorf("agent %d submitted %d: %w", i, int(a), ErrInvalidAction)
		}
	}
	s.resolveTurn(acts)
	return nil
}

func (s *State) resolveTurn(acts [core.NumAgents]Action) {
	snap := turnSnapshot{agents: s.agents, smallBox: s.smallBox, largeBox: s.largeBox}
	res := s.resolveActions(snap, acts)

	s.agents = res.agents
	s.smallBox = res.smallBox
	s.largeBox = res.largeBox
	s.statuses = res.statuses

	reward := s.params.StepCost
	if res.won {
		s.won = true
		reward += s.params.WinBonus
	}
	s.lastReward = reward
	s.totalReward += reward
	s.steps++
	s.resolved = true

	if s.won || s.steps >= s.params.Horizon {
		s.mover = MoverTerminal
	}
}

// resolveActions computes the whole turn from the pre-turn snapshot.
func (s *State) resolveActions(snap turnSnapshot, acts [core.NumAgents]Action) turnResult {
	res := turnResult{
		agents:   snap.agents,
		smallBox: snap.smallBox,
		largeBox: snap.largeBox,
	}

	// Rotations and stays always succeed.
	var fwd [core.NumAgents]bool
	for i, a := range acts {
		switch a {
		case TurnLeft:
			res.agents[i].orient = snap.agents[i].orient.Left()
			res.statuses[i] = StatusSuccess
		case TurnRight:
			res.agents[i].orient = snap.agents[i].orient.Right()
			res.statuses[i] = StatusSuccess
		case Stay:
			res.statuses[i] = StatusSuccess
		default:
			fwd[i] = true
		}
	}
	if !fwd[0] && !fwd[1] {
		return res
	}

	var target [core.NumAgents]core.Coordinate
	for i := range target {
		target[i] = snap.agents[i].pos.Move(snap.agents[i].orient)
	}

	// Head-on swap: both step into each other's cells, neither moves.
	if fwd[0] && fwd[1] &&
		target[0] == snap.agents[1].pos && target[1] == snap.agents[0].pos {
		res.statuses[0] = StatusFail
		res.statuses[1] = StatusFail
		return res
	}

	// Joint push of the large box: both agents drive into box cells with
	// matching headings. The box is too heavy for anything less.
	if fwd[0] && fwd[1] && s.isJointLargePush(snap, target) {
		off := snap.agents[0].orient.Offset()
		if s.largePathClear(snap, off) {
			res.largeBox = snap.largeBox.Add(off)
			for i := range res.agents {
				res.agents[i].pos = target[i]
				res.statuses[i] = StatusSuccess
			}
			res.won = inLargeBox(res.largeBox, s.layout.LargeBoxWidth(), s.layout.Goal())
		} else {
			res.statuses[0] = StatusFail
			res.statuses[1] = StatusFail
		}
		return res
	}

	// Both want the same cell: initiative wins it, the other fails. The
	// contested cell is never either agent's own cell, so the loser needs
	// no further analysis.
	loser := -1
	if fwd[0] && fwd[1] && target[0] == target[1] {
		loser = 1 - s.initiative
		res.statuses[loser] = StatusFail
	}

	// Judge the surviving forward moves against the snapshot. An agent
	// stepping into the other's cell needs the other's own outcome first,
	// so settle independent moves before dependent ones; a mutual
	// dependency is the swap already handled above.
	var outs [core.NumAgents]moveOutcome
	for i := 0; i < core.NumAgents; i++ {
		if fwd[i] && i != loser && target[i] != snap.agents[1-i].pos {
			outs[i] = s.resolveForward(snap, i, target[i])
		}
	}
	for i := 0; i < core.NumAgents; i++ {
		if !fwd[i] || i == loser || target[i] != snap.agents[1-i].pos {
			continue
		}
		j := 1 - i
		if fwd[j] && outs[j].status == StatusSuccess {
			outs[i] = moveOutcome{status: StatusSuccess, dest: target[i]}
		} else {
			outs[i] = moveOutcome{status: StatusFail}
		}
	}

	// A walked move and a pushed box can land on the same cell; the
	// initiative side keeps its move.
	for p := 0; p < core.NumAgents; p++ {
		w := 1 - p
		if outs[p].status == StatusSuccess && outs[p].pushesBox &&
			outs[w].status == StatusSuccess && !outs[w].pushesBox &&
			outs[w].dest == outs[p].boxDest {
			if s.initiative == w {
				outs[p] = moveOutcome{status: StatusFail}
			} else {
				outs[w] = moveOutcome{status: StatusFail}
			}
		}
	}

	for i := 0; i < core.NumAgents; i++ {
		if !fwd[i] || i == loser {
			continue
		}
		res.statuses[i] = outs[i].status
		if outs[i].status != StatusSuccess {
			continue
		}
		res.agents[i].pos = outs[i].dest
		if outs[i].pushesBox {
			res.smallBox = outs[i].boxDest
		}
	}
	return res
}

// resolveForward judges agent i's forward move into a cell that is not
// the other agent's, reading only the snapshot.
func (s *State) resolveForward(snap turnSnapshot, i int, t core.Coordinate) moveOutcome {
	width := s.layout.LargeBoxWidth()

	// Wall or edge of the grid.
	if !s.layout.Walkable(t) {
		return moveOutcome{status: StatusFail}
	}
	// The large box without a joint push never moves.
	if inLargeBox(snap.largeBox, width, t) {
		return moveOutcome{status: StatusFail}
	}
	// The small box yields to a single pusher if the cell beyond it is
	// free floor.
	if t == snap.smallBox {
		boxDest := t.Move(snap.agents[i].orient)
		if !s.layout.Walkable(boxDest) ||
			boxDest == snap.agents[1-i].pos ||
			inLargeBox(snap.largeBox, width, boxDest) {
			return moveOutcome{status: StatusFail}
		}
		return moveOutcome{status: StatusSuccess, dest: t, pushesBox: true, boxDest: boxDest}
	}
	return moveOutcome{status: StatusSuccess, dest: t}
}

// isJointLargePush reports whether both forward moves together qualify as
// a push of the large box: distinct box cells targeted from one shared
// heading.
func (s *State) isJointLargePush(snap turnSnapshot, target [core.NumAgents]core.Coordinate) bool {
	if snap.agents[0].orient != snap.agents[1].orient {
		return false
	}
	width := s.layout.LargeBoxWidth()
	for i := range target {
		if !inLargeBox(snap.largeBox, width, target[i]) {
			return false
		}
	}
	return true
}

// largePathClear reports whether every cell the large box would newly
// cover after shifting by off is free floor.
func (s *State) largePathClear(snap turnSnapshot, off core.Coordinate) bool {
	width := s.layout.LargeBoxWidth()
	for _, c := range largeCells(snap.largeBox, width) {
		nc := c.Add(off)
		if inLargeBox(snap.largeBox, width, nc) {
			continue // still under the box after the shift
		}
		if !s.layout.Walkable(nc) || nc == snap.smallBox {
			return false
		}
	}
	return true
}
