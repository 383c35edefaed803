package game

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/marlkit/boxpush/internal/game/core"
)

// NumChanceOutcomes is the support size of the opening draw.
const NumChanceOutcomes = 4

// ChanceOutcome pairs an outcome index with its probability, in the shape
// chance-node drivers consume.
type ChanceOutcome struct {
	Outcome int
	Prob    float64
}

// ChanceOutcomes enumerates the opening draw: four equally likely
// outcomes. The low bit picks the initiative agent and the high bit picks
// the symmetric starting-orientation assignment.
func ChanceOutcomes() []ChanceOutcome {
	outcomes := make([]ChanceOutcome, NumChanceOutcomes)
	for i := range outcomes {
		outcomes[i] = ChanceOutcome{Outcome: i, Prob: 1.0 / NumChanceOutcomes}
	}
	return outcomes
}

// SampleChanceOutcome draws one outcome using rng. Pass nil to draw from
// the global source.
func SampleChanceOutcome(rng *rand.Rand) int {
	w := make([]float64, NumChanceOutcomes)
	for _, co := range ChanceOutcomes() {
		w[co.Outcome] = co.Prob
	}
	var src rand.Source
	if rng != nil {
		src = rng
	}
	idx, ok := sampleuv.NewWeighted(w, src).Take()
	if !ok {
		// Unreachable: the distribution always has positive mass.
		return 0
	}
	return idx
}

// ApplyChanceOutcome fixes the episode's initiative order and both
// starting orientations from outcome, exactly once per episode, and hands
// the move to the agents.
func (s *State) ApplyChanceOutcome(outcome int) error {
	switch s.mover {
	case MoverTerminal:
		return ErrEpisodeOver
	case MoverSimultaneous:
		return ErrChanceResolved
	}
	if outcome < 0 || outcome >= NumChanceOutcomes {
		return fmt.Errorf("outcome %d: %w", outcome, ErrInvalidOutcome)
	}

	s.initiative = outcome % 2
	if outcome/2 == 0 {
		s.agents[0].orient = core.North
		s.agents[1].orient = core.North
	} else {
		s.agents[0].orient = core.East
		s.agents[1].orient = core.West
	}
	s.mover = MoverSimultaneous
	return nil
}
