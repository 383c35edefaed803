package experience

import (
	"github.com/marlkit/boxpush/internal/game"
	"github.com/marlkit/boxpush/internal/game/core"
)

// Step records one resolved simultaneous turn from both agents' perspectives.
// Observations are taken from the state the agents acted in; reward, statuses
// and the done flag come from the state after resolution.
type Step struct {
	Turn         int                               `json:"turn"`
	Observations [core.NumAgents][]float32         `json:"observations"`
	Actions      [core.NumAgents]game.Action       `json:"actions"`
	Statuses     [core.NumAgents]game.ActionStatus `json:"statuses"`
	Reward       float64                           `json:"reward"`
	Done         bool                              `json:"done"`
}

// Trajectory is the ordered record of a full episode
type Trajectory struct {
	EpisodeID   string  `json:"episode_id"`
	Steps       []Step  `json:"steps"`
	TotalReward float64 `json:"total_reward"`
	Won         bool    `json:"won"`
	FinalTurn   int     `json:"final_turn"`
}

// Length returns the number of recorded steps
func (t *Trajectory) Length() int {
	return len(t.Steps)
}
