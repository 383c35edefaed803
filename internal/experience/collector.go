package experience

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/marlkit/boxpush/internal/game"
	"github.com/marlkit/boxpush/internal/game/core"
)

// Collector accumulates the steps of a single episode and seals them into
// a Trajectory when the episode ends
type Collector struct {
	mu        sync.Mutex
	episodeID string
	steps     []Step
	logger    zerolog.Logger
}

// NewCollector creates a collector for one episode
func NewCollector(episodeID string, logger zerolog.Logger) *Collector {
	return &Collector{
		episodeID: episodeID,
		logger: logger.With().
			Str("component", "trajectory_collector").
			Str("episode_id", episodeID).
			Logger(),
	}
}

// EpisodeID returns the episode this collector records
func (c *Collector) EpisodeID() string {
	return c.episodeID
}

// OnTurnResolved records the transition produced by one simultaneous turn.
// prevState must be the state the actions were chosen in, currState the
// state after resolution.
func (c *Collector) OnTurnResolved(prevState, currState *game.State, actions [core.NumAgents]game.Action) error {
	var obs [core.NumAgents][]float32
	for i := 0; i < core.NumAgents; i++ {
		v, err := prevState.ObservationVector(i)
		if err != nil {
			return err
		}
		obs[i] = v
	}

	rewards, err := currState.Rewards()
	if err != nil {
		return err
	}

	step := Step{
		Turn:         currState.Steps(),
		Observations: obs,
		Actions:      actions,
		Statuses:     currState.Statuses(),
		Reward:       rewards[0],
		Done:         currState.IsTerminal(),
	}

	c.mu.Lock()
	c.steps = append(c.steps, step)
	c.mu.Unlock()

	c.logger.Debug().
		Int("turn", step.Turn).
		Float64("reward", step.Reward).
		Bool("done", step.Done).
		Msg("Collected step")

	return nil
}

// OnEpisodeEnd seals the collected steps into a trajectory
func (c *Collector) OnEpisodeEnd(finalState *game.State) (*Trajectory, error) {
	returns, err := finalState.Returns()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	steps := make([]Step, len(c.steps))
	copy(steps, c.steps)
	c.mu.Unlock()

	traj := &Trajectory{
		EpisodeID:   c.episodeID,
		Steps:       steps,
		TotalReward: returns[0],
		Won:         finalState.Won(),
		FinalTurn:   finalState.Steps(),
	}

	c.logger.Info().
		Int("steps", len(steps)).
		Float64("total_reward", traj.TotalReward).
		Bool("won", traj.Won).
		Msg("Episode ended, trajectory sealed")

	return traj, nil
}

// StepCount returns the current number of recorded steps
func (c *Collector) StepCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.steps)
}

// Steps returns a copy of all recorded steps
func (c *Collector) Steps() []Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]Step, len(c.steps))
	copy(result, c.steps)
	return result
}

// Clear removes all recorded steps
func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = c.steps[:0]
}
