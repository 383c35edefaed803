package experience

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlkit/boxpush/internal/game"
	"github.com/marlkit/boxpush/internal/game/core"
	"github.com/marlkit/boxpush/internal/testutil"
)

func TestCollector_RecordsSteps(t *testing.T) {
	st := testutil.StartedState(t, core.DefaultLayout(), 0)
	collector := NewCollector("ep-1", zerolog.Nop())

	assert.Equal(t, "ep-1", collector.EpisodeID())
	assert.Equal(t, 0, collector.StepCount())

	actions := [core.NumAgents]game.Action{game.Stay, game.Stay}

	prev := st.Clone()
	require.NoError(t, st.ApplySimultaneousActions(actions[0], actions[1]))
	require.NoError(t, collector.OnTurnResolved(prev, st, actions))

	require.Equal(t, 1, collector.StepCount())

	step := collector.Steps()[0]
	assert.Equal(t, 1, step.Turn)
	assert.Equal(t, actions, step.Actions)
	assert.InDelta(t, -0.1, step.Reward, 1e-9)
	assert.False(t, step.Done)
	for i := 0; i < core.NumAgents; i++ {
		assert.Len(t, step.Observations[i], game.ObservationLength(game.DefaultObservationRadius))
		assert.Equal(t, game.StatusSuccess, step.Statuses[i])
	}

	// Each agent observes itself at the window center
	side := 2*game.DefaultObservationRadius + 1
	centerBlock := (side * side / 2) * game.NumPlanes
	for i := 0; i < core.NumAgents; i++ {
		assert.Equal(t, float32(1), step.Observations[i][centerBlock+game.PlaneOwnAgent])
	}
}

func TestCollector_SealsTrajectory(t *testing.T) {
	st := testutil.StartedState(t, core.DefaultLayout(), 0)
	collector := NewCollector("ep-2", zerolog.Nop())

	actions := [core.NumAgents]game.Action{game.TurnLeft, game.TurnRight}
	for turn := 0; turn < 3; turn++ {
		prev := st.Clone()
		require.NoError(t, st.ApplySimultaneousActions(actions[0], actions[1]))
		require.NoError(t, collector.OnTurnResolved(prev, st, actions))
	}

	traj, err := collector.OnEpisodeEnd(st)
	require.NoError(t, err)

	assert.Equal(t, "ep-2", traj.EpisodeID)
	assert.Equal(t, 3, traj.Length())
	assert.InDelta(t, -0.3, traj.TotalReward, 1e-9)
	assert.False(t, traj.Won)
	assert.Equal(t, 3, traj.FinalTurn)

	// Sealing copies: clearing the collector does not touch the trajectory
	collector.Clear()
	assert.Equal(t, 0, collector.StepCount())
	assert.Equal(t, 3, traj.Length())
}

func TestCollector_WinningTrajectory(t *testing.T) {
	st := testutil.StartedState(t, testutil.GoalAdjacentLayout(), 0)
	collector := NewCollector("ep-win", zerolog.Nop())

	// Both agents start beneath the large box facing north, so one joint
	// forward push lands it on the goal.
	actions := [core.NumAgents]game.Action{game.MoveForward, game.MoveForward}
	prev := st.Clone()
	require.NoError(t, st.ApplySimultaneousActions(actions[0], actions[1]))
	require.NoError(t, collector.OnTurnResolved(prev, st, actions))

	require.True(t, st.IsTerminal())
	require.True(t, st.Won())

	traj, err := collector.OnEpisodeEnd(st)
	require.NoError(t, err)

	assert.True(t, traj.Won)
	assert.Equal(t, 1, traj.FinalTurn)
	assert.InDelta(t, 100.0-0.1, traj.TotalReward, 1e-9)
	require.Equal(t, 1, traj.Length())

	step := traj.Steps[0]
	assert.True(t, step.Done)
	assert.InDelta(t, 100.0-0.1, step.Reward, 1e-9)
	for i := 0; i < core.NumAgents; i++ {
		assert.Equal(t, game.StatusSuccess, step.Statuses[i])
	}
}

func TestCollector_RequiresDrawnOrientations(t *testing.T) {
	st, err := game.NewState(core.DefaultLayout(), game.DefaultParams())
	require.NoError(t, err)

	collector := NewCollector("ep-3", zerolog.Nop())
	actions := [core.NumAgents]game.Action{game.Stay, game.Stay}

	// Observations cannot be built while the opening draw is pending
	err = collector.OnTurnResolved(st, st, actions)
	assert.ErrorIs(t, err, game.ErrChancePending)
	assert.Equal(t, 0, collector.StepCount())
}

func TestCollector_EndBeforeFirstTurn(t *testing.T) {
	st := testutil.StartedState(t, core.DefaultLayout(), 0)
	collector := NewCollector("ep-4", zerolog.Nop())

	// No turn has been resolved yet, so there are no returns to seal
	_, err := collector.OnEpisodeEnd(st)
	assert.ErrorIs(t, err, game.ErrStaleState)
}
