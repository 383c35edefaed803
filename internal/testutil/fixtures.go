package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marlkit/boxpush/internal/game"
	"github.com/marlkit/boxpush/internal/game/core"
)

// mustParse parses a known-good arena.
func mustParse(rows []string) *core.Layout {
	l, err := core.ParseLayout(rows)
	if err != nil {
		panic(err)
	}
	return l
}

// OpenLayout returns a 5x5 arena with no interior walls. The goal sits on
// the top row with two rows of open floor between it and the large box.
func OpenLayout() *core.Layout {
	return mustParse([]string{
		"..g..",
		".....",
		".BB..",
		"...b.",
		"0...1",
	})
}

// CorridorLayout returns a single-file lane walled on both sides, with
// the goal at the west end. The large box can only move along the lane.
func CorridorLayout() *core.Layout {
	return mustParse([]string{
		"########",
		"g.BB.b01",
		"########",
	})
}

// GoalAdjacentLayout returns an arena where each agent starts directly
// beneath one large box cell. With both agents facing north, a joint
// forward push wins on the first turn.
func GoalAdjacentLayout() *core.Layout {
	return mustParse([]string{
		".g...",
		".BB..",
		".01..",
		"....b",
		".....",
	})
}

// StartedState builds a State on layout with the benchmark params and the
// opening draw already applied.
func StartedState(t *testing.T, layout *core.Layout, outcome int) *game.State {
	t.Helper()
	return StartedStateWithParams(t, layout, game.DefaultParams(), outcome)
}

// StartedStateWithParams is StartedState with caller-chosen params.
func StartedStateWithParams(t *testing.T, layout *core.Layout, params game.Params, outcome int) *game.State {
	t.Helper()
	s, err := game.NewState(layout, params)
	require.NoError(t, err)
	require.NoError(t, s.ApplyChanceOutcome(outcome))
	return s
}
