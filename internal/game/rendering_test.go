package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlkit/boxpush/internal/game/core"
)

func TestString_FreshEpisodeMatchesLayout(t *testing.T) {
	s, err := NewState(core.DefaultLayout(), DefaultParams())
	require.NoError(t, err)

	// Before the draw the agents render as their indices on their start
	// cells, so the view reproduces the layout text exactly.
	expected := strings.Join([]string{
		"...g....",
		"..#..#..",
		"........",
		"...BB...",
		"......b.",
		"........",
		"........",
		"0......1",
	}, "\n") + "\n"
	assert.Equal(t, expected, s.String())
}

func TestString_HeadingArrowsAndMovedBoxes(t *testing.T) {
	s := buildState(t, arenaWin, 0, [core.NumAgents]agentState{
		pose(2, 2, core.North),
		pose(2, 3, core.North),
	})

	before := strings.Join([]string{
		"..g...",
		"..BB..",
		"..^^..",
		"..b...",
	}, "\n") + "\n"
	assert.Equal(t, before, s.String())

	require.NoError(t, s.ApplySimultaneousActions(MoveForward, MoveForward))

	// The box covers the goal and the vacated start cells read as floor.
	after := strings.Join([]string{
		"..BB..",
		"..^^..",
		"......",
		"..b...",
	}, "\n") + "\n"
	assert.Equal(t, after, s.String())
}

func TestString_AllHeadings(t *testing.T) {
	tests := []struct {
		o     core.Orientation
		arrow string
	}{
		{core.North, "^"},
		{core.East, ">"},
		{core.South, "v"},
		{core.West, "<"},
	}

	for _, tt := range tests {
		s := buildState(t, arenaOpen, 0, [core.NumAgents]agentState{
			pose(2, 2, tt.o),
			pose(3, 4, tt.o),
		})
		assert.Equal(t, 2, strings.Count(s.String(), tt.arrow))
	}
}

func TestColorString(t *testing.T) {
	s := buildState(t, arenaWin, 0, [core.NumAgents]agentState{
		pose(2, 2, core.North),
		pose(2, 3, core.North),
	})

	out := s.ColorString()
	assert.Contains(t, out, ColorReset)
	assert.Contains(t, out, agentColors[0])
	assert.Contains(t, out, ColorYellow)
	assert.Contains(t, out, "b=small box B=large box")
}
