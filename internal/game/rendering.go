package game

import (
	"strings"

	"github.com/marlkit/boxpush/internal/game/core"
)

// This file contains the debugging views of an episode.

// ANSI color codes for terminal rendering
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
)

var agentColors = [core.NumAgents]string{ColorRed, ColorBlue}

// String renders the arena row-major: agents as heading arrows (the agent
// index before the opening draw), b and B for the boxes, g for the goal,
// # for walls, . for open floor. Occupants cover the terrain under them.
func (s *State) String() string {
	var sb strings.Builder
	sb.Grow((s.layout.Cols() + 1) * s.layout.Rows())
	for r := 0; r < s.layout.Rows(); r++ {
		for c := 0; c < s.layout.Cols(); c++ {
			sb.WriteRune(s.cellRune(core.Coordinate{Row: r, Col: c}))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ColorString is String with ANSI colors and a legend, for interactive
// terminals.
func (s *State) ColorString() string {
	var sb strings.Builder
	sb.Grow((s.layout.Cols()*8 + 10) * (s.layout.Rows() + 2))
	for r := 0; r < s.layout.Rows(); r++ {
		for c := 0; c < s.layout.Cols(); c++ {
			cell := core.Coordinate{Row: r, Col: c}
			sb.WriteString(s.cellColor(cell))
			sb.WriteRune(s.cellRune(cell))
			sb.WriteString(ColorReset)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n^>v<=agents b=small box B=large box g=goal #=wall\n")
	return sb.String()
}

var headingRunes = [core.NumOrientations]rune{'^', '>', 'v', '<'}

func (s *State) cellRune(c core.Coordinate) rune {
	for i := range s.agents {
		if s.agents[i].pos != c {
			continue
		}
		if !s.agents[i].orient.Valid() {
			return rune('0' + i)
		}
		return headingRunes[s.agents[i].orient]
	}
	if c == s.smallBox {
		return 'b'
	}
	if inLargeBox(s.largeBox, s.layout.LargeBoxWidth(), c) {
		return 'B'
	}
	kind, err := s.layout.CellKind(c)
	if err != nil {
		return '?'
	}
	switch kind {
	case core.CellWall:
		return '#'
	case core.CellGoal:
		return 'g'
	default:
		return '.'
	}
}

func (s *State) cellColor(c core.Coordinate) string {
	for i := range s.agents {
		if s.agents[i].pos == c {
			return agentColors[i]
		}
	}
	if c == s.smallBox || inLargeBox(s.largeBox, s.layout.LargeBoxWidth(), c) {
		return ColorYellow
	}
	if c == s.layout.Goal() {
		return ColorGreen
	}
	if kind, err := s.layout.CellKind(c); err == nil && kind == core.CellWall {
		return ColorGray
	}
	return ""
}
