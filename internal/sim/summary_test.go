package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	results := []episodeResult{
		{index: 1, totalReturn: -1.5, length: 10, won: false},
		{index: 0, totalReturn: 98.6, length: 14, won: true},
	}

	sum := summarize(results, 2*time.Second)

	assert.Equal(t, 2, sum.Episodes)
	assert.Equal(t, 1, sum.Wins)
	assert.InDelta(t, 0.5, sum.WinRate(), 1e-9)
	assert.InDelta(t, 48.55, sum.MeanReturn, 1e-9)
	assert.InDelta(t, 12.0, sum.MeanLength, 1e-9)
	assert.InDelta(t, 70.7814, sum.StdDevReturn, 1e-3)
	assert.Equal(t, 2*time.Second, sum.Elapsed)
}

func TestSummarizeSingleEpisode(t *testing.T) {
	sum := summarize([]episodeResult{
		{index: 0, totalReturn: -1.0, length: 10, won: false},
	}, time.Second)

	assert.Equal(t, 1, sum.Episodes)
	assert.Zero(t, sum.Wins)
	assert.InDelta(t, -1.0, sum.MeanReturn, 1e-9)
	// A single sample has no spread to estimate.
	assert.Zero(t, sum.StdDevReturn)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := summarize(nil, 0)

	assert.Zero(t, sum.Episodes)
	assert.Zero(t, sum.WinRate())
	assert.Zero(t, sum.MeanReturn)
}

func TestSummaryString(t *testing.T) {
	sum := &Summary{
		Episodes:     4,
		Wins:         1,
		MeanReturn:   23.65,
		StdDevReturn: 49.9,
		MeanLength:   12.5,
		Elapsed:      1500 * time.Millisecond,
	}

	s := sum.String()
	assert.Contains(t, s, "episodes=4")
	assert.Contains(t, s, "wins=1")
	assert.Contains(t, s, "win_rate=0.250")
	assert.Contains(t, s, "mean_length=12.5")
}
