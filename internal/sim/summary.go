package sim

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates one batch run.
type Summary struct {
	// Episodes is the number of episodes that ran to termination.
	Episodes int
	// Wins counts episodes that ended with the large box on the goal.
	Wins int
	// MeanReturn and StdDevReturn describe the per-episode team returns.
	MeanReturn   float64
	StdDevReturn float64
	// MeanLength is the mean number of resolved turns per episode.
	MeanLength float64
	// Elapsed is the wall-clock duration of the batch.
	Elapsed time.Duration
}

// WinRate returns the fraction of episodes won, 0 for an empty batch.
func (s *Summary) WinRate() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Episodes)
}

// String renders the summary as a one-line report.
func (s *Summary) String() string {
	return fmt.Sprintf(
		"episodes=%d wins=%d win_rate=%.3f mean_return=%.3f stddev_return=%.3f mean_length=%.1f elapsed=%s",
		s.Episodes, s.Wins, s.WinRate(), s.MeanReturn, s.StdDevReturn, s.MeanLength, s.Elapsed.Round(time.Millisecond))
}

// summarize folds per-episode results into a Summary. Results are sorted
// by episode index first so the floating point sums do not depend on
// which worker finished when.
func summarize(results []episodeResult, elapsed time.Duration) *Summary {
	sum := &Summary{Episodes: len(results), Elapsed: elapsed}
	if len(results) == 0 {
		return sum
	}
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	returns := make([]float64, len(results))
	lengths := make([]float64, len(results))
	for i, res := range results {
		returns[i] = res.totalReturn
		lengths[i] = float64(res.length)
		if res.won {
			sum.Wins++
		}
	}
	sum.MeanReturn = stat.Mean(returns, nil)
	sum.MeanLength = stat.Mean(lengths, nil)
	if len(returns) > 1 {
		sum.StdDevReturn = stat.StdDev(returns, nil)
	}
	return sum
}
