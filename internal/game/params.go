package game

import (
	"fmt"

	"github.com/marlkit/boxpush/internal/config"
)

// Default episode constants, calibrated against the published benchmark.
const (
	DefaultHorizon           = 100
	DefaultStepCost          = -0.1
	DefaultWinBonus          = 100.0
	DefaultObservationRadius = 1
)

// Params fixes one episode's constants. Resolution itself never reads
// configuration; everything it needs is captured here at construction.
type Params struct {
	// Horizon is the maximum number of resolved turns before the episode
	// terminates regardless of the win flag.
	Horizon int
	// StepCost is added to the team reward on every resolved turn.
	StepCost float64
	// WinBonus is added exactly once, on the turn the large box reaches
	// the goal.
	WinBonus float64
	// ObservationRadius is the half-width of the egocentric window.
	ObservationRadius int
}

// DefaultParams returns the benchmark constants.
func DefaultParams() Params {
	return Params{
		Horizon:           DefaultHorizon,
		StepCost:          DefaultStepCost,
		WinBonus:          DefaultWinBonus,
		ObservationRadius: DefaultObservationRadius,
	}
}

// ParamsFromConfig builds Params from the loaded configuration tree.
func ParamsFromConfig() Params {
	cfg := config.Get()
	return Params{
		Horizon:           cfg.Game.Horizon,
		StepCost:          cfg.Game.Rewards.StepCost,
		WinBonus:          cfg.Game.Rewards.WinBonus,
		ObservationRadius: cfg.Game.Observation.Radius,
	}
}

// Validate checks p for values the engine cannot run with.
func (p Params) Validate() error {
	if p.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", p.Horizon)
	}
	if p.ObservationRadius < 1 {
		return fmt.Errorf("observation radius must be at least 1, got %d", p.ObservationRadius)
	}
	return nil
}
