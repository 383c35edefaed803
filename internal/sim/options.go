package sim

import (
	"fmt"
	"time"

	"github.com/marlkit/boxpush/internal/config"
	"github.com/marlkit/boxpush/internal/game"
	"github.com/marlkit/boxpush/internal/game/core"
)

// Default batch constants, matching the configuration defaults.
const (
	DefaultEpisodes           = 100
	DefaultWorkers            = 4
	DefaultExperienceCapacity = 10000
)

// Options fixes one batch run. The Runner reads nothing from global
// configuration; callers translate their config into Options once and hand
// it over.
type Options struct {
	// Episodes is the number of episodes to roll out.
	Episodes int
	// Workers is the number of episodes resolved concurrently.
	Workers int
	// Seed is the base seed for the per-episode generators. Episode i
	// draws from Seed+i, so a batch is reproducible regardless of worker
	// scheduling. Zero means seed from the wall clock.
	Seed int64
	// Layout is the arena every episode is played on. Nil means the
	// standard arena.
	Layout *core.Layout
	// Params are the episode constants handed to every State. The zero
	// value means the benchmark defaults.
	Params game.Params
	// ExperienceEnabled turns trajectory collection on.
	ExperienceEnabled bool
	// ExperienceCapacity bounds the shared trajectory buffer.
	ExperienceCapacity int
}

// OptionsFromConfig builds Options from the loaded configuration tree.
func OptionsFromConfig() Options {
	cfg := config.Get()
	return Options{
		Episodes:           cfg.Sim.Episodes,
		Workers:            cfg.Sim.Workers,
		Seed:               cfg.Sim.Seed,
		Params:             game.ParamsFromConfig(),
		ExperienceEnabled:  cfg.Sim.Experience.Enabled,
		ExperienceCapacity: cfg.Sim.Experience.Capacity,
	}
}

// withDefaults fills unset fields and resolves a zero seed against the
// wall clock.
func (o Options) withDefaults() Options {
	if o.Episodes <= 0 {
		o.Episodes = DefaultEpisodes
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Layout == nil {
		o.Layout = core.DefaultLayout()
	}
	if o.Params == (game.Params{}) {
		o.Params = game.DefaultParams()
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.ExperienceCapacity <= 0 {
		o.ExperienceCapacity = DefaultExperienceCapacity
	}
	return o
}

// Validate checks the fields the Runner cannot default its way around.
func (o Options) Validate() error {
	if err := o.Params.Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	return nil
}
