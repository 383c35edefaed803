package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/marlkit/boxpush/internal/experience"
	"github.com/marlkit/boxpush/internal/game"
	"github.com/marlkit/boxpush/internal/game/core"
	"github.com/marlkit/boxpush/internal/game/events"
)

// Runner rolls out batches of independent episodes across a pool of
// workers. Each episode owns its State and its random source, so workers
// never touch shared game state; the trajectory buffer and the event bus
// are the only shared sinks. Actions are drawn uniformly at random for
// both agents.
type Runner struct {
	opts   Options
	bus    events.Bus
	buffer *experience.Buffer
	logger zerolog.Logger
}

// episodeResult is one episode's contribution to the batch summary.
type episodeResult struct {
	index       int
	totalReturn float64
	length      int
	won         bool
}

// NewRunner builds a Runner from opts. bus may be nil when nothing
// listens for episode events.
func NewRunner(opts Options, bus events.Bus, logger zerolog.Logger) (*Runner, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		opts:   opts,
		bus:    bus,
		logger: logger.With().Str("component", "sim_runner").Logger(),
	}
	if opts.ExperienceEnabled {
		r.buffer = experience.NewBuffer(opts.ExperienceCapacity, logger)
	}
	return r, nil
}

// Options returns the resolved options the Runner is operating with,
// including the seed substituted for a zero Seed.
func (r *Runner) Options() Options { return r.opts }

// Buffer returns the shared trajectory buffer, nil when collection is
// disabled.
func (r *Runner) Buffer() *experience.Buffer { return r.buffer }

// Run rolls out the configured number of episodes and aggregates them.
// Cancelling ctx stops feeding the workers; Run then returns the summary
// of the episodes that finished together with ctx's error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	r.logger.Info().
		Int("episodes", r.opts.Episodes).
		Int("workers", r.opts.Workers).
		Int64("seed", r.opts.Seed).
		Bool("experience", r.buffer != nil).
		Msg("Starting batch run")

	jobs := make(chan int)
	results := make(chan episodeResult, r.opts.Episodes)
	errc := make(chan error, 1)

	var wg sync.WaitGroup
	for w := 0; w < r.opts.Workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			wlog := r.logger.With().Int("worker", workerID).Logger()
			for index := range jobs {
				res, err := r.runEpisode(ctx, index)
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						continue
					}
					wlog.Error().Err(err).Int("episode", index).Msg("Episode failed")
					select {
					case errc <- err:
					default:
					}
					continue
				}
				results <- res
			}
		}(w)
	}

feed:
	for i := 0; i < r.opts.Episodes; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	collected := make([]episodeResult, 0, r.opts.Episodes)
	for res := range results {
		collected = append(collected, res)
	}
	summary := summarize(collected, time.Since(start))

	select {
	case err := <-errc:
		return summary, err
	default:
	}
	if err := ctx.Err(); err != nil {
		r.logger.Warn().
			Int("completed", summary.Episodes).
			Int("requested", r.opts.Episodes).
			Msg("Batch run cancelled")
		return summary, err
	}

	r.logger.Info().
		Int("episodes", summary.Episodes).
		Int("wins", summary.Wins).
		Float64("mean_return", summary.MeanReturn).
		Float64("mean_length", summary.MeanLength).
		Dur("elapsed", summary.Elapsed).
		Msg("Batch run complete")
	return summary, nil
}

// runEpisode plays one episode to termination under the uniform-random
// joint policy. Episode index i draws from base seed + i so reruns of the
// same batch replay the same episodes.
func (r *Runner) runEpisode(ctx context.Context, index int) (episodeResult, error) {
	episodeID := uuid.New().String()
	rng := rand.New(rand.NewSource(uint64(r.opts.Seed) + uint64(index)))
	start := time.Now()

	state, err := game.NewState(r.opts.Layout, r.opts.Params)
	if err != nil {
		return episodeResult{}, fmt.Errorf("episode %d: %w", index, err)
	}

	logger := r.logger.With().Str("episode_id", episodeID).Int("episode", index).Logger()
	r.publish(events.NewEpisodeStartedEvent(episodeID, r.opts.Layout.Rows(), r.opts.Layout.Cols(), r.opts.Params.Horizon))

	outcome := game.SampleChanceOutcome(rng)
	if err := state.ApplyChanceOutcome(outcome); err != nil {
		return episodeResult{}, fmt.Errorf("episode %d: %w", index, err)
	}
	r.publish(events.NewMoverTransitionEvent(episodeID, game.MoverChance.String(), game.MoverSimultaneous.String(), "orientations drawn"))

	var orients [core.NumAgents]core.Orientation
	for i := range orients {
		orients[i], _ = state.AgentOrientation(i)
	}
	r.publish(events.NewChanceResolvedEvent(episodeID, outcome, state.Initiative(), orients))

	var collector *experience.Collector
	if r.buffer != nil {
		collector = experience.NewCollector(episodeID, r.logger)
	}

	for !state.IsTerminal() {
		select {
		case <-ctx.Done():
			return episodeResult{}, ctx.Err()
		default:
		}

		var acts [core.NumAgents]game.Action
		for i := range acts {
			legal, err := state.LegalActions(i)
			if err != nil {
				return episodeResult{}, fmt.Errorf("episode %d: %w", index, err)
			}
			acts[i] = legal[rng.Intn(len(legal))]
		}

		var prev *game.State
		if collector != nil {
			prev = state.Clone()
		}
		if err := state.ApplySimultaneousActions(acts[0], acts[1]); err != nil {
			return episodeResult{}, fmt.Errorf("episode %d turn %d: %w", index, state.Steps(), err)
		}

		rewards, err := state.Rewards()
		if err != nil {
			return episodeResult{}, fmt.Errorf("episode %d: %w", index, err)
		}
		r.publish(events.NewTurnResolvedEvent(episodeID, state.Steps(), acts, state.Statuses(), rewards[0]))

		if collector != nil {
			if err := collector.OnTurnResolved(prev, state, acts); err != nil {
				return episodeResult{}, fmt.Errorf("episode %d: %w", index, err)
			}
		}
	}

	returns, err := state.Returns()
	if err != nil {
		return episodeResult{}, fmt.Errorf("episode %d: %w", index, err)
	}

	reason := "horizon reached"
	if state.Won() {
		reason = "large box on goal"
	}
	r.publish(events.NewMoverTransitionEvent(episodeID, game.MoverSimultaneous.String(), game.MoverTerminal.String(), reason))
	r.publish(events.NewEpisodeEndedEvent(episodeID, state.Won(), state.Steps(), returns[0], time.Since(start)))

	if collector != nil {
		traj, err := collector.OnEpisodeEnd(state)
		if err != nil {
			return episodeResult{}, fmt.Errorf("episode %d: %w", index, err)
		}
		if err := r.buffer.Add(traj); err != nil {
			logger.Warn().Err(err).Msg("Dropping trajectory")
		}
	}

	logger.Debug().
		Bool("won", state.Won()).
		Int("turns", state.Steps()).
		Float64("return", returns[0]).
		Msg("Episode finished")

	return episodeResult{
		index:       index,
		totalReturn: returns[0],
		length:      state.Steps(),
		won:         state.Won(),
	}, nil
}

// publish forwards ev to the bus when one is attached.
func (r *Runner) publish(ev events.Event) {
	if r.bus != nil {
		r.bus.Publish(ev)
	}
}
