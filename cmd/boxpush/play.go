package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/marlkit/boxpush/internal/config"
	"github.com/marlkit/boxpush/internal/game"
	"github.com/marlkit/boxpush/internal/game/core"
)

func playCommand() *cobra.Command {
	var delayMs int
	var colored bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Roll out a single episode and render every turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(delayMs, colored)
		},
	}
	cmd.Flags().IntVar(&delayMs, "delay", 150, "Milliseconds to wait between rendered turns")
	cmd.Flags().BoolVar(&colored, "color", true, "Render with ANSI colors")
	return cmd
}

func runPlay(delayMs int, colored bool) error {
	params := game.ParamsFromConfig()
	layout := core.DefaultLayout()

	baseSeed := config.Get().Sim.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(uint64(baseSeed)))

	state, err := game.NewState(layout, params)
	if err != nil {
		return err
	}

	episodeID := uuid.New().String()
	log.Info().
		Str("episode_id", episodeID).
		Int64("seed", baseSeed).
		Int("horizon", params.Horizon).
		Msg("Starting episode")

	outcome := game.SampleChanceOutcome(rng)
	if err := state.ApplyChanceOutcome(outcome); err != nil {
		return err
	}

	render := state.String
	if colored {
		render = state.ColorString
	}

	fmt.Printf("initiative: agent %d\n%s\n", state.Initiative(), render())
	for !state.IsTerminal() {
		var acts [core.NumAgents]game.Action
		for i := range acts {
			legal, err := state.LegalActions(i)
			if err != nil {
				return err
			}
			acts[i] = legal[rng.Intn(len(legal))]
		}
		if err := state.ApplySimultaneousActions(acts[0], acts[1]); err != nil {
			return err
		}

		rewards, err := state.Rewards()
		if err != nil {
			return err
		}
		fmt.Printf("turn %d/%d  agent0: %s (%s)  agent1: %s (%s)  reward %.1f\n%s\n",
			state.Steps(), params.Horizon,
			acts[0], state.Statuses()[0], acts[1], state.Statuses()[1],
			rewards[0], render())

		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}
	}

	totals, err := state.Returns()
	if err != nil {
		return err
	}
	if state.Won() {
		fmt.Printf("won in %d turns, return %.1f\n", state.Steps(), totals[0])
	} else {
		fmt.Printf("horizon reached after %d turns, return %.1f\n", state.Steps(), totals[0])
	}
	return nil
}
