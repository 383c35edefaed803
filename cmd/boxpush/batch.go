package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/marlkit/boxpush/internal/config"
	"github.com/marlkit/boxpush/internal/game/events"
	"github.com/marlkit/boxpush/internal/game/events/subscribers"
	"github.com/marlkit/boxpush/internal/sim"
)

func batchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Roll out a batch of episodes and print the summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch()
		},
	}
}

func runBatch() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// A long batch can have its log level turned up mid-run by editing
	// the config file. A --log-level flag still wins.
	config.WatchConfig(func() {
		if logLevel == "" {
			zerolog.SetGlobalLevel(parseLevel(config.Get().Log.Level))
		}
	})

	// Episode events surface in the log at debug level; raise --log-level
	// to watch the stream.
	bus := events.NewEventBus(log.Logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("batch_logger", log.Logger, zerolog.DebugLevel))

	runner, err := sim.NewRunner(sim.OptionsFromConfig(), bus, log.Logger)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println(summary.String())
	if buffer := runner.Buffer(); buffer != nil {
		stats := buffer.Stats()
		log.Info().
			Int("trajectories", stats.CurrentSize).
			Int64("dropped", stats.TotalDropped).
			Float64("utilization_pct", stats.UtilizationPct).
			Msg("Experience buffer after run")
	}
	return nil
}
