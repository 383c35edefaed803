package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/marlkit/boxpush/internal/config"
)

var (
	configPath string
	logLevel   string
	horizon    int
	episodes   int
	workers    int
	seed       int64
)

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "boxpush",
		Short: "Cooperative box pushing arena",
		Long: "boxpush rolls out episodes of the two-agent cooperative box pushing\n" +
			"arena: turn-based simultaneous moves, a shared team reward, and a large\n" +
			"box that only moves under a joint push.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error) (empty to use config default)")
	root.PersistentFlags().IntVar(&horizon, "horizon", -1, "Turn budget per episode (-1 to use config default)")
	root.PersistentFlags().IntVarP(&episodes, "episodes", "e", -1, "Number of episodes to run (-1 to use config default)")
	root.PersistentFlags().IntVar(&workers, "workers", -1, "Concurrent episode workers (-1 to use config default)")
	root.PersistentFlags().Int64Var(&seed, "seed", 0, "Base seed for episode generators (0 to seed from the clock)")

	root.AddCommand(playCommand())
	root.AddCommand(batchCommand())
	return root
}

// setup loads configuration, folds flag overrides into it, and configures
// the global logger. It runs before every subcommand.
func setup(cmd *cobra.Command) error {
	if err := config.Init(configPath); err != nil {
		return err
	}

	if cmd.Flags().Changed("horizon") {
		config.Set("game.horizon", horizon)
	}
	if cmd.Flags().Changed("episodes") {
		config.Set("sim.episodes", episodes)
	}
	if cmd.Flags().Changed("workers") {
		config.Set("sim.workers", workers)
	}
	if cmd.Flags().Changed("seed") {
		config.Set("sim.seed", seed)
	}

	cfg := config.Get()
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	setupLogging(level, cfg.Log.Format)

	if path := config.FilePath(); path != "" {
		log.Debug().Str("path", path).Msg("Loaded config file")
	}
	return nil
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func setupLogging(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	if format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
