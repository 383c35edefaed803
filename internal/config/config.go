package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the full configuration tree.
type Config struct {
	Game GameConfig `mapstructure:"game"`
	Sim  SimConfig  `mapstructure:"sim"`
	Log  LogConfig  `mapstructure:"log"`
}

// GameConfig holds episode mechanics configuration.
type GameConfig struct {
	Horizon     int               `mapstructure:"horizon"`
	Rewards     RewardsConfig     `mapstructure:"rewards"`
	Observation ObservationConfig `mapstructure:"observation"`
}

// RewardsConfig holds reward shaping settings.
type RewardsConfig struct {
	StepCost float64 `mapstructure:"step_cost"`
	WinBonus float64 `mapstructure:"win_bonus"`
}

// ObservationConfig holds observation window settings.
type ObservationConfig struct {
	Radius int `mapstructure:"radius"`
}

// SimConfig holds batch simulation configuration.
type SimConfig struct {
	Episodes   int              `mapstructure:"episodes"`
	Workers    int              `mapstructure:"workers"`
	Seed       int64            `mapstructure:"seed"`
	Experience ExperienceConfig `mapstructure:"experience"`
}

// ExperienceConfig holds trajectory collection settings.
type ExperienceConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Capacity int  `mapstructure:"capacity"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	cfg *Config
	vp  *viper.Viper

	// usedFile is the config file actually read, "" on defaults alone.
	usedFile string
)

// defaults covers every key the tree knows, so a bare Init without a
// config file still yields a runnable setup.
var defaults = map[string]interface{}{
	"game.horizon":            100,
	"game.rewards.step_cost":  -0.1,
	"game.rewards.win_bonus":  100.0,
	"game.observation.radius": 1,
	"sim.episodes":            100,
	"sim.workers":             4,
	"sim.seed":                int64(0),
	"sim.experience.enabled":  true,
	"sim.experience.capacity": 10000,
	"log.level":               "info",
	"log.format":              "console",
}

// Init loads configuration from the given file, or from the default
// search path when configPath is empty. Defaults and BOXPUSH_*
// environment variables apply either way; a missing file is not an
// error, a malformed one is.
func Init(configPath string) error {
	vp = viper.New()
	for key, value := range defaults {
		vp.SetDefault(key, value)
	}

	if configPath != "" {
		vp.SetConfigFile(configPath)
	} else {
		vp.SetConfigName("config")
		vp.SetConfigType("yaml")
		vp.AddConfigPath(".")
		vp.AddConfigPath("./config")
		vp.AddConfigPath("/etc/boxpush")
	}

	vp.SetEnvPrefix("BOXPUSH")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	usedFile = ""
	if err := vp.ReadInConfig(); err != nil {
		if !fileAbsent(err, configPath) {
			return fmt.Errorf("reading config: %w", err)
		}
	} else {
		usedFile = vp.ConfigFileUsed()
	}

	cfg = &Config{}
	if err := vp.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// fileAbsent reports whether err only means no config file was found.
func fileAbsent(err error, configPath string) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return configPath != "" && errors.Is(err, fs.ErrNotExist)
}

// Get returns the loaded configuration, initializing defaults first if
// Init has not run.
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("config defaults failed to load: " + err.Error())
		}
	}
	return cfg
}

// Set overrides one key at runtime. Values set here outrank the config
// file and the environment.
func Set(key string, value interface{}) {
	vp.Set(key, value)
	_ = vp.Unmarshal(cfg)
}

// FilePath returns the path of the config file actually loaded, or ""
// when the run is on defaults alone.
func FilePath() string {
	return usedFile
}

// WatchConfig re-reads the config file whenever it changes on disk and
// then calls onChange. An edit that fails to parse or validate is
// ignored and the running configuration stays as it was; keys
// overridden with Set keep their override. Without a loaded file there
// is nothing to watch.
func WatchConfig(onChange func()) {
	if usedFile == "" {
		return
	}
	vp.WatchConfig()
	vp.OnConfigChange(func(fsnotify.Event) {
		fresh := &Config{}
		if err := vp.Unmarshal(fresh); err != nil {
			return
		}
		if err := Validate(fresh); err != nil {
			return
		}
		*cfg = *fresh
		if onChange != nil {
			onChange()
		}
	})
}

// Validate checks the configuration values.
func Validate(c *Config) error {
	if c.Game.Horizon <= 0 {
		return fmt.Errorf("game.horizon must be positive")
	}
	if c.Game.Rewards.WinBonus < 0 {
		return fmt.Errorf("game.rewards.win_bonus must be non-negative")
	}
	if c.Game.Observation.Radius < 1 {
		return fmt.Errorf("game.observation.radius must be at least 1")
	}

	if c.Sim.Episodes <= 0 {
		return fmt.Errorf("sim.episodes must be positive")
	}
	if c.Sim.Workers <= 0 {
		return fmt.Errorf("sim.workers must be positive")
	}
	if c.Sim.Experience.Capacity <= 0 {
		return fmt.Errorf("sim.experience.capacity must be positive")
	}

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of trace, debug, info, warn, error")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json")
	}

	return nil
}
