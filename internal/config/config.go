// Package config loads the settings shared by the mnkplay binaries from
// defaults, an optional YAML file and MNKPLAY_* environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/hailam/mnkplay/internal/board"
	"github.com/hailam/mnkplay/internal/engine"
)

// EnvPrefix prefixes every environment override, e.g. MNKPLAY_BUDGET_MS.
const EnvPrefix = "MNKPLAY"

// WeightsConfig mirrors board.Weights.
type WeightsConfig struct {
	Short           int `mapstructure:"short"`
	NearHalfOpen    int `mapstructure:"near_half_open"`
	NearOpen        int `mapstructure:"near_open"`
	Complete        int `mapstructure:"complete"`
	OppShort        int `mapstructure:"opp_short"`
	OppNearHalfOpen int `mapstructure:"opp_near_half_open"`
	OppNearOpen     int `mapstructure:"opp_near_open"`
	OppComplete     int `mapstructure:"opp_complete"`
}

// Config holds every tunable of the engine and the arena.
type Config struct {
	Rows         int           `mapstructure:"rows"`
	Cols         int           `mapstructure:"cols"`
	K            int           `mapstructure:"k"`
	BudgetMs     int           `mapstructure:"budget_ms"`
	SafetyFactor float64       `mapstructure:"safety_factor"`
	LogLevel     string        `mapstructure:"log_level"`
	Games        int           `mapstructure:"games"`
	Workers      int           `mapstructure:"workers"`
	DBDir        string        `mapstructure:"db_dir"`
	Weights      WeightsConfig `mapstructure:"weights"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rows", 7)
	v.SetDefault("cols", 7)
	v.SetDefault("k", 5)
	v.SetDefault("budget_ms", 1000)
	v.SetDefault("safety_factor", engine.DefaultSafetyFactor)
	v.SetDefault("log_level", "info")
	v.SetDefault("games", 10)
	v.SetDefault("workers", 4)
	v.SetDefault("db_dir", "")

	w := board.DefaultWeights
	v.SetDefault("weights.short", w.Short)
	v.SetDefault("weights.near_half_open", w.NearHalfOpen)
	v.SetDefault("weights.near_open", w.NearOpen)
	v.SetDefault("weights.complete", w.Complete)
	v.SetDefault("weights.opp_short", w.OppShort)
	v.SetDefault("weights.opp_near_half_open", w.OppNearHalfOpen)
	v.SetDefault("weights.opp_near_open", w.OppNearOpen)
	v.SetDefault("weights.opp_complete", w.OppComplete)
}

// Load reads the configuration. path may be empty to skip the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Rows < 0 || c.Cols < 0:
		return errors.Errorf("invalid board size %dx%d", c.Rows, c.Cols)
	case c.K < 1:
		return errors.Errorf("invalid k %d", c.K)
	case c.BudgetMs <= 0:
		return errors.Errorf("budget_ms must be positive, got %d", c.BudgetMs)
	case c.SafetyFactor <= 0 || c.SafetyFactor > 1:
		return errors.Errorf("safety_factor must be in (0, 1], got %g", c.SafetyFactor)
	case c.Workers < 1:
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.Games < 0:
		return errors.Errorf("games must not be negative, got %d", c.Games)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log_level %q", c.LogLevel)
	}
	return nil
}

// Budget returns the per-move time budget.
func (c *Config) Budget() time.Duration {
	return time.Duration(c.BudgetMs) * time.Millisecond
}

// BoardWeights converts the weights section for the evaluator.
func (c *Config) BoardWeights() board.Weights {
	w := c.Weights
	return board.Weights{
		Short:           w.Short,
		NearHalfOpen:    w.NearHalfOpen,
		NearOpen:        w.NearOpen,
		Complete:        w.Complete,
		OppShort:        w.OppShort,
		OppNearHalfOpen: w.OppNearHalfOpen,
		OppNearOpen:     w.OppNearOpen,
		OppComplete:     w.OppComplete,
	}
}

// SetupLogging sets the global level and a console writer on stderr.
func (c *Config) SetupLogging() {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}
