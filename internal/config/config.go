// Package config loads tripwizard settings from flags, environment, .env and an
// optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/aretw0/tripwizard/internal/logging"
	"github.com/aretw0/tripwizard/internal/runtime"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TRIPWIZARD_HTTP_ADDR.
const EnvPrefix = "TRIPWIZARD"

// AnimationConfig is the preloader cadence.
type AnimationConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Hold     time.Duration `mapstructure:"hold"`
	Fade     time.Duration `mapstructure:"fade"`
}

// GenerationConfig bounds and shapes itinerary generation.
type GenerationConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Delay    time.Duration `mapstructure:"delay"`
	Currency string        `mapstructure:"currency"`
}

// SessionConfig controls how long idle sessions are kept.
type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config is the complete application configuration.
type Config struct {
	LogLevel   string           `mapstructure:"log_level"`
	Animation  AnimationConfig  `mapstructure:"animation"`
	Steps      []domain.Step    `mapstructure:"steps"`
	StepsFile  string           `mapstructure:"steps_file"`
	Generation GenerationConfig `mapstructure:"generation"`
	Session    SessionConfig    `mapstructure:"session"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

var defaults = map[string]any{
	"log_level":                "info",
	"animation.interval":       domain.DefaultStepInterval,
	"animation.hold":           domain.DefaultHold,
	"animation.fade":           domain.DefaultFade,
	"steps_file":               "",
	"generation.timeout":       domain.DefaultGenerationTimeout,
	"generation.delay":         2 * time.Second,
	"generation.currency":      "USD",
	"session.ttl":              30 * time.Minute,
	"session.cleanup_interval": time.Minute,
	"http.addr":                ":8080",
	"metrics.enabled":          true,
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"steps-file": "steps_file",
	"timeout":    "generation.timeout",
	"delay":      "generation.delay",
	"addr":       "http.addr",
	"metrics":    "metrics.enabled",
	"ttl":        "session.ttl",
	"interval":   "animation.interval",
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every known flag present in flags.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the optional config file and decodes the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.StepsFile != "" {
		steps, err := LoadSteps(cfg.StepsFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Steps = steps
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at session creation.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.Timing().Validate(); err != nil {
		return err
	}
	if c.Generation.Timeout <= 0 {
		return fmt.Errorf("generation timeout must be positive, got %s", c.Generation.Timeout)
	}
	if c.Generation.Delay < 0 {
		return fmt.Errorf("generation delay must not be negative, got %s", c.Generation.Delay)
	}
	for i, s := range c.Steps {
		if strings.TrimSpace(s.Label) == "" {
			return fmt.Errorf("step %d has no label", i)
		}
		if !s.Tag.Valid() {
			return fmt.Errorf("step %d has unknown tag %q", i, s.Tag)
		}
	}
	return nil
}

// Timing returns the preloader cadence.
func (c Config) Timing() runtime.Timing {
	return runtime.Timing{
		Interval: c.Animation.Interval,
		Hold:     c.Animation.Hold,
		Fade:     c.Animation.Fade,
	}
}

// PreloaderSteps returns the configured steps, or the default four.
func (c Config) PreloaderSteps() []domain.Step {
	if len(c.Steps) == 0 {
		return domain.DefaultSteps()
	}
	return domain.NormalizeSteps(c.Steps)
}
