package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/tripwizard/internal/config"
	"github.com/aretw0/tripwizard/pkg/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.Animation.Interval)
	assert.Equal(t, 800*time.Millisecond, cfg.Animation.Hold)
	assert.Equal(t, 500*time.Millisecond, cfg.Animation.Fade)
	assert.Equal(t, 30*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, domain.DefaultSteps(), cfg.PreloaderSteps())
	assert.Equal(t, 4300*time.Millisecond, cfg.Timing().Total(4))
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tripwizard.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
log_level: debug
animation:
  interval: 250ms
  hold: 1s
generation:
  timeout: 45s
steps:
  - label: Packing bags
    tag: accent
  - label: Boarding
`), 0o644))

	cfg, err := config.Load(config.New(), file)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.Animation.Interval)
	assert.Equal(t, time.Second, cfg.Animation.Hold)
	assert.Equal(t, 500*time.Millisecond, cfg.Animation.Fade)
	assert.Equal(t, 45*time.Second, cfg.Generation.Timeout)

	steps := cfg.PreloaderSteps()
	require.Len(t, steps, 2)
	assert.Equal(t, domain.Step{Ordinal: 0, Label: "Packing bags", Tag: domain.TagAccent}, steps[0])
	assert.Equal(t, domain.Step{Ordinal: 1, Label: "Boarding", Tag: domain.TagPrimary}, steps[1])
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TRIPWIZARD_HTTP_ADDR", "127.0.0.1:9999")
	t.Setenv("TRIPWIZARD_GENERATION_TIMEOUT", "5s")
	t.Setenv("TRIPWIZARD_METRICS_ENABLED", "false")

	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.Generation.Timeout)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("TRIPWIZARD_HTTP_ADDR", ":7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", ":8080", "")
	flags.Duration("timeout", 0, "")
	require.NoError(t, flags.Parse([]string{"--addr", ":9000", "--timeout", "12s"}))

	v := config.New()
	require.NoError(t, config.BindFlags(v, flags))
	cfg, err := config.Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 12*time.Second, cfg.Generation.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"zero interval", map[string]string{"TRIPWIZARD_ANIMATION_INTERVAL": "0s"}},
		{"negative hold", map[string]string{"TRIPWIZARD_ANIMATION_HOLD": "-1s"}},
		{"bad level", map[string]string{"TRIPWIZARD_LOG_LEVEL": "loud"}},
		{"zero timeout", map[string]string{"TRIPWIZARD_GENERATION_TIMEOUT": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load(config.New(), "")
			assert.Error(t, err)
		})
	}
}

func TestLoad_UnknownStepTag(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tripwizard.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
steps:
  - label: Packing bags
    tag: neon
`), 0o644))

	_, err := config.Load(config.New(), file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tag "neon"`)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("TRIPWIZARD_TEST_DOTENV=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TRIPWIZARD_TEST_DOTENV") })

	require.NoError(t, config.LoadDotEnv(file, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("TRIPWIZARD_TEST_DOTENV"))
}
