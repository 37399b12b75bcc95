package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/mnkplay/internal/board"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Rows)
	assert.Equal(t, 7, cfg.Cols)
	assert.Equal(t, 5, cfg.K)
	assert.Equal(t, time.Second, cfg.Budget())
	assert.InDelta(t, 0.85, cfg.SafetyFactor, 1e-9)
	assert.Equal(t, board.DefaultWeights, cfg.BoardWeights())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mnkplay.yaml")
	yaml := `rows: 4
cols: 5
k: 3
budget_ms: 250
weights:
  short: 7
  opp_near_open: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("MNKPLAY_WORKERS", "2")
	t.Setenv("MNKPLAY_WEIGHTS_COMPLETE", "123")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Rows)
	assert.Equal(t, 5, cfg.Cols)
	assert.Equal(t, 3, cfg.K)
	assert.Equal(t, 250*time.Millisecond, cfg.Budget())
	assert.Equal(t, 2, cfg.Workers)

	w := cfg.BoardWeights()
	assert.Equal(t, 7, w.Short)
	assert.Equal(t, 9000, w.OppNearOpen)
	assert.Equal(t, 123, w.Complete)
	assert.Equal(t, board.DefaultWeights.OppShort, w.OppShort)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return *cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative rows", func(c *Config) { c.Rows = -1 }},
		{"zero k", func(c *Config) { c.K = 0 }},
		{"zero budget", func(c *Config) { c.BudgetMs = 0 }},
		{"safety above one", func(c *Config) { c.SafetyFactor = 1.5 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
