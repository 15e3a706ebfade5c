package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deckodds.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Sweep.MinMagnitude)
	assert.Equal(t, 20, cfg.Sweep.MaxMagnitude)
	assert.Equal(t, 0, cfg.Sweep.MaxTrials)
	assert.Equal(t, DefaultOutput, cfg.Output.Path)
	assert.True(t, cfg.UseColor())
	assert.False(t, cfg.Output.Heatmap)
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

sweep {
  min_magnitude = 2
  max_magnitude = 8
  max_trials    = 5000
}

output {
  path     = "grid.csv"
  heatmap  = true
  color    = false
  progress = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Sweep.MinMagnitude)
	assert.Equal(t, 8, cfg.Sweep.MaxMagnitude)
	assert.Equal(t, 5000, cfg.Sweep.MaxTrials)
	assert.Equal(t, "grid.csv", cfg.Output.Path)
	assert.True(t, cfg.Output.Heatmap)
	assert.True(t, cfg.Output.Progress)
	assert.False(t, cfg.UseColor())
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
sweep {
  max_magnitude = 5
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Sweep.MinMagnitude)
	assert.Equal(t, 5, cfg.Sweep.MaxMagnitude)
	assert.Equal(t, DefaultOutput, cfg.Output.Path)
	assert.True(t, cfg.UseColor())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"syntax", `sweep {`, "failed to parse HCL"},
		{"unknown attribute", `colour = true`, "failed to decode HCL"},
		{"wrong type", `sweep { max_trials = "lots" }`, "failed to decode HCL"},
		{"bad log level", `log_level = "chatty"`, "invalid log level"},
		{"inverted range", "sweep {\n  min_magnitude = 9\n  max_magnitude = 3\n}", "below min_magnitude"},
		{"negative minimum", "sweep {\n  min_magnitude = -2\n}", "at least 1"},
		{"negative cap", "sweep {\n  max_trials = -1\n}", "non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
