package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runCLI invokes the command with an absent config file and output written
// into a temp dir, returning the exit code and captured streams.
func runCLI(t *testing.T, args ...string) (result, string) {
	t.Helper()
	dir := t.TempDir()
	out := filepath.Join(dir, "output.csv")
	full := append([]string{
		"--config", filepath.Join(dir, "absent.hcl"),
		"--output", out,
		"--log-level", "warn",
	}, args...)

	var stdout, stderr bytes.Buffer
	code := run(full, &stdout, &stderr, func(int) {})
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}, out
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name      string
		halfWidth string
		seed      string
		wantW     float64
		wantSeed  int64
		wantErr   string
	}{
		{"typical", "0.1", "1", 0.1, 1, ""},
		{"zero half-width", "0", "7", 0, 7, ""},
		{"largest seed", "0.05", "2147483646", 0.05, 2147483646, ""},
		{"exponent", "1e-2", "12345", 0.01, 12345, ""},
		{"negative half-width", "-0.1", "1", 0, 0, "cannot be negative"},
		{"nan half-width", "NaN", "1", 0, 0, "finite"},
		{"infinite half-width", "+Inf", "1", 0, 0, "finite"},
		{"non-numeric half-width", "wide", "1", 0, 0, "not a number"},
		{"negative seed", "0.1", "-5", 0, 0, "cannot be negative"},
		{"fractional seed", "0.1", "1.5", 0, 0, "not an integer"},
		{"zero seed", "0.1", "0", 0, 0, "seed"},
		{"seed equal to modulus", "0.1", "2147483647", 0, 0, "seed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, seed, err := parseArgs(tt.halfWidth, tt.seed)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantW, w, 1e-12)
			assert.Equal(t, tt.wantSeed, seed)
		})
	}
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no negatives untouched",
			in:   []string{"0.1", "1", "--heatmap"},
			want: []string{"0.1", "1", "--heatmap"},
		},
		{
			name: "negative half-width",
			in:   []string{"-0.1", "1"},
			want: []string{"--", "-0.1", "1"},
		},
		{
			name: "flags kept ahead of separator",
			in:   []string{"--output", "x.csv", "0.1", "-3", "--heatmap"},
			want: []string{"--output", "x.csv", "--heatmap", "--", "0.1", "-3"},
		},
		{
			name: "flag value left with flag",
			in:   []string{"--max-trials", "-5", "0.1", "1"},
			want: []string{"--max-trials", "-5", "0.1", "1"},
		},
		{
			name: "explicit separator respected",
			in:   []string{"--", "-0.1", "1"},
			want: []string{"--", "-0.1", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArgs(tt.in))
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"one argument", []string{"0.1"}},
		{"three arguments", []string{"0.1", "1", "2"}},
		{"unknown flag", []string{"--frobnicate", "0.1", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, out := runCLI(t, tt.args...)
			assert.Equal(t, exitUsage, res.code)
			assert.Contains(t, res.stderr, "usage:")
			assert.NoFileExists(t, out)
		})
	}
}

func TestRun_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative half-width", []string{"-0.1", "1"}},
		{"negative seed", []string{"0.1", "-1"}},
		{"nan half-width", []string{"NaN", "1"}},
		{"zero seed", []string{"0.1", "0"}},
		{"bad magnitude range", []string{"--min-magnitude", "5", "--max-magnitude", "2", "0.1", "1"}},
		{"cap below minimum trials", []string{"--max-trials", "10", "0.1", "1"}},
		{"bad log level", []string{"--log-level", "chatty", "0.1", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, out := runCLI(t, tt.args...)
			assert.Equal(t, exitInvalidArgs, res.code, res.stderr)
			assert.NoFileExists(t, out)
		})
	}
}

func TestRun_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "deckodds.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte("sweep {\n  max_trials = -1\n}\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, "--output", filepath.Join(dir, "out.csv"), "0.1", "1"},
		&stdout, &stderr, func(int) {})
	assert.Equal(t, exitInvalidArgs, code)
	assert.Contains(t, stderr.String(), "max_trials")
}

func TestRun_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"--config", filepath.Join(dir, "absent.hcl"),
		"--output", filepath.Join(dir, "missing", "output.csv"),
		"0.1", "1",
	}, &stdout, &stderr, func(int) {})

	assert.Equal(t, exitOutput, code)
	assert.Contains(t, stderr.String(), "not writable")
}

func TestRun_SmallSweep(t *testing.T) {
	res, out := runCLI(t, "--max-magnitude", "3", "0.1", "1")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"0.5895,0.4479,0.7368,\n"+
			"0.9750,0.9500,1.0000,\n"+
			"0.3409,0.0250,0.9000,\n",
		string(data))
}

func TestRun_ConfigFileSettings(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "grid.csv")
	cfgPath := filepath.Join(dir, "deckodds.hcl")
	body := "log_level = \"error\"\n\nsweep {\n  max_magnitude = 2\n}\n\noutput {\n  path = \"" + out + "\"\n}\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", cfgPath, "0.1", "1"}, &stdout, &stderr, func(int) {})
	require.Equal(t, exitOK, code, stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "0.5895,0.4479,\n0.9500,0.9250,\n", string(data))
}

func TestRun_Heatmap(t *testing.T) {
	res, _ := runCLI(t, "--max-magnitude", "2", "--heatmap", "--no-color", "0.1", "1")
	require.Equal(t, exitOK, res.code, res.stderr)

	assert.Contains(t, res.stdout, "P(player 1 wins), magnitudes 1-2")
	assert.Contains(t, res.stdout, "0.59")
	assert.Contains(t, res.stdout, "0.95")
	assert.NotContains(t, res.stdout, "\x1b[", "no escape sequences with --no-color")
}

func TestRun_FullSweepGolden(t *testing.T) {
	if testing.Short() {
		t.Skip("full 20x20 sweep")
	}

	res, out := runCLI(t, "0.1", "1")
	require.Equal(t, exitOK, res.code, res.stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 20)
	assert.True(t, strings.HasPrefix(lines[0], "0.5895,0.4479,0.7368,0.9250,0.9250,0.9750,1.0000,"))
	assert.True(t, strings.HasSuffix(lines[19], ",0.0250,0.0500,0.3871,0.5957,"))

	sum := sha256.Sum256(data)
	assert.Equal(t, "4a02b97a616a20abb604c2a948aaccab849f4c3e472aa22330626ba104973521", hex.EncodeToString(sum[:]))
}
