// Package config loads optional sweep settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	DefaultPath   = "deckodds.hcl"
	DefaultOutput = "output.csv"
)

// Config represents the complete configuration file.
//
//	log_level = "debug"
//
//	sweep {
//	  min_magnitude = 1
//	  max_magnitude = 20
//	  max_trials    = 100000
//	}
//
//	output {
//	  path    = "results.csv"
//	  heatmap = true
//	  color   = false
//	}
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Sweep    *SweepSettings  `hcl:"sweep,block"`
	Output   *OutputSettings `hcl:"output,block"`
}

// SweepSettings controls the grid and the estimator.
type SweepSettings struct {
	MinMagnitude int `hcl:"min_magnitude,optional"`
	MaxMagnitude int `hcl:"max_magnitude,optional"`
	MaxTrials    int `hcl:"max_trials,optional"`
}

// OutputSettings controls where and how results are reported.
type OutputSettings struct {
	Path     string `hcl:"path,optional"`
	Heatmap  bool   `hcl:"heatmap,optional"`
	Color    *bool  `hcl:"color,optional"`
	Progress bool   `hcl:"progress,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Sweep == nil {
		c.Sweep = &SweepSettings{}
	}
	if c.Sweep.MinMagnitude == 0 {
		c.Sweep.MinMagnitude = 1
	}
	if c.Sweep.MaxMagnitude == 0 {
		c.Sweep.MaxMagnitude = 20
	}
	if c.Output == nil {
		c.Output = &OutputSettings{}
	}
	if c.Output.Path == "" {
		c.Output.Path = DefaultOutput
	}
	if c.Output.Color == nil {
		color := true
		c.Output.Color = &color
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Sweep.MinMagnitude < 1 {
		return fmt.Errorf("min_magnitude must be at least 1, got %d", c.Sweep.MinMagnitude)
	}
	if c.Sweep.MaxMagnitude < c.Sweep.MinMagnitude {
		return fmt.Errorf("max_magnitude %d is below min_magnitude %d", c.Sweep.MaxMagnitude, c.Sweep.MinMagnitude)
	}
	if c.Sweep.MaxTrials < 0 {
		return fmt.Errorf("max_trials must be non-negative, got %d", c.Sweep.MaxTrials)
	}
	return nil
}

// UseColor reports whether coloured output is enabled.
func (c *Config) UseColor() bool {
	return c.Output.Color == nil || *c.Output.Color
}
