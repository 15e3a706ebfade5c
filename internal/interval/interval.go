// Package interval estimates a win probability by sequential sampling,
// stopping once the 95% confidence interval is narrow enough.
package interval

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/lox/deckodds/internal/game"
	"github.com/lox/deckodds/internal/statistics"
)

const (
	// Z95 is the two-sided 95% critical value.
	Z95 = 1.960
	// MinTrials is the smallest sample the stopping rule accepts.
	MinTrials = 40
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("interval: invalid config")

// Trial is one replayable Bernoulli experiment.
type Trial interface {
	Reset()
	Run() bool
}

// Config controls a single estimation.
type Config struct {
	// HalfWidth is the target 95% half-width. Zero only terminates on a
	// zero-variance stream.
	HalfWidth float64
	// MaxTrials caps the number of trials; 0 means no cap.
	MaxTrials int
	Logger    *log.Logger
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if math.IsNaN(c.HalfWidth) || c.HalfWidth < 0 {
		return fmt.Errorf("%w: half-width must be non-negative, got %v", ErrInvalidConfig, c.HalfWidth)
	}
	if c.MaxTrials < 0 {
		return fmt.Errorf("%w: max trials must be non-negative, got %d", ErrInvalidConfig, c.MaxTrials)
	}
	if c.MaxTrials > 0 && c.MaxTrials < MinTrials {
		return fmt.Errorf("%w: max trials must be 0 or at least %d, got %d", ErrInvalidConfig, MinTrials, c.MaxTrials)
	}
	return nil
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

// Estimate is the outcome of a sequential estimation.
type Estimate struct {
	Mean       float64 // point estimate of P(player 1 wins)
	Trials     int
	SumSquares float64 // Welford sum of squared deviations
	HalfWidth  float64 // achieved 95% half-width
	Capped     bool    // stopped by MaxTrials rather than the stopping rule
}

// Interval returns the achieved confidence interval.
func (e Estimate) Interval() (float64, float64) {
	return e.Mean - e.HalfWidth, e.Mean + e.HalfWidth
}

// ShouldContinue is the stopping rule: keep sampling while fewer than
// MinTrials samples exist or the interval is still wider than w.
func ShouldContinue(n int, v, w float64) bool {
	fn := float64(n)
	return n < MinTrials || Z95*math.Sqrt(v/fn) > w*math.Sqrt(fn-1)
}

// Run samples trial until the stopping rule is satisfied. The trial is
// reset before every run.
func Run(trial Trial, cfg Config) (Estimate, error) {
	if err := cfg.Validate(); err != nil {
		return Estimate{}, err
	}

	var acc statistics.Running
	capped := false
	for {
		trial.Reset()
		x := 0.0
		if trial.Run() {
			x = 1.0
		}
		acc.Add(x)

		if !ShouldContinue(acc.Count(), acc.SumSquares(), cfg.HalfWidth) {
			break
		}
		if cfg.MaxTrials > 0 && acc.Count() >= cfg.MaxTrials {
			capped = true
			break
		}
	}

	est := Estimate{
		Mean:       acc.Mean(),
		Trials:     acc.Count(),
		SumSquares: acc.SumSquares(),
		HalfWidth:  acc.HalfWidth(Z95),
		Capped:     capped,
	}

	logger := cfg.logger()
	if capped {
		logger.Warn("Trial cap reached before interval converged",
			"trials", est.Trials,
			"half_width", est.HalfWidth,
			"target", cfg.HalfWidth,
		)
	}
	logger.Debug("Estimate complete",
		"mean", est.Mean,
		"trials", est.Trials,
		"half_width", est.HalfWidth,
	)
	return est, nil
}

// Matchup estimates the probability that a player of magnitude p1 beats a
// player of magnitude p2, drawing from src.
func Matchup(src game.Source, p1, p2 int, cfg Config) (Estimate, error) {
	if p1 <= 0 || p2 <= 0 {
		return Estimate{}, fmt.Errorf("%w: magnitudes must be positive, got %d and %d", ErrInvalidConfig, p1, p2)
	}
	logger := cfg.logger().With("p1", p1, "p2", p2)
	cfg.Logger = logger
	match := game.NewMatch(src, p1, p2, game.WithLogger(logger))
	return Run(match, cfg)
}
