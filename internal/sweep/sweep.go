// Package sweep runs the estimator over every pairing of magnitudes in a
// range, sharing one random source across the whole grid.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/deckodds/internal/game"
	"github.com/lox/deckodds/internal/interval"
)

const (
	DefaultMinMagnitude = 1
	DefaultMaxMagnitude = 20
)

// ErrInvalidRange is returned for an empty or non-positive magnitude range.
var ErrInvalidRange = errors.New("sweep: invalid magnitude range")

// Config holds configuration for a sweep.
type Config struct {
	MinMagnitude int
	MaxMagnitude int
	Estimator    interval.Config
	Clock        quartz.Clock
	Logger       *log.Logger
	// OnMatchup, when set, is called after every completed matchup.
	OnMatchup func(Progress)
}

// Progress reports one completed matchup.
type Progress struct {
	Done  int
	Total int
	Cell  Cell
}

// Fraction returns Done/Total.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

func (c *Config) applyDefaults() {
	if c.MinMagnitude == 0 {
		c.MinMagnitude = DefaultMinMagnitude
	}
	if c.MaxMagnitude == 0 {
		c.MaxMagnitude = DefaultMaxMagnitude
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

// Validate checks the magnitude range and estimator settings.
func (c Config) Validate() error {
	if c.MinMagnitude < 1 || c.MaxMagnitude < c.MinMagnitude {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, c.MinMagnitude, c.MaxMagnitude)
	}
	return c.Estimator.Validate()
}

// Run estimates every matchup, player 1's magnitude in the outer loop and
// player 2's in the inner loop, both ascending. The order is fixed because
// it determines which draws each matchup sees.
func Run(ctx context.Context, src game.Source, cfg Config) (*Grid, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid := NewGrid(cfg.MinMagnitude, cfg.MaxMagnitude)
	total := grid.Size() * grid.Size()
	done := 0
	start := cfg.Clock.Now()

	cfg.Logger.Info("Starting sweep",
		"min", cfg.MinMagnitude,
		"max", cfg.MaxMagnitude,
		"half_width", cfg.Estimator.HalfWidth,
		"matchups", total,
	)

	for p1 := cfg.MinMagnitude; p1 <= cfg.MaxMagnitude; p1++ {
		for p2 := cfg.MinMagnitude; p2 <= cfg.MaxMagnitude; p2++ {
			if err := ctx.Err(); err != nil {
				return grid, fmt.Errorf("sweep interrupted at %d vs %d: %w", p1, p2, err)
			}

			est := cfg.Estimator
			est.Logger = cfg.Logger
			began := cfg.Clock.Now()
			e, err := interval.Matchup(src, p1, p2, est)
			if err != nil {
				return grid, fmt.Errorf("matchup %d vs %d: %w", p1, p2, err)
			}

			cell := Cell{P1: p1, P2: p2, Estimate: e, Elapsed: cfg.Clock.Since(began)}
			if err := grid.Set(cell); err != nil {
				return grid, err
			}
			done++

			if cfg.OnMatchup != nil {
				cfg.OnMatchup(Progress{Done: done, Total: total, Cell: cell})
			}
		}
		cfg.Logger.Debug("Row complete", "p1", p1, "trials", grid.rowTrials(p1))
	}

	grid.Elapsed = cfg.Clock.Since(start)
	cfg.Logger.Info("Sweep complete",
		"trials", grid.TotalTrials(),
		"capped", grid.CappedCount(),
		"elapsed", grid.Elapsed,
	)
	return grid, nil
}

// Cell is the estimate for one matchup.
type Cell struct {
	P1       int
	P2       int
	Estimate interval.Estimate
	Elapsed  time.Duration
}

// Grid holds the estimates for a square range of magnitudes.
type Grid struct {
	min, max int
	cells    [][]Cell
	filled   [][]bool
	Elapsed  time.Duration
}

// NewGrid returns an empty grid for magnitudes lo..hi on both axes.
func NewGrid(lo, hi int) *Grid {
	n := hi - lo + 1
	g := &Grid{min: lo, max: hi, cells: make([][]Cell, n), filled: make([][]bool, n)}
	for i := range g.cells {
		g.cells[i] = make([]Cell, n)
		g.filled[i] = make([]bool, n)
	}
	return g
}

// Set stores the estimate for c's matchup.
func (g *Grid) Set(c Cell) error {
	if c.P1 < g.min || c.P1 > g.max || c.P2 < g.min || c.P2 > g.max {
		return fmt.Errorf("%w: cell %d vs %d outside [%d, %d]", ErrInvalidRange, c.P1, c.P2, g.min, g.max)
	}
	g.cells[c.P1-g.min][c.P2-g.min] = c
	g.filled[c.P1-g.min][c.P2-g.min] = true
	return nil
}

// Size returns the number of magnitudes on each axis.
func (g *Grid) Size() int {
	return g.max - g.min + 1
}

// Magnitudes returns the magnitudes on each axis in order.
func (g *Grid) Magnitudes() []int {
	out := make([]int, 0, g.Size())
	for m := g.min; m <= g.max; m++ {
		out = append(out, m)
	}
	return out
}

// Complete reports whether every matchup was estimated.
func (g *Grid) Complete() bool {
	for _, row := range g.filled {
		for _, ok := range row {
			if !ok {
				return false
			}
		}
	}
	return true
}

// At returns the cell for a matchup and whether it has been estimated.
func (g *Grid) At(p1, p2 int) (Cell, bool) {
	if p1 < g.min || p1 > g.max || p2 < g.min || p2 > g.max {
		return Cell{}, false
	}
	return g.cells[p1-g.min][p2-g.min], g.filled[p1-g.min][p2-g.min]
}

// Means returns the point estimates indexed [p1-min][p2-min].
func (g *Grid) Means() [][]float64 {
	out := make([][]float64, g.Size())
	for i, row := range g.cells {
		out[i] = make([]float64, len(row))
		for j, c := range row {
			out[i][j] = c.Estimate.Mean
		}
	}
	return out
}

// TotalTrials returns the number of matches played across the grid.
func (g *Grid) TotalTrials() int {
	total := 0
	for p1 := g.min; p1 <= g.max; p1++ {
		total += g.rowTrials(p1)
	}
	return total
}

// CappedCount returns how many matchups hit the trial cap.
func (g *Grid) CappedCount() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.Estimate.Capped {
				n++
			}
		}
	}
	return n
}

func (g *Grid) rowTrials(p1 int) int {
	total := 0
	for _, c := range g.cells[p1-g.min] {
		total += c.Estimate.Trials
	}
	return total
}
