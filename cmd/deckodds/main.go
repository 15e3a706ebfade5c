package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/lox/deckodds/internal/config"
	"github.com/lox/deckodds/internal/fileutil"
	"github.com/lox/deckodds/internal/interval"
	"github.com/lox/deckodds/internal/lehmer"
	"github.com/lox/deckodds/internal/report"
	"github.com/lox/deckodds/internal/sweep"
)

const (
	exitOK          = 0
	exitUsage       = 1
	exitInvalidArgs = 2
	exitOutput      = 3
	exitFailure     = 4
	exitInterrupted = 130
)

type CLI struct {
	HalfWidth string `arg:"" name:"half-width" help:"Target 95% confidence interval half-width (non-negative)"`
	Seed      string `arg:"" name:"seed" help:"Generator seed, an integer in [1, 2147483646]"`

	Config       string `short:"c" default:"deckodds.hcl" help:"Path to HCL configuration file"`
	Output       string `short:"o" help:"CSV output path (overrides config, default output.csv)"`
	MinMagnitude *int   `help:"Smallest magnitude in the sweep (overrides config)"`
	MaxMagnitude *int   `help:"Largest magnitude in the sweep (overrides config)"`
	MaxTrials    *int   `help:"Cap on trials per matchup, 0 for no cap (overrides config)"`
	LogLevel     string `short:"l" help:"Log level (debug|info|warn|error)"`
	Heatmap      bool   `help:"Print a heatmap of the results to stdout"`
	NoColor      bool   `help:"Disable coloured output"`
	Progress     bool   `short:"p" help:"Show a progress bar on stderr"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Exit))
}

func run(args []string, stdout, stderr io.Writer, exit func(int)) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("deckodds"),
		kong.Description("Estimate P(player 1 wins) for every pairing of deck magnitudes."),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
	)
	if err != nil {
		fmt.Fprintf(stderr, "deckodds: %v\n", err)
		return exitFailure
	}
	if _, err := parser.Parse(normalizeArgs(args)); err != nil {
		fmt.Fprintf(stderr, "deckodds: %v\n", err)
		fmt.Fprintln(stderr, "usage: deckodds <half-width> <seed> [flags] (see --help)")
		return exitUsage
	}

	w, seed, err := parseArgs(cli.HalfWidth, cli.Seed)
	if err != nil {
		fmt.Fprintf(stderr, "deckodds: %v\n", err)
		return exitInvalidArgs
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "deckodds: %v\n", err)
		return exitInvalidArgs
	}
	applyOverrides(cfg, &cli)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "deckodds: %v\n", err)
		return exitInvalidArgs
	}

	logger, err := setupLogger(stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "deckodds: %v\n", err)
		return exitInvalidArgs
	}

	sweepCfg := sweep.Config{
		MinMagnitude: cfg.Sweep.MinMagnitude,
		MaxMagnitude: cfg.Sweep.MaxMagnitude,
		Estimator: interval.Config{
			HalfWidth: w,
			MaxTrials: cfg.Sweep.MaxTrials,
		},
		Logger: logger,
	}
	if err := sweepCfg.Validate(); err != nil {
		logger.Error("Invalid sweep settings", "err", err)
		return exitInvalidArgs
	}

	if err := fileutil.CheckWritable(cfg.Output.Path); err != nil {
		logger.Error("Output is not writable", "path", cfg.Output.Path, "err", err)
		return exitOutput
	}

	color := cfg.UseColor()
	if cfg.Output.Progress {
		sweepCfg.OnMatchup = report.NewProgressBar(stderr, 40, color).Update
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case <-signals:
			logger.Info("Shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	src := lehmer.MustNew(seed)
	logger.Debug("Generator seeded", "seed", seed)

	grid, err := sweep.Run(ctx, src, sweepCfg)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Sweep interrupted, no output written", "err", err)
			return exitInterrupted
		}
		logger.Error("Sweep failed", "err", err)
		return exitFailure
	}

	if err := report.SaveCSV(cfg.Output.Path, grid); err != nil {
		logger.Error("Failed to write results", "err", err)
		return exitOutput
	}
	logger.Info("Wrote results",
		"path", cfg.Output.Path,
		"seed", seed,
		"final_state", src.State(),
	)

	if cfg.Output.Heatmap {
		if err := report.NewHeatmap(stdout, color).Fprint(stdout, grid); err != nil {
			logger.Error("Failed to print heatmap", "err", err)
			return exitOutput
		}
	}
	return exitOK
}

// parseArgs validates the two positional arguments.
func parseArgs(halfWidth, seed string) (float64, int64, error) {
	w, err := strconv.ParseFloat(halfWidth, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("half-width %q is not a number", halfWidth)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, 0, fmt.Errorf("half-width must be finite, got %q", halfWidth)
	}
	if w < 0 {
		return 0, 0, fmt.Errorf("half-width cannot be negative, got %v", w)
	}

	s, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("seed %q is not an integer", seed)
	}
	if s < 0 {
		return 0, 0, fmt.Errorf("seed cannot be negative, got %d", s)
	}
	if _, err := lehmer.New(s); err != nil {
		return 0, 0, err
	}
	return w, s, nil
}

// normalizeArgs moves the positional arguments behind a "--" when one of them
// is a negative number, so it reaches the argument validation instead of
// being parsed as a short flag. Values passed to flags ("--max-trials -5")
// stay with their flag.
func normalizeArgs(args []string) []string {
	var flags, positional []string
	negative := false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case strings.HasPrefix(arg, "-") && !isNumber(arg):
			flags = append(flags, arg)
			if isFlagAwaitingValue(arg) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			if strings.HasPrefix(arg, "-") {
				negative = true
			}
			positional = append(positional, arg)
		}
	}
	if !negative {
		return args
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, positional...)
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isFlagAwaitingValue(arg string) bool {
	if !strings.HasPrefix(arg, "-") || strings.Contains(arg, "=") || isNumber(arg) {
		return false
	}
	switch strings.TrimLeft(arg, "-") {
	case "heatmap", "no-color", "progress", "p", "help", "h":
		return false
	}
	return true
}

func applyOverrides(cfg *config.Config, cli *CLI) {
	if cli.Output != "" {
		cfg.Output.Path = cli.Output
	}
	if cli.MinMagnitude != nil {
		cfg.Sweep.MinMagnitude = *cli.MinMagnitude
	}
	if cli.MaxMagnitude != nil {
		cfg.Sweep.MaxMagnitude = *cli.MaxMagnitude
	}
	if cli.MaxTrials != nil {
		cfg.Sweep.MaxTrials = *cli.MaxTrials
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.Heatmap {
		cfg.Output.Heatmap = true
	}
	if cli.Progress {
		cfg.Output.Progress = true
	}
	if cli.NoColor {
		off := false
		cfg.Output.Color = &off
	}
}
