package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"

	"github.com/lox/deckodds/internal/sweep"
)

// ProgressBar redraws a single status line as matchups complete.
type ProgressBar struct {
	w   io.Writer
	bar progress.Model
}

// NewProgressBar returns a bar of the given width writing to w.
func NewProgressBar(w io.Writer, width int, color bool) *ProgressBar {
	opts := []progress.Option{progress.WithDefaultGradient(), progress.WithWidth(width)}
	if !color || termenv.EnvNoColor() {
		opts = append(opts, progress.WithColorProfile(termenv.Ascii))
	}
	return &ProgressBar{w: w, bar: progress.New(opts...)}
}

// Update draws the bar for p. The final update ends the line.
func (b *ProgressBar) Update(p sweep.Progress) {
	fmt.Fprintf(b.w, "\r%s %d/%d (p1=%d p2=%d)", b.bar.ViewAs(p.Fraction()), p.Done, p.Total, p.Cell.P1, p.Cell.P2)
	if p.Done == p.Total {
		fmt.Fprintln(b.w)
	}
}
