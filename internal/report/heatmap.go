package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/lox/deckodds/internal/sweep"
)

var (
	lossColor, _ = colorful.Hex("#D7263D")
	evenColor, _ = colorful.Hex("#F4D35E")
	winColor, _  = colorful.Hex("#2E933C")
)

// Heatmap draws the grid of point estimates as coloured cells, player 1's
// magnitude down the side and player 2's across the top.
type Heatmap struct {
	renderer *lipgloss.Renderer

	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// NewHeatmap returns a heatmap renderer for w. Colour is dropped when color
// is false or NO_COLOR is set.
func NewHeatmap(w io.Writer, color bool) *Heatmap {
	r := lipgloss.NewRenderer(w)
	if !color || termenv.EnvNoColor() {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Heatmap{
		renderer: r,
		titleStyle: r.NewStyle().
			Bold(true).
			MarginBottom(1),
		headerStyle: r.NewStyle().
			Bold(true).
			Width(6).
			Align(lipgloss.Right).
			Foreground(lipgloss.Color("#96CEB4")),
		cellStyle: r.NewStyle().
			Width(6).
			Align(lipgloss.Right).
			Foreground(lipgloss.Color("#1A1A1A")),
	}
}

// Render returns the heatmap as a string.
func (h *Heatmap) Render(g *sweep.Grid) string {
	mags := g.Magnitudes()

	header := []string{h.headerStyle.Render("p1\\p2")}
	for _, m := range mags {
		header = append(header, h.headerStyle.Render(fmt.Sprint(m)))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for _, p1 := range mags {
		line := []string{h.headerStyle.Render(fmt.Sprint(p1))}
		for _, p2 := range mags {
			cell, ok := g.At(p1, p2)
			if !ok {
				line = append(line, h.cellStyle.Render("-"))
				continue
			}
			v := cell.Estimate.Mean
			line = append(line, h.cellStyle.
				Background(lipgloss.Color(shade(v))).
				Render(fmt.Sprintf("%.2f", v)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}

	title := h.titleStyle.Render(fmt.Sprintf("P(player 1 wins), magnitudes %d-%d", mags[0], mags[len(mags)-1]))
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"))
}

// Fprint writes the rendered heatmap followed by a newline.
func (h *Heatmap) Fprint(w io.Writer, g *sweep.Grid) error {
	_, err := fmt.Fprintln(w, h.Render(g))
	return err
}

// shade maps a probability onto a red-yellow-green ramp.
func shade(p float64) string {
	switch {
	case p <= 0:
		return lossColor.Hex()
	case p >= 1:
		return winColor.Hex()
	case p < 0.5:
		return lossColor.BlendLab(evenColor, p*2).Clamped().Hex()
	default:
		return evenColor.BlendLab(winColor, (p-0.5)*2).Clamped().Hex()
	}
}
