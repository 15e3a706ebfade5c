// Package report renders sweep results: the CSV artifact, a terminal
// heatmap and a progress bar.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/lox/deckodds/internal/fileutil"
	"github.com/lox/deckodds/internal/sweep"
)

// ErrIncompleteGrid is returned when asked to write a grid with missing cells.
var ErrIncompleteGrid = errors.New("report: grid is incomplete")

// WriteCSV writes one line per player 1 magnitude. Each line holds the
// estimates against every player 2 magnitude in ascending order, formatted
// with four decimals and each followed by a comma, including the last.
func WriteCSV(w io.Writer, g *sweep.Grid) error {
	if !g.Complete() {
		return ErrIncompleteGrid
	}

	line := make([]byte, 0, 8*g.Size()+1)
	for _, row := range g.Means() {
		line = line[:0]
		for _, v := range row {
			line = strconv.AppendFloat(line, v, 'f', 4, 64)
			line = append(line, ',')
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	return nil
}

// SaveCSV writes the grid to path, replacing any existing file atomically.
func SaveCSV(path string, g *sweep.Grid) error {
	if err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return WriteCSV(w, g)
	}); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
