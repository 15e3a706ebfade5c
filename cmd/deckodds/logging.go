package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// setupLogger returns a leveled console logger writing to w.
func setupLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "deckodds",
		ReportTimestamp: true,
	}), nil
}
